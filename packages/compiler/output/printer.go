package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	singleQuoteEscapeStringRe = regexp.MustCompile(`'|\\|\n|\r|\$`)
	legalIdentifierRe         = regexp.MustCompile(`(?i)^[$A-Z_][0-9A-Z_$]*$`)
	indentWith                = "  "
)

var binaryOperators = map[BinaryOperator]string{
	BinaryOperatorAssign:    "=",
	BinaryOperatorIdentical: "===",
	BinaryOperatorAnd:       "&&",
	BinaryOperatorOr:        "||",
}

var builtinTypeNames = map[BuiltinTypeName]string{
	BuiltinTypeNameDynamic:  "any",
	BuiltinTypeNameBool:     "boolean",
	BuiltinTypeNameString:   "string",
	BuiltinTypeNameNumber:   "number",
	BuiltinTypeNameFunction: "Function",
	BuiltinTypeNameInferred: "",
	BuiltinTypeNameNone:     "never",
}

// PrintExpression renders an expression as JavaScript source.
func PrintExpression(expr OutputExpression) string {
	p := &printer{}
	expr.VisitExpression(p, nil)
	return p.b.String()
}

// PrintStatement renders a statement as JavaScript source.
func PrintStatement(stmt OutputStatement) string {
	p := &printer{}
	stmt.VisitStatement(p, nil)
	return strings.TrimRight(p.b.String(), "\n")
}

// PrintType renders a type as a TypeScript type annotation. Inferred and nil types
// render as the empty string.
func PrintType(typ Type) string {
	if typ == nil {
		return ""
	}
	p := &printer{}
	typ.VisitType(p, nil)
	return p.b.String()
}

// printer is a single-use visitor that writes JavaScript into a buffer.
type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) print(format string, args ...interface{}) {
	fmt.Fprintf(&p.b, format, args...)
}

func (p *printer) println(format string, args ...interface{}) {
	p.b.WriteString(strings.Repeat(indentWith, p.indent))
	p.print(format, args...)
	p.b.WriteString("\n")
}

func (p *printer) VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{} {
	p.b.WriteString(ast.Name)
	return nil
}

func (p *printer) VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{} {
	ast.Receiver.VisitExpression(p, context)
	p.print(".%s", ast.Name)
	return nil
}

func (p *printer) VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{} {
	switch v := ast.Value.(type) {
	case nil:
		p.b.WriteString("null")
	case string:
		p.b.WriteString(EscapeIdentifier(v, true, true))
	case bool:
		p.b.WriteString(strconv.FormatBool(v))
	case float64:
		p.b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case int:
		p.b.WriteString(strconv.Itoa(v))
	default:
		p.print("%v", v)
	}
	return nil
}

func (p *printer) VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{} {
	p.b.WriteString("[")
	p.visitAllExpressions(ast.Entries, context, ", ")
	p.b.WriteString("]")
	return nil
}

func (p *printer) VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{} {
	p.b.WriteString("{")
	for i, entry := range ast.Entries {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.print("%s: ", EscapeIdentifier(entry.Key, true, entry.Quoted))
		entry.Value.VisitExpression(p, context)
	}
	p.b.WriteString("}")
	return nil
}

func (p *printer) VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{} {
	if ast.Value.Name != nil {
		p.b.WriteString(*ast.Value.Name)
	} else if ast.Value.ModuleName != nil {
		p.b.WriteString(*ast.Value.ModuleName)
	}
	if len(ast.TypeParams) > 0 {
		p.b.WriteString("<")
		p.visitAllTypes(ast.TypeParams, context)
		p.b.WriteString(">")
	}
	return nil
}

func (p *printer) VisitInvokeFunctionExpr(ast *InvokeFunctionExpr, context interface{}) interface{} {
	if ast.Pure {
		p.b.WriteString("/*@__PURE__*/ ")
	}
	ast.Fn.VisitExpression(p, context)
	p.b.WriteString("(")
	p.visitAllExpressions(ast.Args, context, ", ")
	p.b.WriteString(")")
	return nil
}

func (p *printer) VisitInstantiateExpr(ast *InstantiateExpr, context interface{}) interface{} {
	p.b.WriteString("new ")
	ast.ClassExpr.VisitExpression(p, context)
	p.b.WriteString("(")
	p.visitAllExpressions(ast.Args, context, ", ")
	p.b.WriteString(")")
	return nil
}

func (p *printer) VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{} {
	p.b.WriteString("(")
	ast.Lhs.VisitExpression(p, context)
	p.print(" %s ", binaryOperators[ast.Operator])
	ast.Rhs.VisitExpression(p, context)
	p.b.WriteString(")")
	return nil
}

func (p *printer) VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{} {
	p.b.WriteString("function")
	if ast.Name != nil {
		p.print(" %s", *ast.Name)
	}
	params := make([]string, len(ast.Params))
	for i, param := range ast.Params {
		params[i] = param.Name
	}
	p.print("(%s) {\n", strings.Join(params, ", "))
	p.indent++
	for _, stmt := range ast.Statements {
		stmt.VisitStatement(p, context)
	}
	p.indent--
	p.b.WriteString(strings.Repeat(indentWith, p.indent))
	p.b.WriteString("}")
	return nil
}

func (p *printer) VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{} {
	keyword := "let"
	if stmt.Modifiers&StmtModifierFinal != 0 {
		keyword = "const"
	}
	if stmt.Modifiers&StmtModifierExported != 0 {
		keyword = "export " + keyword
	}
	if stmt.Value == nil {
		p.println("%s %s;", keyword, stmt.Name)
		return nil
	}
	p.println("%s %s = %s;", keyword, stmt.Name, p.sub(stmt.Value))
	return nil
}

func (p *printer) VisitExpressionStmt(stmt *ExpressionStatement, context interface{}) interface{} {
	p.println("%s;", p.sub(stmt.Expr))
	return nil
}

func (p *printer) VisitReturnStmt(stmt *ReturnStatement, context interface{}) interface{} {
	p.println("return %s;", p.sub(stmt.Value))
	return nil
}

func (p *printer) VisitBuiltinType(typ *BuiltinType, context interface{}) interface{} {
	p.b.WriteString(builtinTypeNames[typ.Name])
	return nil
}

func (p *printer) VisitExpressionType(typ *ExpressionType, context interface{}) interface{} {
	typ.Value.VisitExpression(p, context)
	if len(typ.TypeParams) > 0 {
		p.b.WriteString("<")
		p.visitAllTypes(typ.TypeParams, context)
		p.b.WriteString(">")
	}
	return nil
}

// sub renders a nested expression at the current indent level
func (p *printer) sub(expr OutputExpression) string {
	nested := &printer{indent: p.indent}
	expr.VisitExpression(nested, nil)
	return nested.b.String()
}

func (p *printer) visitAllExpressions(expressions []OutputExpression, context interface{}, separator string) {
	for i, expr := range expressions {
		if i > 0 {
			p.b.WriteString(separator)
		}
		expr.VisitExpression(p, context)
	}
}

func (p *printer) visitAllTypes(types []Type, context interface{}) {
	for i, typ := range types {
		if i > 0 {
			p.b.WriteString(", ")
		}
		typ.VisitType(p, context)
	}
}

// EscapeIdentifier escapes a string for use as a JavaScript identifier or single-quoted literal
func EscapeIdentifier(input string, escapeDollar bool, alwaysQuote bool) string {
	if input == "" {
		if alwaysQuote {
			return "''"
		}
		return ""
	}

	body := singleQuoteEscapeStringRe.ReplaceAllStringFunc(input, func(match string) string {
		switch match {
		case "$":
			if escapeDollar {
				return "\\$"
			}
			return "$"
		case "\n":
			return "\\n"
		case "\r":
			return "\\r"
		default:
			return "\\" + match
		}
	})

	requiresQuotes := alwaysQuote || !legalIdentifierRe.MatchString(body)
	if requiresQuotes {
		return "'" + body + "'"
	}
	return body
}
