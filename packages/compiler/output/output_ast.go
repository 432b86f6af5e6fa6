package output

import (
	"ngcc-go/packages/compiler/util"
)

// TypeModifier is a bit set of type modifiers
type TypeModifier int

const (
	TypeModifierNone  TypeModifier = 0
	TypeModifierConst TypeModifier = 1 << 0
)

// Type is a TypeScript type annotation attached to an expression or artifact
type Type interface {
	VisitType(visitor TypeVisitor, context interface{}) interface{}
	HasModifier(modifier TypeModifier) bool
	IsEquivalent(other Type) bool
}

// TypeVisitor dispatches on the concrete Type
type TypeVisitor interface {
	VisitBuiltinType(typ *BuiltinType, context interface{}) interface{}
	VisitExpressionType(typ *ExpressionType, context interface{}) interface{}
}

// TypeBase holds the modifiers every type carries
type TypeBase struct {
	Modifiers TypeModifier
}

// HasModifier reports whether modifier is set
func (t *TypeBase) HasModifier(modifier TypeModifier) bool {
	return t.Modifiers&modifier != 0
}

// BuiltinTypeName names a primitive type
type BuiltinTypeName int

const (
	BuiltinTypeNameDynamic BuiltinTypeName = iota
	BuiltinTypeNameBool
	BuiltinTypeNameString
	BuiltinTypeNameNumber
	BuiltinTypeNameFunction
	BuiltinTypeNameInferred
	BuiltinTypeNameNone
)

// BuiltinType is a primitive type such as `any` or `never`
type BuiltinType struct {
	TypeBase
	Name BuiltinTypeName
}

func NewBuiltinType(name BuiltinTypeName, modifiers TypeModifier) *BuiltinType {
	return &BuiltinType{TypeBase: TypeBase{Modifiers: modifiers}, Name: name}
}

func (b *BuiltinType) VisitType(visitor TypeVisitor, context interface{}) interface{} {
	return visitor.VisitBuiltinType(b, context)
}

func (b *BuiltinType) IsEquivalent(other Type) bool {
	o, ok := other.(*BuiltinType)
	return ok && b.Name == o.Name && b.Modifiers == o.Modifiers
}

// Shared builtin types
var (
	DynamicType  = NewBuiltinType(BuiltinTypeNameDynamic, TypeModifierNone)
	InferredType = NewBuiltinType(BuiltinTypeNameInferred, TypeModifierNone)
	BoolType     = NewBuiltinType(BuiltinTypeNameBool, TypeModifierNone)
	NumberType   = NewBuiltinType(BuiltinTypeNameNumber, TypeModifierNone)
	StringType   = NewBuiltinType(BuiltinTypeNameString, TypeModifierNone)
	FunctionType = NewBuiltinType(BuiltinTypeNameFunction, TypeModifierNone)
	NoneType     = NewBuiltinType(BuiltinTypeNameNone, TypeModifierNone)
)

// ExpressionType is a type named by an expression with optional type arguments,
// e.g. `ɵɵPipeDeclaration<MyPipe, "name">`
type ExpressionType struct {
	TypeBase
	Value      OutputExpression
	TypeParams []Type
}

func NewExpressionType(value OutputExpression, modifiers TypeModifier, typeParams []Type) *ExpressionType {
	return &ExpressionType{TypeBase: TypeBase{Modifiers: modifiers}, Value: value, TypeParams: typeParams}
}

func (e *ExpressionType) VisitType(visitor TypeVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionType(e, context)
}

func (e *ExpressionType) IsEquivalent(other Type) bool {
	o, ok := other.(*ExpressionType)
	return ok && e.Modifiers == o.Modifiers && e.Value.IsEquivalent(o.Value) && allEquivalent(e.TypeParams, o.TypeParams)
}

// OutputExpression is a node of the generated JavaScript expression tree
type OutputExpression interface {
	GetType() Type
	GetSourceSpan() *util.ParseSourceSpan
	VisitExpression(visitor ExpressionVisitor, context interface{}) interface{}
	IsEquivalent(e OutputExpression) bool
	IsConstant() bool
}

// ExpressionVisitor dispatches on the concrete OutputExpression
type ExpressionVisitor interface {
	VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{}
	VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{}
	VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{}
	VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{}
	VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{}
	VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{}
	VisitInvokeFunctionExpr(ast *InvokeFunctionExpr, context interface{}) interface{}
	VisitInstantiateExpr(ast *InstantiateExpr, context interface{}) interface{}
	VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{}
	VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{}
}

// ExpressionBase holds the optional type and span every expression carries
type ExpressionBase struct {
	Type       Type
	SourceSpan *util.ParseSourceSpan
}

func (e *ExpressionBase) GetType() Type {
	return e.Type
}

func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

func base(typ Type, sourceSpan *util.ParseSourceSpan) ExpressionBase {
	return ExpressionBase{Type: typ, SourceSpan: sourceSpan}
}

// ReadVarExpr reads a variable or a class by name
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

func NewReadVarExpr(name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{ExpressionBase: base(typ, sourceSpan), Name: name}
}

func (r *ReadVarExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadVarExpr(r, context)
}

func (r *ReadVarExpr) IsConstant() bool { return false }

func (r *ReadVarExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*ReadVarExpr)
	return ok && r.Name == o.Name
}

// ReadPropExpr is `receiver.name`
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
}

func NewReadPropExpr(receiver OutputExpression, name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{ExpressionBase: base(typ, sourceSpan), Receiver: receiver, Name: name}
}

func (r *ReadPropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadPropExpr(r, context)
}

func (r *ReadPropExpr) IsConstant() bool { return false }

func (r *ReadPropExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*ReadPropExpr)
	return ok && r.Name == o.Name && r.Receiver.IsEquivalent(o.Receiver)
}

// LiteralExpr is a primitive literal. Value is a float64, string, bool or nil.
type LiteralExpr struct {
	ExpressionBase
	Value interface{}
}

func NewLiteralExpr(value interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{ExpressionBase: base(typ, sourceSpan), Value: value}
}

func (l *LiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralExpr(l, context)
}

func (l *LiteralExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*LiteralExpr)
	return ok && l.Value == o.Value
}

func (l *LiteralExpr) IsConstant() bool { return true }

// NullExpr is the untyped `null` literal
var NullExpr = NewLiteralExpr(nil, nil, nil)

// LiteralArrayExpr is `[a, b]`
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

func NewLiteralArrayExpr(entries []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{ExpressionBase: base(typ, sourceSpan), Entries: entries}
}

func (l *LiteralArrayExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArrayExpr(l, context)
}

func (l *LiteralArrayExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*LiteralArrayExpr)
	return ok && allEquivalent(l.Entries, o.Entries)
}

func (l *LiteralArrayExpr) IsConstant() bool {
	return allConstant(l.Entries)
}

// LiteralMapEntry is one `key: value` of a LiteralMapExpr
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

func (l *LiteralMapEntry) IsEquivalent(e *LiteralMapEntry) bool {
	return l.Key == e.Key && l.Value.IsEquivalent(e.Value)
}

// LiteralMapExpr is an object literal; entry order is preserved on output
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

func NewLiteralMapExpr(entries []*LiteralMapEntry, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{ExpressionBase: base(typ, sourceSpan), Entries: entries}
}

func (l *LiteralMapExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMapExpr(l, context)
}

func (l *LiteralMapExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*LiteralMapExpr)
	return ok && allEquivalent(l.Entries, o.Entries)
}

func (l *LiteralMapExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

// ExternalReference names a symbol imported from another module
type ExternalReference struct {
	ModuleName *string
	Name       *string
}

// ExternalExpr refers to an ExternalReference
type ExternalExpr struct {
	ExpressionBase
	Value      *ExternalReference
	TypeParams []Type
}

func NewExternalExpr(value *ExternalReference, typ Type, typeParams []Type, sourceSpan *util.ParseSourceSpan) *ExternalExpr {
	return &ExternalExpr{ExpressionBase: base(typ, sourceSpan), Value: value, TypeParams: typeParams}
}

func (e *ExternalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitExternalExpr(e, context)
}

func (e *ExternalExpr) IsConstant() bool { return false }

func (e *ExternalExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ExternalExpr)
	return ok && sameString(e.Value.Name, o.Value.Name) && sameString(e.Value.ModuleName, o.Value.ModuleName)
}

// InvokeFunctionExpr is `fn(args)`. Pure calls are annotated for tree shakers.
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{ExpressionBase: base(typ, sourceSpan), Fn: fn, Args: args, Pure: pure}
}

func (i *InvokeFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInvokeFunctionExpr(i, context)
}

func (i *InvokeFunctionExpr) IsConstant() bool { return false }

func (i *InvokeFunctionExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*InvokeFunctionExpr)
	return ok && i.Pure == o.Pure && i.Fn.IsEquivalent(o.Fn) && allEquivalent(i.Args, o.Args)
}

// InstantiateExpr is `new ClassExpr(args)`
type InstantiateExpr struct {
	ExpressionBase
	ClassExpr OutputExpression
	Args      []OutputExpression
}

func NewInstantiateExpr(classExpr OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *InstantiateExpr {
	return &InstantiateExpr{ExpressionBase: base(typ, sourceSpan), ClassExpr: classExpr, Args: args}
}

func (i *InstantiateExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInstantiateExpr(i, context)
}

func (i *InstantiateExpr) IsConstant() bool { return false }

func (i *InstantiateExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*InstantiateExpr)
	return ok && i.ClassExpr.IsEquivalent(o.ClassExpr) && allEquivalent(i.Args, o.Args)
}

// BinaryOperator is an infix operator
type BinaryOperator int

const (
	BinaryOperatorAssign BinaryOperator = iota
	BinaryOperatorIdentical
	BinaryOperatorAnd
	BinaryOperatorOr
)

// BinaryOperatorExpr is `lhs op rhs`
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a BinaryOperatorExpr. A nil typ takes the type of lhs.
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	if typ == nil {
		typ = lhs.GetType()
	}
	return &BinaryOperatorExpr{ExpressionBase: base(typ, sourceSpan), Operator: operator, Lhs: lhs, Rhs: rhs}
}

func (b *BinaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitBinaryOperatorExpr(b, context)
}

func (b *BinaryOperatorExpr) IsConstant() bool { return false }

func (b *BinaryOperatorExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*BinaryOperatorExpr)
	return ok && b.Operator == o.Operator && b.Lhs.IsEquivalent(o.Lhs) && b.Rhs.IsEquivalent(o.Rhs)
}

// FnParam is a parameter of a FunctionExpr
type FnParam struct {
	Name string
	Type Type
}

func NewFnParam(name string, typ Type) *FnParam {
	return &FnParam{Name: name, Type: typ}
}

// FunctionExpr is `function name(params) { statements }`
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []OutputStatement
	Name       *string
}

func NewFunctionExpr(params []*FnParam, statements []OutputStatement, typ Type, sourceSpan *util.ParseSourceSpan, name *string) *FunctionExpr {
	return &FunctionExpr{ExpressionBase: base(typ, sourceSpan), Params: params, Statements: statements, Name: name}
}

func (f *FunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitFunctionExpr(f, context)
}

func (f *FunctionExpr) IsConstant() bool { return false }

func (f *FunctionExpr) IsEquivalent(e OutputExpression) bool {
	o, ok := e.(*FunctionExpr)
	if !ok || len(f.Params) != len(o.Params) {
		return false
	}
	for i, param := range f.Params {
		if param.Name != o.Params[i].Name {
			return false
		}
	}
	return allEquivalent(f.Statements, o.Statements)
}

// StmtModifier is a bit set of statement modifiers
type StmtModifier int

const (
	StmtModifierNone     StmtModifier = 0
	StmtModifierFinal    StmtModifier = 1 << 0
	StmtModifierExported StmtModifier = 1 << 2
)

// OutputStatement is a statement of the generated JavaScript
type OutputStatement interface {
	GetModifiers() StmtModifier
	GetSourceSpan() *util.ParseSourceSpan
	VisitStatement(visitor StatementVisitor, context interface{}) interface{}
	IsEquivalent(stmt OutputStatement) bool
}

// StatementVisitor dispatches on the concrete OutputStatement
type StatementVisitor interface {
	VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{}
	VisitExpressionStmt(stmt *ExpressionStatement, context interface{}) interface{}
	VisitReturnStmt(stmt *ReturnStatement, context interface{}) interface{}
}

// StatementBase holds the modifiers and span every statement carries
type StatementBase struct {
	Modifiers  StmtModifier
	SourceSpan *util.ParseSourceSpan
}

func (s *StatementBase) GetModifiers() StmtModifier {
	return s.Modifiers
}

func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan {
	return s.SourceSpan
}

// DeclareVarStmt is `const name = value;`
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value OutputExpression
	Type  Type
}

// NewDeclareVarStmt creates a DeclareVarStmt. A nil typ takes the type of value.
func NewDeclareVarStmt(name string, value OutputExpression, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	if typ == nil && value != nil {
		typ = value.GetType()
	}
	return &DeclareVarStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Value:         value,
		Type:          typ,
	}
}

func (d *DeclareVarStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareVarStmt(d, context)
}

func (d *DeclareVarStmt) IsEquivalent(stmt OutputStatement) bool {
	o, ok := stmt.(*DeclareVarStmt)
	if !ok || d.Name != o.Name {
		return false
	}
	if d.Value == nil || o.Value == nil {
		return d.Value == nil && o.Value == nil
	}
	return d.Value.IsEquivalent(o.Value)
}

// ExpressionStatement is an expression evaluated for its effect
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{StatementBase: StatementBase{SourceSpan: sourceSpan}, Expr: expr}
}

func (e *ExpressionStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionStmt(e, context)
}

func (e *ExpressionStatement) IsEquivalent(stmt OutputStatement) bool {
	o, ok := stmt.(*ExpressionStatement)
	return ok && e.Expr.IsEquivalent(o.Expr)
}

// ReturnStatement is `return value;`
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{StatementBase: StatementBase{SourceSpan: sourceSpan}, Value: value}
}

func (r *ReturnStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitReturnStmt(r, context)
}

func (r *ReturnStatement) IsEquivalent(stmt OutputStatement) bool {
	o, ok := stmt.(*ReturnStatement)
	return ok && r.Value.IsEquivalent(o.Value)
}

// Variable reads name
func Variable(name string) *ReadVarExpr {
	return NewReadVarExpr(name, nil, nil)
}

// ImportExpr refers to an external symbol
func ImportExpr(ref *ExternalReference) *ExternalExpr {
	return NewExternalExpr(ref, nil, nil, nil)
}

// LiteralArr wraps values in an array literal
func LiteralArr(values []OutputExpression) *LiteralArrayExpr {
	return NewLiteralArrayExpr(values, nil, nil)
}

// LiteralStringArr creates an array literal of string literals
func LiteralStringArr(values []string) *LiteralArrayExpr {
	entries := make([]OutputExpression, len(values))
	for i, v := range values {
		entries[i] = NewLiteralExpr(v, nil, nil)
	}
	return LiteralArr(entries)
}

type equivalent[T any] interface {
	IsEquivalent(other T) bool
}

func allEquivalent[T equivalent[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].IsEquivalent(b[i]) {
			return false
		}
	}
	return true
}

func allConstant(exprs []OutputExpression) bool {
	for _, e := range exprs {
		if !e.IsConstant() {
			return false
		}
	}
	return true
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
