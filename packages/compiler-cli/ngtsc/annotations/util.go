package annotations

import (
	"fmt"

	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/util"
)

// unwrapObjectArg returns the single object literal argument of dec. With allowNone
// a decorator without arguments yields nil.
func unwrapObjectArg(dec *host.Decorator, allowNone bool) (*host.ObjectLiteral, error) {
	switch len(dec.Args) {
	case 0:
		if allowNone {
			return nil, nil
		}
		return nil, diagnostics.NewFatalDiagnosticError(diagnostics.DecoratorArityWrong, dec.SourceSpan,
			"@%s expects one argument, got none", dec.Name)
	case 1:
	default:
		return nil, diagnostics.NewFatalDiagnosticError(diagnostics.DecoratorArityWrong, dec.SourceSpan,
			"@%s expects one argument, got %d", dec.Name, len(dec.Args))
	}
	lit, ok := dec.Args[0].(*host.ObjectLiteral)
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(diagnostics.DecoratorArgNotLiteral, spanOf(dec.Args[0], dec.SourceSpan),
			"@%s argument must be an object literal, got %s", dec.Name, dec.Args[0].Kind())
	}
	return lit, nil
}

// resolveStringField reads an optional string property of meta
func resolveStringField(meta *host.ObjectLiteral, field string, scope host.Scope) (string, bool, error) {
	if meta == nil {
		return "", false, nil
	}
	expr, ok := meta.Property(field)
	if !ok {
		return "", false, nil
	}
	value := metadata.StaticallyResolve(expr, scope)
	s, ok := metadata.AsString(value)
	if !ok {
		return "", false, wrongType(expr, field, "a string", value)
	}
	return s, true, nil
}

// resolveBoolField reads an optional boolean property of meta
func resolveBoolField(meta *host.ObjectLiteral, field string, scope host.Scope) (bool, bool, error) {
	if meta == nil {
		return false, false, nil
	}
	expr, ok := meta.Property(field)
	if !ok {
		return false, false, nil
	}
	value := metadata.StaticallyResolve(expr, scope)
	b, ok := metadata.AsBool(value)
	if !ok {
		return false, false, wrongType(expr, field, "a boolean", value)
	}
	return b, true, nil
}

// resolveStringArrayField reads an optional string array property of meta
func resolveStringArrayField(meta *host.ObjectLiteral, field string, scope host.Scope) ([]string, error) {
	if meta == nil {
		return nil, nil
	}
	expr, ok := meta.Property(field)
	if !ok {
		return nil, nil
	}
	value := metadata.StaticallyResolve(expr, scope)
	arr, ok := metadata.AsStringArray(value)
	if !ok {
		return nil, wrongType(expr, field, "an array of strings", value)
	}
	return arr, nil
}

func wrongType(expr host.Expression, field, want string, got metadata.ResolvedValue) error {
	if u, ok := got.(*metadata.Unknown); ok {
		return diagnostics.NewFatalDiagnosticError(diagnostics.StaticEvaluationUnresolved, spanOf(u.Node, expr.GetSourceSpan()),
			"%s could not be resolved: %s", field, u.Reason)
	}
	return diagnostics.NewFatalDiagnosticError(diagnostics.ValueHasWrongType, expr.GetSourceSpan(),
		"%s must be %s, got %s", field, want, metadata.DescribeValue(got))
}

func spanOf(expr host.Expression, fallback *util.ParseSourceSpan) *util.ParseSourceSpan {
	if expr != nil {
		if span := expr.GetSourceSpan(); span != nil {
			return span
		}
	}
	return fallback
}

// warning builds a warning diagnostic about clazz
func warning(clazz *host.ClassDeclaration, code diagnostics.ErrorCode, member string, span *util.ParseSourceSpan, format string, args ...interface{}) diagnostics.Diagnostic {
	if span == nil {
		span = clazz.SourceSpan
	}
	return diagnostics.Diagnostic{
		Code:     code,
		Category: diagnostics.CategoryWarning,
		Message:  fmt.Sprintf(format, args...),
		Location: diagnostics.Location{
			File:       host.FileNameOf(clazz),
			Class:      clazz.Name,
			Member:     member,
			SourceSpan: span,
		},
	}
}

// translateExpression converts a decorator argument into an output expression so it
// can be emitted verbatim, e.g. `providers` or `providedIn`.
func translateExpression(expr host.Expression) output.OutputExpression {
	switch e := expr.(type) {
	case *host.StringLiteral:
		return output.NewLiteralExpr(e.Value, nil, e.SourceSpan)
	case *host.NumericLiteral:
		return output.NewLiteralExpr(e.Value, nil, e.SourceSpan)
	case *host.BooleanLiteral:
		return output.NewLiteralExpr(e.Value, nil, e.SourceSpan)
	case *host.NullLiteral:
		return output.NewLiteralExpr(nil, nil, e.SourceSpan)
	case *host.Identifier:
		return output.NewReadVarExpr(e.Name, nil, e.SourceSpan)
	case *host.ArrayLiteral:
		entries := make([]output.OutputExpression, len(e.Elements))
		for i, el := range e.Elements {
			entries[i] = translateExpression(el)
		}
		return output.NewLiteralArrayExpr(entries, nil, e.SourceSpan)
	case *host.ObjectLiteral:
		entries := make([]*output.LiteralMapEntry, len(e.Properties))
		for i, p := range e.Properties {
			entries[i] = output.NewLiteralMapEntry(p.Name, translateExpression(p.Initializer), false)
		}
		return output.NewLiteralMapExpr(entries, nil, e.SourceSpan)
	case *host.PropertyAccess:
		return output.NewReadPropExpr(translateExpression(e.Receiver), e.Name, nil, e.SourceSpan)
	case *host.CallExpression:
		args := make([]output.OutputExpression, len(e.Args))
		for i, arg := range e.Args {
			args[i] = translateExpression(arg)
		}
		return output.NewInvokeFunctionExpr(translateExpression(e.Callee), args, nil, e.SourceSpan, false)
	case *host.OpaqueExpression:
		return output.NewReadVarExpr(e.Text, nil, e.SourceSpan)
	}
	return output.NewLiteralExpr(nil, nil, nil)
}

// referenceOf returns the render3 reference for a class declaration
func referenceOf(clazz *host.ClassDeclaration) render3.R3Reference {
	return render3.ReferenceTo(clazz.Name)
}

// constructorDependencies resolves the injection tokens of the constructor of clazz.
// The token is either the argument of `@Inject(TOKEN)` or the declared type of the
// parameter. A token that does not resolve to a class or constant leaves the
// dependency invalid.
func constructorDependencies(clazz *host.ClassDeclaration, scope host.Scope, strict bool) []render3.R3DependencyMetadata {
	deps := make([]render3.R3DependencyMetadata, 0, len(clazz.CtorParameters))
	for _, param := range clazz.CtorParameters {
		dep := render3.R3DependencyMetadata{}
		tokenExpr := param.TypeExpression
		for _, dec := range param.Decorators {
			switch KindOf(dec, strict) {
			case DecoratorKindInject:
				if len(dec.Args) == 1 {
					tokenExpr = dec.Args[0]
				}
			case DecoratorKindOptional:
				dep.Optional = true
			case DecoratorKindSelf:
				dep.Self = true
			case DecoratorKindSkipSelf:
				dep.SkipSelf = true
			case DecoratorKindHost:
				dep.Host = true
			}
		}
		dep.Token = resolveToken(tokenExpr, scope)
		deps = append(deps, dep)
	}
	return deps
}

func resolveToken(expr host.Expression, scope host.Scope) output.OutputExpression {
	if expr == nil {
		return nil
	}
	switch v := metadata.StaticallyResolve(expr, scope).(type) {
	case *metadata.Reference:
		return output.NewReadVarExpr(v.Node.Name, nil, expr.GetSourceSpan())
	case metadata.StringValue:
		if id, ok := expr.(*host.Identifier); ok {
			return output.NewReadVarExpr(id.Name, nil, id.SourceSpan)
		}
		return output.NewLiteralExpr(string(v), nil, expr.GetSourceSpan())
	}
	if id, ok := expr.(*host.Identifier); ok && scope != nil {
		if _, ok := scope.LookupConstant(id.Name); ok {
			return output.NewReadVarExpr(id.Name, nil, id.SourceSpan)
		}
	}
	return nil
}
