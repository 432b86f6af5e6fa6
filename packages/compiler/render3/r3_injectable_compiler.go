package render3

import (
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
	"ngcc-go/packages/compiler/render3/view"
)

// R3InjectableMetadata contains metadata for an injectable
type R3InjectableMetadata struct {
	Name              string
	Type              R3Reference
	TypeArgumentCount int

	// Either a string literal such as 'root' or a reference to an NgModule
	ProvidedIn output.OutputExpression

	Deps []R3DependencyMetadata
}

// CompileInjectable compiles
// `ɵɵdefineInjectable({token: Foo, factory: function Foo_Factory(t) {...}, providedIn: 'root'})`
func CompileInjectable(meta R3InjectableMetadata) R3CompiledExpression {
	factory := CompileFactoryFunction(R3FactoryMetadata{
		Name:              meta.Name,
		Type:              meta.Type,
		TypeArgumentCount: meta.TypeArgumentCount,
		Deps:              meta.Deps,
		Target:            FactoryTargetInjectable,
	})

	definitionMap := view.NewDefinitionMap()
	definitionMap.Set("token", meta.Type.Value)
	definitionMap.Set("factory", factory.Expression)
	if meta.ProvidedIn != nil {
		definitionMap.Set("providedIn", meta.ProvidedIn)
	} else {
		definitionMap.Set("providedIn", output.NullExpr)
	}

	typ := CreateInjectableType(meta)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineInjectable, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,
		true,
	)
	return R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: factory.Statements,
	}
}

// CreateInjectableType creates e.g. `ɵɵInjectableDeclaration<Foo>`
func CreateInjectableType(meta R3InjectableMetadata) output.Type {
	return output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.InjectableDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{TypeWithParameters(meta.Type.Type, meta.TypeArgumentCount)},
	)
}
