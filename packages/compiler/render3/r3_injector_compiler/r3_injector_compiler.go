package render3_injector_compiler

import (
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
	"ngcc-go/packages/compiler/render3/view"
)

// R3InjectorMetadata contains metadata for an injector
type R3InjectorMetadata struct {
	Name      string
	Type      render3.R3Reference
	Providers output.OutputExpression
	Imports   []output.OutputExpression
}

// CompileInjector compiles an injector definition. The injector carries its own
// factory so that the module can be instantiated without a separate ngFactoryDef.
func CompileInjector(meta R3InjectorMetadata) render3.R3CompiledExpression {
	factory := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
		Name:   meta.Name,
		Type:   meta.Type,
		Target: render3.FactoryTargetNgModule,
	})

	definitionMap := view.NewDefinitionMap()
	definitionMap.Set("factory", factory.Expression)

	if meta.Providers != nil {
		definitionMap.Set("providers", meta.Providers)
	}

	if len(meta.Imports) > 0 {
		definitionMap.Set("imports", output.NewLiteralArrayExpr(meta.Imports, nil, nil))
	}

	typ := CreateInjectorType(meta)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineInjector, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,  // sourceSpan
		true, // pure
	)
	return render3.R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: []output.OutputStatement{},
	}
}

// CreateInjectorType creates e.g. `ɵɵInjectorDeclaration<AppModule>`
func CreateInjectorType(meta R3InjectorMetadata) output.Type {
	return output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.InjectorDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{
			output.NewExpressionType(meta.Type.Type, output.TypeModifierNone, nil),
		},
	)
}
