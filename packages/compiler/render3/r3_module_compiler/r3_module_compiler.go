package render3_module_compiler

import (
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
	"ngcc-go/packages/compiler/render3/view"
)

// R3NgModuleMetadata contains metadata for an NgModule
type R3NgModuleMetadata struct {
	Type         render3.R3Reference
	Bootstrap    []render3.R3Reference
	Declarations []render3.R3Reference
	Imports      []render3.R3Reference
	Exports      []render3.R3Reference
	Schemas      []render3.R3Reference

	// Unique id under which the module is registered, or nil
	ID output.OutputExpression
}

// CompileNgModule constructs the `ɵɵdefineNgModule` call for the given metadata. Selector
// scopes are always emitted inline.
func CompileNgModule(meta R3NgModuleMetadata) render3.R3CompiledExpression {
	definitionMap := view.NewDefinitionMap()
	definitionMap.Set("type", meta.Type.Value)

	if len(meta.Bootstrap) > 0 {
		definitionMap.Set("bootstrap", render3.RefsToArray(meta.Bootstrap))
	}
	if len(meta.Declarations) > 0 {
		definitionMap.Set("declarations", render3.RefsToArray(meta.Declarations))
	}
	if len(meta.Imports) > 0 {
		definitionMap.Set("imports", render3.RefsToArray(meta.Imports))
	}
	if len(meta.Exports) > 0 {
		definitionMap.Set("exports", render3.RefsToArray(meta.Exports))
	}
	if len(meta.Schemas) > 0 {
		definitionMap.Set("schemas", render3.RefsToArray(meta.Schemas))
	}
	if meta.ID != nil {
		definitionMap.Set("id", meta.ID)
	}

	typ := CreateNgModuleType(meta)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineNgModule, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,
		true, // pure
	)

	return render3.R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: []output.OutputStatement{},
	}
}

// CreateNgModuleType creates e.g. `ɵɵNgModuleDeclaration<AppModule, [AppCmp], [CommonModule], never>`
func CreateNgModuleType(meta R3NgModuleMetadata) output.Type {
	return output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.NgModuleDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{
			output.NewExpressionType(meta.Type.Type, output.TypeModifierNone, nil),
			render3.RefsToTupleType(meta.Declarations),
			render3.RefsToTupleType(meta.Imports),
			render3.RefsToTupleType(meta.Exports),
		},
	)
}
