package render3

import (
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
	"ngcc-go/packages/compiler/render3/view"
)

// R3BaseRefMetaData describes the inputs and outputs an undecorated base class
// contributes to the classes that extend it
type R3BaseRefMetaData struct {
	Name    string
	Type    R3Reference
	Inputs  []view.DirectiveBindingValue
	Outputs []view.DirectiveBindingValue
}

// CompileBaseDefFromMetadata compiles `ɵɵdefineBase({inputs: {...}, outputs: {...}})`
func CompileBaseDefFromMetadata(meta R3BaseRefMetaData) R3CompiledExpression {
	definitionMap := view.NewDefinitionMap()
	definitionMap.Set("inputs", view.ConditionallyCreateDirectiveBindingLiteral(meta.Inputs, true))
	definitionMap.Set("outputs", view.ConditionallyCreateDirectiveBindingLiteral(meta.Outputs, false))

	typ := output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.BaseDef, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{output.NewExpressionType(meta.Type.Type, output.TypeModifierNone, nil)},
	)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineBase, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,
		false,
	)

	return R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: []output.OutputStatement{},
	}
}
