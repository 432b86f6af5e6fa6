package render3

import (
	"fmt"

	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
	"ngcc-go/packages/compiler/render3/view"
)

// R3DirectiveMetadata contains the information needed to compile a directive
type R3DirectiveMetadata struct {
	// Name of the directive type
	Name string

	// An expression representing a reference to the directive itself
	Type R3Reference

	// Number of generic type parameters of the type itself
	TypeArgumentCount int

	// Unparsed selector of the directive, or nil if there was no selector
	Selector *string

	// Inputs and outputs in declaration order
	Inputs  []view.DirectiveBindingValue
	Outputs []view.DirectiveBindingValue

	// Names under which the directive is exported for use in a template
	ExportAs []string
}

// R3ComponentMetadata contains the information needed to compile a component
type R3ComponentMetadata struct {
	R3DirectiveMetadata

	// Inline styles followed by the contents of styleUrls, in order
	Styles []string

	// Directives and pipes visible in the component's template
	Directives []R3Reference
	Pipes      []R3Reference
}

// CompileDirectiveFromMetadata compiles a directive definition
func CompileDirectiveFromMetadata(meta R3DirectiveMetadata) (R3CompiledExpression, error) {
	definitionMap, err := baseDirectiveFields(meta)
	if err != nil {
		return R3CompiledExpression{}, err
	}

	typ := createDirectiveType(r3_identifiers.DirectiveDeclaration, meta)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineDirective, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,
		true,
	)
	return R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: []output.OutputStatement{},
	}, nil
}

// CompileComponentFromMetadata compiles a component definition
func CompileComponentFromMetadata(meta R3ComponentMetadata) (R3CompiledExpression, error) {
	definitionMap, err := baseDirectiveFields(meta.R3DirectiveMetadata)
	if err != nil {
		return R3CompiledExpression{}, err
	}

	templateName := meta.Name + "_Template"
	definitionMap.Set("decls", output.NewLiteralExpr(0, nil, nil))
	definitionMap.Set("vars", output.NewLiteralExpr(0, nil, nil))
	definitionMap.Set("template", output.NewFunctionExpr(
		[]*output.FnParam{
			output.NewFnParam("rf", output.NumberType),
			output.NewFnParam("ctx", output.DynamicType),
		},
		[]output.OutputStatement{},
		output.InferredType,
		nil,
		&templateName,
	))

	if len(meta.Styles) > 0 {
		definitionMap.Set("styles", output.LiteralStringArr(meta.Styles))
	}
	if len(meta.Directives) > 0 {
		definitionMap.Set("directives", RefsToArray(meta.Directives))
	}
	if len(meta.Pipes) > 0 {
		definitionMap.Set("pipes", RefsToArray(meta.Pipes))
	}

	typ := createDirectiveType(r3_identifiers.ComponentDeclaration, meta.R3DirectiveMetadata)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineComponent, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,
		true,
	)
	return R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: []output.OutputStatement{},
	}, nil
}

func baseDirectiveFields(meta R3DirectiveMetadata) (*view.DefinitionMap, error) {
	definitionMap := view.NewDefinitionMap()

	// e.g. `type: MyDirective`
	definitionMap.Set("type", meta.Type.Value)

	// e.g. `selectors: [['', 'someDir', '']]`
	if meta.Selector != nil {
		selectors, err := view.ParseSelectorToR3Selector(*meta.Selector)
		if err != nil {
			return nil, fmt.Errorf("render3: selector of %s: %w", meta.Name, err)
		}
		definitionMap.Set("selectors", view.SelectorsToExpression(selectors))
	}

	definitionMap.Set("inputs", view.ConditionallyCreateDirectiveBindingLiteral(meta.Inputs, true))
	definitionMap.Set("outputs", view.ConditionallyCreateDirectiveBindingLiteral(meta.Outputs, false))

	if len(meta.ExportAs) > 0 {
		definitionMap.Set("exportAs", output.LiteralStringArr(meta.ExportAs))
	}
	return definitionMap, nil
}

// createDirectiveType builds e.g. `ɵɵDirectiveDeclaration<MyDir, '[my-dir]', never>`
func createDirectiveType(decl *output.ExternalReference, meta R3DirectiveMetadata) output.Type {
	var selectorType output.Type = output.NoneType
	if meta.Selector != nil {
		selectorType = output.NewExpressionType(output.NewLiteralExpr(*meta.Selector, nil, nil), output.TypeModifierNone, nil)
	}
	var exportAsType output.Type = output.NoneType
	if len(meta.ExportAs) > 0 {
		exportAsType = output.NewExpressionType(output.LiteralStringArr(meta.ExportAs), output.TypeModifierNone, nil)
	}
	return output.NewExpressionType(
		output.NewExternalExpr(decl, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{
			TypeWithParameters(meta.Type.Type, meta.TypeArgumentCount),
			selectorType,
			exportAsType,
		},
	)
}
