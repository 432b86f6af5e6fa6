package render3

import (
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
	"ngcc-go/packages/compiler/render3/view"
)

// R3PipeMetadata contains metadata for a pipe
type R3PipeMetadata struct {
	// Name of the pipe type
	Name string

	// An expression representing a reference to the pipe itself
	Type R3Reference

	// Number of generic type parameters of the type itself
	TypeArgumentCount int

	// Name of the pipe as used in templates
	PipeName string

	// Whether the pipe is marked as pure
	Pure bool
}

// CompilePipeFromMetadata compiles a pipe definition from metadata
func CompilePipeFromMetadata(metadata R3PipeMetadata) R3CompiledExpression {
	definitionMap := view.NewDefinitionMap()

	// e.g. `name: 'myPipe'`
	definitionMap.Set("name", output.NewLiteralExpr(metadata.PipeName, nil, nil))
	// e.g. `type: MyPipe`
	definitionMap.Set("type", metadata.Type.Value)
	// e.g. `pure: true`
	definitionMap.Set("pure", output.NewLiteralExpr(metadata.Pure, nil, nil))

	typ := CreatePipeType(metadata)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefinePipe, nil, nil, nil),
		[]output.OutputExpression{definitionMap.ToLiteralMap()},
		typ,
		nil,  // sourceSpan
		true, // pure
	)

	return R3CompiledExpression{
		Expression: expression,
		Type:       typ,
		Statements: []output.OutputStatement{},
	}
}

// CreatePipeType creates e.g. `ɵɵPipeDeclaration<MyPipe, 'myPipe'>`
func CreatePipeType(metadata R3PipeMetadata) output.Type {
	pipeNameExpr := output.NewLiteralExpr(metadata.PipeName, nil, nil)

	return output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.PipeDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{
			TypeWithParameters(metadata.Type.Type, metadata.TypeArgumentCount),
			output.NewExpressionType(pipeNameExpr, output.TypeModifierNone, nil),
		},
	)
}
