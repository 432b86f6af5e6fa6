package render3

import (
	"ngcc-go/packages/compiler/output"
)

// TypeWithParameters creates an ExpressionType with the given number of parameters
func TypeWithParameters(typ output.OutputExpression, numParams int) output.Type {
	if numParams == 0 {
		return output.NewExpressionType(typ, output.TypeModifierNone, nil)
	}
	params := make([]output.Type, numParams)
	for i := 0; i < numParams; i++ {
		params[i] = output.DynamicType
	}
	return output.NewExpressionType(typ, output.TypeModifierNone, params)
}

// R3Reference represents a reference with value and type
type R3Reference struct {
	Value output.OutputExpression
	Type  output.OutputExpression
}

// ReferenceTo creates an R3Reference whose value and type both read the named class
func ReferenceTo(name string) R3Reference {
	v := output.Variable(name)
	return R3Reference{Value: v, Type: v}
}

// R3CompiledExpression represents the result of compilation of a render3 code unit
type R3CompiledExpression struct {
	Expression output.OutputExpression
	Type       output.Type
	Statements []output.OutputStatement
}

// RefsToArray converts references to an array expression
func RefsToArray(refs []R3Reference) output.OutputExpression {
	values := make([]output.OutputExpression, len(refs))
	for i, ref := range refs {
		values[i] = ref.Value
	}
	return output.NewLiteralArrayExpr(values, nil, nil)
}

// RefsToTupleType renders references as a tuple type, e.g. `[A, B]`. An empty list
// renders as `never`.
func RefsToTupleType(refs []R3Reference) output.Type {
	if len(refs) == 0 {
		return output.NoneType
	}
	values := make([]output.OutputExpression, len(refs))
	for i, ref := range refs {
		values[i] = ref.Type
	}
	return output.NewExpressionType(output.NewLiteralArrayExpr(values, nil, nil), output.TypeModifierNone, nil)
}
