package host

import (
	"ngcc-go/packages/compiler/util"
)

// ExpressionKind identifies the shape of an Expression
type ExpressionKind int

const (
	ExpressionKindString ExpressionKind = iota
	ExpressionKindNumber
	ExpressionKindBoolean
	ExpressionKindNull
	ExpressionKindIdentifier
	ExpressionKindObjectLiteral
	ExpressionKindArrayLiteral
	ExpressionKindCall
	ExpressionKindPropertyAccess
	ExpressionKindOther
)

var expressionKindNames = map[ExpressionKind]string{
	ExpressionKindString:         "string",
	ExpressionKindNumber:         "number",
	ExpressionKindBoolean:        "boolean",
	ExpressionKindNull:           "null",
	ExpressionKindIdentifier:     "identifier",
	ExpressionKindObjectLiteral:  "object literal",
	ExpressionKindArrayLiteral:   "array literal",
	ExpressionKindCall:           "call",
	ExpressionKindPropertyAccess: "property access",
	ExpressionKindOther:          "expression",
}

func (k ExpressionKind) String() string {
	return expressionKindNames[k]
}

// Expression is a decorator argument or constant initializer. The set of
// implementations is closed; switch on Kind() or the concrete type.
type Expression interface {
	Kind() ExpressionKind
	GetSourceSpan() *util.ParseSourceSpan
	IsEquivalent(other Expression) bool
}

// ExpressionBase carries the source span shared by all expressions
type ExpressionBase struct {
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

// StringLiteral is a quoted string
type StringLiteral struct {
	ExpressionBase
	Value string
}

// NewStringLiteral creates a new StringLiteral
func NewStringLiteral(value string, sourceSpan *util.ParseSourceSpan) *StringLiteral {
	return &StringLiteral{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Value: value}
}

func (e *StringLiteral) Kind() ExpressionKind { return ExpressionKindString }

// IsEquivalent checks if two expressions are equivalent
func (e *StringLiteral) IsEquivalent(other Expression) bool {
	o, ok := other.(*StringLiteral)
	return ok && e.Value == o.Value
}

// NumericLiteral is a number
type NumericLiteral struct {
	ExpressionBase
	Value float64
}

// NewNumericLiteral creates a new NumericLiteral
func NewNumericLiteral(value float64, sourceSpan *util.ParseSourceSpan) *NumericLiteral {
	return &NumericLiteral{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Value: value}
}

func (e *NumericLiteral) Kind() ExpressionKind { return ExpressionKindNumber }

// IsEquivalent checks if two expressions are equivalent
func (e *NumericLiteral) IsEquivalent(other Expression) bool {
	o, ok := other.(*NumericLiteral)
	return ok && e.Value == o.Value
}

// BooleanLiteral is `true` or `false`
type BooleanLiteral struct {
	ExpressionBase
	Value bool
}

// NewBooleanLiteral creates a new BooleanLiteral
func NewBooleanLiteral(value bool, sourceSpan *util.ParseSourceSpan) *BooleanLiteral {
	return &BooleanLiteral{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Value: value}
}

func (e *BooleanLiteral) Kind() ExpressionKind { return ExpressionKindBoolean }

// IsEquivalent checks if two expressions are equivalent
func (e *BooleanLiteral) IsEquivalent(other Expression) bool {
	o, ok := other.(*BooleanLiteral)
	return ok && e.Value == o.Value
}

// NullLiteral is `null`
type NullLiteral struct {
	ExpressionBase
}

// NewNullLiteral creates a new NullLiteral
func NewNullLiteral(sourceSpan *util.ParseSourceSpan) *NullLiteral {
	return &NullLiteral{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}}
}

func (e *NullLiteral) Kind() ExpressionKind { return ExpressionKindNull }

// IsEquivalent checks if two expressions are equivalent
func (e *NullLiteral) IsEquivalent(other Expression) bool {
	_, ok := other.(*NullLiteral)
	return ok
}

// Identifier is a bare name, resolved against the enclosing scope
type Identifier struct {
	ExpressionBase
	Name string
}

// NewIdentifier creates a new Identifier
func NewIdentifier(name string, sourceSpan *util.ParseSourceSpan) *Identifier {
	return &Identifier{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Name: name}
}

func (e *Identifier) Kind() ExpressionKind { return ExpressionKindIdentifier }

// IsEquivalent checks if two expressions are equivalent
func (e *Identifier) IsEquivalent(other Expression) bool {
	o, ok := other.(*Identifier)
	return ok && e.Name == o.Name
}

// PropertyAssignment is one `name: value` entry of an object literal
type PropertyAssignment struct {
	Name        string
	Initializer Expression
}

// ObjectLiteral is `{a: 1, b: 'x'}` with properties in source order
type ObjectLiteral struct {
	ExpressionBase
	Properties []*PropertyAssignment
}

// NewObjectLiteral creates a new ObjectLiteral
func NewObjectLiteral(properties []*PropertyAssignment, sourceSpan *util.ParseSourceSpan) *ObjectLiteral {
	return &ObjectLiteral{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Properties: properties}
}

func (e *ObjectLiteral) Kind() ExpressionKind { return ExpressionKindObjectLiteral }

// Property returns the initializer of the last property called name
func (e *ObjectLiteral) Property(name string) (Expression, bool) {
	for i := len(e.Properties) - 1; i >= 0; i-- {
		if e.Properties[i].Name == name {
			return e.Properties[i].Initializer, true
		}
	}
	return nil, false
}

// IsEquivalent checks if two expressions are equivalent
func (e *ObjectLiteral) IsEquivalent(other Expression) bool {
	o, ok := other.(*ObjectLiteral)
	if !ok || len(e.Properties) != len(o.Properties) {
		return false
	}
	for i, p := range e.Properties {
		if p.Name != o.Properties[i].Name || !p.Initializer.IsEquivalent(o.Properties[i].Initializer) {
			return false
		}
	}
	return true
}

// ArrayLiteral is `[a, b]`
type ArrayLiteral struct {
	ExpressionBase
	Elements []Expression
}

// NewArrayLiteral creates a new ArrayLiteral
func NewArrayLiteral(elements []Expression, sourceSpan *util.ParseSourceSpan) *ArrayLiteral {
	return &ArrayLiteral{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Elements: elements}
}

func (e *ArrayLiteral) Kind() ExpressionKind { return ExpressionKindArrayLiteral }

// IsEquivalent checks if two expressions are equivalent
func (e *ArrayLiteral) IsEquivalent(other Expression) bool {
	o, ok := other.(*ArrayLiteral)
	return ok && areAllEquivalent(e.Elements, o.Elements)
}

// CallExpression is `callee(args...)`
type CallExpression struct {
	ExpressionBase
	Callee Expression
	Args   []Expression
}

// NewCallExpression creates a new CallExpression
func NewCallExpression(callee Expression, args []Expression, sourceSpan *util.ParseSourceSpan) *CallExpression {
	return &CallExpression{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Callee: callee, Args: args}
}

func (e *CallExpression) Kind() ExpressionKind { return ExpressionKindCall }

// IsEquivalent checks if two expressions are equivalent
func (e *CallExpression) IsEquivalent(other Expression) bool {
	o, ok := other.(*CallExpression)
	return ok && e.Callee.IsEquivalent(o.Callee) && areAllEquivalent(e.Args, o.Args)
}

// PropertyAccess is `receiver.name`
type PropertyAccess struct {
	ExpressionBase
	Receiver Expression
	Name     string
}

// NewPropertyAccess creates a new PropertyAccess
func NewPropertyAccess(receiver Expression, name string, sourceSpan *util.ParseSourceSpan) *PropertyAccess {
	return &PropertyAccess{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Receiver: receiver, Name: name}
}

func (e *PropertyAccess) Kind() ExpressionKind { return ExpressionKindPropertyAccess }

// IsEquivalent checks if two expressions are equivalent
func (e *PropertyAccess) IsEquivalent(other Expression) bool {
	o, ok := other.(*PropertyAccess)
	return ok && e.Name == o.Name && e.Receiver.IsEquivalent(o.Receiver)
}

// OpaqueExpression is any other expression, kept as source text
type OpaqueExpression struct {
	ExpressionBase
	Text string
}

// NewOpaqueExpression creates a new OpaqueExpression
func NewOpaqueExpression(text string, sourceSpan *util.ParseSourceSpan) *OpaqueExpression {
	return &OpaqueExpression{ExpressionBase: ExpressionBase{SourceSpan: sourceSpan}, Text: text}
}

func (e *OpaqueExpression) Kind() ExpressionKind { return ExpressionKindOther }

// IsEquivalent checks if two expressions are equivalent
func (e *OpaqueExpression) IsEquivalent(other Expression) bool {
	o, ok := other.(*OpaqueExpression)
	return ok && e.Text == o.Text
}

func areAllEquivalent(base, other []Expression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}
