package metadata

import (
	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

// ValueKind identifies the shape of a ResolvedValue
type ValueKind int

const (
	ValueKindString ValueKind = iota
	ValueKindNumber
	ValueKindBool
	ValueKindNull
	ValueKindMap
	ValueKindArray
	ValueKindReference
	ValueKindUnknown
)

// ResolvedValue is the result of statically resolving an expression
type ResolvedValue interface {
	Kind() ValueKind
}

// StringValue is a resolved string
type StringValue string

func (StringValue) Kind() ValueKind { return ValueKindString }

// NumberValue is a resolved number
type NumberValue float64

func (NumberValue) Kind() ValueKind { return ValueKindNumber }

// BoolValue is a resolved boolean
type BoolValue bool

func (BoolValue) Kind() ValueKind { return ValueKindBool }

// NullValue is a resolved `null`
type NullValue struct{}

func (NullValue) Kind() ValueKind { return ValueKindNull }

// MapValue is a resolved object literal. Keys keeps source order.
type MapValue struct {
	Keys   []string
	Values map[string]ResolvedValue
}

// NewMapValue creates an empty MapValue
func NewMapValue() *MapValue {
	return &MapValue{Values: map[string]ResolvedValue{}}
}

func (*MapValue) Kind() ValueKind { return ValueKindMap }

// Set sets key, keeping the position of an existing key
func (m *MapValue) Set(key string, value ResolvedValue) {
	if _, ok := m.Values[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = value
}

// Get returns the value of key
func (m *MapValue) Get(key string) (ResolvedValue, bool) {
	v, ok := m.Values[key]
	return v, ok
}

// ArrayValue is a resolved array literal
type ArrayValue []ResolvedValue

func (ArrayValue) Kind() ValueKind { return ValueKindArray }

// Reference is a resolved reference to a class declaration
type Reference struct {
	Node *host.ClassDeclaration
}

func (*Reference) Kind() ValueKind { return ValueKindReference }

// Unknown is the sentinel for expressions that cannot be statically resolved
type Unknown struct {
	// Node is the innermost expression that could not be resolved
	Node   host.Expression
	Reason string
}

func (*Unknown) Kind() ValueKind { return ValueKindUnknown }

// IsUnknown reports whether v is the Unknown sentinel
func IsUnknown(v ResolvedValue) bool {
	_, ok := v.(*Unknown)
	return ok
}

// AsString returns v as a string
func AsString(v ResolvedValue) (string, bool) {
	s, ok := v.(StringValue)
	return string(s), ok
}

// AsBool returns v as a boolean
func AsBool(v ResolvedValue) (bool, bool) {
	b, ok := v.(BoolValue)
	return bool(b), ok
}

// AsStringArray returns v as a string slice. Every element must be a string.
func AsStringArray(v ResolvedValue) ([]string, bool) {
	arr, ok := v.(ArrayValue)
	if !ok {
		return nil, false
	}
	out := make([]string, len(arr))
	for i, item := range arr {
		s, ok := item.(StringValue)
		if !ok {
			return nil, false
		}
		out[i] = string(s)
	}
	return out, true
}

// Equal compares two resolved values structurally. References are equal when they
// point at the same declaration. Unknown values are equal when their reasons match
// and their nodes are equivalent.
func Equal(a, b ResolvedValue) bool {
	switch av := a.(type) {
	case StringValue, NumberValue, BoolValue, NullValue:
		return a == b
	case *MapValue:
		bv, ok := b.(*MapValue)
		if !ok || len(av.Keys) != len(bv.Keys) {
			return false
		}
		for i, key := range av.Keys {
			if bv.Keys[i] != key || !Equal(av.Values[key], bv.Values[key]) {
				return false
			}
		}
		return true
	case ArrayValue:
		bv, ok := b.(ArrayValue)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Reference:
		bv, ok := b.(*Reference)
		return ok && av.Node == bv.Node
	case *Unknown:
		bv, ok := b.(*Unknown)
		if !ok || av.Reason != bv.Reason {
			return false
		}
		if av.Node == nil || bv.Node == nil {
			return av.Node == nil && bv.Node == nil
		}
		return av.Node.IsEquivalent(bv.Node)
	}
	return false
}
