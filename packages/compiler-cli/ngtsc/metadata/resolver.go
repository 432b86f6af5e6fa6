package metadata

import (
	"fmt"

	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

// ResolveOption configures StaticallyResolve
type ResolveOption func(*resolver)

// WithPartial keeps unknown elements in place inside arrays and maps instead of
// collapsing the whole composite to Unknown.
func WithPartial() ResolveOption {
	return func(r *resolver) {
		r.partial = true
	}
}

type resolver struct {
	scope   host.Scope
	partial bool

	// constants currently being resolved, for cycle detection
	resolving map[string]bool
}

// StaticallyResolve resolves expr to a concrete value, or to *Unknown. scope may be nil,
// in which case no identifier resolves. It never panics on unsupported input.
func StaticallyResolve(expr host.Expression, scope host.Scope, opts ...ResolveOption) ResolvedValue {
	r := &resolver{
		scope:     scope,
		resolving: map[string]bool{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r.visit(expr)
}

func (r *resolver) visit(expr host.Expression) ResolvedValue {
	switch e := expr.(type) {
	case nil:
		return &Unknown{Reason: "missing expression"}
	case *host.StringLiteral:
		return StringValue(e.Value)
	case *host.NumericLiteral:
		return NumberValue(e.Value)
	case *host.BooleanLiteral:
		return BoolValue(e.Value)
	case *host.NullLiteral:
		return NullValue{}
	case *host.Identifier:
		return r.visitIdentifier(e)
	case *host.ObjectLiteral:
		return r.visitObjectLiteral(e)
	case *host.ArrayLiteral:
		return r.visitArrayLiteral(e)
	case *host.PropertyAccess:
		return r.visitPropertyAccess(e)
	case *host.CallExpression:
		return &Unknown{Node: e, Reason: "function calls are not statically resolvable"}
	default:
		return &Unknown{Node: expr, Reason: fmt.Sprintf("unsupported %s", expr.Kind())}
	}
}

func (r *resolver) visitIdentifier(id *host.Identifier) ResolvedValue {
	if r.scope == nil {
		return &Unknown{Node: id, Reason: fmt.Sprintf("%s is not in scope", id.Name)}
	}
	if init, ok := r.scope.LookupConstant(id.Name); ok {
		if r.resolving[id.Name] {
			return &Unknown{Node: id, Reason: fmt.Sprintf("%s is defined in terms of itself", id.Name)}
		}
		r.resolving[id.Name] = true
		defer delete(r.resolving, id.Name)
		return r.visit(init)
	}
	if clazz, ok := r.scope.LookupClass(id.Name); ok {
		return &Reference{Node: clazz}
	}
	return &Unknown{Node: id, Reason: fmt.Sprintf("%s is not in scope", id.Name)}
}

func (r *resolver) visitObjectLiteral(lit *host.ObjectLiteral) ResolvedValue {
	m := NewMapValue()
	for _, prop := range lit.Properties {
		v := r.visit(prop.Initializer)
		if u, ok := v.(*Unknown); ok && !r.partial {
			return u
		}
		m.Set(prop.Name, v)
	}
	return m
}

func (r *resolver) visitArrayLiteral(lit *host.ArrayLiteral) ResolvedValue {
	arr := make(ArrayValue, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		v := r.visit(el)
		if u, ok := v.(*Unknown); ok && !r.partial {
			return u
		}
		arr = append(arr, v)
	}
	return arr
}

func (r *resolver) visitPropertyAccess(pa *host.PropertyAccess) ResolvedValue {
	receiver := r.visit(pa.Receiver)
	switch rv := receiver.(type) {
	case *Unknown:
		return rv
	case *MapValue:
		if v, ok := rv.Get(pa.Name); ok {
			return v
		}
		return &Unknown{Node: pa, Reason: fmt.Sprintf("property %s does not exist", pa.Name)}
	case ArrayValue:
		if pa.Name == "length" {
			return NumberValue(len(rv))
		}
	}
	return &Unknown{Node: pa, Reason: fmt.Sprintf("cannot read %s of a %s", pa.Name, describeKind(receiver.Kind()))}
}

func describeKind(kind ValueKind) string {
	switch kind {
	case ValueKindString:
		return "string"
	case ValueKindNumber:
		return "number"
	case ValueKindBool:
		return "boolean"
	case ValueKindNull:
		return "null"
	case ValueKindMap:
		return "object"
	case ValueKindArray:
		return "array"
	case ValueKindReference:
		return "class reference"
	}
	return "unknown value"
}

// DescribeValue names the kind of v for use in diagnostics
func DescribeValue(v ResolvedValue) string {
	if v == nil {
		return "nothing"
	}
	return describeKind(v.Kind())
}
