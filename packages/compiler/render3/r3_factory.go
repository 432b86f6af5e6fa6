package render3

import (
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3/r3_identifiers"
)

// FactoryTarget is the kind of declaration a factory is generated for
type FactoryTarget int

const (
	FactoryTargetDirective FactoryTarget = iota
	FactoryTargetComponent
	FactoryTargetInjectable
	FactoryTargetPipe
	FactoryTargetNgModule
)

// InjectFlags mirror the runtime injection flags
type InjectFlags int

const (
	InjectFlagsDefault  InjectFlags = 0
	InjectFlagsHost     InjectFlags = 1 << 0
	InjectFlagsSelf     InjectFlags = 1 << 1
	InjectFlagsSkipSelf InjectFlags = 1 << 2
	InjectFlagsOptional InjectFlags = 1 << 3
)

// R3FactoryMetadata contains metadata required by the factory generator
type R3FactoryMetadata struct {
	// String name of the type being generated (used to name the factory function)
	Name string

	// An expression representing the interface type being constructed
	Type R3Reference

	// Number of arguments for the `type`
	TypeArgumentCount int

	// Dependencies of the constructor, in parameter order
	Deps []R3DependencyMetadata

	// Type of the target being created by the factory
	Target FactoryTarget
}

// R3DependencyMetadata contains metadata for a dependency
type R3DependencyMetadata struct {
	// An expression representing the token to be injected, or nil when the
	// dependency could not be resolved
	Token output.OutputExpression

	Host     bool
	Optional bool
	Self     bool
	SkipSelf bool
}

// CompileFactoryFunction constructs a factory function expression, e.g.
// `function Foo_Factory(t) { return new (t || Foo)(); }`
func CompileFactoryFunction(meta R3FactoryMetadata) R3CompiledExpression {
	t := output.NewReadVarExpr("t", nil, nil)
	typeForCtor := output.NewBinaryOperatorExpr(output.BinaryOperatorOr, t, meta.Type.Value, nil, nil)
	ctorExpr := output.NewInstantiateExpr(typeForCtor, injectDependencies(meta.Deps, meta.Target), nil, nil)

	factoryName := meta.Name + "_Factory"
	factoryFn := output.NewFunctionExpr(
		[]*output.FnParam{output.NewFnParam(t.Name, output.DynamicType)},
		[]output.OutputStatement{output.NewReturnStatement(ctorExpr, nil)},
		output.InferredType,
		nil,
		&factoryName,
	)

	return R3CompiledExpression{
		Expression: factoryFn,
		Type:       CreateFactoryType(meta),
		Statements: []output.OutputStatement{},
	}
}

// CreateFactoryType creates the factory type, e.g. `ɵɵFactoryDeclaration<Foo, never>`
func CreateFactoryType(meta R3FactoryMetadata) output.Type {
	return output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.FactoryDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{
			TypeWithParameters(meta.Type.Type, meta.TypeArgumentCount),
			output.NoneType,
		},
	)
}

func injectDependencies(deps []R3DependencyMetadata, target FactoryTarget) []output.OutputExpression {
	result := make([]output.OutputExpression, len(deps))
	for i, dep := range deps {
		result[i] = compileInjectDependency(dep, target, i)
	}
	return result
}

func compileInjectDependency(dep R3DependencyMetadata, target FactoryTarget, index int) output.OutputExpression {
	if dep.Token == nil {
		return output.NewInvokeFunctionExpr(
			output.NewExternalExpr(r3_identifiers.InvalidFactoryDep, nil, nil, nil),
			[]output.OutputExpression{output.NewLiteralExpr(index, nil, nil)},
			nil,
			nil,
			false,
		)
	}

	flags := InjectFlagsDefault
	if dep.Self {
		flags |= InjectFlagsSelf
	}
	if dep.SkipSelf {
		flags |= InjectFlagsSkipSelf
	}
	if dep.Host {
		flags |= InjectFlagsHost
	}
	if dep.Optional {
		flags |= InjectFlagsOptional
	}

	injectArgs := []output.OutputExpression{dep.Token}
	if flags != InjectFlagsDefault {
		injectArgs = append(injectArgs, output.NewLiteralExpr(int(flags), nil, nil))
	}
	return output.NewInvokeFunctionExpr(
		output.NewExternalExpr(getInjectFn(target), nil, nil, nil),
		injectArgs,
		nil,
		nil,
		false,
	)
}

func getInjectFn(target FactoryTarget) *output.ExternalReference {
	switch target {
	case FactoryTargetComponent, FactoryTargetDirective, FactoryTargetPipe:
		return r3_identifiers.DirectiveInject
	default:
		return r3_identifiers.Inject
	}
}
