package annotations

import (
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/render3/view"
)

// MemberDecorator pairs a class member with one of its decorators
type MemberDecorator struct {
	Member    *host.ClassMember
	Decorator *host.Decorator
}

// BaseRefDetection lists the @Input and @Output members of a class
type BaseRefDetection struct {
	Inputs  []MemberDecorator
	Outputs []MemberDecorator
}

// BaseRefDecoratorHandler compiles the inputs and outputs of a class into an
// `ngBaseDef` so that subclasses can inherit them. It combines with every other handler.
type BaseRefDecoratorHandler struct {
	ctx *Context
}

// NewBaseRefDecoratorHandler creates a BaseRefDecoratorHandler
func NewBaseRefDecoratorHandler(ctx *Context) *BaseRefDecoratorHandler {
	return &BaseRefDecoratorHandler{ctx: ctx}
}

func (h *BaseRefDecoratorHandler) Name() string { return HandlerBaseRef }

func (h *BaseRefDecoratorHandler) Exclusivity() transform.Exclusivity { return transform.Combinable }

// Detect collects the first @Input and the first @Output of every member
func (h *BaseRefDecoratorHandler) Detect(node *host.ClassDeclaration) (*BaseRefDetection, bool) {
	result := collectInputsAndOutputs(node, h.ctx.StrictImports)
	if len(result.Inputs) == 0 && len(result.Outputs) == 0 {
		return nil, false
	}
	return result, true
}

func collectInputsAndOutputs(node *host.ClassDeclaration, strict bool) *BaseRefDetection {
	result := &BaseRefDetection{}
	for _, member := range node.Members {
		inputFound, outputFound := false, false
		for _, dec := range member.Decorators {
			switch KindOf(dec, strict) {
			case DecoratorKindInput:
				if !inputFound {
					inputFound = true
					result.Inputs = append(result.Inputs, MemberDecorator{Member: member, Decorator: dec})
				}
			case DecoratorKindOutput:
				if !outputFound {
					outputFound = true
					result.Outputs = append(result.Outputs, MemberDecorator{Member: member, Decorator: dec})
				}
			}
		}
	}
	return result
}

func (h *BaseRefDecoratorHandler) Analyze(node *host.ClassDeclaration, detected *BaseRefDetection) (transform.AnalysisOutput[render3.R3BaseRefMetaData], error) {
	out := transform.AnalysisOutput[render3.R3BaseRefMetaData]{
		Analysis: render3.R3BaseRefMetaData{
			Name: node.Name,
			Type: referenceOf(node),
		},
	}
	var diags []diagnostics.Diagnostic
	out.Analysis.Inputs, diags = memberBindings(h.ctx, node, detected.Inputs)
	out.Diagnostics = append(out.Diagnostics, diags...)
	out.Analysis.Outputs, diags = memberBindings(h.ctx, node, detected.Outputs)
	out.Diagnostics = append(out.Diagnostics, diags...)
	return out, nil
}

// memberBindings maps every member to its binding name. Members without an alias, or
// with one that cannot be resolved, bind under their own name.
func memberBindings(ctx *Context, node *host.ClassDeclaration, members []MemberDecorator) ([]view.DirectiveBindingValue, []diagnostics.Diagnostic) {
	var (
		values []view.DirectiveBindingValue
		diags  []diagnostics.Diagnostic
	)
	for _, md := range members {
		declared := md.Member.Name
		binding := declared
		if len(md.Decorator.Args) >= 1 {
			alias, diag := resolveAlias(ctx, node, md)
			if diag != nil {
				diags = append(diags, *diag)
			} else {
				binding = alias
			}
		}
		values = append(values, view.DirectiveBindingValue{
			ClassPropertyName:   declared,
			BindingPropertyName: binding,
		})
	}
	return values, diags
}

// resolveAlias reads the binding name from `@Input('alias')` or `@Input({alias: 'alias'})`.
// An alias that does not resolve to a string yields a warning.
func resolveAlias(ctx *Context, node *host.ClassDeclaration, md MemberDecorator) (string, *diagnostics.Diagnostic) {
	arg := md.Decorator.Args[0]
	scope := ctx.scopeOf(node)

	value := metadata.StaticallyResolve(arg, scope)
	if m, ok := value.(*metadata.MapValue); ok {
		if alias, ok := m.Get("alias"); ok {
			value = alias
		} else {
			value = &metadata.Unknown{Node: arg, Reason: "no alias property"}
		}
	}
	if alias, ok := metadata.AsString(value); ok {
		return alias, nil
	}

	reason := "expected a string, got " + metadata.DescribeValue(value)
	if u, ok := value.(*metadata.Unknown); ok {
		reason = u.Reason
	}
	d := warning(node, diagnostics.StaticEvaluationUnresolved, md.Member.Name, spanOf(arg, md.Member.SourceSpan),
		"alias of @%s %s could not be resolved (%s), using the member name", md.Decorator.Name, md.Member.Name, reason)
	return "", &d
}

func (h *BaseRefDecoratorHandler) Compile(node *host.ClassDeclaration, analysis render3.R3BaseRefMetaData) ([]transform.CompileResult, error) {
	res := render3.CompileBaseDefFromMetadata(analysis)
	return []transform.CompileResult{{
		Name:        "ngBaseDef",
		Initializer: res.Expression,
		Type:        res.Type,
		Statements:  res.Statements,
	}}, nil
}
