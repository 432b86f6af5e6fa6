package annotations

import (
	"strings"

	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/render3/view"
	"ngcc-go/packages/compiler/util"
)

// DirectiveAnalysis is the analysis of a @Directive class
type DirectiveAnalysis struct {
	Meta render3.R3DirectiveMetadata
	Deps []render3.R3DependencyMetadata
}

// DirectiveDecoratorHandler compiles @Directive classes
type DirectiveDecoratorHandler struct {
	ctx *Context
}

// NewDirectiveDecoratorHandler creates a DirectiveDecoratorHandler
func NewDirectiveDecoratorHandler(ctx *Context) *DirectiveDecoratorHandler {
	return &DirectiveDecoratorHandler{ctx: ctx}
}

func (h *DirectiveDecoratorHandler) Name() string { return HandlerDirective }

func (h *DirectiveDecoratorHandler) Exclusivity() transform.Exclusivity { return transform.Exclusive }

func (h *DirectiveDecoratorHandler) Detect(node *host.ClassDeclaration) (*host.Decorator, bool) {
	dec := FindDecorator(node.Decorators, DecoratorKindDirective, h.ctx.StrictImports)
	return dec, dec != nil
}

// Index records the selector of the directive so ng-module scopes can see it
func (h *DirectiveDecoratorHandler) Index(node *host.ClassDeclaration, dec *host.Decorator) {
	indexSelector(h.ctx, node, dec)
}

func (h *DirectiveDecoratorHandler) Analyze(node *host.ClassDeclaration, dec *host.Decorator) (transform.AnalysisOutput[DirectiveAnalysis], error) {
	var out transform.AnalysisOutput[DirectiveAnalysis]

	// `@Directive()` without arguments declares an abstract directive
	meta, err := unwrapObjectArg(dec, true)
	if err != nil {
		return out, err
	}
	directive, diags, err := extractDirectiveMetadata(h.ctx, node, dec, meta)
	if err != nil {
		return out, err
	}
	if directive.Selector == nil && meta != nil {
		return out, diagnostics.NewFatalDiagnosticError(diagnostics.DirectiveMissingSelector, dec.SourceSpan,
			"directive %s has no selector, please add it", node.Name)
	}

	out.Analysis = DirectiveAnalysis{
		Meta: directive,
		Deps: constructorDependencies(node, h.ctx.scopeOf(node), h.ctx.StrictImports),
	}
	out.Diagnostics = diags
	return out, nil
}

func (h *DirectiveDecoratorHandler) Compile(node *host.ClassDeclaration, analysis DirectiveAnalysis) ([]transform.CompileResult, error) {
	def, err := render3.CompileDirectiveFromMetadata(analysis.Meta)
	if err != nil {
		return nil, err
	}
	factory := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
		Name:              analysis.Meta.Name,
		Type:              analysis.Meta.Type,
		TypeArgumentCount: analysis.Meta.TypeArgumentCount,
		Deps:              analysis.Deps,
		Target:            render3.FactoryTargetDirective,
	})
	return []transform.CompileResult{
		{Name: "ngFactoryDef", Initializer: factory.Expression, Type: factory.Type, Statements: factory.Statements},
		{Name: "ngDirectiveDef", Initializer: def.Expression, Type: def.Type, Statements: def.Statements},
	}, nil
}

// extractDirectiveMetadata reads the fields shared by @Directive and @Component.
// Inputs and outputs declared on members come after the ones listed in the decorator.
func extractDirectiveMetadata(ctx *Context, node *host.ClassDeclaration, dec *host.Decorator, meta *host.ObjectLiteral) (render3.R3DirectiveMetadata, []diagnostics.Diagnostic, error) {
	scope := ctx.scopeOf(node)
	directive := render3.R3DirectiveMetadata{
		Name:              node.Name,
		Type:              referenceOf(node),
		TypeArgumentCount: node.TypeArgumentCount,
	}

	selector, ok, err := resolveStringField(meta, "selector", scope)
	if err != nil {
		return directive, nil, err
	}
	if ok && selector != "" {
		if _, err := view.ParseSelectorToR3Selector(selector); err != nil {
			expr, _ := meta.Property("selector")
			return directive, nil, diagnostics.WrapFatal(diagnostics.ValueHasWrongType, spanOf(expr, dec.SourceSpan), err,
				"selector of %s is invalid", node.Name)
		}
		directive.Selector = &selector
	}

	inputs, err := resolveStringArrayField(meta, "inputs", scope)
	if err != nil {
		return directive, nil, err
	}
	for _, in := range inputs {
		directive.Inputs = append(directive.Inputs, parseBindingSpec(in))
	}
	outputs, err := resolveStringArrayField(meta, "outputs", scope)
	if err != nil {
		return directive, nil, err
	}
	for _, o := range outputs {
		directive.Outputs = append(directive.Outputs, parseBindingSpec(o))
	}

	members := collectInputsAndOutputs(node, ctx.StrictImports)
	memberInputs, diags := memberBindings(ctx, node, members.Inputs)
	directive.Inputs = append(directive.Inputs, memberInputs...)
	memberOutputs, outputDiags := memberBindings(ctx, node, members.Outputs)
	directive.Outputs = append(directive.Outputs, memberOutputs...)
	diags = append(diags, outputDiags...)

	exportAs, ok, err := resolveStringField(meta, "exportAs", scope)
	if err != nil {
		return directive, nil, err
	}
	if ok {
		for _, part := range strings.Split(exportAs, ",") {
			if part = strings.TrimSpace(part); part != "" {
				directive.ExportAs = append(directive.ExportAs, part)
			}
		}
	}
	return directive, diags, nil
}

// parseBindingSpec parses `declared` or `declared: public`
func parseBindingSpec(spec string) view.DirectiveBindingValue {
	parts := util.SplitAtColon(spec, []string{spec, spec})
	declared := strings.TrimSpace(parts[0])
	return view.DirectiveBindingValue{
		ClassPropertyName:   declared,
		BindingPropertyName: strings.TrimSpace(parts[1]),
	}
}

func indexSelector(ctx *Context, node *host.ClassDeclaration, dec *host.Decorator) {
	if ctx.Registry == nil {
		return
	}
	meta, err := unwrapObjectArg(dec, true)
	if err != nil || meta == nil {
		return
	}
	expr, ok := meta.Property("selector")
	if !ok {
		return
	}
	if selector, ok := metadata.AsString(metadata.StaticallyResolve(expr, ctx.scopeOf(node))); ok && selector != "" {
		ctx.Registry.RegisterSelector(node, selector)
	}
}
