package annotations

import (
	"errors"

	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/util"
)

var errNoResourceLoader = errors.New("no resource loader configured")

// ComponentAnalysis is the analysis of a @Component class
type ComponentAnalysis struct {
	Meta render3.R3ComponentMetadata

	// Template is the inline template or the contents of templateUrl
	Template string

	// TemplateURL is set when the template was loaded from a file
	TemplateURL string

	Deps []render3.R3DependencyMetadata
}

// ComponentDecoratorHandler compiles @Component classes
type ComponentDecoratorHandler struct {
	ctx *Context
}

// NewComponentDecoratorHandler creates a ComponentDecoratorHandler
func NewComponentDecoratorHandler(ctx *Context) *ComponentDecoratorHandler {
	return &ComponentDecoratorHandler{ctx: ctx}
}

func (h *ComponentDecoratorHandler) Name() string { return HandlerComponent }

func (h *ComponentDecoratorHandler) Exclusivity() transform.Exclusivity { return transform.Exclusive }

func (h *ComponentDecoratorHandler) Detect(node *host.ClassDeclaration) (*host.Decorator, bool) {
	dec := FindDecorator(node.Decorators, DecoratorKindComponent, h.ctx.StrictImports)
	return dec, dec != nil
}

// Index records the selector of the component so ng-module scopes can see it
func (h *ComponentDecoratorHandler) Index(node *host.ClassDeclaration, dec *host.Decorator) {
	indexSelector(h.ctx, node, dec)
}

func (h *ComponentDecoratorHandler) Analyze(node *host.ClassDeclaration, dec *host.Decorator) (transform.AnalysisOutput[ComponentAnalysis], error) {
	var out transform.AnalysisOutput[ComponentAnalysis]

	meta, err := unwrapObjectArg(dec, false)
	if err != nil {
		return out, err
	}
	directive, diags, err := extractDirectiveMetadata(h.ctx, node, dec, meta)
	if err != nil {
		return out, err
	}
	scope := h.ctx.scopeOf(node)

	analysis := ComponentAnalysis{
		Meta: render3.R3ComponentMetadata{R3DirectiveMetadata: directive},
		Deps: constructorDependencies(node, scope, h.ctx.StrictImports),
	}

	template, hasTemplate, err := resolveStringField(meta, "template", scope)
	if err != nil {
		return out, err
	}
	if hasTemplate {
		analysis.Template = template
	} else {
		url, hasURL, err := resolveStringField(meta, "templateUrl", scope)
		if err != nil {
			return out, err
		}
		if !hasURL {
			return out, diagnostics.NewFatalDiagnosticError(diagnostics.ComponentMissingTemplate, dec.SourceSpan,
				"component %s is missing a template", node.Name)
		}
		expr, _ := meta.Property("templateUrl")
		analysis.Template, err = h.load(node, url, spanOf(expr, dec.SourceSpan))
		if err != nil {
			return out, err
		}
		analysis.TemplateURL = url
	}

	styles, err := resolveStringArrayField(meta, "styles", scope)
	if err != nil {
		return out, err
	}
	styleURLs, err := resolveStringArrayField(meta, "styleUrls", scope)
	if err != nil {
		return out, err
	}
	expr, _ := meta.Property("styleUrls")
	for _, url := range styleURLs {
		style, err := h.load(node, url, spanOf(expr, dec.SourceSpan))
		if err != nil {
			return out, err
		}
		styles = append(styles, style)
	}
	analysis.Meta.Styles = styles

	out.Analysis = analysis
	out.Diagnostics = diags
	return out, nil
}

func (h *ComponentDecoratorHandler) load(node *host.ClassDeclaration, url string, span *util.ParseSourceSpan) (string, error) {
	if h.ctx.Loader == nil {
		return "", diagnostics.WrapFatal(diagnostics.ResourceLoadFailure, span, errNoResourceLoader,
			"could not load %s for %s", url, node.Name)
	}
	content, err := h.ctx.Loader.Load(url)
	if err != nil {
		return "", diagnostics.WrapFatal(diagnostics.ResourceLoadFailure, span, err,
			"could not load %s for %s", url, node.Name)
	}
	return content, nil
}

// Compile emits the factory and the component definition. Directives and pipes come
// from the compilation scope of the ng-module declaring the component.
func (h *ComponentDecoratorHandler) Compile(node *host.ClassDeclaration, analysis ComponentAnalysis) ([]transform.CompileResult, error) {
	meta := analysis.Meta
	if h.ctx.Registry != nil {
		if scope, ok := h.ctx.Registry.LookupCompilationScope(node); ok {
			for _, d := range scope.Directives {
				meta.Directives = append(meta.Directives, referenceOf(d.Ref))
			}
			for _, p := range scope.Pipes {
				meta.Pipes = append(meta.Pipes, referenceOf(p.Ref))
			}
		}
	}

	def, err := render3.CompileComponentFromMetadata(meta)
	if err != nil {
		return nil, err
	}
	factory := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
		Name:              meta.Name,
		Type:              meta.Type,
		TypeArgumentCount: meta.TypeArgumentCount,
		Deps:              analysis.Deps,
		Target:            render3.FactoryTargetComponent,
	})
	return []transform.CompileResult{
		{Name: "ngFactoryDef", Initializer: factory.Expression, Type: factory.Type, Statements: factory.Statements},
		{Name: "ngComponentDef", Initializer: def.Expression, Type: def.Type, Statements: def.Statements},
	}, nil
}
