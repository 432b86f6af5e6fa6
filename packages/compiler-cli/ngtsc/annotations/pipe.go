package annotations

import (
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/render3"
)

// PipeAnalysis is the analysis of a @Pipe class
type PipeAnalysis struct {
	Meta render3.R3PipeMetadata
	Deps []render3.R3DependencyMetadata
}

// PipeDecoratorHandler compiles @Pipe classes
type PipeDecoratorHandler struct {
	ctx *Context
}

// NewPipeDecoratorHandler creates a PipeDecoratorHandler
func NewPipeDecoratorHandler(ctx *Context) *PipeDecoratorHandler {
	return &PipeDecoratorHandler{ctx: ctx}
}

func (h *PipeDecoratorHandler) Name() string { return HandlerPipe }

func (h *PipeDecoratorHandler) Exclusivity() transform.Exclusivity { return transform.Exclusive }

func (h *PipeDecoratorHandler) Detect(node *host.ClassDeclaration) (*host.Decorator, bool) {
	dec := FindDecorator(node.Decorators, DecoratorKindPipe, h.ctx.StrictImports)
	return dec, dec != nil
}

// Index records the template name of the pipe
func (h *PipeDecoratorHandler) Index(node *host.ClassDeclaration, dec *host.Decorator) {
	if h.ctx.Registry == nil {
		return
	}
	meta, err := unwrapObjectArg(dec, false)
	if err != nil {
		return
	}
	expr, ok := meta.Property("name")
	if !ok {
		return
	}
	if name, ok := metadata.AsString(metadata.StaticallyResolve(expr, h.ctx.scopeOf(node))); ok && name != "" {
		h.ctx.Registry.RegisterPipeName(node, name)
	}
}

func (h *PipeDecoratorHandler) Analyze(node *host.ClassDeclaration, dec *host.Decorator) (transform.AnalysisOutput[PipeAnalysis], error) {
	var out transform.AnalysisOutput[PipeAnalysis]

	meta, err := unwrapObjectArg(dec, false)
	if err != nil {
		return out, err
	}
	scope := h.ctx.scopeOf(node)

	name, ok, err := resolveStringField(meta, "name", scope)
	if err != nil {
		return out, err
	}
	if !ok || name == "" {
		return out, diagnostics.NewFatalDiagnosticError(diagnostics.PipeMissingName, dec.SourceSpan,
			"pipe %s has no name", node.Name)
	}
	pure, ok, err := resolveBoolField(meta, "pure", scope)
	if err != nil {
		return out, err
	}
	if !ok {
		pure = true
	}

	out.Analysis = PipeAnalysis{
		Meta: render3.R3PipeMetadata{
			Name:              node.Name,
			Type:              referenceOf(node),
			TypeArgumentCount: node.TypeArgumentCount,
			PipeName:          name,
			Pure:              pure,
		},
		Deps: constructorDependencies(node, scope, h.ctx.StrictImports),
	}
	return out, nil
}

func (h *PipeDecoratorHandler) Compile(node *host.ClassDeclaration, analysis PipeAnalysis) ([]transform.CompileResult, error) {
	def := render3.CompilePipeFromMetadata(analysis.Meta)
	factory := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
		Name:              analysis.Meta.Name,
		Type:              analysis.Meta.Type,
		TypeArgumentCount: analysis.Meta.TypeArgumentCount,
		Deps:              analysis.Deps,
		Target:            render3.FactoryTargetPipe,
	})
	return []transform.CompileResult{
		{Name: "ngFactoryDef", Initializer: factory.Expression, Type: factory.Type, Statements: factory.Statements},
		{Name: "ngPipeDef", Initializer: def.Expression, Type: def.Type, Statements: def.Statements},
	}, nil
}
