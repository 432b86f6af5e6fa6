package annotations

import (
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/render3/r3_injector_compiler"
	"ngcc-go/packages/compiler/render3/r3_module_compiler"
)

// NgModuleAnalysis is the analysis of an @NgModule class
type NgModuleAnalysis struct {
	Module   render3_module_compiler.R3NgModuleMetadata
	Injector render3_injector_compiler.R3InjectorMetadata

	// Declarations, imports and exports that resolved to classes
	Data ModuleData
}

// NgModuleDecoratorHandler compiles @NgModule classes
type NgModuleDecoratorHandler struct {
	ctx *Context
}

// NewNgModuleDecoratorHandler creates an NgModuleDecoratorHandler
func NewNgModuleDecoratorHandler(ctx *Context) *NgModuleDecoratorHandler {
	return &NgModuleDecoratorHandler{ctx: ctx}
}

func (h *NgModuleDecoratorHandler) Name() string { return HandlerNgModule }

func (h *NgModuleDecoratorHandler) Exclusivity() transform.Exclusivity { return transform.Exclusive }

func (h *NgModuleDecoratorHandler) Detect(node *host.ClassDeclaration) (*host.Decorator, bool) {
	dec := FindDecorator(node.Decorators, DecoratorKindNgModule, h.ctx.StrictImports)
	return dec, dec != nil
}

// Index records the declarations, imports and exports of the module so that
// components compiled later can find their compilation scope.
func (h *NgModuleDecoratorHandler) Index(node *host.ClassDeclaration, dec *host.Decorator) {
	if h.ctx.Registry == nil {
		return
	}
	meta, err := unwrapObjectArg(dec, true)
	if err != nil {
		return
	}
	scope := h.ctx.scopeOf(node)
	declarations, _ := h.resolveClasses(node, meta, "declarations", scope)
	imports, _ := h.resolveClasses(node, meta, "imports", scope)
	exports, _ := h.resolveClasses(node, meta, "exports", scope)
	h.ctx.Registry.RegisterNgModule(node, ModuleData{
		Declarations: declarations,
		Imports:      imports,
		Exports:      exports,
	})
}

func (h *NgModuleDecoratorHandler) Analyze(node *host.ClassDeclaration, dec *host.Decorator) (transform.AnalysisOutput[NgModuleAnalysis], error) {
	var out transform.AnalysisOutput[NgModuleAnalysis]

	meta, err := unwrapObjectArg(dec, true)
	if err != nil {
		return out, err
	}
	scope := h.ctx.scopeOf(node)

	var diags []diagnostics.Diagnostic
	resolve := func(field string) []*host.ClassDeclaration {
		classes, fieldDiags := h.resolveClasses(node, meta, field, scope)
		diags = append(diags, fieldDiags...)
		return classes
	}
	data := ModuleData{
		Declarations: resolve("declarations"),
		Imports:      resolve("imports"),
		Exports:      resolve("exports"),
	}
	bootstrap := resolve("bootstrap")

	module := render3_module_compiler.R3NgModuleMetadata{
		Type:         referenceOf(node),
		Bootstrap:    references(bootstrap),
		Declarations: references(data.Declarations),
		Imports:      references(data.Imports),
		Exports:      references(data.Exports),
	}
	id, ok, err := resolveStringField(meta, "id", scope)
	if err != nil {
		return out, err
	}
	if ok {
		module.ID = output.NewLiteralExpr(id, nil, nil)
	}

	injector := render3_injector_compiler.R3InjectorMetadata{
		Name: node.Name,
		Type: referenceOf(node),
	}
	if meta != nil {
		if providers, ok := meta.Property("providers"); ok {
			injector.Providers = translateExpression(providers)
		}
	}
	for _, ref := range append(append([]render3.R3Reference{}, module.Imports...), module.Exports...) {
		injector.Imports = append(injector.Imports, ref.Value)
	}

	out.Analysis = NgModuleAnalysis{Module: module, Injector: injector, Data: data}
	out.Diagnostics = diags
	return out, nil
}

func (h *NgModuleDecoratorHandler) Compile(node *host.ClassDeclaration, analysis NgModuleAnalysis) ([]transform.CompileResult, error) {
	module := render3_module_compiler.CompileNgModule(analysis.Module)
	injector := render3_injector_compiler.CompileInjector(analysis.Injector)
	return []transform.CompileResult{
		{Name: "ngModuleDef", Initializer: module.Expression, Type: module.Type, Statements: module.Statements},
		{Name: "ngInjectorDef", Initializer: injector.Expression, Type: injector.Type, Statements: injector.Statements},
	}, nil
}

// resolveClasses resolves a list field with partial evaluation and flattens nested
// arrays. Entries that are not classes are skipped with a warning.
func (h *NgModuleDecoratorHandler) resolveClasses(node *host.ClassDeclaration, meta *host.ObjectLiteral, field string, scope host.Scope) ([]*host.ClassDeclaration, []diagnostics.Diagnostic) {
	if meta == nil {
		return nil, nil
	}
	expr, ok := meta.Property(field)
	if !ok {
		return nil, nil
	}

	var (
		classes []*host.ClassDeclaration
		diags   []diagnostics.Diagnostic
	)
	var visit func(value metadata.ResolvedValue)
	visit = func(value metadata.ResolvedValue) {
		switch v := value.(type) {
		case metadata.ArrayValue:
			for _, item := range v {
				visit(item)
			}
		case *metadata.Reference:
			classes = append(classes, v.Node)
		case *metadata.Unknown:
			diags = append(diags, warning(node, diagnostics.StaticEvaluationUnresolved, "", spanOf(v.Node, expr.GetSourceSpan()),
				"entry of %s could not be resolved (%s) and was skipped", field, v.Reason))
		default:
			diags = append(diags, warning(node, diagnostics.ValueHasWrongType, "", expr.GetSourceSpan(),
				"entry of %s must be a class, got %s, and was skipped", field, metadata.DescribeValue(v)))
		}
	}
	visit(metadata.StaticallyResolve(expr, scope, metadata.WithPartial()))
	return classes, diags
}

func references(classes []*host.ClassDeclaration) []render3.R3Reference {
	refs := make([]render3.R3Reference, 0, len(classes))
	for _, clazz := range classes {
		refs = append(refs, referenceOf(clazz))
	}
	return refs
}
