package annotations

import (
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3"
)

// InjectableDecoratorHandler compiles @Injectable classes
type InjectableDecoratorHandler struct {
	ctx *Context
}

// NewInjectableDecoratorHandler creates an InjectableDecoratorHandler
func NewInjectableDecoratorHandler(ctx *Context) *InjectableDecoratorHandler {
	return &InjectableDecoratorHandler{ctx: ctx}
}

func (h *InjectableDecoratorHandler) Name() string { return HandlerInjectable }

func (h *InjectableDecoratorHandler) Exclusivity() transform.Exclusivity { return transform.Exclusive }

func (h *InjectableDecoratorHandler) Detect(node *host.ClassDeclaration) (*host.Decorator, bool) {
	dec := FindDecorator(node.Decorators, DecoratorKindInjectable, h.ctx.StrictImports)
	return dec, dec != nil
}

func (h *InjectableDecoratorHandler) Analyze(node *host.ClassDeclaration, dec *host.Decorator) (transform.AnalysisOutput[render3.R3InjectableMetadata], error) {
	var out transform.AnalysisOutput[render3.R3InjectableMetadata]

	meta, err := unwrapObjectArg(dec, true)
	if err != nil {
		return out, err
	}
	scope := h.ctx.scopeOf(node)

	providedIn, err := h.providedIn(meta, scope)
	if err != nil {
		return out, err
	}
	out.Analysis = render3.R3InjectableMetadata{
		Name:              node.Name,
		Type:              referenceOf(node),
		TypeArgumentCount: node.TypeArgumentCount,
		ProvidedIn:        providedIn,
		Deps:              constructorDependencies(node, scope, h.ctx.StrictImports),
	}
	return out, nil
}

// providedIn defaults to 'root'. A string names an injector scope and a class
// reference names the ng-module providing the injectable.
func (h *InjectableDecoratorHandler) providedIn(meta *host.ObjectLiteral, scope host.Scope) (output.OutputExpression, error) {
	if meta == nil {
		return output.NewLiteralExpr("root", nil, nil), nil
	}
	expr, ok := meta.Property("providedIn")
	if !ok {
		return output.NewLiteralExpr("root", nil, nil), nil
	}
	switch v := metadata.StaticallyResolve(expr, scope).(type) {
	case metadata.StringValue:
		return output.NewLiteralExpr(string(v), nil, expr.GetSourceSpan()), nil
	case metadata.NullValue:
		return output.NewLiteralExpr(nil, nil, expr.GetSourceSpan()), nil
	case *metadata.Reference:
		return output.NewReadVarExpr(v.Node.Name, nil, expr.GetSourceSpan()), nil
	case *metadata.Unknown:
		return nil, diagnostics.NewFatalDiagnosticError(diagnostics.StaticEvaluationUnresolved, spanOf(v.Node, expr.GetSourceSpan()),
			"providedIn could not be resolved: %s", v.Reason)
	default:
		return nil, diagnostics.NewFatalDiagnosticError(diagnostics.ValueHasWrongType, expr.GetSourceSpan(),
			"providedIn must be a string or a class, got %s", metadata.DescribeValue(v))
	}
}

func (h *InjectableDecoratorHandler) Compile(node *host.ClassDeclaration, analysis render3.R3InjectableMetadata) ([]transform.CompileResult, error) {
	res := render3.CompileInjectable(analysis)
	return []transform.CompileResult{{
		Name:        "ngInjectableDef",
		Initializer: res.Expression,
		Type:        res.Type,
		Statements:  res.Statements,
	}}, nil
}
