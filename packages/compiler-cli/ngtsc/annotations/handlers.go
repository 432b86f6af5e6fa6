package annotations

import (
	"fmt"

	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/render3"
)

// Handler names, in default registry order
const (
	HandlerBaseRef    = "base-ref"
	HandlerComponent  = "component"
	HandlerDirective  = "directive"
	HandlerInjectable = "injectable"
	HandlerNgModule   = "ng-module"
	HandlerPipe       = "pipe"
)

// DefaultHandlerNames lists every built-in handler in registry order
var DefaultHandlerNames = []string{
	HandlerBaseRef,
	HandlerComponent,
	HandlerDirective,
	HandlerInjectable,
	HandlerNgModule,
	HandlerPipe,
}

// NewHandler creates the built-in handler called name
func NewHandler(name string, ctx *Context) (transform.Handler, error) {
	switch name {
	case HandlerBaseRef:
		return transform.Erase[*BaseRefDetection, render3.R3BaseRefMetaData](NewBaseRefDecoratorHandler(ctx)), nil
	case HandlerComponent:
		return transform.Erase[*host.Decorator, ComponentAnalysis](NewComponentDecoratorHandler(ctx)), nil
	case HandlerDirective:
		return transform.Erase[*host.Decorator, DirectiveAnalysis](NewDirectiveDecoratorHandler(ctx)), nil
	case HandlerInjectable:
		return transform.Erase[*host.Decorator, render3.R3InjectableMetadata](NewInjectableDecoratorHandler(ctx)), nil
	case HandlerNgModule:
		return transform.Erase[*host.Decorator, NgModuleAnalysis](NewNgModuleDecoratorHandler(ctx)), nil
	case HandlerPipe:
		return transform.Erase[*host.Decorator, PipeAnalysis](NewPipeDecoratorHandler(ctx)), nil
	}
	return nil, fmt.Errorf("annotations: unknown handler %q", name)
}

// NewHandlers creates the named built-in handlers in the given order
func NewHandlers(names []string, ctx *Context) ([]transform.Handler, error) {
	handlers := make([]transform.Handler, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("annotations: handler %q listed twice", name)
		}
		seen[name] = true
		h, err := NewHandler(name, ctx)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}
