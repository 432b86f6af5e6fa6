package analyzer

import (
	"github.com/phuslu/log"

	"ngcc-go/packages/compiler-cli/ngtsc/annotations"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
)

type options struct {
	logger        *log.Logger
	handlers      []transform.Handler
	handlerNames  []string
	strictImports bool
	workers       int
	registry      *annotations.SelectorScopeRegistry
}

// Option configures an Analyzer
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHandlers replaces the built-in handlers. Handlers run in the given order.
func WithHandlers(handlers ...transform.Handler) Option {
	return func(o *options) {
		o.handlers = handlers
	}
}

// WithHandlerNames selects and orders the built-in handlers
func WithHandlerNames(names ...string) Option {
	return func(o *options) {
		o.handlerNames = names
	}
}

// WithStrictDecoratorImport only recognizes decorators imported from @angular/core
func WithStrictDecoratorImport(strict bool) Option {
	return func(o *options) {
		o.strictImports = strict
	}
}

// WithWorkers sets how many files AnalyzeProgram analyzes at once
func WithWorkers(workers int) Option {
	return func(o *options) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

// WithRegistry shares a selector scope registry with the built-in handlers
func WithRegistry(registry *annotations.SelectorScopeRegistry) Option {
	return func(o *options) {
		o.registry = registry
	}
}
