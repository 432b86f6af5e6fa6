package annotations

import (
	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

// CoreModule is the module the recognized decorators are imported from
const CoreModule = "@angular/core"

// DecoratorKind is a recognized decorator, resolved once from its name and import
type DecoratorKind int

const (
	DecoratorKindNone DecoratorKind = iota
	DecoratorKindComponent
	DecoratorKindDirective
	DecoratorKindInjectable
	DecoratorKindNgModule
	DecoratorKindPipe
	DecoratorKindInput
	DecoratorKindOutput
	DecoratorKindInject
	DecoratorKindOptional
	DecoratorKindSelf
	DecoratorKindSkipSelf
	DecoratorKindHost
)

var decoratorKinds = map[string]DecoratorKind{
	"Component":  DecoratorKindComponent,
	"Directive":  DecoratorKindDirective,
	"Injectable": DecoratorKindInjectable,
	"NgModule":   DecoratorKindNgModule,
	"Pipe":       DecoratorKindPipe,
	"Input":      DecoratorKindInput,
	"Output":     DecoratorKindOutput,
	"Inject":     DecoratorKindInject,
	"Optional":   DecoratorKindOptional,
	"Self":       DecoratorKindSelf,
	"SkipSelf":   DecoratorKindSkipSelf,
	"Host":       DecoratorKindHost,
}

func (k DecoratorKind) String() string {
	for name, kind := range decoratorKinds {
		if kind == k {
			return name
		}
	}
	return "none"
}

// KindOf resolves the kind of dec. Decorators imported from another module are never
// recognized. When strict is set the import must be present and point at CoreModule.
func KindOf(dec *host.Decorator, strict bool) DecoratorKind {
	if dec == nil {
		return DecoratorKindNone
	}
	switch {
	case dec.ImportFrom == CoreModule:
	case dec.ImportFrom == "" && !strict:
	default:
		return DecoratorKindNone
	}
	if kind, ok := decoratorKinds[dec.Name]; ok {
		return kind
	}
	return DecoratorKindNone
}

// FindDecorator returns the first decorator of the given kind
func FindDecorator(decorators []*host.Decorator, kind DecoratorKind, strict bool) *host.Decorator {
	for _, dec := range decorators {
		if KindOf(dec, strict) == kind {
			return dec
		}
	}
	return nil
}
