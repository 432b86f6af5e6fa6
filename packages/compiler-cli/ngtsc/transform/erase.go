package transform

import (
	"fmt"

	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

// Erase adapts a typed handler to the Handler interface stored by the analyzer
func Erase[D any, A any](h DecoratorHandler[D, A]) Handler {
	return &erased[D, A]{inner: h}
}

type erased[D any, A any] struct {
	inner DecoratorHandler[D, A]
}

func (e *erased[D, A]) Name() string {
	return e.inner.Name()
}

func (e *erased[D, A]) Exclusivity() Exclusivity {
	return e.inner.Exclusivity()
}

func (e *erased[D, A]) Detect(node *host.ClassDeclaration) (any, bool) {
	detected, ok := e.inner.Detect(node)
	if !ok {
		return nil, false
	}
	return detected, true
}

func (e *erased[D, A]) Analyze(node *host.ClassDeclaration, detected any) (AnalysisOutput[any], error) {
	d, ok := detected.(D)
	if !ok {
		return AnalysisOutput[any]{}, fmt.Errorf("transform: %s: unexpected detection payload %T", e.inner.Name(), detected)
	}
	out, err := e.inner.Analyze(node, d)
	if err != nil {
		return AnalysisOutput[any]{Diagnostics: out.Diagnostics}, err
	}
	return AnalysisOutput[any]{Analysis: out.Analysis, Diagnostics: out.Diagnostics}, nil
}

func (e *erased[D, A]) Compile(node *host.ClassDeclaration, analysis any) ([]CompileResult, error) {
	a, ok := analysis.(A)
	if !ok {
		return nil, fmt.Errorf("transform: %s: unexpected analysis %T", e.inner.Name(), analysis)
	}
	return e.inner.Compile(node, a)
}

func (e *erased[D, A]) Index(node *host.ClassDeclaration, detected any) {
	indexer, ok := e.inner.(Indexer[D])
	if !ok {
		return
	}
	if d, ok := detected.(D); ok {
		indexer.Index(node, d)
	}
}

// Unwrap returns the typed handler behind an erased one
func Unwrap(h Handler) any {
	if u, ok := h.(interface{ unwrap() any }); ok {
		return u.unwrap()
	}
	return h
}

func (e *erased[D, A]) unwrap() any {
	return e.inner
}
