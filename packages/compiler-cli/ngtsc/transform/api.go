package transform

import (
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler/output"
)

// Exclusivity controls how a handler combines with others on the same class
type Exclusivity int

const (
	// Exclusive handlers may not match a class together with another exclusive handler
	Exclusive Exclusivity = iota
	// Combinable handlers may match alongside any other handler
	Combinable
)

func (e Exclusivity) String() string {
	if e == Combinable {
		return "combinable"
	}
	return "exclusive"
}

// AnalysisOutput is the result of analyzing a class with one handler
type AnalysisOutput[A any] struct {
	Analysis    A
	Diagnostics []diagnostics.Diagnostic
}

// CompileResult is one compiled artifact, e.g. a static `ngComponentDef` field
type CompileResult struct {
	// Name of the static field the artifact is assigned to
	Name string

	Initializer output.OutputExpression

	// Type of the field, or nil
	Type output.Type

	// Statements that must be emitted next to the field
	Statements []output.OutputStatement
}

// DecoratorHandler detects, analyzes and compiles one kind of annotation.
// D is the detection payload and A the analysis.
type DecoratorHandler[D any, A any] interface {
	Name() string
	Exclusivity() Exclusivity

	// Detect reports whether the handler applies to node. It must not have side effects.
	Detect(node *host.ClassDeclaration) (D, bool)

	Analyze(node *host.ClassDeclaration, detected D) (AnalysisOutput[A], error)

	Compile(node *host.ClassDeclaration, analysis A) ([]CompileResult, error)
}

// Indexer is implemented by handlers that record declarations into a shared
// registry before any class is analyzed.
type Indexer[D any] interface {
	Index(node *host.ClassDeclaration, detected D)
}

// Handler is a DecoratorHandler with its payload and analysis types erased
type Handler interface {
	Name() string
	Exclusivity() Exclusivity
	Detect(node *host.ClassDeclaration) (any, bool)
	Analyze(node *host.ClassDeclaration, detected any) (AnalysisOutput[any], error)
	Compile(node *host.ClassDeclaration, analysis any) ([]CompileResult, error)

	// Index forwards to the handler's Indexer. It is a no-op for handlers without one.
	Index(node *host.ClassDeclaration, detected any)
}
