package analyzer

import (
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
)

// MatchingHandler is a handler whose Detect step matched a class
type MatchingHandler struct {
	Handler  transform.Handler
	Detected any
}

// AnalyzedClassEntry is the outcome of one handler for one class
type AnalyzedClassEntry struct {
	Handler     transform.Handler
	Analysis    any
	Diagnostics []diagnostics.Diagnostic
	Compilation []transform.CompileResult
}

// AnalyzedClass is a class with at least one successful handler
type AnalyzedClass struct {
	Declaration *host.ClassDeclaration
	Entries     []AnalyzedClassEntry
}

// AnalyzedFile is the result of analyzing one source file
type AnalyzedFile struct {
	SourceFile      *host.SourceFile
	AnalyzedClasses []*AnalyzedClass

	// Diagnostics of classes or handlers that were dropped, such as conflicts and
	// handler failures
	Diagnostics []diagnostics.Diagnostic
}

// AllDiagnostics returns the file diagnostics followed by the diagnostics of every
// successful handler, in class order
func (f *AnalyzedFile) AllDiagnostics() []diagnostics.Diagnostic {
	all := append([]diagnostics.Diagnostic{}, f.Diagnostics...)
	for _, clazz := range f.AnalyzedClasses {
		for _, entry := range clazz.Entries {
			all = append(all, entry.Diagnostics...)
		}
	}
	return all
}
