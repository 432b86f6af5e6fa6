package analyzer

import (
	"errors"
	"fmt"

	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
)

var errNoArtifacts = errors.New("analyzer: compile produced no artifacts")

// PanicError is a panic recovered from a handler
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}

func classLocation(clazz *host.ClassDeclaration) diagnostics.Location {
	return diagnostics.Location{
		File:       host.FileNameOf(clazz),
		Class:      clazz.Name,
		SourceSpan: clazz.SourceSpan,
	}
}

// failure turns a handler error into a diagnostic. A FatalDiagnosticError keeps
// its own code, anything else gets fallback.
func failure(clazz *host.ClassDeclaration, h transform.Handler, fallback diagnostics.ErrorCode, err error) diagnostics.Diagnostic {
	d := diagnostics.Diagnostic{
		Code:     fallback,
		Category: diagnostics.CategoryError,
		Message:  err.Error(),
		Location: classLocation(clazz),
		Handler:  h.Name(),
	}
	if fe, ok := diagnostics.AsFatal(err); ok {
		d.Code = fe.Code
		d.Message = fe.Message
		if fe.Err != nil {
			d.Message += ": " + fe.Err.Error()
		}
		if fe.SourceSpan != nil {
			d.Location.SourceSpan = fe.SourceSpan
		}
		d.Location.Member = fe.Member
	}
	return d
}

// scopeDiagnostics fills in the handler and class of diagnostics a handler produced
func scopeDiagnostics(clazz *host.ClassDeclaration, h transform.Handler, diags []diagnostics.Diagnostic) []diagnostics.Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]diagnostics.Diagnostic, len(diags))
	for i, d := range diags {
		if d.Handler == "" {
			d.Handler = h.Name()
		}
		if d.Location.Class == "" {
			d.Location.Class = clazz.Name
		}
		if d.Location.File == "" {
			d.Location.File = host.FileNameOf(clazz)
		}
		if d.Location.SourceSpan == nil {
			d.Location.SourceSpan = clazz.SourceSpan
		}
		out[i] = d
	}
	return out
}
