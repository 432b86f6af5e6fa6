package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	"ngcc-go/packages/compiler/util"
)

// ErrorCode identifies the kind of a diagnostic
type ErrorCode string

const (
	// MultipleExclusiveAnnotations indicates more than one exclusive handler matched a class.
	MultipleExclusiveAnnotations ErrorCode = "multiple-exclusive-annotations"
	// HandlerAnalysisFailure indicates a handler's detect or analyze step failed.
	HandlerAnalysisFailure ErrorCode = "handler-analysis-failure"
	// HandlerCompileFailure indicates a handler's compile step failed or produced nothing.
	HandlerCompileFailure ErrorCode = "handler-compile-failure"
	// ResourceLoadFailure indicates an external resource such as a templateUrl could not be loaded.
	ResourceLoadFailure ErrorCode = "resource-load-failure"
	// StaticEvaluationUnresolved indicates a decorator argument could not be statically resolved.
	StaticEvaluationUnresolved ErrorCode = "static-evaluation-unresolved"

	// DecoratorArityWrong indicates a decorator was called with an unexpected number of arguments.
	DecoratorArityWrong ErrorCode = "decorator-arity-wrong"
	// DecoratorArgNotLiteral indicates a decorator argument was not an object literal.
	DecoratorArgNotLiteral ErrorCode = "decorator-arg-not-literal"
	// ValueHasWrongType indicates a decorator property resolved to a value of the wrong type.
	ValueHasWrongType ErrorCode = "value-has-wrong-type"

	// ComponentMissingTemplate indicates a component has neither template nor templateUrl.
	ComponentMissingTemplate ErrorCode = "component-missing-template"
	// DirectiveMissingSelector indicates a non-abstract directive has no selector.
	DirectiveMissingSelector ErrorCode = "directive-missing-selector"
	// PipeMissingName indicates a pipe has no name.
	PipeMissingName ErrorCode = "pipe-missing-name"
)

// Category is the severity of a diagnostic
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
)

func (c Category) String() string {
	if c == CategoryWarning {
		return "warning"
	}
	return "error"
}

// Location points at the class or member a diagnostic is about
type Location struct {
	File       string
	Class      string
	Member     string
	SourceSpan *util.ParseSourceSpan
}

func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.File)
	if l.SourceSpan != nil && l.SourceSpan.Start != nil && l.SourceSpan.Start.Line > 0 {
		fmt.Fprintf(&b, ":%d:%d", l.SourceSpan.Start.Line, l.SourceSpan.Start.Col)
	}
	if l.Class != "" {
		b.WriteString(" ")
		b.WriteString(l.Class)
		if l.Member != "" {
			b.WriteString(".")
			b.WriteString(l.Member)
		}
	}
	return b.String()
}

// Diagnostic is a structured report produced by the pipeline
type Diagnostic struct {
	Code     ErrorCode
	Category Category
	Message  string
	Location Location

	// Handler is the name of the handler that produced the diagnostic, if any
	Handler string
}

func (d Diagnostic) String() string {
	handler := ""
	if d.Handler != "" {
		handler = " (" + d.Handler + ")"
	}
	return fmt.Sprintf("%s - %s %s%s: %s", d.Location, d.Category, d.Code, handler, d.Message)
}

// HasErrors reports whether any of diags is an error
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Category == CategoryError {
			return true
		}
	}
	return false
}

// FatalDiagnosticError is returned by handlers for conditions they cannot recover from.
// The analyzer turns it into a diagnostic carrying its own code.
type FatalDiagnosticError struct {
	Code       ErrorCode
	SourceSpan *util.ParseSourceSpan
	Message    string

	// Member is set when the error is about a class member
	Member string

	// Err is the underlying cause, if any
	Err error
}

// NewFatalDiagnosticError creates a FatalDiagnosticError with a formatted message
func NewFatalDiagnosticError(code ErrorCode, sourceSpan *util.ParseSourceSpan, format string, args ...interface{}) *FatalDiagnosticError {
	return &FatalDiagnosticError{
		Code:       code,
		SourceSpan: sourceSpan,
		Message:    fmt.Sprintf(format, args...),
	}
}

// WrapFatal creates a FatalDiagnosticError caused by err
func WrapFatal(code ErrorCode, sourceSpan *util.ParseSourceSpan, err error, format string, args ...interface{}) *FatalDiagnosticError {
	fe := NewFatalDiagnosticError(code, sourceSpan, format, args...)
	fe.Err = err
	return fe
}

func (e *FatalDiagnosticError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FatalDiagnosticError) Unwrap() error {
	return e.Err
}

// AsFatal reports whether err is, or wraps, a FatalDiagnosticError
func AsFatal(err error) (*FatalDiagnosticError, bool) {
	var fe *FatalDiagnosticError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
