package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"ngcc-go/packages/compiler-cli/logging"
	"ngcc-go/packages/compiler-cli/ngtsc/annotations"
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
)

// Analyzer matches the classes of source files against a list of handlers and
// drives every match through analysis and compilation.
type Analyzer struct {
	handlers []transform.Handler
	registry *annotations.SelectorScopeRegistry
	logger   *log.Logger
	workers  int
}

// NewAnalyzer creates an analyzer. Unless WithHandlers is given, the built-in
// handlers are created against checker, loader and the analyzer's registry.
func NewAnalyzer(checker host.TypeChecker, loader annotations.ResourceLoader, opts ...Option) (*Analyzer, error) {
	o := &options{
		handlerNames: annotations.DefaultHandlerNames,
		workers:      1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.registry == nil {
		o.registry = annotations.NewSelectorScopeRegistry()
	}

	handlers := o.handlers
	if handlers == nil {
		var err error
		handlers, err = annotations.NewHandlers(o.handlerNames, &annotations.Context{
			Checker:       checker,
			Loader:        loader,
			Registry:      o.registry,
			StrictImports: o.strictImports,
		})
		if err != nil {
			return nil, fmt.Errorf("analyzer: %w", err)
		}
	}

	return &Analyzer{
		handlers: handlers,
		registry: o.registry,
		logger:   o.logger,
		workers:  o.workers,
	}, nil
}

// Handlers returns the handlers in registry order
func (a *Analyzer) Handlers() []transform.Handler {
	return append([]transform.Handler{}, a.handlers...)
}

// Registry returns the selector scope registry shared by the built-in handlers
func (a *Analyzer) Registry() *annotations.SelectorScopeRegistry {
	return a.registry
}

// AnalyzeFile indexes and then analyzes a single file. Classes no handler matched are
// left out of the result.
func (a *Analyzer) AnalyzeFile(sf *host.SourceFile) *AnalyzedFile {
	runID := uuid.NewString()
	a.indexFile(runID, sf)
	return a.analyzeFile(runID, sf)
}

// AnalyzeProgram indexes every file before analyzing any of them, so handlers see
// registrations from the whole program. Files are returned in input order.
func (a *Analyzer) AnalyzeProgram(ctx context.Context, files []*host.SourceFile) ([]*AnalyzedFile, error) {
	runID := uuid.NewString()
	a.logger.Info().Str("run_id", runID).Int("files", len(files)).Int("workers", a.workers).Msg("analyzing program")

	for _, sf := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.indexFile(runID, sf)
	}

	results := make([]*AnalyzedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, sf := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeFile(runID, sf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// indexFile registers the classes of sf with the handlers that matched them. A class
// matched by more than one exclusive handler is not indexed at all.
func (a *Analyzer) indexFile(runID string, sf *host.SourceFile) {
	for _, clazz := range sf.Classes {
		var matches []MatchingHandler
		for _, h := range a.handlers {
			detected, ok, err := a.detect(h, clazz)
			if err != nil || !ok {
				continue
			}
			matches = append(matches, MatchingHandler{Handler: h, Detected: detected})
		}
		if len(exclusiveNames(matches)) > 1 {
			continue
		}
		for _, m := range matches {
			if err := protect(func() error {
				m.Handler.Index(clazz, m.Detected)
				return nil
			}); err != nil {
				a.logger.Warn().Str("run_id", runID).Str("file", sf.FileName).Str("class", clazz.Name).
					Str("handler", m.Handler.Name()).Err(err).Msg("indexing failed")
			}
		}
	}
}

// exclusiveNames returns the names of the exclusive handlers among matches
func exclusiveNames(matches []MatchingHandler) []string {
	var names []string
	for _, m := range matches {
		if m.Handler.Exclusivity() == transform.Exclusive {
			names = append(names, m.Handler.Name())
		}
	}
	return names
}

func (a *Analyzer) analyzeFile(runID string, sf *host.SourceFile) *AnalyzedFile {
	result := &AnalyzedFile{SourceFile: sf}
	for _, clazz := range sf.Classes {
		analyzed, diags := a.analyzeClass(runID, clazz)
		result.Diagnostics = append(result.Diagnostics, diags...)
		if analyzed != nil {
			result.AnalyzedClasses = append(result.AnalyzedClasses, analyzed)
		}
	}
	a.logger.Debug().Str("run_id", runID).Str("file", sf.FileName).
		Int("classes", len(result.AnalyzedClasses)).Int("diagnostics", len(result.Diagnostics)).Msg("analyzed file")
	return result
}

// detectMatches runs every handler's Detect step. A failing Detect counts as no
// match and yields a diagnostic.
func (a *Analyzer) detectMatches(runID string, clazz *host.ClassDeclaration) ([]MatchingHandler, []diagnostics.Diagnostic) {
	var (
		matches []MatchingHandler
		diags   []diagnostics.Diagnostic
	)
	for _, h := range a.handlers {
		detected, ok, err := a.detect(h, clazz)
		if err != nil {
			diags = append(diags, failure(clazz, h, diagnostics.HandlerAnalysisFailure, err))
			a.logFailure(runID, clazz, h, "detect", err)
			continue
		}
		if ok {
			matches = append(matches, MatchingHandler{Handler: h, Detected: detected})
		}
	}
	return matches, diags
}

func (a *Analyzer) detect(h transform.Handler, clazz *host.ClassDeclaration) (detected any, ok bool, err error) {
	err = protect(func() error {
		detected, ok = h.Detect(clazz)
		return nil
	})
	return detected, ok, err
}

// analyzeClass resolves conflicts between matches and analyzes what survives. It
// returns nil when nothing matched or every match failed.
func (a *Analyzer) analyzeClass(runID string, clazz *host.ClassDeclaration) (*AnalyzedClass, []diagnostics.Diagnostic) {
	matches, diags := a.detectMatches(runID, clazz)
	if len(matches) == 0 {
		return nil, diags
	}

	exclusive := exclusiveNames(matches)
	if len(exclusive) > 1 {
		a.logger.Warn().Str("run_id", runID).Str("file", host.FileNameOf(clazz)).Str("class", clazz.Name).
			Strs("handlers", exclusive).Msg("conflicting annotations")
		diags = append(diags, diagnostics.Diagnostic{
			Code:     diagnostics.MultipleExclusiveAnnotations,
			Category: diagnostics.CategoryError,
			Message: fmt.Sprintf("%s is matched by more than one exclusive handler: %s",
				clazz.Name, strings.Join(exclusive, ", ")),
			Location: classLocation(clazz),
		})
		return nil, diags
	}

	var entries []AnalyzedClassEntry
	for _, m := range matches {
		a.logger.Debug().Str("run_id", runID).Str("class", clazz.Name).Str("handler", m.Handler.Name()).Msg("matched")
		entry, matchDiags, ok := a.analyzeMatch(runID, clazz, m)
		diags = append(diags, matchDiags...)
		if ok {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, diags
	}
	return &AnalyzedClass{Declaration: clazz, Entries: entries}, diags
}

// analyzeMatch runs Analyze and Compile for one match. Diagnostics are returned
// separately when the match fails and is dropped.
func (a *Analyzer) analyzeMatch(runID string, clazz *host.ClassDeclaration, m MatchingHandler) (AnalyzedClassEntry, []diagnostics.Diagnostic, bool) {
	h := m.Handler

	var out transform.AnalysisOutput[any]
	err := protect(func() error {
		var err error
		out, err = h.Analyze(clazz, m.Detected)
		return err
	})
	produced := scopeDiagnostics(clazz, h, out.Diagnostics)
	if err != nil {
		a.logFailure(runID, clazz, h, "analyze", err)
		return AnalyzedClassEntry{}, append(produced, failure(clazz, h, diagnostics.HandlerAnalysisFailure, err)), false
	}

	var compiled []transform.CompileResult
	err = protect(func() error {
		var err error
		compiled, err = h.Compile(clazz, out.Analysis)
		return err
	})
	if err == nil {
		err = validateCompilation(compiled)
	}
	if err != nil {
		a.logFailure(runID, clazz, h, "compile", err)
		return AnalyzedClassEntry{}, append(produced, failure(clazz, h, diagnostics.HandlerCompileFailure, err)), false
	}

	return AnalyzedClassEntry{
		Handler:     h,
		Analysis:    out.Analysis,
		Diagnostics: produced,
		Compilation: compiled,
	}, nil, true
}

func (a *Analyzer) logFailure(runID string, clazz *host.ClassDeclaration, h transform.Handler, step string, err error) {
	a.logger.Warn().Str("run_id", runID).Str("file", host.FileNameOf(clazz)).Str("class", clazz.Name).
		Str("handler", h.Name()).Str("step", step).Err(err).Msg("handler failed")
}

func validateCompilation(compiled []transform.CompileResult) error {
	if len(compiled) == 0 {
		return errNoArtifacts
	}
	for _, res := range compiled {
		if res.Initializer == nil {
			return fmt.Errorf("analyzer: artifact %q has no initializer", res.Name)
		}
	}
	return nil
}
