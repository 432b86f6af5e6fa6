package analyzer_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngcc-go/packages/compiler-cli/ngcc/analyzer"
	"ngcc-go/packages/compiler-cli/ngtsc/annotations"
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
	"ngcc-go/packages/compiler-cli/ngtsc/transform"
	"ngcc-go/packages/compiler/output"
)

// stubHandler matches classes carrying a decorator called decorator
type stubHandler struct {
	name        string
	decorator   string
	exclusivity transform.Exclusivity

	panicIn       string
	analyzeErr    error
	noArtifacts   bool
	warnOnAnalyze bool
}

func (h *stubHandler) Name() string                       { return h.name }
func (h *stubHandler) Exclusivity() transform.Exclusivity { return h.exclusivity }

func (h *stubHandler) Detect(node *host.ClassDeclaration) (*host.Decorator, bool) {
	if h.panicIn == "detect" {
		panic("detect exploded")
	}
	for _, dec := range node.Decorators {
		if dec.Name == h.decorator {
			return dec, true
		}
	}
	return nil, false
}

func (h *stubHandler) Analyze(node *host.ClassDeclaration, dec *host.Decorator) (transform.AnalysisOutput[string], error) {
	var out transform.AnalysisOutput[string]
	if h.panicIn == "analyze" {
		panic("analyze exploded")
	}
	if h.analyzeErr != nil {
		return out, h.analyzeErr
	}
	if h.warnOnAnalyze {
		out.Diagnostics = append(out.Diagnostics, diagnostics.Diagnostic{
			Code:     diagnostics.StaticEvaluationUnresolved,
			Category: diagnostics.CategoryWarning,
			Message:  "something was skipped",
		})
	}
	out.Analysis = h.name + ":" + node.Name
	return out, nil
}

func (h *stubHandler) Compile(node *host.ClassDeclaration, analysis string) ([]transform.CompileResult, error) {
	if h.panicIn == "compile" {
		panic("compile exploded")
	}
	if h.noArtifacts {
		return nil, nil
	}
	return []transform.CompileResult{{
		Name:        "ng" + h.name,
		Initializer: output.NewLiteralExpr(analysis, nil, nil),
	}}, nil
}

func erase(h *stubHandler) transform.Handler {
	return transform.Erase[*host.Decorator, string](h)
}

func exclusive(name string) *stubHandler {
	return &stubHandler{name: name, decorator: name}
}

func combinable(name string) *stubHandler {
	return &stubHandler{name: name, decorator: name, exclusivity: transform.Combinable}
}

func class(name string, decorators ...string) *host.ClassDeclaration {
	clazz := &host.ClassDeclaration{Name: name}
	for _, d := range decorators {
		clazz.Decorators = append(clazz.Decorators, &host.Decorator{Name: d})
	}
	return clazz
}

func newAnalyzer(t *testing.T, handlers ...*stubHandler) *analyzer.Analyzer {
	t.Helper()
	erased := make([]transform.Handler, len(handlers))
	for i, h := range handlers {
		erased[i] = erase(h)
	}
	a, err := analyzer.NewAnalyzer(nil, nil, analyzer.WithHandlers(erased...))
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}
	return a
}

func classNames(f *analyzer.AnalyzedFile) []string {
	var names []string
	for _, c := range f.AnalyzedClasses {
		names = append(names, c.Declaration.Name)
	}
	return names
}

func handlerNames(c *analyzer.AnalyzedClass) []string {
	var names []string
	for _, e := range c.Entries {
		names = append(names, e.Handler.Name())
	}
	return names
}

func codes(diags []diagnostics.Diagnostic) []diagnostics.ErrorCode {
	var out []diagnostics.ErrorCode
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestAnalyzeFile(t *testing.T) {
	t.Run("should leave out classes no handler matches", func(t *testing.T) {
		a := newAnalyzer(t, exclusive("A"), combinable("B"))
		sf := host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("Plain"), class("Other", "Unrelated")}, nil)

		result := a.AnalyzeFile(sf)
		if len(result.AnalyzedClasses) != 0 {
			t.Errorf("expected no analyzed classes, got %v", classNames(result))
		}
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no diagnostics, got %v", result.Diagnostics)
		}
	})

	t.Run("should produce one entry for a single exclusive match", func(t *testing.T) {
		a := newAnalyzer(t, exclusive("A"), combinable("B"))
		sf := host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("Cmp", "A")}, nil)

		result := a.AnalyzeFile(sf)
		if diff := cmp.Diff([]string{"Cmp"}, classNames(result)); diff != "" {
			t.Fatalf("classes mismatch (-want +got):\n%s", diff)
		}
		entries := result.AnalyzedClasses[0].Entries
		if len(entries) != 1 {
			t.Fatalf("expected one entry, got %d", len(entries))
		}
		if len(entries[0].Compilation) == 0 {
			t.Errorf("expected artifacts for a successful analysis")
		}
	})

	t.Run("should combine an exclusive and a combinable match", func(t *testing.T) {
		a := newAnalyzer(t, exclusive("A"), combinable("B"))
		clazz := class("Cmp", "B", "A")
		sf := host.NewSourceFile("a.yaml", []*host.ClassDeclaration{clazz}, nil)

		result := a.AnalyzeFile(sf)
		if len(result.AnalyzedClasses) != 1 {
			t.Fatalf("expected one analyzed class, got %d", len(result.AnalyzedClasses))
		}
		analyzed := result.AnalyzedClasses[0]
		if diff := cmp.Diff([]string{"A", "B"}, handlerNames(analyzed)); diff != "" {
			t.Errorf("entries should follow registry order (-want +got):\n%s", diff)
		}
		if analyzed.Declaration != clazz {
			t.Errorf("expected entries to reference the analyzed class")
		}
		for _, e := range analyzed.Entries {
			if len(e.Compilation) != 1 || e.Compilation[0].Name != "ng"+e.Handler.Name() {
				t.Errorf("expected %s to carry its own artifact, got %v", e.Handler.Name(), e.Compilation)
			}
		}
	})

	t.Run("should report conflicting exclusive matches and continue", func(t *testing.T) {
		a := newAnalyzer(t, exclusive("A"), exclusive("C"), combinable("B"))
		sf := host.NewSourceFile("a.yaml", []*host.ClassDeclaration{
			class("First", "A"),
			class("Conflict", "A", "C", "B"),
			class("Last", "C"),
		}, nil)

		result := a.AnalyzeFile(sf)
		if diff := cmp.Diff([]string{"First", "Last"}, classNames(result)); diff != "" {
			t.Errorf("classes mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]diagnostics.ErrorCode{diagnostics.MultipleExclusiveAnnotations}, codes(result.Diagnostics)); diff != "" {
			t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
		}
		d := result.Diagnostics[0]
		if d.Location.Class != "Conflict" || d.Location.File != "a.yaml" || d.Category != diagnostics.CategoryError {
			t.Errorf("unexpected diagnostic %s", d)
		}
		if d.Message != "Conflict is matched by more than one exclusive handler: A, C" {
			t.Errorf("unexpected message %q", d.Message)
		}
	})

	t.Run("should keep handler warnings on the entry", func(t *testing.T) {
		h := exclusive("A")
		h.warnOnAnalyze = true
		a := newAnalyzer(t, h)
		sf := host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("Cmp", "A")}, nil)

		result := a.AnalyzeFile(sf)
		entry := result.AnalyzedClasses[0].Entries[0]
		if len(entry.Diagnostics) != 1 {
			t.Fatalf("expected one warning, got %v", entry.Diagnostics)
		}
		if got := entry.Diagnostics[0]; got.Handler != "A" || got.Location.Class != "Cmp" {
			t.Errorf("expected the warning to be scoped to A on Cmp, got %s", got)
		}
		if len(result.AllDiagnostics()) != 1 {
			t.Errorf("expected AllDiagnostics to include entry warnings")
		}
	})
}

func TestAnalyzeFileFailureIsolation(t *testing.T) {
	for _, step := range []string{"detect", "analyze", "compile"} {
		t.Run(fmt.Sprintf("should isolate a panic in %s", step), func(t *testing.T) {
			broken := combinable("B")
			broken.panicIn = step
			a := newAnalyzer(t, exclusive("A"), broken)
			sf := host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("Cmp", "A", "B"), class("Next", "A")}, nil)

			result := a.AnalyzeFile(sf)
			if diff := cmp.Diff([]string{"Cmp", "Next"}, classNames(result)); diff != "" {
				t.Errorf("classes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"A"}, handlerNames(result.AnalyzedClasses[0])); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}

			want := diagnostics.HandlerAnalysisFailure
			if step == "compile" {
				want = diagnostics.HandlerCompileFailure
			}
			// a detect panic is reported for every class the handler sees
			if step == "detect" {
				if diff := cmp.Diff([]diagnostics.ErrorCode{want, want}, codes(result.Diagnostics)); diff != "" {
					t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if diff := cmp.Diff([]diagnostics.ErrorCode{want}, codes(result.Diagnostics)); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
			if result.Diagnostics[0].Handler != "B" {
				t.Errorf("expected the failure to be scoped to B, got %q", result.Diagnostics[0].Handler)
			}
		})
	}

	t.Run("should keep the code of fatal diagnostic errors", func(t *testing.T) {
		h := exclusive("A")
		h.analyzeErr = fmt.Errorf("wrapped: %w", diagnostics.NewFatalDiagnosticError(diagnostics.PipeMissingName, nil, "pipe has no name"))
		a := newAnalyzer(t, h)
		result := a.AnalyzeFile(host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("P", "A")}, nil))

		if len(result.AnalyzedClasses) != 0 {
			t.Errorf("expected the failed class to be dropped")
		}
		if diff := cmp.Diff([]diagnostics.ErrorCode{diagnostics.PipeMissingName}, codes(result.Diagnostics)); diff != "" {
			t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
		}
		if result.Diagnostics[0].Message != "pipe has no name" {
			t.Errorf("unexpected message %q", result.Diagnostics[0].Message)
		}
	})

	t.Run("should use the generic code for plain errors", func(t *testing.T) {
		h := exclusive("A")
		h.analyzeErr = errors.New("boom")
		a := newAnalyzer(t, h)
		result := a.AnalyzeFile(host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("P", "A")}, nil))
		if diff := cmp.Diff([]diagnostics.ErrorCode{diagnostics.HandlerAnalysisFailure}, codes(result.Diagnostics)); diff != "" {
			t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject empty compilations", func(t *testing.T) {
		h := exclusive("A")
		h.noArtifacts = true
		a := newAnalyzer(t, h)
		result := a.AnalyzeFile(host.NewSourceFile("a.yaml", []*host.ClassDeclaration{class("P", "A")}, nil))
		if len(result.AnalyzedClasses) != 0 {
			t.Errorf("expected the class to be dropped")
		}
		if diff := cmp.Diff([]diagnostics.ErrorCode{diagnostics.HandlerCompileFailure}, codes(result.Diagnostics)); diff != "" {
			t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStaticallyResolveNeverFails(t *testing.T) {
	exprs := []host.Expression{
		host.NewStringLiteral("a", nil),
		host.NewNumericLiteral(1, nil),
		host.NewBooleanLiteral(true, nil),
		host.NewNullLiteral(nil),
		host.NewIdentifier("missing", nil),
		host.NewObjectLiteral([]*host.PropertyAssignment{{Name: "x", Initializer: host.NewIdentifier("missing", nil)}}, nil),
		host.NewArrayLiteral([]host.Expression{host.NewOpaqueExpression("a + b", nil)}, nil),
		host.NewCallExpression(host.NewIdentifier("f", nil), nil, nil),
		host.NewPropertyAccess(host.NewNullLiteral(nil), "x", nil),
		host.NewOpaqueExpression("() => 1", nil),
	}
	for _, expr := range exprs {
		if v := metadata.StaticallyResolve(expr, nil); v == nil {
			t.Errorf("StaticallyResolve(%s) returned nil", expr.Kind())
		}
	}
}

func TestBuiltinHandlers(t *testing.T) {
	input := &host.ClassMember{
		Name:       "value",
		Decorators: []*host.Decorator{{Name: "Input", Args: []host.Expression{host.NewStringLiteral("foo", nil)}}},
	}
	changed := &host.ClassMember{Name: "changed", Decorators: []*host.Decorator{{Name: "Output"}}}

	base := &host.ClassDeclaration{Name: "Base", Members: []*host.ClassMember{input, changed}}
	conflict := &host.ClassDeclaration{Name: "Both", Decorators: []*host.Decorator{
		{Name: "Injectable"},
		{Name: "Component", Args: []host.Expression{host.NewObjectLiteral([]*host.PropertyAssignment{
			{Name: "selector", Initializer: host.NewStringLiteral("app-both", nil)},
			{Name: "template", Initializer: host.NewStringLiteral("", nil)},
		}, nil)}},
	}}
	svc := &host.ClassDeclaration{Name: "Svc", Decorators: []*host.Decorator{{Name: "Injectable"}}}
	sf := host.NewSourceFile("app.yaml", []*host.ClassDeclaration{base, conflict, svc}, nil)

	a, err := analyzer.NewAnalyzer(host.NewProgramChecker([]*host.SourceFile{sf}), nil)
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}
	result := a.AnalyzeFile(sf)

	t.Run("should analyze undecorated base classes", func(t *testing.T) {
		if diff := cmp.Diff([]string{"Base", "Svc"}, classNames(result)); diff != "" {
			t.Fatalf("classes mismatch (-want +got):\n%s", diff)
		}
		entry := result.AnalyzedClasses[0].Entries[0]
		if entry.Handler.Name() != annotations.HandlerBaseRef {
			t.Fatalf("expected the base-ref handler, got %s", entry.Handler.Name())
		}
		printed := output.PrintExpression(entry.Compilation[0].Initializer)
		want := "ɵɵdefineBase({inputs: {value: ['foo', 'value']}, outputs: {changed: 'changed'}})"
		if printed != want {
			t.Errorf("expected %q, got %q", want, printed)
		}
	})

	t.Run("should report the injectable and component conflict", func(t *testing.T) {
		if diff := cmp.Diff([]diagnostics.ErrorCode{diagnostics.MultipleExclusiveAnnotations}, codes(result.Diagnostics)); diff != "" {
			t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
		}
		if result.Diagnostics[0].Location.Class != "Both" {
			t.Errorf("expected the conflict on Both, got %s", result.Diagnostics[0].Location.Class)
		}
	})

	t.Run("should still compile the valid sibling", func(t *testing.T) {
		svcClass := result.AnalyzedClasses[1]
		if len(svcClass.Entries) != 1 {
			t.Fatalf("expected one entry for Svc, got %d", len(svcClass.Entries))
		}
		if len(svcClass.Entries[0].Compilation) == 0 {
			t.Errorf("expected Svc to produce at least one artifact")
		}
	})
}

func component(name, selector string) *host.ClassDeclaration {
	return &host.ClassDeclaration{Name: name, Decorators: []*host.Decorator{
		{Name: "Component", Args: []host.Expression{host.NewObjectLiteral([]*host.PropertyAssignment{
			{Name: "selector", Initializer: host.NewStringLiteral(selector, nil)},
			{Name: "template", Initializer: host.NewStringLiteral("", nil)},
		}, nil)}},
	}}
}

func TestConflictingClassIsNotIndexed(t *testing.T) {
	app := component("App", "app")
	bad := component("Bad", "bad")
	bad.Decorators = append(bad.Decorators, &host.Decorator{Name: "Pipe", Args: []host.Expression{
		host.NewObjectLiteral([]*host.PropertyAssignment{
			{Name: "name", Initializer: host.NewStringLiteral("badPipe", nil)},
		}, nil),
	}})
	module := &host.ClassDeclaration{Name: "AppModule", Decorators: []*host.Decorator{
		{Name: "NgModule", Args: []host.Expression{host.NewObjectLiteral([]*host.PropertyAssignment{
			{Name: "declarations", Initializer: host.NewArrayLiteral([]host.Expression{
				host.NewIdentifier("App", nil), host.NewIdentifier("Bad", nil),
			}, nil)},
		}, nil)}},
	}}
	sf := host.NewSourceFile("app.yaml", []*host.ClassDeclaration{app, bad, module}, nil)

	a, err := analyzer.NewAnalyzer(host.NewProgramChecker([]*host.SourceFile{sf}), nil)
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}
	results, err := a.AnalyzeProgram(context.Background(), []*host.SourceFile{sf})
	if err != nil {
		t.Fatalf("AnalyzeProgram() failed: %v", err)
	}
	result := results[0]

	t.Run("should report the conflict", func(t *testing.T) {
		if diff := cmp.Diff([]diagnostics.ErrorCode{diagnostics.MultipleExclusiveAnnotations}, codes(result.Diagnostics)); diff != "" {
			t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"App", "AppModule"}, classNames(result)); diff != "" {
			t.Errorf("classes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should leave the conflicting class out of the registry", func(t *testing.T) {
		if _, ok := a.Registry().LookupSelector(bad); ok {
			t.Errorf("expected no selector for Bad")
		}
		if _, ok := a.Registry().LookupPipeName(bad); ok {
			t.Errorf("expected no pipe name for Bad")
		}
		scope, ok := a.Registry().LookupCompilationScope(app)
		if !ok {
			t.Fatalf("expected a compilation scope for App")
		}
		if len(scope.Pipes) != 0 {
			t.Errorf("expected no pipes in scope, got %d", len(scope.Pipes))
		}
		if len(scope.Directives) != 1 || scope.Directives[0].Ref != app {
			t.Errorf("expected only App in scope, got %v", scope.Directives)
		}
	})

	t.Run("should not reference the conflicting class from siblings", func(t *testing.T) {
		for _, res := range result.AnalyzedClasses[0].Entries[0].Compilation {
			printed := output.PrintExpression(res.Initializer)
			if strings.Contains(printed, "Bad") {
				t.Errorf("expected App.%s not to mention Bad, got %s", res.Name, printed)
			}
		}
	})
}

func TestIdempotence(t *testing.T) {
	dir := &host.ClassDeclaration{Name: "Dir", Decorators: []*host.Decorator{{Name: "Directive", Args: []host.Expression{
		host.NewObjectLiteral([]*host.PropertyAssignment{{Name: "selector", Initializer: host.NewStringLiteral("[dir]", nil)}}, nil),
	}}}}
	module := &host.ClassDeclaration{Name: "AppModule", Decorators: []*host.Decorator{{Name: "NgModule", Args: []host.Expression{
		host.NewObjectLiteral([]*host.PropertyAssignment{
			{Name: "declarations", Initializer: host.NewArrayLiteral([]host.Expression{host.NewIdentifier("Dir", nil), host.NewIdentifier("Gone", nil)}, nil)},
		}, nil),
	}}}}
	sf := host.NewSourceFile("app.yaml", []*host.ClassDeclaration{dir, module}, nil)
	a, err := analyzer.NewAnalyzer(host.NewProgramChecker([]*host.SourceFile{sf}), nil)
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}

	first := a.AnalyzeFile(sf)
	second := a.AnalyzeFile(sf)
	if first == second {
		t.Fatalf("expected a new result for every run")
	}

	opts := cmp.Options{
		cmp.Comparer(func(x, y transform.Handler) bool { return x == y }),
		cmp.Comparer(func(x, y *host.ClassDeclaration) bool { return x == y }),
		cmp.Comparer(func(x, y *host.SourceFile) bool { return x == y }),
	}
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Errorf("re-running the analyzer changed the result (-first +second):\n%s", diff)
	}
}

func TestAnalyzeProgram(t *testing.T) {
	var files []*host.SourceFile
	for i := 0; i < 12; i++ {
		files = append(files, host.NewSourceFile(fmt.Sprintf("f%02d.yaml", i), []*host.ClassDeclaration{
			class(fmt.Sprintf("C%02d", i), "A"),
			class(fmt.Sprintf("D%02d", i), "A", "C"),
		}, nil))
	}
	handlers := []transform.Handler{erase(exclusive("A")), erase(exclusive("C"))}

	sequential, err := analyzer.NewAnalyzer(nil, nil, analyzer.WithHandlers(handlers...))
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}
	parallel, err := analyzer.NewAnalyzer(nil, nil, analyzer.WithHandlers(handlers...), analyzer.WithWorkers(4))
	if err != nil {
		t.Fatalf("NewAnalyzer() failed: %v", err)
	}

	t.Run("should return files in input order regardless of workers", func(t *testing.T) {
		want, err := sequential.AnalyzeProgram(context.Background(), files)
		if err != nil {
			t.Fatalf("AnalyzeProgram() failed: %v", err)
		}
		got, err := parallel.AnalyzeProgram(context.Background(), files)
		if err != nil {
			t.Fatalf("AnalyzeProgram() failed: %v", err)
		}
		if len(got) != len(files) {
			t.Fatalf("expected %d files, got %d", len(files), len(got))
		}
		for i := range files {
			if got[i].SourceFile != files[i] {
				t.Errorf("file %d out of order", i)
			}
		}
		opts := cmp.Options{
			cmp.Comparer(func(x, y transform.Handler) bool { return x == y }),
			cmp.Comparer(func(x, y *host.ClassDeclaration) bool { return x == y }),
			cmp.Comparer(func(x, y *host.SourceFile) bool { return x == y }),
		}
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("parallel result differs (-sequential +parallel):\n%s", diff)
		}
	})

	t.Run("should stop on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := parallel.AnalyzeProgram(ctx, files); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestNewAnalyzer(t *testing.T) {
	t.Run("should select built-in handlers by name", func(t *testing.T) {
		a, err := analyzer.NewAnalyzer(nil, nil, analyzer.WithHandlerNames(annotations.HandlerPipe, annotations.HandlerBaseRef))
		if err != nil {
			t.Fatalf("NewAnalyzer() failed: %v", err)
		}
		var names []string
		for _, h := range a.Handlers() {
			names = append(names, h.Name())
		}
		if diff := cmp.Diff([]string{annotations.HandlerPipe, annotations.HandlerBaseRef}, names); diff != "" {
			t.Errorf("handlers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject unknown handler names", func(t *testing.T) {
		if _, err := analyzer.NewAnalyzer(nil, nil, analyzer.WithHandlerNames("bogus")); err == nil {
			t.Errorf("expected an error")
		}
	})

	t.Run("should share the given registry", func(t *testing.T) {
		registry := annotations.NewSelectorScopeRegistry()
		a, err := analyzer.NewAnalyzer(nil, nil, analyzer.WithRegistry(registry))
		if err != nil {
			t.Fatalf("NewAnalyzer() failed: %v", err)
		}
		if a.Registry() != registry {
			t.Errorf("expected the analyzer to use the given registry")
		}
	})
}
