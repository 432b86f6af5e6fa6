package annotations_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngcc-go/packages/compiler-cli/ngtsc/annotations"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

func scopeNames(scope *annotations.CompilationScope) ([]string, []string) {
	var directives, pipes []string
	for _, d := range scope.Directives {
		directives = append(directives, d.Ref.Name+"="+d.Selector)
	}
	for _, p := range scope.Pipes {
		pipes = append(pipes, p.Name)
	}
	return directives, pipes
}

func TestSelectorScopeRegistry(t *testing.T) {
	cmpA := &host.ClassDeclaration{Name: "ACmp"}
	cmpB := &host.ClassDeclaration{Name: "BCmp"}
	dateFmt := &host.ClassDeclaration{Name: "DatePipe"}
	upper := &host.ClassDeclaration{Name: "UpperPipe"}
	common := &host.ClassDeclaration{Name: "CommonModule"}
	reexport := &host.ClassDeclaration{Name: "ReexportModule"}
	app := &host.ClassDeclaration{Name: "AppModule"}
	other := &host.ClassDeclaration{Name: "ZModule"}
	host.NewSourceFile("a.yaml", []*host.ClassDeclaration{cmpA, cmpB, dateFmt, upper, common, reexport, app, other}, nil)

	t.Run("should insert only once", func(t *testing.T) {
		r := annotations.NewSelectorScopeRegistry()
		if !r.RegisterSelector(cmpA, "a-cmp") {
			t.Errorf("expected first insertion to succeed")
		}
		if r.RegisterSelector(cmpA, "other") {
			t.Errorf("expected second insertion to be ignored")
		}
		if got, _ := r.LookupSelector(cmpA); got != "a-cmp" {
			t.Errorf("expected a-cmp, got %q", got)
		}
		if r.Version() != 1 {
			t.Errorf("expected version 1, got %d", r.Version())
		}
	})

	populate := func(r *annotations.SelectorScopeRegistry, reversed bool) {
		steps := []func(){
			func() { r.RegisterSelector(cmpA, "a-cmp") },
			func() { r.RegisterSelector(cmpB, "b-cmp") },
			func() { r.RegisterPipeName(dateFmt, "date") },
			func() { r.RegisterPipeName(upper, "upper") },
			func() {
				r.RegisterNgModule(common, annotations.ModuleData{Declarations: []*host.ClassDeclaration{upper, dateFmt}, Exports: []*host.ClassDeclaration{upper, dateFmt}})
			},
			func() {
				r.RegisterNgModule(reexport, annotations.ModuleData{Imports: []*host.ClassDeclaration{common}, Exports: []*host.ClassDeclaration{common, reexport}})
			},
			func() {
				r.RegisterNgModule(app, annotations.ModuleData{Declarations: []*host.ClassDeclaration{cmpB, cmpA}, Imports: []*host.ClassDeclaration{reexport}})
			},
			func() {
				r.RegisterNgModule(other, annotations.ModuleData{Declarations: []*host.ClassDeclaration{cmpA}})
			},
		}
		if reversed {
			for i := len(steps) - 1; i >= 0; i-- {
				steps[i]()
			}
			return
		}
		for _, step := range steps {
			step()
		}
	}

	t.Run("should resolve transitive exports deterministically", func(t *testing.T) {
		forward := annotations.NewSelectorScopeRegistry()
		populate(forward, false)
		backward := annotations.NewSelectorScopeRegistry()
		populate(backward, true)

		for _, r := range []*annotations.SelectorScopeRegistry{forward, backward} {
			scope, ok := r.LookupCompilationScope(cmpA)
			if !ok {
				t.Fatalf("expected a scope for ACmp")
			}
			directives, pipes := scopeNames(scope)
			if diff := cmp.Diff([]string{"ACmp=a-cmp", "BCmp=b-cmp"}, directives); diff != "" {
				t.Errorf("directives mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"date", "upper"}, pipes); diff != "" {
				t.Errorf("pipes mismatch (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("should report classes without a module", func(t *testing.T) {
		r := annotations.NewSelectorScopeRegistry()
		populate(r, false)
		if _, ok := r.LookupCompilationScope(&host.ClassDeclaration{Name: "Loose"}); ok {
			t.Errorf("expected no scope")
		}
	})
}
