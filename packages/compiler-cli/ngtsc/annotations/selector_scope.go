package annotations

import (
	"sort"
	"sync"

	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

// ModuleData is what the registry records about an ng-module
type ModuleData struct {
	Declarations []*host.ClassDeclaration
	Imports      []*host.ClassDeclaration
	Exports      []*host.ClassDeclaration
}

// ScopeDirective is a directive or component visible in a compilation scope
type ScopeDirective struct {
	Selector string
	Ref      *host.ClassDeclaration
}

// ScopePipe is a pipe visible in a compilation scope
type ScopePipe struct {
	Name string
	Ref  *host.ClassDeclaration
}

// CompilationScope lists what a component's template may use
type CompilationScope struct {
	Directives []ScopeDirective
	Pipes      []ScopePipe
}

// SelectorScopeRegistry records selectors, pipe names and ng-modules keyed by
// declaration identity. Every register call is insert-if-absent.
type SelectorScopeRegistry struct {
	mu sync.RWMutex

	selectors map[*host.ClassDeclaration]string
	pipeNames map[*host.ClassDeclaration]string
	modules   map[*host.ClassDeclaration]*ModuleData
	version   uint64
}

// NewSelectorScopeRegistry creates an empty registry
func NewSelectorScopeRegistry() *SelectorScopeRegistry {
	return &SelectorScopeRegistry{
		selectors: map[*host.ClassDeclaration]string{},
		pipeNames: map[*host.ClassDeclaration]string{},
		modules:   map[*host.ClassDeclaration]*ModuleData{},
	}
}

// RegisterSelector records the selector of a directive or component. It reports
// whether the entry was inserted.
func (r *SelectorScopeRegistry) RegisterSelector(clazz *host.ClassDeclaration, selector string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.selectors[clazz]; ok {
		return false
	}
	r.selectors[clazz] = selector
	r.version++
	return true
}

// RegisterPipeName records the template name of a pipe
func (r *SelectorScopeRegistry) RegisterPipeName(clazz *host.ClassDeclaration, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pipeNames[clazz]; ok {
		return false
	}
	r.pipeNames[clazz] = name
	r.version++
	return true
}

// RegisterNgModule records the declarations, imports and exports of an ng-module
func (r *SelectorScopeRegistry) RegisterNgModule(clazz *host.ClassDeclaration, data ModuleData) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[clazz]; ok {
		return false
	}
	r.modules[clazz] = &data
	r.version++
	return true
}

// Version is incremented on every successful insertion
func (r *SelectorScopeRegistry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// LookupSelector returns the registered selector of clazz
func (r *SelectorScopeRegistry) LookupSelector(clazz *host.ClassDeclaration) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.selectors[clazz]
	return s, ok
}

// LookupPipeName returns the registered name of clazz
func (r *SelectorScopeRegistry) LookupPipeName(clazz *host.ClassDeclaration) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.pipeNames[clazz]
	return s, ok
}

// LookupCompilationScope returns the directives and pipes visible to component. The
// scope comes from the ng-module declaring component; when several do, the one that
// sorts first by class and file name wins. Results are sorted by name so they do not
// depend on registration order.
func (r *SelectorScopeRegistry) LookupCompilationScope(component *host.ClassDeclaration) (*CompilationScope, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owner *host.ClassDeclaration
	for module, data := range r.modules {
		if !containsClass(data.Declarations, component) {
			continue
		}
		if owner == nil || lessDeclaration(module, owner) {
			owner = module
		}
	}
	if owner == nil {
		return nil, false
	}

	data := r.modules[owner]
	visible := append([]*host.ClassDeclaration{}, data.Declarations...)
	for _, imported := range data.Imports {
		visible = append(visible, r.exportedFrom(imported, map[*host.ClassDeclaration]bool{})...)
	}

	scope := &CompilationScope{}
	seen := map[*host.ClassDeclaration]bool{}
	for _, clazz := range visible {
		if seen[clazz] {
			continue
		}
		seen[clazz] = true
		if selector, ok := r.selectors[clazz]; ok {
			scope.Directives = append(scope.Directives, ScopeDirective{Selector: selector, Ref: clazz})
		}
		if name, ok := r.pipeNames[clazz]; ok {
			scope.Pipes = append(scope.Pipes, ScopePipe{Name: name, Ref: clazz})
		}
	}
	sort.SliceStable(scope.Directives, func(i, j int) bool {
		return lessDeclaration(scope.Directives[i].Ref, scope.Directives[j].Ref)
	})
	sort.SliceStable(scope.Pipes, func(i, j int) bool {
		if scope.Pipes[i].Name != scope.Pipes[j].Name {
			return scope.Pipes[i].Name < scope.Pipes[j].Name
		}
		return lessDeclaration(scope.Pipes[i].Ref, scope.Pipes[j].Ref)
	})
	return scope, true
}

// exportedFrom returns the classes an import contributes. A module contributes its
// exports, recursively for exported modules. Any other class contributes itself.
func (r *SelectorScopeRegistry) exportedFrom(clazz *host.ClassDeclaration, visiting map[*host.ClassDeclaration]bool) []*host.ClassDeclaration {
	data, ok := r.modules[clazz]
	if !ok {
		return []*host.ClassDeclaration{clazz}
	}
	if visiting[clazz] {
		return nil
	}
	visiting[clazz] = true

	var out []*host.ClassDeclaration
	for _, exported := range data.Exports {
		out = append(out, r.exportedFrom(exported, visiting)...)
	}
	return out
}

func containsClass(list []*host.ClassDeclaration, clazz *host.ClassDeclaration) bool {
	for _, c := range list {
		if c == clazz {
			return true
		}
	}
	return false
}

func lessDeclaration(a, b *host.ClassDeclaration) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return host.FileNameOf(a) < host.FileNameOf(b)
}
