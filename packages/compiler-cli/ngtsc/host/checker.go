package host

// Scope resolves names visible from a declaration
type Scope interface {
	// LookupConstant returns the initializer of the constant bound to name
	LookupConstant(name string) (Expression, bool)

	// LookupClass returns the class declaration called name
	LookupClass(name string) (*ClassDeclaration, bool)
}

// TypeChecker is the read-only resolution capability handed to handlers
type TypeChecker interface {
	ScopeOf(clazz *ClassDeclaration) Scope
}

// ProgramChecker resolves names across a fixed set of source files. Constants are
// file-local. Classes are looked up in the declaring file first and then across the
// program in file order. It is safe for concurrent use because it is never mutated
// after construction.
type ProgramChecker struct {
	files   []*SourceFile
	classes map[string]*ClassDeclaration
	scopes  map[*SourceFile]*fileScope
}

// NewProgramChecker creates a checker over files
func NewProgramChecker(files []*SourceFile) *ProgramChecker {
	pc := &ProgramChecker{
		files:   files,
		classes: map[string]*ClassDeclaration{},
		scopes:  map[*SourceFile]*fileScope{},
	}
	for _, sf := range files {
		fs := &fileScope{
			program:   pc,
			constants: map[string]Expression{},
			classes:   map[string]*ClassDeclaration{},
		}
		for _, c := range sf.Constants {
			fs.constants[c.Name] = c.Initializer
		}
		for _, clazz := range sf.Classes {
			fs.classes[clazz.Name] = clazz
			if _, ok := pc.classes[clazz.Name]; !ok {
				pc.classes[clazz.Name] = clazz
			}
		}
		pc.scopes[sf] = fs
	}
	return pc
}

// ScopeOf returns the scope of the file declaring clazz. Classes that are not part of
// the program only see program-wide classes.
func (pc *ProgramChecker) ScopeOf(clazz *ClassDeclaration) Scope {
	if clazz != nil {
		if fs, ok := pc.scopes[clazz.File]; ok {
			return fs
		}
	}
	return &fileScope{program: pc}
}

// FileScope returns the scope of sf
func (pc *ProgramChecker) FileScope(sf *SourceFile) Scope {
	if fs, ok := pc.scopes[sf]; ok {
		return fs
	}
	return &fileScope{program: pc}
}

type fileScope struct {
	program   *ProgramChecker
	constants map[string]Expression
	classes   map[string]*ClassDeclaration
}

func (fs *fileScope) LookupConstant(name string) (Expression, bool) {
	expr, ok := fs.constants[name]
	return expr, ok
}

func (fs *fileScope) LookupClass(name string) (*ClassDeclaration, bool) {
	if clazz, ok := fs.classes[name]; ok {
		return clazz, true
	}
	clazz, ok := fs.program.classes[name]
	return clazz, ok
}
