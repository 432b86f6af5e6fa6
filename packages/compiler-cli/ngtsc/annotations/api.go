package annotations

import (
	"ngcc-go/packages/compiler-cli/ngtsc/host"
)

// ResourceLoader loads external resources such as templateUrl and styleUrls
type ResourceLoader interface {
	Load(url string) (string, error)
}

// Context carries the collaborators shared by every handler of one analyzer
type Context struct {
	Checker  host.TypeChecker
	Loader   ResourceLoader
	Registry *SelectorScopeRegistry

	// StrictImports only recognizes decorators explicitly imported from CoreModule
	StrictImports bool
}

func (c *Context) scopeOf(clazz *host.ClassDeclaration) host.Scope {
	if c == nil || c.Checker == nil {
		return nil
	}
	return c.Checker.ScopeOf(clazz)
}
