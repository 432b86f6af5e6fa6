package r3_identifiers

import (
	"ngcc-go/packages/compiler/output"
)

var CORE string = "@angular/core"

var Core = &output.ExternalReference{Name: nil, ModuleName: &CORE}

// Definition functions
var (
	DefineBase       = &output.ExternalReference{Name: stringPtr("ɵɵdefineBase"), ModuleName: &CORE}
	DefineComponent  = &output.ExternalReference{Name: stringPtr("ɵɵdefineComponent"), ModuleName: &CORE}
	DefineDirective  = &output.ExternalReference{Name: stringPtr("ɵɵdefineDirective"), ModuleName: &CORE}
	DefineInjectable = &output.ExternalReference{Name: stringPtr("ɵɵdefineInjectable"), ModuleName: &CORE}
	DefineInjector   = &output.ExternalReference{Name: stringPtr("ɵɵdefineInjector"), ModuleName: &CORE}
	DefineNgModule   = &output.ExternalReference{Name: stringPtr("ɵɵdefineNgModule"), ModuleName: &CORE}
	DefinePipe       = &output.ExternalReference{Name: stringPtr("ɵɵdefinePipe"), ModuleName: &CORE}
)

// Dependency injection
var (
	Inject            = &output.ExternalReference{Name: stringPtr("ɵɵinject"), ModuleName: &CORE}
	DirectiveInject   = &output.ExternalReference{Name: stringPtr("ɵɵdirectiveInject"), ModuleName: &CORE}
	InvalidFactoryDep = &output.ExternalReference{Name: stringPtr("ɵɵinvalidFactoryDep"), ModuleName: &CORE}
)

// Declaration types
var (
	BaseDef               = &output.ExternalReference{Name: stringPtr("ɵɵBaseDef"), ModuleName: &CORE}
	ComponentDeclaration  = &output.ExternalReference{Name: stringPtr("ɵɵComponentDeclaration"), ModuleName: &CORE}
	DirectiveDeclaration  = &output.ExternalReference{Name: stringPtr("ɵɵDirectiveDeclaration"), ModuleName: &CORE}
	FactoryDeclaration    = &output.ExternalReference{Name: stringPtr("ɵɵFactoryDeclaration"), ModuleName: &CORE}
	InjectableDeclaration = &output.ExternalReference{Name: stringPtr("ɵɵInjectableDeclaration"), ModuleName: &CORE}
	InjectorDeclaration   = &output.ExternalReference{Name: stringPtr("ɵɵInjectorDeclaration"), ModuleName: &CORE}
	NgModuleDeclaration   = &output.ExternalReference{Name: stringPtr("ɵɵNgModuleDeclaration"), ModuleName: &CORE}
	PipeDeclaration       = &output.ExternalReference{Name: stringPtr("ɵɵPipeDeclaration"), ModuleName: &CORE}
)

func stringPtr(s string) *string {
	return &s
}
