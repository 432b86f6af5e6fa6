package host

import (
	"ngcc-go/packages/compiler/util"
)

// Decorator is a decorator attached to a class, member or constructor parameter
type Decorator struct {
	// Name of the decorator as written, e.g. `Component`
	Name string

	// Module the decorator was imported from, e.g. `@angular/core`. Empty when unknown.
	ImportFrom string

	Args       []Expression
	SourceSpan *util.ParseSourceSpan
}

// ClassMemberKind is the kind of a class member
type ClassMemberKind int

const (
	ClassMemberKindProperty ClassMemberKind = iota
	ClassMemberKindMethod
	ClassMemberKindGetter
	ClassMemberKindSetter
)

var classMemberKindNames = map[ClassMemberKind]string{
	ClassMemberKindProperty: "property",
	ClassMemberKindMethod:   "method",
	ClassMemberKindGetter:   "getter",
	ClassMemberKindSetter:   "setter",
}

func (k ClassMemberKind) String() string {
	return classMemberKindNames[k]
}

// ParseClassMemberKind maps a member kind name back to its ClassMemberKind
func ParseClassMemberKind(name string) (ClassMemberKind, bool) {
	for kind, n := range classMemberKindNames {
		if n == name {
			return kind, true
		}
	}
	return ClassMemberKindProperty, false
}

// ClassMember is a member of a class
type ClassMember struct {
	Name       string
	Kind       ClassMemberKind
	IsStatic   bool
	Decorators []*Decorator
	SourceSpan *util.ParseSourceSpan
}

// CtorParameter is a constructor parameter
type CtorParameter struct {
	Name string

	// Expression for the declared type of the parameter, usually an Identifier, or nil
	TypeExpression Expression

	Decorators []*Decorator
}

// ClassDeclaration is a class with its members and decorators. It is never
// mutated after the source file has been parsed.
type ClassDeclaration struct {
	Name              string
	Decorators        []*Decorator
	Members           []*ClassMember
	CtorParameters    []*CtorParameter
	TypeArgumentCount int
	SourceSpan        *util.ParseSourceSpan

	// File is the source file that contains the declaration
	File *SourceFile
}

// ConstantBinding is a top-level `const NAME = <expr>`
type ConstantBinding struct {
	Name        string
	Initializer Expression
	SourceSpan  *util.ParseSourceSpan
}

// SourceFile is a parsed source file
type SourceFile struct {
	FileName  string
	Classes   []*ClassDeclaration
	Constants []*ConstantBinding
}

// NewSourceFile creates a source file and points every class back at it
func NewSourceFile(fileName string, classes []*ClassDeclaration, constants []*ConstantBinding) *SourceFile {
	sf := &SourceFile{
		FileName:  fileName,
		Classes:   classes,
		Constants: constants,
	}
	for _, clazz := range classes {
		clazz.File = sf
	}
	return sf
}

// FileNameOf returns the name of the file declaring clazz, or "" if unknown
func FileNameOf(clazz *ClassDeclaration) string {
	if clazz == nil || clazz.File == nil {
		return ""
	}
	return clazz.File.FileName
}
