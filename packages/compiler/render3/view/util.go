package view

import (
	"regexp"

	"ngcc-go/packages/compiler/output"
)

// UNSAFE_OBJECT_KEY_NAME_REGEXP checks whether an object key contains potentially unsafe chars
var UNSAFE_OBJECT_KEY_NAME_REGEXP = regexp.MustCompile(`[-.]`)

// AsLiteral converts a value to a literal expression
func AsLiteral(value interface{}) output.OutputExpression {
	switch v := value.(type) {
	case []interface{}:
		literals := make([]output.OutputExpression, len(v))
		for i, item := range v {
			literals[i] = AsLiteral(item)
		}
		return output.NewLiteralArrayExpr(literals, nil, nil)
	case []string:
		return output.LiteralStringArr(v)
	}
	return output.NewLiteralExpr(value, output.InferredType, nil)
}

// DirectiveBindingValue is one input or output of a directive
type DirectiveBindingValue struct {
	ClassPropertyName   string
	BindingPropertyName string
}

// ConditionallyCreateDirectiveBindingLiteral serializes inputs and outputs for the definition
// functions, in declaration order. It returns nil when there are no bindings.
//
// Inputs whose public name differs from the class property are written as
// `[publicName, classPropertyName]`; everything else is written as `publicName`.
func ConditionallyCreateDirectiveBindingLiteral(bindings []DirectiveBindingValue, forInputs bool) output.OutputExpression {
	if len(bindings) == 0 {
		return nil
	}

	entries := make([]*output.LiteralMapEntry, 0, len(bindings))
	for _, binding := range bindings {
		declaredName := binding.ClassPropertyName
		publicName := binding.BindingPropertyName

		var value output.OutputExpression
		if forInputs && publicName != declaredName {
			value = output.LiteralStringArr([]string{publicName, declaredName})
		} else {
			value = AsLiteral(publicName)
		}

		// put quotes around keys that contain potentially unsafe characters
		quoted := UNSAFE_OBJECT_KEY_NAME_REGEXP.MatchString(declaredName)
		entries = append(entries, output.NewLiteralMapEntry(declaredName, value, quoted))
	}

	return output.NewLiteralMapExpr(entries, nil, nil)
}

// DefinitionMapEntry represents an entry in a DefinitionMap
type DefinitionMapEntry struct {
	Key    string
	Quoted bool
	Value  output.OutputExpression
}

// DefinitionMap is a representation for an object literal used during codegen of definition objects.
type DefinitionMap struct {
	Values []DefinitionMapEntry
}

// NewDefinitionMap creates a new DefinitionMap
func NewDefinitionMap() *DefinitionMap {
	return &DefinitionMap{
		Values: []DefinitionMapEntry{},
	}
}

// Set sets a key-value pair in the map. If the key already exists, it updates the value.
// If value is nil, the key is not added.
func (dm *DefinitionMap) Set(key string, value output.OutputExpression) {
	if value == nil {
		return
	}
	for i := range dm.Values {
		if dm.Values[i].Key == key {
			dm.Values[i].Value = value
			return
		}
	}
	dm.Values = append(dm.Values, DefinitionMapEntry{
		Key:    key,
		Quoted: false,
		Value:  value,
	})
}

// Has reports whether key has been set
func (dm *DefinitionMap) Has(key string) bool {
	for _, entry := range dm.Values {
		if entry.Key == key {
			return true
		}
	}
	return false
}

// ToLiteralMap converts the DefinitionMap to a LiteralMapExpr
func (dm *DefinitionMap) ToLiteralMap() *output.LiteralMapExpr {
	entries := make([]*output.LiteralMapEntry, len(dm.Values))
	for i, entry := range dm.Values {
		entries[i] = output.NewLiteralMapEntry(entry.Key, entry.Value, entry.Quoted)
	}
	return output.NewLiteralMapExpr(entries, nil, nil)
}
