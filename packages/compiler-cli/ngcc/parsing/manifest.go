package parsing

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler/util"
)

// Tags understood on expression values. Untagged scalars are literals, mappings
// are object literals and sequences are array literals.
const (
	TagRef  = "!ref"
	TagCall = "!call"
	TagExpr = "!expr"
)

type manifestDoc struct {
	Files []yaml.Node `yaml:"files"`
}

type fileEntry struct {
	Name      string      `yaml:"name"`
	Constants yaml.Node   `yaml:"constants"`
	Classes   []yaml.Node `yaml:"classes"`
}

type classEntry struct {
	Name       string      `yaml:"name"`
	Decorators []yaml.Node `yaml:"decorators"`
	Members    []yaml.Node `yaml:"members"`
	CtorParams []yaml.Node `yaml:"ctorParams"`
	TypeArgs   int         `yaml:"typeArgs"`
}

type decoratorEntry struct {
	Name   string      `yaml:"name"`
	Import string      `yaml:"import"`
	Args   []yaml.Node `yaml:"args"`
}

type memberEntry struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind"`
	Static     bool        `yaml:"static"`
	Decorators []yaml.Node `yaml:"decorators"`
}

type ctorParamEntry struct {
	Name       string      `yaml:"name"`
	Type       yaml.Node   `yaml:"type"`
	Decorators []yaml.Node `yaml:"decorators"`
}

// LoadManifest reads and parses the manifest at path
func LoadManifest(path string) ([]*host.SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing: read %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses a declaration manifest. name is used for error messages
// and source spans.
func ParseManifest(data []byte, name string) ([]*host.SourceFile, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing: decode %s: %w", name, err)
	}

	p := &parser{file: util.NewParseSourceFile(string(data), name), visiting: map[*yaml.Node]bool{}}
	var files []*host.SourceFile
	seen := map[string]bool{}
	for i := range doc.Files {
		sf, err := p.sourceFile(&doc.Files[i])
		if err != nil {
			return nil, err
		}
		if seen[sf.FileName] {
			return nil, p.errorf(&doc.Files[i], "duplicate file %q", sf.FileName)
		}
		seen[sf.FileName] = true
		files = append(files, sf)
	}
	return files, nil
}

type parser struct {
	file *util.ParseSourceFile

	// anchored nodes currently being converted
	visiting map[*yaml.Node]bool
}

func (p *parser) errorf(node *yaml.Node, format string, args ...interface{}) error {
	return fmt.Errorf("parsing: %s:%d:%d: %s", p.file.URL, node.Line, node.Column, fmt.Sprintf(format, args...))
}

func (p *parser) span(node *yaml.Node) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(util.NewParseLocation(p.file, -1, node.Line, node.Column), nil, nil)
}

func (p *parser) decode(node *yaml.Node, out interface{}) error {
	if err := node.Decode(out); err != nil {
		return p.errorf(node, "%v", err)
	}
	return nil
}

func (p *parser) sourceFile(node *yaml.Node) (*host.SourceFile, error) {
	var entry fileEntry
	if err := p.decode(node, &entry); err != nil {
		return nil, err
	}
	if entry.Name == "" {
		return nil, p.errorf(node, "file has no name")
	}

	constants, err := p.constants(&entry.Constants)
	if err != nil {
		return nil, err
	}

	var classes []*host.ClassDeclaration
	names := map[string]bool{}
	for i := range entry.Classes {
		clazz, err := p.class(&entry.Classes[i])
		if err != nil {
			return nil, err
		}
		if names[clazz.Name] {
			return nil, p.errorf(&entry.Classes[i], "duplicate class %q in %s", clazz.Name, entry.Name)
		}
		names[clazz.Name] = true
		classes = append(classes, clazz)
	}
	return host.NewSourceFile(entry.Name, classes, constants), nil
}

func (p *parser) constants(node *yaml.Node) ([]*host.ConstantBinding, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, p.errorf(node, "constants must be a mapping")
	}
	var bindings []*host.ConstantBinding
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		init, err := p.expression(value)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, &host.ConstantBinding{
			Name:        key.Value,
			Initializer: init,
			SourceSpan:  p.span(key),
		})
	}
	return bindings, nil
}

func (p *parser) class(node *yaml.Node) (*host.ClassDeclaration, error) {
	var entry classEntry
	if err := p.decode(node, &entry); err != nil {
		return nil, err
	}
	if entry.Name == "" {
		return nil, p.errorf(node, "class has no name")
	}

	clazz := &host.ClassDeclaration{
		Name:              entry.Name,
		TypeArgumentCount: entry.TypeArgs,
		SourceSpan:        p.span(node),
	}
	var err error
	if clazz.Decorators, err = p.decorators(entry.Decorators); err != nil {
		return nil, err
	}
	for i := range entry.Members {
		member, err := p.member(&entry.Members[i])
		if err != nil {
			return nil, err
		}
		clazz.Members = append(clazz.Members, member)
	}
	for i := range entry.CtorParams {
		param, err := p.ctorParam(&entry.CtorParams[i])
		if err != nil {
			return nil, err
		}
		clazz.CtorParameters = append(clazz.CtorParameters, param)
	}
	return clazz, nil
}

func (p *parser) decorators(nodes []yaml.Node) ([]*host.Decorator, error) {
	var decorators []*host.Decorator
	for i := range nodes {
		node := &nodes[i]
		var entry decoratorEntry
		if err := p.decode(node, &entry); err != nil {
			return nil, err
		}
		if entry.Name == "" {
			return nil, p.errorf(node, "decorator has no name")
		}
		dec := &host.Decorator{
			Name:       entry.Name,
			ImportFrom: entry.Import,
			SourceSpan: p.span(node),
		}
		for j := range entry.Args {
			arg, err := p.expression(&entry.Args[j])
			if err != nil {
				return nil, err
			}
			dec.Args = append(dec.Args, arg)
		}
		decorators = append(decorators, dec)
	}
	return decorators, nil
}

func (p *parser) member(node *yaml.Node) (*host.ClassMember, error) {
	var entry memberEntry
	if err := p.decode(node, &entry); err != nil {
		return nil, err
	}
	if entry.Name == "" {
		return nil, p.errorf(node, "member has no name")
	}
	kind := host.ClassMemberKindProperty
	if entry.Kind != "" {
		var ok bool
		if kind, ok = host.ParseClassMemberKind(entry.Kind); !ok {
			return nil, p.errorf(node, "unknown member kind %q", entry.Kind)
		}
	}
	decorators, err := p.decorators(entry.Decorators)
	if err != nil {
		return nil, err
	}
	return &host.ClassMember{
		Name:       entry.Name,
		Kind:       kind,
		IsStatic:   entry.Static,
		Decorators: decorators,
		SourceSpan: p.span(node),
	}, nil
}

func (p *parser) ctorParam(node *yaml.Node) (*host.CtorParameter, error) {
	var entry ctorParamEntry
	if err := p.decode(node, &entry); err != nil {
		return nil, err
	}
	param := &host.CtorParameter{Name: entry.Name}
	if entry.Type.Kind != 0 {
		typ, err := p.expression(&entry.Type)
		if err != nil {
			return nil, err
		}
		param.TypeExpression = typ
	}
	var err error
	if param.Decorators, err = p.decorators(entry.Decorators); err != nil {
		return nil, err
	}
	return param, nil
}

// expression converts a YAML value into an expression tree
func (p *parser) expression(node *yaml.Node) (host.Expression, error) {
	if node.Anchor != "" {
		p.visiting[node] = true
		defer delete(p.visiting, node)
	}
	span := p.span(node)
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil || p.visiting[node.Alias] {
			return nil, p.errorf(node, "alias %s refers to itself", node.Value)
		}
		return p.expression(node.Alias)

	case yaml.MappingNode:
		if node.Tag == TagCall {
			return nil, p.errorf(node, "%s must be a name or a sequence", TagCall)
		}
		var props []*host.PropertyAssignment
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := p.expression(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			props = append(props, &host.PropertyAssignment{Name: node.Content[i].Value, Initializer: value})
		}
		return host.NewObjectLiteral(props, span), nil

	case yaml.SequenceNode:
		elements := make([]host.Expression, 0, len(node.Content))
		for _, child := range node.Content {
			el, err := p.expression(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
		if node.Tag == TagCall {
			if len(elements) == 0 {
				return nil, p.errorf(node, "%s needs a callee", TagCall)
			}
			return host.NewCallExpression(elements[0], elements[1:], span), nil
		}
		return host.NewArrayLiteral(elements, span), nil

	case yaml.ScalarNode:
		return p.scalar(node, span)
	}
	return nil, p.errorf(node, "unsupported value")
}

func (p *parser) scalar(node *yaml.Node, span *util.ParseSourceSpan) (host.Expression, error) {
	switch node.Tag {
	case TagRef:
		ref, err := reference(node.Value, span)
		if err != nil {
			return nil, p.errorf(node, "%v", err)
		}
		return ref, nil
	case TagCall:
		callee, err := reference(node.Value, span)
		if err != nil {
			return nil, p.errorf(node, "%v", err)
		}
		return host.NewCallExpression(callee, nil, span), nil
	case TagExpr:
		return host.NewOpaqueExpression(node.Value, span), nil
	case "!!null":
		return host.NewNullLiteral(span), nil
	case "!!bool":
		var b bool
		if err := p.decode(node, &b); err != nil {
			return nil, err
		}
		return host.NewBooleanLiteral(b, span), nil
	case "!!int", "!!float":
		var f float64
		if err := p.decode(node, &f); err != nil {
			return nil, err
		}
		return host.NewNumericLiteral(f, span), nil
	case "!!str", "":
		return host.NewStringLiteral(node.Value, span), nil
	}
	return nil, p.errorf(node, "unknown tag %s", node.Tag)
}

// reference turns `a.b.c` into an identifier followed by property reads
func reference(text string, span *util.ParseSourceSpan) (host.Expression, error) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	for _, part := range parts {
		if !isIdentifier(part) {
			return nil, fmt.Errorf("%s is not a valid reference", strconv.Quote(text))
		}
	}
	var expr host.Expression = host.NewIdentifier(parts[0], span)
	for _, part := range parts[1:] {
		expr = host.NewPropertyAccess(expr, part, span)
	}
	return expr, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
