package view

import (
	"fmt"
	"regexp"
	"strings"

	"ngcc-go/packages/compiler/output"
)

// SelectorFlags are flags used to generate R3-style CSS Selectors
type SelectorFlags int

const (
	SelectorFlagsNOT       SelectorFlags = 0b0001 // Beginning of a new negative selector
	SelectorFlagsATTRIBUTE SelectorFlags = 0b0010 // Mode for matching attributes
	SelectorFlagsELEMENT   SelectorFlags = 0b0100 // Mode for matching tag names
	SelectorFlagsCLASS     SelectorFlags = 0b1000 // Mode for matching class names
)

// R3CssSelector represents an R3 CSS selector
type R3CssSelector []interface{} // string | SelectorFlags

// R3CssSelectorList represents a list of R3 CSS selectors
type R3CssSelectorList []R3CssSelector

// regexp group indices
const (
	groupNot          = 1
	groupTag          = 2
	groupPrefix       = 3
	groupAttribute    = 4
	groupDoubleQuote  = 5
	groupDoubleValue  = 6
	groupSingleQuote  = 7
	groupSingleValue  = 8
	groupUnquoted     = 9
	groupUnquotedExpr = 10
	groupNotEnd       = 12
	groupSeparator    = 13
)

// Go regexp doesn't support backreferences, so double-quoted, single-quoted and unquoted
// attribute values are matched by separate alternatives.
var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` +
		`(([\.\#]?)[-\w]+)|` +
		`(?:\[([-.\w*\\$]+)(?:=(")([^\]"]*)"|(')([^\]']*)'|(=)([^\]\s]+)|())\])|` +
		`(\))|` +
		`(\s*,\s*)`,
)

// CssSelector is a parsed simple selector with optional :not() parts
type CssSelector struct {
	Element      string
	ClassNames   []string
	Attrs        []string // Pairs: [name, value, name, value, ...]
	NotSelectors []*CssSelector
}

func (cs *CssSelector) empty() bool {
	return cs.Element == "" && len(cs.ClassNames) == 0 && len(cs.Attrs) == 0
}

// AddAttribute adds an attribute
func (cs *CssSelector) AddAttribute(name string, value string) {
	cs.Attrs = append(cs.Attrs, name, strings.ToLower(value))
}

// AddClassName adds a class name
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

// ParseCssSelector parses a selector list such as `button[mat-button], .btn:not([disabled])`
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	var results []*CssSelector
	addResult := func(cssSel *CssSelector) {
		if len(cssSel.NotSelectors) > 0 && cssSel.empty() {
			cssSel.Element = "*"
		}
		results = append(results, cssSel)
	}

	cssSelector := &CssSelector{}
	current := cssSelector
	inNot := false

	for _, match := range selectorRegexp.FindAllStringSubmatch(selector, -1) {
		if match[groupNot] != "" {
			if inNot {
				return nil, fmt.Errorf("nesting :not in a selector is not allowed")
			}
			inNot = true
			current = &CssSelector{}
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, current)
		}

		if tag := match[groupTag]; tag != "" {
			switch match[groupPrefix] {
			case "#":
				current.AddAttribute("id", tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				current.Element = tag
			}
		}

		if attribute := match[groupAttribute]; attribute != "" {
			name, err := unescapeAttribute(attribute)
			if err != nil {
				return nil, err
			}
			var value string
			switch {
			case match[groupDoubleQuote] != "":
				value = match[groupDoubleValue]
			case match[groupSingleQuote] != "":
				value = match[groupSingleValue]
			case match[groupUnquoted] != "":
				value = match[groupUnquotedExpr]
			}
			current.AddAttribute(name, value)
		}

		if match[groupNotEnd] != "" {
			inNot = false
			current = cssSelector
		}

		if match[groupSeparator] != "" {
			if inNot {
				return nil, fmt.Errorf("multiple selectors in :not are not supported")
			}
			addResult(cssSelector)
			cssSelector = &CssSelector{}
			current = cssSelector
		}
	}

	addResult(cssSelector)
	return results, nil
}

// unescapeAttribute unescapes \$ sequences from the CSS attribute selector
func unescapeAttribute(attr string) (string, error) {
	var b strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		char := attr[i]
		if char == '\\' {
			escaping = true
			continue
		}
		if char == '$' && !escaping {
			return "", fmt.Errorf(`error in attribute selector "%s". unescaped "$" is not supported. please escape with "\$"`, attr)
		}
		escaping = false
		b.WriteByte(char)
	}
	return b.String(), nil
}

// ParseSelectorToR3Selector parses a selector string to R3 selector format
func ParseSelectorToR3Selector(selector string) (R3CssSelectorList, error) {
	if selector == "" {
		return R3CssSelectorList{}, nil
	}
	selectors, err := ParseCssSelector(selector)
	if err != nil {
		return nil, err
	}
	list := make(R3CssSelectorList, 0, len(selectors))
	for _, sel := range selectors {
		r3 := toSimpleSelector(sel)
		for _, not := range sel.NotSelectors {
			r3 = append(r3, toNegativeSelector(not)...)
		}
		list = append(list, r3)
	}
	return list, nil
}

func toSimpleSelector(sel *CssSelector) R3CssSelector {
	element := sel.Element
	if element == "*" {
		element = ""
	}
	r3 := R3CssSelector{element}
	for _, attr := range sel.Attrs {
		r3 = append(r3, attr)
	}
	if len(sel.ClassNames) > 0 {
		r3 = append(r3, SelectorFlagsCLASS)
		for _, class := range sel.ClassNames {
			r3 = append(r3, class)
		}
	}
	return r3
}

func toNegativeSelector(sel *CssSelector) R3CssSelector {
	var r3 R3CssSelector
	switch {
	case sel.Element != "":
		r3 = R3CssSelector{SelectorFlagsNOT | SelectorFlagsELEMENT, sel.Element}
		for _, attr := range sel.Attrs {
			r3 = append(r3, attr)
		}
	case len(sel.Attrs) > 0:
		r3 = R3CssSelector{SelectorFlagsNOT | SelectorFlagsATTRIBUTE}
		for _, attr := range sel.Attrs {
			r3 = append(r3, attr)
		}
	case len(sel.ClassNames) > 0:
		r3 = R3CssSelector{SelectorFlagsNOT | SelectorFlagsCLASS}
		for _, class := range sel.ClassNames {
			r3 = append(r3, class)
		}
		return r3
	default:
		return nil
	}
	if len(sel.ClassNames) > 0 {
		r3 = append(r3, SelectorFlagsCLASS)
		for _, class := range sel.ClassNames {
			r3 = append(r3, class)
		}
	}
	return r3
}

// SelectorsToExpression renders a selector list as a nested array literal
func SelectorsToExpression(list R3CssSelectorList) output.OutputExpression {
	selectors := make([]output.OutputExpression, len(list))
	for i, sel := range list {
		parts := make([]output.OutputExpression, len(sel))
		for j, part := range sel {
			switch p := part.(type) {
			case SelectorFlags:
				parts[j] = output.NewLiteralExpr(int(p), nil, nil)
			default:
				parts[j] = AsLiteral(p)
			}
		}
		selectors[i] = output.NewLiteralArrayExpr(parts, nil, nil)
	}
	return output.NewLiteralArrayExpr(selectors, nil, nil)
}
