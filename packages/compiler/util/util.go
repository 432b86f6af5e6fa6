package util

import (
	"regexp"
	"strings"
)

var nonWordRegexp = regexp.MustCompile(`\W`)

// SplitAtColon splits a string at the colon character
func SplitAtColon(input string, defaultValues []string) []string {
	return splitAt(input, ':', defaultValues)
}

// SplitAtPeriod splits a string at the period character
func SplitAtPeriod(input string, defaultValues []string) []string {
	return splitAt(input, '.', defaultValues)
}

func splitAt(input string, character rune, defaultValues []string) []string {
	index := strings.IndexRune(input, character)
	if index == -1 {
		return defaultValues
	}
	return []string{
		strings.TrimSpace(input[:index]),
		strings.TrimSpace(input[index+1:]),
	}
}

// SanitizeIdentifier sanitizes an identifier name by replacing non-word characters with underscores
func SanitizeIdentifier(name string) string {
	return nonWordRegexp.ReplaceAllString(name, "_")
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
