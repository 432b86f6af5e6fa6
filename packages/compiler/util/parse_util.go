package util

import (
	"fmt"
)

// ParseSourceFile represents a source file
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{
		Content: content,
		URL:     url,
	}
}

// ParseLocation represents a location in the source file.
// Line and Col are 1-based; a negative Offset means the location is unknown.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{
		File:   file,
		Offset: offset,
		Line:   line,
		Col:    col,
	}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	if p == nil {
		return ""
	}
	url := ""
	if p.File != nil {
		url = p.File.URL
	}
	if p.Line > 0 {
		return fmt.Sprintf("%s@%d:%d", url, p.Line, p.Col)
	}
	return url
}

// ParseSourceSpan represents a span of source code
type ParseSourceSpan struct {
	Start   *ParseLocation
	End     *ParseLocation
	Details *string
}

// NewParseSourceSpan creates a new ParseSourceSpan. A nil end collapses the span to start.
func NewParseSourceSpan(start, end *ParseLocation, details *string) *ParseSourceSpan {
	if end == nil {
		end = start
	}
	return &ParseSourceSpan{
		Start:   start,
		End:     end,
		Details: details,
	}
}

// String returns the source text covered by the span, or the start location when the
// file content is not available.
func (p *ParseSourceSpan) String() string {
	if p == nil || p.Start == nil {
		return ""
	}
	file := p.Start.File
	if file != nil && p.Start.Offset >= 0 && p.End != nil && p.End.Offset <= len(file.Content) && p.Start.Offset <= p.End.Offset {
		return file.Content[p.Start.Offset:p.End.Offset]
	}
	return p.Start.String()
}
