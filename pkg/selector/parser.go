package selector

import (
	"fmt"
	"strings"
)

// Selector is a parsed path expression: an ordered sequence of raw segments.
// Glob wildcards inside segments are preserved verbatim; they are interpreted
// at resolve time, not parse time.
type Selector struct {
	// Text is the original selector expression.
	Text string

	// Segments are the path components in order. The first selects record
	// id(s); the rest descend into the record structure.
	Segments []string
}

// ParseError reports a syntactically malformed selector expression.
type ParseError struct {
	Text    string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid selector %q: %s", e.Text, e.Message)
}

// Parse splits a selector expression into segments.
//
// Segments are separated by '.'. A segment may instead be written as
// "[content]", where content is taken verbatim up to the matching ']'; this
// allows literal dots or slashes inside one segment (e.g. a file path used
// as a map key). Dot and bracket notation mix freely: "a[b].c" and "a.[b].c"
// are equivalent. A '.' immediately after ']' is optional. Empty segments
// from leading or doubled dots are dropped.
//
// The only hard error is an unclosed '[' before the end of the expression.
func Parse(text string) (*Selector, error) {
	var segments []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, current.String())
			current.Reset()
		}
	}

	i := 0
	for i < len(text) {
		switch text[i] {
		case '.':
			flush()
			i++
		case '[':
			flush()
			end := strings.IndexByte(text[i+1:], ']')
			if end < 0 {
				return nil, &ParseError{Text: text, Message: "unclosed '['"}
			}
			segments = append(segments, text[i+1:i+1+end])
			i += end + 2
			// A separator dot after ']' is consumed but not required.
			if i < len(text) && text[i] == '.' {
				i++
			}
		default:
			current.WriteByte(text[i])
			i++
		}
	}
	flush()

	return &Selector{Text: text, Segments: segments}, nil
}
