package claimerr

import (
	"fmt"
	"strings"
)

// Type categorizes a spec error.
type Type string

const (
	// TypeSyntax is a TOML syntax error.
	TypeSyntax Type = "syntax"
	// TypeStructural is a schema violation (missing or wrongly typed field).
	TypeStructural Type = "structural"
	// TypeSemantic is an invalid reference or value (bad selector, unknown
	// probe kind, unknown operator).
	TypeSemantic Type = "semantic"
	// TypeIO is a file read error.
	TypeIO Type = "io"
)

// Error is a single spec problem with enough context to locate and fix it.
type Error struct {
	// Type is the error category.
	Type Type

	// Subject names the spec element the error concerns, as a dotted path
	// like "claims.tests-pass.rule".
	Subject string

	// Message describes the problem.
	Message string

	// File is the spec file path, when known.
	File string

	// Suggestion is an optional suggested fix.
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s]", e.Type))
	if e.File != "" {
		sb.WriteString(" " + e.File)
	}
	if e.Subject != "" {
		sb.WriteString(" " + e.Subject)
	}
	sb.WriteString(": " + e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (suggestion: " + e.Suggestion + ")")
	}
	return sb.String()
}

// List accumulates spec errors so validation can report everything at once.
type List struct {
	Errors []*Error
}

// NewList creates an empty error list.
func NewList() *List {
	return &List{Errors: make([]*Error, 0)}
}

// Add appends an error.
func (l *List) Add(err *Error) {
	l.Errors = append(l.Errors, err)
}

// Addf creates and appends an error with a formatted message.
func (l *List) Addf(t Type, subject, format string, args ...interface{}) {
	l.Add(&Error{Type: t, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any errors were collected.
func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// Count returns the number of collected errors.
func (l *List) Count() int {
	return len(l.Errors)
}

// Error implements the error interface over the whole list.
func (l *List) Error() string {
	if !l.HasErrors() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s) in claim spec:\n", l.Count()))
	for _, err := range l.Errors {
		sb.WriteString("  - " + err.Error() + "\n")
	}
	return sb.String()
}

// ToError returns nil when the list is empty, otherwise the list itself.
func (l *List) ToError() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}
