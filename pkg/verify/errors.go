package verify

import "fmt"

// RuleError reports a structurally malformed rule tree: an unknown node
// kind, a NOT node without a child, or a selector that fails to parse. These
// are caller contract violations, so the whole evaluation fails rather than
// returning a partial verdict.
type RuleError struct {
	// Detail describes what is malformed.
	Detail string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed rule: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("malformed rule: %s", e.Detail)
}

// Unwrap returns the underlying cause.
func (e *RuleError) Unwrap() error {
	return e.Cause
}
