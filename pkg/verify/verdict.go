package verify

// Verdict is the outcome of evaluating one rule tree.
type Verdict struct {
	// Passed is the final boolean outcome.
	Passed bool `json:"passed"`

	// Message summarizes a failure; it is empty for passing verdicts of
	// leaf rules. Operator-level specifics live in Details.
	Message string `json:"message,omitempty"`

	// Details is the ordered diagnostic trail: one line per operator check
	// evaluated, in evaluation order.
	Details []string `json:"details,omitempty"`
}

// pass constructs a passing verdict.
func pass(details []string) *Verdict {
	return &Verdict{Passed: true, Details: details}
}

// fail constructs a failing verdict.
func fail(message string, details []string) *Verdict {
	return &Verdict{Passed: false, Message: message, Details: details}
}
