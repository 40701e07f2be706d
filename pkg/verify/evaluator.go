package verify

import (
	"fmt"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
	"attest-hq/attest/pkg/selector"
)

// failureMessage is the generic leaf failure summary; operator-level detail
// carries the specifics.
const failureMessage = "Verification failed"

// Evaluate runs a rule tree against a fact-record mapping and returns the
// verdict. The record map is only read; Evaluate is safe to call from
// multiple goroutines over shared, frozen inputs.
//
// A nil rule is the vacuous empty AND and passes with no details. The only
// returned errors are contract violations (malformed rule node, invalid
// selector syntax); every resolution or type failure is expressed in the
// verdict instead.
func Evaluate(rule *claim.Rule, records fact.RecordMap) (*Verdict, error) {
	if rule == nil {
		return pass(nil), nil
	}

	switch rule.Kind {
	case claim.RuleAll:
		return evaluateAll(rule.Children, records)
	case claim.RuleAny:
		return evaluateAny(rule.Children, records)
	case claim.RuleNot:
		return evaluateNot(rule.Child, records)
	case claim.RuleChecks:
		return evaluateChecks(rule.Entries, records)
	default:
		return nil, &RuleError{Detail: fmt.Sprintf("unknown rule kind %q", rule.Kind)}
	}
}

// evaluateAll evaluates clauses left to right, short-circuiting on the first
// failure. The failing clause's details are still appended before returning.
func evaluateAll(clauses []*claim.Rule, records fact.RecordMap) (*Verdict, error) {
	var details []string
	for _, clause := range clauses {
		v, err := Evaluate(clause, records)
		if err != nil {
			return nil, err
		}
		details = append(details, v.Details...)
		if !v.Passed {
			msg := v.Message
			if msg == "" {
				msg = failureMessage
			}
			return fail(msg, details), nil
		}
	}
	return pass(details), nil
}

// evaluateAny evaluates clauses left to right, short-circuiting on the first
// pass. Details from every clause evaluated so far are preserved for audit.
func evaluateAny(clauses []*claim.Rule, records fact.RecordMap) (*Verdict, error) {
	var details []string
	for _, clause := range clauses {
		v, err := Evaluate(clause, records)
		if err != nil {
			return nil, err
		}
		details = append(details, v.Details...)
		if v.Passed {
			return pass(details), nil
		}
	}
	return fail("no clause passed", details), nil
}

// evaluateNot inverts the inner verdict, propagating its details unchanged.
func evaluateNot(inner *claim.Rule, records fact.RecordMap) (*Verdict, error) {
	if inner == nil {
		return nil, &RuleError{Detail: "not node has no child"}
	}
	v, err := Evaluate(inner, records)
	if err != nil {
		return nil, err
	}
	if v.Passed {
		return fail("inner clause passed", v.Details), nil
	}
	return &Verdict{Passed: true, Message: "inner clause failed", Details: v.Details}, nil
}

// evaluateChecks evaluates a leaf node: every selector entry must pass
// (implicit AND), and every entry is evaluated even after a failure so the
// detail trail covers all diagnostics.
func evaluateChecks(entries []claim.CheckEntry, records fact.RecordMap) (*Verdict, error) {
	passed := true
	var details []string

	for _, entry := range entries {
		sel, err := selector.Parse(entry.Selector)
		if err != nil {
			return nil, &RuleError{Detail: fmt.Sprintf("selector %q", entry.Selector), Cause: err}
		}

		res := selector.ResolveFull(sel, records)

		if len(res.Matches) == 0 {
			if res.EmptyContainer && entry.Checks.Quantifier != claim.QuantifierAny {
				// The path resolved to an existing empty container: an
				// all-quantified check over zero matches holds vacuously.
				details = append(details, entry.Selector+": empty container, vacuously satisfied")
				continue
			}
			if res.EmptyContainer {
				details = append(details, entry.Selector+": no qualifying match (empty container)")
			} else {
				details = append(details, entry.Selector+": missing evidence")
			}
			passed = false
			continue
		}

		entryPassed := checkMatches(res.Matches, entry.Checks, &details)
		if !entryPassed {
			passed = false
		}
	}

	if passed {
		return pass(details), nil
	}
	return fail(failureMessage, details), nil
}

// checkMatches applies a check set to resolved matches under its quantifier.
// "any" stops scanning at the first qualifying match; "all" (the default)
// visits every match so every detail is recorded.
func checkMatches(matches []selector.Match, checks claim.CheckSet, details *[]string) bool {
	if checks.Quantifier == claim.QuantifierAny {
		for _, m := range matches {
			if checkOperators(m, checks.Ops, details) {
				return true
			}
		}
		return false
	}

	passed := true
	for _, m := range matches {
		if !checkOperators(m, checks.Ops, details) {
			passed = false
		}
	}
	return passed
}

// checkOperators applies every operator check to one match, appending a
// "<path>: <message>" detail per check. The match passes only if all of its
// operator checks pass.
func checkOperators(m selector.Match, ops []claim.OpCheck, details *[]string) bool {
	passed := true
	for _, op := range ops {
		ok, msg := applyOperator(op.Op, m.Value, op.Expected)
		*details = append(*details, m.Path+": "+msg)
		if !ok {
			passed = false
		}
	}
	return passed
}
