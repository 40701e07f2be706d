package claim

import "attest-hq/attest/pkg/fact"

// RuleKind discriminates the rule node variants.
type RuleKind string

const (
	// RuleAll is the boolean AND of child rules.
	RuleAll RuleKind = "and"
	// RuleAny is the boolean OR of child rules.
	RuleAny RuleKind = "or"
	// RuleNot negates a single child rule.
	RuleNot RuleKind = "not"
	// RuleChecks is the leaf form: selector entries with operator checks.
	RuleChecks RuleKind = "checks"
)

// Quantifier governs how operator checks combine over multiple resolved
// matches of one selector.
type Quantifier string

const (
	// QuantifierAll requires every resolved match to pass (the default).
	QuantifierAll Quantifier = "all"
	// QuantifierAny requires at least one resolved match to pass.
	QuantifierAny Quantifier = "any"
)

// Rule is a node in a claim's rule expression tree.
type Rule struct {
	Kind RuleKind

	// Children holds the clauses of an All or Any node, evaluated in order.
	Children []*Rule

	// Child is the negated rule of a Not node.
	Child *Rule

	// Entries holds the selector checks of a Checks leaf, in document order.
	// A leaf with zero entries is a vacuous AND and always passes.
	Entries []CheckEntry
}

// CheckEntry pairs one selector expression with its operator checks.
type CheckEntry struct {
	// Selector addresses the fact value(s) under test.
	Selector string

	// Checks are the operator checks applied to each resolved match.
	Checks CheckSet
}

// CheckSet is an ordered list of operator checks plus the quantifier that
// combines them across multiple matches.
type CheckSet struct {
	// Quantifier is QuantifierAll unless the spec wraps the operator map in
	// "any" or "all".
	Quantifier Quantifier

	// Ops are the operator checks in document order.
	Ops []OpCheck
}

// OpCheck is a single named operator with its configured operand.
type OpCheck struct {
	// Op is the operator name: eq, ne, lt, lte, gt, gte, in, match, empty,
	// exists. Unrecognized names evaluate to a controlled failure.
	Op string

	// Expected is the configured operand.
	Expected fact.Value
}

// And constructs an AND node.
func And(children ...*Rule) *Rule { return &Rule{Kind: RuleAll, Children: children} }

// Or constructs an OR node.
func Or(children ...*Rule) *Rule { return &Rule{Kind: RuleAny, Children: children} }

// Not constructs a NOT node.
func Not(child *Rule) *Rule { return &Rule{Kind: RuleNot, Child: child} }

// Checks constructs a leaf node from selector entries.
func Checks(entries ...CheckEntry) *Rule { return &Rule{Kind: RuleChecks, Entries: entries} }

// Check is a convenience constructor for a single-selector leaf entry with
// the default quantifier.
func Check(sel string, ops ...OpCheck) CheckEntry {
	return CheckEntry{Selector: sel, Checks: CheckSet{Quantifier: QuantifierAll, Ops: ops}}
}

// Op is a convenience constructor for an operator check.
func Op(name string, expected fact.Value) OpCheck {
	return OpCheck{Op: name, Expected: expected}
}
