// Package verify implements the rule evaluator: given a claim rule tree and
// an immutable fact-record mapping, it produces a pass/fail Verdict with a
// human-readable diagnostic trail.
//
// Evaluation is pure and synchronous. Boolean nodes (and/or/not) combine
// child verdicts with left-to-right short-circuiting; leaf nodes resolve
// selectors against the record map and apply operator checks to every
// resolved value. Details accumulate in evaluation order from every operator
// check performed, including checks that did not decide the final verdict,
// so a report reads as a complete audit trail.
//
// Resolution failures (missing record, missing path) are verification
// failures, not errors; the only errors Evaluate returns are contract
// violations such as a syntactically invalid selector or a malformed rule
// node.
package verify
