// Package claim defines the in-memory model for claim documents: the rule
// expression trees the verification engine evaluates, and the claim and
// probe declarations that surround them in a spec file.
//
// A Rule is a closed tagged variant:
//
//	All      - AND of child rules
//	Any      - OR of child rules
//	Not      - negation of one child rule
//	Checks   - leaf: selector strings mapped to operator checks
//
// The leaf form pairs each selector with an ordered set of operator checks
// and an optional quantifier ("any"/"all") that governs how multiple
// resolved matches combine. All entries of a leaf are implicitly AND-ed.
//
// The package is source-format agnostic; pkg/claim/parser builds these trees
// from TOML spec files, and tests construct them directly.
package claim
