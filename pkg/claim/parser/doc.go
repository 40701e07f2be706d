// Package parser loads claim spec files from TOML into claim.Document
// trees.
//
// A spec file declares probes and claims:
//
//	name = "my-service"
//
//	[probes.k-pytest]
//	kind = "shell"
//	command = "pytest --cov --cov-report=json"
//	parse_json = true
//
//	[claims.tests-pass]
//	description = "the test suite passes"
//	[claims.tests-pass.rule]
//	"k-pytest.exit_code" = { eq = 0 }
//
// Rule tables follow the engine's rule grammar: the reserved keys "and",
// "or" and "not" build boolean nodes; every other key is a selector string
// mapped to an operator table, optionally wrapped in "any" or "all". The
// parser validates selector syntax and operator names at load time and
// accumulates every problem into a claimerr.List instead of stopping at the
// first.
//
// TOML tables are unordered, so probes, claims, leaf entries and operator
// checks are ordered lexicographically by key to keep evaluation and detail
// trails deterministic.
package parser
