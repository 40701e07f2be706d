// Package claimerr provides rich, accumulating errors for claim spec
// parsing and validation. Instead of failing on the first problem, the
// parser collects every issue it finds so an author can fix a spec file in
// one pass. Each error names the spec element it concerns (e.g.
// "claims.tests-pass.rule") and may carry a suggested fix.
package claimerr
