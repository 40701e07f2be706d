// Package selector implements the path expression language used to address
// nested fields inside fact records.
//
// A selector is a dot-separated path whose first segment names a fact record
// and whose remaining segments descend into the record's structure:
//
//	k-pytest.exit_code
//	k-pytest.json.totals.percent_covered
//	k-*.exit_code
//	scan.files[0].path
//	scan[src/main.go].matches
//
// Bracket notation keeps literal dots and slashes inside a single segment.
// Segments may contain the glob wildcards '*' and '?', which expand against
// record identifiers, map keys, and stringified list indices at resolve time.
//
// Parsing and resolution are pure functions. Resolution never fails for
// well-formed input: a selector that addresses nothing resolves to an empty
// match list, which the verification engine reports as missing evidence.
package selector
