// Package fact defines the evidence data model shared by probes and the
// verification engine.
//
// Probes produce immutable Records: tagged key-value structures whose leaves
// are scalars and whose interior nodes are maps or lists. The engine never
// touches probe-specific types directly; every record converts into the
// uniform Value tree, and selectors and operators work on Values alone.
//
// A Value is a closed sum type over six kinds:
//
//	Null | Bool | Number | String | List | Map
//
// Numbers are always float64 internally (the natural shape of decoded JSON
// and TOML evidence); integer-looking numbers render without a decimal point
// so diagnostic messages read naturally.
package fact
