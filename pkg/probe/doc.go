// Package probe collects evidence for claim verification.
//
// A probe executes one evidence-gathering action and produces an immutable
// fact record keyed by its declaration id. Four kinds ship with attest:
//
//   - shell: run a command and capture exit code and output
//   - url: fetch an HTTP endpoint and capture status and body
//   - llm: ask a model a yes/no question about provided material
//   - scan: match files on disk against a pattern
//
// The Runner executes a set of probes concurrently with per-probe
// timeouts. A probe that fails produces no record at all, so claims
// depending on it fail their checks as missing evidence rather than
// seeing partial data.
package probe
