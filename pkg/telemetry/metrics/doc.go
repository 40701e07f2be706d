// Package metrics exposes Prometheus metrics for attest.
//
// The Collector owns a private registry and groups metrics by concern:
// probe executions, claim verdicts, and the llm response cache. All
// recording methods are no-ops when metrics are disabled, so callers never
// need to guard their calls.
package metrics
