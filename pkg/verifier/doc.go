// Package verifier orchestrates a verification run end to end.
//
// A run loads claim documents, executes their probes, evaluates every
// claim against the collected evidence, and persists the resulting run
// record. Watch mode re-runs verification whenever a spec file changes.
package verifier
