// Package report records the outcome of verification runs.
//
// A RunRecord is the audit trail for one run: which spec was verified,
// which probes ran, and the verdict of every claim with its detail trail.
// Records are persisted through the Storage interface; the storage
// subpackage ships in-memory and SQLite backends, and the retention
// subpackage prunes old runs on a schedule.
package report
