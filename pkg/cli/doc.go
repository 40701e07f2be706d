// Package cli holds shared command-line helpers: output format selection,
// human-readable run rendering, and signal-aware contexts.
package cli
