// Package cache provides an on-disk TTL cache for llm probe responses.
//
// Judgment probes are slow and cost money, and the same prompt against the
// same model gives the same verdict often enough that re-asking within a
// verification session is wasteful. Entries are keyed by a digest of model
// and prompt and stored in a SQLite database so the cache survives process
// restarts.
package cache
