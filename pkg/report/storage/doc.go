// Package storage provides run record persistence backends.
//
// The memory backend keeps records in process and suits one-shot CLI
// invocations. The SQLite backend persists records across runs so report
// history and retention pruning work.
package storage
