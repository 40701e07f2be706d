// Package retention prunes old verification runs from report storage.
//
// Pruning runs in two phases: age-based removal of runs older than the
// configured maximum age, then count-based trimming to the configured
// maximum number of runs. A cron-driven scheduler runs both on a schedule
// for long-lived processes such as watch mode.
package retention
