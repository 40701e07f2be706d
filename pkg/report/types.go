package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"attest-hq/attest/pkg/claim"
)

// ErrNotFound is returned when a run record does not exist.
var ErrNotFound = errors.New("run record not found")

// RunRecord is the audit trail for one verification run.
type RunRecord struct {
	// ID is a UUID v4 assigned when the run starts.
	ID string `json:"id"`

	// SpecName and SpecFile identify the verified claim spec.
	SpecName string `json:"spec_name"`
	SpecFile string `json:"spec_file"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Passed is true when no error-severity claim failed. Warning and info
	// failures are reported but do not fail the run.
	Passed bool `json:"passed"`

	Probes []ProbeResult `json:"probes"`
	Claims []ClaimResult `json:"claims"`
}

// ProbeResult summarizes one probe execution.
type ProbeResult struct {
	ProbeID    string `json:"probe_id"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
}

// ClaimResult is one claim's verdict with its audit trail.
type ClaimResult struct {
	ClaimID     string   `json:"claim_id"`
	Description string   `json:"description,omitempty"`
	Severity    string   `json:"severity"`
	Passed      bool     `json:"passed"`
	Message     string   `json:"message,omitempty"`
	Details     []string `json:"details,omitempty"`
}

// NewRunRecord starts a record for a verification run.
func NewRunRecord(specName, specFile string) *RunRecord {
	return &RunRecord{
		ID:        uuid.NewString(),
		SpecName:  specName,
		SpecFile:  specFile,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the end time and computes the overall outcome.
func (r *RunRecord) Finish() {
	r.FinishedAt = time.Now().UTC()
	r.Passed = true
	for _, c := range r.Claims {
		if !c.Passed && c.Severity == string(claim.SeverityError) {
			r.Passed = false
			return
		}
	}
}

// FailedClaims returns the claims that did not pass, at any severity.
func (r *RunRecord) FailedClaims() []ClaimResult {
	var failed []ClaimResult
	for _, c := range r.Claims {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Duration returns the wall-clock time of the run.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Storage persists run records. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Save stores a finished run record.
	Save(ctx context.Context, record *RunRecord) error

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*RunRecord, error)

	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*RunRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan removes records started before cutoff and returns
	// how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// TrimToCount keeps only the newest max records and returns how many
	// were removed.
	TrimToCount(ctx context.Context, max int) (int64, error)

	// Close releases storage resources.
	Close() error
}
