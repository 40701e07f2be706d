package verifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/claim/parser"
	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/fact"
	"attest-hq/attest/pkg/report"
	"attest-hq/attest/pkg/report/storage"
)

// staticSource serves fixed documents without touching the filesystem.
type staticSource struct {
	docs []*claim.Document
	err  error
}

func (s *staticSource) Load(ctx context.Context) ([]*claim.Document, error) {
	return s.docs, s.err
}

func testDocument() *claim.Document {
	return &claim.Document{
		Name:       "demo",
		SourceFile: "demo.toml",
		Probes: []claim.ProbeDecl{
			{ID: "k-true", Kind: "shell", Command: "true"},
			{ID: "k-false", Kind: "shell", Command: "false"},
		},
		Claims: []*claim.Claim{
			{
				ID:       "succeeds",
				Severity: claim.SeverityError,
				Rule:     claim.Checks(claim.Check("k-true.exit_code", claim.Op("eq", fact.Int(0)))),
			},
			{
				ID:       "fails",
				Severity: claim.SeverityWarning,
				Rule:     claim.Checks(claim.Check("k-false.exit_code", claim.Op("eq", fact.Int(0)))),
			},
		},
	}
}

func newTestVerifier(t *testing.T, source parser.Source, store report.Storage) *Verifier {
	t.Helper()
	v, err := New(Config{
		Source: source,
		Probes: config.ProbesConfig{
			Concurrency:    2,
			DefaultTimeout: 10 * time.Second,
		},
		Storage: store,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v
}

func TestVerifierRun(t *testing.T) {
	store := storage.NewMemoryStorage()
	v := newTestVerifier(t, &staticSource{docs: []*claim.Document{testDocument()}}, store)

	records, err := v.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	record := records[0]
	if record.ID == "" {
		t.Error("run record has no id")
	}
	if len(record.Probes) != 2 {
		t.Errorf("len(Probes) = %d, want 2", len(record.Probes))
	}
	if len(record.Claims) != 2 {
		t.Fatalf("len(Claims) = %d, want 2", len(record.Claims))
	}

	byID := map[string]report.ClaimResult{}
	for _, c := range record.Claims {
		byID[c.ClaimID] = c
	}
	if !byID["succeeds"].Passed {
		t.Errorf("claim succeeds failed: %+v", byID["succeeds"])
	}
	if byID["fails"].Passed {
		t.Error("claim fails passed unexpectedly")
	}

	// A warning-severity failure does not fail the run.
	if !record.Passed {
		t.Error("run failed despite only a warning-severity claim failing")
	}

	// The record was persisted.
	stored, err := store.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("stored record missing: %v", err)
	}
	if stored.SpecName != "demo" {
		t.Errorf("stored SpecName = %q", stored.SpecName)
	}
}

func TestVerifierMissingEvidenceFailsClaim(t *testing.T) {
	doc := &claim.Document{
		Name: "gaps",
		Claims: []*claim.Claim{{
			ID:       "needs-probe",
			Severity: claim.SeverityError,
			Rule:     claim.Checks(claim.Check("k-absent.exit_code", claim.Op("exists", fact.Bool(true)))),
		}},
	}
	v := newTestVerifier(t, &staticSource{docs: []*claim.Document{doc}}, nil)

	records, err := v.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	record := records[0]
	if record.Passed {
		t.Error("run passed despite missing evidence")
	}
	c := record.Claims[0]
	if c.Passed || len(c.Details) == 0 {
		t.Fatalf("claim result = %+v, want failure with details", c)
	}
}

func TestVerifierSourceError(t *testing.T) {
	v := newTestVerifier(t, &staticSource{err: errors.New("spec unreadable")}, nil)
	if _, err := v.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want source error")
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() error = nil, want missing source error")
	}
}
