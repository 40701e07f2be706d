package report

import (
	"testing"
)

func TestNewRunRecordAssignsID(t *testing.T) {
	a := NewRunRecord("svc", "svc.toml")
	b := NewRunRecord("svc", "svc.toml")

	if a.ID == "" || b.ID == "" {
		t.Fatal("run record without id")
	}
	if a.ID == b.ID {
		t.Error("two runs share an id")
	}
	if a.StartedAt.IsZero() {
		t.Error("StartedAt not stamped")
	}
}

func TestFinishOutcome(t *testing.T) {
	tests := []struct {
		name   string
		claims []ClaimResult
		want   bool
	}{
		{"no claims", nil, true},
		{"all passed", []ClaimResult{
			{ClaimID: "a", Severity: "error", Passed: true},
		}, true},
		{"error failure fails the run", []ClaimResult{
			{ClaimID: "a", Severity: "error", Passed: false},
		}, false},
		{"warning failure does not fail the run", []ClaimResult{
			{ClaimID: "a", Severity: "warning", Passed: false},
			{ClaimID: "b", Severity: "error", Passed: true},
		}, true},
		{"info failure does not fail the run", []ClaimResult{
			{ClaimID: "a", Severity: "info", Passed: false},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunRecord("s", "s.toml")
			r.Claims = tt.claims
			r.Finish()
			if r.Passed != tt.want {
				t.Errorf("Passed = %v, want %v", r.Passed, tt.want)
			}
			if r.FinishedAt.IsZero() {
				t.Error("FinishedAt not stamped")
			}
		})
	}
}

func TestFailedClaims(t *testing.T) {
	r := NewRunRecord("s", "s.toml")
	r.Claims = []ClaimResult{
		{ClaimID: "a", Severity: "error", Passed: true},
		{ClaimID: "b", Severity: "warning", Passed: false},
		{ClaimID: "c", Severity: "error", Passed: false},
	}

	failed := r.FailedClaims()
	if len(failed) != 2 {
		t.Fatalf("len(FailedClaims()) = %d, want 2", len(failed))
	}
	if failed[0].ClaimID != "b" || failed[1].ClaimID != "c" {
		t.Errorf("failed = %v", failed)
	}
}
