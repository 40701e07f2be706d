package retention

import (
	"context"
	"testing"
	"time"

	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/report"
	"attest-hq/attest/pkg/report/storage"
)

func seed(t *testing.T, s report.Storage, ages ...time.Duration) {
	t.Helper()
	now := time.Now().UTC()
	for i, age := range ages {
		record := &report.RunRecord{
			ID:        string(rune('a' + i)),
			SpecName:  "s",
			StartedAt: now.Add(-age),
			Passed:    true,
		}
		if err := s.Save(context.Background(), record); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPruneByAge(t *testing.T) {
	s := storage.NewMemoryStorage()
	seed(t, s, 0, time.Hour, 100*time.Hour)

	p := NewPruner(s, config.RetentionConfig{MaxAge: 24 * time.Hour}, nil)
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if n, _ := s.Count(context.Background()); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestPruneByCount(t *testing.T) {
	s := storage.NewMemoryStorage()
	seed(t, s, 0, time.Minute, 2*time.Minute, 3*time.Minute)

	p := NewPruner(s, config.RetentionConfig{MaxRuns: 2}, nil)
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
}

func TestPruneBothPhases(t *testing.T) {
	s := storage.NewMemoryStorage()
	seed(t, s, 0, time.Minute, 100*time.Hour, 200*time.Hour)

	p := NewPruner(s, config.RetentionConfig{
		MaxAge:  24 * time.Hour,
		MaxRuns: 1,
	}, nil)

	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	// Two removed by age, one more by count.
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if n, _ := s.Count(context.Background()); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestPruneZeroConfigKeepsEverything(t *testing.T) {
	s := storage.NewMemoryStorage()
	seed(t, s, 0, 10000*time.Hour)

	p := NewPruner(s, config.RetentionConfig{}, nil)
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	p := NewPruner(storage.NewMemoryStorage(), config.RetentionConfig{
		Enabled:  true,
		Schedule: "every now and then",
	}, nil)

	if err := p.Start(context.Background()); err == nil {
		t.Error("Start() error = nil, want invalid schedule error")
	}
}

func TestStartDisabledIsNoop(t *testing.T) {
	p := NewPruner(storage.NewMemoryStorage(), config.RetentionConfig{
		Enabled:  false,
		Schedule: "0 3 * * *",
	}, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Errorf("Start() error = %v, want nil for disabled retention", err)
	}
	p.Stop()
}
