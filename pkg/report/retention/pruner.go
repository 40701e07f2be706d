package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/report"
)

// Pruner enforces the retention policy on report storage.
type Pruner struct {
	storage report.Storage
	cfg     config.RetentionConfig
	logger  *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewPruner creates a retention pruner.
func NewPruner(storage report.Storage, cfg config.RetentionConfig, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		storage: storage,
		cfg:     cfg,
		logger:  logger.With("component", "retention"),
	}
}

// Prune applies both retention phases once and returns the total number of
// removed runs.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var removed int64

	if p.cfg.MaxAge > 0 {
		cutoff := time.Now().Add(-p.cfg.MaxAge)
		n, err := p.storage.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return removed, fmt.Errorf("age-based pruning failed: %w", err)
		}
		removed += n
	}

	if p.cfg.MaxRuns > 0 {
		n, err := p.storage.TrimToCount(ctx, p.cfg.MaxRuns)
		if err != nil {
			return removed, fmt.Errorf("count-based pruning failed: %w", err)
		}
		removed += n
	}

	if removed > 0 {
		p.logger.Info("pruned verification runs", "removed", removed)
	}
	return removed, nil
}

// Start schedules periodic pruning per the configured cron expression.
// It returns immediately; pruning happens on the cron goroutine until Stop
// is called. Disabled retention or an empty schedule is a no-op.
func (p *Pruner) Start(ctx context.Context) error {
	if !p.cfg.Enabled || p.cfg.Schedule == "" {
		p.logger.Debug("retention disabled, scheduler not started")
		return nil
	}

	if _, err := cron.ParseStandard(p.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", p.cfg.Schedule, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron != nil {
		return fmt.Errorf("retention scheduler already running")
	}

	c := cron.New()
	_, err := c.AddFunc(p.cfg.Schedule, func() {
		if _, err := p.Prune(ctx); err != nil {
			p.logger.Error("scheduled pruning failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	c.Start()
	p.cron = c
	p.logger.Info("retention scheduler started", "schedule", p.cfg.Schedule)
	return nil
}

// Stop halts the scheduler and waits for a running prune to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
