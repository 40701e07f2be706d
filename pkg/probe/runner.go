package probe

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/fact"
	"attest-hq/attest/pkg/telemetry/metrics"
)

// Runner executes probes concurrently and assembles their records into the
// evidence map claims are evaluated against.
type Runner struct {
	concurrency    int
	defaultTimeout time.Duration
	logger         *slog.Logger
	collector      *metrics.Collector
}

// NewRunner creates a probe runner. The collector may be nil.
func NewRunner(cfg config.ProbesConfig, collector *metrics.Collector, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Runner{
		concurrency:    concurrency,
		defaultTimeout: cfg.DefaultTimeout,
		logger:         logger.With("component", "probe_runner"),
		collector:      collector,
	}
}

// Result summarizes one probe execution for the run record.
type Result struct {
	ProbeID  string
	Kind     string
	Status   string
	Duration time.Duration
}

// Run executes all probes and returns the records of those that succeeded,
// plus a result per probe in declaration order. A failed probe is logged
// and omitted from the record map, leaving its id unresolved so dependent
// claims fail as missing evidence. Run itself only returns an error when
// the context is cancelled before all probes finish.
func (r *Runner) Run(ctx context.Context, probes []Probe) (fact.RecordMap, []Result, error) {
	records := make(fact.RecordMap, len(probes))
	results := make([]Result, len(probes))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.concurrency)

dispatch:
	for i, p := range probes {
		select {
		case <-ctx.Done():
			// Stop dispatching but still wait below: in-flight probes
			// write into results until they finish.
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, p Probe) {
			defer wg.Done()
			defer func() { <-sem }()

			record, result := r.runOne(ctx, p)
			results[i] = result
			if record == nil {
				return
			}

			mu.Lock()
			records[p.ID()] = record
			mu.Unlock()
		}(i, p)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return records, results, nil
}

// runOne executes a single probe under its timeout and records metrics.
// The record is nil when the probe failed.
func (r *Runner) runOne(ctx context.Context, p Probe) (*fact.Record, Result) {
	timeout := p.Timeout()
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r.logger.Debug("probe started", "probe_id", p.ID(), "kind", p.Kind())

	start := time.Now()
	record, err := p.Run(runCtx)
	elapsed := time.Since(start)

	status := "success"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = "timeout"
	case err != nil:
		status = "error"
	}

	if r.collector != nil {
		r.collector.RecordProbeRun(p.ID(), p.Kind(), status, elapsed)
	}

	result := Result{ProbeID: p.ID(), Kind: p.Kind(), Status: status, Duration: elapsed}

	if err != nil {
		r.logger.Error("probe failed",
			"probe_id", p.ID(),
			"kind", p.Kind(),
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, result
	}

	r.logger.Info("probe finished",
		"probe_id", p.ID(),
		"kind", p.Kind(),
		"duration_ms", elapsed.Milliseconds(),
	)
	return record, result
}
