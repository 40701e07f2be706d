package verifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/claim/parser"
	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/fact"
	"attest-hq/attest/pkg/probe"
	"attest-hq/attest/pkg/report"
	"attest-hq/attest/pkg/telemetry/metrics"
	"attest-hq/attest/pkg/verify"
)

// Verifier runs claim documents through probing and evaluation.
type Verifier struct {
	source    parser.Source
	probeOpts probe.Options
	runner    *probe.Runner
	storage   report.Storage
	collector *metrics.Collector
	logger    *slog.Logger
}

// Config assembles a verifier's dependencies. Storage, Judge and Collector
// may be nil; a nil storage skips persistence.
type Config struct {
	Source    parser.Source
	Probes    config.ProbesConfig
	Judge     probe.Judge
	Storage   report.Storage
	Collector *metrics.Collector
	Logger    *slog.Logger
}

// New creates a verifier.
func New(cfg Config) (*Verifier, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("verifier needs a claim source")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := probe.OptionsFromConfig(cfg.Probes)
	opts.Judge = cfg.Judge

	return &Verifier{
		source:    cfg.Source,
		probeOpts: opts,
		runner:    probe.NewRunner(cfg.Probes, cfg.Collector, logger),
		storage:   cfg.Storage,
		collector: cfg.Collector,
		logger:    logger.With("component", "verifier"),
	}, nil
}

// Run loads every document from the source and verifies each, returning
// one run record per document. Verification continues through failing
// claims; only infrastructure problems (unloadable spec, cancelled
// context, broken storage) return an error.
func (v *Verifier) Run(ctx context.Context) ([]*report.RunRecord, error) {
	docs, err := v.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load claim documents: %w", err)
	}

	records := make([]*report.RunRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := v.VerifyDocument(ctx, doc)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

// VerifyDocument runs one document: probes first, then every claim against
// the collected evidence.
func (v *Verifier) VerifyDocument(ctx context.Context, doc *claim.Document) (*report.RunRecord, error) {
	record := report.NewRunRecord(doc.Name, doc.SourceFile)

	v.logger.Info("verification started",
		"run_id", record.ID,
		"spec", doc.Name,
		"probes", len(doc.Probes),
		"claims", len(doc.Claims),
	)

	probes, err := probe.FromDocument(doc, v.probeOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to build probes: %w", err)
	}

	facts, results, err := v.runner.Run(ctx, probes)
	if err != nil {
		return nil, fmt.Errorf("probe run failed: %w", err)
	}
	for _, r := range results {
		record.Probes = append(record.Probes, report.ProbeResult{
			ProbeID:    r.ProbeID,
			Kind:       r.Kind,
			Status:     r.Status,
			DurationMs: r.Duration.Milliseconds(),
		})
	}

	for _, c := range doc.Claims {
		result := v.evaluateClaim(c, facts)
		record.Claims = append(record.Claims, result)
	}

	record.Finish()

	v.logger.Info("verification finished",
		"run_id", record.ID,
		"spec", doc.Name,
		"passed", record.Passed,
		"failed_claims", len(record.FailedClaims()),
		"duration_ms", record.Duration().Milliseconds(),
	)

	if v.storage != nil {
		if err := v.storage.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to persist run record: %w", err)
		}
	}

	return record, nil
}

// evaluateClaim evaluates one claim. An evaluator error (malformed rule)
// becomes a failed result rather than aborting the run: the other claims
// still deserve their verdicts.
func (v *Verifier) evaluateClaim(c *claim.Claim, facts fact.RecordMap) report.ClaimResult {
	start := time.Now()
	verdict, err := verify.Evaluate(c.Rule, facts)
	elapsed := time.Since(start)

	result := report.ClaimResult{
		ClaimID:     c.ID,
		Description: c.Description,
		Severity:    string(c.Severity),
	}

	outcome := "passed"
	switch {
	case err != nil:
		var ruleErr *verify.RuleError
		detail := err.Error()
		if errors.As(err, &ruleErr) {
			detail = ruleErr.Detail
		}
		result.Passed = false
		result.Message = "Verification failed"
		result.Details = []string{detail}
		outcome = "error"
	default:
		result.Passed = verdict.Passed
		result.Message = verdict.Message
		result.Details = verdict.Details
		if !verdict.Passed {
			outcome = "failed"
		}
	}

	if v.collector != nil {
		v.collector.RecordVerdict(c.ID, string(c.Severity), outcome, elapsed)
	}

	return result
}
