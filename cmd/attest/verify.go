package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"attest-hq/attest/pkg/claim/parser"
	"attest-hq/attest/pkg/cli"
	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/probe"
	"attest-hq/attest/pkg/probe/cache"
	"attest-hq/attest/pkg/report"
	"attest-hq/attest/pkg/report/retention"
	"attest-hq/attest/pkg/report/storage"
	"attest-hq/attest/pkg/telemetry/metrics"
	"attest-hq/attest/pkg/verifier"
)

var verifyFlags struct {
	spec   string
	watch  bool
	format string
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run probes and verify all claims",
	Long: `Verify runs every probe a spec declares, evaluates every claim against
the collected evidence, prints the verdicts, and stores the run record.

The command exits non-zero when any error-severity claim fails. Warning
and info failures are reported but do not affect the exit code.

Examples:
  # Verify the configured spec
  attest verify

  # Verify a specific spec file or directory
  attest verify --spec specs/billing.toml

  # Re-run verification whenever spec files change
  attest verify --watch

  # Machine-readable output
  attest verify --format json`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyFlags.spec, "spec", "s", "", "claim spec file or directory (overrides config)")
	verifyCmd.Flags().BoolVarP(&verifyFlags.watch, "watch", "w", false, "re-verify when spec files change")
	verifyCmd.Flags().StringVar(&verifyFlags.format, "format", "text", "output format: text, json, csv")
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(verifyFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	specPath := cfg.Spec.Path
	if verifyFlags.spec != "" {
		specPath = verifyFlags.spec
	}

	ctx := cli.SetupSignalHandler()
	logger := slog.Default()

	collector := metrics.NewCollector(cfg.Metrics, nil)
	go func() {
		if err := collector.Serve(ctx, logger); err != nil {
			logger.Error("metrics endpoint failed", "error", err)
		}
	}()

	store, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	judge, closeJudge, err := buildJudge(cfg, collector, logger)
	if err != nil {
		return err
	}
	defer closeJudge()

	v, err := verifier.New(verifier.Config{
		Source:    parser.NewFileSource(specPath, logger),
		Probes:    cfg.Probes,
		Judge:     judge,
		Storage:   store,
		Collector: collector,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	pruner := retention.NewPruner(store, cfg.Report.Retention, logger)

	if verifyFlags.watch {
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
		return v.Watch(ctx, specPath)
	}

	records, err := v.Run(ctx)
	if err != nil {
		return err
	}
	if cfg.Report.Retention.Enabled {
		if _, err := pruner.Prune(ctx); err != nil {
			logger.Warn("retention pruning failed", "error", err)
		}
	}

	if err := cli.RenderRuns(os.Stdout, format, records, verbose); err != nil {
		return err
	}

	for _, record := range records {
		if !record.Passed {
			return fmt.Errorf("verification failed: %d claim(s) did not pass", len(record.FailedClaims()))
		}
	}
	return nil
}

// openStorage builds the configured report storage backend.
func openStorage(cfg *config.Config, logger *slog.Logger) (report.Storage, error) {
	switch cfg.Report.Storage {
	case "sqlite":
		return storage.NewSQLiteStorage(cfg.Report.Path, logger)
	default:
		return storage.NewMemoryStorage(), nil
	}
}

// buildJudge wires the llm judge with its optional response cache. The
// returned close function releases the cache.
func buildJudge(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (probe.Judge, func(), error) {
	var responseCache *cache.Cache
	closeFn := func() {}

	if cfg.LLM.Cache.Enabled {
		c, err := cache.Open(cfg.LLM.Cache.Path, cfg.LLM.Cache.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open llm cache: %w", err)
		}
		responseCache = c
		closeFn = func() {
			if _, err := c.Prune(context.Background()); err != nil {
				logger.Warn("llm cache pruning failed", "error", err)
			}
			c.Close()
		}
	}

	judge := probe.NewOpenAIJudge(cfg.LLM, responseCache, collector, logger)
	return judge, closeFn, nil
}
