package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "attest",
	Short: "Attest - evidence-based claim verification",
	Long: `Attest verifies claims about a codebase against collected evidence.

A claim spec declares probes that gather facts (shell commands, HTTP
endpoints, file scans, LLM judgments) and claims whose rules are checked
against those facts. Every verdict carries a detail trail explaining
exactly which check passed or failed.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "attest.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the runtime configuration and installs the global
// logger. The verbose flag forces debug logging regardless of config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	slog.SetDefault(logging.New(cfg.Logging, nil))

	return cfg, nil
}
