package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"attest-hq/attest/pkg/cli"
	"attest-hq/attest/pkg/report"
	"attest-hq/attest/pkg/report/storage"
)

var reportFlags struct {
	format string
	limit  int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect stored verification runs",
	Long: `Report reads the run history from the configured report storage.
It requires the sqlite backend; the memory backend does not survive
between invocations.`,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored verification runs, newest first",
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one verification run in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)

	reportCmd.PersistentFlags().StringVar(&reportFlags.format, "format", "text", "output format: text, json, csv")
	reportListCmd.Flags().IntVarP(&reportFlags.limit, "limit", "n", 20, "maximum runs to list")
}

// openReportStorage opens the persistent backend for report commands.
func openReportStorage() (report.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Report.Storage != "sqlite" {
		return nil, fmt.Errorf("report commands need report.storage = sqlite (got %q)", cfg.Report.Storage)
	}
	return storage.NewSQLiteStorage(cfg.Report.Path, slog.Default())
}

func runReportList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(reportFlags.format)
	if err != nil {
		return err
	}

	store, err := openReportStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), reportFlags.limit)
	if err != nil {
		return err
	}
	if len(records) == 0 && format == cli.FormatText {
		fmt.Println("no verification runs stored")
		return nil
	}

	return cli.RenderRuns(os.Stdout, format, records, verbose)
}

func runReportShow(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(reportFlags.format)
	if err != nil {
		return err
	}

	store, err := openReportStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return cli.RenderRuns(os.Stdout, format, []*report.RunRecord{record}, true)
}
