package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"attest-hq/attest/pkg/claim/parser"
	"attest-hq/attest/pkg/cli"
	"attest-hq/attest/pkg/probe"
	"attest-hq/attest/pkg/telemetry/metrics"
)

var probesFlags struct {
	spec string
	exec bool
}

var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "List or execute the probes a spec declares",
	Long: `Probes lists every probe declaration in a spec. With --exec it runs
them and prints the collected evidence as JSON, which is useful for
figuring out what fields a claim selector can reach.

Examples:
  # List declared probes
  attest probes --spec attest.toml

  # Execute probes and dump the evidence records
  attest probes --spec attest.toml --exec`,
	RunE: runProbes,
}

func init() {
	rootCmd.AddCommand(probesCmd)

	probesCmd.Flags().StringVarP(&probesFlags.spec, "spec", "s", "", "claim spec file or directory (overrides config)")
	probesCmd.Flags().BoolVar(&probesFlags.exec, "exec", false, "execute the probes and print their records")
}

func runProbes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	specPath := cfg.Spec.Path
	if probesFlags.spec != "" {
		specPath = probesFlags.spec
	}

	logger := slog.Default()
	docs, err := parser.NewFileSource(specPath, logger).Load(cmd.Context())
	if err != nil {
		return err
	}

	if !probesFlags.exec {
		for _, doc := range docs {
			for _, decl := range doc.Probes {
				target := decl.Command + decl.URL + decl.Prompt
				if decl.Kind == "scan" {
					target = fmt.Sprintf("%v", decl.Paths)
				}
				fmt.Printf("%-16s %-6s %s\n", decl.ID, decl.Kind, target)
			}
		}
		return nil
	}

	ctx := cli.SetupSignalHandler()
	collector := metrics.NewCollector(cfg.Metrics, nil)

	judge, closeJudge, err := buildJudge(cfg, collector, logger)
	if err != nil {
		return err
	}
	defer closeJudge()

	opts := probe.OptionsFromConfig(cfg.Probes)
	opts.Judge = judge
	runner := probe.NewRunner(cfg.Probes, collector, logger)

	evidence := make(map[string]interface{})
	for _, doc := range docs {
		probes, err := probe.FromDocument(doc, opts)
		if err != nil {
			return err
		}
		records, _, err := runner.Run(ctx, probes)
		if err != nil {
			return err
		}
		for id, record := range records {
			evidence[id] = record.Value().Interface()
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(evidence)
}
