package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"attest-hq/attest/pkg/claim/claimerr"
	"attest-hq/attest/pkg/claim/parser"
	"attest-hq/attest/pkg/cli"
)

var lintFlags struct {
	spec   string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate claim spec files",
	Long: `Lint parses claim spec files and reports every problem it finds:
TOML syntax errors, missing probe fields, invalid selectors, unknown
operators and severities. Nothing is executed.

Examples:
  # Lint a single spec
  attest lint --spec attest.toml

  # Lint a directory of specs with JSON output for CI
  attest lint --spec specs/ --format json`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.spec, "spec", "s", "", "claim spec file or directory (overrides config)")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// lintResult is one file's validation outcome.
type lintResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Probes int      `json:"probes,omitempty"`
	Claims int      `json:"claims,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	specPath := cfg.Spec.Path
	if lintFlags.spec != "" {
		specPath = lintFlags.spec
	}

	files, err := specFiles(specPath)
	if err != nil {
		return err
	}

	results := make([]lintResult, 0, len(files))
	failed := false

	for _, file := range files {
		result := lintResult{File: file, Valid: true}

		doc, err := parser.ParseFile(file)
		if err != nil {
			result.Valid = false
			failed = true

			var list *claimerr.List
			if errors.As(err, &list) {
				for _, e := range list.Errors {
					result.Errors = append(result.Errors, e.Error())
				}
			} else {
				result.Errors = append(result.Errors, err.Error())
			}
		} else {
			result.Probes = len(doc.Probes)
			result.Claims = len(doc.Claims)
		}

		results = append(results, result)
	}

	if lintFlags.format == string(cli.FormatJSON) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("OK    %s (%d probes, %d claims)\n", r.File, r.Probes, r.Claims)
				continue
			}
			fmt.Printf("ERROR %s\n", r.File)
			for _, e := range r.Errors {
				fmt.Printf("      %s\n", e)
			}
		}
	}

	if failed {
		return fmt.Errorf("lint failed")
	}
	return nil
}
