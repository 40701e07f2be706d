package cli

import (
	"fmt"
	"io"
	"time"

	"attest-hq/attest/pkg/report"
	"attest-hq/attest/pkg/report/export"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	// FormatText is human-readable output.
	FormatText OutputFormat = "text"
	// FormatJSON is machine-readable JSON.
	FormatJSON OutputFormat = "json"
	// FormatCSV is one summary row per claim verdict.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON, FormatCSV:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or csv)", s)
	}
}

// RenderRuns writes run records to w in the chosen format. Text output
// shows a per-claim verdict line and, for failures, the detail trail.
func RenderRuns(w io.Writer, format OutputFormat, records []*report.RunRecord, verbose bool) error {
	switch format {
	case FormatJSON:
		return export.NewJSONExporter(true).Export(records, w)
	case FormatCSV:
		return export.NewCSVExporter(true).Export(records, w)
	default:
		for _, record := range records {
			renderRunText(w, record, verbose)
		}
		return nil
	}
}

func renderRunText(w io.Writer, record *report.RunRecord, verbose bool) {
	status := "PASSED"
	if !record.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(w, "%s  %s (%s)\n", status, record.SpecName, record.ID)
	fmt.Fprintf(w, "  started %s, took %s\n",
		record.StartedAt.Format("2006-01-02 15:04:05"), record.Duration().Round(time.Millisecond))

	if verbose && len(record.Probes) > 0 {
		fmt.Fprintln(w, "  probes:")
		for _, p := range record.Probes {
			fmt.Fprintf(w, "    %-10s %-6s %-8s %dms\n", p.ProbeID, p.Kind, p.Status, p.DurationMs)
		}
	}

	for _, c := range record.Claims {
		mark := "✓"
		if !c.Passed {
			mark = "✗"
		}
		fmt.Fprintf(w, "  %s %s [%s]", mark, c.ClaimID, c.Severity)
		if c.Description != "" {
			fmt.Fprintf(w, " %s", c.Description)
		}
		fmt.Fprintln(w)

		if !c.Passed || verbose {
			for _, d := range c.Details {
				fmt.Fprintf(w, "      %s\n", d)
			}
		}
	}
	fmt.Fprintln(w)
}
