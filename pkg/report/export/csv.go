package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"attest-hq/attest/pkg/report"
)

// csvHeader is the column layout: one row per claim verdict.
var csvHeader = []string{
	"run_id", "spec_name", "started_at", "run_passed",
	"claim_id", "severity", "claim_passed", "message", "details",
}

// CSVExporter writes run records as CSV, one row per claim verdict.
type CSVExporter struct {
	// IncludeHeader writes the column names first.
	IncludeHeader bool
}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// Export writes records to w. Detail trails are joined with "; " so a row
// stays a single line.
func (e *CSVExporter) Export(records []*report.RunRecord, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}

	for _, record := range records {
		for _, c := range record.Claims {
			row := []string{
				record.ID,
				record.SpecName,
				record.StartedAt.Format(time.RFC3339),
				strconv.FormatBool(record.Passed),
				c.ClaimID,
				c.Severity,
				strconv.FormatBool(c.Passed),
				c.Message,
				strings.Join(c.Details, "; "),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
