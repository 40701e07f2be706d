package export

import (
	"encoding/json"
	"fmt"
	"io"

	"attest-hq/attest/pkg/report"
)

// JSONExporter writes run records as JSON.
type JSONExporter struct {
	// Pretty enables indented output.
	Pretty bool
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes records to w. A single record exports as an object, several
// as an array, none as an empty array.
func (e *JSONExporter) Export(records []*report.RunRecord, w io.Writer) error {
	var payload interface{}
	switch len(records) {
	case 0:
		payload = []*report.RunRecord{}
	case 1:
		payload = records[0]
	default:
		payload = records
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return fmt.Errorf("failed to encode run records: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
