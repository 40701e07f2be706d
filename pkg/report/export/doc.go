// Package export renders run records for machine consumption.
//
// The JSON exporter preserves the full record including claim detail
// trails. The CSV exporter flattens each run to one summary row per claim,
// which suits spreadsheets and quick shell pipelines.
package export
