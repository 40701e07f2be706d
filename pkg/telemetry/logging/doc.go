// Package logging builds the structured slog logger used across attest.
//
// The logger is configured from config.LoggingConfig: level and output
// format (text or json). Components receive a *slog.Logger and attach
// their own "component" attribute.
package logging
