package claim

import "time"

// Severity ranks how serious a failed claim is for reporting purposes.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Document is a fully parsed claim spec file: the probes that gather
// evidence and the claims verified against it.
type Document struct {
	// Name identifies the spec (defaults to the file name).
	Name string

	// Version is the spec author's version string, if any.
	Version string

	// SourceFile is the path the document was loaded from.
	SourceFile string

	// Loaded is when the document was parsed.
	Loaded time.Time

	// Probes are the evidence gatherers, keyed order preserved.
	Probes []ProbeDecl

	// Claims are the assertions to verify, in document order.
	Claims []*Claim
}

// ProbeDecl declares a probe in a spec file. The probe framework turns the
// declaration into a runnable probe of the matching kind.
type ProbeDecl struct {
	// ID is the record identifier the probe's evidence is filed under.
	ID string

	// Kind selects the probe implementation: shell, url, llm, scan.
	Kind string

	// Command is the shell command line (shell probes).
	Command string

	// URL is the address to fetch (url probes).
	URL string

	// Prompt is the judgment prompt (llm probes).
	Prompt string

	// Paths are the file globs to scan (scan probes).
	Paths []string

	// Pattern is the regex applied to scanned files (scan probes).
	Pattern string

	// ParseJSON asks shell/url probes to decode their output as JSON into
	// the record's "json" field.
	ParseJSON bool

	// Timeout bounds the probe run; zero means the runner default.
	Timeout time.Duration
}

// Claim is a single named assertion with its rule tree.
type Claim struct {
	// ID uniquely names the claim within its document.
	ID string

	// Description is the human-readable statement being asserted.
	Description string

	// Severity defaults to SeverityError.
	Severity Severity

	// Rule is the expression evaluated against the fact-record mapping.
	Rule *Rule
}

// ClaimByID returns the claim with the given id, or nil.
func (d *Document) ClaimByID(id string) *Claim {
	for _, c := range d.Claims {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ProbeIDs returns the declared probe identifiers in document order.
func (d *Document) ProbeIDs() []string {
	ids := make([]string, 0, len(d.Probes))
	for _, p := range d.Probes {
		ids = append(ids, p.ID)
	}
	return ids
}
