package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/fact"
)

// Probe executes one evidence-gathering action.
type Probe interface {
	// ID returns the declaration id, which keys the resulting record.
	ID() string

	// Kind returns the probe kind.
	Kind() string

	// Timeout returns the declared timeout, or zero to use the runner's
	// default.
	Timeout() time.Duration

	// Run collects evidence. The returned record is complete or the error
	// is non-nil; probes never return partial records.
	Run(ctx context.Context) (*fact.Record, error)
}

// Options carries the shared dependencies probes are built with.
type Options struct {
	// WorkDir is the working directory for shell and scan probes.
	WorkDir string

	// HTTPClient issues url probe requests. Nil uses a default client.
	HTTPClient *http.Client

	// Judge answers llm probe prompts. Required only when the document
	// declares llm probes.
	Judge Judge
}

// New builds a probe from its declaration. The declaration is assumed to
// have passed parser validation; unknown kinds still return an error so a
// hand-built declaration cannot slip through.
func New(decl claim.ProbeDecl, opts Options) (Probe, error) {
	switch decl.Kind {
	case fact.KindShell:
		return newShellProbe(decl, opts.WorkDir), nil
	case fact.KindURL:
		return newURLProbe(decl, opts.HTTPClient), nil
	case fact.KindLLM:
		if opts.Judge == nil {
			return nil, fmt.Errorf("probe %q: llm probes need a configured judge", decl.ID)
		}
		return newLLMProbe(decl, opts.Judge), nil
	case fact.KindScan:
		return newScanProbe(decl, opts.WorkDir), nil
	default:
		return nil, fmt.Errorf("probe %q: unknown kind %q", decl.ID, decl.Kind)
	}
}

// FromDocument builds every probe a document declares.
func FromDocument(doc *claim.Document, opts Options) ([]Probe, error) {
	probes := make([]Probe, 0, len(doc.Probes))
	for _, decl := range doc.Probes {
		p, err := New(decl, opts)
		if err != nil {
			return nil, err
		}
		probes = append(probes, p)
	}
	return probes, nil
}

// OptionsFromConfig derives probe options from the runtime configuration.
// The judge is attached separately because it needs the llm backend.
func OptionsFromConfig(cfg config.ProbesConfig) Options {
	return Options{WorkDir: cfg.WorkDir}
}
