package probe

import (
	"context"
	"fmt"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
)

// Judgment is the answer a judge gives to a yes/no prompt.
type Judgment struct {
	// Verdict is the yes/no answer.
	Verdict bool

	// Answer is the full model response, kept for the audit trail.
	Answer string

	// Model identifies what produced the judgment.
	Model string
}

// Judge answers yes/no questions. Implementations are expected to be safe
// for concurrent use; the runner may execute several llm probes at once.
type Judge interface {
	Judge(ctx context.Context, prompt string) (Judgment, error)
}

// llmProbe asks a judge the declared prompt and records the judgment.
type llmProbe struct {
	decl  claim.ProbeDecl
	judge Judge
}

func newLLMProbe(decl claim.ProbeDecl, judge Judge) *llmProbe {
	return &llmProbe{decl: decl, judge: judge}
}

func (p *llmProbe) ID() string             { return p.decl.ID }
func (p *llmProbe) Kind() string           { return fact.KindLLM }
func (p *llmProbe) Timeout() time.Duration { return p.decl.Timeout }

func (p *llmProbe) Run(ctx context.Context) (*fact.Record, error) {
	judgment, err := p.judge.Judge(ctx, p.decl.Prompt)
	if err != nil {
		return nil, fmt.Errorf("probe %q: judgment failed: %w", p.decl.ID, err)
	}

	return fact.NewRecord(fact.KindLLM, map[string]fact.Value{
		"verdict": fact.Bool(judgment.Verdict),
		"answer":  fact.String(judgment.Answer),
		"model":   fact.String(judgment.Model),
	}), nil
}
