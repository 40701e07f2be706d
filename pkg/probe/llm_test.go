package probe

import (
	"context"
	"fmt"
	"testing"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
)

type fakeJudge struct {
	judgment Judgment
	err      error
}

func (f *fakeJudge) Judge(ctx context.Context, prompt string) (Judgment, error) {
	return f.judgment, f.err
}

func TestLLMProbeRecordsJudgment(t *testing.T) {
	judge := &fakeJudge{judgment: Judgment{
		Verdict: true,
		Answer:  "YES, the changelog documents the migration.",
		Model:   "gpt-4o-mini",
	}}

	p := newLLMProbe(claim.ProbeDecl{
		ID:     "k-changelog",
		Kind:   fact.KindLLM,
		Prompt: "Does the changelog document the migration?",
	}, judge)

	record, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if verdict, _ := record.Fields["verdict"].AsBool(); !verdict {
		t.Error("verdict = false, want true")
	}
	if answer, _ := record.Fields["answer"].AsString(); answer == "" {
		t.Error("answer is empty")
	}
	if model, _ := record.Fields["model"].AsString(); model != "gpt-4o-mini" {
		t.Errorf("model = %q", model)
	}
}

func TestLLMProbeJudgeFailure(t *testing.T) {
	p := newLLMProbe(claim.ProbeDecl{ID: "k", Kind: fact.KindLLM, Prompt: "?"},
		&fakeJudge{err: fmt.Errorf("backend unreachable")})

	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want judge error")
	}
}

func TestParseJudgment(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		verdict bool
		wantErr bool
	}{
		{"plain yes", "YES", true, false},
		{"yes with rationale", "YES, coverage is documented.", true, false},
		{"lowercase", "yes it does", true, false},
		{"plain no", "NO, there is no mention of it.", false, false},
		{"leading whitespace", "  NO", false, false},
		{"unparseable", "It depends on the branch.", false, true},
		{"empty", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := parseJudgment(tt.answer, "m")
			if tt.wantErr {
				if err == nil {
					t.Error("parseJudgment() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseJudgment() error = %v", err)
			}
			if j.Verdict != tt.verdict {
				t.Errorf("Verdict = %v, want %v", j.Verdict, tt.verdict)
			}
		})
	}
}

func TestNewRejectsLLMWithoutJudge(t *testing.T) {
	_, err := New(claim.ProbeDecl{ID: "k", Kind: fact.KindLLM, Prompt: "?"}, Options{})
	if err == nil {
		t.Error("New() error = nil, want missing judge error")
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(claim.ProbeDecl{ID: "k", Kind: "telepathy"}, Options{})
	if err == nil {
		t.Error("New() error = nil, want unknown kind error")
	}
}
