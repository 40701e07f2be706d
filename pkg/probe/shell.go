package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
)

// shellProbe runs a command through the shell and records its outcome.
type shellProbe struct {
	decl    claim.ProbeDecl
	workDir string
}

func newShellProbe(decl claim.ProbeDecl, workDir string) *shellProbe {
	return &shellProbe{decl: decl, workDir: workDir}
}

func (p *shellProbe) ID() string             { return p.decl.ID }
func (p *shellProbe) Kind() string           { return fact.KindShell }
func (p *shellProbe) Timeout() time.Duration { return p.decl.Timeout }

// Run executes the command. A non-zero exit is evidence, not an error: the
// record carries the exit code and claims decide what it means. Only
// failures to run the command at all (or a cancelled context) are errors.
func (p *shellProbe) Run(ctx context.Context) (*fact.Record, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", p.decl.Command)
	cmd.Dir = p.workDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// A forked child can keep the output pipes open after the shell is
	// killed; WaitDelay bounds how long Wait blocks on them.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		// The context check comes first: when CommandContext kills the
		// shell, Wait reports "signal: killed" as an ExitError, which
		// would otherwise masquerade as ordinary evidence.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("probe %q: failed to run command: %w", p.decl.ID, err)
		}
		exitCode = exitErr.ExitCode()
	}

	record := fact.NewRecord(fact.KindShell, map[string]fact.Value{
		"exit_code": fact.Int(exitCode),
		"stdout":    fact.String(stdout.String()),
		"stderr":    fact.String(stderr.String()),
		"duration":  fact.Number(elapsed.Seconds()),
	})

	if p.decl.ParseJSON {
		parsed, err := parseJSONOutput(stdout.Bytes())
		if err != nil {
			return nil, fmt.Errorf("probe %q: %w", p.decl.ID, err)
		}
		record.Fields["json"] = parsed
	}

	return record, nil
}

// parseJSONOutput decodes probe output declared as JSON. Numbers decode as
// float64 through the default decoder, matching the engine's number type.
func parseJSONOutput(data []byte) (fact.Value, error) {
	var decoded interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &decoded); err != nil {
		return fact.Null(), fmt.Errorf("output is not valid JSON: %w", err)
	}
	return fact.FromAny(decoded), nil
}
