package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
)

// scanProbe matches files on disk against glob paths and an optional
// content pattern.
type scanProbe struct {
	decl    claim.ProbeDecl
	workDir string
}

func newScanProbe(decl claim.ProbeDecl, workDir string) *scanProbe {
	return &scanProbe{decl: decl, workDir: workDir}
}

func (p *scanProbe) ID() string             { return p.decl.ID }
func (p *scanProbe) Kind() string           { return fact.KindScan }
func (p *scanProbe) Timeout() time.Duration { return p.decl.Timeout }

// Run expands the declared globs and, when a pattern is set, collects every
// line matching it. Matching nothing is evidence, not an error. File paths
// in the record are relative to the working directory and sorted.
func (p *scanProbe) Run(ctx context.Context) (*fact.Record, error) {
	var pattern *regexp.Regexp
	if p.decl.Pattern != "" {
		var err error
		pattern, err = regexp.Compile(p.decl.Pattern)
		if err != nil {
			return nil, fmt.Errorf("probe %q: invalid pattern: %w", p.decl.ID, err)
		}
	}

	files, err := p.expandGlobs()
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", p.decl.ID, err)
	}

	fileValues := make([]fact.Value, 0, len(files))
	var matchValues []fact.Value

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if pattern == nil {
			fileValues = append(fileValues, fact.String(file))
			continue
		}

		data, err := os.ReadFile(filepath.Join(p.workDir, file))
		if err != nil {
			return nil, fmt.Errorf("probe %q: failed to read %q: %w", p.decl.ID, file, err)
		}

		found := pattern.FindAllString(string(data), -1)
		if len(found) == 0 {
			continue
		}
		fileValues = append(fileValues, fact.String(file))
		for _, m := range found {
			matchValues = append(matchValues, fact.String(m))
		}
	}

	count := len(fileValues)
	if pattern != nil {
		count = len(matchValues)
	}

	return fact.NewRecord(fact.KindScan, map[string]fact.Value{
		"files":   fact.List(fileValues...),
		"matches": fact.List(matchValues...),
		"count":   fact.Int(count),
	}), nil
}

// expandGlobs resolves the declared path globs against the working
// directory, deduplicated and sorted.
func (p *scanProbe) expandGlobs() ([]string, error) {
	seen := make(map[string]bool)

	for _, pathGlob := range p.decl.Paths {
		matches, err := filepath.Glob(filepath.Join(p.workDir, pathGlob))
		if err != nil {
			return nil, fmt.Errorf("invalid path glob %q: %w", pathGlob, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(p.workDirOrDot(), match)
			if err != nil {
				rel = match
			}
			seen[rel] = true
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func (p *scanProbe) workDirOrDot() string {
	if p.workDir == "" {
		return "."
	}
	return p.workDir
}
