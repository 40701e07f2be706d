package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
)

// maxBodyBytes caps how much of a response body a url probe records.
const maxBodyBytes = 1 << 20

// urlProbe fetches an HTTP endpoint and records the response.
type urlProbe struct {
	decl   claim.ProbeDecl
	client *http.Client
}

func newURLProbe(decl claim.ProbeDecl, client *http.Client) *urlProbe {
	if client == nil {
		client = &http.Client{}
	}
	return &urlProbe{decl: decl, client: client}
}

func (p *urlProbe) ID() string             { return p.decl.ID }
func (p *urlProbe) Kind() string           { return fact.KindURL }
func (p *urlProbe) Timeout() time.Duration { return p.decl.Timeout }

// Run issues a GET request. Any response is evidence, including 5xx; only
// transport failures are errors.
func (p *urlProbe) Run(ctx context.Context) (*fact.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.decl.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("probe %q: invalid url: %w", p.decl.ID, err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe %q: request failed: %w", p.decl.ID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("probe %q: failed to read response body: %w", p.decl.ID, err)
	}

	headers := make(map[string]fact.Value, len(resp.Header))
	for name := range resp.Header {
		headers[name] = fact.String(resp.Header.Get(name))
	}

	record := fact.NewRecord(fact.KindURL, map[string]fact.Value{
		"status_code": fact.Int(resp.StatusCode),
		"body":        fact.String(string(body)),
		"headers":     fact.Map(headers),
		"duration":    fact.Number(elapsed.Seconds()),
	})

	if p.decl.ParseJSON {
		parsed, err := parseJSONOutput(body)
		if err != nil {
			return nil, fmt.Errorf("probe %q: %w", p.decl.ID, err)
		}
		record.Fields["json"] = parsed
	}

	return record, nil
}
