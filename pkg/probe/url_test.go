package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"attest-hq/attest/pkg/claim"
	"attest-hq/attest/pkg/fact"
)

func TestURLProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "uptime": 42}`))
	}))
	defer server.Close()

	p := newURLProbe(claim.ProbeDecl{
		ID:        "k-health",
		Kind:      fact.KindURL,
		URL:       server.URL,
		ParseJSON: true,
	}, server.Client())

	record, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if code, _ := record.Fields["status_code"].AsNumber(); code != 200 {
		t.Errorf("status_code = %v, want 200", code)
	}
	headers, _ := record.Fields["headers"].AsMap()
	if ct, _ := headers["Content-Type"].AsString(); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	jsonVal, ok := record.Fields["json"].AsMap()
	if !ok {
		t.Fatal("json field missing")
	}
	if status, _ := jsonVal["status"].AsString(); status != "healthy" {
		t.Errorf("json.status = %q, want healthy", status)
	}
}

func TestURLProbeServerErrorIsEvidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := newURLProbe(claim.ProbeDecl{ID: "k", Kind: fact.KindURL, URL: server.URL}, server.Client())

	record, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, 503 should be evidence", err)
	}
	if code, _ := record.Fields["status_code"].AsNumber(); code != 503 {
		t.Errorf("status_code = %v, want 503", code)
	}
}

func TestURLProbeTransportFailure(t *testing.T) {
	// Closed server guarantees a connection error.
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := newURLProbe(claim.ProbeDecl{ID: "k", Kind: fact.KindURL, URL: url}, nil)

	if _, err := p.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want transport error")
	}
}
