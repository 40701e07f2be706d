package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"attest-hq/attest/pkg/config"
)

func enabledConfig() config.MetricsConfig {
	return config.MetricsConfig{Enabled: true, Namespace: "attest"}
}

func TestCollectorRecordsProbeRuns(t *testing.T) {
	c := NewCollector(enabledConfig(), nil)

	c.RecordProbeRun("k-pytest", "shell", "success", 2*time.Second)
	c.RecordProbeRun("k-pytest", "shell", "success", 3*time.Second)
	c.RecordProbeRun("k-health", "url", "error", 100*time.Millisecond)

	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "attest_probe_runs_total" {
			found = true
			total := 0.0
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			if total != 3 {
				t.Errorf("probe_runs_total sum = %v, want 3", total)
			}
		}
	}
	if !found {
		t.Error("attest_probe_runs_total not registered")
	}
}

func TestCollectorDisabledIsNoop(t *testing.T) {
	c := NewCollector(config.MetricsConfig{Enabled: false}, nil)

	c.RecordProbeRun("p", "shell", "success", time.Second)
	c.RecordVerdict("c", "error", "passed", time.Millisecond)
	c.RecordCacheHit()

	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() != nil && m.GetCounter().GetValue() != 0 {
				t.Errorf("%s recorded %v while disabled", mf.GetName(), m.GetCounter().GetValue())
			}
		}
	}
}

func TestHandlerExposition(t *testing.T) {
	c := NewCollector(enabledConfig(), nil)
	c.RecordVerdict("tests-pass", "error", "passed", time.Millisecond)
	c.RecordCacheMiss()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "attest_claims_evaluated_total") {
		t.Errorf("exposition missing verdict counter:\n%s", body)
	}
	if !strings.Contains(body, "attest_llm_cache_misses_total") {
		t.Errorf("exposition missing cache counter:\n%s", body)
	}
}
