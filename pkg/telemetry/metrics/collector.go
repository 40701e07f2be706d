package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"attest-hq/attest/pkg/config"
)

// Collector registers and records all attest metrics. A nil registry
// creates a private one, keeping tests isolated from the process-global
// default registry.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	probeMetrics   *ProbeMetrics
	verdictMetrics *VerdictMetrics
	cacheMetrics   *CacheMetrics
}

// NewCollector creates a metrics collector.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "attest"
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		probeMetrics:   NewProbeMetrics(cfg, registry),
		verdictMetrics: NewVerdictMetrics(cfg, registry),
		cacheMetrics:   NewCacheMetrics(cfg, registry),
	}
}

// RecordProbeRun records one completed probe execution.
// status is "success", "error" or "timeout".
func (c *Collector) RecordProbeRun(probeID, kind, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.probeMetrics.RecordRun(probeID, kind, status, duration)
}

// RecordVerdict records one evaluated claim.
// outcome is "passed", "failed" or "error".
func (c *Collector) RecordVerdict(claimID, severity, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.verdictMetrics.RecordVerdict(claimID, severity, outcome, duration)
}

// RecordCacheHit records an llm cache hit.
func (c *Collector) RecordCacheHit() {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordHit()
}

// RecordCacheMiss records an llm cache miss.
func (c *Collector) RecordCacheMiss() {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordMiss()
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
