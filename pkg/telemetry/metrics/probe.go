package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"attest-hq/attest/pkg/config"
)

// ProbeMetrics tracks evidence collection.
//
// Metrics:
//   - attest_probe_runs_total: executions by probe, kind and status
//   - attest_probe_duration_seconds: execution duration histogram
type ProbeMetrics struct {
	runsTotal *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewProbeMetrics creates and registers probe metrics.
func NewProbeMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *ProbeMetrics {
	pm := &ProbeMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "probe_runs_total",
				Help:      "Total number of probe executions",
			},
			[]string{"probe", "kind", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "probe_duration_seconds",
				Help:      "Duration of probe executions in seconds",
				// Shell probes routinely take tens of seconds.
				Buckets: []float64{0.05, 0.25, 1, 5, 15, 60, 300},
			},
			[]string{"probe", "kind"},
		),
	}

	registry.MustRegister(pm.runsTotal, pm.duration)
	return pm
}

// RecordRun records one probe execution.
func (pm *ProbeMetrics) RecordRun(probeID, kind, status string, duration time.Duration) {
	pm.runsTotal.WithLabelValues(probeID, kind, status).Inc()
	pm.duration.WithLabelValues(probeID, kind).Observe(duration.Seconds())
}
