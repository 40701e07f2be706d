package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"attest-hq/attest/pkg/config"
)

// VerdictMetrics tracks claim evaluation.
//
// Metrics:
//   - attest_claims_evaluated_total: verdicts by claim, severity and outcome
//   - attest_claim_evaluation_seconds: evaluation duration histogram
type VerdictMetrics struct {
	evaluatedTotal *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewVerdictMetrics creates and registers verdict metrics.
func NewVerdictMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *VerdictMetrics {
	vm := &VerdictMetrics{
		evaluatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "claims_evaluated_total",
				Help:      "Total number of claim verdicts",
			},
			[]string{"claim", "severity", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "claim_evaluation_seconds",
				Help:      "Duration of claim evaluations in seconds",
				// Evaluation is in-memory rule walking, well under a second.
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
			},
			[]string{"claim"},
		),
	}

	registry.MustRegister(vm.evaluatedTotal, vm.duration)
	return vm
}

// RecordVerdict records one evaluated claim.
func (vm *VerdictMetrics) RecordVerdict(claimID, severity, outcome string, duration time.Duration) {
	vm.evaluatedTotal.WithLabelValues(claimID, severity, outcome).Inc()
	vm.duration.WithLabelValues(claimID).Observe(duration.Seconds())
}
