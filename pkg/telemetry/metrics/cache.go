package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"attest-hq/attest/pkg/config"
)

// CacheMetrics tracks the llm response cache.
//
// Metrics:
//   - attest_llm_cache_hits_total
//   - attest_llm_cache_misses_total
type CacheMetrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics.
func NewCacheMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "llm_cache_hits_total",
			Help:      "Total number of llm cache hits",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "llm_cache_misses_total",
			Help:      "Total number of llm cache misses",
		}),
	}

	registry.MustRegister(cm.hits, cm.misses)
	return cm
}

// RecordHit records a cache hit.
func (cm *CacheMetrics) RecordHit() { cm.hits.Inc() }

// RecordMiss records a cache miss.
func (cm *CacheMetrics) RecordMiss() { cm.misses.Inc() }
