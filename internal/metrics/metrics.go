package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics 构建缓存的计数器，nil 安全（不接 prometheus 时传 nil）
type CacheMetrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Invalidations prometheus.Counter
}

func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "build_cache_hits_total",
			Help: "Build cache lookups served from a fresh entry.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "build_cache_misses_total",
			Help: "Build cache lookups that invoked the factory.",
		}),
		Invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "build_cache_invalidations_total",
			Help: "Build cache entries discarded as stale or explicitly invalidated.",
		}),
	}
	reg.MustRegister(m.Hits, m.Misses, m.Invalidations)
	return m
}

func (m *CacheMetrics) Hit() {
	if m != nil {
		m.Hits.Inc()
	}
}

func (m *CacheMetrics) Miss() {
	if m != nil {
		m.Misses.Inc()
	}
}

func (m *CacheMetrics) Invalidation() {
	if m != nil {
		m.Invalidations.Inc()
	}
}
