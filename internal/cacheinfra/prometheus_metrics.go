package cacheinfra

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics counts engine events per key class.
type PrometheusMetrics struct {
	hits        *prometheus.CounterVec
	misses      *prometheus.CounterVec
	stale       *prometheus.CounterVec
	fetchErrors *prometheus.CounterVec
	invalidated *prometheus.CounterVec
}

// NewPrometheusMetrics creates the counters and registers them on reg.
func NewPrometheusMetrics(namespace string, reg prometheus.Registerer) (*PrometheusMetrics, error) {
	newCounter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      name,
				Help:      help,
			},
			[]string{"class"},
		)
	}

	m := &PrometheusMetrics{
		hits:        newCounter("hits_total", "Fresh entries served from the cache"),
		misses:      newCounter("misses_total", "Lookups that required a fetch"),
		stale:       newCounter("stale_served_total", "Expired entries served after a failed fetch"),
		fetchErrors: newCounter("fetch_errors_total", "Failed fetches from the remote source"),
		invalidated: newCounter("invalidated_total", "Entries removed by invalidation"),
	}

	for _, c := range []prometheus.Collector{m.hits, m.misses, m.stale, m.fetchErrors, m.invalidated} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) Hit(class string) {
	m.hits.WithLabelValues(classLabel(class)).Inc()
}

func (m *PrometheusMetrics) Miss(class string) {
	m.misses.WithLabelValues(classLabel(class)).Inc()
}

func (m *PrometheusMetrics) Stale(class string) {
	m.stale.WithLabelValues(classLabel(class)).Inc()
}

func (m *PrometheusMetrics) FetchError(class string) {
	m.fetchErrors.WithLabelValues(classLabel(class)).Inc()
}

func (m *PrometheusMetrics) Invalidated(class string, count int) {
	if count <= 0 {
		return
	}
	m.invalidated.WithLabelValues(classLabel(class)).Add(float64(count))
}
