/* metrics.go
 * Contains the Prometheus metrics recorded by the api package and exposed by the web server
 */

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes recorded by the lookups counter
const (
	OutcomeFound     = "found"
	OutcomeNotFound  = "not_found"
	OutcomeAmbiguous = "ambiguous"
	OutcomeError     = "error"
)

// Metrics holds the collectors for one registry
type Metrics struct {
	Registry        *prometheus.Registry
	Lookups         *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
	Cache           *prometheus.CounterVec
	Charts          prometheus.Counter
}

// New creates the collectors and registers them on a new registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)
	return &Metrics{
		Registry: registry,
		Lookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dwzbot",
			Name:      "lookups_total",
			Help:      "Player lookups by outcome.",
		}, []string{"outcome"}),
		ProviderLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dwzbot",
			Name:      "provider_request_seconds",
			Help:      "Latency of requests to the federation website.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		Cache: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dwzbot",
			Name:      "cache_requests_total",
			Help:      "Player card cache lookups by result.",
		}, []string{"result"}),
		Charts: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "dwzbot",
			Name:      "charts_rendered_total",
			Help:      "Rating charts rendered.",
		}),
	}
}

// ObserveLookup records the outcome of a lookup. Safe to call on a nil receiver.
func (m *Metrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
}

// ObserveProvider records the duration of a provider request started at start. Safe to call on a nil receiver.
func (m *Metrics) ObserveProvider(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.ProviderLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveCache records a cache hit or miss. Safe to call on a nil receiver.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.Cache.WithLabelValues(result).Inc()
}

// ObserveChart records a rendered chart. Safe to call on a nil receiver.
func (m *Metrics) ObserveChart() {
	if m == nil {
		return
	}
	m.Charts.Inc()
}
