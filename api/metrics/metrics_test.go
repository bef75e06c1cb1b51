/* metrics_test.go
 * Contains unit tests for metrics.go
 */

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLookup(t *testing.T) {
	m := New()

	m.ObserveLookup(OutcomeFound)
	m.ObserveLookup(OutcomeFound)
	m.ObserveLookup(OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeNotFound)))
}

func TestObserveCache(t *testing.T) {
	m := New()

	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Cache.WithLabelValues("miss")))
}

func TestObserveProviderAndChart(t *testing.T) {
	m := New()

	m.ObserveProvider("search", time.Now())
	m.ObserveChart()

	assert.Equal(t, 1, testutil.CollectAndCount(m.ProviderLatency))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Charts))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveLookup(OutcomeError)
		m.ObserveCache(true)
		m.ObserveProvider("fetch", time.Now())
		m.ObserveChart()
	})
}
