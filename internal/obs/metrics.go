package obs

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// ResolutionMetrics records price for sale resolutions.
type ResolutionMetrics struct {
	resolutions *prometheus.CounterVec
	cache       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewResolutionMetrics creates and registers the resolution collectors.
// Collectors already registered under the same names are reused, so several
// instances may share one registry. A nil registerer uses the default one.
func NewResolutionMetrics(namespace string, reg prometheus.Registerer) *ResolutionMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &ResolutionMetrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_resolutions_total",
			Help:      "Count of price for sale resolutions by inner record handling and outcome.",
		}, []string{"policy", "outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_resolution_cache_total",
			Help:      "Count of resolution cache lookups by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "price_resolution_duration_ms",
			Help:      "Latency of price for sale queries in milliseconds.",
			Buckets:   []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"outcome"}),
	}

	mustRegisterCollector(reg, m.resolutions, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.resolutions = v
		}
	})
	mustRegisterCollector(reg, m.cache, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.cache = v
		}
	})
	mustRegisterCollector(reg, m.duration, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.HistogramVec); ok {
			m.duration = v
		}
	})
	return m
}

// ObserveResolution counts one resolution under policy with its outcome.
func (m *ResolutionMetrics) ObserveResolution(policy, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(policy, outcome).Inc()
}

// ObserveCache counts one cache lookup.
func (m *ResolutionMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

// ObserveDuration records the latency of one query.
func (m *ResolutionMetrics) ObserveDuration(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(outcome).Observe(float64(d) / float64(time.Millisecond))
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register resolution metric: %w", err))
	}
}
