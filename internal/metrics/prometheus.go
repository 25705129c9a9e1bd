package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "primecalc"

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the Prometheus collectors of one process. Collectors are
// registered on a private registry so that several instances (tests, the
// REPL) never collide on the global one.
type Metrics struct {
	registry     *prometheus.Registry
	enumerations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	primesFound  *prometheus.CounterVec
	lastBound    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them, together with the Go
// runtime collector, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		enumerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enumerations_total",
			Help:      "Number of prime enumerations by strategy and status.",
		}, []string{"strategy", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enumeration_duration_seconds",
			Help:      "Wall-clock duration of successful enumerations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"strategy"}),
		primesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primes_found_total",
			Help:      "Number of primes returned by successful enumerations.",
		}, []string{"strategy"}),
		lastBound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_bound",
			Help:      "Upper bound of the most recent enumeration.",
		}),
	}
	m.registry.MustRegister(
		m.enumerations,
		m.duration,
		m.primesFound,
		m.lastBound,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEnumeration records the outcome of one enumeration.
//
// Parameters:
//   - strategy: The canonical strategy name.
//   - bound: The requested upper bound.
//   - found: The number of primes returned (ignored on failure).
//   - d: The wall-clock duration.
//   - err: The enumeration error, nil on success.
func (m *Metrics) ObserveEnumeration(strategy string, bound, found int, d time.Duration, err error) {
	m.lastBound.Set(float64(bound))
	if err != nil {
		m.enumerations.WithLabelValues(strategy, StatusFailure).Inc()
		return
	}
	m.enumerations.WithLabelValues(strategy, StatusSuccess).Inc()
	m.duration.WithLabelValues(strategy).Observe(d.Seconds())
	m.primesFound.WithLabelValues(strategy).Add(float64(found))
}

// WriteText writes every registered metric family to w in the Prometheus
// text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
