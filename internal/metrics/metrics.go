// Package metrics exposes Prometheus instrumentation for multivar hosts.
package metrics

import (
	"net/http"
	"time"

	"github.com/aretw0/multivar/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds the collectors of one host. A nil *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evaluations *prometheus.CounterVec
	cache       *prometheus.CounterVec
}

// New registers the multivar collectors on reg, or on a fresh registry when reg is nil.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multivar_operations_total",
				Help: "Total number of kernel operations served",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "multivar_operation_duration_seconds",
				Help:    "Duration of kernel operations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"operation"},
		),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multivar_evaluations_total",
				Help: "Total number of expression evaluations",
			},
			[]string{"outcome"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multivar_cache_lookups_total",
				Help: "Result cache lookups",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.operations, m.duration, m.evaluations, m.cache)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOperation counts one served operation and records its duration.
func (m *Metrics) ObserveOperation(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// CacheLookup counts a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

// InstrumentEvaluator wraps e so every evaluation is counted.
func (m *Metrics) InstrumentEvaluator(e ports.Evaluator) ports.Evaluator {
	if m == nil {
		return e
	}
	ok := m.evaluations.WithLabelValues(OutcomeOK)
	failed := m.evaluations.WithLabelValues(OutcomeError)
	return ports.EvaluatorFunc(func(expr string, bindings map[string]float64) (float64, error) {
		v, err := e.Evaluate(expr, bindings)
		if err != nil {
			failed.Inc()
		} else {
			ok.Inc()
		}
		return v, err
	})
}
