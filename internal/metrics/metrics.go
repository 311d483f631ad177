// Package metrics exposes Prometheus collectors for logged events and the
// running longevity state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lazypower/lifeclock/internal/longevity"
)

const namespace = "lifeclock"

// Metrics groups the collectors updated by the engine.
type Metrics struct {
	EntriesLogged  *prometheus.CounterVec
	ImpactHours    *prometheus.HistogramVec
	RejectedInputs *prometheus.CounterVec
	LifeExpectancy prometheus.Gauge
	LifeExtension  prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EntriesLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_logged_total",
			Help:      "Number of logged events by kind.",
		}, []string{"kind"}),
		ImpactHours: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "life_impact_hours",
			Help:      "Life impact in hours of each logged event.",
			Buckets:   []float64{-2, -1, -0.5, 0, 0.5, 1, 2, 3, 5, 10},
		}, []string{"kind"}),
		RejectedInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inputs_total",
			Help:      "Number of events rejected by validation, by kind.",
		}, []string{"kind"}),
		LifeExpectancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "life_expectancy_years",
			Help:      "Current life expectancy estimate in years.",
		}),
		LifeExtension: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "life_extension_hours",
			Help:      "Cumulative life extension in hours.",
		}),
	}
	reg.MustRegister(m.EntriesLogged, m.ImpactHours, m.RejectedInputs, m.LifeExpectancy, m.LifeExtension)
	return m
}

// ObserveEntry records one logged event of kind and the resulting state.
func (m *Metrics) ObserveEntry(kind longevity.Kind, hours float64, s longevity.State) {
	m.EntriesLogged.WithLabelValues(string(kind)).Inc()
	m.ImpactHours.WithLabelValues(string(kind)).Observe(hours)
	m.SetState(s)
}

// ObserveRejected records an event of kind that failed validation.
func (m *Metrics) ObserveRejected(kind longevity.Kind) {
	m.RejectedInputs.WithLabelValues(string(kind)).Inc()
}

// SetState publishes s on the state gauges.
func (m *Metrics) SetState(s longevity.State) {
	m.LifeExpectancy.Set(s.CurrentLifeExpectancy)
	m.LifeExtension.Set(s.TotalLifeExtension)
}
