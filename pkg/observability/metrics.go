package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records simulations and conversions as Prometheus series.
// Each instance owns its registry, so several workbenches never collide.
type Metrics struct {
	registry    *prometheus.Registry
	simulations *prometheus.CounterVec
	steps       *prometheus.HistogramVec
	duration    *prometheus.HistogramVec
	conversions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_simulations_total",
				Help: "Total number of simulations by machine kind and terminal status",
			},
			[]string{"kind", "status"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_simulation_steps",
				Help:    "Number of recorded steps per simulation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_simulation_duration_seconds",
				Help:    "Duration of simulations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"kind"},
		),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_conversions_total",
				Help: "Total number of conversions between machine kinds",
			},
			[]string{"from", "to", "lossy"},
		),
	}
	m.registry.MustRegister(m.simulations, m.steps, m.duration, m.conversions)
	return m
}

// ObserveSimulation records a finished simulation.
func (m *Metrics) ObserveSimulation(e SimulationEvent) {
	kind := string(e.Kind)
	m.simulations.WithLabelValues(kind, string(e.Status)).Inc()
	m.steps.WithLabelValues(kind).Observe(float64(e.Steps))
	m.duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
}

// ObserveConversion records a conversion.
func (m *Metrics) ObserveConversion(e ConversionEvent) {
	m.conversions.WithLabelValues(string(e.From), string(e.To), strconv.FormatBool(e.Warnings > 0)).Inc()
}

// Hooks returns lifecycle hooks feeding this recorder.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnSimulate: func(_ context.Context, e SimulationEvent) { m.ObserveSimulation(e) },
		OnConvert:  func(_ context.Context, e ConversionEvent) { m.ObserveConversion(e) },
	}
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
