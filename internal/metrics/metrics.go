package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the simulation service's Prometheus collectors.
type Metrics struct {
	Simulations        *prometheus.CounterVec
	Combinations       prometheus.Counter
	Duration           prometheus.Histogram
	OptimalProbability prometheus.Histogram
	StoredRuns         prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "regen",
			Name:      "simulations_total",
			Help:      "Simulations run, by source and outcome.",
		}, []string{"source", "outcome"}),
		Combinations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "regen",
			Name:      "combinations_scored_total",
			Help:      "Technology combinations scored across all simulations.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "regen",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of a single optimization.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		OptimalProbability: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "regen",
			Name:      "optimal_probability",
			Help:      "Success probability of the best combination per simulation.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 10),
		}),
		StoredRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "regen",
			Name:      "stored_runs",
			Help:      "Runs currently held in memory.",
		}),
	}
	reg.MustRegister(m.Simulations, m.Combinations, m.Duration, m.OptimalProbability, m.StoredRuns)
	return m
}
