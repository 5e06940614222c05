// Package observability holds the Prometheus instrumentation for the API.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for the
// readings pipeline and auth surface.
type Metrics struct {
	ReadingsIngested *prometheus.CounterVec // labels: source={manual,simulated}
	LoginAttempts    *prometheus.CounterVec // labels: outcome={success,failure}
	SignupsTotal     prometheus.Counter

	// AQIScore tracks the most recently computed score; AQIScoreSpread the
	// distribution across all report computations.
	AQIScore       prometheus.Gauge
	AQIScoreSpread prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReadingsIngested,
		m.LoginAttempts,
		m.SignupsTotal,
		m.AQIScore,
		m.AQIScoreSpread,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airwell",
			Name:      "readings_ingested_total",
			Help:      "Total sensor readings stored, by source.",
		}, []string{"source"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airwell",
			Name:      "login_attempts_total",
			Help:      "Total login attempts, by outcome.",
		}, []string{"outcome"}),
		SignupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airwell",
			Name:      "signups_total",
			Help:      "Total accounts created.",
		}),
		AQIScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airwell",
			Name:      "aqi_score",
			Help:      "Most recently computed AQI score.",
		}),
		AQIScoreSpread: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airwell",
			Name:      "aqi_score_spread",
			Help:      "Distribution of computed AQI scores.",
			Buckets:   []float64{50, 100, 150, 200, 300, 400, 500},
		}),
	}
}
