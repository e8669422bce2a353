package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Simulation metrics
	CompaniesCreated   prometheus.Counter
	PeriodsSimulated   prometheus.Counter
	SimulationDuration prometheus.Histogram
	SimulationErrors   *prometheus.CounterVec
	DiagnosticsRaised  *prometheus.CounterVec
	StaleMacroPeriods  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CompaniesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "captop_companies_created_total",
			Help: "Total number of companies seeded",
		}),
		PeriodsSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "captop_periods_simulated_total",
			Help: "Total number of periods closed",
		}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "captop_simulation_duration_seconds",
			Help:    "Duration of period simulations",
			Buckets: prometheus.DefBuckets,
		}),
		SimulationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "captop_simulation_errors_total",
				Help: "Total number of failed period advances by error type",
			},
			[]string{"error_type"},
		),
		DiagnosticsRaised: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "captop_diagnostics_total",
				Help: "Total diagnostics raised while closing periods, by code",
			},
			[]string{"code"},
		),
		StaleMacroPeriods: promauto.NewCounter(prometheus.CounterOpts{
			Name: "captop_stale_macro_periods_total",
			Help: "Total periods closed on cached macro indices",
		}),
	}
}
