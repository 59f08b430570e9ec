package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/use-agent/kanoon/models"
)

// Metrics bundles Prometheus collectors for scrape runs.
type Metrics struct {
	Registry    *prometheus.Registry
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram
	ItemsTotal  *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanoon_runs_total",
			Help: "Scrape runs by outcome (completed, empty, failed, rejected).",
		},
		[]string{"outcome"},
	)
	runDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "kanoon_run_duration_seconds",
			Help: "Wall time of a scrape run, browser start to release.",
			// Runs sleep between documents, so they last seconds to minutes.
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
	items := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanoon_items_total",
			Help: "Processed judgment URLs by status.",
		},
		[]string{"status"},
	)

	registry.MustRegister(runs, runDuration, items)

	return &Metrics{
		Registry:    registry,
		RunsTotal:   runs,
		RunDuration: runDuration,
		ItemsTotal:  items,
	}
}

// IncRun counts a run that never started a session.
func (m *Metrics) IncRun(outcome string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRun counts a run and records its duration.
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(d.Seconds())
}

// IncItem counts one processed URL.
func (m *Metrics) IncItem(status models.ItemStatus) {
	if m == nil {
		return
	}
	m.ItemsTotal.WithLabelValues(string(status)).Inc()
}
