package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard backend and the
// event exporter.
type Metrics struct {
	RequestsTotal *prometheus.CounterVec // labels: route, status
	DatasetLoads  *prometheus.CounterVec // labels: document, outcome={ok,fallback,error}

	SnapshotSites    prometheus.Gauge
	SnapshotLoadedAt prometheus.Gauge // unix seconds of the last successful load

	ExportedEvents *prometheus.CounterVec // labels: kind={fire,quake}
	ExportDuration prometheus.Histogram
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsTotal,
		m.DatasetLoads,
		m.SnapshotSites,
		m.SnapshotLoadedAt,
		m.ExportedEvents,
		m.ExportDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors to avoid "already
// registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskradar",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskradar",
			Name:      "dataset_loads_total",
			Help:      "Document load attempts by outcome.",
		}, []string{"document", "outcome"}),
		SnapshotSites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riskradar",
			Name:      "snapshot_sites",
			Help:      "Number of enriched sites in the active snapshot.",
		}),
		SnapshotLoadedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riskradar",
			Name:      "snapshot_loaded_at_seconds",
			Help:      "Unix time of the last successful snapshot load.",
		}),
		ExportedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskradar",
			Name:      "exported_events_total",
			Help:      "Events written to the feed by kind.",
		}, []string{"kind"}),
		ExportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riskradar",
			Name:      "export_duration_seconds",
			Help:      "Duration of a full export run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}
