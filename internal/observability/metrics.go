package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// archive ETL.
type Metrics struct {
	FilesProcessed prometheus.Counter
	FileFailures   prometheus.Counter
	RowsParsed     prometheus.Counter
	RowsFolded     prometheus.Counter
	RowsPadded     prometheus.Counter
	RecordsDropped prometheus.Counter
	RecordsEmitted prometheus.Counter

	RunDuration    prometheus.Histogram
	WatcherRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "files_processed_total",
			Help:      "Total input files loaded successfully.",
		}),
		FileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "file_failures_total",
			Help:      "Total input files rejected for a missing schema declaration or read error.",
		}),
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "rows_parsed_total",
			Help:      "Total data rows tokenized across all input files.",
		}),
		RowsFolded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "rows_folded_total",
			Help:      "Rows whose surplus tokens were folded into the last declared column.",
		}),
		RowsPadded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "rows_padded_total",
			Help:      "Rows right-padded with empty cells to the declared column count.",
		}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "records_dropped_total",
			Help:      "Records dropped at the merge for lacking a parseable timestamp.",
		}),
		RecordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteo_etl",
			Name:      "records_emitted_total",
			Help:      "Records in the merged, sorted corpus.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meteo_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-merge-write cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		WatcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteo_etl",
			Name:      "watcher_running",
			Help:      "1 while watch mode is active, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.FilesProcessed,
		m.FileFailures,
		m.RowsParsed,
		m.RowsFolded,
		m.RowsPadded,
		m.RecordsDropped,
		m.RecordsEmitted,
		m.RunDuration,
		m.WatcherRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesProcessed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "files_processed_total"}),
		FileFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "file_failures_total"}),
		RowsParsed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "rows_parsed_total"}),
		RowsFolded:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "rows_folded_total"}),
		RowsPadded:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "rows_padded_total"}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "records_dropped_total"}),
		RecordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meteo_etl", Name: "records_emitted_total"}),
		RunDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "meteo_etl", Name: "run_duration_seconds"}),
		WatcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "meteo_etl", Name: "watcher_running"}),
	}
}
