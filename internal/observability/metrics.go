package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// quake feed analytics pipeline.
type Metrics struct {
	RecordsIngested prometheus.Counter
	RowsSkipped     prometheus.Counter
	RefreshErrors   prometheus.Counter
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Refresh cycle metrics.
	BatchRecords    prometheus.Histogram
	FetchDuration   prometheus.Histogram
	RefreshDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "records_ingested_total",
			Help:      "Total feed records parsed into batches.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "rows_skipped_total",
			Help:      "Total feed rows rejected during parsing.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "refresh_errors_total",
			Help:      "Total failed refresh cycles.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_published_total",
			Help:      "Total classified events written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "publish_errors_total",
			Help:      "Total failed sink topic writes.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "batch_records",
			Help:      "Number of records per materialized batch.",
			Buckets:   []float64{10, 50, 100, 500, 1000, 2500, 5000, 10000, 25000},
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the feed download or file read.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-parse-analyze-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.RecordsIngested,
		m.RowsSkipped,
		m.RefreshErrors,
		m.EventsPublished,
		m.PublishErrors,
		m.PipelineRunning,
		m.BatchRecords,
		m.FetchDuration,
		m.RefreshDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsIngested: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "records_ingested_total"}),
		RowsSkipped:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "rows_skipped_total"}),
		RefreshErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "refresh_errors_total"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "events_published_total"}),
		PublishErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "publish_errors_total"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_feed", Name: "pipeline_running"}),
		BatchRecords:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_feed", Name: "batch_records"}),
		FetchDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_feed", Name: "fetch_duration_seconds"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_feed", Name: "refresh_duration_seconds"}),
	}
}
