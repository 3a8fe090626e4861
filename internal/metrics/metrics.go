package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beatlicense_sales_reports_generated_total",
		Help: "Total number of sales report generations, labelled by outcome.",
	}, []string{"outcome"})

	ReportGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "beatlicense_sales_report_generation_duration_ms",
		Help:    "Time spent fetching and aggregating one sales report in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beatlicense_sales_source_failures_total",
		Help: "Total number of failed source reads, labelled by revenue category and error kind.",
	}, []string{"category", "kind"})

	SourceRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beatlicense_sales_source_records_total",
		Help: "Total number of raw records read, labelled by revenue category.",
	}, []string{"category"})

	UnattributedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beatlicense_sales_unattributed_events_total",
		Help: "Total number of revenue events whose earner could not be resolved.",
	})

	ExportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beatlicense_sales_exports_total",
		Help: "Total number of report exports, labelled by format and outcome.",
	}, []string{"format", "outcome"})
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
