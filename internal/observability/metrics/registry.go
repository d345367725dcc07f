// Package metrics provides centralized Prometheus metrics for the aggregation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every pipeline metric. A one-shot run has no /metrics endpoint,
// so the registry is dumped to a node_exporter textfile instead of the default registry.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

// Entry stage labels used with EntriesTotal.
const (
	StageHistorical = "historical"
	StageFetched    = "fetched"
	StageDuplicate  = "duplicate"
	StageMatched    = "matched"
	StageRejected   = "rejected"
	StageTruncated  = "truncated"
	StageWritten    = "written"
)

// Pipeline metrics track one aggregation run
var (
	// EntriesTotal counts entries passing through each pipeline stage
	EntriesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperfeed_entries_total",
			Help: "Total number of entries by pipeline stage",
		},
		[]string{"stage"},
	)

	// SourceFetchDuration measures time to fetch one source
	SourceFetchDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paperfeed_source_fetch_duration_seconds",
			Help:    "Time taken to fetch and parse a feed source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"kind"},
	)

	// SourceFetchErrors counts sources that could not be fetched
	SourceFetchErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperfeed_source_fetch_errors_total",
			Help: "Total number of feed sources that failed to fetch",
		},
		[]string{"host", "error_type"},
	)

	// SourcesTotal tracks the number of configured sources
	SourcesTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "paperfeed_sources",
			Help: "Number of configured feed sources",
		},
	)

	// QueriesTotal tracks the number of configured queries
	QueriesTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "paperfeed_queries",
			Help: "Number of configured keyword queries",
		},
	)

	// RunDuration records how long the last run took
	RunDuration = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "paperfeed_run_duration_seconds",
			Help: "Duration of the last aggregation run in seconds",
		},
	)

	// LastSuccessTimestamp records when a feed was last written successfully
	LastSuccessTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "paperfeed_last_success_timestamp_seconds",
			Help: "Unix time of the last successful feed write",
		},
	)
)
