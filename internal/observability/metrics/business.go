package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordEntries adds n entries to the given pipeline stage.
func RecordEntries(stage string, n int) {
	if n <= 0 {
		return
	}
	EntriesTotal.WithLabelValues(stage).Add(float64(n))
}

// RecordSourceFetch records the duration of a source fetch.
// Kind is either "url" or "file".
func RecordSourceFetch(kind string, duration time.Duration) {
	SourceFetchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordSourceFetchError records a source that produced no entries because of an error.
// Local file sources use an empty host.
func RecordSourceFetchError(host, errorType string) {
	SourceFetchErrors.WithLabelValues(host, errorType).Inc()
}

// UpdateConfigured records the size of the configured source and query lists.
func UpdateConfigured(sources, queries int) {
	SourcesTotal.Set(float64(sources))
	QueriesTotal.Set(float64(queries))
}

// RecordRun records the duration of a run and, when it succeeded, its completion time.
func RecordRun(duration time.Duration, succeeded bool, now time.Time) {
	RunDuration.Set(duration.Seconds())
	if succeeded {
		LastSuccessTimestamp.Set(float64(now.Unix()))
	}
}

// WriteTextfile dumps the registry in the text exposition format to path,
// for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
