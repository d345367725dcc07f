// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all pipeline metrics including:
//   - Entry counts per pipeline stage (historical, fetched, matched, written, ...)
//   - Source fetch durations and failures
//   - Run duration and last success time
//
// Metrics live on a private Registry. Because a run is a one-shot process,
// the registry is written to a node_exporter textfile with WriteTextfile
// rather than served over HTTP.
//
// Example usage:
//
//	start := time.Now()
//	entries, err := fetcher.Fetch(ctx, src)
//	metrics.RecordSourceFetch("url", time.Since(start))
//	metrics.RecordEntries(metrics.StageFetched, len(entries))
//	_ = metrics.WriteTextfile("/var/lib/node_exporter/paperfeed.prom")
package metrics
