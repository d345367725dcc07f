// Package observability groups the structured logging, Prometheus metrics,
// and OpenTelemetry tracing used by the aggregation pipeline.
//
// Subpackages:
//   - logging: Structured logging utilities with slog and run ID tagging
//   - metrics: Prometheus metrics registry dumped to a textfile after each run
//   - tracing: OpenTelemetry spans for runs, source fetches, and HTTP requests
//
// Example usage:
//
//	logger := logging.WithRunID(logging.NewFromEnv(), logging.NewRunID())
//	ctx, span := tracing.StartSpan(ctx, "run")
//	defer span.End()
//	metrics.RecordEntries(metrics.StageWritten, 42)
package observability
