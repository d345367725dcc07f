// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for the logging patterns used by the aggregation pipeline.
//
// Key features:
//   - JSON and text output formats
//   - Run ID tagging
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	logger := logging.WithRunID(logging.NewFromEnv(), logging.NewRunID())
//	ctx := logging.WithLogger(context.Background(), logger)
//	logging.FromContext(ctx).Info("run started")
package logging
