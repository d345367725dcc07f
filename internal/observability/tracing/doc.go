// Package tracing provides OpenTelemetry tracing integration.
//
// Spans cover one aggregation run, each source fetch, and every outgoing
// HTTP request made by the feed fetcher. Without an installed provider the
// global no-op tracer is used and spans cost nothing.
//
// Example usage:
//
//	ctx, span := tracing.StartSpan(ctx, "fetch-source")
//	entries, err := fetch(ctx)
//	tracing.EndSpan(span, err)
//
//	client := &http.Client{Transport: tracing.NewTransport(nil)}
package tracing
