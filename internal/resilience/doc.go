// Package resilience provides reliability and fault tolerance patterns for feed fetching.
// It includes implementations of circuit breakers and retry logic so that a flaky
// or unreachable feed host cannot stall or abort a whole aggregation run.
//
// The package supports:
//   - Per-host circuit breakers for feed servers
//   - Bounded retry with a fixed, context-aware delay
//
// Usage Example:
//
//	hosts := circuitbreaker.NewGroup(circuitbreaker.FeedHostConfig)
//	result, err := hosts.Execute("rss.arxiv.org", func() (interface{}, error) {
//	    return fetchFeed()
//	})
//
//	retryConfig := retry.FixedDelayConfig("feed-fetch", 3, 2*time.Second)
//	err := retry.Do(ctx, retryConfig, func() error {
//	    return fetchFeed()
//	})
package resilience
