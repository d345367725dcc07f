// Package circuitbreaker provides circuit breaker implementations for external feed hosts.
// It uses the github.com/sony/gobreaker library so that a host which keeps failing
// is skipped quickly instead of being retried for every source it serves.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is the circuit breaker name for logging and metrics
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state
	MaxRequests uint32

	// Interval is the cyclic period of the closed state to clear success/failure counts.
	// Zero keeps the counts for the lifetime of the breaker.
	Interval time.Duration

	// Timeout is how long to wait in open state before trying again
	Timeout time.Duration

	// ConsecutiveFailures trips the circuit after this many failures in a row.
	// Zero never trips.
	ConsecutiveFailures uint32

	// IsSuccessful decides which errors leave the failure counts untouched.
	// When nil, every non-nil error counts as a failure.
	IsSuccessful func(err error) bool
}

// FeedHostConfig returns configuration for the breaker guarding one feed host.
// Five host failures in a row open it, and it stays open well past a single run.
// Errors confined to one feed, such as an HTTP status or a parse error, do not
// count, so a broken feed URL never blocks the other feeds of its host.
func FeedHostConfig(host string) Config {
	return Config{
		Name:                "feed-host:" + host,
		MaxRequests:         1,
		Interval:            0,
		Timeout:             10 * time.Minute,
		ConsecutiveFailures: 5,
		IsSuccessful: func(err error) bool {
			return !IsHostFailure(err)
		},
	}
}

// IsHostFailure reports whether err shows the host itself is unreachable:
// a DNS failure, a dial or connection error, or a timeout.
// Cancellation of the caller's context is not a host failure.
func IsHostFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// CircuitBreaker wraps gobreaker.CircuitBreaker with additional functionality.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New creates a new circuit breaker with the given configuration.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return readyToTrip(cfg, counts)
		},
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func readyToTrip(cfg Config, counts gobreaker.Counts) bool {
	return cfg.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
}

// Execute runs the given function through the circuit breaker.
// If the circuit is open, it returns ErrOpenState immediately.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
