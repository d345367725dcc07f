// Package retry provides a bounded, fixed-delay retry loop for feed fetching.
// Waits between attempts observe the context, so a cancelled run stops retrying at once.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Config holds the configuration for retry logic.
type Config struct {
	// Name identifies the retried operation in log records
	Name string

	// MaxAttempts is the maximum number of attempts, including the first one
	MaxAttempts int

	// Delay is the pause between two attempts
	Delay time.Duration

	// RetryIf decides whether an error is worth another attempt.
	// AnyError is used when nil.
	RetryIf func(error) bool
}

// FixedDelayConfig returns a configuration that waits delay between attempts
// and retries any error except context cancellation.
func FixedDelayConfig(name string, maxAttempts int, delay time.Duration) Config {
	return Config{
		Name:        name,
		MaxAttempts: maxAttempts,
		Delay:       delay,
		RetryIf:     AnyError,
	}
}

// Do executes fn until it succeeds, RetryIf rejects its error, or the attempts run out.
// It returns nil on success, the rejected error as is, and otherwise the last error wrapped.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = AnyError
	}
	maxAttempts := max(cfg.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.String("operation", cfg.Name),
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !retryIf(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.String("operation", cfg.Name),
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == maxAttempts {
			slog.Warn("operation failed, no attempts left",
				slog.String("operation", cfg.Name),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", maxAttempts),
				slog.Any("error", lastErr))
			break
		}

		slog.Warn("operation failed, retrying",
			slog.String("operation", cfg.Name),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxAttempts),
			slog.Duration("delay", cfg.Delay),
			slog.Any("error", lastErr))

		if err := wait(ctx, cfg.Delay); err != nil {
			return fmt.Errorf("retry aborted: %w", err)
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", maxAttempts, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AnyError retries every failure except context cancellation.
func AnyError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
