// Package config loads the settings of an aggregation run.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	pkgconfig "paper-feed/internal/pkg/config"
)

var (
	// ErrNoSources is returned when neither RSS_JOURNALS nor the journals file lists a feed.
	ErrNoSources = errors.New("no feed sources configured")
	// ErrNoQueries is returned when neither RSS_KEYWORDS nor the keywords file lists a query.
	ErrNoQueries = errors.New("no keyword queries configured")
)

// Default channel metadata of the generated feed.
const (
	DefaultFeedTitle       = "My Customized Papers"
	DefaultFeedLink        = "https://github.com/your_username/your_repo"
	DefaultFeedDescription = "Aggregated research papers"
)

// PipelineConfig holds every setting of one aggregation run.
type PipelineConfig struct {
	// OutputFile is both the generated feed and the history read at startup.
	OutputFile string

	// MaxItems caps the number of entries in the output feed.
	MaxItems int

	FetchMaxRetries int
	FetchRetryDelay time.Duration
	// FetchTimeout bounds a single HTTP attempt.
	FetchTimeout time.Duration
	// FetchInterval is the minimum gap between two feed requests. Zero disables pacing.
	FetchInterval  time.Duration
	FetchUserAgent string

	JournalsFile string
	KeywordsFile string

	// AbbreviationsFile optionally points to a YAML file of journal abbreviations.
	AbbreviationsFile string
	// MetricsTextfile optionally receives the run metrics in Prometheus text format.
	MetricsTextfile string

	FeedTitle       string
	FeedLink        string
	FeedDescription string
}

// DefaultConfig returns the configuration used when no environment variable is set.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		OutputFile:      "filtered_feed.xml",
		MaxItems:        1000,
		FetchMaxRetries: 3,
		FetchRetryDelay: 2 * time.Second,
		FetchTimeout:    30 * time.Second,
		FetchInterval:   0,
		FetchUserAgent:  "PaperFeedBot",
		JournalsFile:    "journals.dat",
		KeywordsFile:    "keywords.dat",
		FeedTitle:       DefaultFeedTitle,
		FeedLink:        DefaultFeedLink,
		FeedDescription: DefaultFeedDescription,
	}
}

// Validate checks every field and returns all violations together.
func (c *PipelineConfig) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateNonBlank(c.OutputFile); err != nil {
		errs = append(errs, fmt.Errorf("output file: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.MaxItems, 1, 100000); err != nil {
		errs = append(errs, fmt.Errorf("max items: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.FetchMaxRetries, 1, 10); err != nil {
		errs = append(errs, fmt.Errorf("fetch max retries: %w", err))
	}
	if err := pkgconfig.ValidateDuration(c.FetchRetryDelay, 0, time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("fetch retry delay: %w", err))
	}
	if err := pkgconfig.ValidateDuration(c.FetchTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("fetch timeout: %w", err))
	}
	if err := pkgconfig.ValidateDuration(c.FetchInterval, 0, time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("fetch interval: %w", err))
	}
	if err := pkgconfig.ValidateAbsoluteURL(c.FeedLink); err != nil {
		errs = append(errs, fmt.Errorf("feed link: %w", err))
	}

	return errors.Join(errs...)
}

// LoadConfigFromEnv loads the pipeline configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy: an invalid value is replaced
// by its default, logged as a warning, and counted in metrics. It never returns
// a nil configuration.
//
// Environment variables:
//   - OUTPUT_FILE: feed path (default: "filtered_feed.xml")
//   - MAX_ITEMS: integer 1-100000 (default: 1000)
//   - FETCH_MAX_RETRIES: integer 1-10 (default: 3)
//   - FETCH_RETRY_DELAY: duration 0-1m (default: 2s)
//   - FETCH_TIMEOUT: duration 1s-5m (default: 30s)
//   - FETCH_INTERVAL: duration 0-1m (default: 0s)
//   - FETCH_USER_AGENT (default: "PaperFeedBot")
//   - JOURNALS_FILE, KEYWORDS_FILE (default: "journals.dat", "keywords.dat")
//   - ABBREVIATIONS_FILE, METRICS_TEXTFILE (default: disabled)
//   - FEED_TITLE, FEED_LINK, FEED_DESCRIPTION
func LoadConfigFromEnv(logger *slog.Logger, metrics *pkgconfig.ConfigMetrics) *PipelineConfig {
	cfg := DefaultConfig()
	fallbackApplied := false

	apply := func(field string, result pkgconfig.ConfigLoadResult) interface{} {
		if result.FallbackApplied {
			fallbackApplied = true
			metrics.RecordFallback(field)
			for _, warning := range result.Warnings {
				logger.Warn("Configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
		return result.Value
	}

	cfg.OutputFile = apply("output_file",
		pkgconfig.LoadEnvWithFallback("OUTPUT_FILE", cfg.OutputFile, pkgconfig.ValidateNonBlank)).(string)

	cfg.MaxItems = apply("max_items",
		pkgconfig.LoadEnvInt("MAX_ITEMS", cfg.MaxItems, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1, 100000)
		})).(int)

	cfg.FetchMaxRetries = apply("fetch_max_retries",
		pkgconfig.LoadEnvInt("FETCH_MAX_RETRIES", cfg.FetchMaxRetries, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1, 10)
		})).(int)

	cfg.FetchRetryDelay = apply("fetch_retry_delay",
		pkgconfig.LoadEnvDuration("FETCH_RETRY_DELAY", cfg.FetchRetryDelay, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, 0, time.Minute)
		})).(time.Duration)

	cfg.FetchTimeout = apply("fetch_timeout",
		pkgconfig.LoadEnvDuration("FETCH_TIMEOUT", cfg.FetchTimeout, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, time.Second, 5*time.Minute)
		})).(time.Duration)

	cfg.FetchInterval = apply("fetch_interval",
		pkgconfig.LoadEnvDuration("FETCH_INTERVAL", cfg.FetchInterval, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, 0, time.Minute)
		})).(time.Duration)

	cfg.FeedLink = apply("feed_link",
		pkgconfig.LoadEnvWithFallback("FEED_LINK", cfg.FeedLink, pkgconfig.ValidateAbsoluteURL)).(string)

	cfg.FetchUserAgent = pkgconfig.LoadEnvString("FETCH_USER_AGENT", cfg.FetchUserAgent)
	cfg.JournalsFile = pkgconfig.LoadEnvString("JOURNALS_FILE", cfg.JournalsFile)
	cfg.KeywordsFile = pkgconfig.LoadEnvString("KEYWORDS_FILE", cfg.KeywordsFile)
	cfg.AbbreviationsFile = pkgconfig.LoadEnvString("ABBREVIATIONS_FILE", cfg.AbbreviationsFile)
	cfg.MetricsTextfile = pkgconfig.LoadEnvString("METRICS_TEXTFILE", cfg.MetricsTextfile)
	cfg.FeedTitle = pkgconfig.LoadEnvString("FEED_TITLE", cfg.FeedTitle)
	cfg.FeedDescription = pkgconfig.LoadEnvString("FEED_DESCRIPTION", cfg.FeedDescription)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg
}
