// Command paperfeed fetches journal and arXiv feeds, keeps the entries that
// match the configured keyword queries, and merges them into a single RSS file.
//
// It performs one run and exits: 0 on success, 1 on a configuration error or
// when the output cannot be written. Failing sources only produce warnings.
package main

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paper-feed/internal/config"
	"paper-feed/internal/domain/journal"
	"paper-feed/internal/infra/feedfile"
	"paper-feed/internal/infra/scraper"
	"paper-feed/internal/observability/logging"
	"paper-feed/internal/observability/metrics"
	"paper-feed/internal/observability/tracing"
	pkgconfig "paper-feed/internal/pkg/config"
	"paper-feed/internal/usecase/merge"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	// Load pipeline configuration (fail-open strategy)
	cfgMetrics := pkgconfig.NewConfigMetrics("paperfeed", metrics.Registry)
	cfg := config.LoadConfigFromEnv(logger, cfgMetrics)
	logger.Info("configuration loaded",
		slog.String("output_file", cfg.OutputFile),
		slog.Int("max_items", cfg.MaxItems),
		slog.Int("fetch_max_retries", cfg.FetchMaxRetries),
		slog.Duration("fetch_retry_delay", cfg.FetchRetryDelay),
		slog.Duration("fetch_timeout", cfg.FetchTimeout),
		slog.Duration("fetch_interval", cfg.FetchInterval))

	lists, err := config.LoadLists(cfg, logger)
	if err != nil {
		logger.Error("configuration files are empty or missing", slog.Any("error", err))
		return 1
	}

	table, err := loadAbbreviations(cfg, logger)
	if err != nil {
		logger.Error("failed to load abbreviations", slog.Any("error", err))
		return 1
	}

	feedFetcher := scraper.NewRSSFetcher(createHTTPClient(cfg.FetchTimeout), scraper.FetcherConfig{
		UserAgent:  cfg.FetchUserAgent,
		MaxRetries: cfg.FetchMaxRetries,
		RetryDelay: cfg.FetchRetryDelay,
		Interval:   cfg.FetchInterval,
	})
	writer := feedfile.NewWriter(feedfile.Meta{
		Title:       cfg.FeedTitle,
		Link:        cfg.FeedLink,
		Description: cfg.FeedDescription,
	}, table)

	svc := merge.NewService(
		feedFetcher,
		feedfile.NewReader(),
		writer,
		lists.Sources,
		merge.NewMatcher(lists.Queries),
		cfg.OutputFile,
		cfg.MaxItems,
	)

	_, runErr := svc.Run(ctx)

	if hosts := feedFetcher.OpenHosts(); len(hosts) > 0 {
		logger.Warn("feed hosts skipped after repeated failures", slog.Any("hosts", hosts))
	}
	writeMetrics(cfg.MetricsTextfile, logger)

	if runErr != nil {
		logger.Error("run failed", slog.Any("error", runErr))
		return 1
	}
	return 0
}

// initLogger initializes the structured logger from LOG_FORMAT and LOG_LEVEL
// and tags it with a fresh run ID.
func initLogger() *slog.Logger {
	logger := logging.WithRunID(logging.NewFromEnv(), logging.NewRunID())
	slog.SetDefault(logger)
	return logger
}

// loadAbbreviations returns the built-in table, merged with the YAML overrides
// when ABBREVIATIONS_FILE is set.
func loadAbbreviations(cfg *config.PipelineConfig, logger *slog.Logger) (journal.Table, error) {
	if cfg.AbbreviationsFile == "" {
		return journal.Default(), nil
	}
	overrides, err := config.LoadAbbreviations(cfg.AbbreviationsFile)
	if err != nil {
		return journal.Table{}, err
	}
	table := journal.WithOverrides(overrides)
	logger.Info("abbreviation overrides loaded",
		slog.String("path", cfg.AbbreviationsFile),
		slog.Int("overrides", len(overrides)),
		slog.Int("entries", table.Len()))
	return table, nil
}

// createHTTPClient creates the feed HTTP client. The timeout bounds each attempt.
func createHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: tracing.NewTransport(&http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		}),
	}
}

// writeMetrics dumps the run metrics for the node_exporter textfile collector.
func writeMetrics(path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn("failed to write metrics textfile",
			slog.String("path", path),
			slog.Any("error", err))
	}
}
