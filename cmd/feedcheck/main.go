// Command feedcheck probes every configured source once and reports which
// ones currently yield a usable feed.
// Usage: feedcheck [--output text|json]
//
// It exits 1 when the source list is missing or when any source is unhealthy.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"paper-feed/internal/config"
	"paper-feed/internal/domain/entity"
	"paper-feed/internal/infra/scraper"
	"paper-feed/internal/observability/logging"
	"paper-feed/internal/observability/metrics"
	pkgconfig "paper-feed/internal/pkg/config"
)

// minProbeInterval paces probes even when FETCH_INTERVAL is unset.
const minProbeInterval = 500 * time.Millisecond

// Report is the JSON output of a check.
type Report struct {
	Generated string               `json:"generated"`
	Total     int                  `json:"total"`
	Healthy   int                  `json:"healthy"`
	Results   []scraper.Diagnostic `json:"results"`
}

func main() {
	var outputFormat string
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	logger := logging.NewWriterLogger(os.Stderr, os.Getenv("LOG_FORMAT"), logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfigFromEnv(logger, pkgconfig.NewConfigMetrics("feedcheck", metrics.Registry))
	sources, err := config.LoadSources(cfg, logger)
	if err != nil {
		logger.Error("configuration files are empty or missing", slog.Any("error", err))
		os.Exit(1)
	}

	report := check(ctx, sources, cfg, logger)

	if outputFormat == "json" {
		err = outputJSON(os.Stdout, report)
	} else {
		err = outputText(os.Stdout, report)
	}
	if err != nil {
		logger.Error("failed to write report", slog.Any("error", err))
		os.Exit(1)
	}
	if report.Healthy < report.Total {
		os.Exit(1)
	}
}

func check(ctx context.Context, sources []string, cfg *config.PipelineConfig, logger *slog.Logger) Report {
	client := &http.Client{
		Timeout: cfg.FetchTimeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
	limiter := rate.NewLimiter(rate.Every(max(cfg.FetchInterval, minProbeInterval)), 1)

	report := Report{
		Generated: time.Now().UTC().Format(time.RFC3339),
		Results:   make([]scraper.Diagnostic, 0, len(sources)),
	}
	for i, raw := range sources {
		src, err := entity.ParseSource(raw)
		if err != nil {
			report.Results = append(report.Results, scraper.Diagnostic{
				Source:       raw,
				Status:       scraper.StatusRequestError,
				ErrorMessage: err.Error(),
			})
			continue
		}
		if src.Kind == entity.SourceKindURL {
			if err := limiter.Wait(ctx); err != nil {
				logger.Warn("check interrupted", slog.Any("error", err))
				break
			}
		}

		logger.Info("checking source",
			slog.Int("index", i+1),
			slog.Int("total", len(sources)),
			slog.String("source", raw))
		diag := scraper.Diagnose(ctx, client, cfg.FetchUserAgent, src)
		report.Results = append(report.Results, diag)
	}

	report.Total = len(sources)
	for _, d := range report.Results {
		if d.Healthy() {
			report.Healthy++
		}
	}
	return report
}

// outputText prints the report in human-readable format, broken sources last.
func outputText(w io.Writer, report Report) error {
	if _, err := fmt.Fprintf(w, "Feed Check: %d/%d sources healthy (%s)\n\n", report.Healthy, report.Total, report.Generated); err != nil {
		return err
	}
	for _, healthy := range []bool{true, false} {
		for _, d := range report.Results {
			if d.Healthy() != healthy {
				continue
			}
			if _, err := fmt.Fprintf(w, "[%s] %s\n", d.Status, d.Source); err != nil {
				return err
			}
			if healthy {
				_, err := fmt.Fprintf(w, "   %q %s | items: %d | latest: %s | %dms\n",
					d.Title, d.FeedType, d.ItemCount, d.Latest, d.ResponseTime)
				if err != nil {
					return err
				}
				if d.RedirectURL != "" {
					if _, err := fmt.Fprintf(w, "   redirected to: %s\n", d.RedirectURL); err != nil {
						return err
					}
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "   error: %s\n", d.ErrorMessage); err != nil {
				return err
			}
		}
	}
	return nil
}

// outputJSON prints the report in JSON format.
func outputJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
