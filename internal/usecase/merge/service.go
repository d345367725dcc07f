package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"paper-feed/internal/domain/entity"
	"paper-feed/internal/observability/logging"
	"paper-feed/internal/observability/metrics"
	"paper-feed/internal/observability/tracing"
	"paper-feed/internal/utils/text"
)

// matchLogTitleLength is the number of title runes shown in match logs.
const matchLogTitleLength = 50

// Fetcher retrieves the entries of one feed source.
type Fetcher interface {
	Fetch(ctx context.Context, src entity.Source) ([]entity.Entry, error)
}

// HistoryReader loads the entries of the previous output.
type HistoryReader interface {
	LoadExisting(ctx context.Context, path string) ([]entity.Entry, error)
}

// FeedWriter writes the merged entries to the output.
type FeedWriter interface {
	Write(ctx context.Context, path string, entries []entity.Entry) error
}

// RunStats extends Stats with per-run source accounting.
type RunStats struct {
	Stats
	Sources       int
	FailedSources int
	Duration      time.Duration
}

// Service runs one aggregation: load history, fetch every source in order,
// merge, and write the result.
type Service struct {
	Fetcher    Fetcher
	History    HistoryReader
	Writer     FeedWriter
	Sources    []string
	Matcher    *Matcher
	OutputPath string
	MaxItems   int
}

// NewService creates a new merge Service with the provided dependencies.
func NewService(
	fetcher Fetcher,
	history HistoryReader,
	writer FeedWriter,
	sources []string,
	matcher *Matcher,
	outputPath string,
	maxItems int,
) *Service {
	return &Service{
		Fetcher:    fetcher,
		History:    history,
		Writer:     writer,
		Sources:    sources,
		Matcher:    matcher,
		OutputPath: outputPath,
		MaxItems:   maxItems,
	}
}

// Run performs one aggregation run.
// Fetch and history failures are logged and absorbed; only a failed write is
// returned as an error, together with the stats gathered so far.
func (s *Service) Run(ctx context.Context) (*RunStats, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()
	stats := &RunStats{Sources: len(s.Sources)}

	ctx, span := tracing.StartSpan(ctx, "paperfeed.run", trace.WithAttributes(
		attribute.Int("sources", len(s.Sources)),
		attribute.Int("queries", s.Matcher.Len()),
	))
	var runErr error
	defer func() { tracing.EndSpan(span, runErr) }()

	metrics.UpdateConfigured(len(s.Sources), s.Matcher.Len())

	history := s.loadHistory(ctx, logger)

	fresh := make([][]entity.Entry, 0, len(s.Sources))
	for _, raw := range s.Sources {
		entries, err := s.fetchSource(ctx, logger, raw)
		if err != nil {
			stats.FailedSources++
			continue
		}
		fresh = append(fresh, entries)
	}

	result, mergeStats := Merge(history, fresh, s.Matcher, s.MaxItems)
	stats.Stats = mergeStats
	logMatches(logger, result)
	recordStats(mergeStats)

	if err := s.write(ctx, result); err != nil {
		runErr = err
		stats.Duration = time.Since(start)
		metrics.RecordRun(stats.Duration, false, time.Now())
		return stats, err
	}

	stats.Duration = time.Since(start)
	metrics.RecordRun(stats.Duration, true, time.Now())

	logger.Info("feed written",
		slog.String("path", s.OutputPath),
		slog.Int("items", stats.Written),
		slog.Int("historical", stats.Historical),
		slog.Int("fetched", stats.Fetched),
		slog.Int("matched", stats.Matched),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("rejected", stats.Rejected),
		slog.Int("truncated", stats.Truncated),
		slog.Int("sources", stats.Sources),
		slog.Int("failed_sources", stats.FailedSources),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

func (s *Service) loadHistory(ctx context.Context, logger *slog.Logger) []entity.Entry {
	ctx, span := tracing.StartSpan(ctx, "paperfeed.load_history")
	history, err := s.History.LoadExisting(ctx, s.OutputPath)
	tracing.EndSpan(span, err)

	if err != nil {
		logger.Warn("existing feed unreadable, ignoring old items",
			slog.String("path", s.OutputPath),
			slog.Any("error", err))
		return nil
	}
	if len(history) > 0 {
		logger.Info("existing items loaded",
			slog.String("path", s.OutputPath),
			slog.Int("items", len(history)))
	}
	return history
}

func (s *Service) fetchSource(ctx context.Context, logger *slog.Logger, raw string) ([]entity.Entry, error) {
	src, err := entity.ParseSource(raw)
	if err != nil {
		logger.Warn("invalid feed source, skipping",
			slog.String("source", raw),
			slog.Any("error", err))
		metrics.RecordSourceFetchError("", "invalid_source")
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "paperfeed.fetch_source", trace.WithAttributes(
		attribute.String("source", src.Raw),
		attribute.String("kind", string(src.Kind)),
	))
	sourceStart := time.Now()
	entries, err := s.Fetcher.Fetch(ctx, src)
	sourceDuration := time.Since(sourceStart)
	tracing.EndSpan(span, err)
	metrics.RecordSourceFetch(string(src.Kind), sourceDuration)

	if err != nil {
		errorType := "fetch_failed"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			errorType = "cancelled"
		}
		logger.Warn("failed to fetch feed",
			slog.String("source", src.Raw),
			slog.Any("error", err))
		metrics.RecordSourceFetchError(src.Host(), errorType)
		return nil, err
	}

	logger.Info("source fetched",
		slog.String("source", src.Raw),
		slog.Int("entries", len(entries)),
		slog.Duration("duration", sourceDuration))
	return entries, nil
}

func (s *Service) write(ctx context.Context, result []entity.Entry) error {
	ctx, span := tracing.StartSpan(ctx, "paperfeed.write", trace.WithAttributes(
		attribute.Int("items", len(result)),
	))
	err := s.Writer.Write(ctx, s.OutputPath, result)
	tracing.EndSpan(span, err)
	if err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	return nil
}

func logMatches(logger *slog.Logger, result []entity.Entry) {
	for _, e := range result {
		if e.Historical {
			continue
		}
		logger.Info("match found",
			slog.String("title", text.TruncateRunes(e.Title, matchLogTitleLength)),
			slog.String("source_label", e.SourceLabel))
	}
}

func recordStats(st Stats) {
	metrics.RecordEntries(metrics.StageHistorical, st.Historical)
	metrics.RecordEntries(metrics.StageFetched, st.Fetched)
	metrics.RecordEntries(metrics.StageDuplicate, st.Duplicates)
	metrics.RecordEntries(metrics.StageMatched, st.Matched)
	metrics.RecordEntries(metrics.StageRejected, st.Rejected)
	metrics.RecordEntries(metrics.StageTruncated, st.Truncated)
	metrics.RecordEntries(metrics.StageWritten, st.Written)
}
