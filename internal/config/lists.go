package config

import (
	"fmt"
	"log/slog"

	pkgconfig "paper-feed/internal/pkg/config"
)

// Environment variables that override the journals and keywords files.
const (
	JournalsEnv = "RSS_JOURNALS"
	KeywordsEnv = "RSS_KEYWORDS"
)

// Lists holds the ordered feed sources and keyword queries of a run.
type Lists struct {
	Sources []string
	Queries []string
}

// LoadLists reads the source and query lists. Both must be non-empty:
// an empty list returns ErrNoSources or ErrNoQueries before any fetch happens.
func LoadLists(cfg *PipelineConfig, logger *slog.Logger) (*Lists, error) {
	sources, err := LoadSources(cfg, logger)
	if err != nil {
		return nil, err
	}

	queries, from, err := pkgconfig.LoadList(cfg.KeywordsFile, KeywordsEnv)
	if err != nil {
		return nil, fmt.Errorf("load queries: %w", err)
	}
	logger.Info("queries loaded",
		slog.String("from", string(from)),
		slog.Int("count", len(queries)))
	if len(queries) == 0 {
		return nil, fmt.Errorf("set %s or create %s: %w", KeywordsEnv, cfg.KeywordsFile, ErrNoQueries)
	}

	return &Lists{Sources: sources, Queries: queries}, nil
}

// LoadSources reads the source list alone. An empty list returns ErrNoSources.
func LoadSources(cfg *PipelineConfig, logger *slog.Logger) ([]string, error) {
	sources, from, err := pkgconfig.LoadList(cfg.JournalsFile, JournalsEnv)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	logger.Info("sources loaded",
		slog.String("from", string(from)),
		slog.Int("count", len(sources)))
	if len(sources) == 0 {
		return nil, fmt.Errorf("set %s or create %s: %w", JournalsEnv, cfg.JournalsFile, ErrNoSources)
	}
	return sources, nil
}
