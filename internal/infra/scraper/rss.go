// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"paper-feed/internal/domain/entity"
	"paper-feed/internal/resilience/circuitbreaker"
	"paper-feed/internal/resilience/retry"
)

// ErrFeedFetchFailed wraps every error returned by RSSFetcher.Fetch.
var ErrFeedFetchFailed = errors.New("feed fetch failed")

// UnknownSourceLabel labels entries of a feed that has no title.
const UnknownSourceLabel = "Unknown Journal"

// FetcherConfig controls retries, identification, and pacing of feed requests.
type FetcherConfig struct {
	UserAgent  string
	MaxRetries int
	RetryDelay time.Duration
	// Interval is the minimum gap between two HTTP requests. Zero disables pacing.
	Interval time.Duration
}

// DefaultFetcherConfig returns three attempts two seconds apart with no pacing.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		UserAgent:  "PaperFeedBot",
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// RSSFetcher reads RSS/Atom feeds from URLs or local files and maps their
// items to entries. URL fetches go through a per-host circuit breaker and
// are retried with a fixed delay.
type RSSFetcher struct {
	client      *http.Client
	userAgent   string
	retryConfig retry.Config
	breakers    *circuitbreaker.Group
	limiter     *rate.Limiter
	now         func() time.Time
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// The client's Timeout bounds each individual attempt.
func NewRSSFetcher(client *http.Client, cfg FetcherConfig) *RSSFetcher {
	retryConfig := retry.FixedDelayConfig("feed-fetch", cfg.MaxRetries, cfg.RetryDelay)

	var limiter *rate.Limiter
	if cfg.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Interval), 1)
	}

	return &RSSFetcher{
		client:      client,
		userAgent:   cfg.UserAgent,
		retryConfig: retryConfig,
		breakers:    circuitbreaker.NewGroup(circuitbreaker.FeedHostConfig),
		limiter:     limiter,
		now:         time.Now,
	}
}

// retryUnless retries every failure while ctx is live, except open circuits and missing files.
// A per-attempt client timeout is retried even though it may wrap context.DeadlineExceeded.
func retryUnless(ctx context.Context) func(error) bool {
	return func(err error) bool {
		if err == nil || ctx.Err() != nil {
			return false
		}
		return !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, fs.ErrNotExist)
	}
}

// Fetch retrieves and parses the feed behind src.
// Returns the feed's items as fresh entries labeled with the feed title.
func (f *RSSFetcher) Fetch(ctx context.Context, src entity.Source) ([]entity.Entry, error) {
	var feed *gofeed.Feed

	cfg := f.retryConfig
	cfg.RetryIf = retryUnless(ctx)
	retryErr := retry.Do(ctx, cfg, func() error {
		var err error
		if src.Kind == entity.SourceKindFile {
			feed, err = f.parseFile(src.Raw)
			return err
		}

		host := src.Host()
		cbResult, err := f.breakers.Execute(host, func() (interface{}, error) {
			return f.parseURL(ctx, src.Raw)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("host", host),
					slog.String("url", src.Raw))
			}
			return err
		}
		feed = cbResult.(*gofeed.Feed)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFeedFetchFailed, src.Raw, retryErr)
	}

	return toEntries(feed, f.now()), nil
}

// OpenHosts returns the hosts whose circuit breaker is currently open.
func (f *RSSFetcher) OpenHosts() []string {
	return f.breakers.OpenKeys()
}

func (f *RSSFetcher) parseURL(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	fp := gofeed.NewParser()
	fp.UserAgent = f.userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
		}
		return nil, err
	}
	return feed, nil
}

func (f *RSSFetcher) parseFile(path string) (*gofeed.Feed, error) {
	// #nosec G304 -- path comes from the operator's source list
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return gofeed.NewParser().Parse(file)
}

func toEntries(feed *gofeed.Feed, now time.Time) []entity.Entry {
	label := feed.Title
	if label == "" {
		label = UnknownSourceLabel
	}

	entries := make([]entity.Entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		entries = append(entries, entity.Entry{
			Title:       it.Title,
			Link:        it.Link,
			PublishedAt: publishedAt(it, now),
			Summary:     summaryOf(it),
			SourceLabel: label,
			ID:          it.GUID,
		})
	}
	return entries
}

// publishedAt falls back from the published to the updated time, then to now.
func publishedAt(it *gofeed.Item, now time.Time) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return now
}

// summaryOf prefers the item description and falls back to its content.
func summaryOf(it *gofeed.Item) string {
	if it.Description != "" {
		return it.Description
	}
	return it.Content
}
