// Package feedfile reads and writes the merged RSS document.
//
// The output file doubles as the run-to-run state: entries already present in
// it are loaded as history at the start of a run and written back with the
// fresh matches at the end.
package feedfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"paper-feed/internal/domain/entity"
)

// ErrCorruptFeed is returned when the existing output cannot be parsed as a feed.
var ErrCorruptFeed = errors.New("existing feed is corrupt")

// Reader loads previously written entries back from the output file.
type Reader struct {
	now func() time.Time
}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{now: time.Now}
}

// LoadExisting parses the feed at path and returns its items as historical entries.
// A missing file yields no entries and no error. A file that cannot be parsed
// yields an error wrapping ErrCorruptFeed; callers treat it as an empty history.
func (r *Reader) LoadExisting(ctx context.Context, path string) ([]entity.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 -- path is the configured output file
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open existing feed: %w", err)
	}
	defer func() { _ = file.Close() }()

	feed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptFeed, path, err)
	}

	now := r.now()
	entries := make([]entity.Entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		entries = append(entries, entity.Entry{
			Title:       it.Title,
			Link:        it.Link,
			PublishedAt: historicalTime(it, now),
			Summary:     historicalSummary(it),
			SourceLabel: authorOf(it),
			ID:          it.GUID,
			Historical:  true,
		})
	}
	return entries, nil
}

func historicalTime(it *gofeed.Item, now time.Time) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return now
}

func historicalSummary(it *gofeed.Item) string {
	if it.Description != "" {
		return it.Description
	}
	return it.Content
}

// authorOf recovers the source label that Writer stored in the author element.
func authorOf(it *gofeed.Item) string {
	authors := it.Authors
	if len(authors) == 0 && it.Author != nil {
		authors = []*gofeed.Person{it.Author}
	}
	for _, p := range authors {
		if p == nil {
			continue
		}
		if p.Name != "" {
			return p.Name
		}
		if p.Email != "" {
			return p.Email
		}
	}
	return ""
}
