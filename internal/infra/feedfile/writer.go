package feedfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"

	"paper-feed/internal/domain/entity"
	"paper-feed/internal/domain/journal"
	"paper-feed/internal/utils/text"
)

// Meta is the channel metadata of the generated feed.
type Meta struct {
	Title       string
	Link        string
	Description string
	// Language defaults to DefaultLanguage when empty.
	Language string
}

// DefaultLanguage is the channel language used when Meta.Language is empty.
const DefaultLanguage = "en-US"

// Writer serializes entries to an RSS 2.0 document.
type Writer struct {
	meta   Meta
	abbrev journal.Table
	now    func() time.Time
}

// NewWriter creates a Writer that prefixes fresh titles using abbrev.
func NewWriter(meta Meta, abbrev journal.Table) *Writer {
	return &Writer{meta: meta, abbrev: abbrev, now: time.Now}
}

// Render builds the RSS document for entries, in the given order.
//
// Fresh entries get a "[ABBR] " title prefix derived from their source label;
// historical titles are emitted verbatim so a prefix is never applied twice.
// Title, description, and author are stripped of XML-illegal control characters.
func (w *Writer) Render(entries []entity.Entry) (string, error) {
	language := w.meta.Language
	if language == "" {
		language = DefaultLanguage
	}

	rss := &feeds.RssFeed{
		Title:         text.StripIllegalXMLChars(w.meta.Title),
		Link:          w.meta.Link,
		Description:   text.StripIllegalXMLChars(w.meta.Description),
		Language:      language,
		LastBuildDate: w.now().Format(time.RFC1123Z),
		Items:         make([]*feeds.RssItem, 0, len(entries)),
	}

	for _, e := range entries {
		title := e.Title
		if !e.Historical {
			title = fmt.Sprintf("[%s] %s", w.abbrev.Abbreviate(e.SourceLabel), e.Title)
		}

		item := &feeds.RssItem{
			Title:       text.StripIllegalXMLChars(title),
			Link:        e.Link,
			Description: text.StripIllegalXMLChars(e.Summary),
			Author:      text.StripIllegalXMLChars(e.SourceLabel),
			PubDate:     e.PublishedAt.Format(time.RFC1123Z),
		}
		if id := e.Identity(); id != "" {
			item.Guid = &feeds.RssGuid{Id: id, IsPermaLink: "false"}
		}
		rss.Items = append(rss.Items, item)
	}

	return feeds.ToXML(rss)
}

// Write renders entries and atomically replaces the file at path.
// The document is written to a temporary file in the same directory and
// renamed over path, so readers never observe a partially written feed.
func (w *Writer) Write(ctx context.Context, path string, entries []entity.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := w.Render(entries)
	if err != nil {
		return fmt.Errorf("render feed: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	// #nosec G302 -- the feed is meant to be world readable
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
