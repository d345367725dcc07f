// Package entity defines the core domain entities of the feed merger.
// It contains the Entry type shared by every stage of the pipeline,
// the feed Source descriptor, and domain-specific errors.
package entity

import "time"

// Entry represents one normalized feed item (a paper or article announcement).
//
// Entries are built once per run, either from the previously written output
// (Historical == true) or from a freshly fetched source feed, and are never
// mutated afterwards.
type Entry struct {
	Title       string
	Link        string
	PublishedAt time.Time
	Summary     string
	// SourceLabel is the display name of the originating feed. For historical
	// entries it is recovered from the serialized author field.
	SourceLabel string
	// ID is the source-provided unique id. It may be empty.
	ID         string
	Historical bool
}

// Identity returns the deduplication key of the entry: the source id when
// present, otherwise the link.
func (e Entry) Identity() string {
	return IdentityOf(e.ID, e.Link)
}

// IdentityOf builds an identity from a raw id and link using the same
// fallback rule as Entry.Identity.
func IdentityOf(id, link string) string {
	if id != "" {
		return id
	}
	return link
}
