// Package merge combines the previous output with freshly fetched entries.
//
// Merge is pure: it decides which entries survive a run without touching the
// network or the filesystem. Service wires it to a fetcher, a history reader,
// and a feed writer.
package merge

import (
	"slices"

	"paper-feed/internal/domain/entity"
)

// Stats counts what happened to entries during a merge.
type Stats struct {
	// Historical is the number of distinct entries loaded from the previous output.
	Historical int
	// Fetched is the number of entries returned by all sources.
	Fetched int
	// Duplicates counts entries dropped because their identity was already seen,
	// including repeated identities inside the previous output.
	Duplicates int
	// Matched is the number of fresh entries accepted by a query.
	Matched int
	// Rejected is the number of fresh entries no query accepted.
	Rejected int
	// Truncated is the number of entries dropped by the item cap.
	Truncated int
	// Written is the number of entries in the result.
	Written int
}

// Merge returns the entries of the next output.
//
// Existing entries seed the result and the set of seen identities; a repeated
// identity among them keeps its first occurrence. Fresh entries are then
// visited per source, in feed order: an already seen identity is skipped,
// otherwise the entry is kept and its identity recorded when matcher accepts
// it. Historical entries are never re-matched. The result is sorted by
// publication time, newest first, with ties keeping their merge order, and
// cut to maxItems. A non-positive maxItems yields an empty result.
func Merge(existing []entity.Entry, fresh [][]entity.Entry, matcher *Matcher, maxItems int) ([]entity.Entry, Stats) {
	var stats Stats
	seen := make(map[string]struct{}, len(existing))
	result := make([]entity.Entry, 0, len(existing))

	for _, e := range existing {
		id := e.Identity()
		if _, dup := seen[id]; dup {
			stats.Duplicates++
			continue
		}
		seen[id] = struct{}{}
		e.Historical = true
		result = append(result, e)
	}
	stats.Historical = len(result)

	for _, batch := range fresh {
		for _, e := range batch {
			stats.Fetched++
			id := e.Identity()
			if _, dup := seen[id]; dup {
				stats.Duplicates++
				continue
			}
			if !matcher.Matches(e) {
				stats.Rejected++
				continue
			}
			seen[id] = struct{}{}
			e.Historical = false
			result = append(result, e)
			stats.Matched++
		}
	}

	slices.SortStableFunc(result, func(a, b entity.Entry) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	if maxItems < 0 {
		maxItems = 0
	}
	if len(result) > maxItems {
		stats.Truncated = len(result) - maxItems
		result = result[:maxItems]
	}
	stats.Written = len(result)

	return result, stats
}
