package merge

import (
	"strings"

	"paper-feed/internal/domain/entity"
)

// andSeparator joins the terms of one query. It is matched case-sensitively,
// so "and" inside a term is kept as text.
const andSeparator = "AND"

// Query is one keyword query: every term must occur in an entry's search text.
type Query struct {
	Raw   string
	Terms []string
}

// ParseQuery splits raw on the literal AND and normalizes each term to
// trimmed lower case. Empty terms are dropped, so a query such as "AND" or
// " AND " has no terms and matches nothing rather than every entry.
func ParseQuery(raw string) Query {
	q := Query{Raw: raw}
	for _, part := range strings.Split(raw, andSeparator) {
		if term := strings.ToLower(strings.TrimSpace(part)); term != "" {
			q.Terms = append(q.Terms, term)
		}
	}
	return q
}

// matches reports whether every term is a substring of searchText.
// A query without terms never matches.
func (q Query) matches(searchText string) bool {
	if len(q.Terms) == 0 {
		return false
	}
	for _, term := range q.Terms {
		if !strings.Contains(searchText, term) {
			return false
		}
	}
	return true
}

// Matcher holds the parsed queries of a run. Queries are OR-ed.
type Matcher struct {
	queries []Query
}

// NewMatcher parses every raw query once.
func NewMatcher(rawQueries []string) *Matcher {
	queries := make([]Query, 0, len(rawQueries))
	for _, raw := range rawQueries {
		queries = append(queries, ParseQuery(raw))
	}
	return &Matcher{queries: queries}
}

// Len returns the number of queries.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.queries)
}

// Matches reports whether any query matches the lower-cased title and summary
// of e. Plain substring search, no tokenization or stemming. An empty matcher
// matches nothing.
func (m *Matcher) Matches(e entity.Entry) bool {
	if m == nil {
		return false
	}
	searchText := strings.ToLower(e.Title + " " + e.Summary)
	for _, q := range m.queries {
		if q.matches(searchText) {
			return true
		}
	}
	return false
}
