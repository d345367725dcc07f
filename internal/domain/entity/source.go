package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// maxSourceLength defines the maximum allowed length for a source identifier.
const maxSourceLength = 2048

// SourceKind distinguishes remote feeds from local feed documents.
type SourceKind string

const (
	// SourceKindURL is an http or https feed URL.
	SourceKindURL SourceKind = "url"
	// SourceKindFile is a path to a feed document on the local filesystem.
	SourceKindFile SourceKind = "file"
)

// Source is a feed source identifier as supplied by configuration,
// classified by how it has to be read.
type Source struct {
	Raw  string
	Kind SourceKind
}

// String returns the raw identifier.
func (s Source) String() string {
	return s.Raw
}

// ParseSource classifies a configured source identifier.
// Identifiers with an http or https scheme are URLs and must carry a host;
// anything else is treated as a local file path.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, &SourceError{Reason: "source identifier is required"}
	}
	if len(raw) > maxSourceLength {
		return Source{}, &SourceError{
			Source: raw[:64] + "...",
			Reason: fmt.Sprintf("source must not exceed %d characters", maxSourceLength),
		}
	}

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return Source{Raw: raw, Kind: SourceKindFile}, nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return Source{}, &SourceError{Source: raw, Reason: "malformed URL", Err: err}
	}
	if parsedURL.Host == "" {
		return Source{}, &SourceError{Source: raw, Reason: "URL must have a valid host"}
	}

	return Source{Raw: raw, Kind: SourceKindURL}, nil
}

// Host returns the host part of a URL source, or an empty string for files.
func (s Source) Host() string {
	if s.Kind != SourceKindURL {
		return ""
	}
	u, err := url.Parse(s.Raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
