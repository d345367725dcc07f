package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"paper-feed/internal/domain/entity"
	"paper-feed/internal/utils/text"
)

// Diagnostic status values.
const (
	StatusOK           = "OK"
	StatusRedirect     = "REDIRECT"
	StatusEmpty        = "EMPTY"
	StatusHTTPError    = "HTTP_ERROR"
	StatusTimeout      = "TIMEOUT"
	StatusParseError   = "PARSE_ERROR"
	StatusReadError    = "READ_ERROR"
	StatusRequestError = "REQUEST_ERROR"
)

// previewLimit caps the body excerpt attached to parse errors, in runes.
const previewLimit = 200

// Diagnostic is the health report of a single source.
type Diagnostic struct {
	Source       string `json:"source"`
	Title        string `json:"title,omitempty"`
	Status       string `json:"status"`
	HTTPCode     int    `json:"http_code,omitempty"`
	FeedType     string `json:"feed_type,omitempty"`
	ItemCount    int    `json:"item_count"`
	Latest       string `json:"latest,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

// Healthy reports whether the source produced a usable feed.
func (d Diagnostic) Healthy() bool {
	return d.Status == StatusOK || d.Status == StatusRedirect
}

// Diagnose performs a single unretried read of src and classifies the outcome.
func Diagnose(ctx context.Context, client *http.Client, userAgent string, src entity.Source) Diagnostic {
	diag := Diagnostic{Source: src.Raw}
	start := time.Now()

	var body []byte
	var err error
	if src.Kind == entity.SourceKindFile {
		// #nosec G304 -- path comes from the operator's source list
		body, err = os.ReadFile(src.Raw)
		diag.ResponseTime = time.Since(start).Milliseconds()
		if err != nil {
			diag.Status = StatusReadError
			diag.ErrorMessage = err.Error()
			return diag
		}
	} else {
		body, err = diagnoseRequest(ctx, client, userAgent, src.Raw, &diag)
		diag.ResponseTime = time.Since(start).Milliseconds()
		if err != nil {
			return diag
		}
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		diag.Status = StatusParseError
		diag.ErrorMessage = fmt.Sprintf("%v; content preview: %s", err, preview(body))
		return diag
	}

	diag.Title = feed.Title
	diag.FeedType = strings.ToUpper(feed.FeedType)
	diag.ItemCount = len(feed.Items)
	if latest := latestOf(feed); !latest.IsZero() {
		diag.Latest = latest.Format(time.RFC3339)
	}

	switch {
	case diag.ItemCount == 0:
		diag.Status = StatusEmpty
		diag.ErrorMessage = "feed has no items"
	case diag.RedirectURL != "":
		diag.Status = StatusRedirect
	default:
		diag.Status = StatusOK
	}
	return diag
}

// diagnoseRequest fetches feedURL and records transport-level failures on diag.
func diagnoseRequest(ctx context.Context, client *http.Client, userAgent, feedURL string, diag *Diagnostic) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		diag.Status = StatusRequestError
		diag.ErrorMessage = err.Error()
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		diag.Status = StatusHTTPError
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			diag.Status = StatusTimeout
		}
		diag.ErrorMessage = err.Error()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	diag.HTTPCode = resp.StatusCode
	if final := resp.Request.URL.String(); final != feedURL {
		diag.RedirectURL = final
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diag.Status = StatusHTTPError
		diag.ErrorMessage = fmt.Sprintf("HTTP %s", resp.Status)
		return nil, errors.New(diag.ErrorMessage)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		diag.Status = StatusReadError
		diag.ErrorMessage = err.Error()
		return nil, err
	}
	return body, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func latestOf(feed *gofeed.Feed) time.Time {
	var latest time.Time
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		if t := publishedAt(it, time.Time{}); t.After(latest) {
			latest = t
		}
	}
	return latest
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if text.CountRunes(s) > previewLimit {
		return text.TruncateRunes(s, previewLimit) + "..."
	}
	return s
}
