package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper-feed/internal/infra/scraper"
)

func TestDiagnose(t *testing.T) {
	ok := serveFeed(t, testRSS)
	empty := serveFeed(t, `<rss version="2.0"><channel><title>Empty</title></channel></rss>`)
	broken := serveFeed(t, "<html>maintenance</html>")

	notFound := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(notFound.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testRSS))
	})
	moved := httptest.NewServer(mux)
	t.Cleanup(moved.Close)

	tests := []struct {
		name       string
		source     string
		wantStatus string
		wantItems  int
		healthy    bool
	}{
		{name: "ok", source: ok.URL, wantStatus: scraper.StatusOK, wantItems: 2, healthy: true},
		{name: "redirect", source: moved.URL + "/old", wantStatus: scraper.StatusRedirect, wantItems: 2, healthy: true},
		{name: "empty", source: empty.URL, wantStatus: scraper.StatusEmpty},
		{name: "not a feed", source: broken.URL, wantStatus: scraper.StatusParseError},
		{name: "http error", source: notFound.URL, wantStatus: scraper.StatusHTTPError},
		{name: "missing file", source: filepath.Join(t.TempDir(), "missing.xml"), wantStatus: scraper.StatusReadError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := scraper.Diagnose(context.Background(), http.DefaultClient, "PaperFeedBot", mustSource(t, tt.source))

			assert.Equal(t, tt.source, diag.Source)
			assert.Equal(t, tt.wantStatus, diag.Status)
			assert.Equal(t, tt.wantItems, diag.ItemCount)
			assert.Equal(t, tt.healthy, diag.Healthy())
			if !tt.healthy {
				assert.NotEmpty(t, diag.ErrorMessage)
			}
		})
	}
}

func TestDiagnose_Details(t *testing.T) {
	server := serveFeed(t, testRSS)

	diag := scraper.Diagnose(context.Background(), http.DefaultClient, "PaperFeedBot", mustSource(t, server.URL))

	assert.Equal(t, "Medical Image Analysis", diag.Title)
	assert.Equal(t, "RSS", diag.FeedType)
	assert.Equal(t, http.StatusOK, diag.HTTPCode)
	assert.Equal(t, "2024-01-01T00:00:00Z", diag.Latest)
	assert.Empty(t, diag.RedirectURL)
}

func TestDiagnose_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte(testRSS), 0o600))

	diag := scraper.Diagnose(context.Background(), http.DefaultClient, "PaperFeedBot", mustSource(t, path))

	assert.Equal(t, scraper.StatusOK, diag.Status)
	assert.Equal(t, 2, diag.ItemCount)
	assert.Zero(t, diag.HTTPCode)
}

func TestDiagnose_ParseErrorPreviewIsBounded(t *testing.T) {
	body := make([]byte, 1000)
	for i := range body {
		body[i] = 'x'
	}
	server := serveFeed(t, string(body))

	diag := scraper.Diagnose(context.Background(), http.DefaultClient, "PaperFeedBot", mustSource(t, server.URL))

	assert.Equal(t, scraper.StatusParseError, diag.Status)
	assert.Less(t, len(diag.ErrorMessage), 400)
	assert.Contains(t, diag.ErrorMessage, "...")
}

func TestDiagnose_ParseErrorPreviewKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("論文", 150)
	server := serveFeed(t, body)

	diag := scraper.Diagnose(context.Background(), http.DefaultClient, "PaperFeedBot", mustSource(t, server.URL))

	require.Equal(t, scraper.StatusParseError, diag.Status)
	assert.True(t, utf8.ValidString(diag.ErrorMessage))
	assert.Contains(t, diag.ErrorMessage, strings.Repeat("論文", 100)+"...")
	assert.NotContains(t, diag.ErrorMessage, strings.Repeat("論文", 101))
}
