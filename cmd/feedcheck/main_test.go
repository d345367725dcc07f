package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper-feed/internal/config"
	"paper-feed/internal/infra/scraper"
)

const okFeed = `<rss version="2.0"><channel><title>NeuroImage</title>
<item><title>A</title><link>https://example.com/a</link></item></channel></rss>`

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(okFeed))
	}))
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	report := check(context.Background(), []string{server.URL + "/ok", server.URL + "/broken", "http://"}, &cfg, logger)

	require.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Healthy)
	assert.Equal(t, scraper.StatusOK, report.Results[0].Status)
	assert.Equal(t, scraper.StatusHTTPError, report.Results[1].Status)
	assert.Equal(t, scraper.StatusRequestError, report.Results[2].Status)
}

func TestOutputText_ListsBrokenLast(t *testing.T) {
	report := Report{
		Generated: "2024-01-01T00:00:00Z",
		Total:     2,
		Healthy:   1,
		Results: []scraper.Diagnostic{
			{Source: "https://broken.example/rss", Status: scraper.StatusHTTPError, ErrorMessage: "HTTP 410 Gone"},
			{Source: "https://ok.example/rss", Status: scraper.StatusOK, Title: "NeuroImage", ItemCount: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, outputText(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "1/2 sources healthy")
	assert.Less(t, strings.Index(out, "ok.example"), strings.Index(out, "broken.example"))
	assert.Contains(t, out, "error: HTTP 410 Gone")
}

func TestOutputJSON(t *testing.T) {
	report := Report{Total: 1, Results: []scraper.Diagnostic{{Source: "feed.xml", Status: scraper.StatusReadError}}}

	var buf bytes.Buffer
	require.NoError(t, outputJSON(&buf, report))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.Results, decoded.Results)
}
