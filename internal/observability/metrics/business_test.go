package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEntries(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		count int
		want  float64
	}{
		{name: "matched entries", stage: StageMatched, count: 4, want: 4},
		{name: "zero entries", stage: StageTruncated, count: 0, want: 0},
		{name: "negative entries ignored", stage: StageRejected, count: -2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(EntriesTotal.WithLabelValues(tt.stage))

			RecordEntries(tt.stage, tt.count)

			after := testutil.ToFloat64(EntriesTotal.WithLabelValues(tt.stage))
			assert.Equal(t, tt.want, after-before)
		})
	}
}

func TestRecordSourceFetchError(t *testing.T) {
	before := testutil.ToFloat64(SourceFetchErrors.WithLabelValues("rss.arxiv.org", "fetch_failed"))

	RecordSourceFetchError("rss.arxiv.org", "fetch_failed")
	RecordSourceFetchError("rss.arxiv.org", "fetch_failed")

	after := testutil.ToFloat64(SourceFetchErrors.WithLabelValues("rss.arxiv.org", "fetch_failed"))
	assert.Equal(t, 2.0, after-before)
}

func TestRecordSourceFetch(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSourceFetch("url", 250*time.Millisecond)
		RecordSourceFetch("file", 0)
	})
}

func TestUpdateConfigured(t *testing.T) {
	UpdateConfigured(21, 3)

	assert.Equal(t, 21.0, testutil.ToFloat64(SourcesTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(QueriesTotal))
}

func TestRecordRun(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	RecordRun(3*time.Second, true, now)
	assert.Equal(t, 3.0, testutil.ToFloat64(RunDuration))
	assert.Equal(t, float64(now.Unix()), testutil.ToFloat64(LastSuccessTimestamp))

	RecordRun(5*time.Second, false, now.Add(time.Hour))
	assert.Equal(t, 5.0, testutil.ToFloat64(RunDuration))
	assert.Equal(t, float64(now.Unix()), testutil.ToFloat64(LastSuccessTimestamp), "failed run keeps last success time")
}

func TestWriteTextfile(t *testing.T) {
	RecordEntries(StageWritten, 7)
	path := filepath.Join(t.TempDir(), "paperfeed.prom")

	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.Contains(body, `paperfeed_entries_total{stage="written"}`), "textfile should contain entry counter")
	assert.Contains(t, body, "paperfeed_run_duration_seconds")
}

func TestRegistry_Gather(t *testing.T) {
	RecordEntries(StageFetched, 1)

	count, err := testutil.GatherAndCount(Registry, "paperfeed_entries_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}
