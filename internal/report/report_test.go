package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"blitz/internal/types"
	"blitz/pkg/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary() stats.Summary {
	return stats.Summarize([]stats.Fact{
		stats.Record(200, 1500*time.Microsecond, 600_000),
		stats.Record(200, 2*time.Millisecond, 600_000),
		stats.Record(404, 10*time.Millisecond, 0),
	})
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, summary()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Summary\n"))
	assert.Contains(t, out, "  Average:     4.5 ms\n")
	assert.Contains(t, out, "  Median:      2 ms\n")
	assert.Contains(t, out, "  Longest:     10 ms\n")
	assert.Contains(t, out, "  Shortest:    1.5 ms\n")
	assert.Contains(t, out, "  Requests:    3\n")
	assert.Contains(t, out, "  Transferred: 1.14 MB\n")
	assert.Contains(t, out, "    200: 2\n    404: 1\n")

	percentiles := strings.Index(out, "Latency Percentiles (2% of requests per bar):")
	histogram := strings.Index(out, "Latency Histogram (each bar is 2% of max latency)")
	require.NotEqual(t, -1, percentiles)
	require.NotEqual(t, -1, histogram)
	assert.Less(t, percentiles, histogram)
}

func TestText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, stats.Summarize(nil)))

	assert.Contains(t, buf.String(), "  Requests:    0\n")
	assert.Contains(t, buf.String(), "  Transferred: 0 B\n")
	assert.NotContains(t, buf.String(), "Status codes")
}

func TestJSON(t *testing.T) {
	record := types.NewRunRecord("01ARZ3NDEKTSV4RRFFQ69G5FAV", "http://x/", 1, 3, time.Now(), time.Second, summary())

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, record))

	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(3), decoded["count"])
}

func TestRuns(t *testing.T) {
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	record := types.NewRunRecord("01ARZ3NDEKTSV4RRFFQ69G5FAV", "http://x/", 4, 3, started, time.Second, summary())

	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, []*types.RunRecord{record}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Contains(t, lines[1], "2024-01-02T03:04:05Z")
	assert.Contains(t, lines[1], "http://x/")
}
