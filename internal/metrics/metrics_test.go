package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"blitz/pkg/stats"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFacts() []stats.Fact {
	return []stats.Fact{
		stats.Record(200, 10*time.Millisecond, 100),
		stats.Record(200, 20*time.Millisecond, 100),
		stats.Record(500, 30*time.Millisecond, 50),
	}
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(sampleFacts(), 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("500")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.transferred))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.workers))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(sampleFacts(), 1)
	path := filepath.Join(t.TempDir(), "blitz.prom")

	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `blitz_requests_total{code="200"} 2`)
	assert.Contains(t, string(data), "blitz_request_duration_seconds_count 3")
	assert.Contains(t, string(data), "blitz_workers 1")
}
