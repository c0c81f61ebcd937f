package metrics

import (
	"strconv"

	"blitz/pkg/stats"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "blitz"

// Metrics holds the Prometheus view of a finished run. It is filled from the joined
// facts after the workers are done, never during measurement.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     prometheus.Histogram
	transferred prometheus.Counter
	workers     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "Measured requests by response status code.",
		}, []string{"code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of measured requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		transferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "response_bytes_total",
			Help:      "Response payload bytes received.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "workers",
			Help:      "Parallel workers used by the run.",
		}),
	}
	m.registry.MustRegister(m.requests, m.latency, m.transferred, m.workers)
	return m
}

func (m *Metrics) Observe(facts []stats.Fact, workers int) {
	m.workers.Set(float64(workers))
	for _, f := range facts {
		m.requests.WithLabelValues(strconv.Itoa(f.Status)).Inc()
		m.latency.Observe(f.Duration.Seconds())
		m.transferred.Add(float64(f.ContentLength.Bytes()))
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
