package metrics

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one process run. Collectors live on their
// own registry so a run can be dumped as a node_exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	outcomesTotal   *prometheus.CounterVec
	bytesTotal      *prometheus.CounterVec
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bgerase_api_requests_total",
			Help: "Total number of requests sent to the removal API.",
		}, []string{"code", "method"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bgerase_api_request_duration_seconds",
			Help:    "Duration of removal API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"code", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bgerase_api_requests_in_flight",
			Help: "Requests currently waiting on the removal API.",
		}),
		outcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bgerase_removals_total",
			Help: "Removal attempts by outcome.",
		}, []string{"outcome"}),
		bytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bgerase_image_bytes_total",
			Help: "Image bytes read (in) and written (out).",
		}, []string{"direction"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.inFlight,
		m.outcomesTotal,
		m.bytesTotal,
	)
	return m
}

// Registry exposes the registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// InstrumentTransport wraps next so every API call is counted and timed
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
		promhttp.InstrumentRoundTripperCounter(m.requestsTotal,
			promhttp.InstrumentRoundTripperDuration(m.requestDuration, next),
		),
	)
}

// RecordOutcome counts one finished removal
func (m *Metrics) RecordOutcome(outcome string) {
	m.outcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordBytes adds n to the byte counter for direction
func (m *Metrics) RecordBytes(direction string, n int) {
	m.bytesTotal.WithLabelValues(direction).Add(float64(n))
}

// WriteTextfile dumps the registry in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
