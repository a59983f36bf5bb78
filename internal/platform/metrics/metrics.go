package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-wide Prometheus metrics. Feature modules register
// their own metrics packages; this one covers the HTTP surface.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all platform metrics. Call once from main;
// tests pass nil Metrics to skip registration entirely.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enrollhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and path",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),
	}
}

// ObserveRequest records one request duration. Call with the start time.
func (m *Metrics) ObserveRequest(method, path string, start time.Time) {
	m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}
