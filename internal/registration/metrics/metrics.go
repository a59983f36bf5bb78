package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	StatusUpdates        *prometheus.CounterVec
	CreateDuration       prometheus.Histogram
}

// New creates a new Metrics instance with all registration metrics
// registered. Call once from main; services accept nil metrics in tests.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enrollhub_registrations_created_total",
			Help: "Total number of registrations created",
		}),
		StatusUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "enrollhub_registration_status_updates_total",
			Help: "Registration status updates by target status",
		}, []string{"status"}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "enrollhub_registration_create_duration_seconds",
			Help:    "Duration of registration create operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records a successful registration creation.
func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

// IncrementStatusUpdate records a status transition by target status.
func (m *Metrics) IncrementStatusUpdate(status string) {
	if m == nil {
		return
	}
	m.StatusUpdates.WithLabelValues(status).Inc()
}

// ObserveCreate records the duration of a create operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	if m == nil {
		return
	}
	m.CreateDuration.Observe(time.Since(start).Seconds())
}
