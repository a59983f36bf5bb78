package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the payment module.
type Metrics struct {
	PaymentsCreated prometheus.Counter
	StatusUpdates   *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enrollhub_payments_created_total",
			Help: "Total number of payments created",
		}),
		StatusUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "enrollhub_payment_status_updates_total",
			Help: "Payment status updates by target status",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.PaymentsCreated.Inc()
}

func (m *Metrics) IncrementStatusUpdate(status string) {
	if m == nil {
		return
	}
	m.StatusUpdates.WithLabelValues(status).Inc()
}
