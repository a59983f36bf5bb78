package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the document module.
type Metrics struct {
	DocumentsCreated prometheus.Counter
	StatusUpdates    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		DocumentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "enrollhub_documents_created_total",
			Help: "Total number of documents submitted",
		}),
		StatusUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "enrollhub_document_status_updates_total",
			Help: "Document status updates by target status",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.DocumentsCreated.Inc()
}

func (m *Metrics) IncrementStatusUpdate(status string) {
	if m == nil {
		return
	}
	m.StatusUpdates.WithLabelValues(status).Inc()
}
