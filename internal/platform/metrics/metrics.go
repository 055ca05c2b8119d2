package metrics

import (
	"time"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels for document writes.
const (
	OperationCreate       = "create"
	OperationUpdate       = "update"
	OperationDelete       = "delete"
	OperationUpdateStatus = "update_status"
	OperationConvert      = "convert"
)

// DocumentMetrics records document write signals. A nil *DocumentMetrics is a no-op.
type DocumentMetrics struct {
	written         *prometheus.CounterVec
	conversions     *prometheus.CounterVec
	numberConflicts *prometheus.CounterVec
	writeDuration   *prometheus.HistogramVec
}

// NewDocumentMetrics creates the collectors and registers them with registerer.
func NewDocumentMetrics(registerer prometheus.Registerer) *DocumentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &DocumentMetrics{
		written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_documents_written_total",
			Help: "Committed document writes by type and operation.",
		}, []string{"type", "operation"}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_document_conversions_total",
			Help: "Committed document conversions by source and target type.",
		}, []string{"from", "to"}),
		numberConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_number_conflicts_total",
			Help: "Document number collisions detected at insert time.",
		}, []string{"type"}),
		writeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billing_document_write_duration_seconds",
			Help:    "Latency of document write operations, including failures.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
	}
	registerer.MustRegister(m.written, m.conversions, m.numberConflicts, m.writeDuration)
	return m
}

func (m *DocumentMetrics) DocumentWritten(documentType domain.DocumentType, operation string) {
	if m == nil {
		return
	}
	m.written.WithLabelValues(string(documentType), operation).Inc()
}

func (m *DocumentMetrics) DocumentConverted(from, to domain.DocumentType) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *DocumentMetrics) NumberConflict(documentType domain.DocumentType) {
	if m == nil {
		return
	}
	m.numberConflicts.WithLabelValues(string(documentType)).Inc()
}

// ObserveWrite records the time elapsed since start.
func (m *DocumentMetrics) ObserveWrite(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.writeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
