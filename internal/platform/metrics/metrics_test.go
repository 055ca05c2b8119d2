package metrics

import (
	"testing"
	"time"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDocumentMetrics(t *testing.T) {
	m := NewDocumentMetrics(prometheus.NewRegistry())

	m.DocumentWritten(domain.SalesInvoice, OperationCreate)
	m.DocumentWritten(domain.SalesInvoice, OperationCreate)
	m.DocumentConverted(domain.Proforma, domain.SalesInvoice)
	m.NumberConflict(domain.CreditNote)
	m.ObserveWrite(OperationCreate, time.Now().Add(-50*time.Millisecond))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.written.WithLabelValues("SALES", OperationCreate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conversions.WithLabelValues("PROFORMA", "SALES")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.numberConflicts.WithLabelValues("CREDIT_NOTE")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.writeDuration))
}

func TestDocumentMetrics_NilIsNoop(t *testing.T) {
	var m *DocumentMetrics
	assert.NotPanics(t, func() {
		m.DocumentWritten(domain.SalesInvoice, OperationCreate)
		m.DocumentConverted(domain.Proforma, domain.SalesInvoice)
		m.NumberConflict(domain.SalesInvoice)
		m.ObserveWrite(OperationDelete, time.Now())
	})
}
