package repositories

import (
	"context"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments recorded against documents.
type PaymentReader interface {
	// SumPaymentsByDocumentID returns the total amount paid against a document (zero if none).
	SumPaymentsByDocumentID(ctx context.Context, documentID string) (decimal.Decimal, error)

	// ListPaymentsByDocumentID retrieves payments for a document, oldest first.
	ListPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error)
}
