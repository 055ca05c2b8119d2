package pgsql

import (
	"context"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	"github.com/SscSPs/billing_engine/internal/models"
	"github.com/SscSPs/billing_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentReader {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentReader = (*PgxPaymentRepository)(nil)

// SumPaymentsByDocumentID returns the total paid against a document, zero when there are no payments.
func (r *PgxPaymentRepository) SumPaymentsByDocumentID(ctx context.Context, documentID string) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE document_id = $1;`, documentID).Scan(&paid)
	if err != nil {
		return decimal.Zero, apperrors.NewPersistenceError("failed to sum payments for document "+documentID, err)
	}
	return paid, nil
}

// ListPaymentsByDocumentID retrieves payments for a document, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, document_id, amount, paid_on, mode, reference,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE document_id = $1
		ORDER BY paid_on, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query payments for document "+documentID, err)
	}
	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan payments for document "+documentID, err)
	}

	result := make([]domain.Payment, len(payments))
	for i, p := range payments {
		result[i] = mapping.ToDomainPayment(p)
	}
	return result, nil
}
