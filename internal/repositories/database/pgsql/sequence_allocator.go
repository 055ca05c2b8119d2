package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/SscSPs/billing_engine/internal/utils/billing"
	"github.com/jackc/pgx/v5"
)

// allocateDocumentNumber issues the next number for documentType inside tx.
//
// The counter row of the type is locked with SELECT ... FOR UPDATE, so concurrent writers of the
// same type queue behind each other until the holding transaction ends. The issued value is the
// larger of the counter and the highest persisted number, plus one. A rolled back transaction
// releases its number and the next writer reuses it.
func allocateDocumentNumber(ctx context.Context, q querier, documentType domain.DocumentType) (string, error) {
	if !documentType.IsValid() {
		return "", apperrors.NewValidationError("unknown document type %q", documentType)
	}

	_, err := q.Exec(ctx, `
		INSERT INTO document_sequences (document_type, last_value, last_updated_at)
		VALUES ($1, 0, NOW())
		ON CONFLICT (document_type) DO NOTHING;
	`, documentType)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to seed sequence for "+string(documentType), err)
	}

	var counter int64
	err = q.QueryRow(ctx, `
		SELECT last_value FROM document_sequences WHERE document_type = $1 FOR UPDATE;
	`, documentType).Scan(&counter)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to lock sequence for "+string(documentType), err)
	}

	// Longest first, then lexicographic, gives the numerically largest number for a fixed prefix.
	var lastNumber string
	err = q.QueryRow(ctx, `
		SELECT document_number FROM documents
		WHERE document_type = $1
		ORDER BY length(document_number) DESC, document_number DESC
		LIMIT 1;
	`, documentType).Scan(&lastNumber)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NewPersistenceError("failed to read last number for "+string(documentType), err)
	}

	next := billing.NextSequence(counter, lastNumber)
	_, err = q.Exec(ctx, `
		UPDATE document_sequences SET last_value = $2, last_updated_at = NOW() WHERE document_type = $1;
	`, documentType, next)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to advance sequence for "+string(documentType), err)
	}

	return billing.FormatDocumentNumber(documentType.NumberPrefix(), next), nil
}
