package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/billing_engine/internal/core/domain"
)

// DocumentReader defines read operations outside of a write transaction.
type DocumentReader interface {
	// FindDocumentByID retrieves a document header of the given type. Line items are not loaded.
	FindDocumentByID(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error)

	// FindDocumentByIDAnyType retrieves a document header regardless of its type.
	FindDocumentByIDAnyType(ctx context.Context, documentID string) (*domain.Document, error)

	// FindLineItemsByDocumentID retrieves the line items of a document ordered by position.
	FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error)

	// ListDocuments retrieves a page of documents matching filter, newest first, using token-based pagination.
	// It returns the documents, a token for the next page, and an error.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentTxWriter defines the operations available inside one open transaction.
// Nothing written through it is visible to other readers until the transaction commits.
type DocumentTxWriter interface {
	// FindDocumentForUpdate loads and row-locks a document header of the given type.
	FindDocumentForUpdate(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error)

	// FindLineItems retrieves the line items of a document within the transaction.
	FindLineItems(ctx context.Context, documentID string) ([]domain.LineItem, error)

	// AllocateDocumentNumber issues the next number for documentType. Issuance is serialized per type
	// until the transaction ends.
	AllocateDocumentNumber(ctx context.Context, documentType domain.DocumentType) (string, error)

	// InsertDocument inserts the header row only.
	InsertDocument(ctx context.Context, document domain.Document) error

	// UpdateDocument rewrites every mutable header column.
	UpdateDocument(ctx context.Context, document domain.Document) error

	// InsertLineItems inserts line items in one batch.
	InsertLineItems(ctx context.Context, items []domain.LineItem) error

	// DeleteLineItems removes every line item of a document.
	DeleteLineItems(ctx context.Context, documentID string) error

	// DeleteDocument removes the header row. ErrNotFound if no row matched.
	DeleteDocument(ctx context.Context, documentType domain.DocumentType, documentID string) error

	// UpdateDocumentStatus updates only the status column.
	UpdateDocumentStatus(ctx context.Context, documentType domain.DocumentType, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error

	// UpdateExtendedAttributes replaces the extended attributes record.
	UpdateExtendedAttributes(ctx context.Context, documentID string, attrs domain.ExtendedAttributes, updatedBy string, updatedAt time.Time) error
}

// DocumentRepositoryWithTx combines reads with transactional writes.
type DocumentRepositoryWithTx interface {
	DocumentReader

	// WithinTransaction runs fn inside one database transaction. The transaction commits when fn
	// returns nil and rolls back otherwise, including when ctx is cancelled.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx DocumentTxWriter) error) error
}
