package services

import (
	"context"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/SscSPs/billing_engine/internal/dto"
)

// DocumentReaderSvc defines read operations for billing documents
type DocumentReaderSvc interface {
	// GetDocument retrieves a document of the given type together with its line items.
	GetDocument(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a filtered, paginated list of documents of one type.
	ListDocuments(ctx context.Context, documentType domain.DocumentType, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error)
}

// DocumentWriterSvc defines write operations for billing documents
type DocumentWriterSvc interface {
	// CreateDocument prices the payload, assigns a number and persists header and items atomically.
	CreateDocument(ctx context.Context, documentType domain.DocumentType, req dto.DocumentPayload, userID string) (*domain.Document, error)

	// UpdateDocument reprices the payload and replaces the document's items wholesale.
	UpdateDocument(ctx context.Context, documentType domain.DocumentType, documentID string, req dto.DocumentPayload, userID string) (*domain.Document, error)

	// DeleteDocument removes a document and its items.
	DeleteDocument(ctx context.Context, documentType domain.DocumentType, documentID string, userID string) error

	// UpdateStatus moves a document to a new status.
	UpdateStatus(ctx context.Context, documentType domain.DocumentType, documentID string, status string, userID string) error
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}

// ConversionSvc clones a document into another document type.
type ConversionSvc interface {
	// ConvertDocument copies the source into a new draft of targetType and links both documents.
	ConvertDocument(ctx context.Context, sourceType domain.DocumentType, sourceID string, targetType domain.DocumentType, userID string) (*domain.ConversionResult, error)
}

// BalanceSvc derives outstanding balances.
type BalanceSvc interface {
	// GetBalance returns the document total, the amount paid and the remaining balance.
	GetBalance(ctx context.Context, documentID string) (*domain.Balance, error)
}
