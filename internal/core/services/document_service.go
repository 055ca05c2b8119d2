package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/dto"
	"github.com/SscSPs/billing_engine/internal/platform/metrics"
	"github.com/SscSPs/billing_engine/internal/utils/billing"
)

// documentService implements create, read, update, delete and status changes for every document type.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryWithTx
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryWithTx, opts ...ServiceOption) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService:  newBaseService(opts...),
		documentRepo: documentRepo,
	}
}

// Ensure documentService implements the portssvc.DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// priceDocument runs the pure part of the write pipeline: jurisdiction, line items, totals.
// The result has no id, number or audit stamps yet.
func priceDocument(documentType domain.DocumentType, req dto.DocumentPayload) (domain.Document, error) {
	if !documentType.IsValid() {
		return domain.Document{}, apperrors.NewValidationError("unknown document type %q", documentType)
	}
	if strings.TrimSpace(req.PartyID) == "" {
		return domain.Document{}, apperrors.NewValidationError("partyId is required")
	}
	date, err := domain.ParseCalendarDate(req.Date)
	if err != nil {
		return domain.Document{}, err
	}
	var dueDate *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		d, err := domain.ParseCalendarDate(*req.DueDate)
		if err != nil {
			return domain.Document{}, err
		}
		if d.Before(date) {
			return domain.Document{}, apperrors.NewValidationError("dueDate cannot be before date")
		}
		dueDate = &d
	}

	mode := billing.ResolveJurisdiction(req.TaxType, req.ShippingAddress)
	items, err := billing.CalculateLineItems(req.ToLineItemDrafts(), mode)
	if err != nil {
		return domain.Document{}, err
	}

	discount := req.DiscountSpec()
	charges := req.AdditionalChargeList()
	totals, err := billing.AggregateTotals(items, discount, charges, req.ApplyTCS)
	if err != nil {
		return domain.Document{}, err
	}

	attrs := domain.ExtendedAttributes{
		SchemaVersion:     domain.ExtendedAttributesSchemaVersion,
		TaxType:           mode,
		Discount:          discount,
		AdditionalCharges: charges,
		ApplyTCS:          req.ApplyTCS,
		TCSAmount:         domain.RoundMoney(totals.TCSAmount),
		PaymentTerms:      req.PaymentTerms,
		BankDetailsID:     req.BankDetailsID,
		BillingAddress:    req.BillingAddress,
		ShippingAddress:   req.ShippingAddress,
		Notes:             req.Notes,
	}
	if err := attrs.Validate(); err != nil {
		return domain.Document{}, err
	}

	return domain.Document{
		DocumentType:       documentType,
		PartyID:            req.PartyID,
		Date:               date,
		DueDate:            dueDate,
		Status:             domain.StatusDraft,
		Totals:             totals,
		ExtendedAttributes: attrs,
		LineItems:          items,
	}, nil
}

// stampLineItems assigns fresh ids, the owning document and audit fields to items.
func stampLineItems(items []domain.LineItem, documentID string, audit domain.AuditFields) []domain.LineItem {
	stamped := make([]domain.LineItem, len(items))
	for i, item := range items {
		item.LineItemID = uuid.NewString()
		item.DocumentID = documentID
		item.AuditFields = audit
		stamped[i] = item
	}
	return stamped
}

func (s *documentService) CreateDocument(ctx context.Context, documentType domain.DocumentType, req dto.DocumentPayload, userID string) (*domain.Document, error) {
	defer s.Metrics.ObserveWrite(metrics.OperationCreate, time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	draft, err := priceDocument(documentType, req)
	if err != nil {
		return nil, err
	}

	var created domain.Document
	for attempt := 1; ; attempt++ {
		created, err = s.insertDocument(ctx, draft, userID)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create document", slog.String("document_type", string(documentType)))
			return nil, err
		}
		s.Metrics.NumberConflict(documentType)
		if attempt >= maxNumberAttempts {
			return nil, apperrors.NewConflictError("could not allocate a unique "+string(documentType)+" number", err)
		}
		s.GetLogger(ctx).Warn("Document number collision, retrying",
			slog.String("document_type", string(documentType)),
			slog.Int("attempt", attempt))
	}

	s.Metrics.DocumentWritten(documentType, metrics.OperationCreate)
	s.LogInfo(ctx, "Document created",
		slog.String("document_id", created.DocumentID),
		slog.String("document_number", created.DocumentNumber))
	s.publish(ctx, domain.DocumentEvent{
		EventID:        uuid.NewString(),
		Type:           domain.DocumentCreated,
		DocumentID:     created.DocumentID,
		DocumentType:   created.DocumentType,
		DocumentNumber: created.DocumentNumber,
		Status:         created.Status,
		ActorID:        userID,
		OccurredAt:     created.CreatedAt,
	})
	return &created, nil
}

// insertDocument numbers and persists draft in one transaction. Each call uses fresh ids.
func (s *documentService) insertDocument(ctx context.Context, draft domain.Document, userID string) (domain.Document, error) {
	doc := draft
	doc.DocumentID = uuid.NewString()
	doc.AuditFields = domain.NewAuditFields(userID, s.Now())
	doc.LineItems = stampLineItems(draft.LineItems, doc.DocumentID, doc.AuditFields)

	err := s.documentRepo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		number, err := tx.AllocateDocumentNumber(ctx, doc.DocumentType)
		if err != nil {
			return err
		}
		doc.DocumentNumber = number
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return err
		}
		return tx.InsertLineItems(ctx, doc.LineItems)
	})
	if err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error) {
	if err := checkDocumentID(documentID); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentType, documentID)
	if err != nil {
		return nil, err
	}
	items, err := s.documentRepo.FindLineItemsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	doc.LineItems = items
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, documentType domain.DocumentType, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := domain.DocumentFilter{DocumentType: documentType}
	if params.Status != "" {
		status, err := domain.ParseDocumentStatus(params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if params.PartyID != "" {
		filter.PartyID = &params.PartyID
	}
	if params.DateFrom != "" {
		from, err := domain.ParseCalendarDate(params.DateFrom)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := domain.ParseCalendarDate(params.DateTo)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, apperrors.NewValidationError("dateTo cannot be before dateFrom")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	docs, nextToken, err := s.documentRepo.ListDocuments(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListDocumentsResponse{
		Documents: dto.ToDocumentResponses(docs),
		NextToken: nextToken,
	}, nil
}

// UpdateDocument reprices the payload and replaces header totals and every line item in one
// transaction. Number, status and conversion linkage are kept.
func (s *documentService) UpdateDocument(ctx context.Context, documentType domain.DocumentType, documentID string, req dto.DocumentPayload, userID string) (*domain.Document, error) {
	defer s.Metrics.ObserveWrite(metrics.OperationUpdate, time.Now())
	if err := checkDocumentID(documentID); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	draft, err := priceDocument(documentType, req)
	if err != nil {
		return nil, err
	}

	var updated domain.Document
	err = s.documentRepo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		existing, err := tx.FindDocumentForUpdate(ctx, documentType, documentID)
		if err != nil {
			return err
		}

		now := s.Now()
		doc := draft
		doc.DocumentID = existing.DocumentID
		doc.DocumentNumber = existing.DocumentNumber
		doc.Status = existing.Status
		doc.ExtendedAttributes = draft.ExtendedAttributes.WithLinkageFrom(existing.ExtendedAttributes)
		doc.AuditFields = existing.AuditFields
		doc.LastUpdatedAt = now
		doc.LastUpdatedBy = userID
		doc.LineItems = stampLineItems(draft.LineItems, doc.DocumentID, domain.NewAuditFields(userID, now))

		if err := tx.DeleteLineItems(ctx, doc.DocumentID); err != nil {
			return err
		}
		if err := tx.InsertLineItems(ctx, doc.LineItems); err != nil {
			return err
		}
		if err := tx.UpdateDocument(ctx, doc); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, err
	}

	s.Metrics.DocumentWritten(documentType, metrics.OperationUpdate)
	s.publish(ctx, domain.DocumentEvent{
		EventID:        uuid.NewString(),
		Type:           domain.DocumentUpdated,
		DocumentID:     updated.DocumentID,
		DocumentType:   updated.DocumentType,
		DocumentNumber: updated.DocumentNumber,
		Status:         updated.Status,
		ActorID:        userID,
		OccurredAt:     updated.LastUpdatedAt,
	})
	return &updated, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, documentType domain.DocumentType, documentID string, userID string) error {
	defer s.Metrics.ObserveWrite(metrics.OperationDelete, time.Now())
	if err := checkDocumentID(documentID); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var deleted *domain.Document
	err := s.documentRepo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		existing, err := tx.FindDocumentForUpdate(ctx, documentType, documentID)
		if err != nil {
			return err
		}
		if err := tx.DeleteLineItems(ctx, documentID); err != nil {
			return err
		}
		if err := tx.DeleteDocument(ctx, documentType, documentID); err != nil {
			return err
		}
		deleted = existing
		return nil
	})
	if err != nil {
		return err
	}

	s.Metrics.DocumentWritten(documentType, metrics.OperationDelete)
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID))
	s.publish(ctx, domain.DocumentEvent{
		EventID:        uuid.NewString(),
		Type:           domain.DocumentDeleted,
		DocumentID:     deleted.DocumentID,
		DocumentType:   deleted.DocumentType,
		DocumentNumber: deleted.DocumentNumber,
		ActorID:        userID,
		OccurredAt:     s.Now(),
	})
	return nil
}

func (s *documentService) UpdateStatus(ctx context.Context, documentType domain.DocumentType, documentID string, status string, userID string) error {
	defer s.Metrics.ObserveWrite(metrics.OperationUpdateStatus, time.Now())
	if err := checkDocumentID(documentID); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	next, err := domain.ParseDocumentStatus(status)
	if err != nil {
		return err
	}

	now := s.Now()
	var number string
	err = s.documentRepo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		existing, err := tx.FindDocumentForUpdate(ctx, documentType, documentID)
		if err != nil {
			return err
		}
		if !existing.Status.CanTransitionTo(next) {
			return apperrors.NewConflictError("document "+existing.DocumentNumber+" is "+string(existing.Status)+" and cannot move to "+string(next), nil)
		}
		number = existing.DocumentNumber
		return tx.UpdateDocumentStatus(ctx, documentType, documentID, next, userID, now)
	})
	if err != nil {
		return err
	}

	s.Metrics.DocumentWritten(documentType, metrics.OperationUpdateStatus)
	s.publish(ctx, domain.DocumentEvent{
		EventID:        uuid.NewString(),
		Type:           domain.DocumentStatusChanged,
		DocumentID:     documentID,
		DocumentType:   documentType,
		DocumentNumber: number,
		Status:         next,
		ActorID:        userID,
		OccurredAt:     now,
	})
	return nil
}
