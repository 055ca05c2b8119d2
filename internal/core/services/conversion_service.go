package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/platform/metrics"
)

type conversionService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryWithTx
}

// NewConversionService creates a service that clones documents across types.
func NewConversionService(documentRepo portsrepo.DocumentRepositoryWithTx, opts ...ServiceOption) portssvc.ConversionSvc {
	return &conversionService{
		BaseService:  newBaseService(opts...),
		documentRepo: documentRepo,
	}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

// ConvertDocument copies the source header and items into a new draft of targetType and links
// both documents. The source status is left as is.
func (s *conversionService) ConvertDocument(ctx context.Context, sourceType domain.DocumentType, sourceID string, targetType domain.DocumentType, userID string) (*domain.ConversionResult, error) {
	defer s.Metrics.ObserveWrite(metrics.OperationConvert, time.Now())
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if !sourceType.IsValid() {
		return nil, apperrors.NewValidationError("unknown document type %q", sourceType)
	}
	if !targetType.IsValid() {
		return nil, apperrors.NewValidationError("unknown target document type %q", targetType)
	}
	if sourceType == targetType {
		return nil, apperrors.NewValidationError("cannot convert a %s into the same type", sourceType)
	}
	if err := checkDocumentID(sourceID); err != nil {
		return nil, err
	}

	var (
		result *domain.ConversionResult
		err    error
	)
	for attempt := 1; ; attempt++ {
		result, err = s.convert(ctx, sourceType, sourceID, targetType, userID)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to convert document",
				slog.String("source_id", sourceID),
				slog.String("target_type", string(targetType)))
			return nil, err
		}
		s.Metrics.NumberConflict(targetType)
		if attempt >= maxNumberAttempts {
			return nil, apperrors.NewConflictError("could not allocate a unique "+string(targetType)+" number", err)
		}
	}

	s.Metrics.DocumentConverted(sourceType, targetType)
	s.Metrics.DocumentWritten(targetType, metrics.OperationConvert)
	s.LogInfo(ctx, "Document converted",
		slog.String("source_id", result.SourceID),
		slog.String("new_id", result.NewID),
		slog.String("new_document_number", result.NewDocumentNumber))
	s.publish(ctx, domain.DocumentEvent{
		EventID:        uuid.NewString(),
		Type:           domain.DocumentConverted,
		DocumentID:     result.NewID,
		DocumentType:   targetType,
		DocumentNumber: result.NewDocumentNumber,
		Status:         domain.StatusDraft,
		SourceID:       result.SourceID,
		ActorID:        userID,
		OccurredAt:     s.Now(),
	})
	return result, nil
}

func (s *conversionService) convert(ctx context.Context, sourceType domain.DocumentType, sourceID string, targetType domain.DocumentType, userID string) (*domain.ConversionResult, error) {
	var result *domain.ConversionResult
	err := s.documentRepo.WithinTransaction(ctx, func(ctx context.Context, tx portsrepo.DocumentTxWriter) error {
		source, err := tx.FindDocumentForUpdate(ctx, sourceType, sourceID)
		if err != nil {
			return err
		}
		if source.IsConverted() {
			return apperrors.NewConflictError("document "+source.DocumentNumber+" was already converted to "+source.ExtendedAttributes.ConvertedToID, nil)
		}
		items, err := tx.FindLineItems(ctx, sourceID)
		if err != nil {
			return err
		}

		number, err := tx.AllocateDocumentNumber(ctx, targetType)
		if err != nil {
			return err
		}

		now := s.Now()
		audit := domain.NewAuditFields(userID, now)
		target := domain.Document{
			DocumentID:     uuid.NewString(),
			DocumentType:   targetType,
			DocumentNumber: number,
			PartyID:        source.PartyID,
			Date:           domain.NormalizeDate(now),
			DueDate:        source.DueDate,
			Status:         domain.StatusDraft,
			Totals:         source.Totals,
			AuditFields:    audit,
		}
		target.ExtendedAttributes = source.ExtendedAttributes
		target.ExtendedAttributes.ConvertedFromID = source.DocumentID
		target.ExtendedAttributes.ConvertedToID = ""
		target.ExtendedAttributes.ConversionStatus = ""
		if target.DueDate != nil && target.DueDate.Before(target.Date) {
			target.DueDate = nil
		}
		// Items are copied verbatim, GST split and positions included. Only ids and audit change.
		target.LineItems = stampLineItems(items, target.DocumentID, audit)

		if err := tx.InsertDocument(ctx, target); err != nil {
			return err
		}
		if err := tx.InsertLineItems(ctx, target.LineItems); err != nil {
			return err
		}

		sourceAttrs := source.ExtendedAttributes
		sourceAttrs.ConvertedToID = target.DocumentID
		sourceAttrs.ConversionStatus = domain.Converted
		if err := tx.UpdateExtendedAttributes(ctx, source.DocumentID, sourceAttrs, userID, now); err != nil {
			return err
		}

		result = &domain.ConversionResult{
			SourceID:          source.DocumentID,
			NewID:             target.DocumentID,
			NewDocumentNumber: target.DocumentNumber,
		}
		return nil
	})
	return result, err
}
