package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/middleware"
	"github.com/SscSPs/billing_engine/internal/platform/metrics"
	"github.com/google/uuid"
)

// maxNumberAttempts bounds how often a write is retried after a document number collision.
const maxNumberAttempts = 2

// BaseService provides common functionality for all services
type BaseService struct {
	Publisher        portssvc.EventPublisher
	Metrics          *metrics.DocumentMetrics
	OperationTimeout time.Duration
	// Now is the clock used for audit stamps. Defaults to time.Now in UTC.
	Now func() time.Time
}

// ServiceOption configures the shared dependencies of a service.
type ServiceOption func(*BaseService)

// WithEventPublisher sets where document events are sent after commit.
func WithEventPublisher(p portssvc.EventPublisher) ServiceOption {
	return func(s *BaseService) { s.Publisher = p }
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *metrics.DocumentMetrics) ServiceOption {
	return func(s *BaseService) { s.Metrics = m }
}

// WithOperationTimeout bounds every public operation. Zero disables the bound.
func WithOperationTimeout(d time.Duration) ServiceOption {
	return func(s *BaseService) { s.OperationTimeout = d }
}

// WithClock overrides the clock, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) { s.Now = now }
}

func newBaseService(opts ...ServiceOption) BaseService {
	base := BaseService{
		Now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// withTimeout applies the configured operation timeout to ctx.
func (s *BaseService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.OperationTimeout)
}

// publish sends event after a successful commit. Delivery failures are logged, never returned:
// the write has already happened.
func (s *BaseService) publish(ctx context.Context, event domain.DocumentEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.LogError(ctx, err, "Failed to publish document event",
			slog.String("event_type", string(event.Type)),
			slog.String("document_id", event.DocumentID))
	}
}

// checkDocumentID reports an id that cannot name any stored document as not found,
// before it reaches the uuid columns.
func checkDocumentID(documentID string) error {
	if _, err := uuid.Parse(documentID); err != nil {
		return apperrors.NewNotFoundError("document " + documentID + " not found")
	}
	return nil
}
