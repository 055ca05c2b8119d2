package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
)

// LogPublisher writes events to the structured log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ portssvc.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	p.logger.InfoContext(ctx, "Document event",
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.Type)),
		slog.String("document_id", event.DocumentID),
		slog.String("document_type", string(event.DocumentType)),
		slog.String("document_number", event.DocumentNumber),
		slog.String("source_id", event.SourceID),
		slog.String("actor_id", event.ActorID),
	)
	return nil
}
