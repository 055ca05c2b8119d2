package services

import (
	"context"

	"github.com/SscSPs/billing_engine/internal/core/domain"
)

// EventPublisher delivers document lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DocumentEvent) error
}
