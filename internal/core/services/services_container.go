package services

import (
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/platform/config"
	"github.com/SscSPs/billing_engine/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, documentMetrics *metrics.DocumentMetrics) *portssvc.ServiceContainer {
	opts := []ServiceOption{
		WithEventPublisher(publisher),
		WithMetrics(documentMetrics),
		WithOperationTimeout(cfg.OperationTimeout),
	}

	return &portssvc.ServiceContainer{
		Document:   NewDocumentService(repos.DocumentRepo, opts...),
		Conversion: NewConversionService(repos.DocumentRepo, opts...),
		Balance:    NewBalanceService(repos.DocumentRepo, repos.PaymentRepo, opts...),
	}
}
