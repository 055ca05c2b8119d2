package services_test

import (
	"context"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentReader ---
type MockDocumentReader struct {
	mock.Mock
}

var _ portsrepo.DocumentReader = (*MockDocumentReader)(nil)

func (m *MockDocumentReader) FindDocumentByID(ctx context.Context, documentType domain.DocumentType, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentReader) FindDocumentByIDAnyType(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentReader) FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockDocumentReader) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Document), returnedNextToken, args.Error(2)
}

// MockDocumentRepository adds a WithinTransaction that must never be reached by read paths.
type MockDocumentRepository struct {
	MockDocumentReader
}

var _ portsrepo.DocumentRepositoryWithTx = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.DocumentTxWriter) error) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock PaymentReader ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentReader = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SumPaymentsByDocumentID(ctx context.Context, documentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// publishedEvents returns every event passed to Publish, in call order.
func (m *MockEventPublisher) publishedEvents() []domain.DocumentEvent {
	var events []domain.DocumentEvent
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			events = append(events, call.Arguments.Get(1).(domain.DocumentEvent))
		}
	}
	return events
}
