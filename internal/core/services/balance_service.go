package services

import (
	"context"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/billing_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
)

type balanceService struct {
	BaseService
	documentRepo portsrepo.DocumentReader
	paymentRepo  portsrepo.PaymentReader
}

// NewBalanceService creates a read-only service deriving outstanding balances.
func NewBalanceService(documentRepo portsrepo.DocumentReader, paymentRepo portsrepo.PaymentReader, opts ...ServiceOption) portssvc.BalanceSvc {
	return &balanceService{
		BaseService:  newBaseService(opts...),
		documentRepo: documentRepo,
		paymentRepo:  paymentRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// GetBalance returns grandTotal minus the sum of payments, along with the payments themselves.
// Overpayment yields a negative balance.
func (s *balanceService) GetBalance(ctx context.Context, documentID string) (*domain.Balance, error) {
	if err := checkDocumentID(documentID); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc, err := s.documentRepo.FindDocumentByIDAnyType(ctx, documentID)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.SumPaymentsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &domain.Balance{
		DocumentID: doc.DocumentID,
		Total:      doc.Totals.GrandTotal,
		Paid:       paid,
		Balance:    domain.RoundMoney(doc.Totals.GrandTotal.Sub(paid)),
		Payments:   payments,
	}, nil
}
