package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	"github.com/SscSPs/billing_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	documentRepo *MockDocumentReader
	paymentRepo  *MockPaymentRepository
	service      portssvc.BalanceSvc
	ctx          context.Context
}

func (s *BalanceServiceTestSuite) SetupTest() {
	s.documentRepo = new(MockDocumentReader)
	s.paymentRepo = new(MockPaymentRepository)
	s.service = services.NewBalanceService(s.documentRepo, s.paymentRepo)
	s.ctx = context.Background()
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

const balanceDocumentID = "0b6f4a1e-3c2d-4e5f-9a8b-7c6d5e4f3a2b"

func (s *BalanceServiceTestSuite) invoice(grandTotal string) *domain.Document {
	return &domain.Document{
		DocumentID:   balanceDocumentID,
		DocumentType: domain.SalesInvoice,
		Totals:       domain.DocumentTotals{GrandTotal: decimal.RequireFromString(grandTotal)},
	}
}

func (s *BalanceServiceTestSuite) TestGetBalance_PartiallyPaid() {
	payments := []domain.Payment{
		{PaymentID: "pay-1", DocumentID: balanceDocumentID, Amount: decimal.RequireFromString("300"), PaidOn: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), Mode: "UPI"},
		{PaymentID: "pay-2", DocumentID: balanceDocumentID, Amount: decimal.RequireFromString("200.006"), PaidOn: time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC), Mode: "CASH"},
	}
	s.documentRepo.On("FindDocumentByIDAnyType", mock.Anything, balanceDocumentID).Return(s.invoice("1180.00"), nil).Once()
	s.paymentRepo.On("SumPaymentsByDocumentID", mock.Anything, balanceDocumentID).Return(decimal.RequireFromString("500.006"), nil).Once()
	s.paymentRepo.On("ListPaymentsByDocumentID", mock.Anything, balanceDocumentID).Return(payments, nil).Once()

	balance, err := s.service.GetBalance(s.ctx, balanceDocumentID)
	s.Require().NoError(err)
	s.Equal("1180.00", balance.Total.StringFixed(2))
	s.Equal("679.99", balance.Balance.StringFixed(2))
	s.Require().Len(balance.Payments, 2)
	s.Equal("pay-1", balance.Payments[0].PaymentID)
	s.documentRepo.AssertExpectations(s.T())
	s.paymentRepo.AssertExpectations(s.T())
}

func (s *BalanceServiceTestSuite) TestGetBalance_NoPayments() {
	s.documentRepo.On("FindDocumentByIDAnyType", mock.Anything, balanceDocumentID).Return(s.invoice("250.50"), nil).Once()
	s.paymentRepo.On("SumPaymentsByDocumentID", mock.Anything, balanceDocumentID).Return(decimal.Zero, nil).Once()
	s.paymentRepo.On("ListPaymentsByDocumentID", mock.Anything, balanceDocumentID).Return([]domain.Payment{}, nil).Once()

	balance, err := s.service.GetBalance(s.ctx, balanceDocumentID)
	s.Require().NoError(err)
	s.True(balance.Paid.IsZero())
	s.Empty(balance.Payments)
	s.Equal("250.50", balance.Balance.StringFixed(2))
}

func (s *BalanceServiceTestSuite) TestGetBalance_OverpaymentIsNegative() {
	s.documentRepo.On("FindDocumentByIDAnyType", mock.Anything, balanceDocumentID).Return(s.invoice("100.00"), nil).Once()
	s.paymentRepo.On("SumPaymentsByDocumentID", mock.Anything, balanceDocumentID).Return(decimal.RequireFromString("120"), nil).Once()
	s.paymentRepo.On("ListPaymentsByDocumentID", mock.Anything, balanceDocumentID).Return([]domain.Payment{}, nil).Once()

	balance, err := s.service.GetBalance(s.ctx, balanceDocumentID)
	s.Require().NoError(err)
	s.Equal("-20.00", balance.Balance.StringFixed(2))
}

func (s *BalanceServiceTestSuite) TestGetBalance_NotFound() {
	const missing = "9d4c2b1a-0000-4000-8000-000000000000"
	s.documentRepo.On("FindDocumentByIDAnyType", mock.Anything, missing).Return(nil, apperrors.NewNotFoundError("document not found")).Once()

	_, err := s.service.GetBalance(s.ctx, missing)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.paymentRepo.AssertNotCalled(s.T(), "SumPaymentsByDocumentID", mock.Anything, mock.Anything)
}

func (s *BalanceServiceTestSuite) TestGetBalance_MalformedIDIsNotFound() {
	_, err := s.service.GetBalance(s.ctx, "doc-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.documentRepo.AssertNotCalled(s.T(), "FindDocumentByIDAnyType", mock.Anything, mock.Anything)
}
