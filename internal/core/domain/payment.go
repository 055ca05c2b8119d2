package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a settlement recorded against a document by the payments subsystem.
type Payment struct {
	PaymentID  string          `json:"paymentID"`
	DocumentID string          `json:"documentID"`
	Amount     decimal.Decimal `json:"amount"`
	PaidOn     time.Time       `json:"paidOn"`
	Mode       string          `json:"mode"`
	Reference  string          `json:"reference"`
	AuditFields
}

// Balance is the outstanding amount of a document. Balance may be negative on overpayment.
type Balance struct {
	DocumentID string          `json:"documentID"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Balance    decimal.Decimal `json:"balance"`
	Payments   []Payment       `json:"payments"`
}
