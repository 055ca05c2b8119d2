package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DocumentType identifies which kind of billing document a row holds.
type DocumentType string

const (
	Proforma        DocumentType = "PROFORMA"
	SalesInvoice    DocumentType = "SALES"
	CreditNote      DocumentType = "CREDIT_NOTE"
	DebitNote       DocumentType = "DEBIT_NOTE"
	DeliveryChallan DocumentType = "DELIVERY_CHALLAN"
	PurchaseOrder   DocumentType = "PURCHASE_ORDER"
)

var numberPrefixes = map[DocumentType]string{
	Proforma:        "PROFORMA-",
	SalesInvoice:    "INV-",
	CreditNote:      "CN-",
	DebitNote:       "DN-",
	DeliveryChallan: "DC-",
	PurchaseOrder:   "PO-",
}

// DocumentTypes lists every supported document type.
func DocumentTypes() []DocumentType {
	return []DocumentType{Proforma, SalesInvoice, CreditNote, DebitNote, DeliveryChallan, PurchaseOrder}
}

// ParseDocumentType accepts the enum value or its route slug ("credit-note") in any case.
func ParseDocumentType(value string) (DocumentType, error) {
	normalized := DocumentType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", "_")))
	if !normalized.IsValid() {
		return "", fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, value)
	}
	return normalized, nil
}

func (t DocumentType) IsValid() bool {
	_, ok := numberPrefixes[t]
	return ok
}

// NumberPrefix is the fixed prefix every document number of this type starts with.
func (t DocumentType) NumberPrefix() string {
	return numberPrefixes[t]
}

// Slug is the lowercase kebab form used in URLs.
func (t DocumentType) Slug() string {
	return strings.ToLower(strings.ReplaceAll(string(t), "_", "-"))
}

// DocumentStatus is the payment/delivery status of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusPending   DocumentStatus = "PENDING"
	StatusPartial   DocumentStatus = "PARTIAL"
	StatusDelivered DocumentStatus = "DELIVERED"
	StatusPaid      DocumentStatus = "PAID"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// ParseDocumentStatus validates value against the fixed status set, ignoring case.
func ParseDocumentStatus(value string) (DocumentStatus, error) {
	status := DocumentStatus(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusDraft, StatusPending, StatusPartial, StatusDelivered, StatusPaid, StatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown document status %q", apperrors.ErrValidation, value)
}

// CanTransitionTo reports whether a document in status s may move to next.
// Cancelled is terminal.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	if s == StatusCancelled {
		return next == StatusCancelled
	}
	return true
}

// DocumentTotals is the aggregated monetary result for one document.
type DocumentTotals struct {
	SubTotal               decimal.Decimal `json:"subTotal"`
	DiscountTotal          decimal.Decimal `json:"discountTotal"`
	AdditionalChargesTotal decimal.Decimal `json:"additionalChargesTotal"`
	TaxableAmount          decimal.Decimal `json:"taxableAmount"`
	TCSAmount              decimal.Decimal `json:"tcsAmount"`
	TotalTax               decimal.Decimal `json:"totalTax"` // sum of the per-line legacy tax
	SGSTTotal              decimal.Decimal `json:"sgstTotal"`
	CGSTTotal              decimal.Decimal `json:"cgstTotal"`
	IGSTTotal              decimal.Decimal `json:"igstTotal"`
	GrandTotal             decimal.Decimal `json:"grandTotal"`
}

// GSTTotal is the jurisdiction-split tax.
func (t DocumentTotals) GSTTotal() decimal.Decimal {
	return t.SGSTTotal.Add(t.CGSTTotal).Add(t.IGSTTotal)
}

// TaxTotal is the header tax figure: the GST split when present, the legacy tax otherwise.
func (t DocumentTotals) TaxTotal() decimal.Decimal {
	if gst := t.GSTTotal(); !gst.IsZero() {
		return gst
	}
	return t.TotalTax
}

// Round returns a copy with every amount rounded to 2 decimal places.
func (t DocumentTotals) Round() DocumentTotals {
	return DocumentTotals{
		SubTotal:               RoundMoney(t.SubTotal),
		DiscountTotal:          RoundMoney(t.DiscountTotal),
		AdditionalChargesTotal: RoundMoney(t.AdditionalChargesTotal),
		TaxableAmount:          RoundMoney(t.TaxableAmount),
		TCSAmount:              RoundMoney(t.TCSAmount),
		TotalTax:               RoundMoney(t.TotalTax),
		SGSTTotal:              RoundMoney(t.SGSTTotal),
		CGSTTotal:              RoundMoney(t.CGSTTotal),
		IGSTTotal:              RoundMoney(t.IGSTTotal),
		GrandTotal:             RoundMoney(t.GrandTotal),
	}
}

// RoundMoney rounds a monetary amount to 2 decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Document is the shared header of every billing document type.
type Document struct {
	DocumentID         string             `json:"documentID"`
	DocumentType       DocumentType       `json:"documentType"`
	DocumentNumber     string             `json:"documentNumber"`
	PartyID            string             `json:"partyID"`
	Date               time.Time          `json:"date"`
	DueDate            *time.Time         `json:"dueDate,omitempty"`
	Status             DocumentStatus     `json:"status"`
	Totals             DocumentTotals     `json:"totals"`
	ExtendedAttributes ExtendedAttributes `json:"extendedAttributes"`
	LineItems          []LineItem         `json:"lineItems,omitempty"`
	AuditFields
}

// IsConverted reports whether the document has already been converted into another one.
func (d Document) IsConverted() bool {
	return d.ExtendedAttributes.ConvertedToID != ""
}

// DocumentFilter narrows a document listing.
type DocumentFilter struct {
	DocumentType DocumentType
	Status       *DocumentStatus
	PartyID      *string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// ConversionResult is returned after cloning one document into another type.
type ConversionResult struct {
	SourceID          string `json:"sourceId"`
	NewID             string `json:"newId"`
	NewDocumentNumber string `json:"newDocumentNumber"`
}
