package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table.
type Document struct {
	DocumentID             string          `db:"document_id"`
	DocumentType           string          `db:"document_type"`
	DocumentNumber         string          `db:"document_number"`
	PartyID                string          `db:"party_id"`
	DocumentDate           time.Time       `db:"document_date"`
	DueDate                *time.Time      `db:"due_date"` // Nullable
	Status                 string          `db:"status"`
	SubTotal               decimal.Decimal `db:"sub_total"`
	DiscountTotal          decimal.Decimal `db:"discount_total"`
	AdditionalChargesTotal decimal.Decimal `db:"additional_charges_total"`
	TaxableAmount          decimal.Decimal `db:"taxable_amount"`
	TCSAmount              decimal.Decimal `db:"tcs_amount"`
	TaxAmountTotal         decimal.Decimal `db:"tax_amount_total"`
	SGSTTotal              decimal.Decimal `db:"sgst_total"`
	CGSTTotal              decimal.Decimal `db:"cgst_total"`
	IGSTTotal              decimal.Decimal `db:"igst_total"`
	TaxTotal               decimal.Decimal `db:"tax_total"`
	GrandTotal             decimal.Decimal `db:"grand_total"`
	ExtendedAttributes     []byte          `db:"extended_attributes"` // JSONB
	AuditFields
}

// LineItem is a row of the document_line_items table.
type LineItem struct {
	LineItemID      string          `db:"line_item_id"`
	DocumentID      string          `db:"document_id"`
	Position        int             `db:"position"`
	Description     string          `db:"description"`
	HSNCode         string          `db:"hsn_code"`
	UnitOfMeasure   string          `db:"unit_of_measure"`
	Quantity        decimal.Decimal `db:"quantity"`
	Rate            decimal.Decimal `db:"rate"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	TaxPercent      decimal.Decimal `db:"tax_percent"`
	SGSTPercent     decimal.Decimal `db:"sgst_percent"`
	CGSTPercent     decimal.Decimal `db:"cgst_percent"`
	IGSTPercent     decimal.Decimal `db:"igst_percent"`
	BaseAmount      decimal.Decimal `db:"base_amount"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	TaxableAmount   decimal.Decimal `db:"taxable_amount"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	SGSTAmount      decimal.Decimal `db:"sgst_amount"`
	CGSTAmount      decimal.Decimal `db:"cgst_amount"`
	IGSTAmount      decimal.Decimal `db:"igst_amount"`
	LineTotal       decimal.Decimal `db:"line_total"`
	AuditFields
}

// Payment is a row of the payments table.
type Payment struct {
	PaymentID  string          `db:"payment_id"`
	DocumentID string          `db:"document_id"`
	Amount     decimal.Decimal `db:"amount"`
	PaidOn     time.Time       `db:"paid_on"`
	Mode       string          `db:"mode"`
	Reference  string          `db:"reference"`
	AuditFields
}
