package domain

import "github.com/shopspring/decimal"

// JurisdictionMode selects which GST pair applies to a document.
type JurisdictionMode string

const (
	IntraState JurisdictionMode = "sgst_cgst"
	InterState JurisdictionMode = "igst"
)

func (m JurisdictionMode) IsValid() bool {
	return m == IntraState || m == InterState
}

// Default GST rates, in percent.
var (
	DefaultSGSTPercent = decimal.NewFromInt(9)
	DefaultCGSTPercent = decimal.NewFromInt(9)
	DefaultIGSTPercent = decimal.NewFromInt(18)
)

// LineItemDraft is an unpriced line as received from a caller. Nil pointers mean "not supplied".
type LineItemDraft struct {
	Description     string
	HSNCode         string
	UnitOfMeasure   string
	Quantity        *decimal.Decimal
	Rate            *decimal.Decimal
	DiscountPercent *decimal.Decimal
	TaxPercent      *decimal.Decimal
	SGSTPercent     *decimal.Decimal
	CGSTPercent     *decimal.Decimal
	IGSTPercent     *decimal.Decimal
}

// LineItem is a priced line owned by exactly one document.
type LineItem struct {
	LineItemID    string `json:"lineItemID"`
	DocumentID    string `json:"documentID"`
	Position      int    `json:"position"`
	Description   string `json:"description"`
	HSNCode       string `json:"hsnCode"`
	UnitOfMeasure string `json:"unitOfMeasure"`

	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
	SGSTPercent     decimal.Decimal `json:"sgstPercent"`
	CGSTPercent     decimal.Decimal `json:"cgstPercent"`
	IGSTPercent     decimal.Decimal `json:"igstPercent"`

	BaseAmount     decimal.Decimal `json:"baseAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	SGSTAmount     decimal.Decimal `json:"sgstAmount"`
	CGSTAmount     decimal.Decimal `json:"cgstAmount"`
	IGSTAmount     decimal.Decimal `json:"igstAmount"`
	// LineTotal equals TaxableAmount; GST is added at document level only.
	LineTotal decimal.Decimal `json:"lineTotal"`

	AuditFields
}

// RoundAmounts returns a copy with the derived amounts rounded to 2 decimal places.
func (li LineItem) RoundAmounts() LineItem {
	li.BaseAmount = RoundMoney(li.BaseAmount)
	li.DiscountAmount = RoundMoney(li.DiscountAmount)
	li.TaxableAmount = RoundMoney(li.TaxableAmount)
	li.TaxAmount = RoundMoney(li.TaxAmount)
	li.SGSTAmount = RoundMoney(li.SGSTAmount)
	li.CGSTAmount = RoundMoney(li.CGSTAmount)
	li.IGSTAmount = RoundMoney(li.IGSTAmount)
	li.LineTotal = RoundMoney(li.LineTotal)
	return li
}
