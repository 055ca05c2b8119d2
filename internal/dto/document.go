package dto

import (
	"time"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one line of a document payload. Amounts are computed server side.
type LineItemRequest struct {
	Description     string           `json:"description" binding:"max=500"`
	HSNCode         string           `json:"hsnCode" binding:"max=16"`
	UnitOfMeasure   string           `json:"unitOfMeasure" binding:"max=16"`
	Quantity        *decimal.Decimal `json:"quantity" swaggertype:"string" example:"10"`
	Rate            *decimal.Decimal `json:"rate" swaggertype:"string" example:"100.00"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty" swaggertype:"string"`
	TaxPercent      *decimal.Decimal `json:"taxPercent,omitempty" swaggertype:"string"`
	SGSTPercent     *decimal.Decimal `json:"sgstPercent,omitempty" swaggertype:"string"`
	CGSTPercent     *decimal.Decimal `json:"cgstPercent,omitempty" swaggertype:"string"`
	IGSTPercent     *decimal.Decimal `json:"igstPercent,omitempty" swaggertype:"string"`
}

// DiscountRequest is the document level discount. Type is "flat" or "percent".
type DiscountRequest struct {
	Type  string           `json:"type" binding:"required"`
	Value *decimal.Decimal `json:"value,omitempty" swaggertype:"string"`
}

// AdditionalChargeRequest is a named charge added after the discount (freight, packing...).
type AdditionalChargeRequest struct {
	Label  string          `json:"label" binding:"required,max=120"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// DocumentPayload is the body of create and update requests for every document type.
type DocumentPayload struct {
	PartyID           string                    `json:"partyId" binding:"required,max=64"`
	Date              string                    `json:"date" binding:"required" example:"2024-04-01"`
	DueDate           *string                   `json:"dueDate,omitempty" example:"2024-04-30"`
	TaxType           string                    `json:"taxType,omitempty" binding:"omitempty,oneof=sgst_cgst igst"`
	BillingAddress    string                    `json:"billingAddress,omitempty"`
	ShippingAddress   string                    `json:"shippingAddress,omitempty"`
	Discount          *DiscountRequest          `json:"discount,omitempty"`
	AdditionalCharges []AdditionalChargeRequest `json:"additionalCharges,omitempty" binding:"omitempty,dive"`
	ApplyTCS          bool                      `json:"applyTcs"`
	PaymentTerms      string                    `json:"paymentTerms,omitempty"`
	BankDetailsID     string                    `json:"bankDetailsId,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
	Items             []LineItemRequest         `json:"items" binding:"dive"`
}

// ToLineItemDrafts converts request lines into calculator input.
func (p DocumentPayload) ToLineItemDrafts() []domain.LineItemDraft {
	drafts := make([]domain.LineItemDraft, len(p.Items))
	for i, item := range p.Items {
		drafts[i] = domain.LineItemDraft{
			Description:     item.Description,
			HSNCode:         item.HSNCode,
			UnitOfMeasure:   item.UnitOfMeasure,
			Quantity:        item.Quantity,
			Rate:            item.Rate,
			DiscountPercent: item.DiscountPercent,
			TaxPercent:      item.TaxPercent,
			SGSTPercent:     item.SGSTPercent,
			CGSTPercent:     item.CGSTPercent,
			IGSTPercent:     item.IGSTPercent,
		}
	}
	return drafts
}

// DiscountSpec converts the optional discount into its domain form.
func (p DocumentPayload) DiscountSpec() *domain.DiscountSpec {
	if p.Discount == nil {
		return nil
	}
	return &domain.DiscountSpec{Type: domain.DiscountType(p.Discount.Type), Value: p.Discount.Value}
}

// AdditionalChargeList converts the charges into their domain form.
func (p DocumentPayload) AdditionalChargeList() []domain.AdditionalCharge {
	if len(p.AdditionalCharges) == 0 {
		return nil
	}
	charges := make([]domain.AdditionalCharge, len(p.AdditionalCharges))
	for i, c := range p.AdditionalCharges {
		charges[i] = domain.AdditionalCharge{Label: c.Label, Amount: c.Amount}
	}
	return charges
}

// UpdateStatusRequest is the body of a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"PAID"`
}

// ConvertDocumentRequest is the body of a conversion.
type ConvertDocumentRequest struct {
	TargetType string `json:"targetType" binding:"required" example:"sales"`
}

// ListDocumentsParams defines query parameters for listing documents
type ListDocumentsParams struct {
	Status    string  `form:"status"`
	PartyID   string  `form:"partyId"`
	DateFrom  string  `form:"dateFrom"`
	DateTo    string  `form:"dateTo"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID      string          `json:"lineItemId"`
	Position        int             `json:"position"`
	Description     string          `json:"description"`
	HSNCode         string          `json:"hsnCode"`
	UnitOfMeasure   string          `json:"unitOfMeasure"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"string"`
	Rate            decimal.Decimal `json:"rate" swaggertype:"string"`
	DiscountPercent decimal.Decimal `json:"discountPercent" swaggertype:"string"`
	TaxPercent      decimal.Decimal `json:"taxPercent" swaggertype:"string"`
	SGSTPercent     decimal.Decimal `json:"sgstPercent" swaggertype:"string"`
	CGSTPercent     decimal.Decimal `json:"cgstPercent" swaggertype:"string"`
	IGSTPercent     decimal.Decimal `json:"igstPercent" swaggertype:"string"`
	BaseAmount      decimal.Decimal `json:"baseAmount" swaggertype:"string"`
	DiscountAmount  decimal.Decimal `json:"discountAmount" swaggertype:"string"`
	TaxableAmount   decimal.Decimal `json:"taxableAmount" swaggertype:"string"`
	TaxAmount       decimal.Decimal `json:"taxAmount" swaggertype:"string"`
	SGSTAmount      decimal.Decimal `json:"sgstAmount" swaggertype:"string"`
	CGSTAmount      decimal.Decimal `json:"cgstAmount" swaggertype:"string"`
	IGSTAmount      decimal.Decimal `json:"igstAmount" swaggertype:"string"`
	LineTotal       decimal.Decimal `json:"lineTotal" swaggertype:"string"`
}

// TotalsResponse defines the monetary summary of a document.
type TotalsResponse struct {
	SubTotal               decimal.Decimal `json:"subTotal" swaggertype:"string"`
	DiscountTotal          decimal.Decimal `json:"discountTotal" swaggertype:"string"`
	AdditionalChargesTotal decimal.Decimal `json:"additionalChargesTotal" swaggertype:"string"`
	TaxableAmount          decimal.Decimal `json:"taxableAmount" swaggertype:"string"`
	TCSAmount              decimal.Decimal `json:"tcsAmount" swaggertype:"string"`
	TotalTax               decimal.Decimal `json:"totalTax" swaggertype:"string"`
	SGSTTotal              decimal.Decimal `json:"sgstTotal" swaggertype:"string"`
	CGSTTotal              decimal.Decimal `json:"cgstTotal" swaggertype:"string"`
	IGSTTotal              decimal.Decimal `json:"igstTotal" swaggertype:"string"`
	TaxTotal               decimal.Decimal `json:"taxTotal" swaggertype:"string"`
	GrandTotal             decimal.Decimal `json:"grandTotal" swaggertype:"string"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID         string                    `json:"id"`
	DocumentType       domain.DocumentType       `json:"documentType"`
	DocumentNumber     string                    `json:"documentNumber"`
	PartyID            string                    `json:"partyId"`
	Date               string                    `json:"date"`
	DueDate            *string                   `json:"dueDate,omitempty"`
	Status             domain.DocumentStatus     `json:"status"`
	Totals             TotalsResponse            `json:"totals"`
	ExtendedAttributes domain.ExtendedAttributes `json:"extendedAttributes"`
	Items              []LineItemResponse        `json:"items,omitempty"`
	CreatedAt          time.Time                 `json:"createdAt"`
	CreatedBy          string                    `json:"createdBy"`
	LastUpdatedAt      time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy      string                    `json:"lastUpdatedBy"`
}

// DocumentWriteResponse is returned by create and update.
type DocumentWriteResponse struct {
	DocumentID     string         `json:"id"`
	DocumentNumber string         `json:"documentNumber"`
	Totals         TotalsResponse `json:"totals"`
}

// ListDocumentsResponse is a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ConversionResponse is returned by a conversion.
type ConversionResponse struct {
	SourceID          string `json:"sourceId"`
	NewID             string `json:"newId"`
	NewDocumentNumber string `json:"newDocumentNumber"`
}

// BalanceResponse is the outstanding amount of a document.
type BalanceResponse struct {
	DocumentID string            `json:"documentId"`
	Total      decimal.Decimal   `json:"total" swaggertype:"string"`
	Paid       decimal.Decimal   `json:"paid" swaggertype:"string"`
	Balance    decimal.Decimal   `json:"balance" swaggertype:"string"`
	Payments   []PaymentResponse `json:"payments"`
}

// PaymentResponse is one payment recorded against a document.
type PaymentResponse struct {
	PaymentID string          `json:"paymentId"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	PaidOn    string          `json:"paidOn"`
	Mode      string          `json:"mode"`
	Reference string          `json:"reference,omitempty"`
}

// ToTotalsResponse converts domain totals to the response shape.
func ToTotalsResponse(t domain.DocumentTotals) TotalsResponse {
	return TotalsResponse{
		SubTotal:               t.SubTotal,
		DiscountTotal:          t.DiscountTotal,
		AdditionalChargesTotal: t.AdditionalChargesTotal,
		TaxableAmount:          t.TaxableAmount,
		TCSAmount:              t.TCSAmount,
		TotalTax:               t.TotalTax,
		SGSTTotal:              t.SGSTTotal,
		CGSTTotal:              t.CGSTTotal,
		IGSTTotal:              t.IGSTTotal,
		TaxTotal:               t.TaxTotal(),
		GrandTotal:             t.GrandTotal,
	}
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(li domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:      li.LineItemID,
		Position:        li.Position,
		Description:     li.Description,
		HSNCode:         li.HSNCode,
		UnitOfMeasure:   li.UnitOfMeasure,
		Quantity:        li.Quantity,
		Rate:            li.Rate,
		DiscountPercent: li.DiscountPercent,
		TaxPercent:      li.TaxPercent,
		SGSTPercent:     li.SGSTPercent,
		CGSTPercent:     li.CGSTPercent,
		IGSTPercent:     li.IGSTPercent,
		BaseAmount:      li.BaseAmount,
		DiscountAmount:  li.DiscountAmount,
		TaxableAmount:   li.TaxableAmount,
		TaxAmount:       li.TaxAmount,
		SGSTAmount:      li.SGSTAmount,
		CGSTAmount:      li.CGSTAmount,
		IGSTAmount:      li.IGSTAmount,
		LineTotal:       li.LineTotal,
	}
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:         d.DocumentID,
		DocumentType:       d.DocumentType,
		DocumentNumber:     d.DocumentNumber,
		PartyID:            d.PartyID,
		Date:               d.Date.Format(domain.DateLayout),
		Status:             d.Status,
		Totals:             ToTotalsResponse(d.Totals),
		ExtendedAttributes: d.ExtendedAttributes,
		CreatedAt:          d.CreatedAt,
		CreatedBy:          d.CreatedBy,
		LastUpdatedAt:      d.LastUpdatedAt,
		LastUpdatedBy:      d.LastUpdatedBy,
	}
	if d.DueDate != nil {
		due := d.DueDate.Format(domain.DateLayout)
		resp.DueDate = &due
	}
	if len(d.LineItems) > 0 {
		resp.Items = make([]LineItemResponse, len(d.LineItems))
		for i, li := range d.LineItems {
			resp.Items[i] = ToLineItemResponse(li)
		}
	}
	return resp
}

// ToDocumentResponses converts a slice of domain.Document to []DocumentResponse.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// ToDocumentWriteResponse builds the create/update response.
func ToDocumentWriteResponse(d *domain.Document) DocumentWriteResponse {
	return DocumentWriteResponse{
		DocumentID:     d.DocumentID,
		DocumentNumber: d.DocumentNumber,
		Totals:         ToTotalsResponse(d.Totals),
	}
}

// ToConversionResponse converts a domain.ConversionResult.
func ToConversionResponse(r *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{SourceID: r.SourceID, NewID: r.NewID, NewDocumentNumber: r.NewDocumentNumber}
}

// ToBalanceResponse converts a domain.Balance.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	payments := make([]PaymentResponse, len(b.Payments))
	for i, p := range b.Payments {
		payments[i] = PaymentResponse{
			PaymentID: p.PaymentID,
			Amount:    p.Amount,
			PaidOn:    p.PaidOn.Format(domain.DateLayout),
			Mode:      p.Mode,
			Reference: p.Reference,
		}
	}
	return BalanceResponse{DocumentID: b.DocumentID, Total: b.Total, Paid: b.Paid, Balance: b.Balance, Payments: payments}
}
