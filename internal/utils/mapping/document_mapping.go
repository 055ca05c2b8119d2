package mapping

import (
	"fmt"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/SscSPs/billing_engine/internal/models"
)

// ToModelDocument converts a domain Document to a model Document.
// Amounts are rounded to 2 decimal places here and nowhere earlier.
func ToModelDocument(d domain.Document) (models.Document, error) {
	attrs, err := domain.MarshalExtendedAttributes(d.ExtendedAttributes)
	if err != nil {
		return models.Document{}, err
	}
	totals := d.Totals.Round()
	var dueDate = d.DueDate
	if dueDate != nil {
		normalized := domain.NormalizeDate(*dueDate)
		dueDate = &normalized
	}
	return models.Document{
		DocumentID:             d.DocumentID,
		DocumentType:           string(d.DocumentType),
		DocumentNumber:         d.DocumentNumber,
		PartyID:                d.PartyID,
		DocumentDate:           domain.NormalizeDate(d.Date),
		DueDate:                dueDate,
		Status:                 string(d.Status),
		SubTotal:               totals.SubTotal,
		DiscountTotal:          totals.DiscountTotal,
		AdditionalChargesTotal: totals.AdditionalChargesTotal,
		TaxableAmount:          totals.TaxableAmount,
		TCSAmount:              totals.TCSAmount,
		TaxAmountTotal:         totals.TotalTax,
		SGSTTotal:              totals.SGSTTotal,
		CGSTTotal:              totals.CGSTTotal,
		IGSTTotal:              totals.IGSTTotal,
		TaxTotal:               totals.TaxTotal(),
		GrandTotal:             totals.GrandTotal,
		ExtendedAttributes:     attrs,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainDocument converts a model Document to a domain Document.
func ToDomainDocument(m models.Document) (domain.Document, error) {
	attrs, err := domain.ParseExtendedAttributes(m.ExtendedAttributes)
	if err != nil {
		return domain.Document{}, fmt.Errorf("document %s has corrupt extended attributes: %w", m.DocumentID, err)
	}
	return domain.Document{
		DocumentID:     m.DocumentID,
		DocumentType:   domain.DocumentType(m.DocumentType),
		DocumentNumber: m.DocumentNumber,
		PartyID:        m.PartyID,
		Date:           m.DocumentDate,
		DueDate:        m.DueDate,
		Status:         domain.DocumentStatus(m.Status),
		Totals: domain.DocumentTotals{
			SubTotal:               m.SubTotal,
			DiscountTotal:          m.DiscountTotal,
			AdditionalChargesTotal: m.AdditionalChargesTotal,
			TaxableAmount:          m.TaxableAmount,
			TCSAmount:              m.TCSAmount,
			TotalTax:               m.TaxAmountTotal,
			SGSTTotal:              m.SGSTTotal,
			CGSTTotal:              m.CGSTTotal,
			IGSTTotal:              m.IGSTTotal,
			GrandTotal:             m.GrandTotal,
		},
		ExtendedAttributes: attrs,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelLineItem converts a domain LineItem to a model LineItem, rounding the derived amounts.
func ToModelLineItem(d domain.LineItem) models.LineItem {
	d = d.RoundAmounts()
	return models.LineItem{
		LineItemID:      d.LineItemID,
		DocumentID:      d.DocumentID,
		Position:        d.Position,
		Description:     d.Description,
		HSNCode:         d.HSNCode,
		UnitOfMeasure:   d.UnitOfMeasure,
		Quantity:        d.Quantity,
		Rate:            d.Rate,
		DiscountPercent: d.DiscountPercent,
		TaxPercent:      d.TaxPercent,
		SGSTPercent:     d.SGSTPercent,
		CGSTPercent:     d.CGSTPercent,
		IGSTPercent:     d.IGSTPercent,
		BaseAmount:      d.BaseAmount,
		DiscountAmount:  d.DiscountAmount,
		TaxableAmount:   d.TaxableAmount,
		TaxAmount:       d.TaxAmount,
		SGSTAmount:      d.SGSTAmount,
		CGSTAmount:      d.CGSTAmount,
		IGSTAmount:      d.IGSTAmount,
		LineTotal:       d.LineTotal,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:      m.LineItemID,
		DocumentID:      m.DocumentID,
		Position:        m.Position,
		Description:     m.Description,
		HSNCode:         m.HSNCode,
		UnitOfMeasure:   m.UnitOfMeasure,
		Quantity:        m.Quantity,
		Rate:            m.Rate,
		DiscountPercent: m.DiscountPercent,
		TaxPercent:      m.TaxPercent,
		SGSTPercent:     m.SGSTPercent,
		CGSTPercent:     m.CGSTPercent,
		IGSTPercent:     m.IGSTPercent,
		BaseAmount:      m.BaseAmount,
		DiscountAmount:  m.DiscountAmount,
		TaxableAmount:   m.TaxableAmount,
		TaxAmount:       m.TaxAmount,
		SGSTAmount:      m.SGSTAmount,
		CGSTAmount:      m.CGSTAmount,
		IGSTAmount:      m.IGSTAmount,
		LineTotal:       m.LineTotal,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to a slice of domain LineItems
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		DocumentID:  m.DocumentID,
		Amount:      m.Amount,
		PaidOn:      m.PaidOn,
		Mode:        m.Mode,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
