package billing

import (
	"fmt"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TCSRate is the Tax Collected at Source surcharge applied to the taxable amount.
var TCSRate = decimal.RequireFromString("0.01")

// AggregateTotals sums priced lines into document totals.
// Each header amount is the sum of the line amounts as they will be stored (rounded to the paisa),
// so a header always reconciles with its persisted lines. The grand total is built from the
// rounded components. GST totals are added on top of the taxable amount even though each
// line total excludes GST.
func AggregateTotals(items []domain.LineItem, discount *domain.DiscountSpec, charges []domain.AdditionalCharge, applyTCS bool) (domain.DocumentTotals, error) {
	totals := domain.DocumentTotals{
		SubTotal:               decimal.Zero,
		DiscountTotal:          decimal.Zero,
		AdditionalChargesTotal: decimal.Zero,
		TCSAmount:              decimal.Zero,
		TotalTax:               decimal.Zero,
		SGSTTotal:              decimal.Zero,
		CGSTTotal:              decimal.Zero,
		IGSTTotal:              decimal.Zero,
	}

	for _, item := range items {
		stored := item.RoundAmounts()
		totals.SubTotal = totals.SubTotal.Add(stored.BaseAmount)
		totals.TotalTax = totals.TotalTax.Add(stored.TaxAmount)
		totals.SGSTTotal = totals.SGSTTotal.Add(stored.SGSTAmount)
		totals.CGSTTotal = totals.CGSTTotal.Add(stored.CGSTAmount)
		totals.IGSTTotal = totals.IGSTTotal.Add(stored.IGSTAmount)
	}

	discountValue, err := DiscountValue(totals.SubTotal, discount)
	if err != nil {
		return domain.DocumentTotals{}, err
	}
	totals.DiscountTotal = domain.RoundMoney(discountValue)

	for _, charge := range charges {
		totals.AdditionalChargesTotal = totals.AdditionalChargesTotal.Add(charge.Amount)
	}
	totals.AdditionalChargesTotal = domain.RoundMoney(totals.AdditionalChargesTotal)

	totals.TaxableAmount = totals.SubTotal.Sub(totals.DiscountTotal).Add(totals.AdditionalChargesTotal)
	if applyTCS {
		totals.TCSAmount = domain.RoundMoney(totals.TaxableAmount.Mul(TCSRate))
	}

	totals.GrandTotal = totals.TaxableAmount.
		Add(totals.TCSAmount).
		Add(totals.TotalTax).
		Add(totals.SGSTTotal).
		Add(totals.CGSTTotal).
		Add(totals.IGSTTotal)

	return totals, nil
}

// DiscountValue resolves a document level discount against the subtotal.
// A missing value is zero for both discount types.
func DiscountValue(subTotal decimal.Decimal, discount *domain.DiscountSpec) (decimal.Decimal, error) {
	if discount == nil {
		return decimal.Zero, nil
	}
	switch discount.Type {
	case domain.DiscountPercent:
		if discount.Value == nil {
			return decimal.Zero, nil
		}
		return percentOf(subTotal, *discount.Value), nil
	case domain.DiscountFlat:
		if discount.Value == nil {
			return decimal.Zero, nil
		}
		return *discount.Value, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown discount type %q", apperrors.ErrValidation, discount.Type)
	}
}
