package billing_test

import (
	"testing"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/SscSPs/billing_engine/internal/utils/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestCalculateLineItem_IntraStateDefaults(t *testing.T) {
	item, err := billing.CalculateLineItem(domain.LineItemDraft{
		Description:     "Steel rods",
		Quantity:        dec("10"),
		Rate:            dec("100"),
		DiscountPercent: dec("0"),
		TaxPercent:      dec("0"),
	}, domain.IntraState)
	require.NoError(t, err)

	assertAmount(t, "1000", item.BaseAmount, "base")
	assertAmount(t, "0", item.DiscountAmount, "discount")
	assertAmount(t, "1000", item.TaxableAmount, "taxable")
	assertAmount(t, "0", item.TaxAmount, "tax")
	assertAmount(t, "90", item.SGSTAmount, "sgst")
	assertAmount(t, "90", item.CGSTAmount, "cgst")
	assertAmount(t, "0", item.IGSTAmount, "igst")
	assertAmount(t, "1000", item.LineTotal, "lineTotal")
}

func TestCalculateLineItem_InterStateWithDiscountAndTax(t *testing.T) {
	item, err := billing.CalculateLineItem(domain.LineItemDraft{
		Description:     "Cement bags",
		Quantity:        dec("3"),
		Rate:            dec("333.33"),
		DiscountPercent: dec("10"),
		TaxPercent:      dec("2"),
		IGSTPercent:     dec("28"),
	}, domain.InterState)
	require.NoError(t, err)

	assertAmount(t, "999.99", item.BaseAmount, "base")
	assertAmount(t, "99.999", item.DiscountAmount, "discount")
	assertAmount(t, "899.991", item.TaxableAmount, "taxable")
	assertAmount(t, "17.99982", item.TaxAmount, "tax")
	assertAmount(t, "251.99748", item.IGSTAmount, "igst")
	assert.True(t, item.SGSTAmount.IsZero())
	assert.True(t, item.CGSTAmount.IsZero())
	assert.True(t, item.LineTotal.Equal(item.TaxableAmount))

	rounded := item.RoundAmounts()
	assert.Equal(t, "899.99", rounded.TaxableAmount.StringFixed(2))
	assert.Equal(t, "252.00", rounded.IGSTAmount.StringFixed(2))
}

func TestCalculateLineItem_SplitExclusivity(t *testing.T) {
	draft := domain.LineItemDraft{Description: "Widget", Quantity: dec("2"), Rate: dec("49.5")}

	for _, mode := range []domain.JurisdictionMode{domain.IntraState, domain.InterState} {
		item, err := billing.CalculateLineItem(draft, mode)
		require.NoError(t, err)

		intra := item.SGSTAmount.Add(item.CGSTAmount)
		assert.NotEqual(t, intra.IsZero(), item.IGSTAmount.IsZero(), "exactly one GST pair must be non-zero in mode %s", mode)
	}

	zeroRates := draft
	zeroRates.SGSTPercent = dec("0")
	zeroRates.CGSTPercent = dec("0")
	item, err := billing.CalculateLineItem(zeroRates, domain.IntraState)
	require.NoError(t, err)
	assert.True(t, item.SGSTAmount.Add(item.CGSTAmount).Add(item.IGSTAmount).IsZero())
}

func TestCalculateLineItem_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.LineItemDraft
	}{
		{"zero quantity", domain.LineItemDraft{Description: "x", Quantity: dec("0"), Rate: dec("1")}},
		{"negative quantity", domain.LineItemDraft{Description: "x", Quantity: dec("-1"), Rate: dec("1")}},
		{"negative rate", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("-0.01")}},
		{"missing quantity", domain.LineItemDraft{Description: "x", Rate: dec("1")}},
		{"missing rate", domain.LineItemDraft{Description: "x", Quantity: dec("1")}},
		{"missing description", domain.LineItemDraft{Description: "  ", Quantity: dec("1"), Rate: dec("1")}},
		{"negative discount percent", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("1"), DiscountPercent: dec("-5")}},
		{"tax percent above limit", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("1"), TaxPercent: dec("1000")}},
		{"igst percent above limit", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("1"), IGSTPercent: dec("999.99991")}},
		{"sgst percent too precise", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("1"), SGSTPercent: dec("9.00001")}},
		{"quantity too precise", domain.LineItemDraft{Description: "x", Quantity: dec("1.23456"), Rate: dec("1")}},
		{"rate too precise", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("0.00001")}},
		{"quantity too large", domain.LineItemDraft{Description: "x", Quantity: dec("100000000000000"), Rate: dec("1")}},
		{"line amount too large", domain.LineItemDraft{Description: "x", Quantity: dec("99999999999999"), Rate: dec("1000")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billing.CalculateLineItem(tt.draft, domain.IntraState)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestCalculateLineItem_AcceptsStorageLimits(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.LineItemDraft
	}{
		{"largest percent", domain.LineItemDraft{Description: "x", Quantity: dec("1"), Rate: dec("1"), TaxPercent: dec("999.9999")}},
		{"four decimal quantity", domain.LineItemDraft{Description: "x", Quantity: dec("0.0001"), Rate: dec("1.2345")}},
		{"trailing zeros", domain.LineItemDraft{Description: "x", Quantity: dec("2.500000"), Rate: dec("10.00000"), DiscountPercent: dec("5.000000")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billing.CalculateLineItem(tt.draft, domain.IntraState)
			assert.NoError(t, err)
		})
	}
}

func TestCalculateLineItem_ZeroRateIsAllowed(t *testing.T) {
	item, err := billing.CalculateLineItem(domain.LineItemDraft{Description: "Free sample", Quantity: dec("1"), Rate: dec("0")}, domain.IntraState)
	require.NoError(t, err)
	assert.True(t, item.LineTotal.IsZero())
}

func TestCalculateLineItems(t *testing.T) {
	items, err := billing.CalculateLineItems([]domain.LineItemDraft{
		{Description: "a", Quantity: dec("1"), Rate: dec("10")},
		{Description: "b", Quantity: dec("2"), Rate: dec("20")},
	}, domain.IntraState)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 2, items[1].Position)

	_, err = billing.CalculateLineItems(nil, domain.IntraState)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = billing.CalculateLineItems([]domain.LineItemDraft{
		{Description: "a", Quantity: dec("1"), Rate: dec("10")},
		{Description: "b", Quantity: dec("0"), Rate: dec("20")},
	}, domain.IntraState)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "line 2")
}
