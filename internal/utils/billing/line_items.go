package billing

import (
	"fmt"
	"strings"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Input and amount limits follow the storage column types.
const inputScale = 4

var (
	hundred = decimal.NewFromInt(100)

	// MaxPercent is the largest percent a line accepts (NUMERIC(7,4)).
	MaxPercent = decimal.RequireFromString("999.9999")
	// quantity and rate are NUMERIC(18,4), amounts NUMERIC(18,2).
	inputLimit  = decimal.New(1, 14)
	amountLimit = decimal.New(1, 16)
)

// CalculateLineItem prices one draft line under the given jurisdiction.
// Amounts are left unrounded; a line is rounded once, at persistence.
func CalculateLineItem(draft domain.LineItemDraft, mode domain.JurisdictionMode) (domain.LineItem, error) {
	if strings.TrimSpace(draft.Description) == "" {
		return domain.LineItem{}, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if draft.Quantity == nil {
		return domain.LineItem{}, fmt.Errorf("%w: quantity is required", apperrors.ErrValidation)
	}
	if draft.Rate == nil {
		return domain.LineItem{}, fmt.Errorf("%w: rate is required", apperrors.ErrValidation)
	}
	if !draft.Quantity.IsPositive() {
		return domain.LineItem{}, fmt.Errorf("%w: quantity must be greater than zero, got %s", apperrors.ErrValidation, draft.Quantity.String())
	}
	if draft.Rate.IsNegative() {
		return domain.LineItem{}, fmt.Errorf("%w: rate cannot be negative, got %s", apperrors.ErrValidation, draft.Rate.String())
	}
	if err := checkInput("quantity", *draft.Quantity, inputLimit); err != nil {
		return domain.LineItem{}, err
	}
	if err := checkInput("rate", *draft.Rate, inputLimit); err != nil {
		return domain.LineItem{}, err
	}

	discountPercent, err := percentOrDefault("discountPercent", draft.DiscountPercent, decimal.Zero)
	if err != nil {
		return domain.LineItem{}, err
	}
	taxPercent, err := percentOrDefault("taxPercent", draft.TaxPercent, decimal.Zero)
	if err != nil {
		return domain.LineItem{}, err
	}
	sgstPercent, err := percentOrDefault("sgstPercent", draft.SGSTPercent, domain.DefaultSGSTPercent)
	if err != nil {
		return domain.LineItem{}, err
	}
	cgstPercent, err := percentOrDefault("cgstPercent", draft.CGSTPercent, domain.DefaultCGSTPercent)
	if err != nil {
		return domain.LineItem{}, err
	}
	igstPercent, err := percentOrDefault("igstPercent", draft.IGSTPercent, domain.DefaultIGSTPercent)
	if err != nil {
		return domain.LineItem{}, err
	}

	item := domain.LineItem{
		Description:     strings.TrimSpace(draft.Description),
		HSNCode:         strings.TrimSpace(draft.HSNCode),
		UnitOfMeasure:   strings.TrimSpace(draft.UnitOfMeasure),
		Quantity:        *draft.Quantity,
		Rate:            *draft.Rate,
		DiscountPercent: discountPercent,
		TaxPercent:      taxPercent,
		SGSTPercent:     sgstPercent,
		CGSTPercent:     cgstPercent,
		IGSTPercent:     igstPercent,
		SGSTAmount:      decimal.Zero,
		CGSTAmount:      decimal.Zero,
		IGSTAmount:      decimal.Zero,
	}

	item.BaseAmount = item.Quantity.Mul(item.Rate)
	item.DiscountAmount = percentOf(item.BaseAmount, discountPercent)
	item.TaxableAmount = item.BaseAmount.Sub(item.DiscountAmount)
	item.TaxAmount = percentOf(item.TaxableAmount, taxPercent)

	if mode == domain.InterState {
		item.IGSTAmount = percentOf(item.TaxableAmount, igstPercent)
	} else {
		item.SGSTAmount = percentOf(item.TaxableAmount, sgstPercent)
		item.CGSTAmount = percentOf(item.TaxableAmount, cgstPercent)
	}

	item.LineTotal = item.TaxableAmount
	if domain.RoundMoney(item.BaseAmount).GreaterThanOrEqual(amountLimit) {
		return domain.LineItem{}, fmt.Errorf("%w: line amount %s is too large", apperrors.ErrValidation, item.BaseAmount.String())
	}
	return item, nil
}

// CalculateLineItems prices every draft, numbering positions from 1.
// The first invalid line rejects the whole set.
func CalculateLineItems(drafts []domain.LineItemDraft, mode domain.JurisdictionMode) ([]domain.LineItem, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", apperrors.ErrValidation)
	}
	items := make([]domain.LineItem, 0, len(drafts))
	for i, draft := range drafts {
		item, err := CalculateLineItem(draft, mode)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		item.Position = i + 1
		items = append(items, item)
	}
	return items, nil
}

func percentOrDefault(field string, value *decimal.Decimal, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == nil {
		return fallback, nil
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, field)
	}
	if value.GreaterThan(MaxPercent) {
		return decimal.Zero, fmt.Errorf("%w: %s cannot exceed %s, got %s", apperrors.ErrValidation, field, MaxPercent.String(), value.String())
	}
	if !value.Equal(value.Truncate(inputScale)) {
		return decimal.Zero, fmt.Errorf("%w: %s allows at most %d decimal places, got %s", apperrors.ErrValidation, field, inputScale, value.String())
	}
	return *value, nil
}

// checkInput rejects values the quantity and rate columns cannot hold exactly.
func checkInput(field string, value, limit decimal.Decimal) error {
	if value.Abs().GreaterThanOrEqual(limit) {
		return fmt.Errorf("%w: %s %s is too large", apperrors.ErrValidation, field, value.String())
	}
	if !value.Equal(value.Truncate(inputScale)) {
		return fmt.Errorf("%w: %s allows at most %d decimal places, got %s", apperrors.ErrValidation, field, inputScale, value.String())
	}
	return nil
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	if percent.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(percent).Div(hundred)
}
