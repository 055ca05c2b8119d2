package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/billing_engine/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ExtendedAttributesSchemaVersion is the only accepted schema version.
const ExtendedAttributesSchemaVersion = 1

// DiscountType selects how a document level discount value is interpreted.
type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"
	DiscountPercent DiscountType = "percent"
)

// ConversionStatus marks the source side of a conversion.
type ConversionStatus string

const Converted ConversionStatus = "converted"

// DiscountSpec is a document level discount. A nil Value means no discount.
type DiscountSpec struct {
	Type  DiscountType     `json:"type" validate:"required"`
	Value *decimal.Decimal `json:"value,omitempty"`
}

// AdditionalCharge is a named amount added on top of the subtotal (freight, packing...).
type AdditionalCharge struct {
	Label  string          `json:"label" validate:"required,max=120"`
	Amount decimal.Decimal `json:"amount"`
}

// ExtendedAttributes holds the per-document settings that are not header columns.
type ExtendedAttributes struct {
	SchemaVersion     int                `json:"schemaVersion" validate:"eq=1"`
	TaxType           JurisdictionMode   `json:"taxType" validate:"required,oneof=sgst_cgst igst"`
	Discount          *DiscountSpec      `json:"discount,omitempty"`
	AdditionalCharges []AdditionalCharge `json:"additionalCharges,omitempty" validate:"omitempty,max=50,dive"`
	ApplyTCS          bool               `json:"applyTcs"`
	TCSAmount         decimal.Decimal    `json:"tcsAmount"`
	PaymentTerms      string             `json:"paymentTerms,omitempty" validate:"max=500"`
	BankDetailsID     string             `json:"bankDetailsId,omitempty" validate:"max=64"`
	BillingAddress    string             `json:"billingAddress,omitempty" validate:"max=1000"`
	ShippingAddress   string             `json:"shippingAddress,omitempty" validate:"max=1000"`
	Notes             string             `json:"notes,omitempty" validate:"max=2000"`
	ConvertedFromID   string             `json:"convertedFromId,omitempty" validate:"omitempty,uuid"`
	ConvertedToID     string             `json:"convertedToId,omitempty" validate:"omitempty,uuid"`
	ConversionStatus  ConversionStatus   `json:"conversionStatus,omitempty" validate:"omitempty,oneof=converted"`
}

var attributesValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record against the fixed schema.
func (a ExtendedAttributes) Validate() error {
	if err := attributesValidator.Struct(a); err != nil {
		return fmt.Errorf("%w: invalid extended attributes: %s", apperrors.ErrValidation, describeValidation(err))
	}
	if a.Discount != nil {
		switch a.Discount.Type {
		case DiscountFlat, DiscountPercent:
		default:
			return fmt.Errorf("%w: unknown discount type %q", apperrors.ErrValidation, a.Discount.Type)
		}
		if a.Discount.Value != nil && a.Discount.Value.IsNegative() {
			return fmt.Errorf("%w: discount value cannot be negative", apperrors.ErrValidation)
		}
	}
	return nil
}

// WithLinkageFrom copies the conversion fields of prev onto a. Callers cannot edit linkage directly.
func (a ExtendedAttributes) WithLinkageFrom(prev ExtendedAttributes) ExtendedAttributes {
	a.ConvertedFromID = prev.ConvertedFromID
	a.ConvertedToID = prev.ConvertedToID
	a.ConversionStatus = prev.ConversionStatus
	return a
}

// MarshalExtendedAttributes validates and serializes a record for storage.
func MarshalExtendedAttributes(a ExtendedAttributes) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(a)
}

// ParseExtendedAttributes decodes a stored or submitted record, rejecting unknown keys.
func ParseExtendedAttributes(data []byte) (ExtendedAttributes, error) {
	var attrs ExtendedAttributes
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&attrs); err != nil {
		return ExtendedAttributes{}, fmt.Errorf("%w: malformed extended attributes: %s", apperrors.ErrValidation, err.Error())
	}
	if err := attrs.Validate(); err != nil {
		return ExtendedAttributes{}, err
	}
	return attrs, nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
