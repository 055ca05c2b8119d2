package billing

import (
	"regexp"
	"strings"

	"github.com/SscSPs/billing_engine/internal/core/domain"
)

var pincodePattern = regexp.MustCompile(`\d{6}`)

// intraStatePincodePrefix is the leading pincode digit treated as the home state.
const intraStatePincodePrefix = '6'

// ResolveJurisdiction picks the GST mode for a document.
// An explicit taxType wins; otherwise the first 6-digit pincode in the shipping address decides.
// Missing or unusable input falls back to intra-state and never errors.
func ResolveJurisdiction(taxType string, shippingAddress string) domain.JurisdictionMode {
	if mode := domain.JurisdictionMode(strings.ToLower(strings.TrimSpace(taxType))); mode.IsValid() {
		return mode
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return domain.IntraState
	}
	pincode := pincodePattern.FindString(shippingAddress)
	if pincode != "" && pincode[0] == intraStatePincodePrefix {
		return domain.IntraState
	}
	return domain.InterState
}
