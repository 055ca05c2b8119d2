package billing_test

import (
	"testing"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	"github.com/SscSPs/billing_engine/internal/utils/billing"
	"github.com/stretchr/testify/assert"
)

func TestResolveJurisdiction(t *testing.T) {
	tests := []struct {
		name    string
		taxType string
		address string
		want    domain.JurisdictionMode
	}{
		{"chennai pincode is intra-state", "", "12 Anna Salai, Chennai 600096", domain.IntraState},
		{"pune pincode is inter-state", "", "FC Road, Pune 411001", domain.InterState},
		{"explicit igst wins over pincode", "igst", "Chennai 600096", domain.InterState},
		{"explicit type is case insensitive", "SGST_CGST", "Pune 411001", domain.IntraState},
		{"no address no type defaults to intra-state", "", "", domain.IntraState},
		{"address without pincode is inter-state", "", "Somewhere without a code", domain.InterState},
		{"unknown explicit type falls back to heuristic", "vat", "Pune 411001", domain.InterState},
		{"first six digit run is used", "", "Plot 600001 near 411001", domain.IntraState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.ResolveJurisdiction(tt.taxType, tt.address))
		})
	}
}
