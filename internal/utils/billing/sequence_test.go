package billing_test

import (
	"testing"

	"github.com/SscSPs/billing_engine/internal/utils/billing"
	"github.com/stretchr/testify/assert"
)

func TestNextDocumentNumber(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{"first document", "", "INV-0001"},
		{"simple increment", "INV-0041", "INV-0042"},
		{"last digit run wins", "INV-2024-0099", "INV-0100"},
		{"grows past padding", "INV-9999", "INV-10000"},
		{"legacy number without digits", "DRAFT", "INV-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.NextDocumentNumber("INV-", tt.last))
		})
	}
}

func TestLastSequence(t *testing.T) {
	n, ok := billing.LastSequence("PROFORMA-0007")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = billing.LastSequence("PROFORMA-")
	assert.False(t, ok)
}

func TestNextSequence(t *testing.T) {
	assert.Equal(t, int64(1), billing.NextSequence(0, ""))
	assert.Equal(t, int64(6), billing.NextSequence(5, "INV-0003"))
	// a row inserted outside the counter pushes issuance forward
	assert.Equal(t, int64(21), billing.NextSequence(5, "INV-0020"))
}

func TestNextDocumentNumber_StrictlyIncreasing(t *testing.T) {
	last := ""
	var prev int64
	for i := 0; i < 200; i++ {
		next := billing.NextDocumentNumber("DC-", last)
		seq, ok := billing.LastSequence(next)
		assert.True(t, ok)
		assert.Greater(t, seq, prev)
		prev, last = seq, next
	}
}
