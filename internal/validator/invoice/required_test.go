package invoice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/domain"
	"docex/internal/validator/invoice"
)

func failures(t *testing.T, inv *domain.ExtractedInvoice) []string {
	t.Helper()
	var msgs []string
	for _, rule := range invoice.RequiredValidators() {
		for _, res := range rule.Validate(context.Background(), inv) {
			if !res.Passed {
				msgs = append(msgs, res.Message)
			}
		}
	}
	return msgs
}

func TestRequired_AllPresent(t *testing.T) {
	msgs := failures(t, consistentInvoice())
	assert.Empty(t, msgs)
}

func TestRequired_EmptyInvoice(t *testing.T) {
	msgs := failures(t, &domain.ExtractedInvoice{})
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs, "Missing invoice number")
	assert.Contains(t, msgs, "Missing invoice date")
	assert.Contains(t, msgs, "No line items found")
	assert.Contains(t, msgs, "Missing total amount")
}

func TestRequired_MissingInvoiceNumberOnly(t *testing.T) {
	inv := consistentInvoice()
	inv.Header.InvoiceNumber = ""

	msgs := failures(t, inv)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Missing invoice number", msgs[0])
}
