package invoice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/domain"
	"docex/internal/validator/invoice"
)

func runRule(t *testing.T, key string, inv *domain.ExtractedInvoice) []invoice.Result {
	t.Helper()
	for _, rule := range invoice.MathValidators() {
		if rule.RuleKey() == key {
			return rule.Validate(context.Background(), inv)
		}
	}
	t.Fatalf("rule %s not registered", key)
	return nil
}

func consistentInvoice() *domain.ExtractedInvoice {
	return &domain.ExtractedInvoice{
		Header: domain.InvoiceHeader{InvoiceNumber: "INV-1", Date: "2024-01-15"},
		LineItems: []domain.LineItem{
			{Quantity: 2, UnitPrice: 50.00, Total: 100.00},
			{Quantity: 3, UnitPrice: 10.00, Total: 30.00},
		},
		Totals: domain.Totals{
			Subtotal:  130.00,
			TaxRate:   10,
			TaxAmount: 13.00,
			Shipping:  5.00,
			Total:     148.00,
		},
	}
}

func TestLineItemTotal_Consistent(t *testing.T) {
	results := runRule(t, "math.line_item.total", consistentInvoice())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Passed)
	}
}

func TestLineItemTotal_Mismatch(t *testing.T) {
	inv := consistentInvoice()
	inv.LineItems[1].Total = 35.00

	results := runRule(t, "math.line_item.total", inv)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Equal(t, "line_items[1].total", results[1].FieldPath)
	assert.Equal(t, "30.00", results[1].Expected)
	assert.Equal(t, "35.00", results[1].Actual)
	assert.Contains(t, results[1].Message, "Line item 2")
}

func TestLineItemTotal_WithinOnePercentTolerance(t *testing.T) {
	inv := consistentInvoice()
	// 0.5% off: within the 1% relative tolerance.
	inv.LineItems[0].Total = 100.50

	results := runRule(t, "math.line_item.total", inv)
	assert.True(t, results[0].Passed)
}

func TestLineItemTotal_SmallAbsoluteDriftAllowed(t *testing.T) {
	inv := &domain.ExtractedInvoice{
		LineItems: []domain.LineItem{{Quantity: 1, UnitPrice: 0.10, Total: 0.11}},
	}

	results := runRule(t, "math.line_item.total", inv)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed, "one cent of drift is always accepted")
}

func TestSubtotal_Mismatch(t *testing.T) {
	inv := consistentInvoice()
	inv.Totals.Subtotal = 150.00

	results := runRule(t, "math.totals.subtotal", inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "totals.subtotal", results[0].FieldPath)
}

func TestSubtotal_NoLineItemsSkipped(t *testing.T) {
	inv := &domain.ExtractedInvoice{Totals: domain.Totals{Subtotal: 99}}
	results := runRule(t, "math.totals.subtotal", inv)
	assert.Empty(t, results)
}

func TestTaxAmount_Consistent(t *testing.T) {
	results := runRule(t, "math.totals.tax_amount", consistentInvoice())
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

func TestTaxAmount_ZeroRateSkipped(t *testing.T) {
	inv := consistentInvoice()
	inv.Totals.TaxRate = 0
	inv.Totals.TaxAmount = 42

	results := runRule(t, "math.totals.tax_amount", inv)
	assert.Empty(t, results)
}

func TestTaxAmount_Mismatch(t *testing.T) {
	inv := consistentInvoice()
	inv.Totals.TaxAmount = 20.00

	results := runRule(t, "math.totals.tax_amount", inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "13.00", results[0].Expected)
}

func TestGrandTotal_Mismatch(t *testing.T) {
	inv := consistentInvoice()
	inv.Totals.Total = 160.00

	results := runRule(t, "math.totals.total", inv)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "148.00", results[0].Expected)
	assert.Equal(t, "160.00", results[0].Actual)
}

func TestGrandTotal_ZeroTotalSkipped(t *testing.T) {
	inv := consistentInvoice()
	inv.Totals.Total = 0

	results := runRule(t, "math.totals.total", inv)
	assert.Empty(t, results)
}
