package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/domain"
	"docex/internal/editor"
)

func sampleInvoice() domain.ExtractedInvoice {
	return domain.ExtractedInvoice{
		Confidence: 0.9,
		Header: domain.InvoiceHeader{
			InvoiceNumber: "INV-100",
			Date:          "2024-03-01",
			CustomerID:    "29825",
			CompanyName:   "Contoso",
		},
		LineItems: []domain.LineItem{
			{ItemNumber: "BK-1", Description: "Road bike", Quantity: 2, UnitPrice: 50.00, Total: 100.00},
			{ItemNumber: "HL-2", Description: "Helmet", Quantity: 1, UnitPrice: 25.00, Total: 25.00},
		},
		Totals: domain.Totals{
			Subtotal:  125.00,
			TaxRate:   8,
			TaxAmount: 10.00,
			Shipping:  5.00,
			Total:     140.00,
		},
	}
}

func TestApply_QuantityEditRecomputesTotals(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.LineItemFieldEdit{
		Index: 0,
		Field: editor.LineItemQuantity,
		Value: "3",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, next.LineItems[0].Quantity)
	assert.Equal(t, 150.00, next.LineItems[0].Total)
	assert.Equal(t, 175.00, next.Totals.Subtotal)
	assert.Equal(t, 14.00, next.Totals.TaxAmount)
	assert.Equal(t, 194.00, next.Totals.Total)
}

func TestApply_UnitPriceEditRecomputesTotals(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.LineItemFieldEdit{
		Index: 1,
		Field: editor.LineItemUnitPrice,
		Value: "30.50",
	})
	require.NoError(t, err)

	assert.Equal(t, 30.50, next.LineItems[1].UnitPrice)
	assert.Equal(t, 30.50, next.LineItems[1].Total)
	assert.Equal(t, 130.50, next.Totals.Subtotal)
	assert.Equal(t, 10.44, next.Totals.TaxAmount)
	assert.Equal(t, 145.94, next.Totals.Total)
}

func TestApply_NonNumericQuantityParsesToZero(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.LineItemFieldEdit{
		Index: 0,
		Field: editor.LineItemQuantity,
		Value: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, next.LineItems[0].Quantity)
	assert.Equal(t, 0.00, next.LineItems[0].Total)
	assert.Equal(t, 25.00, next.Totals.Subtotal)
}

func TestApply_DescriptionEditDoesNotRecompute(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.LineItemFieldEdit{
		Index: 0,
		Field: editor.LineItemDescription,
		Value: "Mountain bike",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mountain bike", next.LineItems[0].Description)
	assert.Equal(t, inv.Totals, next.Totals)
	assert.Equal(t, 100.00, next.LineItems[0].Total)
}

func TestApply_TaxRateEditIsVerbatim(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.TotalsFieldEdit{
		Field: editor.TotalsTaxRate,
		Value: "10",
	})
	require.NoError(t, err)

	// The rate changes but derived amounts only move on the next line edit.
	assert.Equal(t, 10.00, next.Totals.TaxRate)
	assert.Equal(t, 10.00, next.Totals.TaxAmount)
	assert.Equal(t, 140.00, next.Totals.Total)
}

func TestApply_TaxRateThenQuantityEditUsesNewRate(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.TotalsFieldEdit{Field: editor.TotalsTaxRate, Value: "10"})
	require.NoError(t, err)
	next, err = editor.Apply(next, editor.LineItemFieldEdit{
		Index: 0,
		Field: editor.LineItemQuantity,
		Value: "2",
	})
	require.NoError(t, err)

	assert.Equal(t, 125.00, next.Totals.Subtotal)
	assert.Equal(t, 12.50, next.Totals.TaxAmount)
	assert.Equal(t, 142.50, next.Totals.Total)
}

func TestApply_HeaderAndAddressEdits(t *testing.T) {
	inv := sampleInvoice()

	next, err := editor.Apply(inv, editor.HeaderFieldEdit{
		Field: editor.HeaderInvoiceNumber,
		Value: "INV-200",
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-200", next.Header.InvoiceNumber)

	next, err = editor.Apply(next, editor.AddressFieldEdit{
		Section: editor.BillTo,
		Field:   editor.AddressCity,
		Value:   "Seattle",
	})
	require.NoError(t, err)
	assert.Equal(t, "Seattle", next.Header.BillTo.City)
	assert.Empty(t, next.Header.ShipTo.City)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	inv := sampleInvoice()

	_, err := editor.Apply(inv, editor.LineItemFieldEdit{
		Index: 0,
		Field: editor.LineItemQuantity,
		Value: "99",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, inv.LineItems[0].Quantity)
	assert.Equal(t, 100.00, inv.LineItems[0].Total)
	assert.Equal(t, 125.00, inv.Totals.Subtotal)
}

func TestApply_IndexOutOfRange(t *testing.T) {
	inv := sampleInvoice()

	_, err := editor.Apply(inv, editor.LineItemFieldEdit{
		Index: 5,
		Field: editor.LineItemQuantity,
		Value: "1",
	})
	assert.Error(t, err)

	_, err = editor.Apply(inv, editor.LineItemFieldEdit{
		Index: -1,
		Field: editor.LineItemQuantity,
		Value: "1",
	})
	assert.Error(t, err)
}

func TestApply_UnknownField(t *testing.T) {
	inv := sampleInvoice()

	_, err := editor.Apply(inv, editor.HeaderFieldEdit{Field: "nope", Value: "x"})
	assert.Error(t, err)

	_, err = editor.Apply(inv, editor.TotalsFieldEdit{Field: "subtotal", Value: "1"})
	assert.Error(t, err)
}
