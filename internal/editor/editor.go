// Package editor applies single-field edits to an extracted invoice and
// keeps the derived totals consistent. Edits are expressed as a typed set of
// operations rather than string paths, and every edit yields a fresh
// snapshot: the caller's invoice is never mutated.
package editor

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"docex/internal/domain"
)

// HeaderField names an editable scalar field of the invoice header.
type HeaderField string

const (
	HeaderInvoiceNumber HeaderField = "invoice_number"
	HeaderDate          HeaderField = "date"
	HeaderCustomerID    HeaderField = "customer_id"
	HeaderCompanyName   HeaderField = "company_name"
)

// AddressSection selects one of the two header address blocks.
type AddressSection string

const (
	BillTo AddressSection = "bill_to"
	ShipTo AddressSection = "ship_to"
)

// AddressField names an editable field of an address block.
type AddressField string

const (
	AddressName    AddressField = "name"
	AddressStreet  AddressField = "address"
	AddressCity    AddressField = "city"
	AddressState   AddressField = "state"
	AddressZip     AddressField = "zip"
)

// LineItemField names an editable field of a line item. Total is derived
// and cannot be edited directly.
type LineItemField string

const (
	LineItemNumber      LineItemField = "item_number"
	LineItemDescription LineItemField = "description"
	LineItemQuantity    LineItemField = "quantity"
	LineItemUnitPrice   LineItemField = "unit_price"
)

// TotalsField names an editable externally-supplied totals field. The
// derived fields (subtotal, tax amount, grand total) cannot be edited.
type TotalsField string

const (
	TotalsTaxRate  TotalsField = "tax_rate"
	TotalsShipping TotalsField = "shipping"
	TotalsOther    TotalsField = "other"
)

// AdditionalField names an editable field of the additional-info block.
type AdditionalField string

const (
	AdditionalSalesperson AdditionalField = "salesperson"
	AdditionalPONumber    AdditionalField = "po_number"
	AdditionalShipDate    AdditionalField = "ship_date"
	AdditionalShipVia     AdditionalField = "ship_via"
	AdditionalTerms       AdditionalField = "terms"
	AdditionalFOB         AdditionalField = "fob"
)

// Op is one edit operation. The concrete types form a closed set dispatched
// by Apply.
type Op interface {
	isOp()
}

// HeaderFieldEdit sets a scalar header field verbatim.
type HeaderFieldEdit struct {
	Field HeaderField
	Value string
}

// AddressFieldEdit sets one field of a bill-to or ship-to block verbatim.
type AddressFieldEdit struct {
	Section AddressSection
	Field   AddressField
	Value   string
}

// LineItemFieldEdit sets one field of the line item at Index. Quantity and
// unit-price edits trigger a full recompute of derived totals.
type LineItemFieldEdit struct {
	Index int
	Field LineItemField
	Value string
}

// TotalsFieldEdit sets an externally-supplied totals field verbatim.
type TotalsFieldEdit struct {
	Field TotalsField
	Value string
}

// AdditionalFieldEdit sets an additional-info field verbatim.
type AdditionalFieldEdit struct {
	Field AdditionalField
	Value string
}

func (HeaderFieldEdit) isOp()     {}
func (AddressFieldEdit) isOp()    {}
func (LineItemFieldEdit) isOp()   {}
func (TotalsFieldEdit) isOp()     {}
func (AdditionalFieldEdit) isOp() {}

// Apply returns a new invoice snapshot with op applied. Quantity or
// unit-price edits recompute the line's total and the order's subtotal,
// tax amount, and grand total together. Non-numeric input for a numeric
// field parses to zero so totals stay well-defined.
func Apply(inv domain.ExtractedInvoice, op Op) (domain.ExtractedInvoice, error) {
	next := clone(inv)

	switch e := op.(type) {
	case HeaderFieldEdit:
		switch e.Field {
		case HeaderInvoiceNumber:
			next.Header.InvoiceNumber = e.Value
		case HeaderDate:
			next.Header.Date = e.Value
		case HeaderCustomerID:
			next.Header.CustomerID = e.Value
		case HeaderCompanyName:
			next.Header.CompanyName = e.Value
		default:
			return inv, fmt.Errorf("unknown header field: %q", e.Field)
		}

	case AddressFieldEdit:
		var addr *domain.Address
		switch e.Section {
		case BillTo:
			addr = &next.Header.BillTo
		case ShipTo:
			addr = &next.Header.ShipTo
		default:
			return inv, fmt.Errorf("unknown address section: %q", e.Section)
		}
		switch e.Field {
		case AddressName:
			addr.Name = e.Value
		case AddressStreet:
			addr.Address = e.Value
		case AddressCity:
			addr.City = e.Value
		case AddressState:
			addr.State = e.Value
		case AddressZip:
			addr.Zip = e.Value
		default:
			return inv, fmt.Errorf("unknown address field: %q", e.Field)
		}

	case LineItemFieldEdit:
		if e.Index < 0 || e.Index >= len(next.LineItems) {
			return inv, fmt.Errorf("line item index %d out of range", e.Index)
		}
		item := &next.LineItems[e.Index]
		switch e.Field {
		case LineItemNumber:
			item.ItemNumber = e.Value
		case LineItemDescription:
			item.Description = e.Value
		case LineItemQuantity:
			item.Quantity = parseQuantity(e.Value)
			recalculate(&next, e.Index)
		case LineItemUnitPrice:
			item.UnitPrice = parseMoney(e.Value)
			recalculate(&next, e.Index)
		default:
			return inv, fmt.Errorf("unknown line item field: %q", e.Field)
		}

	case TotalsFieldEdit:
		switch e.Field {
		case TotalsTaxRate:
			next.Totals.TaxRate = parseMoney(e.Value)
		case TotalsShipping:
			next.Totals.Shipping = parseMoney(e.Value)
		case TotalsOther:
			next.Totals.Other = parseMoney(e.Value)
		default:
			return inv, fmt.Errorf("unknown totals field: %q", e.Field)
		}

	case AdditionalFieldEdit:
		switch e.Field {
		case AdditionalSalesperson:
			next.AdditionalInfo.Salesperson = e.Value
		case AdditionalPONumber:
			next.AdditionalInfo.PONumber = e.Value
		case AdditionalShipDate:
			next.AdditionalInfo.ShipDate = e.Value
		case AdditionalShipVia:
			next.AdditionalInfo.ShipVia = e.Value
		case AdditionalTerms:
			next.AdditionalInfo.Terms = e.Value
		case AdditionalFOB:
			next.AdditionalInfo.FOB = e.Value
		default:
			return inv, fmt.Errorf("unknown additional field: %q", e.Field)
		}

	default:
		return inv, fmt.Errorf("unknown edit operation: %T", op)
	}

	return next, nil
}

// recalculate recomputes the edited line's total and the four derived
// totals fields together, rounding money to two decimal places.
func recalculate(inv *domain.ExtractedInvoice, lineIdx int) {
	item := &inv.LineItems[lineIdx]
	qty := decimal.NewFromInt(int64(item.Quantity))
	price := decimal.NewFromFloat(item.UnitPrice)
	item.Total = round2(qty.Mul(price))

	subtotal := decimal.Zero
	for _, li := range inv.LineItems {
		subtotal = subtotal.Add(decimal.NewFromFloat(li.Total))
	}
	inv.Totals.Subtotal = round2(subtotal)

	rate := decimal.NewFromFloat(inv.Totals.TaxRate)
	tax := subtotal.Mul(rate).Div(decimal.NewFromInt(100))
	inv.Totals.TaxAmount = round2(tax)

	shipping := decimal.NewFromFloat(inv.Totals.Shipping)
	other := decimal.NewFromFloat(inv.Totals.Other)
	inv.Totals.Total = round2(subtotal.Add(tax).Add(shipping).Add(other))
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// clone deep-copies an invoice so edits never reach the original snapshot.
func clone(inv domain.ExtractedInvoice) domain.ExtractedInvoice {
	next := inv
	next.LineItems = make([]domain.LineItem, len(inv.LineItems))
	copy(next.LineItems, inv.LineItems)
	return next
}

func parseQuantity(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseMoney(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
