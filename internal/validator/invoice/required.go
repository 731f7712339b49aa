package invoice

import (
	"context"

	"docex/internal/domain"
)

// requiredValidator checks that a field the downstream save path depends on
// is present in the extracted data.
type requiredValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	message   string
	present   func(*domain.ExtractedInvoice) bool
}

func (v *requiredValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredValidator) RuleName() string { return v.ruleName }

func (v *requiredValidator) Validate(_ context.Context, inv *domain.ExtractedInvoice) []Result {
	if v.present(inv) {
		return []Result{{Passed: true, FieldPath: v.fieldPath}}
	}
	return []Result{{FieldPath: v.fieldPath, Message: v.message}}
}

// RequiredValidators returns the presence rules.
func RequiredValidators() []Rule {
	return []Rule{
		&requiredValidator{
			ruleKey:   "required.header.invoice_number",
			ruleName:  "Invoice number present",
			fieldPath: "header.invoice_number",
			message:   "Missing invoice number",
			present: func(inv *domain.ExtractedInvoice) bool {
				return inv.Header.InvoiceNumber != ""
			},
		},
		&requiredValidator{
			ruleKey:   "required.header.date",
			ruleName:  "Invoice date present",
			fieldPath: "header.date",
			message:   "Missing invoice date",
			present: func(inv *domain.ExtractedInvoice) bool {
				return inv.Header.Date != ""
			},
		},
		&requiredValidator{
			ruleKey:   "required.line_items",
			ruleName:  "At least one line item",
			fieldPath: "line_items",
			message:   "No line items found",
			present: func(inv *domain.ExtractedInvoice) bool {
				return len(inv.LineItems) > 0
			},
		},
		&requiredValidator{
			ruleKey:   "required.totals.total",
			ruleName:  "Grand total present",
			fieldPath: "totals.total",
			message:   "Missing total amount",
			present: func(inv *domain.ExtractedInvoice) bool {
				return inv.Totals.Total != 0
			},
		},
	}
}
