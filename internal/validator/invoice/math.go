package invoice

import (
	"context"
	"fmt"
	"math"

	"docex/internal/domain"
)

// relTolerance allows 1% relative drift to absorb rounding in the source document.
const relTolerance = 0.01

// mathValidator checks one arithmetic relationship between invoice fields.
type mathValidator struct {
	ruleKey  string
	ruleName string
	validate func(*domain.ExtractedInvoice) []Result
}

func (v *mathValidator) RuleKey() string  { return v.ruleKey }
func (v *mathValidator) RuleName() string { return v.ruleName }

func (v *mathValidator) Validate(_ context.Context, inv *domain.ExtractedInvoice) []Result {
	return v.validate(inv)
}

func approxEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= 0.01 {
		return true
	}
	base := math.Max(math.Abs(a), math.Abs(b))
	return diff/base <= relTolerance
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// MathValidators returns the arithmetic consistency rules.
func MathValidators() []Rule {
	return []Rule{
		&mathValidator{
			ruleKey:  "math.line_item.total",
			ruleName: "Line item total equals quantity × unit price",
			validate: func(inv *domain.ExtractedInvoice) []Result {
				results := make([]Result, 0, len(inv.LineItems))
				for i, item := range inv.LineItems {
					expected := float64(item.Quantity) * item.UnitPrice
					path := fmt.Sprintf("line_items[%d].total", i)
					if expected > 0 && !approxEqual(item.Total, expected) {
						results = append(results, Result{
							FieldPath: path,
							Expected:  money(expected),
							Actual:    money(item.Total),
							Message: fmt.Sprintf("Line item %d: math mismatch (qty=%d × price=%.2f ≠ total=%.2f)",
								i+1, item.Quantity, item.UnitPrice, item.Total),
						})
						continue
					}
					results = append(results, Result{Passed: true, FieldPath: path})
				}
				return results
			},
		},
		&mathValidator{
			ruleKey:  "math.totals.subtotal",
			ruleName: "Subtotal equals sum of line totals",
			validate: func(inv *domain.ExtractedInvoice) []Result {
				if len(inv.LineItems) == 0 {
					return nil
				}
				var sum float64
				for _, item := range inv.LineItems {
					sum += item.Total
				}
				if !approxEqual(inv.Totals.Subtotal, sum) {
					return []Result{{
						FieldPath: "totals.subtotal",
						Expected:  money(sum),
						Actual:    money(inv.Totals.Subtotal),
						Message: fmt.Sprintf("Subtotal mismatch (sum of lines=%.2f ≠ subtotal=%.2f)",
							sum, inv.Totals.Subtotal),
					}}
				}
				return []Result{{Passed: true, FieldPath: "totals.subtotal"}}
			},
		},
		&mathValidator{
			ruleKey:  "math.totals.tax_amount",
			ruleName: "Tax amount equals subtotal × tax rate",
			validate: func(inv *domain.ExtractedInvoice) []Result {
				if inv.Totals.TaxRate == 0 {
					return nil
				}
				expected := inv.Totals.Subtotal * inv.Totals.TaxRate / 100
				if !approxEqual(inv.Totals.TaxAmount, expected) {
					return []Result{{
						FieldPath: "totals.tax_amount",
						Expected:  money(expected),
						Actual:    money(inv.Totals.TaxAmount),
						Message: fmt.Sprintf("Tax amount mismatch (subtotal=%.2f × rate=%.3f%% ≠ tax=%.2f)",
							inv.Totals.Subtotal, inv.Totals.TaxRate, inv.Totals.TaxAmount),
					}}
				}
				return []Result{{Passed: true, FieldPath: "totals.tax_amount"}}
			},
		},
		&mathValidator{
			ruleKey:  "math.totals.total",
			ruleName: "Grand total equals subtotal + tax + shipping + other",
			validate: func(inv *domain.ExtractedInvoice) []Result {
				if inv.Totals.Total == 0 {
					return nil
				}
				expected := inv.Totals.Subtotal + inv.Totals.TaxAmount + inv.Totals.Shipping + inv.Totals.Other
				if !approxEqual(inv.Totals.Total, expected) {
					return []Result{{
						FieldPath: "totals.total",
						Expected:  money(expected),
						Actual:    money(inv.Totals.Total),
						Message: fmt.Sprintf("Grand total mismatch (subtotal+tax+shipping+other=%.2f ≠ total=%.2f)",
							expected, inv.Totals.Total),
					}}
				}
				return []Result{{Passed: true, FieldPath: "totals.total"}}
			},
		},
	}
}
