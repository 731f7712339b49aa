package validator

import (
	"context"

	"docex/internal/domain"
	"docex/internal/validator/invoice"
)

// Registry holds the active validation rules.
type Registry struct {
	rules []invoice.Rule
}

// NewRegistry creates a Registry seeded with the built-in invoice rules.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, v := range invoice.RequiredValidators() {
		r.Register(v)
	}
	for _, v := range invoice.MathValidators() {
		r.Register(v)
	}
	return r
}

// Register adds a rule to the registry.
func (r *Registry) Register(v invoice.Rule) {
	r.rules = append(r.rules, v)
}

// All returns the registered rules in registration order.
func (r *Registry) All() []invoice.Rule {
	return r.rules
}

// Run executes every registered rule against an extracted invoice and
// flattens failures into human-readable issues. Validation is advisory:
// callers surface the issues but never block on them.
func (r *Registry) Run(ctx context.Context, inv *domain.ExtractedInvoice) (bool, []string, []invoice.Result) {
	var all []invoice.Result
	var issues []string
	for _, v := range r.rules {
		for _, res := range v.Validate(ctx, inv) {
			all = append(all, res)
			if !res.Passed {
				issues = append(issues, res.Message)
			}
		}
	}
	return len(issues) == 0, issues, all
}
