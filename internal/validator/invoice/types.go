package invoice

import (
	"context"

	"docex/internal/domain"
)

// Rule is a single built-in validation rule.
type Rule interface {
	Validate(ctx context.Context, inv *domain.ExtractedInvoice) []Result
	RuleKey() string
	RuleName() string
}

// Result is the outcome of one rule against one field.
type Result struct {
	Passed    bool   `json:"passed"`
	FieldPath string `json:"field_path"`
	Expected  string `json:"expected_value,omitempty"`
	Actual    string `json:"actual_value,omitempty"`
	Message   string `json:"message"`
}
