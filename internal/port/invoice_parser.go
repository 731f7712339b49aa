package port

import (
	"context"

	"docex/internal/domain"
)

// ParseInput carries an invoice image into a parser.
type ParseInput struct {
	FileBytes   []byte
	ContentType string
}

// ParseOutput is the result of a successful parse.
type ParseOutput struct {
	Invoice    *domain.ExtractedInvoice
	Confidence float64
	Provider   string
	ModelUsed  string
}

// InvoiceParser extracts structured invoice data from a document image.
type InvoiceParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
