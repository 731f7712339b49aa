package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/domain"
	"docex/internal/parser"
	"docex/internal/port"
)

// scriptedParser returns canned outputs or errors per call.
type scriptedParser struct {
	out   *port.ParseOutput
	err   error
	calls int
}

func (s *scriptedParser) Parse(context.Context, port.ParseInput) (*port.ParseOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func okOutput(provider string) *port.ParseOutput {
	return &port.ParseOutput{
		Invoice:    &domain.ExtractedInvoice{Confidence: 0.9},
		Confidence: 0.9,
		Provider:   provider,
	}
}

func TestFallback_PrimarySucceeds(t *testing.T) {
	primary := &scriptedParser{out: okOutput("openai")}
	secondary := &scriptedParser{out: okOutput("gemini")}
	fb := parser.NewFallbackParser(
		[]port.InvoiceParser{primary, secondary},
		[]string{"openai", "gemini"},
	)

	out, err := fb.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "openai", out.Provider)
	assert.Zero(t, secondary.calls)
}

func TestFallback_SecondaryPicksUpAfterPrimaryFailure(t *testing.T) {
	primary := &scriptedParser{err: errors.New("bad gateway")}
	secondary := &scriptedParser{out: okOutput("gemini")}
	fb := parser.NewFallbackParser(
		[]port.InvoiceParser{primary, secondary},
		[]string{"openai", "gemini"},
	)

	out, err := fb.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "gemini", out.Provider)
	assert.Equal(t, 1, primary.calls)
}

func TestFallback_AllFail(t *testing.T) {
	primary := &scriptedParser{err: errors.New("primary down")}
	secondary := &scriptedParser{err: errors.New("secondary down")}
	fb := parser.NewFallbackParser(
		[]port.InvoiceParser{primary, secondary},
		[]string{"openai", "gemini"},
	)

	_, err := fb.Parse(context.Background(), port.ParseInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAllProvidersFailed)
	assert.Contains(t, err.Error(), "primary down")
	assert.Contains(t, err.Error(), "secondary down")
}

func TestFallback_RateLimitOpensCircuit(t *testing.T) {
	primary := &scriptedParser{err: parser.NewRateLimitError("openai", errors.New("429"), 60)}
	secondary := &scriptedParser{out: okOutput("gemini")}
	fb := parser.NewFallbackParser(
		[]port.InvoiceParser{primary, secondary},
		[]string{"openai", "gemini"},
	)

	ctx := context.Background()
	_, err := fb.Parse(ctx, port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)

	// Circuit is open: the rate-limited provider is skipped entirely.
	_, err = fb.Parse(ctx, port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestFallback_Names(t *testing.T) {
	fb := parser.NewFallbackParser(
		[]port.InvoiceParser{&scriptedParser{}},
		[]string{"openai"},
	)
	assert.Equal(t, []string{"openai"}, fb.Names())
}
