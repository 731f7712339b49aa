package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/config"
	"docex/internal/parser"
	"docex/internal/port"
)

type stubParser struct {
	model string
}

func (s *stubParser) Parse(context.Context, port.ParseInput) (*port.ParseOutput, error) {
	return &port.ParseOutput{ModelUsed: s.model}, nil
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.InvoiceParser, error) {
		return &stubParser{model: cfg.DefaultModel}, nil
	})

	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestFactory_UnknownProvider(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider: "nonexistent-provider-xyz",
	})

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

func TestStatusReport(t *testing.T) {
	cfg := &config.ParserConfig{
		Primary:  config.ParserProviderConfig{Provider: "openai", APIKey: "k"},
		Fallback: config.ParserProviderConfig{Provider: "gemini"},
	}

	report := parser.StatusReport(cfg)
	require.Len(t, report, 2)
	assert.True(t, report["openai"].Configured)
	assert.True(t, report["openai"].IsPrimary)
	assert.False(t, report["gemini"].Configured)
	assert.False(t, report["gemini"].IsPrimary)
}

func TestStatusReport_NoFallback(t *testing.T) {
	cfg := &config.ParserConfig{
		Primary: config.ParserProviderConfig{Provider: "openai"},
	}

	report := parser.StatusReport(cfg)
	require.Len(t, report, 1)
	assert.False(t, report["openai"].Configured)
}
