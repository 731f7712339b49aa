package parser

import (
	"fmt"

	"docex/internal/config"
	"docex/internal/port"
)

// ProviderFactory is a function that creates an InvoiceParser from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.InvoiceParser, error)

// registry of parser provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewParser creates an InvoiceParser from a provider config using the registered factory.
func NewParser(cfg *config.ParserProviderConfig) (port.InvoiceParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// ProviderStatus reports whether a provider is usable.
type ProviderStatus struct {
	Configured bool `json:"configured"`
	IsPrimary  bool `json:"is_primary"`
}

// StatusReport summarizes configured providers for the llm status endpoint.
func StatusReport(cfg *config.ParserConfig) map[string]ProviderStatus {
	report := map[string]ProviderStatus{
		cfg.Primary.Provider: {
			Configured: cfg.Primary.APIKey != "",
			IsPrimary:  true,
		},
	}
	if fb := cfg.FallbackConfig(); fb != nil {
		report[fb.Provider] = ProviderStatus{Configured: fb.APIKey != ""}
	}
	return report
}
