package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"docex/internal/domain"
	"docex/internal/port"
)

// defaultConfidence is assumed when the model omits its self-assessment.
const defaultConfidence = 0.8

// DecodeInvoiceJSON decodes a model's text output into an ExtractedInvoice,
// tolerating markdown code fences around the JSON body.
func DecodeInvoiceJSON(text, provider, model string) (*port.ParseOutput, error) {
	cleaned := StripCodeFences(text)

	var inv domain.ExtractedInvoice
	if err := json.Unmarshal([]byte(cleaned), &inv); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(cleaned, 500))
	}

	if inv.Confidence == 0 {
		inv.Confidence = defaultConfidence
	}

	return &port.ParseOutput{
		Invoice:    &inv,
		Confidence: inv.Confidence,
		Provider:   provider,
		ModelUsed:  model,
	}, nil
}

// StripCodeFences removes a surrounding ```json ... ``` or ``` ... ``` block.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
