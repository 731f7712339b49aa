package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/config"
	"docex/internal/parser"
	"docex/internal/parser/gemini"
	"docex/internal/port"
)

func testConfig() *config.ParserProviderConfig {
	return &config.ParserProviderConfig{
		Provider: "gemini",
		APIKey:   "test-key",
	}
}

func testInput() port.ParseInput {
	return port.ParseInput{FileBytes: []byte("fake-image"), ContentType: "image/jpeg"}
}

func generateContentResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestParse_Success(t *testing.T) {
	invoiceJSON := `{"confidence":0.88,"header":{"invoice_number":"INV-7","date":"2024-02-20"},` +
		`"line_items":[{"quantity":1,"unit_price":25,"total":25}],"totals":{"subtotal":25,"total":25}}`

	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(generateContentResponse(invoiceJSON))
	}))
	defer srv.Close()

	p := gemini.NewParserWithEndpoint(testConfig(), srv.URL)
	out, err := p.Parse(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, "gemini", out.Provider)
	assert.Equal(t, "gemini-2.0-flash", out.ModelUsed)
	assert.Equal(t, 0.88, out.Confidence)
	assert.Equal(t, "INV-7", out.Invoice.Header.InvoiceNumber)

	genCfg, ok := gotReq["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
}

func TestParse_DefaultConfidenceWhenOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateContentResponse(`{"header":{"invoice_number":"INV-8"}}`))
	}))
	defer srv.Close()

	p := gemini.NewParserWithEndpoint(testConfig(), srv.URL)
	out, err := p.Parse(context.Background(), testInput())

	require.NoError(t, err)
	assert.Equal(t, 0.8, out.Confidence)
}

func TestParse_MissingAPIKey(t *testing.T) {
	p := gemini.NewParser(&config.ParserProviderConfig{Provider: "gemini"})
	_, err := p.Parse(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestParse_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := gemini.NewParserWithEndpoint(testConfig(), srv.URL)
	_, err := p.Parse(context.Background(), testInput())

	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Equal(t, "1m0s", rlErr.RetryAfter.String(), "missing Retry-After defaults to 60s")
}

func TestParse_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	p := gemini.NewParserWithEndpoint(testConfig(), srv.URL)
	_, err := p.Parse(context.Background(), testInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestParse_UnsupportedContentType(t *testing.T) {
	p := gemini.NewParserWithEndpoint(testConfig(), "http://unused")
	_, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("x"),
		ContentType: "text/plain",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}
