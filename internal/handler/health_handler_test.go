package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docex/internal/config"
	"docex/internal/domain"
)

func testParserConfig() *config.ParserConfig {
	return &config.ParserConfig{
		Primary:  config.ParserProviderConfig{Provider: "openai", APIKey: "k"},
		Fallback: config.ParserProviderConfig{Provider: "gemini"},
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	env.statsRepo.On("GetStats", mock.Anything, false).
		Return(&domain.Stats{Orders: 12, Products: 504, Customers: 847}, nil)

	rec := doRequest(env, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.Contains(t, rec.Body.String(), "openai")
	assert.Contains(t, rec.Body.String(), "gemini")
	assert.Contains(t, rec.Body.String(), "\"orders\":12")
}

func TestHealth_StoreUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.statsRepo.On("GetStats", mock.Anything, false).
		Return(nil, errors.New("workbook missing"))

	rec := doRequest(env, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"available\":false")
}

func TestLLMStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := doRequest(env, http.MethodGet, "/api/llm/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "\"is_primary\":true")
}
