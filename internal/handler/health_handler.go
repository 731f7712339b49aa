package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docex/internal/config"
	"docex/internal/parser"
	"docex/internal/service"
)

// HealthHandler handles liveness and provider status endpoints.
type HealthHandler struct {
	parserCfg *config.ParserConfig
	stats     *service.StatsService
	providers []string
}

// NewHealthHandler creates a new HealthHandler. providers is the ordered
// list of active parser names.
func NewHealthHandler(parserCfg *config.ParserConfig, stats *service.StatsService, providers []string) *HealthHandler {
	return &HealthHandler{parserCfg: parserCfg, stats: stats, providers: providers}
}

// Healthz handles GET /healthz. It is the bare liveness probe and bypasses
// the response envelope.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health handles GET /api/health
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} APIResponse "Service status, active providers and store counts"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"providers": h.providers,
	}
	if stats, err := h.stats.GetStats(c.Request.Context(), false); err != nil {
		body["database"] = gin.H{"available": false}
	} else {
		body["database"] = stats
	}
	RespondOK(c, body)
}

// LLMStatus handles GET /api/llm/status
// @Summary LLM provider status
// @Description Report which extraction providers are configured and which is primary
// @Tags health
// @Produce json
// @Success 200 {object} APIResponse "Per-provider configuration status"
// @Router /llm/status [get]
func (h *HealthHandler) LLMStatus(c *gin.Context) {
	RespondOK(c, parser.StatusReport(h.parserCfg))
}
