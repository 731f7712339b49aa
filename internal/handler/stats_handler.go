package handler

import (
	"github.com/gin-gonic/gin"

	"docex/internal/service"
)

// StatsHandler handles the workbook stats endpoint.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/database/stats
// @Summary Workbook statistics
// @Description Row counts and file status for the reference and extracted workbooks
// @Tags database
// @Produce json
// @Param extracted_only query string false "Count only the extracted workbook ('true' to enable)"
// @Success 200 {object} APIResponse{data=domain.Stats} "Aggregate counts"
// @Router /database/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	extractedOnly := c.Query("extracted_only") == "true"

	stats, err := h.stats.GetStats(c.Request.Context(), extractedOnly)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}
