package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/velopix/pix_backend/internal/core/ports/services"
	"github.com/velopix/pix_backend/internal/dto"
	"github.com/velopix/pix_backend/internal/middleware"
)

// statisticsHandler handles HTTP requests for aggregate reporting.
type statisticsHandler struct {
	statisticsService portssvc.StatisticsSvcFacade
}

// newStatisticsHandler creates a new statisticsHandler.
func newStatisticsHandler(ss portssvc.StatisticsSvcFacade) *statisticsHandler {
	return &statisticsHandler{
		statisticsService: ss,
	}
}

// registerStatisticsRoutes registers the statistics route.
func registerStatisticsRoutes(rg *gin.RouterGroup, statisticsService portssvc.StatisticsSvcFacade) {
	h := newStatisticsHandler(statisticsService)
	rg.GET("/statistics", h.getStatistics)
}

// getStatistics godoc
// @Summary Get aggregate statistics
// @Description Derives counts and volume aggregates from a single consistent view of the state
// @Tags statistics
// @Produce  json
// @Success 200 {object} dto.StatisticsResponse
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Router /statistics [get]
func (h *statisticsHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.statisticsService.ComputeStatistics(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}
