package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/attendance-service/internal/services"
	"github.com/SAP-F-2025/attendance-service/internal/utils"
)

type StatsHandler struct {
	BaseHandler
	service services.StatsService
}

func NewStatsHandler(service services.StatsService, logger utils.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetAdminStats returns school-wide totals and per-teacher student counts
// @Summary Admin statistics
// @Tags admin
// @Produce json
// @Success 200 {object} models.AdminStats
// @Failure 403 {object} ErrorResponse
// @Router /admin/stats [get]
func (h *StatsHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
