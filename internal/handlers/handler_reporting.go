package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for the combined reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting routes, administrators only.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports", middleware.RequireAdmin())
	{
		reports.GET("/daily-combined", h.dailyCombinedReport)
	}
}

// dailyCombinedReport godoc
// @Summary Daily combined report
// @Description Returns finalized worker activities joined with matching hay quantities, ready for spreadsheet export.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DailyCombinedReportResponse
// @Security BearerAuth
// @Router /reports/daily-combined [get]
func (h *reportingHandler) dailyCombinedReport(c *gin.Context) {
	records, err := h.reportingService.DailyCombinedReport(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to build daily combined report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyCombinedReportResponse(records))
}
