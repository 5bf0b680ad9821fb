package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
)

// hayHandler handles HTTP requests for the hay weight log.
type hayHandler struct {
	hayService portssvc.HaySvcFacade
}

func newHayHandler(hs portssvc.HaySvcFacade) *hayHandler {
	return &hayHandler{
		hayService: hs,
	}
}

// registerHayRoutes registers all hay record routes.
func registerHayRoutes(rg *gin.RouterGroup, hayService portssvc.HaySvcFacade) {
	h := newHayHandler(hayService)

	hay := rg.Group("/hay")
	{
		hay.POST("", h.saveHayRecord)
		hay.GET("/mine", h.listOwnHayRecords)
		hay.GET("", middleware.RequireAdmin(), h.listHayRecords)
	}
}

// saveHayRecord godoc
// @Summary Log harvested hay
// @Description Logs a harvested quantity for the logged-in worker. Date and time are assigned server-side.
// @Tags hay
// @Accept json
// @Produce json
// @Param record body dto.CreateHayRecordRequest true "Quantity in kilograms"
// @Success 201 "Created"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /hay [post]
func (h *hayHandler) saveHayRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateHayRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.hayService.SaveHayRecord(c.Request.Context(), workerID, req); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to save hay record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save hay record"})
		return
	}
	c.Status(http.StatusCreated)
}

// listOwnHayRecords godoc
// @Summary List the logged-in worker's hay records
// @Tags hay
// @Produce json
// @Success 200 {object} dto.ListHayRecordsResponse
// @Security BearerAuth
// @Router /hay/mine [get]
func (h *hayHandler) listOwnHayRecords(c *gin.Context) {
	workerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	records, err := h.hayService.WorkerHayRecords(c.Request.Context(), workerID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list own hay records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list hay records"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListHayRecordsResponse(records))
}

// listHayRecords godoc
// @Summary List hay records
// @Description Lists every hay record, optionally restricted to one worker.
// @Tags hay
// @Produce json
// @Param workerID query int false "Restrict to one worker"
// @Success 200 {object} dto.ListHayRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /hay [get]
func (h *hayHandler) listHayRecords(c *gin.Context) {
	var workerFilter *int64
	if raw := c.Query("workerID"); raw != "" {
		workerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || workerID <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid workerID parameter"})
			return
		}
		workerFilter = &workerID
	}

	records, err := h.hayService.HayRecords(c.Request.Context(), workerFilter)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list hay records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list hay records"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListHayRecordsResponse(records))
}
