package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
)

// activityHandler handles HTTP requests for the activity lifecycle.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{
		activityService: as,
	}
}

// registerActivityRoutes registers all activity routes.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	activities := rg.Group("/activities")
	{
		activities.POST("", h.startActivity)
		activities.GET("", h.listActivities)
		activities.GET("/history", h.activityHistory)
		activities.GET("/last", h.lastActivity)
		activities.GET("/location", h.userLocation)
		activities.GET("/:id", h.activityDetails)
		activities.POST("/:id/finalize", h.finalizeActivity)
		activities.POST("/:id/cancel", h.cancelActivity)
	}
}

// sessionRole returns the logged-in session's user id and role, aborting
// with 401 when the session is missing.
func sessionRole(c *gin.Context) (int64, domain.Role, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return 0, "", false
	}
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return 0, "", false
	}
	return userID, domain.Role(role), true
}

// startActivity godoc
// @Summary Start an activity
// @Description Opens an in-progress activity record for the logged-in worker.
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body dto.StartActivityRequest true "Activity details"
// @Success 201 {object} dto.StartActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "An activity of this type is already in progress"
// @Security BearerAuth
// @Router /activities [post]
func (h *activityHandler) startActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.StartActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	recordID, err := h.activityService.StartActivity(c.Request.Context(), workerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An activity of this type is already in progress"})
			return
		}
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to start activity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start activity"})
		return
	}

	c.JSON(http.StatusCreated, dto.StartActivityResponse{RecordID: recordID})
}

// finalizeActivity godoc
// @Summary Finalize an activity
// @Description Transitions an in-progress record to finalized, stamping the end time.
// @Tags activities
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param counters body dto.FinalizeActivityRequest true "Derived counters"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record is not in progress"
// @Security BearerAuth
// @Router /activities/{id}/finalize [post]
func (h *activityHandler) finalizeActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.FinalizeActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.activityService.FinalizeActivity(c.Request.Context(), recordID, req); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Activity record not found"})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Activity is not in progress"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to finalize activity", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to finalize activity"})
		return
	}

	detail, err := h.activityService.ActivityDetails(c.Request.Context(), recordID)
	if err != nil {
		logger.Error("Failed to reload activity after finalize", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve activity"})
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(detail))
}

// cancelActivity godoc
// @Summary Cancel an activity
// @Description Transitions an in-progress record to the cancelled terminal state.
// @Tags activities
// @Param id path int true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Record is not in progress"
// @Security BearerAuth
// @Router /activities/{id}/cancel [post]
func (h *activityHandler) cancelActivity(c *gin.Context) {
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.activityService.CancelActivity(c.Request.Context(), recordID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Activity record not found"})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Activity is not in progress"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to cancel activity", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to cancel activity"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listActivities godoc
// @Summary List activities
// @Description Lists activities in the given state. Administrators see all workers; workers see their own.
// @Tags activities
// @Produce json
// @Param state query string false "Lifecycle state" default(in_progress)
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	workerID, role, ok := sessionRole(c)
	if !ok {
		return
	}

	state := domain.ActivityState(c.DefaultQuery("state", string(domain.ActivityInProgress)))

	activities, err := h.activityService.ListActivities(c.Request.Context(), workerID, role, state)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list activities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list activities"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListActivitiesResponse(activities))
}

// activityHistory godoc
// @Summary List finalized activities
// @Tags activities
// @Produce json
// @Success 200 {object} dto.ListActivitiesResponse
// @Security BearerAuth
// @Router /activities/history [get]
func (h *activityHandler) activityHistory(c *gin.Context) {
	workerID, role, ok := sessionRole(c)
	if !ok {
		return
	}

	activities, err := h.activityService.ActivityHistory(c.Request.Context(), workerID, role)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list activity history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list activity history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListActivitiesResponse(activities))
}

// lastActivity godoc
// @Summary Get the most recent activity of a type
// @Description Returns the logged-in worker's most recent record for an activity type, optionally filtered by state.
// @Tags activities
// @Produce json
// @Param typeID query int true "Activity type ID"
// @Param state query string false "Lifecycle state filter"
// @Success 200 {object} dto.ActivityResponse
// @Success 204 "No matching record"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/last [get]
func (h *activityHandler) lastActivity(c *gin.Context) {
	workerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	typeID, err := strconv.ParseInt(c.Query("typeID"), 10, 64)
	if err != nil || typeID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid typeID parameter"})
		return
	}

	var state *domain.ActivityState
	if raw := c.Query("state"); raw != "" {
		s := domain.ActivityState(raw)
		state = &s
	}

	detail, err := h.activityService.LastActivity(c.Request.Context(), typeID, workerID, state)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to find last activity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to find last activity"})
		return
	}
	if detail == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(detail))
}

// activityDetails godoc
// @Summary Get activity details
// @Tags activities
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.ActivityResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [get]
func (h *activityHandler) activityDetails(c *gin.Context) {
	recordID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.activityService.ActivityDetails(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Activity record not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get activity details", slog.String("error", err.Error()), slog.Int64("record_id", recordID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve activity"})
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(detail))
}

// userLocation godoc
// @Summary Get the logged-in worker's assigned location
// @Tags activities
// @Produce json
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} ErrorResponse "No location assigned"
// @Security BearerAuth
// @Router /activities/location [get]
func (h *activityHandler) userLocation(c *gin.Context) {
	workerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	location, err := h.activityService.UserLocation(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No location assigned"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get user location", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve location"})
		return
	}
	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}
