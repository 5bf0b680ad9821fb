package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
)

// locationHandler handles HTTP requests related to locations and machines.
type locationHandler struct {
	locationService portssvc.LocationSvcFacade
}

func newLocationHandler(ls portssvc.LocationSvcFacade) *locationHandler {
	return &locationHandler{
		locationService: ls,
	}
}

// registerLocationRoutes registers all location and machine routes. Reads
// are available to every authenticated user; writes are administrator only.
func registerLocationRoutes(rg *gin.RouterGroup, locationService portssvc.LocationSvcFacade) {
	h := newLocationHandler(locationService)

	locations := rg.Group("/locations")
	{
		locations.GET("", h.listLocations)
		locations.POST("", middleware.RequireAdmin(), h.addLocation)
		locations.DELETE("/:id", middleware.RequireAdmin(), h.deleteLocation)
	}

	machines := rg.Group("/machines")
	{
		machines.GET("", h.listMachines)
	}
}

// listLocations godoc
// @Summary List locations
// @Description Lists every location with its machine and area.
// @Tags locations
// @Produce json
// @Success 200 {object} dto.ListLocationsResponse
// @Security BearerAuth
// @Router /locations [get]
func (h *locationHandler) listLocations(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list locations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list locations"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListLocationsResponse(locations))
}

// addLocation godoc
// @Summary Add a location
// @Tags locations
// @Accept json
// @Produce json
// @Param location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations [post]
func (h *locationHandler) addLocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	location, err := h.locationService.AddLocation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to add location", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add location"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// deleteLocation godoc
// @Summary Delete a location
// @Description Fails while any user or activity record references the location.
// @Tags locations
// @Param id path int true "Location ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Location is in use"
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (h *locationHandler) deleteLocation(c *gin.Context) {
	locationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), locationID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Location is referenced by users or activity records"})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Location not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to delete location", slog.String("error", err.Error()), slog.Int64("location_id", locationID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete location"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listMachines godoc
// @Summary List machines
// @Tags machines
// @Produce json
// @Success 200 {object} dto.ListMachinesResponse
// @Security BearerAuth
// @Router /machines [get]
func (h *locationHandler) listMachines(c *gin.Context) {
	machines, err := h.locationService.ListMachines(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list machines", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list machines"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListMachinesResponse(machines))
}
