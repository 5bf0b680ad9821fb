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

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	// Self-service routes for the logged-in user
	me := rg.Group("/me")
	{
		me.GET("", h.getOwnProfile)
		me.PUT("/username", h.updateOwnUsername)
		me.PUT("/password", h.updateOwnPassword)
	}

	// Management routes, administrators only
	users := rg.Group("/users", middleware.RequireAdmin())
	{
		users.POST("", h.registerWorker)
		users.GET("", h.listUsers)
		users.GET("/workers", h.listWorkers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateWorker)
		users.DELETE("/:id", h.deleteWorker)
		users.GET("/exists/username/:username", h.usernameExists)
		users.GET("/exists/identification/:identification", h.identificationExists)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// registerWorker godoc
// @Summary Register a new user
// @Description Creates a new user account. Role defaults to worker.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.RegisterWorkerRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or identification already in use"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) registerWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for register request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.RegisterWorker(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username or identification already in use"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List all users
// @Description Lists every user with worked-hours and hay-collected totals.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// listWorkers godoc
// @Summary List workers
// @Description Lists worker-role users with worked-hours and hay-collected totals.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Security BearerAuth
// @Router /users/workers [get]
func (h *userHandler) listWorkers(c *gin.Context) {
	workers, err := h.userService.ListWorkers(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list workers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list workers"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(workers))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get user", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateWorker godoc
// @Summary Update a worker
// @Description Applies an administrator edit to a worker's profile.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.UpdateWorkerRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.userService.UpdateWorker(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Worker not found"})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Identification already in use"})
			return
		}
		logger.Error("Failed to update worker", slog.String("error", err.Error()), slog.Int64("worker_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update worker"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to reload worker after update", slog.String("error", err.Error()), slog.Int64("worker_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve worker"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteWorker godoc
// @Summary Delete a worker
// @Description Removes the worker and all dependent hay and activity records.
// @Tags users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteWorker(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteWorker(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Worker not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to delete worker", slog.String("error", err.Error()), slog.Int64("worker_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete worker"})
		return
	}
	c.Status(http.StatusNoContent)
}

// usernameExists godoc
// @Summary Check username availability
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.ExistsResponse
// @Security BearerAuth
// @Router /users/exists/username/{username} [get]
func (h *userHandler) usernameExists(c *gin.Context) {
	exists, err := h.userService.UsernameExists(c.Request.Context(), c.Param("username"))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to check username", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check username"})
		return
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// identificationExists godoc
// @Summary Check identification availability
// @Tags users
// @Produce json
// @Param identification path string true "Identification"
// @Success 200 {object} dto.ExistsResponse
// @Security BearerAuth
// @Router /users/exists/identification/{identification} [get]
func (h *userHandler) identificationExists(c *gin.Context) {
	exists, err := h.userService.IdentificationExists(c.Request.Context(), c.Param("identification"))
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to check identification", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check identification"})
		return
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// getOwnProfile godoc
// @Summary Get the logged-in user's profile
// @Tags me
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getOwnProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get own profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateOwnUsername godoc
// @Summary Change the logged-in user's username
// @Tags me
// @Accept json
// @Produce json
// @Param request body dto.UpdateUsernameRequest true "New username"
// @Success 200 {object} dto.ChangedResponse
// @Failure 409 {object} ErrorResponse "Username already in use"
// @Security BearerAuth
// @Router /me/username [put]
func (h *userHandler) updateOwnUsername(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	changed, err := h.userService.UpdateUsername(c.Request.Context(), userID, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username already in use"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to update username", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update username"})
		return
	}
	c.JSON(http.StatusOK, dto.ChangedResponse{Changed: changed})
}

// updateOwnPassword godoc
// @Summary Change the logged-in user's password
// @Tags me
// @Accept json
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "New password"
// @Success 200 {object} dto.ChangedResponse
// @Security BearerAuth
// @Router /me/password [put]
func (h *userHandler) updateOwnPassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	changed, err := h.userService.UpdatePassword(c.Request.Context(), userID, req.Password)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to update password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, dto.ChangedResponse{Changed: changed})
}
