package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/logging"
	"photoshare/internal/service"
)

// UserHandler serves user lookups.
type UserHandler struct {
	svc service.UserService
	log logging.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/list [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user's profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.UserProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, user.Profile())
}
