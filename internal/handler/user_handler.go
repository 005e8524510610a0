package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"desaweb/internal/auth"
	"desaweb/internal/service"
)

// UserHandler bundles the admin account endpoints.
type UserHandler struct {
	svc service.UserService
	log *zap.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// ChangePasswordRequest carries a new password.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body service.CreateUserInput true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var in service.CreateUserInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor := auth.PrincipalFrom(c)
	if actor == nil {
		return echo.ErrUnauthorized
	}
	if err := h.svc.Delete(c.Request().Context(), actor.ID, id); err != nil {
		return fail(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword godoc
// @Summary Set a user's password
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body ChangePasswordRequest true "New password"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.ChangePassword(c.Request().Context(), id, req.Password); err != nil {
		return fail(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
