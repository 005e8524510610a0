package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"desaweb/internal/model"
	"desaweb/internal/service"
)

// ProfileHandler serves the village profile.
type ProfileHandler struct {
	svc service.ProfileService
	log *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(svc service.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: log}
}

// Get godoc
// @Summary Village profile
// @Tags profile
// @Produce json
// @Success 200 {object} model.VillageProfile
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Update godoc
// @Summary Update village profile
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VillageProfile true "Profile"
// @Success 200 {object} model.VillageProfile
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var p model.VillageProfile
	if err := bindAndValidate(c, &p); err != nil {
		return err
	}
	saved, err := h.svc.Update(c.Request().Context(), &p)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, saved)
}
