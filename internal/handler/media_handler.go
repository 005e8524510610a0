package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"desaweb/internal/service"
)

// MediaHandler handles media endpoints.
type MediaHandler struct {
	svc service.MediaService
	log *zap.Logger
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(svc service.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{svc: svc, log: log}
}

// List godoc
// @Summary List media of a published entity
// @Tags media
// @Produce json
// @Param entityType path string true "news, event, gallery, tourism, umkm or profile"
// @Param entityId path int true "Entity ID"
// @Success 200 {array} model.Media
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /media/{entityType}/{entityId} [get]
func (h *MediaHandler) List(c echo.Context) error {
	return h.list(c, true)
}

// AdminList godoc
// @Summary List media of an entity, drafts included
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param entityType path string true "news, event, gallery, tourism, umkm or profile"
// @Param entityId path int true "Entity ID"
// @Success 200 {array} model.Media
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/media/{entityType}/{entityId} [get]
func (h *MediaHandler) AdminList(c echo.Context) error {
	return h.list(c, false)
}

func (h *MediaHandler) list(c echo.Context, publicOnly bool) error {
	entityID, err := pathID(c, "entityId")
	if err != nil {
		return err
	}
	items, err := h.svc.List(c.Request().Context(), c.Param("entityType"), entityID, publicOnly)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Upload godoc
// @Summary Upload media for an entity
// @Description Accepts JPEG, PNG, WebP, GIF and PDF, detected from the file content.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param entityType path string true "Entity type"
// @Param entityId path int true "Entity ID"
// @Param file formData file true "File"
// @Success 201 {object} model.Media
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Router /admin/media/{entityType}/{entityId} [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	entityID, err := pathID(c, "entityId")
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest("multipart field \"file\" is required", "MISSING_FILE")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(h.log, c, err)
	}
	defer f.Close()

	media, err := h.svc.Attach(c.Request().Context(), c.Param("entityType"), entityID, service.Upload{
		FileName: fh.Filename,
		Size:     fh.Size,
		Body:     f,
	})
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, media)
}

// Delete godoc
// @Summary Delete media
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/media/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
