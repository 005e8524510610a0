package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"desaweb/internal/service"
)

// ContentHandler serves one content kind, publicly by slug and to the admin
// area by id.
type ContentHandler[T any] struct {
	svc service.ContentService[T]
	log *zap.Logger
}

// NewContentHandler creates a handler for the content kind served by svc.
func NewContentHandler[T any](svc service.ContentService[T], log *zap.Logger) *ContentHandler[T] {
	return &ContentHandler[T]{svc: svc, log: log.With(zap.String("entity", svc.EntityType()))}
}

// PublicList godoc
// @Summary List published content
// @Description kind is one of news, events, gallery, tourism, umkm.
// @Tags content
// @Produce json
// @Param kind path string true "Content kind"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param q query string false "Title search"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /{kind} [get]
func (h *ContentHandler[T]) PublicList(c echo.Context) error {
	return h.list(c, true)
}

// PublicGet godoc
// @Summary Get published content by slug
// @Tags content
// @Produce json
// @Param kind path string true "Content kind"
// @Param slug path string true "Slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /{kind}/{slug} [get]
func (h *ContentHandler[T]) PublicGet(c echo.Context) error {
	item, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// AdminList godoc
// @Summary List content including drafts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param q query string false "Title search"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/{kind} [get]
func (h *ContentHandler[T]) AdminList(c echo.Context) error {
	return h.list(c, false)
}

func (h *ContentHandler[T]) list(c echo.Context, publishedOnly bool) error {
	q, err := listQuery(c, publishedOnly)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// AdminGet godoc
// @Summary Get content by id
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind"
// @Param id path int true "ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{kind}/{id} [get]
func (h *ContentHandler[T]) AdminGet(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create content
// @Description The slug is derived from the title; a numeric suffix is added when it is taken.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind"
// @Param request body map[string]interface{} true "Content"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/{kind} [post]
func (h *ContentHandler[T]) Create(c echo.Context) error {
	item := new(T)
	if err := bindAndValidate(c, item); err != nil {
		return err
	}
	created, err := h.svc.Create(c.Request().Context(), item)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update content
// @Description Replaces the editable fields. The slug never changes.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Content kind"
// @Param id path int true "ID"
// @Param request body map[string]interface{} true "Content"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{kind}/{id} [put]
func (h *ContentHandler[T]) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	patch := new(T)
	if err := bindAndValidate(c, patch); err != nil {
		return err
	}
	updated, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail(h.log, c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete content and its media
// @Tags admin
// @Security BearerAuth
// @Param kind path string true "Content kind"
// @Param id path int true "ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/{kind}/{id} [delete]
func (h *ContentHandler[T]) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterPublic mounts the read-only routes under g.
func (h *ContentHandler[T]) RegisterPublic(g *echo.Group, prefix string) {
	g.GET(prefix, h.PublicList)
	g.GET(prefix+"/:slug", h.PublicGet)
}

// RegisterAdmin mounts the CRUD routes under g.
func (h *ContentHandler[T]) RegisterAdmin(g *echo.Group, prefix string) {
	g.GET(prefix, h.AdminList)
	g.POST(prefix, h.Create)
	g.GET(prefix+"/:id", h.AdminGet)
	g.PUT(prefix+"/:id", h.Update)
	g.DELETE(prefix+"/:id", h.Delete)
}
