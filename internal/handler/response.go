package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperr "desaweb/internal/errors"
	"desaweb/internal/repository"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail maps err to its HTTP form. Unexpected errors are logged, never echoed.
func fail(log *zap.Logger, c echo.Context, err error) error {
	httpErr := apperr.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{Error: message, Code: code})
}

// bindAndValidate decodes the request body into dst and runs struct validation.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(dst); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}
	return nil
}

// pathID reads the numeric path parameter name.
func pathID(c echo.Context, name string) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).MustUint(name, &id).BindError(); err != nil || id == 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return id, nil
}

// listQuery reads page, limit and q from the query string.
func listQuery(c echo.Context, publishedOnly bool) (repository.ListQuery, error) {
	q := repository.ListQuery{PublishedOnly: publishedOnly}
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("q", &q.Search).
		BindError()
	if err != nil {
		return q, badRequest("invalid pagination parameters", "INVALID_QUERY")
	}
	return q.Normalize(), nil
}
