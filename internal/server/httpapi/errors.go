package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/common"
)

// httpErrorHandler maps domain errors onto HTTP responses so handlers can
// return service errors unwrapped.
//
// ValidationError becomes 400 with a field→message body; the sentinel errors
// from internal/common map to their conventional status codes; anything else
// is a 500 with no internals leaked.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	var code int
	var message interface{}

	var verr *common.ValidationError
	var herr *echo.HTTPError

	switch {
	case errors.As(err, &verr):
		code = http.StatusBadRequest
		message = echo.Map{"fields": verr.FieldMap()}
	case errors.As(err, &herr):
		code = herr.Code
		message = echo.Map{"error": herr.Message}
	case errors.Is(err, common.ErrNotFound):
		code = http.StatusNotFound
		message = echo.Map{"error": "not found"}
	case errors.Is(err, common.ErrAlreadyExists):
		code = http.StatusConflict
		message = echo.Map{"error": "already exists"}
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		code = http.StatusUnauthorized
		message = echo.Map{"error": "unauthorized"}
	default:
		code = http.StatusInternalServerError
		message = echo.Map{"error": http.StatusText(http.StatusInternalServerError)}
	}

	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
		} else {
			_ = c.JSON(code, message)
		}
	}
}
