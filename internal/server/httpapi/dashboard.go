package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) dashboard(c echo.Context) error {
	summary, err := s.services.Dashboard.Summary(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
