package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

func (s *Server) randomQuote(c echo.Context) error {
	result := s.services.Quotes.Random(c.Request().Context())
	return c.JSON(http.StatusOK, result)
}

func (s *Server) listFavorites(c echo.Context) error {
	favorites, err := s.services.Quotes.Favorites(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorites)
}

type favoriteRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (s *Server) saveFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	favorite, err := s.services.Quotes.SaveFavorite(c.Request().Context(), currentUserID(c),
		&models.Quote{Text: req.Text, Author: req.Author})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorite)
}

func (s *Server) deleteFavorite(c echo.Context) error {
	if err := s.services.Quotes.DeleteFavorite(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
