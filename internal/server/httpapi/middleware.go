package httpapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/server/auth"
)

// userIDKey is the echo context key the auth middleware stores the owner
// ID under.
const userIDKey = "userID"

// requireAuth verifies the bearer token and stores the owner ID in the
// request context. Every record route sits behind it.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return common.ErrUnauthorized
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			return err
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
