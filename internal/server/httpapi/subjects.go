package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type subjectRequest struct {
	Name          string `json:"name"`
	Instructor    string `json:"instructor"`
	Schedule      string `json:"schedule"`
	MinAttendance int    `json:"minAttendance"`
}

func (s *Server) listSubjects(c echo.Context) error {
	overview, err := s.services.Subjects.Overview(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

func (s *Server) getSubject(c echo.Context) error {
	view, err := s.services.Subjects.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) createSubject(c echo.Context) error {
	var req subjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	subject := &models.Subject{
		UserID:        currentUserID(c),
		Name:          req.Name,
		Instructor:    req.Instructor,
		Schedule:      req.Schedule,
		MinAttendance: req.MinAttendance,
	}
	view, err := s.services.Subjects.Create(c.Request().Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

func (s *Server) updateSubject(c echo.Context) error {
	var req subjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	subject := &models.Subject{
		ID:            c.Param("id"),
		UserID:        currentUserID(c),
		Name:          req.Name,
		Instructor:    req.Instructor,
		Schedule:      req.Schedule,
		MinAttendance: req.MinAttendance,
	}
	view, err := s.services.Subjects.Update(c.Request().Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) deleteSubject(c echo.Context) error {
	if err := s.services.Subjects.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) attendSubject(c echo.Context) error {
	view, err := s.services.Subjects.Attend(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) missSubject(c echo.Context) error {
	view, err := s.services.Subjects.Miss(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

type countsRequest struct {
	Attended int `json:"attended"`
	Total    int `json:"total"`
}

func (s *Server) setSubjectCounts(c echo.Context) error {
	var req countsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	view, err := s.services.Subjects.SetCounts(c.Request().Context(), currentUserID(c), c.Param("id"), req.Attended, req.Total)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
