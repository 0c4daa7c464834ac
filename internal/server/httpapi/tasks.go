package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/services"
)

type taskRequest struct {
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	DueDate      string `json:"dueDate"`
	ReminderTime string `json:"reminderTime"`
}

// dueDate accepts a YYYY-MM-DD value; an empty string means no due date.
func (r *taskRequest) dueDate() (*time.Time, error) {
	if r.DueDate == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "dueDate must be YYYY-MM-DD")
	}
	return &d, nil
}

func (s *Server) listTasks(c echo.Context) error {
	filter := services.TaskFilter(c.QueryParam("filter"))
	switch filter {
	case services.TaskFilterPending, services.TaskFilterCompleted:
	default:
		filter = services.TaskFilterAll
	}

	views, err := s.services.Tasks.List(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

func (s *Server) createTask(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	due, err := req.dueDate()
	if err != nil {
		return err
	}

	task := &models.Task{
		UserID:       currentUserID(c),
		Title:        req.Title,
		Subject:      req.Subject,
		DueDate:      due,
		ReminderTime: req.ReminderTime,
	}
	view, err := s.services.Tasks.Create(c.Request().Context(), task)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

func (s *Server) updateTask(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	due, err := req.dueDate()
	if err != nil {
		return err
	}

	task := &models.Task{
		ID:           c.Param("id"),
		UserID:       currentUserID(c),
		Title:        req.Title,
		Subject:      req.Subject,
		DueDate:      due,
		ReminderTime: req.ReminderTime,
	}
	view, err := s.services.Tasks.Update(c.Request().Context(), task)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) toggleTask(c echo.Context) error {
	view, err := s.services.Tasks.ToggleCompleted(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.services.Tasks.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
