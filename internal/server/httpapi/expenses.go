package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/services"
)

type expenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (r *expenseRequest) date() (time.Time, error) {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func (s *Server) expenseReport(c echo.Context) error {
	window := services.ParseWindow(c.QueryParam("window"))
	category := c.QueryParam("category")

	report, err := s.services.Expenses.Report(c.Request().Context(), currentUserID(c), window, category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) createExpense(c echo.Context) error {
	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	date, err := req.date()
	if err != nil {
		return err
	}

	expense := &models.Expense{
		UserID:      currentUserID(c),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
	}
	created, err := s.services.Expenses.Create(c.Request().Context(), expense)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateExpense(c echo.Context) error {
	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	date, err := req.date()
	if err != nil {
		return err
	}

	expense := &models.Expense{
		ID:          c.Param("id"),
		UserID:      currentUserID(c),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
	}
	updated, err := s.services.Expenses.Update(c.Request().Context(), expense)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteExpense(c echo.Context) error {
	if err := s.services.Expenses.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
