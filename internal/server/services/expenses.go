package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
)

// Window is a time range filter over expenses.
type Window string

const (
	WindowAll   Window = "all"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow maps a query value onto a Window, defaulting to all-time.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowWeek:
		return WindowWeek
	case WindowMonth:
		return WindowMonth
	default:
		return WindowAll
	}
}

// windowStart returns the inclusive lower bound of the window relative to
// ref, or the zero time for the all-time window. The week starts on the most
// recent Sunday at midnight.
func windowStart(window Window, ref time.Time) time.Time {
	day := dateOnly(ref)
	switch window {
	case WindowWeek:
		return day.AddDate(0, 0, -int(day.Weekday()))
	case WindowMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return time.Time{}
	}
}

// FilterByWindow keeps expenses whose date falls on or after the window
// start relative to ref. The all-time window is the identity.
func FilterByWindow(expenses []*models.Expense, window Window, ref time.Time) []*models.Expense {
	if window == WindowAll {
		return expenses
	}
	start := windowStart(window, ref)
	out := make([]*models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !dateOnly(e.Date).Before(start) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCategory keeps expenses in the given category. "all" is the
// identity.
func FilterByCategory(expenses []*models.Expense, category string) []*models.Expense {
	if category == "" || category == "all" {
		return expenses
	}
	out := make([]*models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// cents converts an amount to integer cents. Accumulating cents avoids
// the drift of repeated float addition for currency magnitudes.
func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}

// ExpensesTotal sums the amounts, exact to the cent.
func ExpensesTotal(expenses []*models.Expense) float64 {
	var sum int64
	for _, e := range expenses {
		sum += cents(e.Amount)
	}
	return fromCents(sum)
}

// CategoryTotals sums amounts per category. Only categories present in the
// input appear as keys.
func CategoryTotals(expenses []*models.Expense) map[string]float64 {
	sums := make(map[string]int64)
	for _, e := range expenses {
		sums[e.Category] += cents(e.Amount)
	}
	out := make(map[string]float64, len(sums))
	for category, sum := range sums {
		out[category] = fromCents(sum)
	}
	return out
}

// DistinctCategories returns "all" followed by the input's categories in
// first-seen order.
func DistinctCategories(expenses []*models.Expense) []string {
	out := []string{"all"}
	seen := make(map[string]bool)
	for _, e := range expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// ExpenseReport is the ledger screen payload: the filtered expenses plus
// their aggregates. Category totals reflect the time-filtered set, so the
// chart and the list always agree.
type ExpenseReport struct {
	Window         Window             `json:"window"`
	Category       string             `json:"category"`
	Expenses       []*models.Expense  `json:"expenses"`
	Total          float64            `json:"total"`
	CategoryTotals map[string]float64 `json:"categoryTotals"`
	Categories     []string           `json:"categories"`
}

// ExpenseService manages the per-user expense ledger.
type ExpenseService interface {
	Report(ctx context.Context, userID string, window Window, category string) (*ExpenseReport, error)
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}

type expenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager) ExpenseService {
	return &expenseService{db: db, repomanager: m, now: time.Now}
}

func (s *expenseService) Report(ctx context.Context, userID string, window Window, category string) (*ExpenseReport, error) {
	repo := s.repomanager.Expenses(s.db)
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })

	// Window first, then category: the category breakdown must describe the
	// period the user is looking at, not the full history.
	windowed := FilterByWindow(items, window, s.now())
	filtered := FilterByCategory(windowed, category)

	if category == "" {
		category = "all"
	}

	return &ExpenseReport{
		Window:         window,
		Category:       category,
		Expenses:       filtered,
		Total:          ExpensesTotal(filtered),
		CategoryTotals: CategoryTotals(windowed),
		Categories:     DistinctCategories(items),
	}, nil
}

func (s *expenseService) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := expense.Validate(); err != nil {
		return nil, err
	}
	expense.ID = uuid.NewString()

	repo := s.repomanager.Expenses(s.db)
	if err := repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("error creating expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) Update(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := expense.Validate(); err != nil {
		return nil, err
	}
	repo := s.repomanager.Expenses(s.db)
	if err := repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, expense.UserID, expense.ID)
}

func (s *expenseService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Expenses(s.db)
	return repo.Delete(ctx, userID, id)
}
