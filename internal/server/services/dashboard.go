package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
)

// DashboardSummary is the landing screen payload: one number per feature.
type DashboardSummary struct {
	SubjectCount      int     `json:"subjectCount"`
	OverallAttendance int     `json:"overallAttendance"`
	PendingTasks      int     `json:"pendingTasks"`
	OverdueTasks      int     `json:"overdueTasks"`
	NoteCount         int     `json:"noteCount"`
	MonthExpenseTotal float64 `json:"monthExpenseTotal"`
}

type DashboardService interface {
	Summary(ctx context.Context, userID string) (*DashboardSummary, error)
}

type dashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) DashboardService {
	return &dashboardService{db: db, repomanager: m, now: time.Now}
}

func (s *dashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	subjects, err := s.repomanager.Subjects(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	notes, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	expenses, err := s.repomanager.Expenses(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}

	now := s.now()
	summary := &DashboardSummary{
		SubjectCount:      len(subjects),
		OverallAttendance: OverallRatio(subjects),
		NoteCount:         len(notes),
		MonthExpenseTotal: ExpensesTotal(FilterByWindow(expenses, WindowMonth, now)),
	}
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		summary.PendingTasks++
		if IsOverdue(task, now) {
			summary.OverdueTasks++
		}
	}
	return summary, nil
}
