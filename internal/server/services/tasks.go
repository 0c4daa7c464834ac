package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
	"github.com/aleksivanovs/studentcompanion/internal/server/repositories/repomanager"
)

// taskBefore is the total order over tasks: incomplete before completed;
// within the same completion group, earlier due dates first and tasks with
// no due date last. Equal tasks keep their prior relative order.
func taskBefore(a, b *models.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return false
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return dateOnly(*a.DueDate).Before(dateOnly(*b.DueDate))
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InsertSorted places task into an already ordered slice without re-sorting
// the rest. The scan stops at the first element the new task sorts before.
func InsertSorted(sorted []*models.Task, task *models.Task) []*models.Task {
	pos := len(sorted)
	for i, existing := range sorted {
		if taskBefore(task, existing) {
			pos = i
			break
		}
	}
	out := make([]*models.Task, 0, len(sorted)+1)
	out = append(out, sorted[:pos]...)
	out = append(out, task)
	out = append(out, sorted[pos:]...)
	return out
}

// ReorderTasks re-sorts the whole collection. Used after edits and toggles
// where several ordering fields may have changed at once.
func ReorderTasks(tasks []*models.Task) []*models.Task {
	out := make([]*models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool { return taskBefore(out[i], out[j]) })
	return out
}

// IsOverdue reports whether the task's due date lies strictly before the
// start of today and the task is still pending. Date-only comparison.
func IsOverdue(task *models.Task, today time.Time) bool {
	if task.Completed || task.DueDate == nil {
		return false
	}
	return dateOnly(*task.DueDate).Before(dateOnly(today))
}

// FormatDueLabel renders the due date relative to today.
func FormatDueLabel(task *models.Task, today time.Time) string {
	if task.DueDate == nil {
		return "No due date"
	}
	due := dateOnly(*task.DueDate)
	ref := dateOnly(today)
	switch {
	case due.Equal(ref):
		return "Today"
	case due.Equal(ref.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return due.Format("Jan 2, 2006")
	}
}

// TaskFilter selects which tasks a listing returns.
type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterPending   TaskFilter = "pending"
	TaskFilterCompleted TaskFilter = "completed"
)

// TaskView is a task with its derived presentation fields.
type TaskView struct {
	models.Task
	Overdue  bool   `json:"overdue"`
	DueLabel string `json:"dueLabel"`
}

// TaskService manages the per-user to-do list.
type TaskService interface {
	List(ctx context.Context, userID string, filter TaskFilter) ([]*TaskView, error)
	Create(ctx context.Context, task *models.Task) (*TaskView, error)
	Update(ctx context.Context, task *models.Task) (*TaskView, error)
	ToggleCompleted(ctx context.Context, userID, id string) (*TaskView, error)
	Delete(ctx context.Context, userID, id string) error
}

type taskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) TaskService {
	return &taskService{db: db, repomanager: m, now: time.Now}
}

func (s *taskService) taskView(task *models.Task) *TaskView {
	today := s.now()
	return &TaskView{
		Task:     *task,
		Overdue:  IsOverdue(task, today),
		DueLabel: FormatDueLabel(task, today),
	}
}

func (s *taskService) List(ctx context.Context, userID string, filter TaskFilter) ([]*TaskView, error) {
	repo := s.repomanager.Tasks(s.db)
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	ordered := ReorderTasks(items)

	views := make([]*TaskView, 0, len(ordered))
	for _, task := range ordered {
		switch filter {
		case TaskFilterPending:
			if task.Completed {
				continue
			}
		case TaskFilterCompleted:
			if !task.Completed {
				continue
			}
		}
		views = append(views, s.taskView(task))
	}
	return views, nil
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*TaskView, error) {
	task.Completed = false
	task.CompletedAt = nil
	if err := task.Validate(); err != nil {
		return nil, err
	}
	task.ID = uuid.NewString()

	repo := s.repomanager.Tasks(s.db)
	if err := repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return s.taskView(task), nil
}

func (s *taskService) Update(ctx context.Context, task *models.Task) (*TaskView, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	repo := s.repomanager.Tasks(s.db)
	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}
	updated, err := repo.GetByID(ctx, task.UserID, task.ID)
	if err != nil {
		return nil, err
	}
	return s.taskView(updated), nil
}

func (s *taskService) ToggleCompleted(ctx context.Context, userID, id string) (*TaskView, error) {
	repo := s.repomanager.Tasks(s.db)
	current, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	current.Completed = !current.Completed
	if current.Completed {
		now := s.now()
		current.CompletedAt = &now
	} else {
		current.CompletedAt = nil
	}

	if err := repo.SetCompleted(ctx, userID, id, current.Completed, current.CompletedAt); err != nil {
		return nil, err
	}
	return s.taskView(current), nil
}

func (s *taskService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Tasks(s.db)
	return repo.Delete(ctx, userID, id)
}
