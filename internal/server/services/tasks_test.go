package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

func dayPtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestReorderTasks(t *testing.T) {
	pendingJan10 := &models.Task{ID: "a", DueDate: dayPtr(2024, 1, 10)}
	completedJan5 := &models.Task{ID: "b", DueDate: dayPtr(2024, 1, 5), Completed: true}
	pendingNoDue := &models.Task{ID: "c"}

	ordered := ReorderTasks([]*models.Task{pendingJan10, completedJan5, pendingNoDue})

	require.Equal(t, []string{"a", "c", "b"}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})
}

func TestReorderTasks_StableOnTies(t *testing.T) {
	first := &models.Task{ID: "first", DueDate: dayPtr(2024, 1, 10)}
	second := &models.Task{ID: "second", DueDate: dayPtr(2024, 1, 10)}
	third := &models.Task{ID: "third"}
	fourth := &models.Task{ID: "fourth"}

	ordered := ReorderTasks([]*models.Task{first, second, third, fourth})

	require.Equal(t, "first", ordered[0].ID)
	require.Equal(t, "second", ordered[1].ID)
	require.Equal(t, "third", ordered[2].ID)
	require.Equal(t, "fourth", ordered[3].ID)
}

func TestInsertSorted(t *testing.T) {
	sorted := []*models.Task{
		{ID: "a", DueDate: dayPtr(2024, 1, 5)},
		{ID: "b", DueDate: dayPtr(2024, 1, 15)},
		{ID: "c"},
		{ID: "d", Completed: true},
	}

	out := InsertSorted(sorted, &models.Task{ID: "new", DueDate: dayPtr(2024, 1, 10)})

	ids := make([]string, 0, len(out))
	for _, task := range out {
		ids = append(ids, task.ID)
	}
	require.Equal(t, []string{"a", "new", "b", "c", "d"}, ids)
}

func TestInsertSorted_NoDueGoesAfterDated(t *testing.T) {
	sorted := []*models.Task{
		{ID: "a", DueDate: dayPtr(2024, 1, 5)},
		{ID: "b", Completed: true},
	}

	out := InsertSorted(sorted, &models.Task{ID: "new"})
	require.Equal(t, "new", out[1].ID)
}

func TestInsertSorted_Empty(t *testing.T) {
	out := InsertSorted(nil, &models.Task{ID: "only"})
	require.Len(t, out, 1)
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC)
	yesterday := dayPtr(2024, 1, 19)

	require.True(t, IsOverdue(&models.Task{DueDate: yesterday}, today))
	require.False(t, IsOverdue(&models.Task{DueDate: yesterday, Completed: true}, today))
	require.False(t, IsOverdue(&models.Task{DueDate: dayPtr(2024, 1, 20)}, today))
	require.False(t, IsOverdue(&models.Task{}, today))
}

func TestFormatDueLabel(t *testing.T) {
	today := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	require.Equal(t, "Today", FormatDueLabel(&models.Task{DueDate: dayPtr(2024, 1, 20)}, today))
	require.Equal(t, "Tomorrow", FormatDueLabel(&models.Task{DueDate: dayPtr(2024, 1, 21)}, today))
	require.Equal(t, "Jan 25, 2024", FormatDueLabel(&models.Task{DueDate: dayPtr(2024, 1, 25)}, today))
	require.Equal(t, "No due date", FormatDueLabel(&models.Task{}, today))
}

func TestTaskService_CreateStartsPending(t *testing.T) {
	m := newFakeRepoManager()
	svc := NewTaskService(nil, m)

	now := time.Now()
	view, err := svc.Create(context.Background(), &models.Task{
		UserID: "u1", Title: "Read chapter 3", Completed: true, CompletedAt: &now,
	})
	require.NoError(t, err)
	require.False(t, view.Completed)
	require.Nil(t, view.CompletedAt)
	require.NotEmpty(t, view.ID)
}

func TestTaskService_ToggleSetsCompletedAt(t *testing.T) {
	m := newFakeRepoManager()
	svc := NewTaskService(nil, m)

	view, err := svc.Create(context.Background(), &models.Task{UserID: "u1", Title: "t"})
	require.NoError(t, err)

	toggled, err := svc.ToggleCompleted(context.Background(), "u1", view.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)

	back, err := svc.ToggleCompleted(context.Background(), "u1", view.ID)
	require.NoError(t, err)
	require.False(t, back.Completed)
	require.Nil(t, back.CompletedAt)
}

func TestTaskService_ListFilters(t *testing.T) {
	m := newFakeRepoManager()
	svc := NewTaskService(nil, m)

	a, err := svc.Create(context.Background(), &models.Task{UserID: "u1", Title: "a", DueDate: dayPtr(2024, 1, 10)})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &models.Task{UserID: "u1", Title: "b"})
	require.NoError(t, err)

	_, err = svc.ToggleCompleted(context.Background(), "u1", a.ID)
	require.NoError(t, err)

	pending, err := svc.List(context.Background(), "u1", TaskFilterPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "b", pending[0].Title)

	completed, err := svc.List(context.Background(), "u1", TaskFilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, "a", completed[0].Title)

	all, err := svc.List(context.Background(), "u1", TaskFilterAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Pending tasks come first.
	require.Equal(t, "b", all[0].Title)
}
