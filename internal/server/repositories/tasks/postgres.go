package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/dbx"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, user_id, title, subject, due_date, reminder_time, completed, completed_at, created_at, updated_at`

func scanTask(scan func(dest ...any) error) (*models.Task, error) {
	var item models.Task
	var due, completedAt sql.NullTime
	if err := scan(
		&item.ID, &item.UserID, &item.Title, &item.Subject, &due, &item.ReminderTime,
		&item.Completed, &completedAt, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		item.DueDate = &d
	}
	if completedAt.Valid {
		c := completedAt.Time
		item.CompletedAt = &c
	}
	return &item, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		item, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
	item, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, subject, due_date, reminder_time, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Subject, nullTime(task.DueDate),
		task.ReminderTime, task.Completed, nullTime(task.CompletedAt),
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, subject = $4, due_date = $5, reminder_time = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		task.UserID, task.ID, task.Title, task.Subject, nullTime(task.DueDate), task.ReminderTime)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, userID, id string, completed bool, completedAt *time.Time) error {
	query := `
		UPDATE tasks
		SET completed = $3, completed_at = $4, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, id, completed, nullTime(completedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
