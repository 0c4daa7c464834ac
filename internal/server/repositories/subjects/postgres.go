package subjects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aleksivanovs/studentcompanion/internal/common"
	"github.com/aleksivanovs/studentcompanion/internal/dbx"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

// PostgresRepository implements subject storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Subject, error) {
	query := `
		SELECT id, user_id, name, instructor, schedule, min_attendance, attended, total, created_at, updated_at
		FROM subjects
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select subjects: %w", err)
	}
	defer rows.Close()

	var result []*models.Subject
	for rows.Next() {
		var item models.Subject
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Instructor, &item.Schedule,
			&item.MinAttendance, &item.Attended, &item.Total, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Subject, error) {
	query := `
		SELECT id, user_id, name, instructor, schedule, min_attendance, attended, total, created_at, updated_at
		FROM subjects
		WHERE user_id = $1 AND id = $2
	`
	var item models.Subject
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Instructor, &item.Schedule,
		&item.MinAttendance, &item.Attended, &item.Total, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (id, user_id, name, instructor, schedule, min_attendance, attended, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		subject.ID, subject.UserID, subject.Name, subject.Instructor, subject.Schedule,
		subject.MinAttendance, subject.Attended, subject.Total,
	).Scan(&subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $3, instructor = $4, schedule = $5, min_attendance = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		subject.UserID, subject.ID, subject.Name, subject.Instructor, subject.Schedule, subject.MinAttendance)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}

func (r *PostgresRepository) UpdateCounts(ctx context.Context, userID, id string, attended, total int) error {
	query := `
		UPDATE subjects
		SET attended = $3, total = $4, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, id, attended, total)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}
