package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const expenseColumns = `id, user_id, description, amount, category, date, created_at, updated_at`

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Description, &item.Amount, &item.Category,
			&item.Date, &item.CreatedAt, &item.UpdatedAt,
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

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Expense, error) {
	var item models.Expense
	err := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 AND id = $2`, userID, id,
	).Scan(
		&item.ID, &item.UserID, &item.Description, &item.Amount, &item.Category,
		&item.Date, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, description, amount, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		expense.ID, expense.UserID, expense.Description, expense.Amount, expense.Category, expense.Date,
	).Scan(&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE expenses
		SET description = $3, amount = $4, category = $5, date = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		expense.UserID, expense.ID, expense.Description, expense.Amount, expense.Category, expense.Date)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}
