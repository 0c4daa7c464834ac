package favorites

import (
	"context"
	"fmt"

	"github.com/aleksivanovs/studentcompanion/internal/dbx"
	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.FavoriteQuote, error) {
	query := `
		SELECT id, user_id, text, author, saved_at
		FROM favorite_quotes
		WHERE user_id = $1
		ORDER BY saved_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorite quotes: %w", err)
	}
	defer rows.Close()

	var result []*models.FavoriteQuote
	for rows.Next() {
		var item models.FavoriteQuote
		if err := rows.Scan(&item.ID, &item.UserID, &item.Text, &item.Author, &item.SavedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, favorite *models.FavoriteQuote) error {
	query := `
		INSERT INTO favorite_quotes (id, user_id, text, author)
		VALUES ($1, $2, $3, $4)
		RETURNING saved_at
	`
	err := r.db.QueryRowContext(ctx, query,
		favorite.ID, favorite.UserID, favorite.Text, favorite.Author,
	).Scan(&favorite.SavedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorite_quotes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.OneRowAffected(res)
}
