// Package expenses provides persistence for the expense ledger.
package expenses

import (
	"context"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Expense, error)
	GetByID(ctx context.Context, userID, id string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, userID, id string) error
}
