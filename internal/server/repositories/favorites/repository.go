// Package favorites provides persistence for saved quotes.
package favorites

import (
	"context"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.FavoriteQuote, error)
	Create(ctx context.Context, favorite *models.FavoriteQuote) error
	Delete(ctx context.Context, userID, id string) error
}
