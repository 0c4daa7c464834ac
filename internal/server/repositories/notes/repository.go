// Package notes provides persistence for study notes and their attachment
// references.
package notes

import (
	"context"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	GetByID(ctx context.Context, userID, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, userID, id string) error
}
