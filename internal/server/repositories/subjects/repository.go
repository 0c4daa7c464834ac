// Package subjects provides persistence for attendance subjects.
package subjects

import (
	"context"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

// Repository is the persistence boundary for subjects. All queries are
// scoped by the owner's user ID.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Subject, error)
	GetByID(ctx context.Context, userID, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	UpdateCounts(ctx context.Context, userID, id string, attended, total int) error
	Delete(ctx context.Context, userID, id string) error
}
