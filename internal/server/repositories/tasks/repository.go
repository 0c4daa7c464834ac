// Package tasks provides persistence for to-do tasks.
package tasks

import (
	"context"
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	SetCompleted(ctx context.Context, userID, id string, completed bool, completedAt *time.Time) error
	Delete(ctx context.Context, userID, id string) error
}
