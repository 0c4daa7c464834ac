// Package users declares the repository contract for account records.
package users

import (
	"context"

	"github.com/aleksivanovs/studentcompanion/internal/server/models"
)

// Repository defines operations for creating and looking up user accounts.
type Repository interface {
	// Create stores a new user and fills in the generated ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns the user with the given username.
	// Implementations should return common.ErrNotFound when absent.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
