// Package users persists local accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
)

// Repository describes the user collection. Username and email are unique;
// implementations report a duplicate as *common.ConflictError.
type Repository interface {
	Create(ctx context.Context, user *models.User) error

	// GetByUsername and GetByEmail return common.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
