// Package watchlists persists one ordered movie list per user. Each list is
// a single JSON document that is always written as a whole.
package watchlists

import (
	"context"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
)

type Repository interface {
	// Get returns common.ErrNotFound when the user has no record yet.
	Get(ctx context.Context, userID string) ([]models.Movie, error)

	// Put replaces or inserts the user's record in one statement.
	Put(ctx context.Context, userID string, movies []models.Movie) error
}
