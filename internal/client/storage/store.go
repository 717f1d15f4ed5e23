// Package storage is the Local Store: durable storage of users and
// per-user watchlists that survives restarts and needs no network.
//
// Two engines implement the same contract:
//
//   - SQLiteStore    modernc SQLite file with embedded goose migrations
//   - MemoryStore    process-local maps, used in tests and throwaway runs
//
// Contract
//
//   - Initialize is idempotent; any other call before it fails with
//     common.ErrStorageUnavailable.
//   - Username and email are unique; CreateUser reports a clash as
//     *common.ConflictError.
//   - Lookups return (nil, nil) when nothing matches.
//   - GetWatchlist returns an empty, non-nil slice for a user without a record.
//   - PutWatchlist replaces the whole record atomically.
//
// Cross-collection consistency (a watchlist of a deleted user) is not
// enforced; there is no user deletion.
package storage

import (
	"context"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
)

type Store interface {
	Initialize(ctx context.Context) error
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetWatchlist(ctx context.Context, userID string) ([]models.Movie, error)
	PutWatchlist(ctx context.Context, userID string, movies []models.Movie) error
	Close() error
}

// HintStore keeps the device-local session hint: the id of the user who
// last logged in on this device.
type HintStore interface {
	GetHint(ctx context.Context) (string, bool, error)
	SetHint(ctx context.Context, userID string) error
	DeleteHint(ctx context.Context) error
}
