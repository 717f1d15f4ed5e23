// Package metadata is a small key/value repository for device-local facts
// that live outside the users and watchlists collections, such as the
// session hint.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
}
