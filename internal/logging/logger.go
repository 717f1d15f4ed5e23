// Package logging is the structured logger used by moviedb. Components
// depend on the Logger interface; ZapLogger is the only implementation.
package logging

import "context"

// Logger takes a message plus alternating keys and values:
//
//	log.Info(ctx, "watchlist loaded", "user_id", id, "movies", n)
//
// The context is accepted for request-scoped fields and is currently unused
// by ZapLogger.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for failures the caller recovers from, such as a session
	// hint that could not be written.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every entry.
	With(args ...any) Logger
}
