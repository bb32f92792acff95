// Package logging defines the small structured-logging interface the engine
// logs through, plus a slog-backed implementation.
package logging

import "context"

// Logger is a context-aware structured logger. Variadic args are key-value
// pairs:
//
//	log.Info(ctx, "session started", "user_id", userID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
