// Package logging is the structured logger used by the gateway, the state
// cache and the REPL. Logger is the interface every component accepts;
// SlogLogger implements it over log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger. args are key-value pairs:
//
//	log.Info(ctx, "flushed snapshot", "accounts", 2, "transactions", 40)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record,
	// typically With("module", "<name>").
	With(args ...any) Logger
}
