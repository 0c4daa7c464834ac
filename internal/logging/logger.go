// Package logging abstracts the structured logger handed around the server
// so packages do not bind to a concrete backend.
package logging

import "context"

// Logger writes leveled, structured records. The variadic args are
// alternating key/value pairs, as in log/slog.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds the given pairs to every record.
	With(args ...any) Logger
}
