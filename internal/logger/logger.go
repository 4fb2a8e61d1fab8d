// Package logger carries a *zap.Logger through a context.Context.
package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type ctxKey struct{}

// NewContext returns a copy of ctx that carries l.
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// L returns the logger stored in ctx, or the global logger if there is none.
func L(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.L()
}

// New builds the process logger. Verbose selects the development encoder
// at debug level, otherwise the JSON production logger is used. Both write
// to stderr.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Verbose reports whether a NEON_LOG_LEVEL value asks for debug output.
func Verbose(level string) bool {
	return strings.EqualFold(strings.TrimSpace(level), "debug")
}
