package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ServiceName is attached to every record
const ServiceName = "quakecraft-arsenal"

type ctxKey string

const playerIDKey ctxKey = "playerID"

// Config represents logger configuration
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "text"
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == "json"
}

// New builds a logger writing to w
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", ServiceName)
}

// Setup builds a stderr logger and installs it as the slog default
func Setup(cfg Config) *slog.Logger {
	l := New(cfg, os.Stderr)
	slog.SetDefault(l)
	return l
}

// WithPlayerID returns a new context carrying the acting player's id
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, playerIDKey, playerID)
}

// FromContext returns base with the player attribute when present
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if id, ok := ctx.Value(playerIDKey).(string); ok && id != "" {
		return base.With("player", id)
	}
	return base
}
