// Package logger builds the process slog.Logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format values.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Attribute keys.
const (
	ServiceName    = "spinwin"
	AttrKeyService = "service"
	AttrKeyVersion = "version"
	AttrKeySpin    = "spin"
)

// Config represents logger configuration.
type Config struct {
	Level   slog.Level
	Format  string // "json" or "text"
	File    string // append here when set, else write to the fallback
	Version string
}

// IsJSON returns true if format is JSON.
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

// New returns a logger for cfg and a func that closes the log file, if any.
// With no file configured the logger writes to fallback, or nowhere when
// fallback is nil.
func New(cfg Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	w := fallback
	closer := func() error { return nil }
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}
	if w == nil {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var h slog.Handler
	if cfg.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	l := slog.New(h).With(
		slog.String(AttrKeyService, ServiceName),
		slog.String(AttrKeyVersion, version),
	)
	return l, closer, nil
}

type ctxKey string

const spinKey ctxKey = "spin"

// WithSpin returns a context carrying the spin token.
func WithSpin(ctx context.Context, token uint64) context.Context {
	return context.WithValue(ctx, spinKey, token)
}

// SpinFromContext extracts the spin token, if present.
func SpinFromContext(ctx context.Context) (uint64, bool) {
	tok, ok := ctx.Value(spinKey).(uint64)
	return tok, ok
}

// FromContext returns base, or slog.Default when base is nil, with the spin
// attribute when ctx carries one.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if tok, ok := SpinFromContext(ctx); ok {
		return base.With(AttrKeySpin, tok)
	}
	return base
}
