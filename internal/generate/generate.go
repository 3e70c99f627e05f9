// Package generate turns a short theme into wheel labels.
package generate

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Makepad-fr/spinwin/internal/wheel"
)

// Generated lists are trimmed to fit the wheel.
const (
	MaxItems      = 10
	MaxLabelRunes = 24
)

var (
	ErrEmptyTheme        = errors.New("theme is empty")
	ErrMissingCredential = errors.New("api key not found")
	ErrUpstream          = errors.New("upstream generation failed")
	ErrInvalidJSON       = errors.New("generator returned invalid JSON")
	ErrEmptyResult       = errors.New("generator returned no items")
)

// Generator fetches labels for a theme.
type Generator interface {
	Generate(ctx context.Context, theme string) ([]string, error)
}

// Func adapts a plain function to Generator.
type Func func(ctx context.Context, theme string) ([]string, error)

func (f Func) Generate(ctx context.Context, theme string) ([]string, error) {
	return f(ctx, theme)
}

// Clean trims labels, drops blanks, shortens long labels and keeps at most
// MaxItems.
func Clean(labels []string) []string {
	out := make([]string, 0, min(len(labels), MaxItems))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if utf8.RuneCountInString(l) > MaxLabelRunes {
			l = strings.TrimSpace(string([]rune(l)[:MaxLabelRunes]))
		}
		out = append(out, l)
		if len(out) == MaxItems {
			break
		}
	}
	return out
}

// Message returns the text shown to the user for a generation failure.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential), errors.Is(err, wheel.ErrNoGenerator):
		return "API key not found. Run `spin auth login`."
	case errors.Is(err, ErrEmptyTheme):
		return "Type a theme first."
	case errors.Is(err, ErrEmptyResult), errors.Is(err, wheel.ErrNoLabels):
		return "Couldn't generate items. Try a different topic."
	case errors.Is(err, ErrInvalidJSON):
		return "The generator sent back something unreadable. Try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "Generation timed out. Try again."
	case errors.Is(err, context.Canceled):
		return "Generation cancelled."
	}
	return "Generation failed. Check your connection or key."
}
