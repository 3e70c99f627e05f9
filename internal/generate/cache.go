package generate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/cases"
)

// Cached remembers the labels generated for each theme so asking for the
// same theme again in one session skips the network.
type Cached struct {
	next Generator
	lru  *expirable.LRU[string, []string]
	log  *slog.Logger
}

// NewCached wraps next with an LRU of size entries that expire after ttl.
// A ttl of zero keeps entries until they are evicted.
func NewCached(next Generator, size int, ttl time.Duration, log *slog.Logger) *Cached {
	if log == nil {
		log = slog.Default()
	}
	return &Cached{
		next: next,
		lru:  expirable.NewLRU[string, []string](size, nil, ttl),
		log:  log,
	}
}

// cacheKey folds case so "Movie  Night" and "movie night" share an entry.
func cacheKey(theme string) string {
	return cases.Fold().String(strings.Join(strings.Fields(theme), " "))
}

// Generate returns cached labels for theme or asks the wrapped generator.
// Only non-empty results are stored.
func (c *Cached) Generate(ctx context.Context, theme string) ([]string, error) {
	key := cacheKey(theme)
	if key == "" {
		return nil, ErrEmptyTheme
	}
	if labels, ok := c.lru.Get(key); ok {
		c.log.DebugContext(ctx, "generation cache hit", "theme", key, "items", len(labels))
		return append([]string(nil), labels...), nil
	}

	labels, err := c.next.Generate(ctx, theme)
	if err != nil {
		return nil, err
	}
	labels = Clean(labels)
	if len(labels) == 0 {
		return nil, ErrEmptyResult
	}
	c.lru.Add(key, append([]string(nil), labels...))
	return labels, nil
}

// Forget drops the cached labels for theme.
func (c *Cached) Forget(theme string) {
	c.lru.Remove(cacheKey(theme))
}

// Len reports how many themes are cached.
func (c *Cached) Len() int { return c.lru.Len() }
