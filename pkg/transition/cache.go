package transition

import (
	"log/slog"
	"sync/atomic"

	"github.com/maypok86/otter/v2"
)

// DefaultCacheSize is used when NewCache is given a non-positive size.
const DefaultCacheSize = 64

// Cache memoizes pairs per year in front of another Source. Results are
// identical to the wrapped source; only repeated computation is avoided.
// It is safe for concurrent use.
type Cache struct {
	cache  *otter.Cache[int, Pair]
	source Source
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns a Cache holding at most size years. A nil source means
// Calculator and a nil logger means slog.Default().
func NewCache(size int, source Source, logger *slog.Logger) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if source == nil {
		source = Calculator{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache := otter.Must(&otter.Options[int, Pair]{
		MaximumSize:     size,
		InitialCapacity: min(size, DefaultCacheSize),
	})

	return &Cache{
		cache:  cache,
		source: source,
		logger: logger,
	}
}

// Pair implements Source.
func (c *Cache) Pair(year int) Pair {
	if p, found := c.cache.GetIfPresent(year); found {
		c.hits.Add(1)
		return p
	}

	c.misses.Add(1)
	p := c.source.Pair(year)
	c.cache.Set(year, p)
	c.logger.Debug("transition cache fill", "year", year, "spring", p.Spring.Date, "fall", p.Fall.Date)
	return p
}

// Stats reports cache usage.
func (c *Cache) Stats() map[string]any {
	return map[string]any{
		"size":   c.cache.EstimatedSize(),
		"hits":   c.hits.Load(),
		"misses": c.misses.Load(),
	}
}
