package sheet

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"pragati/pkg/contracts/domain"
)

// Cache is the single-slot memo for the loaded table. A cold fetch
// happens once per process; every later read serves the memoized table.
// The slot is cleared only by Invalidate (operator refresh) or restart.
//
// Concurrent cold reads collapse into one fetch via singleflight, so a
// busy dashboard start does not hammer the sheet host.
type Cache struct {
	loader *Loader
	logger *slog.Logger

	mu    sync.RWMutex
	table *domain.ProjectTable

	group singleflight.Group
}

// NewCache creates a cache over the loader.
func NewCache(loader *Loader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		loader: loader,
		logger: logger.With(slog.String("component", "sheet_cache")),
	}
}

// Get returns the memoized table, loading it on first use. Load
// failures are not memoized: the next Get tries again.
func (c *Cache) Get(ctx context.Context) (*domain.ProjectTable, error) {
	c.mu.RLock()
	table := c.table
	c.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	v, err, shared := c.group.Do("load", func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have
		// filled the slot while we queued.
		c.mu.RLock()
		cached := c.table
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		loaded, err := c.loader.Load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.table = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		c.logger.DebugContext(ctx, "cold load shared across callers")
	}

	return v.(*domain.ProjectTable), nil
}

// Cached returns the memoized table without loading, or nil.
func (c *Cache) Cached() *domain.ProjectTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

// Invalidate clears the slot. The next Get fetches fresh.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
	c.logger.Info("sheet cache invalidated")
}
