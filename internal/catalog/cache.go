package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mahenabeywickrama/bovita-candles-fe/internal/domain"
)

// Fetcher loads a fresh raw product page from the backend.
type Fetcher func(ctx context.Context) ([]domain.Product, error)

// Cache holds the raw product snapshot the catalog pipeline filters locally.
// Fetch-once-then-filter-locally: filter changes never trigger a backend
// round trip while the snapshot is fresh.
//
// Each refresh is tagged with a monotonically increasing generation token.
// A refresh that completes after a newer one has already been installed is
// discarded, so a slow stale response can never overwrite fresher data.
type Cache struct {
	fetch  Fetcher
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	products  []domain.Product
	gen       uint64 // generation of the installed snapshot
	issued    uint64 // latest generation handed to a refresh
	fetchedAt time.Time
}

// NewCache creates a snapshot cache over the given fetcher.
func NewCache(fetch Fetcher, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		fetch:  fetch,
		ttl:    ttl,
		logger: logger,
	}
}

// Products returns the current raw snapshot, refreshing it from the backend
// when missing or expired. On a stale completion the fresher installed
// snapshot is returned instead of the fetched one.
func (c *Cache) Products(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	if c.products != nil && time.Since(c.fetchedAt) < c.ttl {
		products := c.products
		c.mu.Unlock()
		return products, nil
	}
	c.issued++
	gen := c.issued
	c.mu.Unlock()

	products, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen <= c.gen {
		// A newer refresh finished first; keep its snapshot.
		c.logger.DebugContext(ctx, "discarding stale catalog snapshot",
			slog.Uint64("generation", gen),
			slog.Uint64("installed", c.gen),
		)
		return c.products, nil
	}

	c.products = products
	c.gen = gen
	c.fetchedAt = time.Now()
	return products, nil
}

// Invalidate expires the snapshot so the next read refetches. Called after
// any admin mutation so the public catalog reflects server state.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}
