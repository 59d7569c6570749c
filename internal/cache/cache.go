// Package cache holds the one scraped snapshot the dashboard serves. It
// replaces the hidden fetch memoization of the original page with an
// explicit object: compute once, reuse until the TTL lapses or someone
// calls Invalidate.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/powderline/hakuba-dashboard/internal/resort"
)

// Snapshot is one scraped table plus when it was fetched.
type Snapshot struct {
	Table     resort.Table
	FetchedAt time.Time
}

// FetchFunc produces a fresh table, typically fetch+parse+normalize.
type FetchFunc func(ctx context.Context) (resort.Table, error)

// Cache memoizes one snapshot. A TTL of zero caches forever, matching the
// original dashboard's process-lifetime staleness.
type Cache struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu       sync.Mutex
	snapshot *Snapshot
}

func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, clock: clockwork.NewRealClock()}
}

// NewWithClock is for tests that need to control TTL expiry.
func NewWithClock(ttl time.Duration, clock clockwork.Clock) *Cache {
	return &Cache{ttl: ttl, clock: clock}
}

// GetOrFetch returns the cached snapshot, computing it with fn if absent or
// expired. The compute runs under the cache lock: exactly one fetch no
// matter how many concurrent readers arrive. Errors are not cached.
func (c *Cache) GetOrFetch(ctx context.Context, fn FetchFunc) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && !c.expiredLocked() {
		return c.copyLocked(), nil
	}

	table, err := fn(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	c.snapshot = &Snapshot{Table: table, FetchedAt: c.clock.Now()}
	return c.copyLocked(), nil
}

// Peek returns the current snapshot without triggering a fetch.
func (c *Cache) Peek() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil || c.expiredLocked() {
		return Snapshot{}, false
	}
	return c.copyLocked(), true
}

// Invalidate drops the snapshot so the next read refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

func (c *Cache) expiredLocked() bool {
	if c.ttl <= 0 {
		return false
	}
	return c.clock.Since(c.snapshot.FetchedAt) > c.ttl
}

// copyLocked hands out an independent table so callers (the merger in
// particular) never mutate the cached rows.
func (c *Cache) copyLocked() Snapshot {
	return Snapshot{Table: c.snapshot.Table.Clone(), FetchedAt: c.snapshot.FetchedAt}
}
