// Package lru provides a bounded, time-limited cache of entry sets.
package lru

import (
	"context"
	"time"

	"github.com/fwojciec/nanodocs"
	golru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a parsed entry set is served before a refresh.
const DefaultTTL = time.Hour

// Ensure Cache implements nanodocs.EntryService at compile time.
var _ nanodocs.EntryService = (*Cache)(nil)

// slot is one cached entry set and the time it was stored.
type slot struct {
	set       *nanodocs.EntrySet
	fetchedAt time.Time
}

// Cache serves entry sets per category and reloads them lazily once they are
// older than the TTL. At most capacity categories are kept; adding one more
// evicts the least recently used.
//
// Concurrent misses for the same category share a single load. A failed load
// leaves the cached slot untouched. Cache is safe for concurrent use.
type Cache struct {
	loader  nanodocs.EntrySetLoader
	catalog nanodocs.Catalog
	ttl     time.Duration
	now     func() time.Time
	slots   *golru.Cache[nanodocs.Category, *slot]
	group   singleflight.Group
}

// Option configures a Cache.
type Option func(*config)

type config struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// WithTTL sets how long an entry set stays fresh.
// Defaults to DefaultTTL (1h) if not specified.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		c.ttl = d
	}
}

// WithCapacity sets how many categories are cached at once.
// Defaults to the number of catalog sources.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// NewCache creates a Cache that loads entry sets of the catalog's sources
// through loader.
func NewCache(loader nanodocs.EntrySetLoader, catalog nanodocs.Catalog, opts ...Option) (*Cache, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	cfg := config{
		ttl:      DefaultTTL,
		capacity: len(catalog),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ttl <= 0 {
		return nil, nanodocs.Errorf(nanodocs.EINVALID, "cache TTL must be positive, got %s", cfg.ttl)
	}
	if cfg.capacity <= 0 {
		return nil, nanodocs.Errorf(nanodocs.EINVALID, "cache capacity must be positive, got %d", cfg.capacity)
	}

	slots, err := golru.New[nanodocs.Category, *slot](cfg.capacity)
	if err != nil {
		return nil, err
	}

	return &Cache{
		loader:  loader,
		catalog: catalog,
		ttl:     cfg.ttl,
		now:     cfg.now,
		slots:   slots,
	}, nil
}

// FindEntrySet returns the cached entry set of a category, loading it when
// it is missing or expired.
func (c *Cache) FindEntrySet(ctx context.Context, category nanodocs.Category) (*nanodocs.EntrySet, nanodocs.CacheStatus, error) {
	source, ok := c.catalog.Source(category)
	if !ok {
		return nil, nanodocs.CacheFailed, nanodocs.Errorf(nanodocs.EINVALID, "unknown category %q", category)
	}

	if s, ok := c.slots.Get(category); ok && c.fresh(s) {
		return s.set, nanodocs.CacheHit, nil
	}

	// The shared load must not be cut short by one impatient caller; the
	// loader applies its own timeout.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(category), func() (any, error) {
		set, err := c.loader.Load(loadCtx, source)
		if err != nil {
			return nil, err
		}
		c.slots.Add(category, &slot{set: set, fetchedAt: c.now()})
		return set, nil
	})

	select {
	case <-ctx.Done():
		return nil, nanodocs.CacheFailed, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, nanodocs.CacheFailed, res.Err
		}
		return res.Val.(*nanodocs.EntrySet), nanodocs.CacheRefreshed, nil
	}
}

// FindEntry looks up key in the current entry set of a category.
func (c *Cache) FindEntry(ctx context.Context, category nanodocs.Category, key string) (*nanodocs.Entry, error) {
	set, _, err := c.FindEntrySet(ctx, category)
	if err != nil {
		return nil, err
	}
	e, ok := set.Find(key)
	if !ok {
		return nil, nanodocs.Errorf(nanodocs.ENOTFOUND, "%s entry %q not found", category, key)
	}
	return e, nil
}

// Len returns the number of cached categories, fresh or not.
func (c *Cache) Len() int {
	return c.slots.Len()
}

// Purge drops every cached entry set.
func (c *Cache) Purge() {
	c.slots.Purge()
}

func (c *Cache) fresh(s *slot) bool {
	return c.now().Sub(s.fetchedAt) < c.ttl
}
