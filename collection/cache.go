// Package collection is the read-through cache behind every dashboard
// table. Entries are keyed by collection name plus query parameters and
// invalidated wholesale: one successful write discards every cached view
// of that collection. Coarse on purpose; the admin tool trades cache
// coherence finesse for simplicity, and the next read refetches server
// truth.
package collection

import (
	"context"
	"sync"
	"time"
)

// Collection names. Writers invalidate these; readers load through them.
const (
	Users    = "users"
	Products = "products"
	Services = "services"
	Games    = "games"
	Orders   = "orders"
	TopUps   = "topups"
	Reviews  = "reviews"
)

type entry struct {
	val       any
	fetchedAt time.Time
	done      chan struct{} // non-nil while a load is in flight
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

// Invalidate discards every cached view of one collection, whatever its
// parameters. In-flight loads are left to finish; their result lands and
// is served until the next invalidation.
func (c *Cache) Invalidate(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		prefix := name + "|"
		for key, e := range c.entries {
			if e.done == nil && (key == name || len(key) > len(prefix) && key[:len(prefix)] == prefix) {
				delete(c.entries, key)
			}
		}
	}
}

// Get returns the cached value for (name, params), loading through load on
// a miss. Concurrent callers of the same key share one load.
func Get[C any](ctx context.Context, c *Cache, name, params string, load func(context.Context) (C, error)) (C, error) {
	var zero C
	key := name
	if params != "" {
		key = name + "|" + params
	}

	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if ok && e.done == nil && time.Since(e.fetchedAt) < c.ttl {
			v := e.val
			c.mu.Unlock()
			return v.(C), nil
		}
		if ok && e.done != nil {
			done := e.done
			c.mu.Unlock()
			select {
			case <-done:
				continue // re-read whatever the shared load produced
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		e = &entry{done: make(chan struct{})}
		c.entries[key] = e
		c.mu.Unlock()

		v, err := load(ctx)

		c.mu.Lock()
		if err != nil {
			// Failed loads are not cached; the next read retries.
			delete(c.entries, key)
		} else {
			e.val = v
			e.fetchedAt = time.Now()
		}
		done := e.done
		e.done = nil
		c.mu.Unlock()
		close(done)

		if err != nil {
			return zero, err
		}
		return v, nil
	}
}
