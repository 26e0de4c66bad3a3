package apiclient

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query, e.g. {"ativos", "3"}.
type Key []string

func (k Key) String() string { return strings.Join(k, "\x00") }

// hasPrefix reports whether k starts with every element of p.
func (k Key) hasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

type entry struct {
	key     Key
	value   any
	fetched time.Time
}

// Cache holds query results for a TTL. Concurrent reads of the same key share
// a single fetch. Errors are never cached.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	gen     uint64 // bumped by Invalidate
	group   singleflight.Group

	// joined runs after a reader has started or joined a fetch. Tests only.
	joined func()
}

// NewCache returns a cache whose entries go stale after ttl. A ttl of zero
// means every read refetches.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now, entries: map[string]*entry{}}
}

// Get returns the cached value for key when fresh, otherwise calls fetch and
// stores its result.
//
// Readers only share a fetch that started after the latest Invalidate, so a
// read issued after a mutation never sees data fetched before it. The shared
// fetch is detached from any single reader's cancellation; a reader whose ctx
// ends stops waiting with ctx.Err() while the others still get the result.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	id := key.String()
	v, gen, ok := c.lookup(id)
	if ok {
		return v.(T), nil
	}
	fctx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id+"\x00#"+strconv.FormatUint(gen, 10), func() (any, error) {
		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})
	if c.joined != nil {
		c.joined()
	}
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// lookup returns the fresh value for id, or the current generation on a miss.
func (c *Cache) lookup(id string) (any, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, c.gen, false
	}
	if c.now().Sub(e.fetched) >= c.ttl {
		delete(c.entries, id)
		return nil, c.gen, false
	}
	return e.value, c.gen, true
}

// store keeps v unless an invalidation happened while it was being fetched.
func (c *Cache) store(key Key, v any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entries[key.String()] = &entry{key: key, value: v, fetched: c.now()}
}

// Invalidate evicts every key starting with prefix. An empty prefix
// evicts everything.
func (c *Cache) Invalidate(prefix ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for id, e := range c.entries {
		if e.key.hasPrefix(prefix) {
			delete(c.entries, id)
		}
	}
}

// size reports how many entries are held.
func (c *Cache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
