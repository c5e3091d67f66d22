// Package query memoizes BitBucket API calls behind cache keys and gates
// them on an enabled predicate.
package query

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Key identifies one cached operation: its name followed by every parameter.
type Key []any

// NewKey builds a key from parts.
func NewKey(parts ...any) Key {
	return Key(parts)
}

// String renders the key; distinct parameter tuples render differently.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = fmt.Sprintf("%#v", p)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// HasPrefix reports whether k starts with prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if fmt.Sprintf("%#v", k[i]) != fmt.Sprintf("%#v", prefix[i]) {
			return false
		}
	}
	return true
}

// Cache coalesces concurrent calls per key and memoizes successes.
type Cache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	key   Key
	value any
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Fetch returns the memoized value for key or runs fn. At most one fn runs per
// key at a time; concurrent callers share its result. Errors are not cached.
//
// fn runs detached from ctx cancellation. If ctx ends first the caller gets
// ctx.Err() and the shared call still completes and fills the cache.
func (c *Cache) Fetch(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	id := key.String()
	if v, ok := c.lookup(id); ok {
		return v, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		if v, ok := c.lookup(id); ok {
			return v, nil
		}
		v, err := fn(detached)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[id] = cacheEntry{key: key, value: v}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns the memoized value for key without fetching.
func (c *Cache) Peek(key Key) (any, bool) {
	return c.lookup(key.String())
}

// Invalidate drops every entry whose key starts with prefix.
// An empty prefix clears the cache.
func (c *Cache) Invalidate(prefix ...any) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for id, e := range c.entries {
		if e.key.HasPrefix(Key(prefix)) {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

// Len returns the number of memoized entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(id string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e.value, ok
}
