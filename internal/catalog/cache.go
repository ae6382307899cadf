package catalog

import (
	"sync"
	"time"
)

type cacheKey struct {
	kind Kind
	id   int64
}

type cacheEntry struct {
	item    *Item
	expires time.Time
}

type cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

func (c *cache) get(kind Kind, id int64) (*Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey{kind, id}]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.item, true
}

func (c *cache) set(kind Kind, id int64, item *Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{kind, id}] = cacheEntry{
		item:    item,
		expires: time.Now().Add(c.ttl),
	}
}
