package trials

import (
	"sync"
	"time"
)

// cacheKey identifies one memoized fetch: the condition term plus the record
// budget it was fetched under. A different budget is a different key.
type cacheKey struct {
	condition  string
	maxRecords int
}

type cacheEntry struct {
	table      TrialTable
	insertedAt time.Time
}

// Cache memoizes fetched trial tables for a bounded wall-clock window.
// It holds no state across process restarts and offers no explicit
// invalidation; entries simply age out.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	now     func() time.Time // swappable in tests
}

// NewCache creates a cache whose entries stay fresh for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached table for (condition, maxRecords) when present and
// still inside the TTL window.
func (c *Cache) Get(condition string, maxRecords int) (TrialTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey{condition: condition, maxRecords: maxRecords}]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) >= c.ttl {
		return nil, false
	}
	return entry.table, true
}

// Put stores a freshly fetched table and sweeps out entries whose window has
// already lapsed. Puts happen once per network fetch, so the sweep stays
// cheap.
func (c *Cache) Put(condition string, maxRecords int, table TrialTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.insertedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}

	c.entries[cacheKey{condition: condition, maxRecords: maxRecords}] = cacheEntry{
		table:      table,
		insertedAt: now,
	}
}
