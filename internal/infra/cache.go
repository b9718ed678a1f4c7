package infra

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Cache size limits to prevent unbounded memory growth
const (
	DefaultMaxCacheEntries = 1000
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheCleanup    = 5 * time.Minute
)

// cacheEntry holds a cached value with expiration and LRU tracking
type cacheEntry[V any] struct {
	value      V
	expiresAt  time.Time
	accessedAt time.Time
	mu         sync.Mutex
}

// Cache is an LRU cache with a TTL per entry. Validation results are
// immutable functions of their input, so the TTL only bounds memory.
type Cache[V any] struct {
	entries    sync.Map // key (string) -> *cacheEntry[V]
	count      atomic.Int64
	maxEntries int64
	ttl        time.Duration
	mu         sync.Mutex // serializes eviction

	hits   atomic.Int64
	misses atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
}

// CacheStats is a point-in-time view of cache usage.
type CacheStats struct {
	Size   int64 `json:"size"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// NewCache creates a cache holding at most maxEntries values for ttl each.
// Non-positive arguments select the defaults.
func NewCache[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cache[V]{
		maxEntries: int64(maxEntries),
		ttl:        ttl,
		stopCh:     make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached value if it exists and hasn't expired
func (c *Cache[V]) Get(key string) (V, bool) {
	if entry, ok := c.entries.Load(key); ok {
		ce := entry.(*cacheEntry[V])
		now := time.Now()
		if now.Before(ce.expiresAt) {
			ce.mu.Lock()
			ce.accessedAt = now
			ce.mu.Unlock()
			c.hits.Add(1)
			return ce.value, true
		}
		if c.entries.CompareAndDelete(key, entry) {
			c.count.Add(-1)
		}
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores value under key for the cache's TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key for ttl.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	now := time.Now()
	_, existed := c.entries.Swap(key, &cacheEntry[V]{
		value:      value,
		expiresAt:  now.Add(ttl),
		accessedAt: now,
	})
	if existed {
		return
	}
	if n := c.count.Add(1); n > c.maxEntries {
		// Evict 10% extra so that a full cache does not evict on every Set.
		go c.evictLRU(int(n - c.maxEntries + c.maxEntries/10))
	}
}

// Delete removes a key from the cache
func (c *Cache[V]) Delete(key string) {
	if _, existed := c.entries.LoadAndDelete(key); existed {
		c.count.Add(-1)
	}
}

// Size returns the current number of entries in the cache
func (c *Cache[V]) Size() int64 {
	return c.count.Load()
}

// Stats returns the entry count and lifetime hit/miss counters.
func (c *Cache[V]) Stats() CacheStats {
	return CacheStats{
		Size:   c.count.Load(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Close stops the background cleanup goroutine
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *Cache[V]) cleanupLoop() {
	ticker := time.NewTicker(DefaultCacheCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries and evicts LRU entries if over limit
func (c *Cache[V]) cleanup() {
	now := time.Now()
	c.entries.Range(func(key, value any) bool {
		if now.After(value.(*cacheEntry[V]).expiresAt) && c.entries.CompareAndDelete(key, value) {
			c.count.Add(-1)
		}
		return true
	})

	if n := c.count.Load(); n > c.maxEntries {
		c.evictLRU(int(n - c.maxEntries + c.maxEntries/10))
	}
}

// evictLRU removes the count least recently used entries
func (c *Cache[V]) evictLRU(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type entryInfo struct {
		key        any
		entry      any
		accessedAt time.Time
	}
	var entries []entryInfo

	c.entries.Range(func(key, value any) bool {
		ce := value.(*cacheEntry[V])
		ce.mu.Lock()
		accessedAt := ce.accessedAt
		ce.mu.Unlock()
		entries = append(entries, entryInfo{key: key, entry: value, accessedAt: accessedAt})
		return true
	})

	slices.SortFunc(entries, func(a, b entryInfo) int {
		return a.accessedAt.Compare(b.accessedAt)
	})

	for _, e := range entries[:min(count, len(entries))] {
		if c.entries.CompareAndDelete(e.key, e.entry) {
			c.count.Add(-1)
		}
	}
}
