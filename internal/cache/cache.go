package cache

import (
	"crypto/sha256"
	"fmt"
	"log"
	"sync"
	"time"
)

// Cache is a bounded in-process map with optional expiry. A zero ttl keeps
// entries until they are evicted or deleted.
type Cache[V any] struct {
	name       string
	entries    map[string]*entry[V]
	mutex      sync.RWMutex
	maxEntries int
	ttl        time.Duration
	stats      Stats
	now        func() time.Time
	done       chan struct{}
	closeOnce  sync.Once
}

type entry[V any] struct {
	value        V
	createdAt    time.Time
	lastAccessed time.Time
	hitCount     int
}

// Stats tracks cache performance
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	mutex     sync.RWMutex
}

// New creates a cache. When ttl is positive a janitor goroutine removes
// expired entries once per ttl until Close is called.
func New[V any](name string, maxEntries int, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		name:       name,
		entries:    make(map[string]*entry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	if ttl > 0 {
		go c.cleanupExpired(ttl)
	}
	return c
}

// Key hashes arbitrary parts into a fixed-size cache key
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}

func (c *Cache[V]) expired(e *entry[V]) bool {
	return c.ttl > 0 && c.now().Sub(e.createdAt) > c.ttl
}

// Get returns the cached value if present and not expired
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mutex.Lock()
	e, found := c.entries[key]
	if !found {
		c.mutex.Unlock()
		c.recordMiss()
		return zero, false
	}
	if c.expired(e) {
		delete(c.entries, key)
		c.mutex.Unlock()
		c.recordMiss()
		c.recordEviction()
		return zero, false
	}
	e.lastAccessed = c.now()
	e.hitCount++
	value := e.value
	c.mutex.Unlock()

	c.recordHit()
	return value, true
}

// Set stores value under key, evicting the least recently used entry when full
func (c *Cache[V]) Set(key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	now := c.now()
	c.entries[key] = &entry[V]{
		value:        value,
		createdAt:    now,
		lastAccessed: now,
	}
}

func (c *Cache[V]) Delete(key string) {
	c.mutex.Lock()
	delete(c.entries, key)
	c.mutex.Unlock()
}

func (c *Cache[V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// Close stops the janitor goroutine
func (c *Cache[V]) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// evictOldest removes the least recently used entry. Caller holds the lock.
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, e := range c.entries {
		if oldestKey == "" || e.lastAccessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.lastAccessed
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.recordEviction()
		log.Printf("🗑️  Evicted oldest %s cache entry", c.name)
	}
}

func (c *Cache[V]) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mutex.Lock()
			for key, e := range c.entries {
				if c.expired(e) {
					delete(c.entries, key)
					c.recordEviction()
				}
			}
			c.mutex.Unlock()
		}
	}
}

func (c *Cache[V]) recordHit() {
	c.stats.mutex.Lock()
	c.stats.Hits++
	c.stats.mutex.Unlock()
}

func (c *Cache[V]) recordMiss() {
	c.stats.mutex.Lock()
	c.stats.Misses++
	c.stats.mutex.Unlock()
}

func (c *Cache[V]) recordEviction() {
	c.stats.mutex.Lock()
	c.stats.Evictions++
	c.stats.mutex.Unlock()
}

// GetStats returns cache statistics for the health endpoint
func (c *Cache[V]) GetStats() map[string]interface{} {
	size := c.Len()

	c.stats.mutex.RLock()
	defer c.stats.mutex.RUnlock()

	hitRate := 0.0
	total := c.stats.Hits + c.stats.Misses
	if total > 0 {
		hitRate = float64(c.stats.Hits) / float64(total) * 100
	}

	return map[string]interface{}{
		"cache_size":  size,
		"max_entries": c.maxEntries,
		"hits":        c.stats.Hits,
		"misses":      c.stats.Misses,
		"hit_rate":    fmt.Sprintf("%.2f%%", hitRate),
		"evictions":   c.stats.Evictions,
		"ttl_seconds": int(c.ttl.Seconds()),
	}
}
