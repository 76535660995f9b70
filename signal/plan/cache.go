package plan

import (
	"container/list"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is the plan count a fresh Cache retains.
const DefaultCapacity = 16

// Cache is a process-scoped, bounded, least-recently-used plan store.
// Lookups for a present key are O(1) and refresh recency; misses build
// through a single-flight group so concurrent requests for the same key
// construct the plan once. A capacity of zero disables caching entirely:
// every GetOrBuild constructs a fresh plan.
//
// Eviction drops only the cache reference; a plan handed out earlier
// stays valid for its holders.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[Key]*list.Element
	lru      *list.List // front is most recently used

	group singleflight.Group
}

type cacheEntry struct {
	key  Key
	plan *Plan
}

// NewCache returns a Cache with the given capacity. Negative capacities
// fall back to DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity < 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[Key]*list.Element),
		lru:      list.New(),
	}
}

// GetOrBuild returns the cached plan for key, building and inserting it
// on a miss.
func (c *Cache) GetOrBuild(key Key) (*Plan, error) {
	c.mu.Lock()
	if c.capacity == 0 {
		c.mu.Unlock()
		return Build(key)
	}
	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		p := el.Value.(*cacheEntry).plan
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// A concurrent flight may have inserted the key between the
		// miss above and this callback.
		c.mu.Lock()
		if el, ok := c.entries[key]; ok {
			c.lru.MoveToFront(el)
			p := el.Value.(*cacheEntry).plan
			c.mu.Unlock()
			return p, nil
		}
		c.mu.Unlock()

		p, err := Build(key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.capacity > 0 {
			c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, plan: p})
			c.evictOverCapacityLocked()
		}
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}

// SetCapacity resizes the cache. Shrinking evicts least-recently-used
// entries immediately; zero disables caching and clears the store.
func (c *Cache) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	c.capacity = n
	c.evictOverCapacityLocked()
	c.mu.Unlock()
}

// Flush removes every cached plan.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[Key]*list.Element)
	c.lru.Init()
	c.mu.Unlock()
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Capacity returns the configured capacity.
func (c *Cache) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

func (c *Cache) evictOverCapacityLocked() {
	for c.lru.Len() > c.capacity {
		el := c.lru.Back()
		if el == nil {
			return
		}
		c.lru.Remove(el)
		delete(c.entries, el.Value.(*cacheEntry).key)
	}
}

// defaultCache backs the package-level plan API used by the executors.
var defaultCache = NewCache(DefaultCapacity)

// Get returns a plan for key from the process-wide cache.
func Get(key Key) (*Plan, error) {
	return defaultCache.GetOrBuild(key)
}

// SetCacheCapacity resizes the process-wide plan cache.
func SetCacheCapacity(n int) {
	defaultCache.SetCapacity(n)
}

// FlushCache clears the process-wide plan cache.
func FlushCache() {
	defaultCache.Flush()
}

// CacheLen returns the number of plans in the process-wide cache.
func CacheLen() int {
	return defaultCache.Len()
}
