package cache

import "sync"

// Sized is implemented by values that report their memory footprint.
type Sized interface {
	SizeBytes() int64
}

// Cache is a generic thread-safe LRU cache bounded by the summed SizeBytes of
// its values. When the total exceeds the limit, entries with the oldest
// access tick are evicted until it fits or the cache is empty.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V Sized] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	order   lruList[K, V]
	size    int64
	limit   int64  // 0 means unlimited
	tick    uint64 // Monotonic access counter

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a new cache with the given byte limit.
// A limit of 0 means unlimited.
func New[K comparable, V Sized](limit int64) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*lruNode[K, V]),
		limit:   max(limit, 0),
	}
}

// Get retrieves a value and marks it most recently used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.touch(node)
	return node.value, true
}

// Peek retrieves a value without updating its access time or the hit counters.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		return node.value, true
	}
	var zero V
	return zero, false
}

// Set stores a value, replacing any previous value for key, and evicts the
// least recently used entries while the cache is over its limit. The new
// entry itself is evicted if it alone exceeds the limit.
// Returns the number of evicted entries.
func (c *Cache[K, V]) Set(key K, value V) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := value.SizeBytes()
	if node, ok := c.entries[key]; ok {
		c.size -= node.size
		node.value = value
		node.size = size
		c.size += size
		c.touch(node)
	} else {
		node := &lruNode[K, V]{key: key, value: value, size: size}
		c.entries[key] = node
		c.order.PushFront(node)
		c.size += size
		c.tick++
		node.atime = c.tick
	}

	return c.evict()
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(node)
	return true
}

// DeleteFunc removes every entry whose key satisfies del and returns the
// number of removed entries.
func (c *Cache[K, V]) DeleteFunc(del func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, node := range c.entries {
		if del(key) {
			c.remove(node)
			n++
		}
	}
	return n
}

// Clear removes all entries from the cache. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*lruNode[K, V])
	c.order.Clear()
	c.size = 0
}

// SetLimit changes the byte limit and immediately evicts down to it.
// Returns the number of evicted entries.
func (c *Cache[K, V]) SetLimit(limit int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.limit = max(limit, 0)
	return c.evict()
}

// Evict removes least recently used entries until the cache fits its limit.
// Returns the number of evicted entries.
func (c *Cache[K, V]) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evict()
}

// Limit returns the byte limit of the cache.
func (c *Cache[K, V]) Limit() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.limit
}

// Size returns the summed SizeBytes of all entries.
func (c *Cache[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// LastAccess returns the access tick of key. Ticks are strictly increasing
// across Get and Set calls.
func (c *Cache[K, V]) LastAccess(key K) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		return node.atime, true
	}
	return 0, false
}

// Keys returns the keys from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.entries))
	for node := c.order.tail; node != nil; node = node.prev {
		keys = append(keys, node.key)
	}
	return keys
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Size:      c.size,
		Limit:     c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// touch bumps the access tick of node.
// Caller must hold c.mu.
func (c *Cache[K, V]) touch(node *lruNode[K, V]) {
	c.tick++
	node.atime = c.tick
	c.order.MoveToFront(node)
}

// remove drops node from the map and the list.
// Caller must hold c.mu.
func (c *Cache[K, V]) remove(node *lruNode[K, V]) {
	delete(c.entries, node.key)
	c.order.Remove(node)
	c.size -= node.size
}

// evict removes the oldest entries until size ≤ limit or the cache is empty.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict() int {
	if c.limit == 0 {
		return 0
	}
	n := 0
	for c.size > c.limit {
		oldest := c.order.Oldest()
		if oldest == nil {
			break
		}
		c.remove(oldest)
		n++
	}
	c.evictions += uint64(n)
	return n
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Size is the summed SizeBytes of all entries.
	Size int64
	// Limit is the byte limit; 0 means unlimited.
	Limit int64
	// Hits is the number of Get calls that found an entry.
	Hits uint64
	// Misses is the number of Get calls that found nothing.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of entries removed to honor the limit.
	Evictions uint64
}
