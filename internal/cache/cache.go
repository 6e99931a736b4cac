// Package cache provides the LRU cache that holds compiled shader modules.
//
//	c := cache.New[string, *Module](32)
//	m, err := c.GetOrCreate(src, func() (*Module, error) { return compile(src) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

import "sync"

// Cache is a thread-safe LRU cache. When it holds more than its limit, the
// least recently used entries are evicted.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	order   list[K, V] // front is most recently used
	limit   int

	hits, misses, evictions uint64
}

// New creates a cache holding at most limit entries. A limit of 0 means
// unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	c := &Cache[K, V]{
		entries: make(map[K]*node[K, V]),
		limit:   limit,
	}
	c.order.init()
	return c
}

// Get returns the cached value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. Errors are returned and not cached. create runs under the
// cache lock, so concurrent callers never build the same value twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(n)
		return n.value, nil
	}
	c.misses++

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.set(key, value)
	return value, nil
}

// set inserts or replaces key. Caller must hold c.mu.
func (c *Cache[K, V]) set(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.order.moveToFront(n)
		return
	}
	c.entries[key] = c.order.pushFront(key, value)

	for c.limit > 0 && len(c.entries) > c.limit {
		oldest := c.order.back()
		c.order.remove(oldest)
		delete(c.entries, oldest.key)
		c.evictions++
	}
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if ok {
		c.order.remove(n)
		delete(c.entries, key)
	}
	return ok
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*node[K, V])
	c.order.init()
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
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

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Limit     int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64 // 0.0 to 1.0
}

// node is an element of the recency list.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// list is a circular doubly-linked list with a sentinel root.
type list[K comparable, V any] struct {
	root node[K, V]
}

func (l *list[K, V]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
}

func (l *list[K, V]) pushFront(key K, value V) *node[K, V] {
	n := &node[K, V]{key: key, value: value}
	l.insertAfter(n, &l.root)
	return n
}

func (l *list[K, V]) moveToFront(n *node[K, V]) {
	if l.root.next == n {
		return
	}
	l.remove(n)
	l.insertAfter(n, &l.root)
}

// back returns the least recently used node. The list must not be empty.
func (l *list[K, V]) back() *node[K, V] {
	return l.root.prev
}

func (l *list[K, V]) insertAfter(n, at *node[K, V]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *list[K, V]) remove(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}
