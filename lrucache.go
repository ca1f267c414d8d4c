// Package lrucache provides a fixed-capacity, least-recently-used cache with
// O(1) Get and Put.
//
// Example usage:
//
//	cache, err := lrucache.New[string, string](1_000_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if upper, ok := cache.Get(s); ok {
//	    return upper
//	}
//	upper := strings.ToUpper(s)
//	cache.Put(s, upper)
//	return upper
package lrucache

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidCapacity indicates a non-positive capacity was passed to New.
var ErrInvalidCapacity = errors.New("lrucache: capacity must be positive")

// sentinel is the arena slot anchoring the recency list.
// sentinel.next is the most recently used entry, sentinel.prev the least.
const sentinel = 0

type entry[K comparable, V any] struct {
	key   K
	value V
	seq   uint64
	prev  int
	next  int
}

// Cache is a bounded key-value store that evicts the least recently used
// entry when a new key is inserted at capacity.
// A Cache is safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]int
	entries  []entry[K, V]
	free     []int
	seq      uint64
	onEvict  func(K, V)
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	cfg := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	alloc := min(max(cfg.initialAlloc, 0), capacity)

	c := &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]int, alloc),
		entries:  make([]entry[K, V], 1, alloc+1),
		onEvict:  cfg.onEvict,
	}
	c.entries[sentinel].prev = sentinel
	c.entries[sentinel].next = sentinel
	return c, nil
}

// Get returns the value stored for key and marks it most recently used.
// The boolean is false on a miss; a miss never changes the cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(i)
	return c.entries[i].value, true
}

// Put stores value under key and marks it most recently used.
// If key is new and the cache is full, the least recently used entry is
// evicted first. Put reports whether an eviction happened.
func (c *Cache[K, V]) Put(key K, value V) bool {
	c.mu.Lock()

	if i, ok := c.index[key]; ok {
		c.entries[i].value = value
		c.touch(i)
		c.mu.Unlock()
		return false
	}

	var (
		evicted  bool
		oldKey   K
		oldValue V
	)

	var i int
	if len(c.index) >= c.capacity {
		i = c.entries[sentinel].prev
		oldKey, oldValue = c.entries[i].key, c.entries[i].value
		c.unlink(i)
		delete(c.index, oldKey)
		evicted = true
	} else {
		i = c.alloc()
	}

	c.entries[i].key = key
	c.entries[i].value = value
	c.index[key] = i
	c.pushFront(i)
	onEvict := c.onEvict
	c.mu.Unlock()

	if evicted && onEvict != nil {
		onEvict(oldKey, oldValue)
	}
	return evicted
}

// Peek returns the value stored for key without updating its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.entries[i].value, true
}

// Contains reports whether key is resident without updating its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.index[key]
	return ok
}

// Remove deletes key from the cache. It reports whether key was present.
// The eviction callback is not invoked for explicit removals.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.unlink(i)
	delete(c.index, key)
	c.release(i)
	return true
}

// Purge removes every entry, invoking the eviction callback for each.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()

	var dropped []entry[K, V]
	if c.onEvict != nil {
		dropped = make([]entry[K, V], 0, len(c.index))
		for i := c.entries[sentinel].prev; i != sentinel; i = c.entries[i].prev {
			dropped = append(dropped, c.entries[i])
		}
	}

	clear(c.index)
	clear(c.entries[1:])
	c.entries = c.entries[:1]
	c.entries[sentinel].prev = sentinel
	c.entries[sentinel].next = sentinel
	c.free = c.free[:0]
	onEvict := c.onEvict
	c.mu.Unlock()

	for _, e := range dropped {
		onEvict(e.key, e.value)
	}
}

// Keys returns the resident keys ordered from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.index))
	for i := c.entries[sentinel].next; i != sentinel; i = c.entries[i].next {
		keys = append(keys, c.entries[i].key)
	}
	return keys
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Cap returns the capacity fixed at construction.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// touch moves slot i to the front of the recency list.
func (c *Cache[K, V]) touch(i int) {
	if c.entries[sentinel].next != i {
		c.unlink(i)
		c.pushFront(i)
		return
	}
	c.seq++
	c.entries[i].seq = c.seq
}

func (c *Cache[K, V]) pushFront(i int) {
	head := c.entries[sentinel].next
	c.entries[i].prev = sentinel
	c.entries[i].next = head
	c.entries[head].prev = i
	c.entries[sentinel].next = i
	c.seq++
	c.entries[i].seq = c.seq
}

func (c *Cache[K, V]) unlink(i int) {
	prev, next := c.entries[i].prev, c.entries[i].next
	c.entries[prev].next = next
	c.entries[next].prev = prev
}

// alloc returns a free arena slot, growing the arena if none is available.
func (c *Cache[K, V]) alloc() int {
	if n := len(c.free); n > 0 {
		i := c.free[n-1]
		c.free = c.free[:n-1]
		return i
	}
	c.entries = append(c.entries, entry[K, V]{})
	return len(c.entries) - 1
}

// release zeroes slot i so the arena does not pin the old key and value.
func (c *Cache[K, V]) release(i int) {
	c.entries[i] = entry[K, V]{}
	c.free = append(c.free, i)
}
