// Package weakmap implements a cache backend that holds its values through
// weak pointers. Entries live until the garbage collector reclaims the value,
// then drop out of the map.
package weakmap

import (
	"runtime"
	"sync"
	"weak"

	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo"
)

// Compile-time check that Backend implements cachedmemo.Backend.
var _ cachedmemo.Backend = (*Backend)(nil)

// Backend maps keys to weakly held values.
type Backend struct {
	mu      sync.RWMutex
	entries map[string]weak.Pointer[string]
}

// cleanupArg identifies the map entry a reclaimed value belonged to.
type cleanupArg struct {
	key string
	ptr weak.Pointer[string]
}

// New creates an empty weak map backend. sizeHint preallocates the map.
func New(sizeHint int) *Backend {
	return &Backend{
		entries: make(map[string]weak.Pointer[string], max(sizeHint, 0)),
	}
}

// Get returns the value for key if it is still reachable.
func (b *Backend) Get(key string) (string, bool) {
	b.mu.RLock()
	wp, ok := b.entries[key]
	b.mu.RUnlock()
	if !ok {
		return "", false
	}
	v := wp.Value()
	if v == nil {
		return "", false
	}
	return *v, true
}

// Set stores a weak reference to value under key.
func (b *Backend) Set(key, value string) {
	p := new(string)
	*p = value
	wp := weak.Make(p)

	b.mu.Lock()
	b.entries[key] = wp
	b.mu.Unlock()

	runtime.AddCleanup(p, b.drop, cleanupArg{key: key, ptr: wp})
}

// Len returns the number of map entries, including ones whose value was
// reclaimed but not yet dropped.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// drop removes the entry for a reclaimed value unless it was overwritten.
func (b *Backend) drop(arg cleanupArg) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries[arg.key] == arg.ptr {
		delete(b.entries, arg.key)
	}
}
