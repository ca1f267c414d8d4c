// Package lrubackend implements a cache backend on the fixed-capacity
// lrucache.Cache.
package lrubackend

import (
	"github.com/yogurtpowered/lrucache"
	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo"
)

// Compile-time check that Backend implements cachedmemo.Backend.
var _ cachedmemo.Backend = (*Backend)(nil)

// Backend stores values in an lrucache.Cache.
type Backend struct {
	cache *lrucache.Cache[string, string]
}

// New creates a backend holding at most capacity entries.
func New(capacity int) (*Backend, error) {
	c, err := lrucache.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Backend{cache: c}, nil
}

// Get retrieves a value by key.
func (b *Backend) Get(key string) (string, bool) {
	return b.cache.Get(key)
}

// Set adds a value to the cache.
func (b *Backend) Set(key, value string) {
	b.cache.Put(key, value)
}

// Len returns the number of items in the cache.
func (b *Backend) Len() int {
	return b.cache.Len()
}
