// Package golanglru implements a size- and time-bounded cache backend on
// hashicorp/golang-lru's expirable LRU. Stored values are interned.
package golanglru

import (
	"errors"
	"time"
	"unique"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo"
)

// ErrInvalidCapacity is returned for a non-positive capacity. The expirable
// LRU treats zero as unbounded, which this backend does not allow.
var ErrInvalidCapacity = errors.New("golanglru: capacity must be positive")

// Compile-time check that Backend implements cachedmemo.Backend.
var _ cachedmemo.Backend = (*Backend)(nil)

// Backend stores interned values in an expirable LRU.
// Entries expire ttl after they were last written.
type Backend struct {
	cache *expirable.LRU[string, string]
}

// New creates a backend holding at most capacity entries, each for at most
// ttl. A non-positive ttl disables expiry.
func New(capacity int, ttl time.Duration) (*Backend, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Backend{cache: expirable.NewLRU[string, string](capacity, nil, ttl)}, nil
}

// Get retrieves a value by key.
func (b *Backend) Get(key string) (string, bool) {
	return b.cache.Get(key)
}

// Set interns value and adds it to the cache.
func (b *Backend) Set(key, value string) {
	b.cache.Add(key, unique.Make(value).Value())
}

// Len returns the number of unexpired items in the cache.
func (b *Backend) Len() int {
	return b.cache.Len()
}
