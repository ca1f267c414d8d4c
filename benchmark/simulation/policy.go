package simulation

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yogurtpowered/lrucache"
)

// Policy is a capacity-bounded cache replayed by the Simulator.
type Policy interface {
	// Name returns a human-readable name for this policy.
	Name() string

	// Access looks key up and inserts it on a miss. It reports whether the
	// lookup hit and whether the insertion evicted another key.
	Access(key string) (hit, evicted bool)

	// Resident returns the cached keys from most to least recently used.
	Resident() []string
}

// LRUCache replays accesses against lrucache.Cache.
type LRUCache struct {
	cache *lrucache.Cache[string, struct{}]
}

// Compile-time check that LRUCache implements Policy.
var _ Policy = (*LRUCache)(nil)

// NewLRUCache creates a policy backed by lrucache.Cache.
func NewLRUCache(capacity int) (*LRUCache, error) {
	c, err := lrucache.New[string, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUCache{cache: c}, nil
}

// Name returns "lrucache".
func (p *LRUCache) Name() string { return "lrucache" }

// Access implements Policy.
func (p *LRUCache) Access(key string) (bool, bool) {
	if _, ok := p.cache.Get(key); ok {
		return true, false
	}
	return false, p.cache.Put(key, struct{}{})
}

// Resident implements Policy.
func (p *LRUCache) Resident() []string {
	return p.cache.Keys()
}

// GolangLRU replays accesses against hashicorp/golang-lru, the reference
// LRU implementation.
type GolangLRU struct {
	cache *lru.Cache[string, struct{}]
}

// Compile-time check that GolangLRU implements Policy.
var _ Policy = (*GolangLRU)(nil)

// NewGolangLRU creates a policy backed by hashicorp/golang-lru.
func NewGolangLRU(capacity int) (*GolangLRU, error) {
	c, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &GolangLRU{cache: c}, nil
}

// Name returns "golanglru".
func (p *GolangLRU) Name() string { return "golanglru" }

// Access implements Policy.
func (p *GolangLRU) Access(key string) (bool, bool) {
	if _, ok := p.cache.Get(key); ok {
		return true, false
	}
	return false, p.cache.Add(key, struct{}{})
}

// Resident implements Policy. golang-lru lists keys oldest first.
func (p *GolangLRU) Resident() []string {
	keys := p.cache.Keys()
	slices.Reverse(keys)
	return keys
}
