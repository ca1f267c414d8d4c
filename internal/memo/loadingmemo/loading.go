// Package loadingmemo implements a loading cache: lookups that miss load the
// value through a single in-flight call per key, and the entries live in
// independently locked LRU stripes.
package loadingmemo

import (
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/yogurtpowered/lrucache/internal/memo"
	"github.com/yogurtpowered/lrucache/internal/memo/direct"
	"github.com/yogurtpowered/lrucache/internal/shard"
	"github.com/yogurtpowered/lrucache/internal/shard/fnvshard"
	"github.com/yogurtpowered/lrucache/internal/stats"
)

// ErrInvalidConfig is returned for a non-positive capacity or stripe count.
var ErrInvalidConfig = errors.New("loadingmemo: capacity and stripes must be positive")

// Compile-time checks that Strategy implements memo.Strategy and memo.Reporter.
var (
	_ memo.Strategy = (*Strategy)(nil)
	_ memo.Reporter = (*Strategy)(nil)
)

// Config configures a Strategy.
type Config struct {
	// Name is the strategy name. Default is "golanglru-loading".
	Name string

	// Capacity is the total number of entries across all stripes.
	Capacity int

	// Stripes is the number of independently locked LRU caches.
	Stripes int

	// Loader computes a value on a miss. Default is direct.Upper.
	Loader memo.Transform

	// Sharding picks the stripe for a key. Default is fnvshard.
	Sharding shard.Strategy

	// Collector receives hit, miss and load counts. Optional.
	Collector stats.Collector
}

// Strategy is a striped, loading LRU cache.
type Strategy struct {
	name      string
	stripes   []*lru.Cache[string, string]
	loader    memo.Transform
	sharding  shard.Strategy
	collector stats.Collector
	group     singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// New creates a loading strategy. Each stripe holds Capacity/Stripes entries,
// rounded up.
func New(cfg Config) (*Strategy, error) {
	if cfg.Capacity <= 0 || cfg.Stripes <= 0 {
		return nil, fmt.Errorf("%w: capacity=%d stripes=%d", ErrInvalidConfig, cfg.Capacity, cfg.Stripes)
	}
	if cfg.Name == "" {
		cfg.Name = "golanglru-loading"
	}
	if cfg.Loader == nil {
		cfg.Loader = direct.Upper
	}
	if cfg.Sharding == nil {
		cfg.Sharding = fnvshard.New()
	}
	if cfg.Collector == nil {
		cfg.Collector = stats.NewNoop()
	}

	perStripe := (cfg.Capacity + cfg.Stripes - 1) / cfg.Stripes
	stripes := make([]*lru.Cache[string, string], cfg.Stripes)
	for i := range stripes {
		c, err := lru.New[string, string](perStripe)
		if err != nil {
			return nil, fmt.Errorf("creating stripe %d: %w", i, err)
		}
		stripes[i] = c
	}

	return &Strategy{
		name:      cfg.Name,
		stripes:   stripes,
		loader:    cfg.Loader,
		sharding:  cfg.Sharding,
		collector: cfg.Collector,
	}, nil
}

// Name returns the strategy name.
func (s *Strategy) Name() string {
	return s.name
}

// Upper returns the cached value for key, loading it on a miss. Concurrent
// misses on the same key share one load.
func (s *Strategy) Upper(key string) string {
	stripe := s.stripes[s.sharding.ShardID(key, len(s.stripes))]
	if v, ok := stripe.Get(key); ok {
		s.hits.Add(1)
		s.collector.IncCounter(stats.MetricCacheHits, 1)
		return v
	}

	s.misses.Add(1)
	s.collector.IncCounter(stats.MetricCacheMisses, 1)

	v, _, _ := s.group.Do(key, func() (any, error) {
		// Another caller may have finished loading since our Get.
		if v, ok := stripe.Peek(key); ok {
			return v, nil
		}
		v := s.loader(key)
		stripe.Add(key, v)
		s.loads.Add(1)
		s.collector.IncCounter(stats.MetricCacheLoads, 1)
		return v, nil
	})
	return v.(string)
}

// Stats returns current cache statistics summed over all stripes.
func (s *Strategy) Stats() memo.Stats {
	return memo.Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Size:   s.Len(),
	}
}

// Loads returns how many times the loader ran.
func (s *Strategy) Loads() int64 {
	return s.loads.Load()
}

// Len returns the number of entries across all stripes.
func (s *Strategy) Len() int {
	n := 0
	for _, c := range s.stripes {
		n += c.Len()
	}
	return n
}
