package cachedmemo

import (
	"sync/atomic"

	"github.com/yogurtpowered/lrucache/internal/memo"
	"github.com/yogurtpowered/lrucache/internal/memo/direct"
	"github.com/yogurtpowered/lrucache/internal/stats"
)

// Compile-time checks that Strategy implements memo.Strategy and memo.Reporter.
var (
	_ memo.Strategy = (*Strategy)(nil)
	_ memo.Reporter = (*Strategy)(nil)
)

// Option configures a Strategy.
type Option func(*Strategy)

// WithTransform sets the function run on a cache miss.
// Default is direct.Upper.
func WithTransform(fn memo.Transform) Option {
	return func(s *Strategy) {
		s.transform = fn
	}
}

// WithStats sets the stats collector. If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return func(s *Strategy) {
		if c != nil {
			s.collector = c
		}
	}
}

// Strategy memoizes a transform in a Backend: look up, and on a miss compute
// and store.
// Two goroutines missing on the same key at once both compute it; the last
// Set wins. The values are identical, so this only costs duplicate work.
type Strategy struct {
	name      string
	backend   Backend
	transform memo.Transform
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a memoizing strategy named name over backend.
func New(name string, backend Backend, opts ...Option) *Strategy {
	s := &Strategy{
		name:      name,
		backend:   backend,
		transform: direct.Upper,
		collector: stats.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the strategy name.
func (s *Strategy) Name() string {
	return s.name
}

// Upper returns the cached uppercase form of key, computing it on a miss.
func (s *Strategy) Upper(key string) string {
	if v, ok := s.backend.Get(key); ok {
		s.hits.Add(1)
		s.collector.IncCounter(stats.MetricCacheHits, 1)
		return v
	}

	s.misses.Add(1)
	s.collector.IncCounter(stats.MetricCacheMisses, 1)

	v := s.transform(key)
	s.backend.Set(key, v)
	s.collector.SetGauge(stats.MetricCacheSize, int64(s.backend.Len()))
	return v
}

// Stats returns current cache statistics.
func (s *Strategy) Stats() memo.Stats {
	return memo.Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Size:   s.backend.Len(),
	}
}

// Backend returns the backend used by this strategy.
func (s *Strategy) Backend() Backend {
	return s.backend
}
