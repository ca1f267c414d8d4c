// Package registry builds memoization strategies by name.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yogurtpowered/lrucache/internal/memo"
	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo"
	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo/golanglru"
	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo/lrubackend"
	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo/sortedmap"
	"github.com/yogurtpowered/lrucache/internal/memo/cachedmemo/weakmap"
	"github.com/yogurtpowered/lrucache/internal/memo/direct"
	"github.com/yogurtpowered/lrucache/internal/memo/loadingmemo"
	"github.com/yogurtpowered/lrucache/internal/stats"
)

// ErrUnknownStrategy is returned for a name not in Names.
var ErrUnknownStrategy = errors.New("registry: unknown strategy")

// Strategy names.
const (
	BaselineNoop     = "baseline-noop"
	Simple           = "simple"
	TextCases        = "textcases"
	GolangLRU        = "golanglru"
	GolangLRULoading = "golanglru-loading"
	WeakMap          = "weakmap"
	LRUCache         = "lrucache"
	SortedMap        = "sortedmap"
)

// Config holds the parameters shared by the caching strategies.
type Config struct {
	// Capacity bounds the LRU-based caches. Default is 1,000,000.
	Capacity int

	// TTL is the golanglru entry lifetime. Default is one hour.
	TTL time.Duration

	// Stripes is the golanglru-loading stripe count. Default is 50.
	Stripes int

	// WeakMapSizeHint preallocates the weak map. Default is 100,000.
	WeakMapSizeHint int

	// Collector receives cache metrics. Optional; metrics are discarded when
	// nil. Every call is labeled with the strategy name.
	Collector stats.Collector
}

// DefaultConfig returns the configuration matching the reference benchmark.
func DefaultConfig() Config {
	return Config{
		Capacity:        1_000_000,
		TTL:             time.Hour,
		Stripes:         50,
		WeakMapSizeHint: 100_000,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Capacity == 0 {
		c.Capacity = d.Capacity
	}
	if c.TTL == 0 {
		c.TTL = d.TTL
	}
	if c.Stripes == 0 {
		c.Stripes = d.Stripes
	}
	if c.WeakMapSizeHint == 0 {
		c.WeakMapSizeHint = d.WeakMapSizeHint
	}
	if c.Collector == nil {
		c.Collector = stats.NewNoop()
	}
	return c
}

// Names returns every registered strategy name in report order.
func Names() []string {
	return []string{
		BaselineNoop,
		Simple,
		TextCases,
		GolangLRU,
		GolangLRULoading,
		WeakMap,
		LRUCache,
		SortedMap,
	}
}

// CanonicalName returns the form of name that New matches against Names.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New creates the strategy registered under name. Names are matched
// case-insensitively. The strategy reports its cache metrics to
// cfg.Collector labeled with its name.
func New(name string, cfg Config) (memo.Strategy, error) {
	cfg = cfg.withDefaults()
	name = CanonicalName(name)
	cfg.Collector = stats.WithLabels(cfg.Collector, stats.Label{Name: stats.LabelStrategy, Value: name})

	switch name {
	case BaselineNoop:
		return direct.NewBaseline(), nil
	case Simple:
		return direct.NewSimple(), nil
	case TextCases:
		return direct.NewTextCases(), nil
	case GolangLRU:
		b, err := golanglru.New(cfg.Capacity, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return cachedmemo.New(name, b, cachedmemo.WithStats(cfg.Collector)), nil
	case GolangLRULoading:
		s, err := loadingmemo.New(loadingmemo.Config{
			Name:      name,
			Capacity:  cfg.Capacity,
			Stripes:   cfg.Stripes,
			Collector: cfg.Collector,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case WeakMap:
		return cachedmemo.New(name, weakmap.New(cfg.WeakMapSizeHint), cachedmemo.WithStats(cfg.Collector)), nil
	case LRUCache:
		b, err := lrubackend.New(cfg.Capacity)
		if err != nil {
			return nil, err
		}
		return cachedmemo.New(name, b, cachedmemo.WithStats(cfg.Collector)), nil
	case SortedMap:
		return cachedmemo.New(name, sortedmap.New(), cachedmemo.WithStats(cfg.Collector)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// NewAll creates the named strategies in order. An empty names list means
// every registered strategy.
func NewAll(names []string, cfg Config) ([]memo.Strategy, error) {
	if len(names) == 0 {
		names = Names()
	}
	strategies := make([]memo.Strategy, 0, len(names))
	for _, name := range names {
		s, err := New(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating strategy %q: %w", name, err)
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}
