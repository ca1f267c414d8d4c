// Package upperbenchfx provides an fx module wiring the uppercase
// strategies and the throughput runner.
package upperbenchfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/internal/memo"
	"github.com/yogurtpowered/lrucache/internal/memo/registry"
	"github.com/yogurtpowered/lrucache/internal/stats"
	"github.com/yogurtpowered/lrucache/internal/stats/logger"
)

// Config holds configuration for the benchmark.
type Config struct {
	// Strategies lists the strategy names to build.
	// Default is every registered strategy.
	Strategies []string

	// Registry configures the caching strategies.
	// Zero fields take the registry defaults.
	Registry registry.Config

	// Runner configures throughput measurement.
	// Default is runner.DefaultConfig().
	Runner *runner.Config
}

// Module provides the strategies and a runner.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("upperbench",
	fx.Provide(
		newStatsCollector,
		newStrategies,
		newRunner,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("upperbench.stats"))
}

// StrategyParams holds dependencies for building the strategies.
type StrategyParams struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Lifecycle fx.Lifecycle
}

func newStrategies(p StrategyParams) ([]memo.Strategy, error) {
	names := p.Config.Strategies
	if len(names) == 0 {
		names = registry.Names()
	}

	// Cache metrics only go to Config.Registry.Collector; the debug
	// logger collector would emit an entry per call.
	strategies, err := registry.NewAll(names, p.Config.Registry)
	if err != nil {
		return nil, err
	}

	log := p.Logger.Named("upperbench")
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("strategies ready", zap.Strings("names", names))
			return nil
		},
		OnStop: func(context.Context) error {
			for _, s := range strategies {
				if rep, ok := s.(memo.Reporter); ok {
					st := rep.Stats()
					log.Info("cache stats",
						zap.String("strategy", s.Name()),
						zap.Int64("hits", st.Hits),
						zap.Int64("misses", st.Misses),
						zap.Int("size", st.Size),
					)
				}
			}
			return nil
		},
	})

	return strategies, nil
}

// RunnerParams holds dependencies for creating the runner.
type RunnerParams struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
}

func newRunner(p RunnerParams) (*runner.Runner, error) {
	cfg := runner.DefaultConfig()
	if p.Config.Runner != nil {
		cfg = *p.Config.Runner
	}
	return runner.New(cfg,
		runner.WithLogger(p.Logger.Named("upperbench.runner")),
		runner.WithStats(p.Collector),
	)
}
