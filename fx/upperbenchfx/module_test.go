package upperbenchfx

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/internal/memo"
	"github.com/yogurtpowered/lrucache/internal/memo/registry"
)

func TestModule(t *testing.T) {
	var (
		r          *runner.Runner
		strategies []memo.Strategy
	)

	app := fxtest.New(t,
		fx.Supply(zaptest.NewLogger(t)),
		fx.Supply(Config{
			Strategies: []string{registry.Simple, registry.LRUCache},
			Registry:   registry.Config{Capacity: 8},
			Runner: &runner.Config{
				Iterations:    1,
				Threads:       2,
				IterationTime: 10 * time.Millisecond,
				Inputs:        []string{"a", "b"},
			},
		}),
		Module,
		fx.Populate(&r, &strategies),
	)
	app.RequireStart()
	defer app.RequireStop()

	if len(strategies) != 2 {
		t.Fatalf("len(strategies) = %d, want 2", len(strategies))
	}
	if got := strategies[1].Name(); got != registry.LRUCache {
		t.Errorf("strategies[1].Name() = %q, want %q", got, registry.LRUCache)
	}

	res, err := r.Run(context.Background(), strategies[1])
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.TotalOps == 0 {
		t.Error("TotalOps = 0, want > 0")
	}
	if res.Cache == nil || res.Cache.Size != 2 {
		t.Errorf("Cache = %+v, want two resident inputs", res.Cache)
	}
}

func TestModule_UnknownStrategy(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(zaptest.NewLogger(t)),
		fx.Supply(Config{Strategies: []string{"nope"}}),
		Module,
		fx.Invoke(func([]memo.Strategy) {}),
	)
	if app.Err() == nil {
		t.Error("app.Err() = nil, want unknown strategy error")
	}
}

func TestModule_DefaultRunnerConfig(t *testing.T) {
	var r *runner.Runner
	app := fxtest.New(t,
		fx.Supply(zaptest.NewLogger(t)),
		fx.Supply(Config{}),
		Module,
		fx.Populate(&r),
	)
	app.RequireStart()
	app.RequireStop()

	if got, want := r.Config().Iterations, runner.DefaultConfig().Iterations; got != want {
		t.Errorf("Config().Iterations = %d, want %d", got, want)
	}
}

func TestModule_StrategyCallsNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var strategies []memo.Strategy
	app := fxtest.New(t,
		fx.Supply(zap.New(core)),
		fx.Supply(Config{Strategies: []string{registry.LRUCache}}),
		Module,
		fx.Populate(&strategies),
	)
	app.RequireStart()

	before := logs.Len()
	const calls = 1000
	for i := range calls {
		strategies[0].Upper([]string{"a", "b", "c"}[i%3])
	}
	if n := logs.Len() - before; n != 0 {
		t.Errorf("%d Upper calls logged %d entries, want 0", calls, n)
	}
	app.RequireStop()
}
