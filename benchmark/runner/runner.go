// Package runner measures the throughput of memoization strategies: a number
// of goroutines call Upper in a tight loop for a fixed wall-clock time per
// iteration, after discarding a number of warmup iterations.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yogurtpowered/lrucache/internal/memo"
	"github.com/yogurtpowered/lrucache/internal/stats"
)

// DefaultInput is the string the reference benchmark uppercases.
const DefaultInput = "MixedCaseString"

// ErrInvalidConfig indicates a Config field is out of range.
var ErrInvalidConfig = errors.New("runner: invalid config")

// Config controls one benchmark run.
type Config struct {
	// WarmupIterations are run and discarded before measuring.
	WarmupIterations int

	// Iterations is the number of measured iterations.
	Iterations int

	// Threads is the number of goroutines calling the strategy concurrently.
	Threads int

	// IterationTime is the wall-clock length of each iteration.
	IterationTime time.Duration

	// Inputs are cycled through by every worker.
	Inputs []string
}

// DefaultConfig returns five warmup and five measured one-second iterations
// on four goroutines over DefaultInput.
func DefaultConfig() Config {
	return Config{
		WarmupIterations: 5,
		Iterations:       5,
		Threads:          4,
		IterationTime:    time.Second,
		Inputs:           []string{DefaultInput},
	}
}

// Validate reports whether the config can be run.
func (c Config) Validate() error {
	switch {
	case c.WarmupIterations < 0:
		return fmt.Errorf("%w: negative warmup iterations %d", ErrInvalidConfig, c.WarmupIterations)
	case c.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	case c.Threads <= 0:
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidConfig, c.Threads)
	case c.IterationTime <= 0:
		return fmt.Errorf("%w: iteration time must be positive, got %s", ErrInvalidConfig, c.IterationTime)
	case len(c.Inputs) == 0:
		return fmt.Errorf("%w: no inputs", ErrInvalidConfig)
	}
	return nil
}

// Result holds the measurements for one strategy.
type Result struct {
	Strategy string

	// Samples holds the throughput in operations per second of each
	// measured iteration.
	Samples []float64

	// TotalOps counts operations across measured iterations.
	TotalOps int64

	// Elapsed is the measured wall-clock time, warmup excluded.
	Elapsed time.Duration

	// Cache holds the strategy's cache statistics at the end of the run,
	// if it keeps any.
	Cache *memo.Stats
}

// OpsPerSecond returns the overall measured throughput.
func (r *Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.TotalOps) / r.Elapsed.Seconds()
}

// Option configures a Runner.
type Option interface {
	apply(*Runner)
}

type optionFunc func(*Runner)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(r *Runner) { f(r) }

// WithLogger sets the logger. If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	})
}

// WithStats sets the stats collector. If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(r *Runner) {
		if c != nil {
			r.stats = c
		}
	})
}

// Runner executes benchmark runs.
type Runner struct {
	cfg    Config
	logger *zap.Logger
	stats  stats.Collector

	// sink keeps results observable so the calls cannot be optimized away.
	sink atomic.Int64
}

// New creates a Runner for cfg.
func New(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		logger: zap.NewNop(),
		stats:  stats.NewNoop(),
	}
	for _, opt := range opts {
		opt.apply(r)
	}
	return r, nil
}

// Config returns the runner's configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run benchmarks s. It returns ctx.Err() if ctx is cancelled mid-run.
func (r *Runner) Run(ctx context.Context, s memo.Strategy) (*Result, error) {
	log := r.logger.With(zap.String("strategy", s.Name()))

	for i := 0; i < r.cfg.WarmupIterations; i++ {
		ops, elapsed, err := r.iterate(ctx, s)
		if err != nil {
			return nil, err
		}
		log.Debug("warmup iteration",
			zap.Int("iteration", i+1),
			zap.Float64("opsPerSecond", float64(ops)/elapsed.Seconds()),
		)
	}

	res := &Result{
		Strategy: s.Name(),
		Samples:  make([]float64, 0, r.cfg.Iterations),
	}
	for i := 0; i < r.cfg.Iterations; i++ {
		ops, elapsed, err := r.iterate(ctx, s)
		if err != nil {
			return nil, err
		}
		throughput := float64(ops) / elapsed.Seconds()
		res.Samples = append(res.Samples, throughput)
		res.TotalOps += ops
		res.Elapsed += elapsed

		r.stats.IncCounter(stats.MetricBenchOps, ops)
		r.stats.ObserveHistogram(stats.MetricIterationThroughput, throughput)
		log.Debug("iteration",
			zap.Int("iteration", i+1),
			zap.Float64("opsPerSecond", throughput),
		)
	}

	if rep, ok := s.(memo.Reporter); ok {
		st := rep.Stats()
		res.Cache = &st
	}

	log.Info("benchmark complete",
		zap.Float64("opsPerSecond", res.OpsPerSecond()),
		zap.Int64("totalOps", res.TotalOps),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// RunAll benchmarks each strategy in turn.
func (r *Runner) RunAll(ctx context.Context, strategies []memo.Strategy) ([]*Result, error) {
	results := make([]*Result, 0, len(strategies))
	for _, s := range strategies {
		res, err := r.Run(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("running %s: %w", s.Name(), err)
		}
		results = append(results, res)
	}
	return results, nil
}

// iterate runs one timed iteration and returns the operation count and the
// time it took.
func (r *Runner) iterate(ctx context.Context, s memo.Strategy) (int64, time.Duration, error) {
	iterCtx, cancel := context.WithTimeout(ctx, r.cfg.IterationTime)
	defer cancel()

	var total atomic.Int64
	g, gctx := errgroup.WithContext(iterCtx)
	start := time.Now()
	for w := 0; w < r.cfg.Threads; w++ {
		offset := w
		g.Go(func() error {
			ops, sink := work(gctx, s, r.cfg.Inputs, offset)
			total.Add(ops)
			r.sink.Add(sink)
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	// The iteration deadline is expected; only the parent context's
	// cancellation is an error.
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	return total.Load(), elapsed, nil
}

// checkEvery is how many calls a worker makes between context checks.
const checkEvery = 1024

// work calls s.Upper until ctx is done. Each worker starts at its own offset
// into inputs.
func work(ctx context.Context, s memo.Strategy, inputs []string, offset int) (ops, sink int64) {
	i := offset % len(inputs)
	done := ctx.Done()
	for {
		for range checkEvery {
			sink += int64(len(s.Upper(inputs[i])))
			if i++; i == len(inputs) {
				i = 0
			}
		}
		ops += checkEvery
		select {
		case <-done:
			return ops, sink
		default:
		}
	}
}
