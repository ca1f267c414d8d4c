package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yogurtpowered/lrucache/benchmark/analysis"
	"github.com/yogurtpowered/lrucache/benchmark/reporting"
	"github.com/yogurtpowered/lrucache/benchmark/runner"
	"github.com/yogurtpowered/lrucache/benchmark/workload"
	"github.com/yogurtpowered/lrucache/internal/memo/registry"
	"github.com/yogurtpowered/lrucache/internal/stats"
	"github.com/yogurtpowered/lrucache/internal/stats/logger"
	promstats "github.com/yogurtpowered/lrucache/internal/stats/prometheus"
)

var (
	strategyNames []string
	warmup        int
	iterations    int
	threads       int
	iterationTime time.Duration
	input         string
	inputsFile    string
	baseline      string
	capacity      int
	metricsFile   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure the throughput of each strategy",
	Long: `Run each selected strategy for the warmup iterations, then for the
measured iterations, with every thread calling Upper in a tight loop.
Throughput of each strategy is compared against the baseline with a
Mann-Whitney U test and a bootstrap confidence interval.`,
	Args: cobra.NoArgs,
	RunE: runBenchmark,
}

func init() {
	def := runner.DefaultConfig()
	runCmd.Flags().StringSliceVarP(&strategyNames, "strategies", "s", registry.Names(), "strategies to benchmark")
	runCmd.Flags().IntVar(&warmup, "warmup", def.WarmupIterations, "warmup iterations")
	runCmd.Flags().IntVar(&iterations, "iterations", def.Iterations, "measured iterations")
	runCmd.Flags().IntVarP(&threads, "threads", "t", def.Threads, "concurrent workers")
	runCmd.Flags().DurationVar(&iterationTime, "time", def.IterationTime, "duration of one iteration")
	runCmd.Flags().StringVar(&input, "input", runner.DefaultInput, "single input string")
	runCmd.Flags().StringVar(&inputsFile, "inputs-file", "", "file with one input per line (supports .zst)")
	runCmd.Flags().StringVar(&baseline, "baseline", registry.Simple, "strategy the others are compared against")
	runCmd.Flags().IntVar(&capacity, "capacity", registry.DefaultConfig().Capacity, "capacity of the bounded caches")
	runCmd.Flags().StringVar(&metricsFile, "metrics", "", "write Prometheus metrics to this file")
	runCmd.MarkFlagsMutuallyExclusive("input", "inputs-file")

	rootCmd.AddCommand(runCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	inputs := []string{input}
	if inputsFile != "" {
		inputs, err = workload.Open(inputsFile)
		if err != nil {
			return err
		}
		log.Info("loaded inputs", zap.String("file", inputsFile), zap.Int("count", len(inputs)))
	}

	var reg *prometheus.Registry
	if metricsFile != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
	}
	cacheStats, runStats := newCollectors(log, reg)

	regCfg := registry.DefaultConfig()
	regCfg.Capacity = capacity
	regCfg.Collector = cacheStats
	strategies, err := registry.NewAll(strategyNames, regCfg)
	if err != nil {
		return err
	}

	r, err := runner.New(runner.Config{
		WarmupIterations: warmup,
		Iterations:       iterations,
		Threads:          threads,
		IterationTime:    iterationTime,
		Inputs:           inputs,
	}, runner.WithLogger(log.Named("runner")), runner.WithStats(runStats))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := r.RunAll(ctx, strategies)
	if err != nil {
		return fmt.Errorf("running benchmark: %w", err)
	}

	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return err
	}
	report, err := reporting.New(w, outputFormat)
	if err != nil {
		return errors.Join(err, closeOutput())
	}

	report.WriteHeader("Uppercase Throughput Benchmark", r.Config())
	base := registry.CanonicalName(baseline)
	report.WriteSummary(results, base)
	if !slices.ContainsFunc(results, func(res *runner.Result) bool { return res.Strategy == base }) {
		log.Warn("baseline not benchmarked; skipping comparisons", zap.String("baseline", base))
	}
	for _, c := range analysis.CompareAll(results, base, analysis.DefaultOptions()) {
		report.WriteComparison(c)
	}
	report.WriteFooter()
	if err := closeOutput(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	if reg != nil {
		return writeMetrics(reg)
	}
	return nil
}

// newCollectors returns the collectors for the strategies and the runner.
// Strategies report on every call, so they only get a collector when metrics
// are exported; the runner reports once per iteration and logs at debug
// level otherwise.
func newCollectors(log *zap.Logger, reg *prometheus.Registry) (cache, run stats.Collector) {
	if reg == nil {
		return stats.NewNoop(), logger.New(log.Named("stats"))
	}
	c := promstats.New(reg)
	return c, c
}

func writeMetrics(reg *prometheus.Registry) error {
	f, err := os.Create(metricsFile)
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}
	if err := reporting.WriteMetrics(f, reg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
