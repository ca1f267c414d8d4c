package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yogurtpowered/lrucache/benchmark/reporting"
	"github.com/yogurtpowered/lrucache/benchmark/simulation"
	"github.com/yogurtpowered/lrucache/benchmark/workload"
)

// errDisagree is returned when the two LRU implementations diverge.
var errDisagree = errors.New("lrucache and golanglru disagree")

var (
	simCapacity int
	simKeys     int
	simDistinct int
	simSeed     uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a skewed key trace against the LRU caches",
	Long: `Replay a Zipf-distributed trace of mixed-case keys against lrucache and
hashicorp/golang-lru with the same capacity. Both are strict LRU caches, so
hits, evictions and the final recency order must match exactly.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simCapacity, "capacity", 1000, "cache capacity")
	simulateCmd.Flags().IntVar(&simKeys, "keys", 100_000, "trace length")
	simulateCmd.Flags().IntVar(&simDistinct, "distinct", 10_000, "distinct keys in the trace")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "trace seed")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ours, err := simulation.NewLRUCache(simCapacity)
	if err != nil {
		return err
	}
	ref, err := simulation.NewGolangLRU(simCapacity)
	if err != nil {
		return err
	}

	trace := workload.Zipf(simKeys, simDistinct, simSeed)
	log.Debug("replaying trace",
		zap.Int("keys", len(trace)),
		zap.Int("distinct", simDistinct),
		zap.Uint64("seed", simSeed),
	)
	results := simulation.NewSimulator(ours, ref).Simulate(trace)

	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return err
	}
	report, err := reporting.New(w, outputFormat)
	if err != nil {
		return errors.Join(err, closeOutput())
	}
	report.WriteSimulation(simCapacity, results)
	report.WriteFooter()
	if err := closeOutput(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	if !simulation.Agree(results[ours.Name()], results[ref.Name()]) {
		return errDisagree
	}
	return nil
}
