package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yogurtpowered/lrucache/benchmark/workload"
)

var (
	genKeys     int
	genDistinct int
	genSeed     uint64
)

var genCmd = &cobra.Command{
	Use:   "gen <file>",
	Short: "Write a skewed inputs file for run --inputs-file",
	Long: `Write a Zipf-distributed trace of mixed-case inputs, one per line.
The file is compressed when its name ends in .zst or .gz.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trace := workload.Zipf(genKeys, genDistinct, genSeed)
		if err := workload.Create(args[0], trace); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d inputs to %s\n", len(trace), args[0])
		return nil
	},
}

func init() {
	genCmd.Flags().IntVar(&genKeys, "keys", 100_000, "number of inputs")
	genCmd.Flags().IntVar(&genDistinct, "distinct", 10_000, "distinct inputs")
	genCmd.Flags().Uint64Var(&genSeed, "seed", 1, "trace seed")

	rootCmd.AddCommand(genCmd)
}
