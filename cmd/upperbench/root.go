package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags.
	verbose      bool
	outputFormat string
	outputFile   string
)

var rootCmd = &cobra.Command{
	Use:   "upperbench",
	Short: "Benchmark memoized string uppercasing",
	Long: `upperbench compares strategies for producing the uppercase form of a
string: calling the converter directly, or memoizing results in one of
several caches, including a fixed-capacity LRU cache.

Examples:
  # Benchmark every strategy with the reference settings
  upperbench run

  # Compare two strategies against the simple baseline, as Markdown
  upperbench run --strategies simple,lrucache --format markdown --output report.md

  # Replay a skewed key trace and check the LRU against golang-lru
  upperbench simulate --capacity 1000 --distinct 10000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, markdown")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
}

// newLogger returns a console logger at debug level when verbose, warn
// otherwise.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}
