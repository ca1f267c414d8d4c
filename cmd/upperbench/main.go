// Package main provides the upperbench CLI, which measures the throughput of
// memoized and direct string uppercasing strategies.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
