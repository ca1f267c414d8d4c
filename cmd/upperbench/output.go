package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// openOutput returns the writer selected by --output and a function that
// closes it.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
