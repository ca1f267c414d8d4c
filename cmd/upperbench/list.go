package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yogurtpowered/lrucache/internal/memo/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
