package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sortbench/internal/benchmark"
	"sortbench/internal/ui"
)

func newAlgorithmsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"algos", "list"},
		Short:   "List the available sorting algorithms",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ui.ConfigureOutput(w)
			fmt.Fprintln(w, ui.RenderAlgorithms(benchmark.Catalog()))
			return nil
		},
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
