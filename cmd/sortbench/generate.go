package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sortbench/internal/dataset"
	"sortbench/internal/telemetry"
)

const previewSize = 10

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random dataset to a CSV file",
		Long: `Generates uniformly distributed integers and writes them one per row
under a "value" header, ready for "sortbench run --csv". Use --output - to
write the CSV to stdout.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Flags().IntP("size", "n", 1000, "Number of values to generate")
	cmd.Flags().StringP("output", "o", "dataset.csv", "Destination file, or - for stdout")
	cmd.Flags().Int64("seed", 0, "Random seed (0 uses the clock)")
	cmd.Flags().Int("min", dataset.DefaultMin, "Smallest value")
	cmd.Flags().Int("max", dataset.DefaultMax, "Largest value")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"seed": "data.seed",
		"min":  "data.min",
		"max":  "data.max",
	}); err != nil {
		return err
	}
	size, _ := cmd.Flags().GetInt("size")
	if size <= 0 {
		return fmt.Errorf("size must be positive, got %d", size)
	}
	output, _ := cmd.Flags().GetString("output")

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	source, err := newSourceFunc(settings)
	if err != nil {
		return err
	}
	data, err := source.Dataset(cmd.Context(), size)
	if err != nil {
		return fmt.Errorf("generating data: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	status := cmd.OutOrStdout()
	if output == "-" {
		status = cmd.ErrOrStderr()
	} else {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	if err := dataset.WriteCSV(w, data); err != nil {
		return err
	}

	telemetry.LogDebug("Dataset written", "size", size, "output", output)
	if output != "-" {
		fmt.Fprintf(status, "Generated %d random numbers in %s\n", size, output)
	}
	fmt.Fprintf(status, "Sample data: %v\n", dataset.Preview(data, previewSize))
	return nil
}
