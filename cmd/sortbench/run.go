package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sortbench/internal/benchmark"
	"sortbench/internal/config"
	"sortbench/internal/dataset"
	"sortbench/internal/report"
	"sortbench/internal/telemetry"
	"sortbench/internal/ui"
)

const chartWidth = 50

var (
	askOne = survey.AskOne

	newSourceFunc = func(s config.Settings) (benchmark.Source, error) {
		g, err := s.Generator()
		if err != nil {
			return nil, err
		}
		return g, nil
	}

	newRunnerFunc = func(source benchmark.Source, opts benchmark.Options) benchmark.Runner {
		return benchmark.NewEngine(source, opts)
	}

	runProgressFunc = ui.RunProgress
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sorting benchmark",
		Long: `Runs every selected algorithm against one dataset per size and prints
the results. Sizes accept k and m suffixes, e.g. --sizes 1k,10k,50k.
With --csv the values of the file replace generated data.`,
		Example: `  sortbench run --sizes 1000,10000 --mode noskip
  sortbench run --csv data.csv --format markdown
  sortbench run --tui --workers 4 --format json --output results.json`,
		Args: cobra.NoArgs,
		RunE: runBenchmark,
	}
	// Execute prints errors once; usage text would only bury them.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.Flags().String("sizes", "", "Comma separated dataset sizes")
	cmd.Flags().String("mode", "", "Benchmark mode: skip or noskip")
	cmd.Flags().String("policy", "", "Skip policy: quadratic, selection-only or none")
	cmd.Flags().String("algorithms", "", "Comma separated algorithm names (default all)")
	cmd.Flags().String("csv", "", "Benchmark the values of this CSV file instead of random data")
	cmd.Flags().Int64("seed", 0, "Random seed for generated data (0 uses the clock)")
	cmd.Flags().Int("workers", 1, "Number of size tiers measured concurrently")
	cmd.Flags().String("timeout", "", "Per-sort timeout, e.g. 30s (0 disables)")
	cmd.Flags().StringP("format", "f", "", "Output format: "+strings.Join(config.OutputFormats, ", "))
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("tui", false, "Show a live progress view while running")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for sizes and mode")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"sizes":      "sizes",
		"mode":       "mode",
		"policy":     "skip.policy",
		"algorithms": "algorithms",
		"seed":       "data.seed",
		"workers":    "workers",
		"timeout":    "timeout",
		"format":     "output.format",
		"output":     "output.file",
	}); err != nil {
		return err
	}

	csvPath, _ := cmd.Flags().GetString("csv")
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := promptRunSettings(cmd, csvPath != ""); err != nil {
			return err
		}
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	opts, err := settings.EngineOptions()
	if err != nil {
		return err
	}
	if metrics != nil {
		opts.Observers = append(opts.Observers, benchmark.NewMetricsObserver(metrics))
	}

	tiers := benchmark.Sizes(settings.Sizes...)
	if csvPath != "" {
		data, err := readCSV(csvPath)
		if err != nil {
			return err
		}
		tiers = []benchmark.Tier{{Data: data}}
	}

	source, err := newSourceFunc(settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	telemetry.LogInfo("Starting benchmark", "tiers", len(tiers), "mode", opts.Mode, "workers", opts.Workers)
	start := time.Now()

	var rep *benchmark.Report
	var runErr error
	if tui, _ := cmd.Flags().GetBool("tui"); tui {
		title := fmt.Sprintf("Benchmarking %d dataset(s)", len(tiers))
		rep, runErr = runProgressFunc(ctx, title, totalCells(tiers, opts), func(ctx context.Context, obs benchmark.Observer) (*benchmark.Report, error) {
			o := opts
			o.Observers = append(append([]benchmark.Observer(nil), opts.Observers...), obs)
			return newRunnerFunc(source, o).Run(ctx, tiers)
		}, tea.WithOutput(cmd.ErrOrStderr()), tea.WithInput(cmd.InOrStdin()))
	} else {
		rep, runErr = newRunnerFunc(source, opts).Run(ctx, tiers)
	}
	if metrics != nil {
		metrics.ObserveRun(runErr)
	}
	if runErr != nil {
		telemetry.LogError("Benchmark failed", runErr, "tiers", len(tiers))
	}
	if rep == nil {
		if runErr == nil {
			runErr = errors.New("benchmark produced no report")
		}
		return runErr
	}
	telemetry.LogInfo("Benchmark finished", "run_id", rep.ID, "duration", time.Since(start), "error", runErr)

	if err := writeOutput(cmd, rep, settings); err != nil {
		return err
	}
	// A partial report is still printed before the failure is surfaced.
	return runErr
}

// promptRunSettings asks for the values that were not given as flags.
func promptRunSettings(cmd *cobra.Command, haveCSV bool) error {
	current, _ := config.Current()

	if !haveCSV && !changed(cmd.Flags(), "sizes") {
		var sizes string
		prompt := &survey.Input{
			Message: "Dataset sizes (comma separated, k/m suffixes allowed):",
			Default: joinSizes(current.Sizes),
		}
		validate := survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			parsed, err := config.ParseSizes(s)
			if err != nil {
				return err
			}
			if len(parsed) == 0 {
				return errors.New("enter at least one size")
			}
			return nil
		})
		if err := askOne(prompt, &sizes, validate); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		viper.Set("sizes", sizes)
	}

	if !changed(cmd.Flags(), "mode") {
		var mode string
		prompt := &survey.Select{
			Message: "Benchmark mode:",
			Options: []string{string(benchmark.ModeSkip), string(benchmark.ModeNoSkip)},
			Default: current.Mode,
			Description: func(value string, index int) string {
				if value == string(benchmark.ModeSkip) {
					return "skip slow algorithms on large datasets"
				}
				return "run every algorithm on every size"
			},
		}
		if err := askOne(prompt, &mode); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		viper.Set("mode", mode)
	}
	return nil
}

func readCSV(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	data, err := dataset.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	telemetry.LogInfo("Loaded dataset", "path", path, "values", len(data))
	return data, nil
}

// writeOutput renders the report in the configured format to stdout or the
// configured output file.
func writeOutput(cmd *cobra.Command, rep *benchmark.Report, s config.Settings) error {
	w := cmd.OutOrStdout()
	if s.OutputFile != "" {
		f, err := os.Create(s.OutputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := renderReport(w, rep, s.OutputFormat); err != nil {
		return err
	}
	if s.OutputFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to %s\n", s.OutputFile)
	}
	return nil
}

func renderReport(w io.Writer, rep *benchmark.Report, format string) error {
	switch format {
	case "json", "yaml":
		return report.Encode(w, report.NewDocument(rep), format)
	case "text":
		return report.WriteText(w, rep)
	}

	summary := benchmark.Summarize(rep)
	var out string
	switch format {
	case "markdown":
		out = report.RenderMarkdown(summary)
		if ui.Styled(w) {
			out = ui.RenderMarkdown(out, 100)
		}
	case "chart":
		ui.ConfigureOutput(w)
		out = ui.RenderChart(summary, chartWidth)
	case "table", "":
		ui.ConfigureOutput(w)
		out = ui.RenderTable(summary)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func totalCells(tiers []benchmark.Tier, opts benchmark.Options) int {
	algs := len(opts.Algorithms)
	if algs == 0 {
		algs = len(benchmark.Catalog())
	}
	return len(tiers) * algs
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
