package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortbench/internal/benchmark"
	"sortbench/internal/ui"
)

func executeRun(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd := newRunCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCmd_TableOutput(t *testing.T) {
	setupCLI(t)
	m := &mockRunner{report: sampleReport()}
	useMockRunner(t, m)

	out, _, err := executeRun(t, "--sizes", "100,1k", "--mode", "noskip", "--algorithms", "quick,merge", "--workers", "2")
	require.NoError(t, err)

	assert.Equal(t, benchmark.Sizes(100, 1000), m.tiers)
	assert.Equal(t, benchmark.ModeNoSkip, m.opts.Mode)
	assert.Equal(t, []benchmark.Algorithm{benchmark.QuickSort, benchmark.MergeSort}, m.opts.Algorithms)
	assert.Equal(t, 2, m.opts.Workers)

	assert.Contains(t, out, "SORTING ALGORITHM COMPARISON")
	assert.Contains(t, out, "Quick Sort")
	assert.Contains(t, out, "Merge Sort")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must be plain")
}

func TestRunCmd_DefaultsFromConfig(t *testing.T) {
	setupCLI(t)
	require.NoError(t, os.WriteFile("config.yaml", []byte("sizes: [10, 20]\nmode: noskip\nskip:\n  policy: none\n"), 0644))
	m := &mockRunner{report: sampleReport()}
	useMockRunner(t, m)

	_, _, err := executeRun(t)
	require.NoError(t, err)

	assert.Equal(t, benchmark.Sizes(10, 20), m.tiers)
	assert.Equal(t, benchmark.ModeNoSkip, m.opts.Mode)
	assert.Equal(t, benchmark.PolicyNone, m.opts.Policy.Name)
}

func TestRunCmd_JSONToFile(t *testing.T) {
	setupCLI(t)
	useMockRunner(t, &mockRunner{report: sampleReport()})
	path := filepath.Join(t.TempDir(), "results.json")

	out, errOut, err := executeRun(t, "--sizes", "100", "--format", "json", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Results saved to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "run-1", doc["report"].(map[string]any)["id"])
	assert.Contains(t, doc, "summary")
}

func TestRunCmd_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "DATA SIZE: 100"},
		{"markdown", "## Comparison Table"},
		{"yaml", "id: run-1"},
		{"chart", "Execution time (log scale)"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			setupCLI(t)
			useMockRunner(t, &mockRunner{report: sampleReport()})

			out, _, err := executeRun(t, "--sizes", "100", "--format", tt.format)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRunCmd_CSVDataset(t *testing.T) {
	setupCLI(t)
	m := &mockRunner{report: sampleReport()}
	useMockRunner(t, m)
	require.NoError(t, os.WriteFile("data.csv", []byte("value\n5\n3\nabc\n1\n"), 0644))

	_, _, err := executeRun(t, "--csv", "data.csv")
	require.NoError(t, err)
	assert.Equal(t, []benchmark.Tier{{Data: []int{5, 3, 1}}}, m.tiers)
}

func TestRunCmd_CSVWithoutNumbers(t *testing.T) {
	setupCLI(t)
	useMockRunner(t, &mockRunner{report: sampleReport()})
	require.NoError(t, os.WriteFile("data.csv", []byte("value\nfoo\n"), 0644))

	_, _, err := executeRun(t, "--csv", "data.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid numeric data")
}

func TestRunCmd_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"mode", []string{"--mode", "fast"}, "mode must be skip or noskip"},
		{"size", []string{"--sizes", "0"}, "sizes must be positive"},
		{"algorithm", []string{"--algorithms", "bogo"}, "bogo"},
		{"format", []string{"--format", "xml"}, "output.format must be one of"},
		{"policy", []string{"--policy", "sometimes"}, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			m := &mockRunner{report: sampleReport()}
			useMockRunner(t, m)

			stdout, stderr, err := executeRun(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, m.tiers, "runner must not start")
			assert.NotContains(t, stdout+stderr, "Usage:")
			assert.NotContains(t, stderr, tt.want, "error is printed once by Execute")
		})
	}
}

func TestRunCmd_PartialReportStillPrinted(t *testing.T) {
	setupCLI(t)
	failure := errors.New("dataset for size 1000: boom")
	useMockRunner(t, &mockRunner{report: sampleReport(), err: failure})

	out, _, err := executeRun(t, "--sizes", "100,1000")
	require.ErrorIs(t, err, failure)
	assert.Contains(t, out, "Quick Sort")
}

func TestRunCmd_RunnerFailsWithoutReport(t *testing.T) {
	setupCLI(t)
	failure := errors.New("invalid configuration")
	useMockRunner(t, &mockRunner{err: failure})

	out, _, err := executeRun(t, "--sizes", "100")
	require.ErrorIs(t, err, failure)
	assert.Empty(t, out)
}

func TestRunCmd_Interactive(t *testing.T) {
	setupCLI(t)
	m := &mockRunner{report: sampleReport()}
	useMockRunner(t, m)

	origAskOne := askOne
	defer func() { askOne = origAskOne }()
	var prompts []string
	askOne = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		switch prompt := p.(type) {
		case *survey.Input:
			prompts = append(prompts, prompt.Message)
			*response.(*string) = "300, 400"
		case *survey.Select:
			prompts = append(prompts, prompt.Message)
			*response.(*string) = "noskip"
		}
		return nil
	}

	_, _, err := executeRun(t, "--interactive")
	require.NoError(t, err)
	assert.Len(t, prompts, 2)
	assert.Equal(t, benchmark.Sizes(300, 400), m.tiers)
	assert.Equal(t, benchmark.ModeNoSkip, m.opts.Mode)
}

func TestRunCmd_InteractiveSkipsGivenFlags(t *testing.T) {
	setupCLI(t)
	useMockRunner(t, &mockRunner{report: sampleReport()})

	origAskOne := askOne
	defer func() { askOne = origAskOne }()
	asked := 0
	askOne = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		asked++
		return nil
	}

	_, _, err := executeRun(t, "-i", "--sizes", "100", "--mode", "skip")
	require.NoError(t, err)
	assert.Zero(t, asked)
}

func TestRunCmd_InteractiveCancelled(t *testing.T) {
	setupCLI(t)
	m := &mockRunner{report: sampleReport()}
	useMockRunner(t, m)

	origAskOne := askOne
	defer func() { askOne = origAskOne }()
	askOne = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		return errors.New("interrupt")
	}

	_, _, err := executeRun(t, "-i")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt cancelled")
	assert.Nil(t, m.tiers)
}

func TestRunCmd_TUI(t *testing.T) {
	setupCLI(t)
	m := &mockRunner{report: sampleReport()}
	useMockRunner(t, m)

	origProgress := runProgressFunc
	defer func() { runProgressFunc = origProgress }()
	progress := benchmark.NewProgressObserver(4, func(benchmark.RunResult, int, int) {})
	var gotTotal int
	runProgressFunc = func(ctx context.Context, title string, total int, run ui.RunFunc, opts ...tea.ProgramOption) (*benchmark.Report, error) {
		gotTotal = total
		return run(ctx, progress)
	}

	out, _, err := executeRun(t, "--tui", "--sizes", "100,200", "--algorithms", "quick,heap")
	require.NoError(t, err)
	assert.Equal(t, 4, gotTotal)
	assert.Contains(t, m.opts.Observers, progress)
	assert.Contains(t, out, "Quick Sort")
}

func TestTotalCells(t *testing.T) {
	tiers := benchmark.Sizes(1, 2, 3)
	assert.Equal(t, 3*len(benchmark.Catalog()), totalCells(tiers, benchmark.Options{}))
	assert.Equal(t, 6, totalCells(tiers, benchmark.Options{Algorithms: []benchmark.Algorithm{benchmark.QuickSort, benchmark.HeapSort}}))
}

func TestJoinSizes(t *testing.T) {
	assert.Equal(t, "1000,10000", joinSizes([]int{1000, 10000}))
	assert.Equal(t, "", joinSizes(nil))
}
