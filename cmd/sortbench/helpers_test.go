package main

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"

	"sortbench/internal/benchmark"
)

// setupCLI isolates a command test from the working tree and from viper
// state left behind by earlier tests.
func setupCLI(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Cleanup(viper.Reset)
}

type mockRunner struct {
	report *benchmark.Report
	err    error

	opts  benchmark.Options
	tiers []benchmark.Tier
}

func (m *mockRunner) Run(ctx context.Context, tiers []benchmark.Tier) (*benchmark.Report, error) {
	m.tiers = tiers
	return m.report, m.err
}

// useMockRunner swaps the runner factory for the duration of the test.
func useMockRunner(t *testing.T, m *mockRunner) {
	t.Helper()
	orig := newRunnerFunc
	newRunnerFunc = func(source benchmark.Source, opts benchmark.Options) benchmark.Runner {
		m.opts = opts
		return m
	}
	t.Cleanup(func() { newRunnerFunc = orig })
}

func sampleReport() *benchmark.Report {
	return &benchmark.Report{
		ID:          "run-1",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Mode:        benchmark.ModeSkip,
		Tiers: []benchmark.SizeTierResults{
			{Size: 100, Results: []benchmark.RunResult{
				benchmark.Completed("Quick Sort", 100, 2*time.Millisecond, true),
				benchmark.Completed("Merge Sort", 100, 3*time.Millisecond, true),
			}},
		},
	}
}
