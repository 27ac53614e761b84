package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Runner defines the interface for running benchmarks.
type Runner interface {
	Run(ctx context.Context, tiers []Tier) (*Report, error)
}

// Source supplies the dataset for a tier that did not bring its own.
type Source interface {
	Dataset(ctx context.Context, size int) ([]int, error)
}

// Tier is one size to benchmark. When Data is non-nil it is used as-is and
// Size must be zero or equal to len(Data); otherwise Size values are drawn
// from the runner's Source.
type Tier struct {
	Size int
	Data []int
}

// Sizes builds generated tiers for the given sizes.
func Sizes(sizes ...int) []Tier {
	tiers := make([]Tier, len(sizes))
	for i, s := range sizes {
		tiers[i] = Tier{Size: s}
	}
	return tiers
}

// Observer receives progress events. Calls for one tier arrive in order; with
// Workers > 1 events of different tiers may interleave.
type Observer interface {
	TierStarted(size, cells int)
	CellFinished(r RunResult)
	TierFinished(t SizeTierResults)
}

// Options configures an Engine.
type Options struct {
	// Algorithms to run, in reporting order. Nil means the full catalog.
	Algorithms []Algorithm
	Mode       Mode
	// Policy applies in ModeSkip only. The zero value selects
	// QuadraticPolicy(DefaultQuadraticThreshold).
	Policy SkipPolicy
	// Timeout bounds a single cell; zero disables the watchdog.
	Timeout time.Duration
	// Workers > 1 benchmarks that many tiers at once. Algorithms inside a
	// tier still run one after another, but timings of concurrent tiers
	// compete for CPU and are only roughly comparable across tiers.
	Workers   int
	Observers []Observer
}

// Engine runs every configured algorithm over one dataset per size tier.
type Engine struct {
	source Source
	opts   Options

	// sortFor is swapped in tests to inject failing algorithms.
	sortFor func(Algorithm) SortFunc
	now     func() time.Time
}

// NewEngine creates an Engine drawing generated datasets from source.
func NewEngine(source Source, opts Options) *Engine {
	if opts.Algorithms == nil {
		opts.Algorithms = Catalog()
	}
	// Aliases such as "skip-enabled" are normalized here; unknown modes are
	// kept so that Run reports them.
	if mode, err := ParseMode(string(opts.Mode)); err == nil {
		opts.Mode = mode
	}
	if opts.Policy.Name == "" && opts.Policy.Rules == nil {
		opts.Policy = QuadraticPolicy(DefaultQuadraticThreshold)
	}
	return &Engine{
		source:  source,
		opts:    opts,
		sortFor: Algorithm.Sort,
		now:     time.Now,
	}
}

// Options returns the effective configuration.
func (e *Engine) Options() Options { return e.opts }

// Run benchmarks the tiers in the order given.
//
// Configuration problems are reported before anything is timed and yield no
// report. When a tier's dataset cannot be obtained, the returned report holds
// the tiers before it and the error wraps ErrDataset. Cancelling ctx stops
// the run before the next tier and returns the tiers finished so far.
func (e *Engine) Run(ctx context.Context, tiers []Tier) (*Report, error) {
	if err := e.validate(tiers); err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: e.now(),
		Mode:        e.opts.Mode,
	}
	slog.Info("Benchmark started", "run_id", report.ID, "tiers", len(tiers), "mode", e.opts.Mode, "workers", e.opts.Workers)

	var err error
	if e.opts.Workers > 1 && len(tiers) > 1 {
		report.Tiers, err = e.runConcurrent(ctx, tiers)
	} else {
		report.Tiers, err = e.runSequential(ctx, tiers)
	}
	if err != nil {
		slog.Error("Benchmark stopped early", "run_id", report.ID, "completed_tiers", len(report.Tiers), "error", err)
		return report, err
	}
	slog.Info("Benchmark finished", "run_id", report.ID, "tiers", len(report.Tiers))
	return report, nil
}

func (e *Engine) validate(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no size tiers given", ErrInvalidConfig)
	}
	if len(e.opts.Algorithms) == 0 {
		return fmt.Errorf("%w: algorithm list is empty", ErrInvalidConfig)
	}
	for _, a := range e.opts.Algorithms {
		if !a.valid() {
			return fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(a))
		}
	}
	if _, err := ParseMode(string(e.opts.Mode)); err != nil {
		return err
	}
	if e.opts.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, e.opts.Workers)
	}
	for i, t := range tiers {
		if t.Data != nil {
			if t.Size != 0 && t.Size != len(t.Data) {
				return fmt.Errorf("%w: tier %d declares size %d but carries %d values", ErrInvalidConfig, i, t.Size, len(t.Data))
			}
			continue
		}
		if t.Size <= 0 {
			return fmt.Errorf("%w: tier %d size must be positive, got %d", ErrInvalidConfig, i, t.Size)
		}
		if e.source == nil {
			return fmt.Errorf("%w: tier %d needs generated data but no source is configured", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (e *Engine) runSequential(ctx context.Context, tiers []Tier) ([]SizeTierResults, error) {
	out := make([]SizeTierResults, 0, len(tiers))
	for _, t := range tiers {
		res, err := e.runTier(ctx, t)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// runConcurrent keeps the sequential contract for failures: the result is cut
// at the first tier (in input order) whose dataset failed.
func (e *Engine) runConcurrent(ctx context.Context, tiers []Tier) ([]SizeTierResults, error) {
	results := make([]SizeTierResults, len(tiers))
	errs := make([]error, len(tiers))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, t := range tiers {
		g.Go(func() error {
			res, err := e.runTier(ctx, t)
			results[i], errs[i] = res, err
			return err
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return results[:i], err
		}
	}
	return results, nil
}

func (e *Engine) runTier(ctx context.Context, t Tier) (SizeTierResults, error) {
	if err := ctx.Err(); err != nil {
		return SizeTierResults{}, fmt.Errorf("benchmark cancelled: %w", err)
	}
	data, err := e.dataset(ctx, t)
	if err != nil {
		return SizeTierResults{}, err
	}
	size := len(data)

	for _, o := range e.opts.Observers {
		o.TierStarted(size, len(e.opts.Algorithms))
	}
	slog.Debug("Tier started", "size", size)

	tier := SizeTierResults{Size: size, Results: make([]RunResult, 0, len(e.opts.Algorithms))}
	for _, alg := range e.opts.Algorithms {
		var r RunResult
		if e.opts.Mode == ModeSkip && e.opts.Policy.ShouldSkip(alg, size) {
			r = Skipped(alg.Name(), size)
		} else {
			r = Measure(ctx, alg.Name(), e.sortFor(alg), data, e.opts.Timeout)
		}
		if r.Status == StatusError {
			slog.Error("Sort failed", "algorithm", r.Algorithm, "size", size, "reason", r.Message)
		} else {
			slog.Debug("Cell finished", "algorithm", r.Algorithm, "size", size, "status", r.Status, "time_ms", r.Time.String())
		}
		for _, o := range e.opts.Observers {
			o.CellFinished(r)
		}
		tier.Results = append(tier.Results, r)
	}

	for _, o := range e.opts.Observers {
		o.TierFinished(tier)
	}
	return tier, nil
}

func (e *Engine) dataset(ctx context.Context, t Tier) ([]int, error) {
	if t.Data != nil {
		return t.Data, nil
	}
	data, err := e.source.Dataset(ctx, t.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: size %d: %v", ErrDataset, t.Size, err)
	}
	if len(data) != t.Size {
		return nil, fmt.Errorf("%w: size %d: source returned %d values", ErrDataset, t.Size, len(data))
	}
	return data, nil
}
