package benchmark

import (
	"fmt"
	"time"
)

// Comparison relates one completed record to the fastest record of its tier.
type Comparison struct {
	Algorithm string  `json:"algorithm" yaml:"algorithm"`
	TimeMs    float64 `json:"time_ms" yaml:"time_ms"`
	// Ratio is TimeMs divided by the fastest time of the tier.
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %.2f ms (%.1fx)", c.Algorithm, c.TimeMs, c.Ratio)
}

// TierSummary is the per-size view handed to the presentation layer.
type TierSummary struct {
	Size    int         `json:"size" yaml:"size"`
	Results []RunResult `json:"results" yaml:"results"`
	// Fastest and Slowest are nil when no record of the tier completed.
	Fastest *RunResult `json:"fastest,omitempty" yaml:"fastest,omitempty"`
	Slowest *RunResult `json:"slowest,omitempty" yaml:"slowest,omitempty"`
	// Ratios holds one entry per completed record, in run order. It is empty
	// when the fastest time is zero, because the ratio is then undefined.
	Ratios []Comparison `json:"ratios,omitempty" yaml:"ratios,omitempty"`
	// SpeedRatio is slowest / fastest, zero when undefined.
	SpeedRatio float64 `json:"speed_ratio,omitempty" yaml:"speed_ratio,omitempty"`
	Completed  int     `json:"completed" yaml:"completed"`
	Correct    int     `json:"correct" yaml:"correct"`
}

// Summary is the aggregated form of a Report.
type Summary struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Mode        Mode              `json:"mode" yaml:"mode"`
	Algorithms  []string          `json:"algorithms" yaml:"algorithms"`
	Complexity  map[string]string `json:"complexity" yaml:"complexity"`
	Tiers       []TierSummary     `json:"tiers" yaml:"tiers"`

	// lookup holds one algorithm→record map per tier, in report order.
	lookup []map[string]RunResult
}

// Summarize aggregates a report without modifying it.
func Summarize(report *Report) Summary {
	s := Summary{
		Complexity: map[string]string{},
	}
	if report == nil {
		return s
	}
	s.GeneratedAt = report.GeneratedAt
	s.Mode = report.Mode

	seen := map[string]bool{}
	for _, tier := range report.Tiers {
		ts := summarizeTier(tier)
		s.Tiers = append(s.Tiers, ts)

		cells := make(map[string]RunResult, len(tier.Results))
		s.lookup = append(s.lookup, cells)
		for _, r := range tier.Results {
			cells[r.Algorithm] = r
			if !seen[r.Algorithm] {
				seen[r.Algorithm] = true
				s.Algorithms = append(s.Algorithms, r.Algorithm)
				if a, err := ParseAlgorithm(r.Algorithm); err == nil {
					s.Complexity[r.Algorithm] = a.Complexity()
				}
			}
		}
	}
	return s
}

func summarizeTier(tier SizeTierResults) TierSummary {
	ts := TierSummary{
		Size:    tier.Size,
		Results: append([]RunResult(nil), tier.Results...),
	}

	var fastest, slowest *RunResult
	for i := range ts.Results {
		r := &ts.Results[i]
		if r.IsCorrect {
			ts.Correct++
		}
		ms, ok := r.Time.Ms()
		if r.Status != StatusCompleted || !ok {
			continue
		}
		ts.Completed++
		// Strict comparisons keep the earliest record on ties.
		if fastest == nil || ms < mustMs(fastest) {
			fastest = r
		}
		if slowest == nil || ms > mustMs(slowest) {
			slowest = r
		}
	}
	if fastest == nil {
		return ts
	}

	f, sl := *fastest, *slowest
	ts.Fastest, ts.Slowest = &f, &sl

	base := mustMs(fastest)
	if base <= 0 {
		return ts
	}
	ts.SpeedRatio = mustMs(slowest) / base
	for _, r := range ts.Results {
		ms, ok := r.Time.Ms()
		if r.Status != StatusCompleted || !ok {
			continue
		}
		ts.Ratios = append(ts.Ratios, Comparison{Algorithm: r.Algorithm, TimeMs: ms, Ratio: ms / base})
	}
	return ts
}

func mustMs(r *RunResult) float64 {
	ms, _ := r.Time.Ms()
	return ms
}

// Lookup returns the record of algorithm in the first tier of the given size.
// Use LookupTier when a report may hold several tiers of one size.
func (s Summary) Lookup(size int, algorithm string) (RunResult, bool) {
	for i, t := range s.Tiers {
		if t.Size == size {
			return s.LookupTier(i, algorithm)
		}
	}
	return RunResult{}, false
}

// LookupTier returns the record of algorithm in the i-th tier.
func (s Summary) LookupTier(i int, algorithm string) (RunResult, bool) {
	if i < 0 || i >= len(s.lookup) {
		return RunResult{}, false
	}
	r, ok := s.lookup[i][algorithm]
	return r, ok
}

// Sizes lists the tier sizes in report order.
func (s Summary) Sizes() []int {
	out := make([]int, len(s.Tiers))
	for i, t := range s.Tiers {
		out[i] = t.Size
	}
	return out
}

// Point is one measured time of a series; Valid is false for non-numeric cells.
type Point struct {
	Size   int
	TimeMs float64
	Valid  bool
}

// Series returns, per algorithm, one point per tier in report order.
func (s Summary) Series() map[string][]Point {
	out := make(map[string][]Point, len(s.Algorithms))
	for _, alg := range s.Algorithms {
		points := make([]Point, 0, len(s.Tiers))
		for i, t := range s.Tiers {
			p := Point{Size: t.Size}
			if r, ok := s.LookupTier(i, alg); ok && r.Status == StatusCompleted {
				p.TimeMs, p.Valid = r.Time.Ms()
			}
			points = append(points, p)
		}
		out[alg] = points
	}
	return out
}
