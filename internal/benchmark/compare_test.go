package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cell(alg string, size int, ms float64) RunResult {
	return Completed(alg, size, time.Duration(ms*float64(time.Millisecond)), true)
}

func TestSummarize_FastestSlowestAndRatios(t *testing.T) {
	report := &Report{
		Mode: ModeSkip,
		Tiers: []SizeTierResults{{
			Size: 10000,
			Results: []RunResult{
				Skipped("Selection Sort", 10000),
				Skipped("Bubble Sort", 10000),
				cell("Quick Sort", 10000, 4),
				cell("Merge Sort", 10000, 8),
				cell("Heap Sort", 10000, 2),
			},
		}},
	}

	s := Summarize(report)
	require.Len(t, s.Tiers, 1)
	tier := s.Tiers[0]

	require.NotNil(t, tier.Fastest)
	require.NotNil(t, tier.Slowest)
	assert.Equal(t, "Heap Sort", tier.Fastest.Algorithm)
	assert.Equal(t, "Merge Sort", tier.Slowest.Algorithm)
	assert.Equal(t, 3, tier.Completed)
	assert.Equal(t, 5, tier.Correct)
	assert.InDelta(t, 4.0, tier.SpeedRatio, 1e-9)

	require.Len(t, tier.Ratios, 3)
	assert.Equal(t, "Quick Sort", tier.Ratios[0].Algorithm)
	assert.InDelta(t, 2.0, tier.Ratios[0].Ratio, 1e-9)
	assert.InDelta(t, 1.0, tier.Ratios[2].Ratio, 1e-9)

	assert.Equal(t, []string{"Selection Sort", "Bubble Sort", "Quick Sort", "Merge Sort", "Heap Sort"}, s.Algorithms)
	assert.Equal(t, "O(n log n) - Linearithmic", s.Complexity["Heap Sort"])
}

func TestSummarize_TieKeepsFirst(t *testing.T) {
	s := Summarize(&Report{Tiers: []SizeTierResults{{
		Size:    5,
		Results: []RunResult{cell("Quick Sort", 5, 1), cell("Merge Sort", 5, 1), cell("Heap Sort", 5, 1)},
	}}})
	assert.Equal(t, "Quick Sort", s.Tiers[0].Fastest.Algorithm)
	assert.Equal(t, "Quick Sort", s.Tiers[0].Slowest.Algorithm)
}

func TestSummarize_NoCompletedRecords(t *testing.T) {
	s := Summarize(&Report{Tiers: []SizeTierResults{{
		Size:    100,
		Results: []RunResult{Skipped("Bubble Sort", 100), Failed("Quick Sort", 100, "boom")},
	}}})
	tier := s.Tiers[0]
	assert.Nil(t, tier.Fastest)
	assert.Nil(t, tier.Slowest)
	assert.Empty(t, tier.Ratios)
	assert.Zero(t, tier.SpeedRatio)
	assert.Equal(t, 1, tier.Correct)
}

func TestSummarize_ZeroFastestOmitsRatios(t *testing.T) {
	s := Summarize(&Report{Tiers: []SizeTierResults{{
		Size:    0,
		Results: []RunResult{cell("Quick Sort", 0, 0), cell("Heap Sort", 0, 0.5)},
	}}})
	tier := s.Tiers[0]
	assert.Equal(t, "Quick Sort", tier.Fastest.Algorithm)
	assert.Empty(t, tier.Ratios)
	assert.Zero(t, tier.SpeedRatio)
}

func TestSummarize_DoesNotMutateReport(t *testing.T) {
	report := &Report{Tiers: []SizeTierResults{{
		Size:    3,
		Results: []RunResult{cell("Quick Sort", 3, 2), cell("Heap Sort", 3, 1)},
	}}}
	s := Summarize(report)
	s.Tiers[0].Results[0].Algorithm = "changed"
	assert.Equal(t, "Quick Sort", report.Tiers[0].Results[0].Algorithm)
}

func TestSummary_LookupAndSeries(t *testing.T) {
	s := Summarize(&Report{Tiers: []SizeTierResults{
		{Size: 1000, Results: []RunResult{cell("Bubble Sort", 1000, 10), cell("Quick Sort", 1000, 1)}},
		{Size: 10000, Results: []RunResult{Skipped("Bubble Sort", 10000), cell("Quick Sort", 10000, 12)}},
	}})

	r, ok := s.Lookup(10000, "Bubble Sort")
	require.True(t, ok)
	assert.Equal(t, StatusSkipped, r.Status)
	_, ok = s.Lookup(5, "Bubble Sort")
	assert.False(t, ok)

	assert.Equal(t, []int{1000, 10000}, s.Sizes())

	series := s.Series()
	require.Len(t, series["Bubble Sort"], 2)
	assert.True(t, series["Bubble Sort"][0].Valid)
	assert.False(t, series["Bubble Sort"][1].Valid)
	assert.InDelta(t, 12.0, series["Quick Sort"][1].TimeMs, 1e-9)
}

func TestSummary_DuplicateSizesStayApart(t *testing.T) {
	first := cell("Quick Sort", 3, 1)
	first.Message = "first"
	second := cell("Quick Sort", 3, 5)
	second.Message = "second"
	s := Summarize(&Report{Tiers: []SizeTierResults{
		{Size: 3, Results: []RunResult{first}},
		{Size: 3, Results: []RunResult{second}},
	}})

	r, ok := s.Lookup(3, "Quick Sort")
	require.True(t, ok)
	assert.Equal(t, "first", r.Message)

	r, ok = s.LookupTier(1, "Quick Sort")
	require.True(t, ok)
	assert.Equal(t, "second", r.Message)
	_, ok = s.LookupTier(2, "Quick Sort")
	assert.False(t, ok)

	points := s.Series()["Quick Sort"]
	require.Len(t, points, 2)
	assert.InDelta(t, 1.0, points[0].TimeMs, 1e-9)
	assert.InDelta(t, 5.0, points[1].TimeMs, 1e-9)
}

func TestSummarize_Nil(t *testing.T) {
	s := Summarize(nil)
	assert.Empty(t, s.Tiers)
	_, ok := s.Lookup(1, "x")
	assert.False(t, ok)
}

func TestComparison_String(t *testing.T) {
	c := Comparison{Algorithm: "Heap Sort", TimeMs: 2, Ratio: 1.5}
	assert.Equal(t, "Heap Sort: 2.00 ms (1.5x)", c.String())
}
