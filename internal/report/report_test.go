package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"sortbench/internal/benchmark"
)

func sampleReport() *benchmark.Report {
	ms := func(v float64) time.Duration { return time.Duration(v * float64(time.Millisecond)) }
	return &benchmark.Report{
		ID:          "run-1",
		GeneratedAt: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Mode:        benchmark.ModeSkip,
		Tiers: []benchmark.SizeTierResults{
			{Size: 1000, Results: []benchmark.RunResult{
				benchmark.Completed("Bubble Sort", 1000, ms(40), true),
				benchmark.Completed("Merge Sort", 1000, ms(2), true),
			}},
			{Size: 10000, Results: []benchmark.RunResult{
				benchmark.Skipped("Bubble Sort", 10000),
				benchmark.Completed("Merge Sort", 10000, ms(1500), true),
			}},
		},
	}
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "0.0 ms", FormatMs(0))
	assert.Equal(t, "12.3 ms", FormatMs(12.34))
	assert.Equal(t, "999.9 ms", FormatMs(999.94))
	assert.Equal(t, "1,000 ms", FormatMs(1000))
	assert.Equal(t, "1,235 ms", FormatMs(1234.6))
	assert.Equal(t, "1,234,568 ms", FormatMs(1234567.8))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0", FormatSize(0))
	assert.Equal(t, "999", FormatSize(999))
	assert.Equal(t, "10,000", FormatSize(10000))
	assert.Equal(t, "1,000,000", FormatSize(1000000))
	assert.Equal(t, "-123,456", FormatSize(-123456))
	assert.Equal(t, "-1,000", FormatSize(-1000))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "Skipped", FormatTime(benchmark.SkippedTime()))
	assert.Equal(t, "Timeout", FormatTime(benchmark.TimeoutTime()))
	assert.Equal(t, "2.5 ms", FormatTime(benchmark.Millis(2.5)))
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, NewDocument(sampleReport())))

	var decoded struct {
		Report struct {
			ID    string `json:"id"`
			Tiers []struct {
				Size    int `json:"size"`
				Results []struct {
					Algorithm string          `json:"algorithm"`
					Time      json.RawMessage `json:"time_ms"`
					Status    string          `json:"status"`
				} `json:"results"`
			} `json:"tiers"`
		} `json:"report"`
		Summary struct {
			Tiers []struct {
				Fastest struct {
					Algorithm string `json:"algorithm"`
				} `json:"fastest"`
			} `json:"tiers"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded.Report.ID)
	require.Len(t, decoded.Report.Tiers, 2)
	assert.Equal(t, `"Skipped"`, string(decoded.Report.Tiers[1].Results[0].Time))
	assert.Equal(t, "Skipped", decoded.Report.Tiers[1].Results[0].Status)
	assert.Equal(t, "Merge Sort", decoded.Summary.Tiers[0].Fastest.Algorithm)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, NewDocument(sampleReport())))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "report")
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, buf.String(), "time_ms: Skipped")
	assert.Contains(t, buf.String(), "algorithm: Merge Sort")
}

func TestEncode(t *testing.T) {
	doc := NewDocument(sampleReport())
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, "json"))
	assert.True(t, json.Valid(buf.Bytes()))

	buf.Reset()
	require.NoError(t, Encode(&buf, doc, "yml"))
	assert.Contains(t, buf.String(), "report:")

	assert.Error(t, Encode(&buf, doc, "xml"))
}

func TestWriteText(t *testing.T) {
	r := sampleReport()
	r.Tiers[1].Results = append(r.Tiers[1].Results, benchmark.Failed("Heap Sort", 10000, "boom"))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "SORTING ALGORITHM COMPARISON\n"))
	assert.Contains(t, out, "Run ID: run-1")
	assert.Contains(t, out, "Test date: 2024-05-01 12:30:00")
	assert.Contains(t, out, "DATA SIZE: 10,000")
	assert.Contains(t, out, "Bubble Sort     : Skipped         | ✓ Skipped (too slow)")
	assert.Contains(t, out, "Merge Sort      : 1,500 ms        | ✓ Completed")
	assert.Contains(t, out, "Heap Sort       : Error: boom     | ✗ Error: boom")

	r.Mode = benchmark.ModeNoSkip
	buf.Reset()
	require.NoError(t, WriteText(&buf, r))
	assert.True(t, strings.HasPrefix(buf.String(), "SORTING ALGORITHM COMPARISON - NO SKIP\n"))
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(benchmark.Summarize(sampleReport()))

	assert.Contains(t, out, "| Data size | Bubble Sort | Merge Sort |")
	assert.Contains(t, out, "| 1,000 | 40.0 ms | 2.0 ms |")
	assert.Contains(t, out, "| 10,000 | Skipped | 1,500 ms |")
	assert.Contains(t, out, "- **Fastest:** Merge Sort (2.0 ms)")
	assert.Contains(t, out, "- **Slowest:** Bubble Sort (40.0 ms)")
	assert.Contains(t, out, "- **Speed ratio:** 20.0x")
	assert.Contains(t, out, "- `Bubble Sort`: O(n²) - Quadratic")
}

func TestRenderMarkdown_NoCompletedTier(t *testing.T) {
	r := &benchmark.Report{Tiers: []benchmark.SizeTierResults{{
		Size:    100,
		Results: []benchmark.RunResult{benchmark.Skipped("Bubble Sort", 100)},
	}}}
	out := RenderMarkdown(benchmark.Summarize(r))
	assert.Contains(t, out, "no algorithm completed at this size")
}
