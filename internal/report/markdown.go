package report

import (
	"fmt"
	"strings"

	"sortbench/internal/benchmark"
)

// RenderMarkdown produces the comparison table followed by the per-size
// performance analysis and the complexity reference.
func RenderMarkdown(s benchmark.Summary) string {
	var b strings.Builder
	b.WriteString("# Sorting Algorithm Comparison\n\n")
	fmt.Fprintf(&b, "- generated_at: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- mode: %s\n\n", s.Mode)

	b.WriteString("## Comparison Table\n\n")
	b.WriteString("| Data size |")
	for _, alg := range s.Algorithms {
		fmt.Fprintf(&b, " %s |", alg)
	}
	b.WriteString("\n| ---: |")
	for range s.Algorithms {
		b.WriteString(" ---: |")
	}
	b.WriteString("\n")
	for i, t := range s.Tiers {
		fmt.Fprintf(&b, "| %s |", FormatSize(t.Size))
		for _, alg := range s.Algorithms {
			cell := "N/A"
			if r, ok := s.LookupTier(i, alg); ok {
				cell = FormatTime(r.Time)
			}
			fmt.Fprintf(&b, " %s |", cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Performance Analysis\n")
	for _, t := range s.Tiers {
		fmt.Fprintf(&b, "\n### %s values\n\n", FormatSize(t.Size))
		if t.Fastest == nil {
			b.WriteString("- no algorithm completed at this size\n")
			continue
		}
		fastMs, _ := t.Fastest.Time.Ms()
		slowMs, _ := t.Slowest.Time.Ms()
		fmt.Fprintf(&b, "- **Fastest:** %s (%s)\n", t.Fastest.Algorithm, FormatMs(fastMs))
		fmt.Fprintf(&b, "- **Slowest:** %s (%s)\n", t.Slowest.Algorithm, FormatMs(slowMs))
		fmt.Fprintf(&b, "- **Correct:** %d/%d\n", t.Correct, len(t.Results))
		if t.Completed > 1 && t.SpeedRatio > 0 {
			fmt.Fprintf(&b, "- **Speed ratio:** %.1fx\n\n", t.SpeedRatio)
			b.WriteString("| Algorithm | Time | vs fastest |\n| --- | ---: | ---: |\n")
			for _, c := range t.Ratios {
				fmt.Fprintf(&b, "| %s | %s | %.1fx |\n", c.Algorithm, FormatMs(c.TimeMs), c.Ratio)
			}
		}
	}

	if len(s.Complexity) > 0 {
		b.WriteString("\n## Complexity\n\n")
		for _, alg := range s.Algorithms {
			if c, ok := s.Complexity[alg]; ok {
				fmt.Fprintf(&b, "- `%s`: %s\n", alg, c)
			}
		}
	}
	return b.String()
}
