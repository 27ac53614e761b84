package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sortbench/internal/benchmark"
	"sortbench/internal/report"
)

// RenderTable renders one table per size tier followed by the size ×
// algorithm comparison table and the fastest/slowest analysis.
func RenderTable(s benchmark.Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("SORTING ALGORITHM COMPARISON (%s)", s.Mode)))
	b.WriteString("\n")

	for _, t := range s.Tiers {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("Summary for %s values", report.FormatSize(t.Size))))
		b.WriteString("\n")
		b.WriteString(renderTier(t))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Comparison"))
	b.WriteString("\n")
	b.WriteString(RenderComparison(s))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Analysis"))
	b.WriteString("\n")
	b.WriteString(renderAnalysis(s))
	return b.String()
}

func renderTier(t benchmark.TierSummary) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("ALGORITHM", "TIME", "STATUS", "RESULT")

	for _, r := range t.Results {
		mark := "✅"
		if !r.IsCorrect {
			mark = "❌"
		}
		tbl.Row(r.Algorithm, report.FormatTime(r.Time), string(r.Status), mark)
	}

	results := t.Results
	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tableHeaderStyle
		}
		if row < 0 || row >= len(results) {
			return tableCellStyle
		}
		r := results[row]
		switch {
		case col == 2:
			return tableCellStyle.Inherit(statusStyle(r.Status))
		case col == 1 && t.Fastest != nil && r.Algorithm == t.Fastest.Algorithm:
			return tableCellStyle.Inherit(fastestStyle)
		case col == 1 && t.Slowest != nil && r.Algorithm == t.Slowest.Algorithm && t.Completed > 1:
			return tableCellStyle.Inherit(slowestStyle)
		}
		return tableCellStyle
	})
	return tbl.String()
}

// RenderComparison renders the size × algorithm time matrix.
func RenderComparison(s benchmark.Summary) string {
	headers := append([]string{"DATA SIZE"}, s.Algorithms...)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...)

	for i, t := range s.Tiers {
		row := []string{report.FormatSize(t.Size)}
		for _, alg := range s.Algorithms {
			cell := "N/A"
			if r, ok := s.LookupTier(i, alg); ok {
				cell = report.FormatTime(r.Time)
			}
			row = append(row, cell)
		}
		tbl.Row(row...)
	}
	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tableHeaderStyle
		}
		return tableCellStyle.Align(lipgloss.Right)
	})
	return tbl.String()
}

func renderAnalysis(s benchmark.Summary) string {
	var b strings.Builder
	for _, t := range s.Tiers {
		fmt.Fprintf(&b, "%s values:\n", report.FormatSize(t.Size))
		if t.Fastest == nil {
			b.WriteString("  no completed runs\n")
			continue
		}
		fast, _ := t.Fastest.Time.Ms()
		slow, _ := t.Slowest.Time.Ms()
		fmt.Fprintf(&b, "  ⚡ Fastest: %s\n", fastestStyle.Render(fmt.Sprintf("%s (%s)", t.Fastest.Algorithm, report.FormatMs(fast))))
		fmt.Fprintf(&b, "  🐢 Slowest: %s\n", slowestStyle.Render(fmt.Sprintf("%s (%s)", t.Slowest.Algorithm, report.FormatMs(slow))))
		if t.SpeedRatio > 0 && t.Completed > 1 {
			fmt.Fprintf(&b, "  📏 Speed ratio: %.1fx\n", t.SpeedRatio)
			for _, c := range t.Ratios {
				fmt.Fprintf(&b, "     %-15s %12s (%5.1fx)\n", c.Algorithm, report.FormatMs(c.TimeMs), c.Ratio)
			}
		}
	}
	if len(s.Complexity) > 0 {
		b.WriteString("\nComplexity:\n")
		for _, alg := range s.Algorithms {
			if c, ok := s.Complexity[alg]; ok {
				fmt.Fprintf(&b, "  %-15s: %s\n", alg, c)
			}
		}
	}
	return b.String()
}

func statusStyle(st benchmark.Status) lipgloss.Style {
	switch st {
	case benchmark.StatusCompleted:
		return completedStyle
	case benchmark.StatusSkipped:
		return skippedStyle
	}
	return errorStyle
}

// RenderChart draws one horizontal bar per algorithm and size on a log10
// scale, so quadratic and linearithmic times stay readable side by side.
func RenderChart(s benchmark.Summary, width int) string {
	if width < 10 {
		width = 40
	}
	series := s.Series()

	maxLog := 0.0
	for _, points := range series {
		for _, p := range points {
			if p.Valid {
				maxLog = math.Max(maxLog, logScale(p.TimeMs))
			}
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Execution time (log scale)"))
	b.WriteString("\n")
	for i, size := range s.Sizes() {
		b.WriteString(sectionStyle.Render(report.FormatSize(size) + " values"))
		b.WriteString("\n")
		for _, alg := range s.Algorithms {
			p := series[alg][i]
			label := labelStyle.Render(alg)
			if !p.Valid {
				cell := "N/A"
				if r, ok := s.LookupTier(i, alg); ok {
					cell = report.FormatTime(r.Time)
				}
				fmt.Fprintf(&b, "%s %s\n", label, skippedStyle.Render(cell))
				continue
			}
			n := 1
			if maxLog > 0 {
				n = int(math.Round(logScale(p.TimeMs) / maxLog * float64(width)))
			}
			if n < 1 {
				n = 1
			}
			fmt.Fprintf(&b, "%s %s %s\n", label, barStyle.Render(strings.Repeat("█", n)), report.FormatMs(p.TimeMs))
		}
	}
	return b.String()
}

// logScale maps milliseconds to log10(1 + 1000·ms), keeping sub-millisecond
// times visible and the result non-negative.
func logScale(ms float64) float64 {
	if ms <= 0 {
		return 0
	}
	return math.Log10(1 + ms*1000)
}

// RenderAlgorithms lists the catalog with its complexity classes.
func RenderAlgorithms(algs []benchmark.Algorithm) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("KEY", "ALGORITHM", "COMPLEXITY", "SKIPPED ON LARGE DATA")
	for _, a := range algs {
		skipped := ""
		if a.Quadratic() {
			skipped = "yes"
		}
		tbl.Row(a.Key(), a.Name(), a.Complexity(), skipped)
	}
	tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return tableHeaderStyle
		}
		return tableCellStyle
	})
	return tbl.String()
}
