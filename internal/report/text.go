package report

import (
	"fmt"
	"io"
	"strings"

	"sortbench/internal/benchmark"
)

// WriteText writes the plain text results file: one block per data size with
// time, correctness mark and status for every algorithm.
func WriteText(w io.Writer, r *benchmark.Report) error {
	var b strings.Builder
	title := "SORTING ALGORITHM COMPARISON"
	if r.Mode == benchmark.ModeNoSkip {
		title += " - NO SKIP"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Run ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Test date: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, tier := range r.Tiers {
		fmt.Fprintf(&b, "\nDATA SIZE: %s\n", FormatSize(tier.Size))
		b.WriteString(strings.Repeat("-", 50) + "\n")
		for _, res := range tier.Results {
			fmt.Fprintf(&b, "%-15s : %-15s | %s %s\n",
				res.Algorithm, FormatTime(res.Time), correctMark(res), statusLabel(res))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func statusLabel(r benchmark.RunResult) string {
	switch {
	case r.Status == benchmark.StatusError && r.Message != "":
		return fmt.Sprintf("%s: %s", r.Status, r.Message)
	case r.Status == benchmark.StatusSkipped:
		return "Skipped (too slow)"
	}
	return string(r.Status)
}
