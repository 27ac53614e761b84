package report

import (
	"fmt"
	"strconv"
	"strings"

	"sortbench/internal/benchmark"
)

// FormatMs renders a millisecond value: one decimal below a second,
// thousands-separated whole milliseconds above.
func FormatMs(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.1f ms", ms)
	}
	return groupThousands(int64(ms+0.5)) + " ms"
}

// FormatTime renders a record's time, passing sentinels through.
func FormatTime(t benchmark.TimeValue) string {
	if ms, ok := t.Ms(); ok {
		return FormatMs(ms)
	}
	return t.Sentinel()
}

// FormatSize renders a dataset size with thousands separators.
func FormatSize(n int) string {
	return groupThousands(int64(n))
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func correctMark(r benchmark.RunResult) string {
	if r.IsCorrect {
		return "✓"
	}
	return "✗"
}
