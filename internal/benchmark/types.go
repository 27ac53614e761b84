package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidConfig is returned before any timing starts when a run request is unusable.
	ErrInvalidConfig = errors.New("invalid benchmark configuration")
	// ErrDataset marks a tier whose dataset could not be obtained.
	ErrDataset = errors.New("dataset unavailable")
)

// Status is the terminal state of one (algorithm, size) cell.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusSkipped   Status = "Skipped"
	StatusError     Status = "Error"
)

// Mode selects whether the skip policy is consulted.
type Mode string

const (
	ModeSkip   Mode = "skip"
	ModeNoSkip Mode = "noskip"
)

// ParseMode accepts the mode names used on the command line and in config files.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "skip-enabled", "default", "":
		return ModeSkip, nil
	case "noskip", "no-skip", "skip-disabled", "full":
		return ModeNoSkip, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (want skip or noskip)", ErrInvalidConfig, s)
}

const (
	sentinelSkipped = "Skipped"
	sentinelTimeout = "Timeout"
	sentinelError   = "Error"
)

// TimeValue is either a measured duration in milliseconds or a sentinel string
// such as "Skipped", "Timeout" or "Error: <msg>".
type TimeValue struct {
	ms       float64
	sentinel string
}

// Millis returns a numeric time value.
func Millis(ms float64) TimeValue { return TimeValue{ms: ms} }

// SkippedTime is the placeholder time of a skipped cell.
func SkippedTime() TimeValue { return TimeValue{sentinel: sentinelSkipped} }

// TimeoutTime is the placeholder time of a cell abandoned by the watchdog.
func TimeoutTime() TimeValue { return TimeValue{sentinel: sentinelTimeout} }

// ErrorTime is the placeholder time of a failed cell.
func ErrorTime(msg string) TimeValue {
	if msg == "" {
		return TimeValue{sentinel: sentinelError}
	}
	return TimeValue{sentinel: sentinelError + ": " + msg}
}

// IsNumeric reports whether the value holds a measured time.
func (t TimeValue) IsNumeric() bool { return t.sentinel == "" }

// Ms returns the measured milliseconds and whether the value is numeric.
func (t TimeValue) Ms() (float64, bool) { return t.ms, t.sentinel == "" }

// Sentinel returns the non-numeric marker, or "" for measured values.
func (t TimeValue) Sentinel() string { return t.sentinel }

func (t TimeValue) String() string {
	if t.sentinel != "" {
		return t.sentinel
	}
	return fmt.Sprintf("%.2f", t.ms)
}

func (t TimeValue) MarshalJSON() ([]byte, error) {
	if t.sentinel != "" {
		return json.Marshal(t.sentinel)
	}
	return json.Marshal(t.ms)
}

func (t *TimeValue) UnmarshalJSON(data []byte) error {
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil {
		*t = Millis(ms)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time_ms must be a number or a status string: %w", err)
	}
	if s == "" {
		return errors.New("time_ms sentinel must not be empty")
	}
	*t = TimeValue{sentinel: s}
	return nil
}

// MarshalYAML keeps the YAML export shaped like the JSON one.
func (t TimeValue) MarshalYAML() (interface{}, error) {
	if t.sentinel != "" {
		return t.sentinel, nil
	}
	return t.ms, nil
}

// RunResult is the outcome of attempting one algorithm on one dataset.
type RunResult struct {
	Algorithm string    `json:"algorithm" yaml:"algorithm"`
	Size      int       `json:"data_size" yaml:"data_size"`
	Time      TimeValue `json:"time_ms" yaml:"time_ms"`
	IsCorrect bool      `json:"is_correct" yaml:"is_correct"`
	Status    Status    `json:"status" yaml:"status"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// Completed builds a measured record.
func Completed(alg string, size int, elapsed time.Duration, correct bool) RunResult {
	return RunResult{
		Algorithm: alg,
		Size:      size,
		Time:      Millis(float64(elapsed) / float64(time.Millisecond)),
		IsCorrect: correct,
		Status:    StatusCompleted,
	}
}

// Skipped builds the placeholder for a cell the skip policy declined to run.
// Skipped cells count as correct so they do not drag down correctness rates.
func Skipped(alg string, size int) RunResult {
	return RunResult{
		Algorithm: alg,
		Size:      size,
		Time:      SkippedTime(),
		IsCorrect: true,
		Status:    StatusSkipped,
		Message:   "skipped (too slow for this size)",
	}
}

// Failed builds the record for a cell whose sort aborted.
func Failed(alg string, size int, msg string) RunResult {
	return RunResult{
		Algorithm: alg,
		Size:      size,
		Time:      ErrorTime(msg),
		IsCorrect: false,
		Status:    StatusError,
		Message:   msg,
	}
}

// TimedOut builds the record for a cell abandoned by the watchdog.
func TimedOut(alg string, size int, after time.Duration) RunResult {
	return RunResult{
		Algorithm: alg,
		Size:      size,
		Time:      TimeoutTime(),
		IsCorrect: false,
		Status:    StatusError,
		Message:   fmt.Sprintf("timed out after %s", after),
	}
}

// SizeTierResults holds one record per algorithm, in run order, for a single size.
type SizeTierResults struct {
	Size    int         `json:"size" yaml:"size"`
	Results []RunResult `json:"results" yaml:"results"`
}

// Report is the full outcome of one benchmark invocation.
type Report struct {
	ID          string            `json:"id" yaml:"id"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Mode        Mode              `json:"mode" yaml:"mode"`
	Tiers       []SizeTierResults `json:"tiers" yaml:"tiers"`
}

// Results flattens the report into the ordered list of records.
func (r *Report) Results() []RunResult {
	var out []RunResult
	for _, t := range r.Tiers {
		out = append(out, t.Results...)
	}
	return out
}
