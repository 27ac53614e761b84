package benchmark

import (
	"context"
	"fmt"
	"time"
)

type sortOutcome struct {
	sorted  []int
	elapsed time.Duration
	err     error
}

// Measure times one sort of a private copy of data and verifies the output.
//
// A panic inside sortFn becomes an Error record instead of unwinding the
// caller. When timeout is positive, or ctx is cancelled first, the cell is
// reported as timed out; the abandoned sort keeps running on its own copy
// until it returns because goroutines cannot be stopped from outside.
func Measure(ctx context.Context, name string, sortFn SortFunc, data []int, timeout time.Duration) RunResult {
	size := len(data)
	if sortFn == nil {
		return Failed(name, size, "no sort function")
	}
	if err := ctx.Err(); err != nil {
		return cancelled(name, size, timeout, err)
	}
	input := clone(data)

	if timeout <= 0 && ctx.Done() == nil {
		return finish(name, size, runSort(sortFn, input))
	}

	done := make(chan sortOutcome, 1)
	go func() { done <- runSort(sortFn, input) }()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case out := <-done:
		return finish(name, size, out)
	case <-expired:
		return TimedOut(name, size, timeout)
	case <-ctx.Done():
		return cancelled(name, size, timeout, ctx.Err())
	}
}

func cancelled(name string, size int, timeout time.Duration, err error) RunResult {
	r := TimedOut(name, size, timeout)
	r.Message = fmt.Sprintf("cancelled: %v", err)
	return r
}

// runSort keeps the timing window tight around the sort call itself.
func runSort(sortFn SortFunc, input []int) (out sortOutcome) {
	defer func() {
		if p := recover(); p != nil {
			out = sortOutcome{err: fmt.Errorf("%v", p)}
		}
	}()
	start := time.Now()
	sorted := sortFn(input)
	return sortOutcome{sorted: sorted, elapsed: time.Since(start)}
}

func finish(name string, size int, out sortOutcome) RunResult {
	if out.err != nil {
		return Failed(name, size, out.err.Error())
	}
	if out.elapsed < 0 {
		out.elapsed = 0
	}
	return Completed(name, size, out.elapsed, Verify(out.sorted))
}
