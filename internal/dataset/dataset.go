package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	// DefaultMin and DefaultMax bound generated values (inclusive).
	DefaultMin = 1
	DefaultMax = 1000000
)

var (
	ErrInvalidRange  = errors.New("invalid value range")
	ErrInvalidSize   = errors.New("invalid dataset size")
	ErrNoNumericData = errors.New("no valid numeric data found")
)

// Generator draws uniformly distributed integers from [Min, Max].
// A zero Seed seeds from the clock; any other seed makes output repeatable.
type Generator struct {
	Min  int
	Max  int
	Seed int64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator over [min, max].
func NewGenerator(min, max int, seed int64) (*Generator, error) {
	if err := CheckRange(min, max); err != nil {
		return nil, err
	}
	return &Generator{Min: min, Max: max, Seed: seed}, nil
}

// CheckRange reports whether [min, max] can be sampled: min must not exceed
// max and the range may hold at most math.MaxInt64 values.
func CheckRange(min, max int) error {
	if min > max {
		return fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, min, max)
	}
	// The unsigned difference is exact for any min <= max.
	if uint64(int64(max))-uint64(int64(min)) >= math.MaxInt64 {
		return fmt.Errorf("%w: range [%d, %d] is too wide", ErrInvalidRange, min, max)
	}
	return nil
}

// Default returns a clock-seeded generator over the standard range.
func Default() *Generator {
	return &Generator{Min: DefaultMin, Max: DefaultMax}
}

// Dataset returns size fresh values. Successive calls continue the same
// random stream, so tiers of one run get different data even with a fixed seed.
func (g *Generator) Dataset(ctx context.Context, size int) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if err := CheckRange(g.Min, g.Max); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rng == nil {
		seed := g.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}

	span := int64(g.Max) - int64(g.Min) + 1
	out := make([]int, size)
	for i := range out {
		out[i] = g.Min + int(g.rng.Int63n(span))
	}
	return out, nil
}

// Static hands out one fixed dataset, typically uploaded by the user.
type Static struct {
	Values []int
}

// Dataset returns a copy of the stored values. The requested size must be
// zero or match the stored length.
func (s Static) Dataset(ctx context.Context, size int) ([]int, error) {
	if size != 0 && size != len(s.Values) {
		return nil, fmt.Errorf("%w: requested %d values but %d are loaded", ErrInvalidSize, size, len(s.Values))
	}
	out := make([]int, len(s.Values))
	copy(out, s.Values)
	return out, nil
}

// Preview returns at most n leading values.
func Preview(data []int, n int) []int {
	if n > len(data) {
		n = len(data)
	}
	out := make([]int, n)
	copy(out, data[:n])
	return out
}
