package benchmark

import (
	"fmt"
	"strings"
)

const (
	// DefaultQuadraticThreshold is the size at which O(n²) algorithms stop being run.
	DefaultQuadraticThreshold = 10000
	// DefaultSelectionThreshold is the size at which the selection-only policy skips Selection Sort.
	DefaultSelectionThreshold = 50000
)

// Policy names accepted by PolicyByName.
const (
	PolicyQuadratic     = "quadratic"
	PolicySelectionOnly = "selection-only"
	PolicyNone          = "none"
)

// SkipRule skips Algorithm once the dataset size reaches MinSize.
type SkipRule struct {
	Algorithm Algorithm `json:"algorithm"`
	MinSize   int       `json:"min_size"`
}

// SkipPolicy is a set of static thresholds. The zero value never skips.
type SkipPolicy struct {
	Name  string     `json:"name"`
	Rules []SkipRule `json:"rules"`
}

// ShouldSkip reports whether alg must not be executed at the given size.
func (p SkipPolicy) ShouldSkip(alg Algorithm, size int) bool {
	for _, r := range p.Rules {
		if r.Algorithm == alg && size >= r.MinSize {
			return true
		}
	}
	return false
}

// QuadraticPolicy skips every O(n²) catalog member from threshold upwards.
func QuadraticPolicy(threshold int) SkipPolicy {
	p := SkipPolicy{Name: PolicyQuadratic}
	for _, a := range Catalog() {
		if a.Quadratic() {
			p.Rules = append(p.Rules, SkipRule{Algorithm: a, MinSize: threshold})
		}
	}
	return p
}

// SelectionOnlyPolicy skips only Selection Sort from threshold upwards.
func SelectionOnlyPolicy(threshold int) SkipPolicy {
	return SkipPolicy{
		Name:  PolicySelectionOnly,
		Rules: []SkipRule{{Algorithm: SelectionSort, MinSize: threshold}},
	}
}

// NoSkipPolicy never skips anything.
func NoSkipPolicy() SkipPolicy { return SkipPolicy{Name: PolicyNone} }

// PolicyByName builds one of the named policies. quadraticAt and selectionAt
// are only used by the policy they belong to.
func PolicyByName(name string, quadraticAt, selectionAt int) (SkipPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyQuadratic, "":
		if quadraticAt <= 0 {
			return SkipPolicy{}, fmt.Errorf("%w: skip threshold must be positive, got %d", ErrInvalidConfig, quadraticAt)
		}
		return QuadraticPolicy(quadraticAt), nil
	case PolicySelectionOnly:
		if selectionAt <= 0 {
			return SkipPolicy{}, fmt.Errorf("%w: selection skip threshold must be positive, got %d", ErrInvalidConfig, selectionAt)
		}
		return SelectionOnlyPolicy(selectionAt), nil
	case PolicyNone:
		return NoSkipPolicy(), nil
	}
	return SkipPolicy{}, fmt.Errorf("%w: unknown skip policy %q", ErrInvalidConfig, name)
}
