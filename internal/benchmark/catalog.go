package benchmark

import (
	"fmt"
	"strings"
)

// SortFunc returns an ascending copy of its input. Implementations must not
// rely on the caller's slice staying untouched, nor modify it in a way the
// caller can observe after cloning.
type SortFunc func([]int) []int

// Algorithm is one member of the fixed sort catalog.
type Algorithm int

const (
	SelectionSort Algorithm = iota
	BubbleSort
	QuickSort
	MergeSort
	HeapSort
)

type algorithmInfo struct {
	name       string
	key        string
	complexity string
	quadratic  bool
	sort       SortFunc
}

var algorithms = [...]algorithmInfo{
	SelectionSort: {"Selection Sort", "selection", "O(n²) - Quadratic", true, selectionSort},
	BubbleSort:    {"Bubble Sort", "bubble", "O(n²) - Quadratic", true, bubbleSort},
	QuickSort:     {"Quick Sort", "quick", "O(n log n) - Linearithmic (average)", false, quickSort},
	MergeSort:     {"Merge Sort", "merge", "O(n log n) - Linearithmic", false, mergeSort},
	HeapSort:      {"Heap Sort", "heap", "O(n log n) - Linearithmic", false, heapSort},
}

// Catalog returns the algorithms in reporting order.
func Catalog() []Algorithm {
	return []Algorithm{SelectionSort, BubbleSort, QuickSort, MergeSort, HeapSort}
}

func (a Algorithm) valid() bool { return a >= 0 && int(a) < len(algorithms) }

// Name is the display name used in reports, e.g. "Quick Sort".
func (a Algorithm) Name() string {
	if !a.valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithms[a].name
}

func (a Algorithm) String() string { return a.Name() }

// Key is the short identifier accepted on the command line.
func (a Algorithm) Key() string {
	if !a.valid() {
		return ""
	}
	return algorithms[a].key
}

// Complexity is the textbook time complexity annotation.
func (a Algorithm) Complexity() string {
	if !a.valid() {
		return ""
	}
	return algorithms[a].complexity
}

// Quadratic reports whether the algorithm is O(n²).
func (a Algorithm) Quadratic() bool {
	return a.valid() && algorithms[a].quadratic
}

// Sort returns the algorithm's sort function.
func (a Algorithm) Sort() SortFunc {
	if !a.valid() {
		return nil
	}
	return algorithms[a].sort
}

// ParseAlgorithm resolves a display name ("Merge Sort") or key ("merge").
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimSuffix(strings.TrimSuffix(norm, " sort"), "sort")
	norm = strings.TrimSpace(strings.TrimSuffix(norm, "-"))
	for i, info := range algorithms {
		if norm == info.key {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, s)
}

// ParseAlgorithms resolves a list of names, keeping the given order and
// dropping duplicates. An empty list selects the whole catalog.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}
	seen := make(map[Algorithm]bool, len(names))
	var out []Algorithm
	for _, n := range names {
		a, err := ParseAlgorithm(n)
		if err != nil {
			return nil, err
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out, nil
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("unknown algorithm %d", int(a))
	}
	return []byte(a.Name()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
