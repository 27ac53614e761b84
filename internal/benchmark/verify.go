package benchmark

// Verify reports whether seq is in non-decreasing order.
// Empty and single-element sequences are trivially sorted.
func Verify(seq []int) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i-1] > seq[i] {
			return false
		}
	}
	return true
}
