package benchmark

// selectionSort moves the minimum of the unsorted suffix into place on each pass.
func selectionSort(in []int) []int {
	arr := clone(in)
	n := len(arr)
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if arr[j] < arr[minIdx] {
				minIdx = j
			}
		}
		arr[i], arr[minIdx] = arr[minIdx], arr[i]
	}
	return arr
}

// bubbleSort stops early once a full pass makes no swap.
func bubbleSort(in []int) []int {
	arr := clone(in)
	n := len(arr)
	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return arr
}

// quickSort partitions around the middle element into less, equal and greater
// runs and concatenates the sorted outer runs around the equal block.
// Recursion depth is bounded by the number of distinct values, so heavy
// duplication cannot blow the stack.
func quickSort(arr []int) []int {
	if len(arr) <= 1 {
		return clone(arr)
	}
	pivot := arr[len(arr)/2]
	var less, equal, greater []int
	for _, x := range arr {
		switch {
		case x < pivot:
			less = append(less, x)
		case x > pivot:
			greater = append(greater, x)
		default:
			equal = append(equal, x)
		}
	}
	out := make([]int, 0, len(arr))
	out = append(out, quickSort(less)...)
	out = append(out, equal...)
	out = append(out, quickSort(greater)...)
	return out
}

func mergeSort(arr []int) []int {
	if len(arr) <= 1 {
		return clone(arr)
	}
	mid := len(arr) / 2
	return merge(mergeSort(arr[:mid]), mergeSort(arr[mid:]))
}

// merge takes from the left run on ties, keeping the sort stable.
func merge(left, right []int) []int {
	out := make([]int, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}

func heapSort(in []int) []int {
	arr := clone(in)
	n := len(arr)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(arr, n, i)
	}
	for end := n - 1; end > 0; end-- {
		arr[0], arr[end] = arr[end], arr[0]
		siftDown(arr, end, 0)
	}
	return arr
}

// siftDown restores the max-heap property for the subtree rooted at i within arr[:n].
func siftDown(arr []int, n, i int) {
	for {
		largest := i
		l, r := 2*i+1, 2*i+2
		if l < n && arr[l] > arr[largest] {
			largest = l
		}
		if r < n && arr[r] > arr[largest] {
			largest = r
		}
		if largest == i {
			return
		}
		arr[i], arr[largest] = arr[largest], arr[i]
		i = largest
	}
}

func clone(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
