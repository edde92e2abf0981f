package sorting

import "github.com/bayanflow/bayan-flow/internal/i18n"

// Quick is Lomuto-partition quicksort with the last element as pivot.
func Quick(input []int) []Step {
	r := newRecorder(input, "Quick Sort")
	r.quick(0, len(r.arr)-1)
	return r.finish()
}

func (r *recorder) quick(low, high int) {
	if low >= high {
		return
	}
	p := r.partition(low, high)
	r.quick(low, p-1)
	r.quick(p+1, high)
}

func (r *recorder) partition(low, high int) int {
	arr := r.arr
	pivot := arr[high]

	states := r.fresh()
	states[high] = Pivot
	r.push(states, "pivotSelected", i18n.Args{"pivot": pivot, "index": high})

	i := low - 1
	for j := low; j < high; j++ {
		cmp := r.fresh()
		cmp[high] = Pivot
		cmp[j] = Comparing
		if i >= 0 {
			cmp[i] = Auxiliary
		}
		r.push(cmp, "comparing", i18n.Args{"a": arr[j], "b": pivot})

		if arr[j] < pivot {
			i++
			arr[i], arr[j] = arr[j], arr[i]
			swap := r.fresh()
			swap[high] = Pivot
			swap[i], swap[j] = Swapping, Swapping
			r.push(swap, "swapping", i18n.Args{"a": arr[i], "b": arr[j]})
		}
	}

	arr[i+1], arr[high] = arr[high], arr[i+1]
	placed := r.fresh()
	placed[i+1] = Sorted
	r.push(placed, "pivotPlaced", i18n.Args{"pivot": pivot, "position": i + 1})
	return i + 1
}

// Merge is top-down merge sort.
func Merge(input []int) []Step {
	r := newRecorder(input, "Merge Sort")
	r.mergeSort(0, len(r.arr)-1)
	return r.finish()
}

func (r *recorder) mergeSort(left, right int) {
	if left >= right {
		return
	}
	mid := (left + right) / 2

	states := r.fresh()
	for i := left; i <= mid; i++ {
		states[i] = Comparing
	}
	for i := mid + 1; i <= right; i++ {
		states[i] = Auxiliary
	}
	r.push(states, "dividing", i18n.Args{"start": left, "mid": mid, "midNext": mid + 1, "end": right})

	r.mergeSort(left, mid)
	r.mergeSort(mid+1, right)
	r.merge(left, mid, right)
}

func (r *recorder) merge(left, mid, right int) {
	arr := r.arr
	lhs := append([]int(nil), arr[left:mid+1]...)
	rhs := append([]int(nil), arr[mid+1:right+1]...)

	placeAt := func(k int, key string) {
		s := r.fresh()
		s[k] = Swapping
		r.push(s, key, i18n.Args{"value": arr[k], "position": k})
	}

	i, j, k := 0, 0, left
	for i < len(lhs) && j < len(rhs) {
		cmp := r.fresh()
		cmp[k] = Comparing
		r.push(cmp, "merging", i18n.Args{"a": lhs[i], "b": rhs[j]})

		if lhs[i] <= rhs[j] {
			arr[k] = lhs[i]
			i++
		} else {
			arr[k] = rhs[j]
			j++
		}
		placeAt(k, "placed")
		k++
	}
	for ; i < len(lhs); i, k = i+1, k+1 {
		arr[k] = lhs[i]
		placeAt(k, "placedRemaining")
	}
	for ; j < len(rhs); j, k = j+1, k+1 {
		arr[k] = rhs[j]
		placeAt(k, "placedRemaining")
	}

	r.push(r.freshSorted(left, right+1), "mergedSection", i18n.Args{"start": left, "end": right})
}

// Heap builds a max-heap and repeatedly moves the root behind the heap.
func Heap(input []int) []Step {
	r := newRecorder(input, "Heap Sort")
	arr := r.arr
	n := len(arr)

	for i := n/2 - 1; i >= 0; i-- {
		r.heapify(n, i)
	}
	for i := n - 1; i > 0; i-- {
		arr[0], arr[i] = arr[i], arr[0]
		swap := r.freshSorted(i+1, n)
		swap[0], swap[i] = Swapping, Swapping
		r.push(swap, "heapExtractMax", i18n.Args{"value": arr[i], "position": i})
		r.push(r.freshSorted(i, n), "heapPlaced", i18n.Args{"value": arr[i], "position": i})
		r.heapify(i, 0)
	}
	return r.finish()
}

func (r *recorder) heapify(size, i int) {
	arr := r.arr
	n := len(arr)
	for {
		largest := i
		left, right := 2*i+1, 2*i+2

		cmp := r.freshSorted(size, n)
		cmp[i] = Comparing
		if left < size {
			cmp[left] = Comparing
		}
		if right < size {
			cmp[right] = Comparing
		}
		r.push(cmp, "heapHeapify", i18n.Args{"index": i, "value": arr[i]})

		if left < size && arr[left] > arr[largest] {
			largest = left
		}
		if right < size && arr[right] > arr[largest] {
			largest = right
		}
		if largest == i {
			return
		}

		arr[i], arr[largest] = arr[largest], arr[i]
		swap := r.freshSorted(size, n)
		swap[i], swap[largest] = Swapping, Swapping
		r.push(swap, "swapping", i18n.Args{"a": arr[largest], "b": arr[i]})
		i = largest
	}
}
