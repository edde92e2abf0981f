package sorting

import "github.com/bayanflow/bayan-flow/internal/i18n"

// Bubble repeatedly swaps adjacent out-of-order pairs and stops after a pass
// without swaps.
func Bubble(input []int) []Step {
	r := newRecorder(input, "Bubble Sort")
	arr := r.arr
	n := len(arr)

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			states := r.freshSorted(n-i, n)
			states[j], states[j+1] = Comparing, Comparing
			r.push(states, "comparing", i18n.Args{"a": arr[j], "b": arr[j+1]})

			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
				swap := append([]ElementState(nil), states...)
				swap[j], swap[j+1] = Swapping, Swapping
				r.push(swap, "swapping", i18n.Args{"a": arr[j+1], "b": arr[j]})
			}
		}
		r.push(r.freshSorted(n-i-1, n), "bubblePassComplete", i18n.Args{"pass": i + 1, "position": n - i - 1})
		if !swapped {
			break
		}
	}
	return r.finish()
}

// Insertion grows a sorted prefix by shifting each key into place.
func Insertion(input []int) []Step {
	r := newRecorder(input, "Insertion Sort")
	arr := r.arr
	n := len(arr)

	for i := 1; i < n; i++ {
		key := arr[i]
		j := i - 1

		states := r.freshSorted(0, i)
		states[i] = Auxiliary
		r.push(states, "insertionKey", i18n.Args{"value": key, "position": i})

		for j >= 0 && arr[j] > key {
			cmp := r.freshSorted(0, i)
			cmp[j] = Comparing
			cmp[j+1] = Auxiliary
			r.push(cmp, "comparing", i18n.Args{"a": arr[j], "b": key})

			old := arr[j]
			arr[j+1] = arr[j]
			shift := r.freshSorted(0, i)
			shift[j] = Auxiliary
			shift[j+1] = Swapping
			r.push(shift, "insertionShift", i18n.Args{"value": old, "from": j, "to": j + 1})
			j--
		}
		arr[j+1] = key

		placed := r.freshSorted(0, i+1)
		placed[j+1] = Swapping
		r.push(placed, "insertionPlaced", i18n.Args{"value": key, "position": j + 1})
		r.push(r.freshSorted(0, i+1), "insertionPassComplete", i18n.Args{"pass": i, "elements": i + 1})
	}
	return r.finish()
}

// Selection swaps the minimum of the unsorted suffix into place.
func Selection(input []int) []Step {
	r := newRecorder(input, "Selection Sort")
	arr := r.arr
	n := len(arr)

	for i := 0; i < n-1; i++ {
		minIdx := i
		states := r.freshSorted(0, i)
		states[i] = Pivot
		r.push(states, "selectionFindingMin", i18n.Args{"position": i})

		for j := i + 1; j < n; j++ {
			cmp := r.freshSorted(0, i)
			cmp[i] = Pivot
			cmp[minIdx] = Auxiliary
			cmp[j] = Comparing
			r.push(cmp, "comparing", i18n.Args{"a": arr[j], "b": arr[minIdx]})

			if arr[j] < arr[minIdx] {
				minIdx = j
				found := r.freshSorted(0, i)
				found[i] = Pivot
				found[minIdx] = Auxiliary
				r.push(found, "selectionNewMin", i18n.Args{"value": arr[minIdx], "position": minIdx})
			}
		}

		if minIdx != i {
			arr[i], arr[minIdx] = arr[minIdx], arr[i]
			swap := r.freshSorted(0, i)
			swap[i], swap[minIdx] = Swapping, Swapping
			r.push(swap, "swapping", i18n.Args{"a": arr[minIdx], "b": arr[i]})
		}
		r.push(r.freshSorted(0, i+1), "selectionPlaced", i18n.Args{"value": arr[i], "position": i})
	}
	return r.finish()
}

// Shell runs gapped insertion sorts with gaps n/2, n/4, ..., 1.
func Shell(input []int) []Step {
	r := newRecorder(input, "Shell Sort")
	arr := r.arr
	n := len(arr)

	for gap := n / 2; gap > 0; gap /= 2 {
		r.push(r.fresh(), "shellGap", i18n.Args{"gap": gap})

		for i := gap; i < n; i++ {
			tmp := arr[i]
			sel := r.fresh()
			sel[i] = Pivot
			r.push(sel, "shellSelecting", i18n.Args{"value": tmp, "position": i, "gap": gap})

			j := i
			for ; j >= gap && arr[j-gap] > tmp; j -= gap {
				cmp := r.fresh()
				cmp[j], cmp[j-gap] = Comparing, Comparing
				r.push(cmp, "comparing", i18n.Args{"a": arr[j-gap], "b": tmp})

				arr[j] = arr[j-gap]
				shift := r.fresh()
				shift[j] = Swapping
				shift[j-gap] = Auxiliary
				r.push(shift, "shellShifting", i18n.Args{"value": arr[j], "from": j - gap, "to": j})
			}
			arr[j] = tmp

			placed := r.fresh()
			placed[j] = Swapping
			r.push(placed, "shellPlaced", i18n.Args{"value": tmp, "position": j})
		}
		r.push(r.fresh(), "shellGapComplete", i18n.Args{"gap": gap})
	}
	return r.finish()
}
