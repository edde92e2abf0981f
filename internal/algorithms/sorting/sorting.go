// Package sorting produces step-by-step snapshots of classic sorting algorithms.
//
// Every generator copies its input, starts with an all-default snapshot and
// finishes with an all-sorted snapshot of the sorted array.
package sorting

import (
	"errors"
	"fmt"

	"github.com/bayanflow/bayan-flow/internal/i18n"
)

// ElementState is the highlight applied to one bar.
type ElementState string

const (
	Default   ElementState = "default"
	Comparing ElementState = "comparing"
	Swapping  ElementState = "swapping"
	Sorted    ElementState = "sorted"
	Pivot     ElementState = "pivot"
	Auxiliary ElementState = "auxiliary"
)

// Step is one frame of a sorting visualization.
type Step struct {
	Array       []int          `json:"array"`
	States      []ElementState `json:"states"`
	Description i18n.Message   `json:"description"`
}

// Func generates the steps for sorting arr.
type Func func(arr []int) []Step

// ErrUnknownAlgorithm is returned by Lookup for an unregistered id.
var ErrUnknownAlgorithm = errors.New("unknown sorting algorithm")

//nolint:gochecknoglobals // static registry.
var registry = map[string]Func{
	"bubbleSort":    Bubble,
	"quickSort":     Quick,
	"mergeSort":     Merge,
	"insertionSort": Insertion,
	"selectionSort": Selection,
	"heapSort":      Heap,
	"shellSort":     Shell,
	"radixSort":     Radix,
}

// Lookup returns the generator registered under id.
func Lookup(id string) (Func, error) {
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id)
	}
	return f, nil
}

// IDs returns every registered algorithm id in display order.
func IDs() []string {
	return []string{
		"bubbleSort", "quickSort", "mergeSort", "insertionSort",
		"selectionSort", "heapSort", "shellSort", "radixSort",
	}
}

const keyPrefix = "algorithmSteps."

// recorder owns the working copy and the emitted steps.
type recorder struct {
	arr   []int
	steps []Step
}

func newRecorder(input []int, name string) *recorder {
	r := &recorder{arr: append([]int(nil), input...)}
	r.push(r.fresh(), "starting", i18n.Args{"algorithm": name})
	return r
}

// fresh returns an all-default state slice.
func (r *recorder) fresh() []ElementState {
	return filled(len(r.arr), Default)
}

// freshSorted returns default states with [from, to) marked sorted.
func (r *recorder) freshSorted(from, to int) []ElementState {
	s := r.fresh()
	for k := max(from, 0); k < to && k < len(s); k++ {
		s[k] = Sorted
	}
	return s
}

func (r *recorder) push(states []ElementState, key string, args i18n.Args) {
	r.steps = append(r.steps, Step{
		Array:       append([]int(nil), r.arr...),
		States:      states,
		Description: i18n.Msg(keyPrefix+key, args),
	})
}

func (r *recorder) finish() []Step {
	r.push(filled(len(r.arr), Sorted), "completed", nil)
	return r.steps
}

func filled(n int, s ElementState) []ElementState {
	out := make([]ElementState, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// IsSorted reports whether arr is in non-decreasing order.
func IsSorted(arr []int) bool {
	for i := 1; i < len(arr); i++ {
		if arr[i] < arr[i-1] {
			return false
		}
	}
	return true
}
