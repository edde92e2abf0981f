// Package algorithms is the catalog of visualizable algorithms. It ties each id
// to its metadata and to the sorting or pathfinding generator that produces
// its frames.
package algorithms

import (
	"errors"
	"fmt"

	"github.com/bayanflow/bayan-flow/internal/algorithms/pathfinding"
	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
	"github.com/bayanflow/bayan-flow/internal/i18n"
)

// Kind groups algorithms by the data they visualize.
type Kind string

const (
	KindSorting     Kind = "sorting"
	KindPathfinding Kind = "pathfinding"
)

var (
	ErrUnknown      = errors.New("unknown algorithm")
	ErrKindMismatch = errors.New("input does not match algorithm kind")
)

// Complexity is the asymptotic cost summary shown next to a visualization.
type Complexity struct {
	Best    string `json:"best"`
	Average string `json:"average"`
	Worst   string `json:"worst"`
	Space   string `json:"space"`
}

// Info describes one catalog entry.
type Info struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Name       string     `json:"name"`
	Complexity Complexity `json:"complexity"`
}

//nolint:gochecknoglobals // static catalog.
var catalog = []Info{
	{"bubbleSort", KindSorting, "Bubble Sort", Complexity{"O(n)", "O(n²)", "O(n²)", "O(1)"}},
	{"quickSort", KindSorting, "Quick Sort", Complexity{"O(n log n)", "O(n log n)", "O(n²)", "O(log n)"}},
	{"mergeSort", KindSorting, "Merge Sort", Complexity{"O(n log n)", "O(n log n)", "O(n log n)", "O(n)"}},
	{"insertionSort", KindSorting, "Insertion Sort", Complexity{"O(n)", "O(n²)", "O(n²)", "O(1)"}},
	{"selectionSort", KindSorting, "Selection Sort", Complexity{"O(n²)", "O(n²)", "O(n²)", "O(1)"}},
	{"heapSort", KindSorting, "Heap Sort", Complexity{"O(n log n)", "O(n log n)", "O(n log n)", "O(1)"}},
	{"shellSort", KindSorting, "Shell Sort", Complexity{"O(n log n)", "O(n^1.5)", "O(n²)", "O(1)"}},
	{"radixSort", KindSorting, "Radix Sort", Complexity{"O(nk)", "O(nk)", "O(nk)", "O(n + k)"}},
	{"bfs", KindPathfinding, "Breadth-First Search", Complexity{"O(V + E)", "O(V + E)", "O(V + E)", "O(V)"}},
	{"dijkstra", KindPathfinding, "Dijkstra's Algorithm", Complexity{"O((V + E) log V)", "O((V + E) log V)", "O((V + E) log V)", "O(V)"}},
	{"aStar", KindPathfinding, "A* Search", Complexity{"O(E)", "O(b^d)", "O(b^d)", "O(b^d)"}},
}

// All returns every entry, sorting algorithms first.
func All() []Info {
	return append([]Info(nil), catalog...)
}

// OfKind returns the entries of kind k in catalog order.
func OfKind(k Kind) []Info {
	var out []Info
	for _, a := range catalog {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// Get returns the entry for id.
func Get(id string) (Info, error) {
	for _, a := range catalog {
		if a.ID == id {
			return a, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q", ErrUnknown, id)
}

// Frame is one step of either kind; exactly one field is set.
type Frame struct {
	Sort *sorting.Step     `json:"sort,omitempty"`
	Path *pathfinding.Step `json:"path,omitempty"`
}

// Description returns the frame's deferred caption.
func (f Frame) Description() i18n.Message {
	switch {
	case f.Sort != nil:
		return f.Sort.Description
	case f.Path != nil:
		return f.Path.Description
	default:
		return i18n.Message{}
	}
}

// Input is the data an algorithm runs over. Sorting reads Array; pathfinding
// reads Grid, Start and End.
type Input struct {
	Array []int
	Grid  pathfinding.Grid
	Start pathfinding.Position
	End   pathfinding.Position
}

// Run generates the frames for id over in.
func Run(id string, in Input) ([]Frame, error) {
	info, err := Get(id)
	if err != nil {
		return nil, err
	}
	switch info.Kind {
	case KindSorting:
		gen, err := sorting.Lookup(id)
		if err != nil {
			return nil, err
		}
		steps := gen(in.Array)
		frames := make([]Frame, len(steps))
		for i := range steps {
			frames[i] = Frame{Sort: &steps[i]}
		}
		return frames, nil
	case KindPathfinding:
		search, err := pathfinding.Lookup(id)
		if err != nil {
			return nil, err
		}
		steps, err := search(in.Grid, in.Start, in.End)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		frames := make([]Frame, len(steps))
		for i := range steps {
			frames[i] = Frame{Path: &steps[i]}
		}
		return frames, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrKindMismatch, info.Kind)
	}
}
