package tui

import (
	"strings"

	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
)

func sortingStep(arr []int) sorting.Step {
	return sorting.Step{Array: arr, States: make([]sorting.ElementState, len(arr))}
}

func splitLines(s string) []string { return strings.Split(s, "\n") }

func countBlocks(line string) int { return strings.Count(line, "█") }
