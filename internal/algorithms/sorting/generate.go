package sorting

import "math/rand/v2"

// Default bounds for RandomArray values.
const (
	DefaultMin   = 5
	DefaultMax   = 500
	DefaultSwaps = 5
)

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n) //nolint:gosec // visualization data
	}
	return rng.IntN(n)
}

// RandomArray returns size values drawn uniformly from [lo, hi]. A nil rng uses
// the global source.
func RandomArray(rng *rand.Rand, size, lo, hi int) []int {
	if hi < lo {
		lo, hi = hi, lo
	}
	out := make([]int, max(size, 0))
	for i := range out {
		out[i] = lo + intn(rng, hi-lo+1)
	}
	return out
}

// NearlySortedArray returns 10, 20, ..., size*10 with swaps random transpositions.
func NearlySortedArray(rng *rand.Rand, size, swaps int) []int {
	out := make([]int, max(size, 0))
	for i := range out {
		out[i] = (i + 1) * 10
	}
	if len(out) == 0 {
		return out
	}
	for range swaps {
		a, b := intn(rng, len(out)), intn(rng, len(out))
		out[a], out[b] = out[b], out[a]
	}
	return out
}

// ReversedArray returns size*10, ..., 20, 10.
func ReversedArray(size int) []int {
	out := make([]int, max(size, 0))
	for i := range out {
		out[i] = (size - i) * 10
	}
	return out
}
