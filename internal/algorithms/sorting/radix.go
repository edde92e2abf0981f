package sorting

import (
	"slices"

	"github.com/bayanflow/bayan-flow/internal/i18n"
)

const radixBase = 10

// Radix is least-significant-digit radix sort in base 10. Negative inputs are
// bucketed by their offset from the minimum.
func Radix(input []int) []Step {
	r := newRecorder(input, "Radix Sort")
	arr := r.arr
	n := len(arr)
	if n == 0 {
		return r.finish()
	}

	offset := min(slices.Min(arr), 0)
	passes := digits(slices.Max(arr) - offset)

	place := 1
	for pass := 1; pass <= passes; pass++ {
		buckets := make([][]int, radixBase)
		for i, v := range arr {
			b := ((v - offset) / place) % radixBase
			buckets[b] = append(buckets[b], v)

			s := r.fresh()
			s[i] = Comparing
			r.push(s, "radixBucketPush", i18n.Args{"value": v, "bucket": b})
		}

		idx := 0
		for b, bucket := range buckets {
			for _, v := range bucket {
				arr[idx] = v
				s := r.fresh()
				s[idx] = Auxiliary
				r.push(s, "radixCollect", i18n.Args{"value": v, "bucket": b, "position": idx})
				idx++
			}
		}
		r.push(r.fresh(), "radixPassComplete", i18n.Args{"pass": pass})
		place *= radixBase
	}
	return r.finish()
}

// digits returns the number of base-10 digits in v (v >= 0); zero has one.
func digits(v int) int {
	d := 1
	for v >= radixBase {
		v /= radixBase
		d++
	}
	return d
}
