package filter

import (
	"math"
	"math/rand/v2"
	"slices"
)

// SampleSize returns round(fraction * n), clamped to [0, n]. Ties round to
// even.
func SampleSize(n int, fraction float64) int {
	if n <= 0 || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return n
	}
	k := int(math.RoundToEven(fraction * float64(n)))
	return min(max(k, 0), n)
}

// SampleIndices picks SampleSize(n, fraction) distinct indices from [0, n)
// with a generator seeded by seed, returned in ascending order. The same
// (n, fraction, seed) always yields the same indices.
func SampleIndices(n int, fraction float64, seed uint64) []int {
	k := SampleSize(n, fraction)
	if k == n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	idx := rng.Perm(n)[:k]
	slices.Sort(idx)
	return idx
}
