// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Sample draws k distinct indices from [0, n) uniformly without replacement.
// It runs a partial Fisher-Yates shuffle, so the cost is O(n) memory and O(k)
// draws from rng. The returned indices are in draw order.
func Sample(n, k int, rng *rand.Rand) ([]int, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if n < 0 || k < 0 || k > n {
		return nil, fmt.Errorf("Sample(n=%d, k=%d): %w", n, k, ErrInvalidSample)
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm[:k:k], nil
}

// Percentile returns the p-quantile (p in [0,1]) of |x[a]-x[b]| over every
// ordered pair (a, b) of idx, the zero diagonal included.
//
// The quantile interpolates linearly between order statistics: with the k²
// sorted values a[0..k²-1] and h = (k²-1)·p it returns
// a[⌊h⌋] + (h-⌊h⌋)·(a[⌈h⌉]-a[⌊h⌋]), numpy's default percentile.
//
// Instead of materialising the k×k matrix, each unordered pair enters once with
// weight 2 and the diagonal enters as one zero of weight k; order statistics
// are then read off the weighted multiset.
func Percentile(x []float64, idx []int, p float64) (float64, error) {
	k := len(idx)
	if k == 0 {
		return 0, ErrEmptyFeature
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("Percentile(p=%g): %w", p, ErrInvalidPercentile)
	}
	for _, i := range idx {
		if i < 0 || i >= len(x) {
			return 0, fmt.Errorf("Percentile: index %d of %d: %w", i, len(x), ErrInvalidSample)
		}
	}

	pairs := k * (k - 1) / 2
	diffs := make([]float64, 1, pairs+1)
	for a := 0; a < k; a++ {
		xa := x[idx[a]]
		for b := a + 1; b < k; b++ {
			d := xa - x[idx[b]]
			if d < 0 {
				d = -d
			}
			diffs = append(diffs, d)
		}
	}
	// diffs[0] is the diagonal zero; it stays first after sorting since d >= 0.
	sort.Float64s(diffs[1:])

	weights := make([]float64, len(diffs))
	weights[0] = float64(k)
	for i := 1; i < len(weights); i++ {
		weights[i] = 2
	}

	total := float64(k * k)
	h := (total - 1) * p
	lo := math.Floor(h)
	a := orderStat(diffs, weights, total, lo)
	if h == lo {
		return a, nil
	}
	b := orderStat(diffs, weights, total, lo+1)

	return a + (h-lo)*(b-a), nil
}

// orderStat returns the value at 0-based rank r of the weighted multiset
// (x sorted ascending, integer weights summing to total). The empirical
// quantile at (r+½)/total lands strictly inside the rank's weight block.
func orderStat(x, weights []float64, total, r float64) float64 {
	return stat.Quantile((r+0.5)/total, stat.Empirical, x, weights)
}
