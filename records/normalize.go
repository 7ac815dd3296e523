// SPDX-License-Identifier: MIT

package records

import "gonum.org/v1/gonum/floats"

// DefaultEpsilon guards every min-max denominator: (x - min) / (max - min + ε).
const DefaultEpsilon = 1e-8

// Range holds the global extrema a feature was normalised with.
type Range struct {
	Min, Max float64
}

// Spread returns Max - Min.
func (r Range) Spread() float64 { return r.Max - r.Min }

// MinMax maps x to (x - min) / (max - min + eps) using the extrema of the whole
// slice. A zero-spread input maps to all zeros rather than NaN, whatever eps is.
// x is not mutated.
func MinMax(x []float64, eps float64) ([]float64, Range) {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out, Range{}
	}
	rg := Range{Min: floats.Min(x), Max: floats.Max(x)}
	if rg.Spread() == 0 {
		return out, rg
	}
	den := rg.Spread() + eps
	for i, v := range x {
		out[i] = (v - rg.Min) / den
	}

	return out, rg
}
