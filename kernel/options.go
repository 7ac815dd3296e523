// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"
)

// Defaults of the estimator.
const (
	// DefaultSampleSize caps the number of records the percentile is measured on.
	DefaultSampleSize = 3000

	// DefaultPercentile is the quantile level of pairwise differences (d75).
	DefaultPercentile = 0.75

	// DefaultTargetSimilarity is the similarity assigned to a difference of d75.
	DefaultTargetSimilarity = 0.2

	// DefaultEpsilon guards the rate denominator when d75 is zero.
	DefaultEpsilon = 1e-8
)

// Option configures an Estimator.
type Option func(*Estimator)

// WithSampleSize sets the maximum sample size. Panics if k < 1.
func WithSampleSize(k int) Option {
	if k < 1 {
		panic(fmt.Sprintf("kernel: WithSampleSize(%d): must be >= 1", k))
	}

	return func(e *Estimator) { e.sampleSize = k }
}

// WithPercentile sets the quantile level. Panics unless 0 < p <= 1.
func WithPercentile(p float64) Option {
	if !(p > 0 && p <= 1) {
		panic(fmt.Sprintf("kernel: WithPercentile(%g): must be in (0,1]", p))
	}

	return func(e *Estimator) { e.percentile = p }
}

// WithTargetSimilarity sets the similarity at the percentile. Panics unless 0 < s < 1.
func WithTargetSimilarity(s float64) Option {
	if !(s > 0 && s < 1) {
		panic(fmt.Sprintf("kernel: WithTargetSimilarity(%g): must be in (0,1)", s))
	}

	return func(e *Estimator) { e.target = s }
}

// WithEpsilon sets the denominator guard. Panics unless eps is finite and > 0.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("kernel: WithEpsilon(%g): must be finite and > 0", eps))
	}

	return func(e *Estimator) { e.eps = eps }
}
