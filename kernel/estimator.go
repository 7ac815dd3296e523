// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"
	"math/rand"
)

// Rate is the estimated decay rate of one feature.
type Rate struct {
	Percentile float64 // measured quantile of pairwise differences (d75)
	Lambda     float64 // decay rate, always > 0
}

// Estimator turns normalised features into kernel decay rates.
// The zero value is not usable; call NewEstimator.
type Estimator struct {
	sampleSize int
	percentile float64
	target     float64
	eps        float64
}

// NewEstimator returns an Estimator with defaults overridden by opts.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		sampleSize: DefaultSampleSize,
		percentile: DefaultPercentile,
		target:     DefaultTargetSimilarity,
		eps:        DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Lambda maps a measured percentile d to -ln(target) / (d + ε).
func (e *Estimator) Lambda(d float64) float64 {
	return -math.Log(e.target) / (d + e.eps)
}

// Estimate draws one sample of min(sampleSize, n) record indices and returns a
// Rate per feature, in argument order. At least one feature is required and
// all must have the same length n > 0; they share the sample so their rates describe the same records.
func (e *Estimator) Estimate(rng *rand.Rand, features ...[]float64) ([]Rate, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("Estimate: no features: %w", ErrEmptyFeature)
	}
	n := len(features[0])
	if n == 0 {
		return nil, ErrEmptyFeature
	}
	for i, f := range features[1:] {
		if len(f) != n {
			return nil, fmt.Errorf("Estimate: feature %d has %d values, want %d: %w", i+1, len(f), n, ErrLengthMismatch)
		}
	}

	idx, err := Sample(n, min(e.sampleSize, n), rng)
	if err != nil {
		return nil, fmt.Errorf("Estimate: %w", err)
	}

	rates := make([]Rate, len(features))
	for i, f := range features {
		d, err := Percentile(f, idx, e.percentile)
		if err != nil {
			return nil, fmt.Errorf("Estimate: feature %d: %w", i, err)
		}
		rates[i] = Rate{Percentile: d, Lambda: e.Lambda(d)}
	}

	return rates, nil
}

// Similarity returns exp(-lambda·|d|).
func Similarity(lambda, d float64) float64 {
	return math.Exp(-lambda * math.Abs(d))
}
