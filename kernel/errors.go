// SPDX-License-Identifier: MIT

package kernel

import "errors"

var (
	// ErrNilRand is returned when a sampling operation receives no generator.
	ErrNilRand = errors.New("kernel: nil random source")

	// ErrEmptyFeature indicates a feature with no values.
	ErrEmptyFeature = errors.New("kernel: empty feature")

	// ErrLengthMismatch indicates features of different lengths in one Estimate call.
	ErrLengthMismatch = errors.New("kernel: feature length mismatch")

	// ErrInvalidPercentile indicates a quantile level outside [0, 1].
	ErrInvalidPercentile = errors.New("kernel: percentile out of [0,1]")

	// ErrInvalidSample indicates a sample size outside [0, n].
	ErrInvalidSample = errors.New("kernel: invalid sample size")
)
