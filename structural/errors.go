// SPDX-License-Identifier: MIT

package structural

import "errors"

var (
	// ErrInvalidParams indicates a negative or non-finite weight, window or rate.
	ErrInvalidParams = errors.New("structural: invalid parameters")

	// ErrNoFeatures indicates a nil or empty feature set.
	ErrNoFeatures = errors.New("structural: no features")

	// ErrNilSink indicates Build was called without a sink.
	ErrNilSink = errors.New("structural: nil sink")

	// ErrRowOrder indicates a sink received a block that does not continue the previous one.
	ErrRowOrder = errors.New("structural: rows out of order")
)
