// SPDX-License-Identifier: MIT

package artifact

import "errors"

var (
	// ErrMalformed indicates a CSV artifact that does not have the labeled layout.
	ErrMalformed = errors.New("artifact: malformed matrix file")

	// ErrIncomplete indicates a writer closed before all N rows arrived.
	ErrIncomplete = errors.New("artifact: matrix incomplete")

	// ErrRowOrder indicates a block that does not continue the previous one.
	ErrRowOrder = errors.New("artifact: rows out of order")
)
