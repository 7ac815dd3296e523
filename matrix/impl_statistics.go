// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row statistics used by graph diffusion: row sums (node degrees) and
//     degree normalisation into a row-stochastic transition matrix.
//
// Exposed API:
//   - RowSums(X)                      -> sums           // Σ_j X[i,j] per row
//   - NormalizeRowsStochastic(X, eps) -> (T, degrees)   // T[i,j] = X[i,j] / degree_i
//
// Determinism & Performance:
//   - Fixed i→j traversal; Dense fast-path sums rows with gonum/floats on the flat buffer.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping.
const (
	opRowSums                 = "RowSums"
	opNormalizeRowsStochastic = "NormalizeRowsStochastic"
)

// RowSums returns Σ_j X[i,j] for every row i.
//
// Errors:
//   - ErrNilMatrix; wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func RowSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	r, c := X.Rows(), X.Cols()
	sums := make([]float64, r)

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			sums[i] = floats.Sum(d.data[i*c : (i+1)*c])
		}
		return sums, nil
	}

	var v float64
	var err error
	for i := 0; i < r; i++ {
		s := ZeroSum
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opRowSums, err)
			}
			s += v
		}
		sums[i] = s
	}

	return sums, nil
}

// NormalizeRowsStochastic divides each row by its degree (row sum).
// Implementation:
//   - Stage 1: Validate X (non-nil) and zeroDegree (finite, > 0).
//   - Stage 2: degrees := RowSums(X); rows with degree == 0 get zeroDegree instead.
//   - Stage 3: scale rows by 1/degree via ewScaleRows into a fresh Dense.
//
// Behavior highlights:
//   - Rows with a positive degree sum to 1 (within rounding) afterwards.
//   - A zero row stays a zero row; the fallback degree only keeps the division defined.
//   - X is never mutated.
//
// Returns:
//   - *Dense: the transition matrix.
//   - []float64: degrees actually used (after the zero-degree substitution).
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf when zeroDegree is not a finite positive number.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Validate non-negativity first (ValidateWeightMatrix); negative entries can cancel a
//     row sum to zero and defeat the guard.
func NormalizeRowsStochastic(X Matrix, zeroDegree float64) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsStochastic, err)
	}
	if math.IsNaN(zeroDegree) || math.IsInf(zeroDegree, 0) || zeroDegree <= 0 {
		return nil, nil, matrixErrorf(opNormalizeRowsStochastic, ErrNaNInf)
	}

	degrees, err := RowSums(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsStochastic, err)
	}

	scale := make([]float64, len(degrees))
	for i, d := range degrees {
		if d == 0 {
			degrees[i] = zeroDegree
		}
		scale[i] = 1.0 / degrees[i]
	}

	T, err := ewScaleRows(X, scale)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsStochastic, err)
	}

	return T, degrees, nil
}
