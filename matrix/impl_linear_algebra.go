// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the diffusion
// operator: matrix product (allocating and into a destination), scalar scaling
// and diagonal shifts.
//
// Purpose:
//   - Route the O(n³) product through gonum's BLAS (blas64.Gemm) when both
//     operands are *Dense; keep a deterministic i→k→j fallback for any Matrix.
//   - Keep operands immutable; results go into fresh or caller-owned buffers.
//
// Notes:
//   - All kernels use central validators and wrap sentinels via matrixErrorf.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul         = "Mul"
	opMulTo       = "MulTo"
	opScale       = "Scale"
	opAddDiagonal = "AddDiagonal"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// general exposes a *Dense as a blas64.General without copying.
func (m *Dense) general() blas64.General {
	return blas64.General{Rows: m.r, Cols: m.c, Stride: m.c, Data: m.data}
}

// sharesStorage reports whether two dense buffers start at the same address.
// Dense never hands out sub-slices with offsets, so the first element suffices.
func sharesStorage(a, b *Dense) bool {
	return len(a.data) > 0 && len(b.data) > 0 && &a.data[0] == &b.data[0]
}

// Mul returns the matrix product a × b as a new *Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate Dense(a.Rows, b.Cols).
//   - Stage 2: both *Dense → blas64.Gemm; otherwise generic i→j→k loop via At.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (validation), wrapped At/Set errors (fallback).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - In loops, prefer MulTo with a reused destination to avoid one n² allocation per step.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, da.general(), db.general(), 0, res.general())
			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k).
	var (
		i, j, k         int
		av, bv, current float64
	)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue // skip zero for performance
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
		}
	}

	return res, nil
}

// MulTo computes dst = alpha · (a × b) in place of dst's previous contents.
//
// Implementation:
//   - Stage 1: shape checks (a.Cols == b.Rows, dst is a.Rows×b.Cols) and aliasing guard.
//   - Stage 2: single blas64.Gemm call with beta = 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAliasing.
//
// Complexity:
//   - Time O(r*n*c), Space O(1) extra.
//
// AI-Hints:
//   - Ping-pong two destinations across iterations; dst must never be a or b.
func MulTo(dst *Dense, alpha float64, a, b *Dense) error {
	if dst == nil {
		return matrixErrorf(opMulTo, ErrNilMatrix)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return matrixErrorf(opMulTo, err)
	}
	if dst.r != a.r || dst.c != b.c {
		return matrixErrorf(opMulTo, ErrDimensionMismatch)
	}
	if sharesStorage(dst, a) || sharesStorage(dst, b) {
		return matrixErrorf(opMulTo, ErrAliasing)
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, alpha, a.general(), b.general(), 0, dst.general())

	return nil
}

// Scale returns alpha·m as a new *Dense. m is not mutated.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	r, c := m.Rows(), m.Cols()
	res, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			res.data[idx] = v * alpha
		}
		return res, nil
	}

	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*c+j] = v * alpha
		}
	}

	return res, nil
}

// AddDiagonal adds v to every diagonal entry of the square working buffer m.
// It mutates m; use it only on buffers the caller owns.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n).
func AddDiagonal(m *Dense, v float64) error {
	if m == nil {
		return matrixErrorf(opAddDiagonal, ErrNilMatrix)
	}
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opAddDiagonal, err)
	}
	step := m.c + 1
	for off := 0; off < len(m.data); off += step {
		m.data[off] += v
	}

	return nil
}
