// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/sign/diagonal checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// AI-Hints:
//  - Use ValidateWeightMatrix before diffusion kernels: square, non-negative, finite.
//  - Use ValidateZeroDiagonal / ValidateSymmetric to assert structural-matrix invariants in tests.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// normalizeTol rejects non-finite tolerances and flips negative ones.
func normalizeTol(tol float64) (float64, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, ErrNaNInf
	}
	if tol < 0 {
		tol = -tol
	}

	return tol, nil
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateMulCompatible – Ensures a.Cols == b.Rows, inputs non-nil.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateWeightMatrix – Composite: NotNil → Square → every entry finite and ≥ 0.
//
// Implementation:
//   - Stage 1: nil/square checks (O(1)).
//   - Stage 2: single row-major scan; Dense fast path reads the flat buffer.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNegative.
// Complexity: O(n²) time, O(1) space.
//
// AI-Hints:
//   - Diffusion assumes a non-negative G; a negative entry would break row-stochasticity.
func ValidateWeightMatrix(m Matrix) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateWeightMatrix", err)
	}

	check := func(i, j int, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateWeightMatrix", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
		}
		if v < 0 {
			return validatorErrorf("ValidateWeightMatrix", fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNegative))
		}

		return nil
	}

	n := m.Rows()
	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < n; i++ {
			base := i * n
			for j = 0; j < n; j++ {
				if err := check(i, j, d.data[base+j]); err != nil {
					return err
				}
			}
		}

		return nil
	}

	var v float64
	var err error
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateWeightMatrix", err)
			}
			if err = check(i, j, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |m[i,i]| ≤ tol for every i (no self-loops).
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol), ErrNonZeroDiagonal.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateZeroDiagonal", err)
	}
	tol, err := normalizeTol(tol)
	if err != nil {
		return validatorErrorf("ValidateZeroDiagonal", err)
	}

	var v float64
	for i := 0; i < m.Rows(); i++ {
		v, _ = m.At(i, i) // in range after the square check
		if math.Abs(v) > tol {
			return validatorErrorf("ValidateZeroDiagonal", fmt.Errorf("(%d,%d)=%g: %w", i, i, v, ErrNonZeroDiagonal))
		}
	}

	return nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (bad tol), ErrAsymmetry.
// Complexity: O(n²) time, O(1) space; scans the strict upper triangle once.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	tol, err := normalizeTol(tol)
	if err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}

	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}

	return nil
}
