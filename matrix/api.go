// SPDX-License-Identifier: MIT
// Package matrix: public constructors and facades.
//
// Purpose:
//   - Provide thin, intention-revealing entry points (identity, zeros, clones).
//   - Avoid logic duplication; each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Use NewIdentity as the restart seed P_0 of iterative diffusion schemes.
//   - Prefer passing *Dense to unlock fast-paths in kernels.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	if err = AddDiagonal(I, 1.0); err != nil {
		return nil, err
	}

	return I, nil
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
// Complexity: O(n^2).
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows())
}

// CloneMatrix returns a structural clone of m.
// Thin wrapper over Matrix.Clone for API discoverability.
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}
