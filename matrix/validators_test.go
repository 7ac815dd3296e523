// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fraudgraph/matrix"
)

func TestValidateWeightMatrix(t *testing.T) {
	t.Parallel()

	ok := RandNonNegDense(t, 4, 4, 11)
	require.NoError(t, matrix.ValidateWeightMatrix(ok))
	require.NoError(t, matrix.ValidateWeightMatrix(hide{ok}))

	neg := NewFilledDense(t, 2, 2, []float64{0, 1, -0.5, 0})
	require.ErrorIs(t, matrix.ValidateWeightMatrix(neg), matrix.ErrNegative)
	require.ErrorIs(t, matrix.ValidateWeightMatrix(hide{neg}), matrix.ErrNegative)

	require.ErrorIs(t, matrix.ValidateWeightMatrix(MustDense(t, 2, 3)), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateWeightMatrix(nil), matrix.ErrNilMatrix)

	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateWeightMatrix(nilDense), matrix.ErrNilMatrix)
}

func TestValidateZeroDiagonal(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{0, 1, 1, 0})
	require.NoError(t, matrix.ValidateZeroDiagonal(m, 0))

	MustSet(t, m, 1, 1, 1e-3)
	require.ErrorIs(t, matrix.ValidateZeroDiagonal(m, 0), matrix.ErrNonZeroDiagonal)
	require.NoError(t, matrix.ValidateZeroDiagonal(m, 1e-2))
	require.ErrorIs(t, matrix.ValidateZeroDiagonal(m, nan()), matrix.ErrNaNInf)
}

func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 3, 3, []float64{
		0, 1, 2,
		1, 0, 3,
		2, 3, 0,
	})
	require.NoError(t, matrix.ValidateSymmetric(m, 0))

	MustSet(t, m, 2, 1, 3.1)
	require.ErrorIs(t, matrix.ValidateSymmetric(m, 0.01), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(m, -0.2)) // negative tol is flipped
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 3, []float64{1, 2, 3})
	b := NewFilledDense(t, 1, 3, []float64{1, 2, 3.001})

	ok, err := matrix.AllClose(a, b, 0, 1e-2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(hide{a}, b, 0, 1e-6)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 3, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.AllClose(a, b, nan(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
