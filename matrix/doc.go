// Package matrix offers the dense linear-algebra substrate of the relationship
// graph: a row-major Dense type, validators for weight-matrix invariants and the
// kernels the diffusion step is built from.
//
// The matrix package provides:
//
//   - Dense, a flat row-major float64 matrix with safe At/Set and no-copy Row access.
//   - Mul / MulTo, backed by gonum's blas64.Gemm for *Dense operands.
//   - RowSums and NormalizeRowsStochastic (degree normalisation with a zero-degree guard).
//   - Validators for square, non-negative, zero-diagonal and symmetric matrices.
//
// Everything is dense: an N-node graph costs O(N²) memory and a product O(N³)
// time; see the propagation package for the products it takes.
package matrix
