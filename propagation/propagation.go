// SPDX-License-Identifier: MIT

// Package propagation diffuses relevance over a weighted graph with a fixed
// number of restart-weighted random-walk steps:
//
//	T   = D⁻¹·G                       (row-stochastic; zero degree → ε_degree)
//	P_0 = I
//	P_k = c·(P_(k-1)·T) + (1-c)·P_0    k = 1..K
//
// Row i of P_K is the relevance of every node as seen from node i. There is
// no convergence test: exactly K products are taken. The dense products run
// through gonum's BLAS GEMM via matrix.MulTo.
package propagation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/fraudgraph/matrix"
)

// Defaults.
const (
	// DefaultRestart is the continuation weight c.
	DefaultRestart = 0.15

	// DefaultIterations is the number of diffusion steps K.
	DefaultIterations = 3

	// DefaultZeroDegree replaces the degree of an isolated node.
	DefaultZeroDegree = 0.1
)

var (
	// ErrInvalidRestart indicates c outside [0, 1].
	ErrInvalidRestart = errors.New("propagation: restart weight must be in [0,1]")

	// ErrInvalidIterations indicates K < 0.
	ErrInvalidIterations = errors.New("propagation: iterations must be >= 0")
)

// Option configures Propagate.
type Option func(*options)

type options struct {
	zeroDegree float64
	log        *zap.Logger
}

// WithZeroDegree sets the substitute degree of isolated nodes.
// Panics unless eps is finite and > 0.
func WithZeroDegree(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("propagation: WithZeroDegree(%g): must be finite and > 0", eps))
	}

	return func(o *options) { o.zeroDegree = eps }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Transition returns the row-stochastic T = D⁻¹G and the degrees used.
// An isolated node keeps an all-zero row; its degree reports zeroDegree.
func Transition(g matrix.Matrix, zeroDegree float64) (*matrix.Dense, []float64, error) {
	if err := matrix.ValidateWeightMatrix(g); err != nil {
		return nil, nil, fmt.Errorf("Transition: %w", err)
	}
	t, deg, err := matrix.NormalizeRowsStochastic(g, zeroDegree)
	if err != nil {
		return nil, nil, fmt.Errorf("Transition: %w", err)
	}

	return t, deg, nil
}

// Propagate returns P_K for the square non-negative matrix g.
//
// c = 0 or k = 0 yields the identity. g is not mutated. ctx is checked
// between steps.
func Propagate(ctx context.Context, g matrix.Matrix, c float64, k int, opts ...Option) (*matrix.Dense, error) {
	o := options{zeroDegree: DefaultZeroDegree, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if !(c >= 0 && c <= 1) {
		return nil, fmt.Errorf("Propagate(c=%g): %w", c, ErrInvalidRestart)
	}
	if k < 0 {
		return nil, fmt.Errorf("Propagate(k=%d): %w", k, ErrInvalidIterations)
	}

	t, deg, err := Transition(g, o.zeroDegree)
	if err != nil {
		return nil, fmt.Errorf("Propagate: %w", err)
	}
	n := t.Rows()
	isolated := 0
	for i := range deg {
		if row, _ := t.Row(i); floats.Sum(row) == 0 {
			isolated++
		}
	}
	o.log.Debug("propagation started",
		zap.Int("n", n), zap.Float64("c", c), zap.Int("k", k), zap.Int("isolated", isolated))

	cur, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("Propagate: %w", err)
	}
	if k == 0 {
		return cur, nil
	}
	next, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, fmt.Errorf("Propagate: %w", err)
	}

	began := time.Now()
	for step := 1; step <= k; step++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if err = matrix.MulTo(next, c, cur, t); err != nil {
			return nil, fmt.Errorf("Propagate: step %d: %w", step, err)
		}
		if err = matrix.AddDiagonal(next, 1-c); err != nil {
			return nil, fmt.Errorf("Propagate: step %d: %w", step, err)
		}
		cur, next = next, cur
		o.log.Debug("propagation step", zap.Int("step", step), zap.Int("of", k))
	}
	o.log.Info("propagation finished", zap.Int("n", n), zap.Int("k", k),
		zap.Duration("elapsed", time.Since(began)))

	return cur, nil
}
