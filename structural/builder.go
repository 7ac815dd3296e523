// SPDX-License-Identifier: MIT

package structural

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fraudgraph/matrix"
	"github.com/katalvlaran/fraudgraph/records"
)

// Builder computes the structural matrix of one feature set.
// A Builder is immutable after NewBuilder and safe for concurrent use.
type Builder struct {
	f *records.Features
	p Params

	chunkSize int
	workers   int
	log       *zap.Logger
}

// NewBuilder validates the inputs and returns a Builder.
func NewBuilder(f *records.Features, p Params, opts ...Option) (*Builder, error) {
	if f == nil || f.Len() == 0 {
		return nil, ErrNoFeatures
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("NewBuilder: %w", err)
	}

	b := &Builder{
		f:         f,
		p:         p,
		chunkSize: DefaultChunkSize,
		workers:   DefaultWorkers,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// N returns the matrix dimension.
func (b *Builder) N() int { return b.f.Len() }

// Weight returns W(i, j). Indices must lie in [0, N).
func (b *Builder) Weight(i, j int) float64 {
	if i == j {
		return 0
	}
	f, w := b.f, b.p.Weights

	identity := 0.0
	if f.Agency[i] == f.Agency[j] {
		identity += w.Agency
	}
	if f.User[i] == f.User[j] {
		identity += w.User
	}
	if math.Abs(f.Days[i]-f.Days[j]) > b.p.TauDays {
		return identity
	}

	sim := math.Exp(-b.p.LambdaValue*math.Abs(f.Value[i]-f.Value[j])) *
		math.Exp(-b.p.LambdaLead*math.Abs(f.Lead[i]-f.Lead[j]))
	if f.Cancelled[i] && f.Cancelled[j] {
		sim += w.Cancel
	}
	if f.Disputed[i] && f.Disputed[j] {
		sim += w.Dispute
	}
	if f.Suspicious[i] && f.Suspicious[j] {
		sim += w.Suspicious
	}

	return sim + identity
}

// Rows computes the full rows [start, end) as a new (end-start)×N block.
func (b *Builder) Rows(start, end int) (*matrix.Dense, error) {
	n := b.N()
	if start < 0 || end > n || start >= end {
		return nil, fmt.Errorf("Rows(%d, %d) of %d: %w", start, end, n, matrix.ErrOutOfRange)
	}

	data := make([]float64, (end-start)*n)
	for i := start; i < end; i++ {
		row := data[(i-start)*n : (i-start+1)*n]
		for j := range row {
			row[j] = b.Weight(i, j)
		}
	}

	return matrix.NewDenseFrom(end-start, n, data)
}

// Build streams the whole matrix to sink in blocks of chunkSize rows.
//
// With one worker each block is computed, written and dropped before the next.
// With w workers, up to w consecutive blocks are computed concurrently and then
// written in row order, so the sink observes the same sequence either way.
// ctx is checked before every wave of blocks; on cancellation no further
// blocks are written and ctx.Err() is returned.
func (b *Builder) Build(ctx context.Context, sink RowSink) error {
	if sink == nil {
		return ErrNilSink
	}
	n := b.N()
	chunks := (n + b.chunkSize - 1) / b.chunkSize
	began := time.Now()
	b.log.Debug("structural build started",
		zap.Int("n", n), zap.Int("chunk_size", b.chunkSize),
		zap.Int("chunks", chunks), zap.Int("workers", b.workers))

	for first := 0; first < chunks; first += b.workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		wave := min(b.workers, chunks-first)
		blocks := make([]*matrix.Dense, wave)

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < wave; w++ {
			w := w
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				start := (first + w) * b.chunkSize
				blk, err := b.Rows(start, min(start+b.chunkSize, n))
				if err != nil {
					return err
				}
				blocks[w] = blk

				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("Build: %w", err)
		}

		for w, blk := range blocks {
			start := (first + w) * b.chunkSize
			if err := sink.WriteRows(start, blk); err != nil {
				return fmt.Errorf("Build: rows %d..%d: %w", start, start+blk.Rows(), err)
			}
			blocks[w] = nil
			b.log.Debug("structural chunk written",
				zap.Int("chunk", first+w+1), zap.Int("of", chunks),
				zap.Int("start", start), zap.Int("rows", blk.Rows()))
		}
	}

	b.log.Info("structural build finished",
		zap.Int("n", n), zap.Duration("elapsed", time.Since(began)))

	return nil
}
