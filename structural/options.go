// SPDX-License-Identifier: MIT

package structural

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultChunkSize is the number of full rows computed per block.
	DefaultChunkSize = 1000

	// DefaultWorkers computes blocks sequentially.
	DefaultWorkers = 1
)

// Option configures a Builder.
type Option func(*Builder)

// WithChunkSize sets rows per block. Panics if n < 1.
func WithChunkSize(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("structural: WithChunkSize(%d): must be >= 1", n))
	}

	return func(b *Builder) { b.chunkSize = n }
}

// WithWorkers sets how many blocks are computed concurrently. Blocks still
// reach the sink in row order. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("structural: WithWorkers(%d): must be >= 1", n))
	}

	return func(b *Builder) { b.workers = n }
}

// WithLogger sets the progress logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}
