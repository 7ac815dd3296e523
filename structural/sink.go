// SPDX-License-Identifier: MIT

package structural

import (
	"fmt"

	"github.com/katalvlaran/fraudgraph/matrix"
)

// RowSink consumes consecutive row blocks of the structural matrix.
//
// WriteRows receives rows [start, start+rows.Rows()) with all N columns.
// Blocks arrive in ascending order without gaps. The sink must not retain
// rows after returning; the builder may reuse or drop the buffer.
type RowSink interface {
	WriteRows(start int, rows *matrix.Dense) error
}

// Collector is a RowSink that assembles the whole matrix in memory.
// It suits tests and batches small enough for a dense N×N buffer.
type Collector struct {
	n    int
	next int
	data []float64
}

// NewCollector returns a Collector for an n×n matrix.
func NewCollector(n int) *Collector {
	return &Collector{n: n, data: make([]float64, 0, n*n)}
}

// WriteRows implements RowSink.
func (c *Collector) WriteRows(start int, rows *matrix.Dense) error {
	if start != c.next {
		return fmt.Errorf("Collector: got rows from %d, want %d: %w", start, c.next, ErrRowOrder)
	}
	if rows.Cols() != c.n || start+rows.Rows() > c.n {
		return fmt.Errorf("Collector: block %dx%d at %d: %w",
			rows.Rows(), rows.Cols(), start, matrix.ErrDimensionMismatch)
	}
	for i := 0; i < rows.Rows(); i++ {
		row, _ := rows.Row(i)
		c.data = append(c.data, row...)
	}
	c.next += rows.Rows()

	return nil
}

// Matrix returns the assembled matrix once all n rows have been written.
func (c *Collector) Matrix() (*matrix.Dense, error) {
	if c.next != c.n {
		return nil, fmt.Errorf("Collector: %d of %d rows written: %w", c.next, c.n, ErrRowOrder)
	}

	return matrix.NewDenseFrom(c.n, c.n, c.data)
}
