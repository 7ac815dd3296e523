// SPDX-License-Identifier: MIT

package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/fraudgraph/matrix"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// SquareWriter streams a labeled N×N matrix to CSV.
// It implements structural.RowSink.
type SquareWriter struct {
	w      *csv.Writer
	ids    []string
	next   int
	record []string
	header bool
}

// NewSquareWriter returns a writer for the matrix indexed by ids.
// Nothing is written until the first block arrives or Close is called.
func NewSquareWriter(w io.Writer, ids []string) *SquareWriter {
	return &SquareWriter{
		w:      csv.NewWriter(w),
		ids:    ids,
		record: make([]string, len(ids)+1),
	}
}

func (s *SquareWriter) writeHeader() error {
	if s.header {
		return nil
	}
	s.record[0] = ""
	copy(s.record[1:], s.ids)
	s.header = true

	return s.w.Write(s.record)
}

// WriteRows implements structural.RowSink. Rows must arrive contiguously.
func (s *SquareWriter) WriteRows(start int, rows *matrix.Dense) error {
	n := len(s.ids)
	if start != s.next {
		return fmt.Errorf("WriteRows: got %d, want %d: %w", start, s.next, ErrRowOrder)
	}
	if rows.Cols() != n || start+rows.Rows() > n {
		return fmt.Errorf("WriteRows: block %dx%d at %d for N=%d: %w",
			rows.Rows(), rows.Cols(), start, n, matrix.ErrDimensionMismatch)
	}
	if err := s.writeHeader(); err != nil {
		return err
	}
	for i := 0; i < rows.Rows(); i++ {
		row, _ := rows.Row(i)
		s.record[0] = s.ids[start+i]
		for j, v := range row {
			s.record[j+1] = formatFloat(v)
		}
		if err := s.w.Write(s.record); err != nil {
			return err
		}
	}
	s.next += rows.Rows()

	return nil
}

// Close flushes buffered output and reports ErrIncomplete if fewer than N
// rows were written. It does not close the underlying writer.
func (s *SquareWriter) Close() error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	if s.next != len(s.ids) {
		return fmt.Errorf("Close: %d of %d rows: %w", s.next, len(s.ids), ErrIncomplete)
	}

	return nil
}

// WriteSquare writes the whole matrix m in one call.
func WriteSquare(w io.Writer, ids []string, m *matrix.Dense) error {
	sw := NewSquareWriter(w, ids)
	if err := sw.WriteRows(0, m); err != nil {
		return err
	}

	return sw.Close()
}

// Square is a labeled matrix read back from CSV.
type Square struct {
	IDs []string
	Mat *matrix.Dense
}

// ReadSquare parses the labeled layout written by SquareWriter.
// Row labels must repeat the header labels in the same order.
func ReadSquare(r io.Reader) (*Square, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ReadSquare: empty input: %w", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadSquare: %w", err)
	}
	n := len(header) - 1
	if n < 1 {
		return nil, fmt.Errorf("ReadSquare: header has no labels: %w", ErrMalformed)
	}
	ids := append([]string(nil), header[1:]...)

	data := make([]float64, 0, n*n)
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			if i != n {
				return nil, fmt.Errorf("ReadSquare: %d rows for %d labels: %w", i, n, ErrMalformed)
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadSquare: row %d: %w", i+1, errors.Join(ErrMalformed, err))
		}
		if i >= n || rec[0] != ids[i] {
			return nil, fmt.Errorf("ReadSquare: row %d label %q: %w", i+1, rec[0], ErrMalformed)
		}
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("ReadSquare: cell (%d,%d): %w", i, j, errors.Join(ErrMalformed, err))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("ReadSquare: cell (%d,%d): %w", i, j, errors.Join(ErrMalformed, matrix.ErrNaNInf))
			}
			data = append(data, v)
		}
	}

	m, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		return nil, fmt.Errorf("ReadSquare: %w", err)
	}

	return &Square{IDs: ids, Mat: m}, nil
}
