// SPDX-License-Identifier: MIT

package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/fraudgraph/attribute"
	"github.com/katalvlaran/fraudgraph/matrix"
)

// AttributeIndexColumn labels the id column of the attribute artifact.
const AttributeIndexColumn = "booking_id"

// WriteAttributes writes m as "booking_id,<columns...>" followed by one row per id.
func WriteAttributes(w io.Writer, m *attribute.Matrix) error {
	rows, cols := m.Values.Shape()
	if rows != len(m.IDs) || cols != len(m.Columns) {
		return fmt.Errorf("WriteAttributes: %dx%d values for %d ids, %d columns: %w",
			rows, cols, len(m.IDs), len(m.Columns), matrix.ErrDimensionMismatch)
	}

	cw := csv.NewWriter(w)
	record := make([]string, cols+1)
	record[0] = AttributeIndexColumn
	copy(record[1:], m.Columns)
	if err := cw.Write(record); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		row, _ := m.Values.Row(i)
		record[0] = m.IDs[i]
		for j, v := range row {
			record[j+1] = formatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteAttributesFile writes m to path with the same staging as WriteSquareFile.
func WriteAttributesFile(path string, m *attribute.Matrix) error {
	return atomicWrite(path, func(f *os.File) error { return WriteAttributes(f, m) })
}
