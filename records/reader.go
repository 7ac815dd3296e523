// SPDX-License-Identifier: MIT

package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads a booking table from CSV. The first record is the header.
//
// The header is validated against schema before any data row is parsed, so a
// missing column surfaces as a *SchemaError without numeric work. Extra columns
// are ignored. Empty numeric cells read as 0 and empty flags as false.
func ReadCSV(r io.Reader, schema Schema) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("records: read header: %w", err)
	}
	idx, err := schema.resolve(header)
	if err != nil {
		return nil, err
	}
	p := rowParser{schema: schema, idx: idx}

	t := &Table{}
	for row := 1; ; row++ {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &SchemaError{Row: row, Reason: "malformed row", Err: err}
		}
		if err != nil {
			return nil, fmt.Errorf("records: read row %d: %w", row, err)
		}
		rec, err := p.parse(row, cells)
		if err != nil {
			return nil, err
		}
		t.Records = append(t.Records, rec)
	}

	if err = t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ReadCSVFile opens path and delegates to ReadCSV.
func ReadCSVFile(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, schema)
}
