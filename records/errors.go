// SPDX-License-Identifier: MIT

package records

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema classifies every schema violation; match it with errors.Is.
	// The concrete error is a *SchemaError carrying the column and row.
	ErrSchema = errors.New("records: schema violation")

	// ErrEmptyTable indicates a table without data rows.
	ErrEmptyTable = errors.New("records: table has no rows")
)

// SchemaError reports a missing or malformed required column.
// Row is the 1-based data row (0 when the header itself is at fault).
type SchemaError struct {
	Column string
	Row    int
	Reason string
	Err    error // underlying parse error, may be nil
}

// Error implements error.
func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("records: column %q: %s", e.Column, e.Reason)
	if e.Row > 0 {
		msg = fmt.Sprintf("records: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is makes errors.Is(err, ErrSchema) true for every *SchemaError.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// Unwrap exposes the underlying parse error.
func (e *SchemaError) Unwrap() error { return e.Err }

func missingColumn(name string) error {
	return &SchemaError{Column: name, Reason: "missing required column"}
}

func malformedCell(row int, column string, err error) error {
	return &SchemaError{Column: column, Row: row, Reason: "malformed value", Err: err}
}
