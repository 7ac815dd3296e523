// SPDX-License-Identifier: MIT

package records

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadSQL reads a booking table from the result of query on db.
//
// The result's column list is validated against schema before the first row is
// scanned. Every cell is scanned as a nullable string and then goes through the
// same parsing as ReadCSV, so NULL numeric cells read as 0. Row order is the
// order the query returns; add an ORDER BY to make it deterministic.
func ReadSQL(ctx context.Context, db *sql.DB, query string, schema Schema, args ...any) (*Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("records: query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("records: columns: %w", err)
	}
	idx, err := schema.resolve(columns)
	if err != nil {
		return nil, err
	}
	p := rowParser{schema: schema, idx: idx}

	raw := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	cells := make([]string, len(columns))

	t := &Table{}
	for row := 1; rows.Next(); row++ {
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("records: scan row %d: %w", row, err)
		}
		for i := range raw {
			cells[i] = raw[i].String // "" when NULL
		}
		rec, err := p.parse(row, cells)
		if err != nil {
			return nil, err
		}
		t.Records = append(t.Records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("records: rows: %w", err)
	}

	if err = t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}
