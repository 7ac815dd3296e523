// SPDX-License-Identifier: MIT

// Package attribute builds the N×F matrix of per-booking outcome attributes.
// Each column is min-max normalised on its own over the whole batch, with the
// same ε guard as the structural features, so every entry lies in [0, 1).
package attribute

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/fraudgraph/matrix"
	"github.com/katalvlaran/fraudgraph/records"
)

// ErrNoColumns indicates an empty column list.
var ErrNoColumns = errors.New("attribute: no columns")

// Column extracts one raw attribute from a record.
type Column struct {
	Name  string
	Value func(records.Record) float64
}

func flag(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// DefaultColumns returns the outcome attributes in artifact order, named
// after DefaultSchema.
func DefaultColumns() []Column { return ColumnsFor(records.DefaultSchema()) }

// ColumnsFor returns the outcome attributes in artifact order, each named
// after the column it was read from in s.
func ColumnsFor(s records.Schema) []Column {
	return []Column{
		{s.LeadTime, func(r records.Record) float64 { return r.LeadTimeDays }},
		{s.Cancelled, func(r records.Record) float64 { return flag(r.Cancelled) }},
		{s.CancelDelay, func(r records.Record) float64 { return r.CancelDelayDays }},
		{s.Disputed, func(r records.Record) float64 { return flag(r.Disputed) }},
		{s.DisputeDelay, func(r records.Record) float64 { return r.DisputeDelayDays }},
		{s.Chargeback, func(r records.Record) float64 { return r.ChargebackAmount }},
		{s.FinalLoss, func(r records.Record) float64 { return r.FinalLossAmount }},
	}
}

// Matrix is the normalised attribute table. Row i belongs to IDs[i] and
// column k to Columns[k].
type Matrix struct {
	IDs     []string
	Columns []string
	Values  *matrix.Dense

	// Ranges holds the raw extrema of each column.
	Ranges []records.Range
}

// Option configures Build.
type Option func(*options)

type options struct {
	columns []Column
	eps     float64
}

// WithColumns replaces the default column list. Panics on an empty list, a
// column without a name or extractor, or a repeated name.
func WithColumns(cols ...Column) Option {
	if len(cols) == 0 {
		panic("attribute: WithColumns: empty column list")
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Name == "" || c.Value == nil || seen[c.Name] {
			panic(fmt.Sprintf("attribute: WithColumns: bad column %q", c.Name))
		}
		seen[c.Name] = true
	}
	cp := append([]Column(nil), cols...)

	return func(o *options) { o.columns = cp }
}

// WithEpsilon sets the min-max guard. Panics if eps is negative or not finite.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("attribute: WithEpsilon(%g): must be finite and >= 0", eps))
	}

	return func(o *options) { o.eps = eps }
}

// Build validates t and returns its normalised attribute matrix.
func Build(t *records.Table, opts ...Option) (*Matrix, error) {
	o := options{columns: DefaultColumns(), eps: records.DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.columns) == 0 {
		return nil, ErrNoColumns
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	n, k := t.Len(), len(o.columns)
	values, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	out := &Matrix{
		IDs:     t.IDs(),
		Columns: make([]string, k),
		Values:  values,
		Ranges:  make([]records.Range, k),
	}

	raw := make([]float64, n)
	for c, col := range o.columns {
		out.Columns[c] = col.Name
		for i := range t.Records {
			v := col.Value(t.Records[i])
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &records.SchemaError{Column: col.Name, Row: i + 1, Reason: "non-finite attribute"}
			}
			raw[i] = v
		}
		norm, rg := records.MinMax(raw, o.eps)
		out.Ranges[c] = rg
		for i, v := range norm {
			if err = values.Set(i, c, v); err != nil {
				return nil, fmt.Errorf("Build: %w", err)
			}
		}
	}

	return out, nil
}
