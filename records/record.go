// SPDX-License-Identifier: MIT

package records

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one booking of the batch.
type Record struct {
	ID        string
	Timestamp time.Time
	AgencyID  string
	UserID    string

	BookingValue float64
	LeadTimeDays float64

	Cancelled         bool
	Disputed          bool
	SuspiciousDomains float64 // passengers with a suspicious e-mail domain

	CancelDelayDays  float64
	DisputeDelayDays float64
	ChargebackAmount float64
	FinalLossAmount  float64
}

// Suspicious reports whether any passenger of the booking used a suspicious domain.
func (r Record) Suspicious() bool { return r.SuspiciousDomains > 0 }

// Table is an ordered batch of records. The order of Records is the global
// identifier ordering shared by every artifact built from the table.
type Table struct {
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// IDs returns the identifiers in table order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.Records))
	for i := range t.Records {
		ids[i] = t.Records[i].ID
	}

	return ids
}

// Validate checks the table-level invariants: at least one row, non-empty
// and unique identifiers.
func (t *Table) Validate() error {
	if t == nil || len(t.Records) == 0 {
		return ErrEmptyTable
	}
	seen := make(map[string]int, len(t.Records))
	for i := range t.Records {
		id := t.Records[i].ID
		if id == "" {
			return &SchemaError{Column: "id", Row: i + 1, Reason: "empty identifier"}
		}
		if first, dup := seen[id]; dup {
			return &SchemaError{Column: "id", Row: i + 1, Reason: fmt.Sprintf("duplicate identifier %q (first at row %d)", id, first)}
		}
		seen[id] = i + 1
	}

	return nil
}

var errNonFinite = errors.New("non-finite number")

// timestampLayouts are tried in order; zone-less layouts are read as UTC.
// Fractional seconds are accepted by every layout that has a seconds field.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}

// parseNumber reads a numeric cell; empty and NaN cells are 0, ±Inf is malformed.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, nil
	}
	if math.IsInf(v, 0) {
		return 0, errNonFinite
	}

	return v, nil
}

// parseFlag reads a 0/1 (or true/false) cell; an empty cell is false.
func parseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v != 0, nil
	}

	return strconv.ParseBool(s)
}

// rowParser converts raw cells into a Record using resolved column positions.
type rowParser struct {
	schema Schema
	idx    columnIndex
}

func (p rowParser) parse(row int, cells []string) (Record, error) {
	cell := func(i int) string { return strings.TrimSpace(cells[i]) }

	var (
		rec Record
		err error
	)
	rec.ID = cell(p.idx.id)
	rec.AgencyID = cell(p.idx.agency)
	rec.UserID = cell(p.idx.user)

	if rec.Timestamp, err = parseTimestamp(cell(p.idx.ts)); err != nil {
		return Record{}, malformedCell(row, p.schema.Timestamp, err)
	}

	numbers := []struct {
		dst  *float64
		pos  int
		name string
	}{
		{&rec.BookingValue, p.idx.value, p.schema.Value},
		{&rec.LeadTimeDays, p.idx.lead, p.schema.LeadTime},
		{&rec.SuspiciousDomains, p.idx.susp, p.schema.Suspicious},
		{&rec.CancelDelayDays, p.idx.cancelDelay, p.schema.CancelDelay},
		{&rec.DisputeDelayDays, p.idx.disputeDelay, p.schema.DisputeDelay},
		{&rec.ChargebackAmount, p.idx.chargeback, p.schema.Chargeback},
		{&rec.FinalLossAmount, p.idx.finalLoss, p.schema.FinalLoss},
	}
	for _, n := range numbers {
		if *n.dst, err = parseNumber(cell(n.pos)); err != nil {
			return Record{}, malformedCell(row, n.name, err)
		}
	}

	if rec.Cancelled, err = parseFlag(cell(p.idx.cancelled)); err != nil {
		return Record{}, malformedCell(row, p.schema.Cancelled, err)
	}
	if rec.Disputed, err = parseFlag(cell(p.idx.disputed)); err != nil {
		return Record{}, malformedCell(row, p.schema.Disputed, err)
	}

	return rec, nil
}
