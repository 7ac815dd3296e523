// SPDX-License-Identifier: MIT

package records

import (
	"fmt"
	"math"
	"time"
)

// secondsPerDay converts Unix time to fractional days.
const secondsPerDay = 86400.0

// Features is the typed, normalised view of a Table that every builder reads.
// All slices have length Len() and share the table's row order.
type Features struct {
	IDs []string

	// Days is the booking time in fractional days since the Unix epoch.
	Days []float64

	// Agency and User are interned identity keys: equal codes iff equal keys.
	Agency []int
	User   []int

	// Value is min-max normalised log1p(booking value); Lead is min-max
	// normalised lead time. Both lie in [0, 1).
	Value []float64
	Lead  []float64

	Cancelled  []bool
	Disputed   []bool
	Suspicious []bool

	// Extrema the two continuous features were normalised with.
	ValueRange Range
	LeadRange  Range
}

// Len returns the number of records.
func (f *Features) Len() int { return len(f.IDs) }

// Option configures Extract.
type Option func(*options)

type options struct {
	eps    float64
	schema Schema
}

// WithEpsilon sets the min-max denominator guard.
// Panics if eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("records: WithEpsilon(%g): must be finite and >= 0", eps))
	}

	return func(o *options) { o.eps = eps }
}

// WithSchema names the source columns in errors raised by Extract.
// The default is DefaultSchema.
func WithSchema(s Schema) Option {
	return func(o *options) { o.schema = s }
}

// Extract validates t and derives the feature arrays.
//
// Normalisation uses the extrema of the whole table, never of a subset, so a
// value maps to the same coordinate no matter which chunk later reads it.
// A booking value <= -1 has no log1p and is reported as a *SchemaError.
func Extract(t *Table, opts ...Option) (*Features, error) {
	o := options{eps: DefaultEpsilon, schema: DefaultSchema()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	n := t.Len()
	f := &Features{
		IDs:        t.IDs(),
		Days:       make([]float64, n),
		Cancelled:  make([]bool, n),
		Disputed:   make([]bool, n),
		Suspicious: make([]bool, n),
	}
	agency := make([]string, n)
	user := make([]string, n)
	logValue := make([]float64, n)
	lead := make([]float64, n)

	for i := range t.Records {
		r := &t.Records[i]
		f.Days[i] = toDays(r.Timestamp)
		agency[i], user[i] = r.AgencyID, r.UserID
		f.Cancelled[i], f.Disputed[i], f.Suspicious[i] = r.Cancelled, r.Disputed, r.Suspicious()
		lead[i] = r.LeadTimeDays

		if r.BookingValue <= -1 {
			return nil, &SchemaError{
				Column: o.schema.Value,
				Row:    i + 1,
				Reason: fmt.Sprintf("value %g has no log1p", r.BookingValue),
			}
		}
		logValue[i] = math.Log1p(r.BookingValue)
	}

	f.Agency, _ = internKeys(agency)
	f.User, _ = internKeys(user)
	f.Value, f.ValueRange = MinMax(logValue, o.eps)
	f.Lead, f.LeadRange = MinMax(lead, o.eps)

	return f, nil
}

// toDays converts t to fractional days since the Unix epoch without going
// through UnixNano, which overflows outside 1678..2262.
func toDays(t time.Time) float64 {
	return (float64(t.Unix()) + float64(t.Nanosecond())/1e9) / secondsPerDay
}
