// SPDX-License-Identifier: MIT

package records_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fraudgraph/records"
)

func TestMinMax(t *testing.T) {
	t.Parallel()

	x := []float64{2, 4, 6}
	got, rg := records.MinMax(x, 0)
	assert.Equal(t, []float64{0, 0.5, 1}, got)
	assert.Equal(t, records.Range{Min: 2, Max: 6}, rg)
	assert.Equal(t, []float64{2, 4, 6}, x, "input must not be mutated")

	// ε keeps every value strictly below 1.
	got, _ = records.MinMax(x, records.DefaultEpsilon)
	assert.Less(t, got[2], 1.0)
	assert.InDelta(t, 1.0, got[2], 1e-8)

	// Zero spread is degenerate, not an error.
	got, rg = records.MinMax([]float64{3, 3, 3}, records.DefaultEpsilon)
	assert.Equal(t, []float64{0, 0, 0}, got)
	assert.Zero(t, rg.Spread())

	// Without an ε guard a constant column is still zero, not 0/0.
	got, rg = records.MinMax([]float64{2, 2}, 0)
	assert.Equal(t, []float64{0, 0}, got)
	assert.Equal(t, records.Range{Min: 2, Max: 2}, rg)

	got, _ = records.MinMax(nil, records.DefaultEpsilon)
	assert.Empty(t, got)
}

func TestExtract_FiveBookings(t *testing.T) {
	t.Parallel()

	tbl, err := records.ReadCSV(strings.NewReader(fiveBookings), records.DefaultSchema())
	require.NoError(t, err)

	f, err := records.Extract(tbl)
	require.NoError(t, err)
	require.Equal(t, 5, f.Len())

	// B1 and B2 are exactly one day apart.
	assert.InDelta(t, 1.0, f.Days[1]-f.Days[0], 1e-9)
	assert.InDelta(t, 19.0, f.Days[3]-f.Days[0], 1e-9)

	// Agency A1 is shared by B1, B2, B5; user U1 by B1 and B5.
	assert.Equal(t, f.Agency[0], f.Agency[1])
	assert.Equal(t, f.Agency[0], f.Agency[4])
	assert.NotEqual(t, f.Agency[0], f.Agency[2])
	assert.Equal(t, f.User[0], f.User[4])
	assert.NotEqual(t, f.User[0], f.User[1])

	// log1p(100) is the global minimum, log1p(1000) the maximum.
	assert.Zero(t, f.Value[0])
	assert.InDelta(t, 1.0, f.Value[3], 1e-7)
	assert.InDelta(t, math.Log1p(100), f.ValueRange.Min, 1e-12)
	assert.InDelta(t, math.Log1p(1000), f.ValueRange.Max, 1e-12)
	for _, v := range append(append([]float64{}, f.Value...), f.Lead...) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	// B5 has an empty lead time, read as 0: it is the lead minimum.
	assert.Zero(t, f.Lead[4])
	assert.Equal(t, records.Range{Min: 0, Max: 60}, f.LeadRange)

	assert.Equal(t, []bool{false, true, true, false, false}, f.Cancelled)
	assert.Equal(t, []bool{false, false, true, true, false}, f.Disputed)
	assert.Equal(t, []bool{false, false, true, true, false}, f.Suspicious)
}

func TestExtract_IdentityKeysCompareTrimmed(t *testing.T) {
	t.Parallel()

	tbl := &records.Table{Records: []records.Record{
		{ID: "x", AgencyID: "A1", UserID: ""},
		{ID: "y", AgencyID: " A1", UserID: ""},
		{ID: "z", AgencyID: "a1", UserID: "U"},
	}}
	f, err := records.Extract(tbl)
	require.NoError(t, err)

	assert.Equal(t, f.Agency[0], f.Agency[1])
	assert.NotEqual(t, f.Agency[0], f.Agency[2], "comparison is case sensitive")
	assert.Equal(t, f.User[0], f.User[1], "missing keys compare equal to each other")
	assert.NotEqual(t, f.User[0], f.User[2])
}

func TestExtract_Degenerate(t *testing.T) {
	t.Parallel()

	tbl := &records.Table{Records: []records.Record{
		{ID: "a", BookingValue: 50, LeadTimeDays: 7},
		{ID: "b", BookingValue: 50, LeadTimeDays: 7},
	}}
	f, err := records.Extract(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, f.Value)
	assert.Equal(t, []float64{0, 0}, f.Lead)
}

func TestExtract_DegenerateWithoutEpsilon(t *testing.T) {
	t.Parallel()

	tbl := &records.Table{Records: []records.Record{
		{ID: "a", BookingValue: 80, LeadTimeDays: 3},
		{ID: "b", BookingValue: 80, LeadTimeDays: 3},
	}}
	f, err := records.Extract(tbl, records.WithEpsilon(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, f.Value)
	assert.Equal(t, []float64{0, 0}, f.Lead)
}

func TestExtract_Errors(t *testing.T) {
	t.Parallel()

	_, err := records.Extract(&records.Table{})
	require.ErrorIs(t, err, records.ErrEmptyTable)

	neg := &records.Table{Records: []records.Record{{ID: "a", BookingValue: -1}}}
	_, err = records.Extract(neg)
	require.ErrorIs(t, err, records.ErrSchema)
	var se *records.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, records.DefaultValueColumn, se.Column)

	custom := records.DefaultSchema()
	custom.Value = "amount"
	_, err = records.Extract(neg, records.WithSchema(custom))
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "amount", se.Column)
	assert.Equal(t, 1, se.Row)

	require.Panics(t, func() { records.WithEpsilon(-1) })
	require.Panics(t, func() { records.WithEpsilon(math.NaN()) })
	require.NotPanics(t, func() { records.WithEpsilon(0) })
}
