// SPDX-License-Identifier: MIT

package attribute_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fraudgraph/attribute"
	"github.com/katalvlaran/fraudgraph/records"
)

func table() *records.Table {
	return &records.Table{Records: []records.Record{
		{ID: "B1", LeadTimeDays: 10},
		{ID: "B2", LeadTimeDays: 20, Cancelled: true, CancelDelayDays: 3},
		{ID: "B3", LeadTimeDays: 5, Cancelled: true, Disputed: true, CancelDelayDays: 4,
			DisputeDelayDays: 10, ChargebackAmount: 150, FinalLossAmount: 150},
		{ID: "B4", LeadTimeDays: 60, Disputed: true, DisputeDelayDays: 12,
			ChargebackAmount: 900, FinalLossAmount: 450},
	}}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	m, err := attribute.Build(table(), attribute.WithEpsilon(0))
	require.NoError(t, err)

	assert.Equal(t, []string{"B1", "B2", "B3", "B4"}, m.IDs)
	assert.Equal(t, []string{
		"lead_time_days", "is_cancelled", "cancel_delay_days", "is_disputed",
		"dispute_delay_days", "chargeback_amount", "final_loss_amount",
	}, m.Columns)
	r, c := m.Values.Shape()
	assert.Equal(t, 4, r)
	assert.Equal(t, 7, c)

	want := [][]float64{
		{5.0 / 55, 0, 0, 0, 0, 0, 0},
		{15.0 / 55, 1, 0.75, 0, 0, 0, 0},
		{0, 1, 1, 1, 10.0 / 12, 1.0 / 6, 1.0 / 3},
		{1, 0, 0, 1, 1, 1, 1},
	}
	for i, row := range want {
		for j, v := range row {
			got, err := m.Values.At(i, j)
			require.NoError(t, err)
			assert.InDelta(t, v, got, 1e-12, "cell (%d,%d)", i, j)
		}
	}
	assert.Equal(t, records.Range{Min: 5, Max: 60}, m.Ranges[0])
}

func TestBuild_EpsilonKeepsBelowOne(t *testing.T) {
	t.Parallel()

	m, err := attribute.Build(table())
	require.NoError(t, err)
	m.Values.Do(func(i, j int, v float64) bool {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
		return true
	})
}

func TestBuild_ConstantColumnIsZero(t *testing.T) {
	t.Parallel()

	m, err := attribute.Build(table(), attribute.WithColumns(
		attribute.Column{Name: "one", Value: func(records.Record) float64 { return 1 }},
	))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		v, err := m.Values.At(i, 0)
		require.NoError(t, err)
		assert.Zero(t, v)
	}
}

func TestBuild_ConstantColumnWithoutEpsilon(t *testing.T) {
	t.Parallel()

	tbl := table()
	for i := range tbl.Records {
		tbl.Records[i].LeadTimeDays = 7
	}
	m, err := attribute.Build(tbl, attribute.WithEpsilon(0))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		v, err := m.Values.At(i, 0)
		require.NoError(t, err)
		assert.Zero(t, v)
	}
	assert.Zero(t, m.Ranges[0].Spread())
}

func TestColumnsFor_FollowsSchema(t *testing.T) {
	t.Parallel()

	s := records.DefaultSchema()
	s.LeadTime = "lead_days"
	s.FinalLoss = "loss"

	m, err := attribute.Build(table(), attribute.WithColumns(attribute.ColumnsFor(s)...))
	require.NoError(t, err)
	assert.Equal(t, "lead_days", m.Columns[0])
	assert.Equal(t, "loss", m.Columns[6])
	assert.Equal(t, records.DefaultChargebackColumn, m.Columns[5])
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := attribute.Build(&records.Table{})
	require.ErrorIs(t, err, records.ErrEmptyTable)

	_, err = attribute.Build(table(), attribute.WithColumns(
		attribute.Column{Name: "bad", Value: func(records.Record) float64 { return math.Inf(1) }},
	))
	require.ErrorIs(t, err, records.ErrSchema)

	require.Panics(t, func() { attribute.WithColumns() })
	require.Panics(t, func() {
		v := func(records.Record) float64 { return 0 }
		attribute.WithColumns(attribute.Column{Name: "x", Value: v}, attribute.Column{Name: "x", Value: v})
	})
	require.Panics(t, func() { attribute.WithEpsilon(-1) })
}
