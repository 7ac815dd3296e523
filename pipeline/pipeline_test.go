// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/fraudgraph/artifact"
	"github.com/katalvlaran/fraudgraph/matrix"
	"github.com/katalvlaran/fraudgraph/pipeline"
	"github.com/katalvlaran/fraudgraph/records"
)

const bookingsCSV = `booking_id,booking_ts,agency_id,user_id,booking_value,lead_time_days,is_cancelled,is_disputed,suspicious_pax_domains,cancel_delay_days,dispute_delay_days,chargeback_amount,final_loss_amount
B1,2024-01-01 10:00:00,A1,U1,100,10,0,0,0,0,0,0,0
B2,2024-01-02 10:00:00,A1,U2,200,20,1,0,0,3,0,0,0
B3,2024-01-03 10:00:00,A2,U2,150,5,1,1,2,4,10,150,150
B4,2024-01-20 10:00:00,A3,U3,1000,60,0,1,1,0,12,900,450
B5,2024-01-04 10:00:00,A1,U1,120,15,0,0,0,0,0,0,0
`

type RunSuite struct {
	suite.Suite
	dir string
	cfg pipeline.Config
}

func (s *RunSuite) SetupTest() {
	s.dir = s.T().TempDir()
	in := filepath.Join(s.dir, "bookings.csv")
	s.Require().NoError(os.WriteFile(in, []byte(bookingsCSV), 0o600))

	s.cfg = pipeline.DefaultConfig()
	s.cfg.Input.Path = in
	s.cfg.OutputDir = filepath.Join(s.dir, "out")
	s.cfg.Structural.ChunkSize = 2
}

func (s *RunSuite) run() *pipeline.Result {
	res, err := pipeline.Run(context.Background(), s.cfg, zaptest.NewLogger(s.T()))
	s.Require().NoError(err)
	return res
}

func (s *RunSuite) readSquare(path string) *artifact.Square {
	sq, err := artifact.ReadSquareFile(path)
	s.Require().NoError(err)
	return sq
}

func (s *RunSuite) TestStructuralArtifact() {
	res := s.run()
	s.Equal(5, res.N)
	s.NotEmpty(res.RunID)
	s.Empty(res.RelevancePath)
	s.InDelta(0.2, math.Exp(-res.Value.Lambda*res.Value.Percentile), 1e-6)

	sq := s.readSquare(res.StructuralPath)
	s.Equal([]string{"B1", "B2", "B3", "B4", "B5"}, sq.IDs)
	s.Require().NoError(matrix.ValidateWeightMatrix(sq.Mat))
	s.Require().NoError(matrix.ValidateZeroDiagonal(sq.Mat, 0))
	s.Require().NoError(matrix.ValidateSymmetric(sq.Mat, 0))

	// B4 is 16+ days from everyone and shares no key: an isolated row.
	for j := 0; j < 5; j++ {
		v, err := sq.Mat.At(3, j)
		s.Require().NoError(err)
		s.Zero(v)
	}
	// B1 and B5 share agency and user inside the window.
	v, err := sq.Mat.At(0, 4)
	s.Require().NoError(err)
	s.Greater(v, 0.06)

	_, err = os.Stat(res.AttributePath)
	s.Require().NoError(err)
}

func (s *RunSuite) TestDeterministicAcrossRunsAndWorkers() {
	first := s.run()
	a := s.readSquare(first.StructuralPath)

	s.cfg.Structural.Workers = 3
	s.cfg.Structural.ChunkSize = 1
	s.cfg.OutputDir = filepath.Join(s.dir, "again")
	second := s.run()
	b := s.readSquare(second.StructuralPath)

	s.Equal(first.Value, second.Value)
	s.Equal(first.Lead, second.Lead)
	ok, err := matrix.AllClose(a.Mat, b.Mat, 0, 0)
	s.Require().NoError(err)
	s.True(ok)
	s.NotEqual(first.RunID, second.RunID)
}

func (s *RunSuite) TestPropagation() {
	s.cfg.Propagation.Enabled = true
	res := s.run()
	s.Require().NotEmpty(res.RelevancePath)

	p := s.readSquare(res.RelevancePath)
	sums, err := matrix.RowSums(p.Mat)
	s.Require().NoError(err)
	for i, sum := range sums {
		if i == 3 {
			// Isolated: only the restart mass (1-c) on the diagonal.
			s.InDelta(1-s.cfg.Propagation.Restart, sum, 1e-12)
			continue
		}
		s.InDelta(1, sum, 1e-12, "row %d", i)
	}
}

func (s *RunSuite) TestSchemaErrorLeavesNoFiles() {
	broken := strings.Replace(bookingsCSV, ",final_loss_amount", "", 1)
	s.Require().NoError(os.WriteFile(s.cfg.Input.Path, []byte(broken), 0o600))

	_, err := pipeline.Run(context.Background(), s.cfg, nil)
	s.Require().ErrorIs(err, records.ErrSchema)
	_, statErr := os.Stat(s.cfg.OutputDir)
	s.True(os.IsNotExist(statErr), "output directory must not be created")
}

func (s *RunSuite) TestCustomSchemaNamesArtifacts() {
	renamed := strings.Replace(bookingsCSV, "lead_time_days", "lead_days", 1)
	renamed = strings.Replace(renamed, "booking_value", "amount", 1)
	s.Require().NoError(os.WriteFile(s.cfg.Input.Path, []byte(renamed), 0o600))
	s.cfg.Schema.LeadTime = "lead_days"
	s.cfg.Schema.Value = "amount"

	res := s.run()
	raw, err := os.ReadFile(res.AttributePath)
	s.Require().NoError(err)
	header := strings.SplitN(string(raw), "\n", 2)[0]
	s.Equal("booking_id,lead_days,is_cancelled,cancel_delay_days,is_disputed,"+
		"dispute_delay_days,chargeback_amount,final_loss_amount", header)
}

func (s *RunSuite) TestInvalidConfig() {
	s.cfg.Kernel.SampleSize = 0
	_, err := pipeline.Run(context.Background(), s.cfg, nil)
	s.Require().ErrorIs(err, pipeline.ErrInvalidConfig)
}

func (s *RunSuite) TestSQLiteInput() {
	dbPath := filepath.Join(s.dir, "bookings.db")
	db, err := sql.Open("sqlite", dbPath)
	s.Require().NoError(err)
	_, err = db.Exec(`CREATE TABLE bookings (
		booking_id TEXT, booking_ts TEXT, agency_id TEXT, user_id TEXT,
		booking_value REAL, lead_time_days REAL, is_cancelled INTEGER, is_disputed INTEGER,
		suspicious_pax_domains INTEGER, cancel_delay_days REAL, dispute_delay_days REAL,
		chargeback_amount REAL, final_loss_amount REAL)`)
	s.Require().NoError(err)

	tbl, err := records.ReadCSV(strings.NewReader(bookingsCSV), records.DefaultSchema())
	s.Require().NoError(err)
	for _, r := range tbl.Records {
		_, err = db.Exec(`INSERT INTO bookings VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.AgencyID, r.UserID,
			r.BookingValue, r.LeadTimeDays, r.Cancelled, r.Disputed, r.SuspiciousDomains,
			r.CancelDelayDays, r.DisputeDelayDays, r.ChargebackAmount, r.FinalLossAmount)
		s.Require().NoError(err)
	}
	s.Require().NoError(db.Close())

	csvRes := s.run()
	fromCSV := s.readSquare(csvRes.StructuralPath)

	s.cfg.Input = pipeline.InputConfig{Format: pipeline.FormatSQLite, Path: dbPath, Query: pipeline.DefaultQuery}
	s.cfg.OutputDir = filepath.Join(s.dir, "sqlite")
	sqlRes := s.run()
	fromSQL := s.readSquare(sqlRes.StructuralPath)

	ok, err := matrix.AllClose(fromCSV.Mat, fromSQL.Mat, 0, 1e-12)
	s.Require().NoError(err)
	s.True(ok)

	s.cfg.Input.Path = filepath.Join(s.dir, "absent.db")
	_, err = pipeline.Run(context.Background(), s.cfg, nil)
	s.Require().ErrorIs(err, os.ErrNotExist)
}

func (s *RunSuite) TestCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pipeline.Run(ctx, s.cfg, nil)
	s.Require().ErrorIs(err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(s.cfg.OutputDir, artifact.StructuralFile))
	s.True(os.IsNotExist(statErr))
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(RunSuite))
}

func TestRun_NilLoggerIsFine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(in, []byte(bookingsCSV), 0o600))
	cfg := pipeline.DefaultConfig()
	cfg.Input.Path = in
	cfg.OutputDir = dir

	res, err := pipeline.Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, artifact.StructuralFile), res.StructuralPath)
}
