// SPDX-License-Identifier: MIT

// Package pipeline runs the batch end to end: load the booking table, extract
// features, estimate kernel rates, stream the structural matrix to disk, write
// the attribute matrix and optionally diffuse relevance over the structural
// graph.
//
// Every input problem (bad config, missing column, malformed cell) is reported
// before the output directory is touched, so a failed run leaves no artifacts.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	otelattr "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/katalvlaran/fraudgraph/artifact"
	"github.com/katalvlaran/fraudgraph/attribute"
	"github.com/katalvlaran/fraudgraph/kernel"
	"github.com/katalvlaran/fraudgraph/propagation"
	"github.com/katalvlaran/fraudgraph/records"
	"github.com/katalvlaran/fraudgraph/structural"
)

const tracerName = "github.com/katalvlaran/fraudgraph/pipeline"

// Result summarises a finished run.
type Result struct {
	RunID string
	N     int

	Value kernel.Rate // rate of normalised log1p(booking value)
	Lead  kernel.Rate // rate of normalised lead time

	StructuralPath string
	AttributePath  string
	RelevancePath  string // empty when propagation is disabled
}

// Run executes one batch described by cfg. A nil logger discards logs.
func Run(ctx context.Context, cfg Config, log *zap.Logger) (res *Result, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	res = &Result{RunID: uuid.NewString()}
	log = log.With(zap.String("run_id", res.RunID))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "fraudgraph.run")
	span.SetAttributes(otelattr.String("run_id", res.RunID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error("run failed", zap.Error(err))
		}
		span.End()
	}()
	log.Info("run started", zap.String("input", cfg.Input.Path), zap.String("format", cfg.Input.Format))

	var tbl *records.Table
	err = stage(ctx, log, "load", func(ctx context.Context) (err error) {
		tbl, err = loadTable(ctx, cfg.Input, cfg.Schema)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.N = tbl.Len()
	span.SetAttributes(otelattr.Int("records", res.N))

	var f *records.Features
	err = stage(ctx, log, "extract", func(context.Context) (err error) {
		f, err = records.Extract(tbl,
			records.WithEpsilon(cfg.Kernel.Epsilon),
			records.WithSchema(cfg.Schema),
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, log, "estimate", func(context.Context) error {
		est := kernel.NewEstimator(
			kernel.WithSampleSize(cfg.Kernel.SampleSize),
			kernel.WithPercentile(cfg.Kernel.Percentile),
			kernel.WithTargetSimilarity(cfg.Kernel.TargetSimilarity),
			kernel.WithEpsilon(cfg.Kernel.Epsilon),
		)
		rates, err := est.Estimate(rand.New(rand.NewSource(cfg.Kernel.Seed)), f.Value, f.Lead)
		if err != nil {
			return err
		}
		res.Value, res.Lead = rates[0], rates[1]
		log.Info("kernel rates",
			zap.Float64("value_d75", res.Value.Percentile), zap.Float64("value_lambda", res.Value.Lambda),
			zap.Float64("lead_d75", res.Lead.Percentile), zap.Float64("lead_lambda", res.Lead.Lambda))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Attributes are computed before any file is written so a bad column
	// cannot leave a structural artifact behind.
	var attrs *attribute.Matrix
	err = stage(ctx, log, "attribute", func(context.Context) (err error) {
		attrs, err = attribute.Build(tbl,
			attribute.WithColumns(attribute.ColumnsFor(cfg.Schema)...),
			attribute.WithEpsilon(cfg.Kernel.Epsilon),
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	res.StructuralPath = filepath.Join(cfg.OutputDir, artifact.StructuralFile)
	res.AttributePath = filepath.Join(cfg.OutputDir, artifact.AttributeFile)

	err = stage(ctx, log, "structural", func(ctx context.Context) error {
		b, err := structural.NewBuilder(f, structural.Params{
			Weights:     cfg.Structural.Weights,
			TauDays:     cfg.Structural.TauDays,
			LambdaValue: res.Value.Lambda,
			LambdaLead:  res.Lead.Lambda,
		},
			structural.WithChunkSize(cfg.Structural.ChunkSize),
			structural.WithWorkers(cfg.Structural.Workers),
			structural.WithLogger(log),
		)
		if err != nil {
			return err
		}
		return artifact.WriteSquareFile(res.StructuralPath, f.IDs, func(sw *artifact.SquareWriter) error {
			return b.Build(ctx, sw)
		})
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, log, "attribute_write", func(context.Context) error {
		return artifact.WriteAttributesFile(res.AttributePath, attrs)
	})
	if err != nil {
		return nil, err
	}

	if cfg.Propagation.Enabled {
		res.RelevancePath = filepath.Join(cfg.OutputDir, artifact.RelevanceFile)
		err = stage(ctx, log, "propagate", func(ctx context.Context) error {
			sq, err := artifact.ReadSquareFile(res.StructuralPath)
			if err != nil {
				return err
			}
			p, err := propagation.Propagate(ctx, sq.Mat, cfg.Propagation.Restart, cfg.Propagation.Iterations,
				propagation.WithZeroDegree(cfg.Propagation.ZeroDegree),
				propagation.WithLogger(log),
			)
			if err != nil {
				return err
			}
			return artifact.WriteMatrixFile(res.RelevancePath, sq.IDs, p)
		})
		if err != nil {
			return nil, err
		}
	}

	log.Info("run finished", zap.Int("records", res.N),
		zap.String("structural", res.StructuralPath), zap.String("attribute", res.AttributePath))

	return res, nil
}

// stage runs fn inside its own span and logs its duration.
func stage(ctx context.Context, log *zap.Logger, name string, fn func(context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fraudgraph."+name,
		trace.WithAttributes(otelattr.String("stage", name)))
	defer span.End()

	began := time.Now()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("pipeline: %s: %w", name, err)
	}
	log.Debug("stage done", zap.String("stage", name), zap.Duration("elapsed", time.Since(began)))

	return nil
}

func loadTable(ctx context.Context, in InputConfig, schema records.Schema) (tbl *records.Table, err error) {
	switch in.Format {
	case FormatSQLite:
		// The driver would silently create a missing database file.
		if _, err = os.Stat(in.Path); err != nil {
			return nil, err
		}
		var db *sql.DB
		if db, err = sql.Open("sqlite", in.Path); err != nil {
			return nil, err
		}
		defer func() { err = multierr.Append(err, db.Close()) }()

		return records.ReadSQL(ctx, db, in.Query, schema)
	default:
		return records.ReadCSVFile(in.Path, schema)
	}
}
