// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fraudgraph/kernel"
	"github.com/katalvlaran/fraudgraph/propagation"
	"github.com/katalvlaran/fraudgraph/records"
	"github.com/katalvlaran/fraudgraph/structural"
)

// ErrInvalidConfig wraps every configuration problem found by Validate.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Input formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// DefaultSeed seeds the kernel sampler when the config does not.
const DefaultSeed = 42

// DefaultQuery reads the master table in id order.
const DefaultQuery = "SELECT * FROM bookings ORDER BY booking_id"

// InputConfig locates the booking table.
type InputConfig struct {
	Format string `yaml:"format"` // csv | sqlite
	Path   string `yaml:"path"`
	Query  string `yaml:"query"` // sqlite only
}

// KernelConfig tunes decay-rate estimation.
type KernelConfig struct {
	Seed             int64   `yaml:"seed"`
	SampleSize       int     `yaml:"sample_size"`
	Percentile       float64 `yaml:"percentile"`
	TargetSimilarity float64 `yaml:"target_similarity"`
	Epsilon          float64 `yaml:"epsilon"`
}

// StructuralConfig tunes the structural matrix.
type StructuralConfig struct {
	Weights   structural.Weights `yaml:"weights"`
	TauDays   float64            `yaml:"tau_days"`
	ChunkSize int                `yaml:"chunk_size"`
	Workers   int                `yaml:"workers"`
}

// PropagationConfig tunes the optional diffusion stage.
type PropagationConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Restart    float64 `yaml:"restart"`
	Iterations int     `yaml:"iterations"`
	ZeroDegree float64 `yaml:"zero_degree"`
}

// LogConfig selects the logger built by NewLogger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
	// File, when set, receives JSON logs through a rotating writer.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Config is the full description of one run.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Schema      records.Schema    `yaml:"schema"`
	OutputDir   string            `yaml:"output_dir"`
	Kernel      KernelConfig      `yaml:"kernel"`
	Structural  StructuralConfig  `yaml:"structural"`
	Propagation PropagationConfig `yaml:"propagation"`
	Log         LogConfig         `yaml:"log"`
}

// DefaultConfig returns a config with every tunable at its library default.
// Input.Path and OutputDir are left for the caller.
func DefaultConfig() Config {
	return Config{
		Input:  InputConfig{Format: FormatCSV, Query: DefaultQuery},
		Schema: records.DefaultSchema(),
		Kernel: KernelConfig{
			Seed:             DefaultSeed,
			SampleSize:       kernel.DefaultSampleSize,
			Percentile:       kernel.DefaultPercentile,
			TargetSimilarity: kernel.DefaultTargetSimilarity,
			Epsilon:          kernel.DefaultEpsilon,
		},
		Structural: StructuralConfig{
			Weights:   structural.DefaultWeights(),
			TauDays:   structural.DefaultTauDays,
			ChunkSize: structural.DefaultChunkSize,
			Workers:   structural.DefaultWorkers,
		},
		Propagation: PropagationConfig{
			Restart:    propagation.DefaultRestart,
			Iterations: propagation.DefaultIterations,
			ZeroDegree: propagation.DefaultZeroDegree,
		},
		Log: LogConfig{Level: "info", Format: "console", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// LoadConfig reads a YAML config from path on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pipeline: %w", err)
	}

	return ParseConfig(raw)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	bad := func(field string, v any) error {
		return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, field, v)
	}

	switch c.Input.Format {
	case FormatCSV:
	case FormatSQLite:
		if strings.TrimSpace(c.Input.Query) == "" {
			return bad("input.query", c.Input.Query)
		}
	default:
		return bad("input.format", c.Input.Format)
	}
	if c.Input.Path == "" {
		return bad("input.path", c.Input.Path)
	}
	if c.OutputDir == "" {
		return bad("output_dir", c.OutputDir)
	}
	seen := make(map[string]bool)
	for _, name := range c.Schema.Required() {
		if name == "" {
			return bad("schema", "empty column name")
		}
		if seen[name] {
			return bad("schema", "duplicate column "+name)
		}
		seen[name] = true
	}

	k := c.Kernel
	switch {
	case k.SampleSize < 1:
		return bad("kernel.sample_size", k.SampleSize)
	case !(k.Percentile > 0 && k.Percentile <= 1):
		return bad("kernel.percentile", k.Percentile)
	case !(k.TargetSimilarity > 0 && k.TargetSimilarity < 1):
		return bad("kernel.target_similarity", k.TargetSimilarity)
	case !(k.Epsilon > 0) || !finite(k.Epsilon):
		return bad("kernel.epsilon", k.Epsilon)
	}

	s := c.Structural
	if err := (structural.Params{Weights: s.Weights, TauDays: s.TauDays}).Validate(); err != nil {
		return fmt.Errorf("%w: structural: %v", ErrInvalidConfig, err)
	}
	if s.ChunkSize < 1 {
		return bad("structural.chunk_size", s.ChunkSize)
	}
	if s.Workers < 1 {
		return bad("structural.workers", s.Workers)
	}

	p := c.Propagation
	switch {
	case !(p.Restart >= 0 && p.Restart <= 1):
		return bad("propagation.restart", p.Restart)
	case p.Iterations < 0:
		return bad("propagation.iterations", p.Iterations)
	case !(p.ZeroDegree > 0) || !finite(p.ZeroDegree):
		return bad("propagation.zero_degree", p.ZeroDegree)
	}

	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return bad("log.level", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return bad("log.format", c.Log.Format)
	}

	return nil
}
