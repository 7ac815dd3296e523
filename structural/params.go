// SPDX-License-Identifier: MIT

package structural

import (
	"fmt"
	"math"
)

// Default bonuses and window.
const (
	DefaultAgencyWeight     = 0.01
	DefaultUserWeight       = 0.05
	DefaultCancelWeight     = 0.15 // α
	DefaultDisputeWeight    = 0.20 // β
	DefaultSuspiciousWeight = 0.30 // γ
	DefaultTauDays          = 7.0
)

// Weights are the additive bonuses of the structural formula.
type Weights struct {
	Agency     float64 `yaml:"agency"`
	User       float64 `yaml:"user"`
	Cancel     float64 `yaml:"cancel"`
	Dispute    float64 `yaml:"dispute"`
	Suspicious float64 `yaml:"suspicious"`
}

// DefaultWeights returns the production bonuses.
func DefaultWeights() Weights {
	return Weights{
		Agency:     DefaultAgencyWeight,
		User:       DefaultUserWeight,
		Cancel:     DefaultCancelWeight,
		Dispute:    DefaultDisputeWeight,
		Suspicious: DefaultSuspiciousWeight,
	}
}

// Params fully determine W for a given feature set.
// LambdaValue and LambdaLead normally come from kernel.Estimator.
type Params struct {
	Weights     Weights
	TauDays     float64
	LambdaValue float64
	LambdaLead  float64
}

// Validate rejects negative, NaN or infinite entries. Zero is allowed
// everywhere: a zero rate makes the kernel constant 1.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"Weights.Agency", p.Weights.Agency},
		{"Weights.User", p.Weights.User},
		{"Weights.Cancel", p.Weights.Cancel},
		{"Weights.Dispute", p.Weights.Dispute},
		{"Weights.Suspicious", p.Weights.Suspicious},
		{"TauDays", p.TauDays},
		{"LambdaValue", p.LambdaValue},
		{"LambdaLead", p.LambdaLead},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s=%g: %w", f.name, f.v, ErrInvalidParams)
		}
	}

	return nil
}
