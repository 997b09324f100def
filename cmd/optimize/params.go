// Package main searches ecological parameters for GENESIS runs in which both
// species coexist for as long as possible.
package main

import (
	"github.com/pthm-cable/genesis/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	// field returns the config value the parameter controls
	field func(*config.Config) *float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Population sizes, world dims and VM limits stay fixed.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food grid
			{Name: "food_regen", Path: "food.regen_probability", Min: 0.001, Max: 0.05,
				field: func(c *config.Config) *float64 { return &c.Food.RegenProbability }},
			{Name: "food_decay", Path: "food.decay_probability", Min: 0, Max: 0.02,
				field: func(c *config.Config) *float64 { return &c.Food.DecayProbability }},
			{Name: "food_spontaneous", Path: "food.spontaneous_probability", Min: 0.0001, Max: 0.01,
				field: func(c *config.Config) *float64 { return &c.Food.SpontaneousProbability }},
			{Name: "food_energy", Path: "food.energy_factor", Min: 0.5, Max: 5,
				field: func(c *config.Config) *float64 { return &c.Food.EnergyFactor }},
			// Pollution
			{Name: "pollution_increment", Path: "pollution.increment_per_life", Min: 0, Max: 0.0001,
				field: func(c *config.Config) *float64 { return &c.Pollution.IncrementPerLife }},
			{Name: "pollution_death", Path: "pollution.death_factor", Min: 0, Max: 0.01,
				field: func(c *config.Config) *float64 { return &c.Pollution.DeathFactor }},
			// Predation
			{Name: "predation_gain", Path: "predation.energy_gain", Min: 2, Max: 30,
				field: func(c *config.Config) *float64 { return &c.Predation.EnergyGain }},
			// Reproduction - Species A
			{Name: "a_repro_threshold", Path: "species.a.reproduction_threshold", Min: 10, Max: 40,
				field: func(c *config.Config) *float64 { return &c.Species.A.ReproductionThreshold }},
			{Name: "a_repro_cost", Path: "species.a.reproduction_cost", Min: 1, Max: 15,
				field: func(c *config.Config) *float64 { return &c.Species.A.ReproductionCost }},
			{Name: "a_repro_prob", Path: "species.a.reproduction_probability", Min: 0.1, Max: 1,
				field: func(c *config.Config) *float64 { return &c.Species.A.ReproductionProbability }},
			// Reproduction - Species B
			{Name: "b_repro_threshold", Path: "species.b.reproduction_threshold", Min: 15, Max: 60,
				field: func(c *config.Config) *float64 { return &c.Species.B.ReproductionThreshold }},
			{Name: "b_repro_cost", Path: "species.b.reproduction_cost", Min: 5, Max: 30,
				field: func(c *config.Config) *float64 { return &c.Species.B.ReproductionCost }},
			{Name: "b_repro_prob", Path: "species.b.reproduction_probability", Min: 0.1, Max: 1,
				field: func(c *config.Config) *float64 { return &c.Species.B.ReproductionProbability }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg and refreshes
// derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
	cfg.Recompute()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	values := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		values[i] = *spec.field(cfg)
	}
	return values
}
