package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/genesis/config"
)

// Environment is the shared world state the organisms act on:
// the food grid and the global pollution level.
type Environment struct {
	Food      *FoodGrid
	Pollution float64 // [0, cap], never decreases
}

// NewEnvironment creates an environment with an empty food grid sized to the world.
func NewEnvironment(cfg *config.Config) *Environment {
	return &Environment{
		Food: NewFoodGrid(cfg.World.Width, cfg.World.Height, cfg.Food.MaxUnits),
	}
}

// SeedFood fills the grid using the configured initial layout.
func (e *Environment) SeedFood(rng *rand.Rand, cfg *config.Config) {
	fc := &cfg.Food
	if fc.InitialLayout == "noise" {
		e.Food.SeedNoise(rng.Int63(), fc.NoiseScale, fc.InitialFraction, fc.InitialMin, fc.InitialMax)
		return
	}
	e.Food.SeedUniform(rng, fc.InitialFraction, fc.InitialMin, fc.InitialMax)
}

// Width returns the grid width in cells.
func (e *Environment) Width() int { return e.Food.W }

// Height returns the grid height in cells.
func (e *Environment) Height() int { return e.Food.H }

// AddPollution raises the level by perLife for each living organism, capped.
// The level is never lowered, even if cap is below the current value.
func (e *Environment) AddPollution(living int, perLife, cap float64) {
	next := math.Min(e.Pollution+perLife*float64(living), cap)
	if next > e.Pollution {
		e.Pollution = next
	}
}

// PollutionFactor returns max(0, 1 - pollution), the food growth multiplier.
func (e *Environment) PollutionFactor() float64 {
	return math.Max(0, 1-e.Pollution)
}

// Regenerate runs one tick of food dynamics under the current pollution.
func (e *Environment) Regenerate(rng *rand.Rand, cfg *config.Config) {
	e.Food.Regenerate(rng, RegenParams{
		RegenProbability:       cfg.Food.RegenProbability,
		DecayProbability:       cfg.Food.DecayProbability,
		SpontaneousProbability: cfg.Food.SpontaneousProbability,
	}, e.PollutionFactor())
}
