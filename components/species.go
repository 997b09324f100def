// Package components defines the per-organism state of the simulation.
package components

import "github.com/pthm-cable/genesis/config"

// Species tags an organism as forager or predator.
type Species uint8

const (
	SpeciesA Species = iota + 1 // forager / prey
	SpeciesB                    // predator
)

// NumSpecies is the number of species the engine tracks.
const NumSpecies = 2

// AllSpecies lists species in display order.
var AllSpecies = [NumSpecies]Species{SpeciesA, SpeciesB}

// String returns the short species label.
func (s Species) String() string {
	switch s {
	case SpeciesA:
		return "A"
	case SpeciesB:
		return "B"
	default:
		return "?"
	}
}

// Index maps a species to 0 or 1 for per-species arrays.
// Unknown values map to SpeciesB's slot.
func (s Species) Index() int {
	if s == SpeciesA {
		return 0
	}
	return 1
}

// Params returns the species' trait ranges and reproduction economics.
func (s Species) Params(cfg *config.Config) *config.SpeciesConfig {
	if s == SpeciesA {
		return &cfg.Species.A
	}
	return &cfg.Species.B
}
