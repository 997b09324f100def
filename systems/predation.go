package systems

import "github.com/pthm-cable/genesis/components"

// ResolvePredation pairs predators with prey sharing a cell.
// Within each cell min(#living B, #living A) pairs are formed in population
// order: each paired prey drops to zero energy and is flagged as eaten, each
// paired predator gains energyGain. Returns the number of kills.
func ResolvePredation(pop components.Population, energyGain float64) int {
	type occupants struct {
		predators []*components.Organism
		prey      []*components.Organism
	}

	// Cells in first-seen order so resolution is deterministic
	cells := make(map[components.Position]*occupants)
	var order []components.Position

	for _, o := range pop {
		if o.IsDead() {
			continue
		}
		occ, ok := cells[o.Pos]
		if !ok {
			occ = &occupants{}
			cells[o.Pos] = occ
			order = append(order, o.Pos)
		}
		switch o.Species {
		case components.SpeciesB:
			occ.predators = append(occ.predators, o)
		case components.SpeciesA:
			occ.prey = append(occ.prey, o)
		}
	}

	kills := 0
	for _, pos := range order {
		occ := cells[pos]
		n := min(len(occ.predators), len(occ.prey))
		for i := 0; i < n; i++ {
			victim := occ.prey[i]
			victim.Energy = 0
			victim.DiedFromPredation = true
			occ.predators[i].Energy += energyGain
		}
		kills += n
	}

	return kills
}
