package game

import (
	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/genome"
)

// InitializePopulation spawns counts[i] organisms of each species (A then B)
// at uniformly random cells, with traits drawn from the species ranges.
func InitializePopulation(sim *Sim, counts [components.NumSpecies]int, state *State) components.Population {
	total := 0
	for _, n := range counts {
		total += max(0, n)
	}
	pop := make(components.Population, 0, total)

	for _, sp := range components.AllSpecies {
		n := counts[sp.Index()]
		for i := 0; i < n; i++ {
			pop = append(pop, spawnOrganism(sim, sp, state))
		}
		if n > 0 {
			state.Lifetime.RecordSpawn(sp, n)
		}
	}

	state.Lifetime.ObservePopulation(pop.CountBySpecies())
	return pop
}

// spawnOrganism creates one generation-0 organism.
func spawnOrganism(sim *Sim, sp components.Species, state *State) *components.Organism {
	cfg := sim.Cfg
	rng := sim.Rng
	params := sp.Params(cfg)

	pos := components.Position{
		X: rng.Intn(cfg.World.Width),
		Y: rng.Intn(cfg.World.Height),
	}
	traits := components.Traits{
		Energy:     float64(randInt(sim, params.EnergyMin, params.EnergyMax)),
		Lifespan:   randInt(sim, params.LifespanMin, params.LifespanMax),
		Metabolism: randUniform(sim, params.MetabolismMin, params.MetabolismMax),
		Mobility:   randUniform(sim, params.MobilityMin, params.MobilityMax),
	}

	return components.NewOrganism(state.NextID(), sp, pos, traits, initialGenome(sim, sp), 0, cfg.Population.MemorySize)
}

// initialGenome returns the species founder program, or a random genome when
// population.random_genomes is set.
func initialGenome(sim *Sim, sp components.Species) genome.Genome {
	length := sim.Cfg.Population.GenomeLength
	if sim.Cfg.Population.RandomGenomes {
		return genome.CreateRandom(sim.Rng, length)
	}
	if sp == components.SpeciesB {
		return genome.FounderB(length)
	}
	return genome.FounderA(length)
}

// randInt returns a uniform integer in [lo, hi].
func randInt(sim *Sim, lo, hi int) int {
	return lo + sim.Rng.Intn(hi-lo+1)
}

// randUniform returns a uniform float in [lo, hi).
func randUniform(sim *Sim, lo, hi float64) float64 {
	return lo + sim.Rng.Float64()*(hi-lo)
}
