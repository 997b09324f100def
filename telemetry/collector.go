package telemetry

import (
	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/systems"
)

// Collector accumulates the events of one tick and produces TickStats.
// Events are mirrored into the cumulative Lifetime as they are recorded.
type Collector struct {
	lifetime *Lifetime

	// Event counters for current tick
	births [components.NumSpecies]int
	deaths [components.NumSpecies][components.NumCauses]int
	kills  int
}

// NewCollector creates a collector that feeds the given cumulative tallies.
func NewCollector(lifetime *Lifetime) *Collector {
	return &Collector{lifetime: lifetime}
}

// RecordBirths records n organisms of a species merged into the population.
func (c *Collector) RecordBirths(sp components.Species, n int) {
	c.births[sp.Index()] += n
	c.lifetime.RecordSpawn(sp, n)
}

// RecordKills records predation interactions.
func (c *Collector) RecordKills(n int) {
	c.kills += n
}

// RecordMortality records the deaths removed at the end of the tick.
func (c *Collector) RecordMortality(r systems.MortalityReport) {
	for s := range r.Causes {
		for k := range r.Causes[s] {
			c.deaths[s][k] += r.Causes[s][k]
		}
	}
	c.lifetime.RecordDeaths(r.Causes)
}

// Flush produces the TickStats for a tick and resets per-tick counters.
// survivors must already exclude the dead; vm is indexed by species index.
func (c *Collector) Flush(tick int, env *systems.Environment, survivors components.Population, vm [components.NumSpecies]VMStats) TickStats {
	counts := survivors.CountBySpecies()
	c.lifetime.ObservePopulation(counts)
	lt := c.lifetime

	a, b := components.SpeciesA.Index(), components.SpeciesB.Index()
	intrinsic := int(components.CauseIntrinsic - 1)
	pollution := int(components.CausePollution - 1)
	predation := int(components.CausePredation - 1)
	starvation := int(components.CauseStarvation - 1)

	s := TickStats{
		Tick:      tick,
		Pollution: env.Pollution,
		TotalFood: env.Food.Total(),

		PopA:           counts[a],
		PopB:           counts[b],
		PeakA:          lt.PeakPopulation[a],
		PeakB:          lt.PeakPopulation[b],
		MaxGenerationA: lt.MaxGeneration[a],
		MaxGenerationB: lt.MaxGeneration[b],

		BirthsA: c.births[a],
		BirthsB: c.births[b],
		Kills:   c.kills,

		IntrinsicA:  c.deaths[a][intrinsic],
		IntrinsicB:  c.deaths[b][intrinsic],
		PollutionA:  c.deaths[a][pollution],
		PollutionB:  c.deaths[b][pollution],
		PredationA:  c.deaths[a][predation],
		PredationB:  c.deaths[b][predation],
		StarvationA: c.deaths[a][starvation],
		StarvationB: c.deaths[b][starvation],

		SpawnedTotalA:    lt.Spawned[a],
		SpawnedTotalB:    lt.Spawned[b],
		IntrinsicTotalA:  lt.Deaths[a][intrinsic],
		IntrinsicTotalB:  lt.Deaths[b][intrinsic],
		PollutionTotalA:  lt.Deaths[a][pollution],
		PollutionTotalB:  lt.Deaths[b][pollution],
		PredationTotalA:  lt.Deaths[a][predation],
		PredationTotalB:  lt.Deaths[b][predation],
		StarvationTotalA: lt.Deaths[a][starvation],
		StarvationTotalB: lt.Deaths[b][starvation],

		LifespanMutationsA:   lt.TraitMutations[a][TraitLifespan],
		LifespanMutationsB:   lt.TraitMutations[b][TraitLifespan],
		MetabolismMutationsA: lt.TraitMutations[a][TraitMetabolism],
		MetabolismMutationsB: lt.TraitMutations[b][TraitMetabolism],
		MobilityMutationsA:   lt.TraitMutations[a][TraitMobility],
		MobilityMutationsB:   lt.TraitMutations[b][TraitMobility],
		MutatedIndividualsA:  lt.MutatedIndividuals[a],
		MutatedIndividualsB:  lt.MutatedIndividuals[b],

		IdleRateA:       vm[a].IdleRate,
		IdleRateB:       vm[b].IdleRate,
		MeanExecLengthA: vm[a].MeanExecLength,
		MeanExecLengthB: vm[b].MeanExecLength,
		DominantOpcodeA: vm[a].DominantOpcode.String(),
		DominantOpcodeB: vm[b].DominantOpcode.String(),
	}
	for _, n := range c.deaths[a] {
		s.DeathsA += n
	}
	for _, n := range c.deaths[b] {
		s.DeathsB += n
	}

	s.UniqueGenomesA, s.DiversityA = GenomeDiversity(survivors, components.SpeciesA)
	s.UniqueGenomesB, s.DiversityB = GenomeDiversity(survivors, components.SpeciesB)
	s.EnergyMeanA, s.EnergyP10A, s.EnergyP50A, s.EnergyP90A = EnergyStats(survivors, components.SpeciesA)
	s.EnergyMeanB, s.EnergyP10B, s.EnergyP50B, s.EnergyP90B = EnergyStats(survivors, components.SpeciesB)

	c.births = [components.NumSpecies]int{}
	c.deaths = [components.NumSpecies][components.NumCauses]int{}
	c.kills = 0

	return s
}
