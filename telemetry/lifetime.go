package telemetry

import "github.com/pthm-cable/genesis/components"

// TraitChannel identifies one of the heritable trait mutation channels.
type TraitChannel uint8

const (
	TraitLifespan TraitChannel = iota
	TraitMetabolism
	TraitMobility
	NumTraitChannels
)

// String returns the channel label used in logs.
func (c TraitChannel) String() string {
	switch c {
	case TraitLifespan:
		return "lifespan"
	case TraitMetabolism:
		return "metabolism"
	case TraitMobility:
		return "mobility"
	default:
		return "unknown"
	}
}

// Lifetime holds the run-long tallies, indexed by species index.
// It lives in the engine state and is threaded through every tick.
type Lifetime struct {
	Spawned [components.NumSpecies]int

	// Deaths is indexed by species, then DeathCause-1.
	Deaths [components.NumSpecies][components.NumCauses]int

	TraitMutations     [components.NumSpecies][NumTraitChannels]int
	MutatedIndividuals [components.NumSpecies]int

	PeakPopulation [components.NumSpecies]int
	MaxGeneration  [components.NumSpecies]int
}

// RecordSpawn counts n organisms of a species entering the world.
func (l *Lifetime) RecordSpawn(sp components.Species, n int) {
	l.Spawned[sp.Index()] += n
}

// RecordDeaths adds a per-species cause breakdown to the cumulative totals.
func (l *Lifetime) RecordDeaths(causes [components.NumSpecies][components.NumCauses]int) {
	for s := range causes {
		for c := range causes[s] {
			l.Deaths[s][c] += causes[s][c]
		}
	}
}

// RecordTraitMutation counts one mutated channel in one birth.
func (l *Lifetime) RecordTraitMutation(sp components.Species, ch TraitChannel) {
	l.TraitMutations[sp.Index()][ch]++
}

// RecordMutatedIndividual counts a parent whose births mutated for the first time.
func (l *Lifetime) RecordMutatedIndividual(sp components.Species) {
	l.MutatedIndividuals[sp.Index()]++
}

// ObserveGeneration raises the species maximum generation if gen exceeds it.
func (l *Lifetime) ObserveGeneration(sp components.Species, gen int) {
	i := sp.Index()
	l.MaxGeneration[i] = max(l.MaxGeneration[i], gen)
}

// ObservePopulation raises the per-species peaks to the given counts.
func (l *Lifetime) ObservePopulation(counts [components.NumSpecies]int) {
	for i, n := range counts {
		l.PeakPopulation[i] = max(l.PeakPopulation[i], n)
	}
}

// TotalDeaths returns the cumulative deaths for one species.
func (l *Lifetime) TotalDeaths(sp components.Species) int {
	total := 0
	for _, n := range l.Deaths[sp.Index()] {
		total += n
	}
	return total
}
