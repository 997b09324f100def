package systems

import "github.com/pthm-cable/genesis/components"

// MortalityReport counts the deaths removed in one partition.
type MortalityReport struct {
	Deaths [components.NumSpecies]int
	// Causes is indexed by species, then DeathCause-1.
	Causes [components.NumSpecies][components.NumCauses]int
}

// Total returns all deaths across species.
func (r MortalityReport) Total() int {
	return r.Deaths[0] + r.Deaths[1]
}

// ByCause returns the deaths of one species attributed to cause.
func (r MortalityReport) ByCause(sp components.Species, cause components.DeathCause) int {
	if cause == components.CauseNone {
		return 0
	}
	return r.Causes[sp.Index()][cause-1]
}

// PartitionDead splits the population into survivors (order preserved) and
// counts each dead organism under exactly one cause.
func PartitionDead(pop components.Population) (components.Population, MortalityReport) {
	var report MortalityReport
	survivors := make(components.Population, 0, len(pop))

	for _, o := range pop {
		cause := o.DeathCause()
		if cause == components.CauseNone {
			survivors = append(survivors, o)
			continue
		}
		idx := o.Species.Index()
		report.Deaths[idx]++
		report.Causes[idx][cause-1]++
	}

	return survivors, report
}
