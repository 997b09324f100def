package components

import "github.com/pthm-cable/genesis/genome"

// NumRegisters is the size of the VM register bank.
const NumRegisters = 4

// Traits are the heritable per-individual parameters drawn at spawn or birth.
type Traits struct {
	Energy     float64
	Lifespan   int     // ticks
	Metabolism float64 // energy lost per tick
	Mobility   float64 // chance of running the VM on a tick
}

// Organism holds one individual's full mutable state.
// The population slice owns it; the VM mutates it in place.
type Organism struct {
	ID         uint64
	Species    Species
	Pos        Position
	Energy     float64
	Age        int
	Lifespan   int
	Metabolism float64
	Mobility   float64
	Generation int

	// Program state
	Genome    genome.Genome
	IP        int
	Registers [NumRegisters]float64
	Memory    []float64

	// LineageMutated is set the first time one of this organism's births
	// mutates a trait. Never copied to children.
	LineageMutated bool

	// Death attribution flags
	DiedFromPollution bool
	DiedFromPredation bool
}

// NewOrganism builds a fresh organism with zeroed VM state.
// Panics if memSize is not positive: a VM without scratch memory cannot address LOAD/STORE.
func NewOrganism(id uint64, sp Species, pos Position, t Traits, g genome.Genome, generation, memSize int) *Organism {
	if memSize <= 0 {
		panic("components: organism scratch memory must be non-empty")
	}
	return &Organism{
		ID:         id,
		Species:    sp,
		Pos:        pos,
		Energy:     t.Energy,
		Lifespan:   t.Lifespan,
		Metabolism: t.Metabolism,
		Mobility:   t.Mobility,
		Generation: generation,
		Genome:     g,
		Memory:     make([]float64, memSize),
	}
}

// Traits returns the organism's current heritable parameters.
func (o *Organism) Traits() Traits {
	return Traits{
		Energy:     o.Energy,
		Lifespan:   o.Lifespan,
		Metabolism: o.Metabolism,
		Mobility:   o.Mobility,
	}
}

// IsDead reports whether the organism has starved or outlived its lifespan.
// Pollution and predation deaths zero the energy, so they are covered too.
func (o *Organism) IsDead() bool {
	return o.Energy <= 0 || o.Age > o.Lifespan
}

// DeathCause attributes a dead organism to exactly one cause.
// Precedence: intrinsic > pollution > predation > starvation.
// Returns CauseNone for a living organism.
func (o *Organism) DeathCause() DeathCause {
	if !o.IsDead() {
		return CauseNone
	}
	switch {
	case o.Age > o.Lifespan:
		return CauseIntrinsic
	case o.DiedFromPollution:
		return CausePollution
	case o.DiedFromPredation:
		return CausePredation
	default:
		return CauseStarvation
	}
}

// DeathCause is the single attributed reason for a death.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseIntrinsic
	CausePollution
	CausePredation
	CauseStarvation
)

// NumCauses counts the real causes (excluding CauseNone).
const NumCauses = 4

// String returns the cause label used in logs and CSV headers.
func (c DeathCause) String() string {
	switch c {
	case CauseIntrinsic:
		return "intrinsic"
	case CausePollution:
		return "pollution"
	case CausePredation:
		return "predation"
	case CauseStarvation:
		return "starvation"
	default:
		return "none"
	}
}

// Population is the ordered set of organisms. Order is iteration order for
// the VM and occupant order for predation.
type Population []*Organism

// CountBySpecies returns living organisms per species index.
func (p Population) CountBySpecies() [NumSpecies]int {
	var counts [NumSpecies]int
	for _, o := range p {
		if !o.IsDead() {
			counts[o.Species.Index()]++
		}
	}
	return counts
}

// Living returns the organisms that are not dead, preserving order.
func (p Population) Living() Population {
	out := make(Population, 0, len(p))
	for _, o := range p {
		if !o.IsDead() {
			out = append(out, o)
		}
	}
	return out
}
