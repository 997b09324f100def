package game

import (
	"math/rand"

	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/telemetry"
)

// Sim bundles the read-only configuration with the random source of one run.
type Sim struct {
	Cfg  *config.Config
	Rng  *rand.Rand
	Perf *telemetry.PerfCollector // nil = no tick timing
}

// NewSim creates a simulation context seeded with seed.
func NewSim(cfg *config.Config, seed int64) *Sim {
	return &Sim{Cfg: cfg, Rng: rand.New(rand.NewSource(seed))}
}

// State is the engine-owned state carried from tick to tick.
type State struct {
	Tick     int
	Lifetime telemetry.Lifetime

	lastID uint64
}

// NewState returns the state of a run that has not ticked yet.
func NewState() *State {
	return &State{}
}

// NextID allocates a fresh organism id. Ids start at 1 and never repeat.
func (s *State) NextID() uint64 {
	s.lastID++
	return s.lastID
}
