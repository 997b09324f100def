// Package vm runs organism genomes as bytecode programs.
package vm

import (
	"math/rand"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/genome"
	"github.com/pthm-cable/genesis/systems"
	"github.com/pthm-cable/genesis/telemetry"
)

// IDSource hands out fresh organism ids.
type IDSource interface {
	NextID() uint64
}

// Machine executes organisms for one tick. It holds the shared world the
// programs act on, the per-species counters, and the offspring born so far.
type Machine struct {
	cfg      *config.Config
	env      *systems.Environment
	pop      components.Population
	lifetime *telemetry.Lifetime
	ids      IDSource
	rng      *rand.Rand

	counters  [components.NumSpecies]Counters
	offspring components.Population
}

// New creates a machine with zeroed counters and an empty offspring buffer.
// pop is the population visible to sensing; births go to the buffer only.
func New(cfg *config.Config, env *systems.Environment, pop components.Population, lifetime *telemetry.Lifetime, ids IDSource, rng *rand.Rand) *Machine {
	return &Machine{
		cfg:      cfg,
		env:      env,
		pop:      pop,
		lifetime: lifetime,
		ids:      ids,
		rng:      rng,
	}
}

// Counters returns the counters for a species.
func (m *Machine) Counters(sp components.Species) *Counters {
	return &m.counters[sp.Index()]
}

// Stats returns the derived interpreter stats indexed by species index.
func (m *Machine) Stats() [components.NumSpecies]telemetry.VMStats {
	var out [components.NumSpecies]telemetry.VMStats
	for i := range m.counters {
		out[i] = m.counters[i].Stats()
	}
	return out
}

// Offspring returns the children born since the machine was created.
func (m *Machine) Offspring() components.Population {
	return m.offspring
}

// Execute runs one organism for one tick: aging and metabolism, the
// pollution and mobility rolls, then up to vm.max_steps instructions.
func (m *Machine) Execute(o *components.Organism) {
	if o.IsDead() {
		return
	}

	c := m.Counters(o.Species)
	c.Active++

	o.Age++
	o.Energy -= o.Metabolism
	if o.IsDead() {
		return
	}

	if m.rng.Float64() < m.cfg.Pollution.DeathFactor*m.env.Pollution {
		o.Energy = 0
		o.DiedFromPollution = true
		return
	}

	if m.rng.Float64() >= o.Mobility {
		c.Idle++
		return
	}

	n := len(o.Genome)
	if n == 0 {
		c.Idle++
		return
	}

	steps := 0
	for steps < m.cfg.VM.MaxSteps && !o.IsDead() {
		ip := wrap(o.IP, n)
		op := o.Genome[ip]
		if op >= 0 && op <= genome.MaxOpcode {
			c.Opcodes[op]++
		}
		o.IP = wrap(m.dispatch(o, genome.Opcode(op), ip), n)
		steps++
	}

	c.Steps += steps
	if steps == 0 {
		c.Idle++
	}
}

// wrap maps v into [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
