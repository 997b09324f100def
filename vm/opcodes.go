package vm

import (
	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/genome"
)

// execFn runs one instruction at ip and returns the next ip (unwrapped).
type execFn func(m *Machine, o *components.Organism, ip int) int

// instruction is one row of the dispatch table.
// A non-zero gate restricts the opcode to that species; other species run
// denied instead (or just advance when denied is nil).
type instruction struct {
	gate   components.Species
	exec   execFn
	denied execFn
}

// action adapts a single-width effect into an execFn.
func action(fn func(m *Machine, o *components.Organism)) execFn {
	return func(m *Machine, o *components.Organism, ip int) int {
		fn(m, o)
		return ip + 1
	}
}

var table = [genome.MaxOpcode + 1]instruction{
	genome.OpNop: {exec: action(func(*Machine, *components.Organism) {})},

	// Actuation
	genome.OpMoveRandom:      {exec: action((*Machine).moveRandom)},
	genome.OpMoveToFood:      {gate: components.SpeciesA, exec: action((*Machine).moveToFood)},
	genome.OpEatPlant:        {gate: components.SpeciesA, exec: action((*Machine).eatPlant)},
	genome.OpMoveTowardsPrey: {gate: components.SpeciesB, exec: action((*Machine).moveTowardsPrey)},
	genome.OpReproduce:       {exec: action((*Machine).reproduce)},

	// Sensation
	genome.OpSenseFood: {
		gate:   components.SpeciesA,
		exec:   action(func(m *Machine, o *components.Organism) { o.Registers[0] = flag(m.senseFood(o)) }),
		denied: action(func(_ *Machine, o *components.Organism) { o.Registers[0] = 0 }),
	},
	genome.OpSenseEnergyLow: {exec: action(func(m *Machine, o *components.Organism) {
		o.Registers[1] = flag(o.Energy < m.cfg.VM.LowEnergyThreshold)
	})},
	genome.OpSenseNeighbor: {exec: action(func(m *Machine, o *components.Organism) {
		o.Registers[2] = flag(m.senseNeighbor(o))
	})},
	genome.OpSenseRandom: {exec: action(func(m *Machine, o *components.Organism) {
		o.Registers[3] = float64(m.rng.Intn(2))
	})},
	genome.OpSensePrey: {
		gate:   components.SpeciesB,
		exec:   action(func(m *Machine, o *components.Organism) { o.Registers[0] = flag(m.sensePrey(o)) }),
		denied: action(func(_ *Machine, o *components.Organism) { o.Registers[0] = 0 }),
	},
	genome.OpSensePreyDirection: {
		gate: components.SpeciesB,
		exec: action(func(m *Machine, o *components.Organism) {
			d := m.sensePreyDirection(o)
			o.Registers[0], o.Registers[1] = float64(d.X), float64(d.Y)
		}),
		denied: action(func(_ *Machine, o *components.Organism) { o.Registers[0], o.Registers[1] = 0, 0 }),
	},

	// Registers
	genome.OpIncR0:    {exec: action(func(_ *Machine, o *components.Organism) { o.Registers[0]++ })},
	genome.OpDecR0:    {exec: action(func(_ *Machine, o *components.Organism) { o.Registers[0]-- })},
	genome.OpCopyR0R1: {exec: action(func(_ *Machine, o *components.Organism) { o.Registers[1] = o.Registers[0] })},

	// Memory
	genome.OpLoadR0: {exec: func(_ *Machine, o *components.Organism, ip int) int {
		o.Registers[0] = o.Memory[address(o, ip)]
		return ip + 2
	}},
	genome.OpStoreR0: {exec: func(_ *Machine, o *components.Organism, ip int) int {
		o.Memory[address(o, ip)] = o.Registers[0]
		return ip + 2
	}},

	// Control
	genome.OpJump: {exec: func(_ *Machine, o *components.Organism, ip int) int {
		return target(o, ip)
	}},
	genome.OpJumpIfZero: {exec: func(_ *Machine, o *components.Organism, ip int) int {
		if o.Registers[0] == 0 {
			return target(o, ip)
		}
		return ip + 2
	}},
	genome.OpJumpIfNonZero: {exec: func(_ *Machine, o *components.Organism, ip int) int {
		if o.Registers[0] != 0 {
			return target(o, ip)
		}
		return ip + 2
	}},
}

// dispatch runs the instruction for op. Unassigned values advance by one.
func (m *Machine) dispatch(o *components.Organism, op genome.Opcode, ip int) int {
	if op < 0 || int(op) >= len(table) {
		return ip + 1
	}
	in := table[op]
	fn := in.exec
	if in.gate != 0 && o.Species != in.gate {
		fn = in.denied
	}
	if fn == nil {
		return ip + 1
	}
	return fn(m, o, ip)
}

// operand returns the genome value following ip.
func operand(o *components.Organism, ip int) int {
	n := len(o.Genome)
	return o.Genome[wrap(ip+1, n)]
}

// address maps the operand onto a scratch memory slot.
func address(o *components.Organism, ip int) int {
	return wrap(operand(o, ip), len(o.Memory))
}

// target maps the operand onto a genome position.
func target(o *components.Organism, ip int) int {
	return wrap(operand(o, ip), len(o.Genome))
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
