package vm

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/genome"
	"github.com/pthm-cable/genesis/systems"
	"github.com/pthm-cable/genesis/telemetry"
)

type seqIDs struct{ next uint64 }

func (s *seqIDs) NextID() uint64 {
	s.next++
	return s.next
}

type harness struct {
	cfg      *config.Config
	env      *systems.Environment
	lifetime *telemetry.Lifetime
	ids      *seqIDs
	m        *Machine
}

// newHarness builds a machine over pop. adjust runs on a fresh default config.
func newHarness(pop components.Population, adjust func(*config.Config)) *harness {
	cfg := config.Default()
	if adjust != nil {
		adjust(cfg)
	}
	h := &harness{
		cfg:      cfg,
		env:      systems.NewEnvironment(cfg),
		lifetime: &telemetry.Lifetime{},
		ids:      &seqIDs{next: 100},
	}
	h.m = New(cfg, h.env, pop, h.lifetime, h.ids, rand.New(rand.NewSource(1)))
	return h
}

func program(ops ...genome.Opcode) genome.Genome {
	g := make(genome.Genome, len(ops))
	for i, op := range ops {
		g[i] = int(op)
	}
	return g
}

func newOrganism(sp components.Species, x, y int, g genome.Genome) *components.Organism {
	return components.NewOrganism(1, sp, components.Position{X: x, Y: y},
		components.Traits{Energy: 50, Lifespan: 100, Metabolism: 0, Mobility: 1}, g, 0, 4)
}

func singleStep(c *config.Config) { c.VM.MaxSteps = 1 }

func TestExecuteSkipsDead(t *testing.T) {
	o := newOrganism(components.SpeciesA, 0, 0, program(genome.OpNop))
	o.Energy = 0
	h := newHarness(components.Population{o}, nil)

	h.m.Execute(o)

	if c := h.m.Counters(components.SpeciesA); c.Active != 0 || o.Age != 0 {
		t.Errorf("dead organism was processed: active=%d age=%d", c.Active, o.Age)
	}
}

func TestExecuteStarvation(t *testing.T) {
	o := newOrganism(components.SpeciesA, 0, 0, program(genome.OpNop))
	o.Energy = 1
	o.Metabolism = 0.5
	h := newHarness(components.Population{o}, nil)

	h.m.Execute(o)
	if o.IsDead() {
		t.Fatal("organism died after one tick")
	}
	h.m.Execute(o)
	if !o.IsDead() {
		t.Fatal("organism should starve on the second tick")
	}
	if o.DeathCause() != components.CauseStarvation {
		t.Errorf("cause = %v, want starvation", o.DeathCause())
	}

	c := h.m.Counters(components.SpeciesA)
	if c.Active != 2 {
		t.Errorf("active = %d, want 2", c.Active)
	}
	if c.Idle != 0 {
		t.Errorf("death during metabolism should not count as idle, idle=%d", c.Idle)
	}
	if c.Steps != 5 {
		t.Errorf("steps = %d, want 5 from the first tick only", c.Steps)
	}
}

func TestExecuteIdle(t *testing.T) {
	tests := []struct {
		name     string
		mobility float64
		genome   genome.Genome
	}{
		{"failed mobility roll", 0, program(genome.OpNop)},
		{"empty genome", 1, genome.Genome{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrganism(components.SpeciesB, 0, 0, tt.genome)
			o.Mobility = tt.mobility
			o.Metabolism = 0.25
			h := newHarness(components.Population{o}, nil)

			h.m.Execute(o)

			c := h.m.Counters(components.SpeciesB)
			if c.Active != 1 || c.Idle != 1 || c.Steps != 0 {
				t.Errorf("counters = %+v, want active 1 idle 1 steps 0", *c)
			}
			if o.Age != 1 || o.Energy != 49.75 {
				t.Errorf("aging/metabolism not applied: age=%d energy=%v", o.Age, o.Energy)
			}
		})
	}
}

func TestExecuteRunsMaxSteps(t *testing.T) {
	o := newOrganism(components.SpeciesA, 0, 0, program(genome.OpNop, genome.OpNop))
	h := newHarness(components.Population{o}, nil)

	h.m.Execute(o)

	c := h.m.Counters(components.SpeciesA)
	if c.Steps != 5 || c.Opcodes[genome.OpNop] != 5 {
		t.Errorf("steps=%d nop=%d, want 5 each", c.Steps, c.Opcodes[genome.OpNop])
	}
	if o.IP != 1 {
		t.Errorf("IP = %d, want 5 mod 2 = 1", o.IP)
	}

	stats := c.Stats()
	if stats.MeanExecLength != 5 || stats.IdleRate != 0 || stats.DominantOpcode != genome.OpNop {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExecutePollutionDeath(t *testing.T) {
	o := newOrganism(components.SpeciesA, 0, 0, program(genome.OpNop))
	h := newHarness(components.Population{o}, func(c *config.Config) {
		c.Pollution.DeathFactor = 1
	})
	h.env.Pollution = 1

	h.m.Execute(o)

	if !o.DiedFromPollution || o.Energy != 0 {
		t.Fatalf("expected pollution death, energy=%v flag=%v", o.Energy, o.DiedFromPollution)
	}
	if o.DeathCause() != components.CausePollution {
		t.Errorf("cause = %v, want pollution", o.DeathCause())
	}
	if c := h.m.Counters(components.SpeciesA); c.Steps != 0 || c.Idle != 0 {
		t.Errorf("pollution death should execute nothing: %+v", *c)
	}
}

func TestRegisterAndMemoryOps(t *testing.T) {
	tests := []struct {
		name    string
		genome  genome.Genome
		r0      float64
		wantR0  float64
		wantR1  float64
		wantIP  int
		wantMem [4]float64
	}{
		{"inc", program(genome.OpIncR0, genome.OpNop), 1, 2, 0, 1, [4]float64{}},
		{"dec", program(genome.OpDecR0, genome.OpNop), 1, 0, 0, 1, [4]float64{}},
		{"copy", program(genome.OpCopyR0R1, genome.OpNop), 3, 3, 3, 1, [4]float64{}},
		{"store", genome.Genome{int(genome.OpStoreR0), 3, 0, 0}, 7, 7, 0, 2, [4]float64{0, 0, 0, 7}},
		{"store wraps address", genome.Genome{int(genome.OpStoreR0), 6, 0, 0}, 7, 7, 0, 2, [4]float64{0, 0, 7, 0}},
		{"load", genome.Genome{int(genome.OpLoadR0), 1, 0, 0}, 7, 0, 0, 2, [4]float64{}},
		{"undefined opcode advances", genome.Genome{7, 0}, 1, 1, 0, 1, [4]float64{}},
		{"out of range opcode advances", genome.Genome{99, 0}, 1, 1, 0, 1, [4]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrganism(components.SpeciesA, 0, 0, tt.genome)
			o.Registers[0] = tt.r0
			h := newHarness(components.Population{o}, singleStep)

			h.m.Execute(o)

			if o.Registers[0] != tt.wantR0 || o.Registers[1] != tt.wantR1 {
				t.Errorf("r0=%v r1=%v, want %v %v", o.Registers[0], o.Registers[1], tt.wantR0, tt.wantR1)
			}
			if o.IP != tt.wantIP {
				t.Errorf("IP = %d, want %d", o.IP, tt.wantIP)
			}
			var mem [4]float64
			copy(mem[:], o.Memory)
			if mem != tt.wantMem {
				t.Errorf("memory = %v, want %v", mem, tt.wantMem)
			}
		})
	}
}

func TestUndefinedOpcodeCounting(t *testing.T) {
	o := newOrganism(components.SpeciesA, 0, 0, genome.Genome{7, 99})
	h := newHarness(components.Population{o}, func(c *config.Config) { c.VM.MaxSteps = 2 })

	h.m.Execute(o)

	c := h.m.Counters(components.SpeciesA)
	if c.Opcodes[7] != 1 {
		t.Errorf("in-range undefined opcode should be counted, got %d", c.Opcodes[7])
	}
	if c.Steps != 2 {
		t.Errorf("steps = %d, want 2", c.Steps)
	}
}

func TestJumps(t *testing.T) {
	tests := []struct {
		name   string
		op     genome.Opcode
		r0     float64
		wantIP int
	}{
		{"jump", genome.OpJump, 0, 3},
		{"jump if zero taken", genome.OpJumpIfZero, 0, 3},
		{"jump if zero not taken", genome.OpJumpIfZero, 1, 2},
		{"jump if nonzero taken", genome.OpJumpIfNonZero, -1, 3},
		{"jump if nonzero not taken", genome.OpJumpIfNonZero, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Target operand 8 wraps to 8 mod 5 = 3
			o := newOrganism(components.SpeciesA, 0, 0, genome.Genome{int(tt.op), 8, 0, 0, 0})
			o.Registers[0] = tt.r0
			h := newHarness(components.Population{o}, singleStep)

			h.m.Execute(o)

			if o.IP != tt.wantIP {
				t.Errorf("IP = %d, want %d", o.IP, tt.wantIP)
			}
		})
	}
}

func TestSpeciesGating(t *testing.T) {
	tests := []struct {
		name string
		sp   components.Species
		op   genome.Opcode
	}{
		{"B cannot sense food", components.SpeciesB, genome.OpSenseFood},
		{"A cannot sense prey", components.SpeciesA, genome.OpSensePrey},
		{"A cannot sense prey direction", components.SpeciesA, genome.OpSensePreyDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := newOrganism(tt.sp, 5, 5, program(tt.op, genome.OpNop))
			self.Registers[0], self.Registers[1] = 4, 4
			prey := newOrganism(components.SpeciesA, 6, 5, program(genome.OpNop))
			h := newHarness(components.Population{self, prey}, singleStep)
			h.env.Food.Set(5, 5, 3)

			h.m.Execute(self)

			if self.Registers[0] != 0 {
				t.Errorf("r0 = %v, want 0 for gated opcode", self.Registers[0])
			}
			if tt.op == genome.OpSensePreyDirection && self.Registers[1] != 0 {
				t.Errorf("r1 = %v, want 0", self.Registers[1])
			}
			if c := h.m.Counters(tt.sp); c.Opcodes[tt.op] != 1 || c.Steps != 1 {
				t.Errorf("gated opcode should still count: %+v", *c)
			}
		})
	}
}

func TestGatedActuationIsNoop(t *testing.T) {
	b := newOrganism(components.SpeciesB, 5, 5, program(genome.OpEatPlant, genome.OpMoveToFood))
	a := newOrganism(components.SpeciesA, 5, 5, program(genome.OpMoveTowardsPrey))
	a.Registers[0] = 1
	h := newHarness(components.Population{a, b}, func(c *config.Config) { c.VM.MaxSteps = 2 })
	h.env.Food.Set(5, 5, 3)
	h.env.Food.Set(6, 6, 9)

	h.m.Execute(b)
	h.m.Execute(a)

	if b.Energy != 50 || b.Pos != (components.Position{X: 5, Y: 5}) {
		t.Errorf("B ate or moved: energy=%v pos=%v", b.Energy, b.Pos)
	}
	if h.env.Food.At(5, 5) != 3 {
		t.Error("food consumed by species B")
	}
	if a.Pos != (components.Position{X: 5, Y: 5}) {
		t.Errorf("A moved towards prey: %v", a.Pos)
	}
}

func TestEatPlant(t *testing.T) {
	o := newOrganism(components.SpeciesA, 2, 2, program(genome.OpEatPlant))
	h := newHarness(components.Population{o}, func(c *config.Config) { c.VM.MaxSteps = 3 })
	h.env.Food.Set(2, 2, 2)

	h.m.Execute(o)

	if h.env.Food.At(2, 2) != 0 {
		t.Errorf("food left = %d, want 0", h.env.Food.At(2, 2))
	}
	if o.Energy != 54 {
		t.Errorf("energy = %v, want 50 + 2 units x 2", o.Energy)
	}
}

func TestMoveToFood(t *testing.T) {
	o := newOrganism(components.SpeciesA, 10, 10, program(genome.OpMoveToFood))
	h := newHarness(components.Population{o}, singleStep)
	h.env.Food.Set(12, 9, 8)
	h.env.Food.Set(9, 9, 3)
	h.env.Food.Set(13, 10, 10) // outside the window

	h.m.Execute(o)

	if o.Pos != (components.Position{X: 12, Y: 9}) {
		t.Errorf("pos = %v, want richest visible cell (12,9)", o.Pos)
	}
}

func TestMoveToFoodAtEdgeStaysInBounds(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		o := newOrganism(components.SpeciesA, 0, 0, program(genome.OpMoveToFood))
		h := newHarness(components.Population{o}, singleStep)
		h.m.rng = rand.New(rand.NewSource(seed))

		h.m.Execute(o)

		if !o.Pos.InBounds(h.env.Width(), h.env.Height()) {
			t.Fatalf("seed %d: moved out of bounds to %v", seed, o.Pos)
		}
		if abs(o.Pos.X) > 2 || abs(o.Pos.Y) > 2 {
			t.Fatalf("seed %d: moved beyond vision to %v", seed, o.Pos)
		}
	}
}

func TestMoveRandomStaysInBounds(t *testing.T) {
	o := newOrganism(components.SpeciesB, 0, 0, program(genome.OpMoveRandom))
	h := newHarness(components.Population{o}, nil)

	for i := 0; i < 200; i++ {
		h.m.Execute(o)
		if !o.Pos.InBounds(h.env.Width(), h.env.Height()) {
			t.Fatalf("out of bounds: %v", o.Pos)
		}
	}
}

func TestSensing(t *testing.T) {
	pred := newOrganism(components.SpeciesB, 10, 10, nil)
	near := newOrganism(components.SpeciesA, 12, 11, nil)
	far := newOrganism(components.SpeciesA, 7, 10, nil)
	tied := newOrganism(components.SpeciesA, 11, 12, nil)
	outside := newOrganism(components.SpeciesA, 16, 10, nil)
	dead := newOrganism(components.SpeciesA, 10, 11, nil)
	dead.Energy = 0

	h := newHarness(components.Population{pred, near, far, tied, outside, dead}, nil)

	if !h.m.sensePrey(pred) {
		t.Error("prey within radius 5 not sensed")
	}
	if d := h.m.sensePreyDirection(pred); d != (components.Position{X: 2, Y: 1}) {
		t.Errorf("direction = %v, want first nearest (2,1)", d)
	}
	if h.m.senseNeighbor(pred) {
		t.Error("dead organism on an adjacent cell counted as neighbor")
	}

	lonely := newOrganism(components.SpeciesB, 40, 30, nil)
	h2 := newHarness(components.Population{lonely, outside}, nil)
	if h2.m.sensePrey(lonely) {
		t.Error("prey outside radius sensed")
	}
	if d := h2.m.sensePreyDirection(lonely); d != (components.Position{}) {
		t.Errorf("direction = %v, want zero", d)
	}
}

func TestSenseNeighbor(t *testing.T) {
	self := newOrganism(components.SpeciesA, 3, 3, nil)
	other := newOrganism(components.SpeciesB, 3, 3, nil)

	alone := newHarness(components.Population{self}, nil)
	if alone.m.senseNeighbor(self) {
		t.Error("self counted as neighbor")
	}

	shared := newHarness(components.Population{self, other}, nil)
	if !shared.m.senseNeighbor(self) {
		t.Error("same-cell organism not sensed")
	}
}

func TestMoveTowardsPrey(t *testing.T) {
	o := newOrganism(components.SpeciesB, 5, 5, program(genome.OpSensePreyDirection, genome.OpMoveTowardsPrey))
	prey := newOrganism(components.SpeciesA, 8, 3, nil)
	h := newHarness(components.Population{o, prey}, func(c *config.Config) { c.VM.MaxSteps = 2 })

	h.m.Execute(o)

	if o.Pos != (components.Position{X: 6, Y: 4}) {
		t.Errorf("pos = %v, want one diagonal step to (6,4)", o.Pos)
	}
}
