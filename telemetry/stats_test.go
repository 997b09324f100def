package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/genome"
	"github.com/pthm-cable/genesis/systems"
)

func organism(sp components.Species, energy float64, g genome.Genome) *components.Organism {
	return components.NewOrganism(1, sp, components.Position{},
		components.Traits{Energy: energy, Lifespan: 100, Metabolism: 0.1, Mobility: 1}, g, 0, 4)
}

func TestGenomeDiversity(t *testing.T) {
	g1 := genome.Genome{1, 2, 3}
	g2 := genome.Genome{3, 2, 1}
	g3 := genome.Genome{0, 0, 0}
	g4 := genome.Genome{5, 5, 5}

	tests := []struct {
		name       string
		pop        components.Population
		wantUnique int
		wantBits   float64
	}{
		{"empty", nil, 0, 0},
		{"identical", components.Population{
			organism(components.SpeciesA, 5, g1),
			organism(components.SpeciesA, 5, g1),
		}, 1, 0},
		{"two equal groups", components.Population{
			organism(components.SpeciesA, 5, g1),
			organism(components.SpeciesA, 5, g2),
		}, 2, 1},
		{"four distinct", components.Population{
			organism(components.SpeciesA, 5, g1),
			organism(components.SpeciesA, 5, g2),
			organism(components.SpeciesA, 5, g3),
			organism(components.SpeciesA, 5, g4),
		}, 4, 2},
		{"other species and dead ignored", components.Population{
			organism(components.SpeciesA, 5, g1),
			organism(components.SpeciesA, 0, g2),
			organism(components.SpeciesB, 5, g3),
		}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, bits := GenomeDiversity(tt.pop, components.SpeciesA)
			if unique != tt.wantUnique {
				t.Errorf("unique = %d, want %d", unique, tt.wantUnique)
			}
			if math.Abs(bits-tt.wantBits) > 1e-9 {
				t.Errorf("bits = %v, want %v", bits, tt.wantBits)
			}
		})
	}
}

func TestEnergyStats(t *testing.T) {
	pop := components.Population{
		organism(components.SpeciesB, 3, genome.Genome{0}),
		organism(components.SpeciesB, 1, genome.Genome{0}),
		organism(components.SpeciesB, 2, genome.Genome{0}),
		organism(components.SpeciesA, 50, genome.Genome{0}),
	}
	mean, p10, p50, p90 := EnergyStats(pop, components.SpeciesB)

	if math.Abs(mean-2) > 1e-9 {
		t.Errorf("mean = %v, want 2", mean)
	}
	if p10 != 1 || p50 != 2 || p90 != 3 {
		t.Errorf("percentiles = %v/%v/%v, want 1/2/3", p10, p50, p90)
	}
}

func TestEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := EnergyStats(nil, components.SpeciesA)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty population should return all zeros")
	}
}

func TestNewVMStats(t *testing.T) {
	opcodes := make([]int, genome.MaxOpcode+1)
	opcodes[genome.OpEatPlant] = 4
	opcodes[genome.OpSenseFood] = 4
	opcodes[genome.OpJump] = 1

	s := NewVMStats(4, 1, 9, opcodes)
	if math.Abs(s.IdleRate-0.25) > 1e-9 {
		t.Errorf("idle rate = %v, want 0.25", s.IdleRate)
	}
	if math.Abs(s.MeanExecLength-2.25) > 1e-9 {
		t.Errorf("mean exec = %v, want 2.25", s.MeanExecLength)
	}
	if s.DominantOpcode != genome.OpEatPlant {
		t.Errorf("dominant = %v, want lowest tied opcode EAT_PLANT", s.DominantOpcode)
	}

	empty := NewVMStats(0, 0, 0, make([]int, genome.MaxOpcode+1))
	if empty.IdleRate != 0 || empty.MeanExecLength != 0 || empty.DominantOpcode != genome.OpNop {
		t.Errorf("inactive stats should be zero, got %+v", empty)
	}
}

func TestLifetimeTallies(t *testing.T) {
	var lt Lifetime
	lt.RecordSpawn(components.SpeciesA, 5)
	lt.RecordSpawn(components.SpeciesB, 2)
	lt.ObserveGeneration(components.SpeciesA, 3)
	lt.ObserveGeneration(components.SpeciesA, 1)
	lt.ObservePopulation([components.NumSpecies]int{7, 2})
	lt.ObservePopulation([components.NumSpecies]int{4, 3})
	lt.RecordTraitMutation(components.SpeciesB, TraitMobility)
	lt.RecordMutatedIndividual(components.SpeciesB)

	var causes [components.NumSpecies][components.NumCauses]int
	causes[0][components.CauseStarvation-1] = 2
	causes[0][components.CausePredation-1] = 1
	lt.RecordDeaths(causes)
	lt.RecordDeaths(causes)

	if lt.Spawned != [components.NumSpecies]int{5, 2} {
		t.Errorf("spawned = %v", lt.Spawned)
	}
	if lt.MaxGeneration[0] != 3 {
		t.Errorf("max generation = %d, want 3", lt.MaxGeneration[0])
	}
	if lt.PeakPopulation != [components.NumSpecies]int{7, 3} {
		t.Errorf("peaks = %v, want [7 3]", lt.PeakPopulation)
	}
	if lt.TotalDeaths(components.SpeciesA) != 6 {
		t.Errorf("total deaths = %d, want 6", lt.TotalDeaths(components.SpeciesA))
	}
	if lt.TraitMutations[1][TraitMobility] != 1 || lt.MutatedIndividuals[1] != 1 {
		t.Error("mutation tallies not recorded")
	}
}

func TestCollectorFlush(t *testing.T) {
	var lt Lifetime
	c := NewCollector(&lt)

	c.RecordBirths(components.SpeciesA, 2)
	c.RecordKills(1)
	var report systems.MortalityReport
	report.Deaths[0] = 1
	report.Causes[0][components.CausePredation-1] = 1
	c.RecordMortality(report)

	env := systems.NewEnvironment(config.Default())
	env.Food.Set(0, 0, 4)
	env.Pollution = 0.25

	survivors := components.Population{
		organism(components.SpeciesA, 5, genome.Genome{1}),
		organism(components.SpeciesB, 5, genome.Genome{1}),
	}
	var vm [components.NumSpecies]VMStats
	vm[0] = VMStats{IdleRate: 0.5, DominantOpcode: genome.OpSenseFood}

	s := c.Flush(3, env, survivors, vm)

	if s.Tick != 3 || s.Pollution != 0.25 || s.TotalFood != 4 {
		t.Errorf("header fields wrong: %+v", s)
	}
	if s.PopA != 1 || s.PopB != 1 || s.PeakA != 1 {
		t.Errorf("population fields wrong: %+v", s)
	}
	if s.BirthsA != 2 || s.SpawnedTotalA != 2 || s.Kills != 1 {
		t.Errorf("event fields wrong: %+v", s)
	}
	if s.DeathsA != 1 || s.PredationA != 1 || s.PredationTotalA != 1 {
		t.Errorf("death fields wrong: %+v", s)
	}
	if s.DominantOpcodeA != "SENSE_FOOD" || s.IdleRateA != 0.5 {
		t.Errorf("vm fields wrong: %+v", s)
	}

	// Per-tick counters reset, cumulative ones persist
	next := c.Flush(4, env, survivors, vm)
	if next.BirthsA != 0 || next.DeathsA != 0 || next.Kills != 0 {
		t.Errorf("per-tick counters not reset: %+v", next)
	}
	if next.SpawnedTotalA != 2 || next.PredationTotalA != 1 {
		t.Errorf("cumulative counters lost: %+v", next)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for tick := 1; tick <= 3; tick++ {
		if err := om.WriteTelemetry(TickStats{Tick: tick, PopA: tick}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	for tick := 10; tick <= 20; tick += 10 {
		if err := om.WritePerf(PerfStats{AvgTickDuration: time.Millisecond}, tick); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkExtinction, Tick: 3, Species: "B", Description: "gone"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,pollution,total_food") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if strings.Count(string(data), "tick,") != 1 {
		t.Error("header written more than once")
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf csv: %v", err)
	}
	perfLines := strings.Split(strings.TrimSpace(string(perf)), "\n")
	if len(perfLines) != 3 || !strings.HasPrefix(perfLines[0], "tick,avg_tick_us") {
		t.Errorf("unexpected perf.csv:\n%s", perf)
	}

	bms, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatalf("reading bookmarks csv: %v", err)
	}
	if want := "type,tick,species,description\nextinction,3,B,gone\n"; string(bms) != want {
		t.Errorf("bookmarks.csv = %q, want %q", bms, want)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	// Nil receiver is a no-op
	if err := om.WriteTelemetry(TickStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Error(err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should report no dir and close cleanly")
	}
}
