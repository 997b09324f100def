package game

import (
	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/systems"
	"github.com/pthm-cable/genesis/telemetry"
	"github.com/pthm-cable/genesis/vm"
)

// Tick advances the ecosystem by one step and returns the survivors with the
// tick's stats. pop and env are mutated in place; the returned population
// replaces pop for the next call.
func Tick(sim *Sim, pop components.Population, env *systems.Environment, state *State) (components.Population, telemetry.TickStats) {
	cfg := sim.Cfg
	perf := sim.Perf
	perf.StartTick()
	defer perf.EndTick()

	state.Tick++
	collector := telemetry.NewCollector(&state.Lifetime)

	// 1. Fresh interpreter counters for this tick
	machine := vm.New(cfg, env, pop, &state.Lifetime, state, sim.Rng)

	// 2. Pollution from everything alive at tick start
	perf.StartPhase(telemetry.PhasePollution)
	env.AddPollution(len(pop), cfg.Pollution.IncrementPerLife, cfg.Pollution.Cap)

	// 3. Run every program in population order; births are buffered
	perf.StartPhase(telemetry.PhaseVM)
	for _, o := range pop {
		machine.Execute(o)
	}

	// 4. Merge offspring
	perf.StartPhase(telemetry.PhaseMerge)
	offspring := machine.Offspring()
	var births [components.NumSpecies]int
	for _, o := range offspring {
		births[o.Species.Index()]++
	}
	for _, sp := range components.AllSpecies {
		collector.RecordBirths(sp, births[sp.Index()])
	}
	all := append(pop[:len(pop):len(pop)], offspring...)

	// 5. Predation
	perf.StartPhase(telemetry.PhasePredation)
	collector.RecordKills(systems.ResolvePredation(all, cfg.Predation.EnergyGain))

	// 6. Mortality
	perf.StartPhase(telemetry.PhaseMortality)
	survivors, report := systems.PartitionDead(all)
	collector.RecordMortality(report)

	// 7. Food dynamics
	perf.StartPhase(telemetry.PhaseFood)
	env.Regenerate(sim.Rng, cfg)

	// 8. Telemetry from survivors
	perf.StartPhase(telemetry.PhaseTelemetry)
	return survivors, collector.Flush(state.Tick, env, survivors, machine.Stats())
}
