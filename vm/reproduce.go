package vm

import (
	"math"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/genome"
	"github.com/pthm-cable/genesis/telemetry"
)

// mutationEpsilon is the smallest continuous trait delta counted as a mutation.
const mutationEpsilon = 1e-6

// reproduce spends energy on one child placed next to the parent.
// The child goes to the offspring buffer, never straight into the population.
func (m *Machine) reproduce(o *components.Organism) {
	sp := o.Species
	params := sp.Params(m.cfg)

	if o.Energy < params.ReproductionThreshold {
		return
	}
	if m.rng.Float64() > params.ReproductionProbability {
		return
	}
	o.Energy -= params.ReproductionCost
	if o.Energy <= 0 {
		return
	}

	pos := o.Pos.Add(m.randomStep()).Clamp(m.env.Width(), m.env.Height())
	traits, mutated := m.inheritTraits(o)
	if mutated && !o.LineageMutated {
		m.lifetime.RecordMutatedIndividual(sp)
		o.LineageMutated = true
	}

	traits.Energy = float64(params.EnergyMin + m.rng.Intn(params.EnergyMax-params.EnergyMin+1))
	generation := o.Generation + 1
	m.lifetime.ObserveGeneration(sp, generation)

	child := components.NewOrganism(
		m.ids.NextID(),
		sp,
		pos,
		traits,
		genome.Mutate(m.rng, o.Genome, m.cfg.Mutation.GenomeRate),
		generation,
		len(o.Memory),
	)
	m.offspring = append(m.offspring, child)
}

// inheritTraits copies the parent's lifespan, metabolism and mobility through
// three independently gated mutation channels, clamped to the species range.
// Each channel that moved is tallied; mutated reports whether any did.
func (m *Machine) inheritTraits(o *components.Organism) (t components.Traits, mutated bool) {
	sp := o.Species
	params := sp.Params(m.cfg)
	mc := &m.cfg.Mutation

	lifespanDelta := 0
	if m.rng.Float64() < mc.TraitProbability {
		lifespanDelta = m.rng.Intn(2*mc.LifespanDelta+1) - mc.LifespanDelta
	}
	t.Lifespan = max(params.LifespanMin, min(params.LifespanMax, o.Lifespan+lifespanDelta))
	if lifespanDelta != 0 {
		mutated = true
		m.lifetime.RecordTraitMutation(sp, telemetry.TraitLifespan)
	}

	metabolismDelta := 0.0
	if m.rng.Float64() < mc.TraitProbability {
		metabolismDelta = m.uniform(-mc.MetabolismDelta, mc.MetabolismDelta)
	}
	t.Metabolism = clampFloat(o.Metabolism+metabolismDelta, params.MetabolismMin, params.MetabolismMax)
	if math.Abs(metabolismDelta) > mutationEpsilon {
		mutated = true
		m.lifetime.RecordTraitMutation(sp, telemetry.TraitMetabolism)
	}

	mobilityDelta := 0.0
	if m.rng.Float64() < mc.TraitProbability {
		mobilityDelta = m.uniform(-mc.MobilityDelta, mc.MobilityDelta)
	}
	t.Mobility = clampFloat(o.Mobility+mobilityDelta, params.MobilityMin, params.MobilityMax)
	if math.Abs(mobilityDelta) > mutationEpsilon {
		mutated = true
		m.lifetime.RecordTraitMutation(sp, telemetry.TraitMobility)
	}

	return t, mutated
}

func (m *Machine) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
