package vm

import "github.com/pthm-cable/genesis/components"

// randomStep picks one of the four unit moves or staying put.
func (m *Machine) randomStep() components.Position {
	return components.UnitSteps[m.rng.Intn(len(components.UnitSteps))]
}

// moveTo sets the position, saturating at the grid edges.
func (m *Machine) moveTo(o *components.Organism, p components.Position) {
	o.Pos = p.Clamp(m.env.Width(), m.env.Height())
}

func (m *Machine) moveRandom(o *components.Organism) {
	m.moveTo(o, o.Pos.Add(m.randomStep()))
}

// moveToFood jumps to the richest cell in the vision window. Window
// coordinates are clamped first, so edge cells can appear more than once and
// weigh more in the tie-break.
func (m *Machine) moveToFood(o *components.Organism) {
	r := m.cfg.VM.FoodVision
	w, h := m.env.Width(), m.env.Height()

	bestScore := -1
	var best []components.Position
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := o.Pos.Add(components.Position{X: dx, Y: dy}).Clamp(w, h)
			score := m.env.Food.At(p.X, p.Y)
			switch {
			case score > bestScore:
				bestScore = score
				best = append(best[:0], p)
			case score == bestScore:
				best = append(best, p)
			}
		}
	}

	if len(best) > 0 {
		o.Pos = best[m.rng.Intn(len(best))]
	}
}

// eatPlant consumes from the current cell and converts it to energy.
func (m *Machine) eatPlant(o *components.Organism) {
	taken := m.env.Food.Take(o.Pos.X, o.Pos.Y, m.cfg.Food.Consumption)
	o.Energy += float64(taken) * m.cfg.Food.EnergyFactor
}

// moveTowardsPrey steps by the sign of (r0, r1), or randomly when both are zero.
func (m *Machine) moveTowardsPrey(o *components.Organism) {
	dx, dy := o.Registers[0], o.Registers[1]
	if dx == 0 && dy == 0 {
		s := m.randomStep()
		dx, dy = float64(s.X), float64(s.Y)
	}
	m.moveTo(o, o.Pos.Add(components.Position{X: sign(dx), Y: sign(dy)}))
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
