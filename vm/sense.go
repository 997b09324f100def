package vm

import "github.com/pthm-cable/genesis/components"

// senseFood reports whether the organism's own cell holds food.
func (m *Machine) senseFood(o *components.Organism) bool {
	return m.env.Food.At(o.Pos.X, o.Pos.Y) > 0
}

// senseNeighbor reports whether another living organism shares the cell.
func (m *Machine) senseNeighbor(o *components.Organism) bool {
	for _, other := range m.pop {
		if other == o || other.IsDead() {
			continue
		}
		if other.Pos == o.Pos {
			return true
		}
	}
	return false
}

// sensePrey reports whether any living prey lies within the Chebyshev
// window of radius vm.prey_vision.
func (m *Machine) sensePrey(o *components.Organism) bool {
	r := m.cfg.VM.PreyVision
	for _, other := range m.pop {
		if other.Species != components.SpeciesA || other.IsDead() {
			continue
		}
		if abs(other.Pos.X-o.Pos.X) <= r && abs(other.Pos.Y-o.Pos.Y) <= r {
			return true
		}
	}
	return false
}

// sensePreyDirection returns the offset to the nearest visible prey by
// Manhattan distance, or the zero offset if none is in the window.
// Ties keep the first prey in population order.
func (m *Machine) sensePreyDirection(o *components.Organism) components.Position {
	r := m.cfg.VM.PreyVision
	best := -1
	var offset components.Position

	for _, other := range m.pop {
		if other.Species != components.SpeciesA || other.IsDead() {
			continue
		}
		dx, dy := other.Pos.X-o.Pos.X, other.Pos.Y-o.Pos.Y
		if abs(dx) > r || abs(dy) > r {
			continue
		}
		if d := abs(dx) + abs(dy); best < 0 || d < best {
			best = d
			offset = components.Position{X: dx, Y: dy}
		}
	}
	return offset
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
