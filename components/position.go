package components

// Position is a grid cell coordinate.
type Position struct {
	X, Y int
}

// UnitSteps are the moves available to a random step: four neighbors and stay.
var UnitSteps = [5]Position{
	{1, 0}, {-1, 0},
	{0, 1}, {0, -1},
	{0, 0},
}

// Add returns p offset by d, unclamped.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Clamp saturates p to [0,w) x [0,h).
func (p Position) Clamp(w, h int) Position {
	return Position{X: clampInt(p.X, 0, w-1), Y: clampInt(p.Y, 0, h-1)}
}

// InBounds reports whether p lies within [0,w) x [0,h).
func (p Position) InBounds(w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
