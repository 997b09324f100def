package systems

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/stat"
)

// FoodGrid is a flat W×H grid of integer food units in [0, MaxUnits].
// Coordinates outside the grid saturate to the nearest edge cell.
type FoodGrid struct {
	W, H     int
	MaxUnits int
	Cells    []int
}

// RegenParams holds the per-tick food dynamics probabilities.
type RegenParams struct {
	RegenProbability       float64 // +1 on partially filled cells, scaled by pollution factor
	DecayProbability       float64 // -1 on non-empty cells
	SpontaneousProbability float64 // seed 1 unit on empty cells, scaled by pollution factor
}

// NewFoodGrid creates an empty grid.
func NewFoodGrid(w, h, maxUnits int) *FoodGrid {
	return &FoodGrid{
		W:        w,
		H:        h,
		MaxUnits: maxUnits,
		Cells:    make([]int, w*h),
	}
}

// index returns the flat index of (x,y) after clamping to bounds.
func (fg *FoodGrid) index(x, y int) int {
	if x < 0 {
		x = 0
	} else if x >= fg.W {
		x = fg.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= fg.H {
		y = fg.H - 1
	}
	return y*fg.W + x
}

// At returns the food at (x,y).
func (fg *FoodGrid) At(x, y int) int {
	return fg.Cells[fg.index(x, y)]
}

// Set stores v at (x,y), clamped to [0, MaxUnits].
func (fg *FoodGrid) Set(x, y, v int) {
	fg.Cells[fg.index(x, y)] = fg.clampUnits(v)
}

// Take removes up to n units from (x,y) and returns the amount removed.
func (fg *FoodGrid) Take(x, y, n int) int {
	if n <= 0 {
		return 0
	}
	i := fg.index(x, y)
	taken := min(n, fg.Cells[i])
	if taken <= 0 {
		return 0
	}
	fg.Cells[i] -= taken
	return taken
}

// Total returns the sum of food units on the grid.
func (fg *FoodGrid) Total() int {
	total := 0
	for _, v := range fg.Cells {
		total += v
	}
	return total
}

func (fg *FoodGrid) clampUnits(v int) int {
	if v < 0 {
		return 0
	}
	if v > fg.MaxUnits {
		return fg.MaxUnits
	}
	return v
}

// SeedUniform fills each cell independently: with probability fraction it
// gets a uniform integer in [lo, hi], otherwise it stays empty.
func (fg *FoodGrid) SeedUniform(rng *rand.Rand, fraction float64, lo, hi int) {
	if hi < lo {
		lo, hi = hi, lo
	}
	for i := range fg.Cells {
		if rng.Float64() < fraction {
			fg.Cells[i] = fg.clampUnits(lo + rng.Intn(hi-lo+1))
		} else {
			fg.Cells[i] = 0
		}
	}
}

// SeedNoise fills the grid with patchy food from OpenSimplex noise.
// The top fraction of noise values receive food, scaled from lo at the
// threshold to hi at the peak.
func (fg *FoodGrid) SeedNoise(seed int64, scale, fraction float64, lo, hi int) {
	if len(fg.Cells) == 0 {
		return
	}
	noise := opensimplex.NewNormalized(seed)

	values := make([]float64, len(fg.Cells))
	for y := 0; y < fg.H; y++ {
		for x := 0; x < fg.W; x++ {
			values[y*fg.W+x] = noise.Eval2(float64(x)*scale, float64(y)*scale)
		}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	fraction = math.Max(0, math.Min(1, fraction))
	if fraction == 0 {
		clear(fg.Cells)
		return
	}
	threshold := stat.Quantile(1-fraction, stat.Empirical, sorted, nil)
	peak := sorted[len(sorted)-1]

	for i, v := range values {
		if v < threshold {
			fg.Cells[i] = 0
			continue
		}
		t := 0.0
		if peak > threshold {
			t = (v - threshold) / (peak - threshold)
		}
		fg.Cells[i] = fg.clampUnits(lo + int(math.Round(t*float64(hi-lo))))
	}
}

// Regenerate applies one tick of food dynamics. factor scales regrowth and
// spontaneous seeding; decay is unaffected. Each cell runs three independent
// checks against its current value: regrow, decay, then spontaneous seeding
// of empty cells.
func (fg *FoodGrid) Regenerate(rng *rand.Rand, p RegenParams, factor float64) {
	regen := p.RegenProbability * factor
	spawn := p.SpontaneousProbability * factor

	for i, amount := range fg.Cells {
		if amount > 0 && amount < fg.MaxUnits && rng.Float64() < regen {
			amount = min(fg.MaxUnits, amount+1)
		}
		if amount > 0 && rng.Float64() < p.DecayProbability {
			amount = max(0, amount-1)
		}
		if amount == 0 && rng.Float64() < spawn {
			amount = 1
		}
		fg.Cells[i] = amount
	}
}
