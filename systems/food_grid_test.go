package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/genesis/config"
)

func TestFoodGridCreation(t *testing.T) {
	fg := NewFoodGrid(7, 3, 10)

	if fg.W != 7 || fg.H != 3 {
		t.Errorf("expected 7x3, got %dx%d", fg.W, fg.H)
	}
	if len(fg.Cells) != 21 {
		t.Errorf("expected 21 cells, got %d", len(fg.Cells))
	}
	if fg.Total() != 0 {
		t.Errorf("new grid should be empty, total=%d", fg.Total())
	}
}

func TestFoodGridSaturatesCoordinates(t *testing.T) {
	fg := NewFoodGrid(4, 4, 10)
	fg.Set(3, 3, 7)
	fg.Set(0, 0, 2)

	tests := []struct {
		x, y int
		want int
	}{
		{10, 10, 7},
		{-5, -5, 2},
		{3, 99, 7},
	}
	for _, tt := range tests {
		if got := fg.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFoodGridSetClampsUnits(t *testing.T) {
	fg := NewFoodGrid(2, 2, 10)
	fg.Set(0, 0, 50)
	fg.Set(1, 1, -3)
	if fg.At(0, 0) != 10 {
		t.Errorf("expected clamp to 10, got %d", fg.At(0, 0))
	}
	if fg.At(1, 1) != 0 {
		t.Errorf("expected clamp to 0, got %d", fg.At(1, 1))
	}
}

func TestFoodGridTake(t *testing.T) {
	fg := NewFoodGrid(3, 3, 10)
	fg.Set(1, 1, 2)

	if got := fg.Take(1, 1, 1); got != 1 {
		t.Errorf("first take = %d, want 1", got)
	}
	if got := fg.Take(1, 1, 5); got != 1 {
		t.Errorf("second take = %d, want remaining 1", got)
	}
	if got := fg.Take(1, 1, 1); got != 0 {
		t.Errorf("take from empty cell = %d, want 0", got)
	}
	if fg.At(1, 1) != 0 {
		t.Errorf("cell should be empty, got %d", fg.At(1, 1))
	}
}

func TestSeedUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fg := NewFoodGrid(77, 39, 10)
	fg.SeedUniform(rng, 0.6, 3, 6)

	filled := 0
	for _, v := range fg.Cells {
		if v != 0 && (v < 3 || v > 6) {
			t.Fatalf("seeded value %d outside [3,6]", v)
		}
		if v > 0 {
			filled++
		}
	}
	frac := float64(filled) / float64(len(fg.Cells))
	if frac < 0.55 || frac > 0.65 {
		t.Errorf("filled fraction = %.3f, want ~0.6", frac)
	}
}

func TestSeedNoise(t *testing.T) {
	fg := NewFoodGrid(60, 30, 10)
	fg.SeedNoise(7, 0.12, 0.5, 3, 6)

	filled := 0
	for _, v := range fg.Cells {
		if v < 0 || v > 10 {
			t.Fatalf("value %d out of range", v)
		}
		if v != 0 && (v < 3 || v > 6) {
			t.Fatalf("seeded value %d outside [3,6]", v)
		}
		if v > 0 {
			filled++
		}
	}
	frac := float64(filled) / float64(len(fg.Cells))
	if frac < 0.45 || frac > 0.55 {
		t.Errorf("filled fraction = %.3f, want ~0.5", frac)
	}

	// Same seed reproduces the same layout
	again := NewFoodGrid(60, 30, 10)
	again.SeedNoise(7, 0.12, 0.5, 3, 6)
	for i := range fg.Cells {
		if fg.Cells[i] != again.Cells[i] {
			t.Fatal("noise seeding is not deterministic for a fixed seed")
		}
	}
}

func TestRegenerateStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fg := NewFoodGrid(20, 20, 10)
	fg.SeedUniform(rng, 0.6, 3, 6)

	// Exaggerated probabilities so every branch fires often
	p := RegenParams{RegenProbability: 0.9, DecayProbability: 0.5, SpontaneousProbability: 0.5}
	for tick := 0; tick < 500; tick++ {
		fg.Regenerate(rng, p, 1)
		for _, v := range fg.Cells {
			if v < 0 || v > fg.MaxUnits {
				t.Fatalf("tick %d: value %d outside [0,%d]", tick, v, fg.MaxUnits)
			}
		}
	}
}

func TestRegenerateZeroFactorOnlyDecays(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	fg := NewFoodGrid(10, 10, 10)
	for i := range fg.Cells {
		fg.Cells[i] = 5
	}
	before := fg.Total()

	p := RegenParams{RegenProbability: 1, DecayProbability: 0.2, SpontaneousProbability: 1}
	for i := 0; i < 50; i++ {
		fg.Regenerate(rng, p, 0)
		if fg.Total() > before {
			t.Fatalf("food grew under full pollution: %d > %d", fg.Total(), before)
		}
		before = fg.Total()
	}
}

func TestRegenerateSpontaneousSeeding(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	fg := NewFoodGrid(10, 10, 10)

	fg.Regenerate(rng, RegenParams{SpontaneousProbability: 1}, 1)

	for i, v := range fg.Cells {
		if v != 1 {
			t.Fatalf("cell %d = %d, want spontaneous seed of 1", i, v)
		}
	}
}

func TestRegenerateCapsAtMax(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	fg := NewFoodGrid(3, 3, 10)
	for i := range fg.Cells {
		fg.Cells[i] = 10
	}

	fg.Regenerate(rng, RegenParams{RegenProbability: 1}, 1)

	for _, v := range fg.Cells {
		if v != 10 {
			t.Errorf("full cell changed to %d without decay", v)
		}
	}
}

func TestEnvironmentPollutionMonotonic(t *testing.T) {
	env := NewEnvironment(config.Default())

	prev := env.Pollution
	for i := 0; i < 2000; i++ {
		env.AddPollution(100, 0.00001*float64(i%7), 1.0)
		if env.Pollution < prev {
			t.Fatalf("pollution decreased: %v -> %v", prev, env.Pollution)
		}
		if env.Pollution > 1.0 {
			t.Fatalf("pollution exceeded cap: %v", env.Pollution)
		}
		prev = env.Pollution
	}

	env.Pollution = 0.9
	env.AddPollution(10, 0.01, 0.5) // cap below current level
	if env.Pollution != 0.9 {
		t.Errorf("pollution lowered by cap: %v", env.Pollution)
	}
	if f := env.PollutionFactor(); f < 0.0999 || f > 0.1001 {
		t.Errorf("factor = %v, want 0.1", f)
	}
}

func TestEnvironmentRegenerateScalesByPollution(t *testing.T) {
	cfg := config.Default()
	cfg.Food.RegenProbability = 1
	cfg.Food.DecayProbability = 0
	cfg.Food.SpontaneousProbability = 1

	tests := []struct {
		name      string
		pollution float64
		want      int
	}{
		{"clean", 0, 1},
		{"saturated", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvironment(cfg)
			env.Pollution = tt.pollution
			env.Regenerate(rand.New(rand.NewSource(9)), cfg)
			for i, v := range env.Food.Cells {
				if v != tt.want {
					t.Fatalf("cell %d = %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestEnvironmentSeedFoodLayouts(t *testing.T) {
	for _, layout := range []string{"uniform", "noise"} {
		t.Run(layout, func(t *testing.T) {
			cfg := config.Default()
			cfg.Food.InitialLayout = layout
			env := NewEnvironment(cfg)
			env.SeedFood(rand.New(rand.NewSource(9)), cfg)

			if env.Width() != cfg.World.Width || env.Height() != cfg.World.Height {
				t.Errorf("grid %dx%d does not match world", env.Width(), env.Height())
			}
			if env.Food.Total() == 0 {
				t.Error("seeded grid has no food")
			}
		})
	}
}
