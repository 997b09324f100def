package renderer

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
)

func TestFoodColor(t *testing.T) {
	empty := FoodColor(0, 10)
	if empty != (color.RGBA{A: 255}) {
		t.Errorf("empty cell = %v, want opaque black", empty)
	}

	prev := empty
	for units := 1; units <= 10; units++ {
		c := FoodColor(units, 10)
		if c.G <= prev.G {
			t.Fatalf("green did not increase at %d units: %d <= %d", units, c.G, prev.G)
		}
		prev = c
	}

	if FoodColor(50, 10) != FoodColor(10, 10) {
		t.Error("overfull cell should render as a full cell")
	}
}

func TestPollutionTint(t *testing.T) {
	tests := []struct {
		level float64
		alpha uint8
	}{
		{0, 0},
		{0.5, 80},
		{1, 160},
		{3, 160},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := PollutionTint(tt.level).A; got != tt.alpha {
			t.Errorf("PollutionTint(%v).A = %d, want %d", tt.level, got, tt.alpha)
		}
	}
}

func TestSpeciesColor(t *testing.T) {
	tests := []struct {
		name string
		rgb  []int
		sp   components.Species
		want color.RGBA
	}{
		{"configured", []int{1, 2, 3}, components.SpeciesA, color.RGBA{R: 1, G: 2, B: 3, A: 255}},
		{"clamped", []int{-4, 300, 128}, components.SpeciesB, color.RGBA{R: 0, G: 255, B: 128, A: 255}},
		{"fallback A", nil, components.SpeciesA, color.RGBA{R: 120, G: 220, B: 90, A: 255}},
		{"fallback B", []int{9}, components.SpeciesB, color.RGBA{R: 230, G: 80, B: 70, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpeciesColor(tt.rgb, tt.sp); got != tt.want {
				t.Errorf("SpeciesColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrganismColor(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	if got := OrganismColor(base, 100, 100); got != base {
		t.Errorf("full energy = %v, want base %v", got, base)
	}
	starving := OrganismColor(base, 0, 100)
	if starving.R != 80 || starving.G != 40 || starving.B != 20 {
		t.Errorf("starving = %v, want 40%% of base", starving)
	}
	if got := OrganismColor(base, 10, 0); got != base {
		t.Errorf("unknown energy range should keep base color, got %v", got)
	}
}

func TestNewGridRendererUsesSpeciesConfig(t *testing.T) {
	cfg := config.Default()
	r := NewGridRenderer(cfg)

	if r.texW != cfg.World.Width || r.texH != cfg.World.Height {
		t.Errorf("texture %dx%d does not match world", r.texW, r.texH)
	}
	if r.symbols[components.SpeciesA.Index()] != cfg.Species.A.Symbol {
		t.Errorf("symbol A = %q", r.symbols[0])
	}
	if r.speciesColor[components.SpeciesB.Index()] != SpeciesColor(cfg.Species.B.Color, components.SpeciesB) {
		t.Error("species B color not taken from config")
	}
}
