// Package renderer draws the world grid with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/systems"
)

// Layers selects which parts of the world are drawn.
type Layers struct {
	Food      bool
	Pollution bool
	GridLines bool
	Symbols   bool // species glyphs instead of filled cells
}

// GridRenderer renders the food grid as a texture, one pixel per cell,
// scaled up to cellSize, with organisms drawn on top.
type GridRenderer struct {
	foodTex  rl.Texture2D
	pixels   []color.RGBA
	texW     int
	texH     int
	cellSize int32

	speciesColor [components.NumSpecies]color.RGBA
	symbols      [components.NumSpecies]string
	energyMax    [components.NumSpecies]float64

	initialized bool
}

// NewGridRenderer creates a renderer for the configured world and species.
func NewGridRenderer(cfg *config.Config) *GridRenderer {
	r := &GridRenderer{
		texW:     cfg.World.Width,
		texH:     cfg.World.Height,
		cellSize: int32(max(1, cfg.Screen.CellSize)),
	}
	for _, sp := range components.AllSpecies {
		p := sp.Params(cfg)
		r.speciesColor[sp.Index()] = SpeciesColor(p.Color, sp)
		r.symbols[sp.Index()] = p.Symbol
		r.energyMax[sp.Index()] = float64(p.EnergyMax)
	}
	return r
}

// Init creates the food texture (must be called after raylib window is created).
func (r *GridRenderer) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(r.texW, r.texH, rl.Black)
	r.foodTex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.foodTex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.pixels = make([]color.RGBA, r.texW*r.texH)
	r.initialized = true
}

// UpdateFood uploads the current food grid to the GPU texture.
func (r *GridRenderer) UpdateFood(fg *systems.FoodGrid) {
	if !r.initialized {
		r.Init()
	}
	if fg.W != r.texW || fg.H != r.texH {
		return
	}
	for i, v := range fg.Cells {
		r.pixels[i] = FoodColor(v, fg.MaxUnits)
	}
	rl.UpdateTexture(r.foodTex, r.pixels)
}

// Draw renders the world at the window origin.
func (r *GridRenderer) Draw(env *systems.Environment, pop components.Population, layers Layers) {
	if !r.initialized {
		r.Init()
	}

	worldW := float32(int32(r.texW) * r.cellSize)
	worldH := float32(int32(r.texH) * r.cellSize)

	if layers.Food {
		r.UpdateFood(env.Food)
		src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
		dst := rl.Rectangle{X: 0, Y: 0, Width: worldW, Height: worldH}
		rl.DrawTexturePro(r.foodTex, src, dst, rl.Vector2{}, 0, rl.White)
	}

	if layers.Pollution && env.Pollution > 0 {
		rl.DrawRectangle(0, 0, int32(worldW), int32(worldH), PollutionTint(env.Pollution))
	}

	if layers.GridLines && r.cellSize >= 4 {
		line := color.RGBA{R: 40, G: 40, B: 40, A: 255}
		for x := 0; x <= r.texW; x++ {
			px := int32(x) * r.cellSize
			rl.DrawLine(px, 0, px, int32(worldH), line)
		}
		for y := 0; y <= r.texH; y++ {
			py := int32(y) * r.cellSize
			rl.DrawLine(0, py, int32(worldW), py, line)
		}
	}

	for _, o := range pop {
		if o.IsDead() {
			continue
		}
		r.drawOrganism(o, layers.Symbols)
	}
}

func (r *GridRenderer) drawOrganism(o *components.Organism, symbol bool) {
	idx := o.Species.Index()
	c := OrganismColor(r.speciesColor[idx], o.Energy, r.energyMax[idx])
	x := int32(o.Pos.X) * r.cellSize
	y := int32(o.Pos.Y) * r.cellSize

	if symbol && r.symbols[idx] != "" && r.cellSize >= 8 {
		fontSize := r.cellSize
		w := rl.MeasureText(r.symbols[idx], fontSize)
		rl.DrawText(r.symbols[idx], x+(r.cellSize-w)/2, y, fontSize, c)
		return
	}
	inset := r.cellSize / 6
	rl.DrawRectangle(x+inset, y+inset, r.cellSize-2*inset, r.cellSize-2*inset, c)
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.foodTex)
	r.initialized = false
}

// FoodColor maps a cell's food units to a green shade. Empty cells are black.
func FoodColor(units, maxUnits int) color.RGBA {
	if units <= 0 || maxUnits <= 0 {
		return color.RGBA{A: 255}
	}
	v := min(1, float64(units)/float64(maxUnits))
	return color.RGBA{
		R: uint8(10 + 20*v),
		G: uint8(40 + 150*v),
		B: uint8(10 + 30*v),
		A: 255,
	}
}

// PollutionTint is a translucent brown wash whose alpha follows the pollution level.
func PollutionTint(level float64) color.RGBA {
	level = max(0, min(1, level))
	return color.RGBA{R: 90, G: 60, B: 20, A: uint8(160 * level)}
}

// SpeciesColor converts a configured RGB triple. Missing or short values
// fall back to green for A and red for B.
func SpeciesColor(rgb []int, sp components.Species) color.RGBA {
	if len(rgb) < 3 {
		if sp == components.SpeciesA {
			return color.RGBA{R: 120, G: 220, B: 90, A: 255}
		}
		return color.RGBA{R: 230, G: 80, B: 70, A: 255}
	}
	return color.RGBA{R: channel(rgb[0]), G: channel(rgb[1]), B: channel(rgb[2]), A: 255}
}

// OrganismColor dims the species color for low-energy organisms.
// Brightness never drops below 40% so starving organisms stay visible.
func OrganismColor(base color.RGBA, energy, energyMax float64) color.RGBA {
	f := 1.0
	if energyMax > 0 {
		f = 0.4 + 0.6*max(0, min(1, energy/energyMax))
	}
	return color.RGBA{
		R: uint8(float64(base.R) * f),
		G: uint8(float64(base.G) * f),
		B: uint8(float64(base.B) * f),
		A: base.A,
	}
}

func channel(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
