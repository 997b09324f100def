package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/camera"
	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/inspector"
	"github.com/pthm-cable/genesis/renderer"
	"github.com/pthm-cable/genesis/systems"
	"github.com/pthm-cable/genesis/ui"
)

// maxTicksPerFrame caps catch-up after a slow frame.
const maxTicksPerFrame = 64

// Window drives a Game from the raylib frame loop.
// It must be created after rl.InitWindow.
type Window struct {
	game *Game

	screenW, screenH int32
	viewW, viewH     int32 // world view; the side panel takes the rest
	panelW           int32
	cellSize         int32

	grid      *renderer.GridRenderer
	camera    *camera.Camera
	hud       *ui.HUD
	stats     *ui.StatsPanel
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry
	inspector *inspector.Inspector
	history   *inspector.HistoryPanel
	statsData ui.StatsData

	control     ui.ControlState
	tickDelay   time.Duration
	accumulator time.Duration

	hoverX, hoverY int
	hovering       bool
}

// NewWindow builds the view for g. tickDelay is the pause between ticks at 1x speed.
func NewWindow(g *Game, tickDelay time.Duration) *Window {
	cfg := g.Config()

	w := &Window{
		game:      g,
		screenW:   cfg.Derived.ScreenW,
		screenH:   cfg.Derived.ScreenH,
		panelW:    int32(cfg.Screen.PanelWidth),
		cellSize:  int32(max(1, cfg.Screen.CellSize)),
		grid:      renderer.NewGridRenderer(cfg),
		hud:       ui.NewHUD(),
		overlays:  ui.NewOverlayRegistry(),
		tickDelay: tickDelay,
		control:   ui.ControlState{Speed: 1},
	}
	w.viewW = w.screenW - w.panelW
	w.viewH = w.screenH

	w.camera = camera.New(
		float32(w.viewW), float32(w.viewH),
		float32(int32(cfg.World.Width)*w.cellSize), float32(int32(cfg.World.Height)*w.cellSize),
	)

	w.controls = ui.NewControlsPanel(w.viewW, 0, w.panelW)
	controlsH := w.controls.Height(len(w.overlays.All()))
	w.stats = ui.NewStatsPanel(w.viewW, controlsH, w.panelW, w.screenH-controlsH)

	var colors [components.NumSpecies]rl.Color
	for _, sp := range components.AllSpecies {
		p := sp.Params(cfg)
		colors[sp.Index()] = renderer.SpeciesColor(p.Color, sp)
		w.statsData.Names[sp.Index()] = p.Name
	}
	w.statsData.Colors = colors
	w.statsData.MaxTicks = g.MaxTicks()
	w.statsData.Stats = g.Stats()

	historyH := int32(170)
	w.history = inspector.NewHistoryPanel(
		10, w.viewH-historyH-28, min(w.viewW-20, 460), historyH,
		cfg.Derived.Cells*cfg.Food.MaxUnits, colors[0], colors[1],
	)
	w.inspector = inspector.NewInspector(w.viewW-inspector.PanelWidth-10, 36)

	return w
}

// Update handles input and advances the simulation by the ticks due this frame.
func (w *Window) Update(dt time.Duration) {
	w.handleInput()

	if w.control.StepRequested {
		w.control.StepRequested = false
		w.step()
		return
	}
	if w.control.Paused || w.game.Done() {
		w.accumulator = 0
		return
	}

	var n int
	n, w.accumulator = ticksDue(w.accumulator, dt, w.tickDelay, w.control.Speed)
	for i := 0; i < n && !w.game.Done(); i++ {
		w.step()
	}
}

func (w *Window) step() {
	if w.game.Done() {
		return
	}
	stats := w.game.Step()
	w.statsData.Stats = stats
	w.history.Update(stats)
}

// ticksDue converts elapsed frame time into whole ticks at the given speed.
// With no delay the speed multiplier is the tick count per frame.
func ticksDue(acc, dt, delay time.Duration, speed float32) (int, time.Duration) {
	if speed <= 0 {
		return 0, acc
	}
	if delay <= 0 {
		return max(1, min(maxTicksPerFrame, int(speed))), 0
	}

	acc += time.Duration(float64(dt) * float64(speed))
	n := int(acc / delay)
	if n > maxTicksPerFrame {
		return maxTicksPerFrame, 0
	}
	return n, acc - time.Duration(n)*delay
}

// cellInfo summarizes one cell for the hover tooltip.
func cellInfo(pop components.Population, env *systems.Environment, x, y int) ui.CellInfo {
	info := ui.CellInfo{X: x, Y: y, Food: env.Food.At(x, y)}
	for _, o := range pop {
		if !o.IsDead() && o.Pos.X == x && o.Pos.Y == y {
			info.Occupants[o.Species.Index()]++
		}
	}
	return info
}

// Unload frees GPU resources and closes output.
func (w *Window) Unload() {
	w.grid.Unload()
	w.game.Unload()
}
