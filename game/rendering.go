package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/ui"
)

const controlsLegend = "SPACE pause  N step  ,/. speed  wheel/arrows camera  HOME reset  click inspect"

// Draw renders one frame.
func (w *Window) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	selected := w.inspector.Resolve(w.game.Population())

	// World view
	rl.BeginScissorMode(0, 0, w.viewW, w.viewH)
	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: float32(w.viewW) / 2, Y: float32(w.viewH) / 2},
		Target: rl.Vector2{X: w.camera.X, Y: w.camera.Y},
		Zoom:   w.camera.Zoom,
	})
	w.grid.Draw(w.game.Environment(), w.game.Population(), w.overlays.Layers())
	w.inspector.DrawSelectionHighlight(selected, w.cellSize)
	rl.EndMode2D()

	w.hud.Draw(w.hudData())
	if w.overlays.IsEnabled(ui.OverlayHistory) {
		w.history.Draw()
	}
	w.inspector.Draw(selected, w.game.Config())
	if w.hovering {
		mouse := rl.GetMousePosition()
		w.hud.DrawCellInfo(cellInfo(w.game.Population(), w.game.Environment(), w.hoverX, w.hoverY), int32(mouse.X), int32(mouse.Y))
	}
	w.hud.DrawControls(w.viewH, controlsLegend)
	rl.EndScissorMode()

	// Side panel
	w.controls.Draw(&w.control, w.overlays)
	w.stats.Draw(w.statsData)

	rl.EndDrawing()
}

func (w *Window) hudData() ui.HUDData {
	counts := w.game.Population().CountBySpecies()
	data := ui.HUDData{
		Tick:   w.game.Tick(),
		PopA:   counts[0],
		PopB:   counts[1],
		Speed:  w.control.Speed,
		FPS:    rl.GetFPS(),
		Paused: w.control.Paused,
	}
	if bms := w.game.Bookmarks(); len(bms) > 0 {
		last := bms[len(bms)-1]
		data.Event = ui.EventText(last.Tick, last.Description)
	}
	if w.game.Done() {
		data.Outcome = w.game.Outcome().String()
	}
	return data
}
