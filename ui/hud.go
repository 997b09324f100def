package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the status line.
type HUDData struct {
	Tick    int
	PopA    int
	PopB    int
	Speed   float32
	FPS     int32
	Paused  bool
	Outcome string // empty while running
	Event   string // latest bookmark, empty if none
}

// HUD renders the heads-up display over the world view.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// StatusText returns the status line shown at the top of the world view.
func StatusText(data HUDData) string {
	text := fmt.Sprintf("Tick %d | A %d | B %d | %.2fx | %d FPS", data.Tick, data.PopA, data.PopB, data.Speed, data.FPS)
	switch {
	case data.Outcome != "":
		text += " | " + data.Outcome
	case data.Paused:
		text += " | PAUSED"
	}
	return text
}

// Draw renders the status line.
func (h *HUD) Draw(data HUDData) {
	text := StatusText(data)
	w := rl.MeasureText(text, 16)
	rl.DrawRectangle(4, 4, w+12, 24, rl.Color{R: 0, G: 0, B: 0, A: 160})

	color := rl.LightGray
	if data.Paused || data.Outcome != "" {
		color = rl.Yellow
	}
	rl.DrawText(text, 10, 8, 16, color)

	if data.Event != "" {
		ew := rl.MeasureText(data.Event, 14)
		rl.DrawRectangle(4, 30, ew+12, 20, rl.Color{R: 0, G: 0, B: 0, A: 140})
		rl.DrawText(data.Event, 10, 33, 14, rl.SkyBlue)
	}
}

// EventText formats a bookmark for the HUD.
func EventText(tick int, description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf("t%d: %s", tick, description)
}

// CellInfo describes the cell under the mouse.
type CellInfo struct {
	X, Y      int
	Food      int
	Occupants [2]int // living organisms per species index
}

// DrawCellInfo renders a tooltip for the hovered cell next to the cursor.
func (h *HUD) DrawCellInfo(info CellInfo, mx, my int32) {
	text := fmt.Sprintf("(%d,%d) food %d  A %d  B %d", info.X, info.Y, info.Food, info.Occupants[0], info.Occupants[1])
	w := rl.MeasureText(text, h.renderer.Style.TextSize)
	rl.DrawRectangle(mx+12, my+12, w+10, 18, rl.Color{R: 0, G: 0, B: 0, A: 200})
	rl.DrawText(text, mx+17, my+15, h.renderer.Style.TextSize, rl.RayWhite)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}
