// Package inspector draws the organism inspector and the population history panel.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector tracks one selected organism by ID across ticks.
type Inspector struct {
	selected    uint64
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector whose panel sits at (x, y).
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// SetPosition moves the panel.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX = x
	ins.panelY = y
}

// SelectAt selects the first living organism on cell (x, y), in population order.
// Returns false and keeps the previous selection if the cell is empty.
func (ins *Inspector) SelectAt(pop components.Population, x, y int) bool {
	for _, o := range pop {
		if o.IsDead() || o.Pos.X != x || o.Pos.Y != y {
			continue
		}
		ins.selected = o.ID
		ins.hasSelected = true
		return true
	}
	return false
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the ID of the selected organism.
func (ins *Inspector) Selected() (uint64, bool) {
	return ins.selected, ins.hasSelected
}

// Resolve finds the selected organism in pop. A selection whose organism
// has died or been removed is cleared.
func (ins *Inspector) Resolve(pop components.Population) *components.Organism {
	if !ins.hasSelected {
		return nil
	}
	for _, o := range pop {
		if o.ID == ins.selected && !o.IsDead() {
			return o
		}
	}
	ins.Deselect()
	return nil
}

// ContainsPoint reports whether a screen point falls on the open panel.
func (ins *Inspector) ContainsPoint(o *components.Organism, mx, my int32) bool {
	if o == nil {
		return false
	}
	h := ins.panelHeight(o)
	return mx >= ins.panelX && mx <= ins.panelX+PanelWidth && my >= ins.panelY && my <= ins.panelY+h
}

// CloseHit reports whether a screen point falls on the close button.
func (ins *Inspector) CloseHit(mx, my int32) bool {
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	return ins.hasSelected && mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20
}

// Draw renders the inspector panel for the selected organism, if any.
func (ins *Inspector) Draw(o *components.Organism, cfg *config.Config) {
	if o == nil {
		return
	}

	panelHeight := ins.panelHeight(o)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("ORGANISM #%d", o.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	for _, f := range ExtractFields(NewOrganismView(o, cfg)) {
		y += DrawField(x, y, f)
	}

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	ins.drawSectionHeader(x, y, fmt.Sprintf("PROGRAM (%d)", len(o.Genome)))
	y += 20

	DrawProgram(x, y, PanelWidth-2*PanelPadding, o.Genome, o.IP)
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// panelHeight computes the panel height for an organism's view and program.
func (ins *Inspector) panelHeight(o *components.Organism) int32 {
	fields := ExtractFields(OrganismView{})
	height := int32(HeaderHeight + PanelPadding)
	height += int32(len(fields)) * 18
	height += 12 // separator
	height += 20 // program header
	height += int32(max(1, ProgramRows(o.Genome)))*14 + 4
	height += PanelPadding
	return height
}

// DrawSelectionHighlight outlines the selected organism's cell.
// Coordinates are world pixels; call inside the world camera.
func (ins *Inspector) DrawSelectionHighlight(o *components.Organism, cellSize int32) {
	if o == nil {
		return
	}
	x := int32(o.Pos.X) * cellSize
	y := int32(o.Pos.Y) * cellSize
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(x - 1), Y: float32(y - 1), Width: float32(cellSize + 2), Height: float32(cellSize + 2)},
		2,
		rl.Yellow,
	)
}
