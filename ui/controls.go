package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed multiplier bounds for the run-speed slider.
const (
	MinSpeed float32 = 0.25
	MaxSpeed float32 = 16
)

// ControlState is the run control state the panel edits.
type ControlState struct {
	Paused bool
	Speed  float32 // multiplier on the configured tick rate

	// One-frame requests, cleared by the consumer
	StepRequested bool
	ResetCamera   bool
}

// ClampSpeed restricts a speed multiplier to the slider range.
func ClampSpeed(s float32) float32 {
	return max(MinSpeed, min(MaxSpeed, s))
}

// ControlsPanel renders the raygui run controls and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height for the given overlay count.
func (c *ControlsPanel) Height(overlays int) int32 {
	r := c.renderer
	rows := int32(overlays+1) / 2
	return r.Style.Pad*2 + 30 + 8 + r.Style.Line + 20 + 10 + rows*26
}

// Draw renders the controls, applies clicks to state and returns the bottom Y.
func (c *ControlsPanel) Draw(state *ControlState, overlays *OverlayRegistry) int32 {
	r := c.renderer
	all := overlays.All()
	r.DrawPanel(c.x, c.y, c.width, c.Height(len(all)))

	pad := float32(r.Style.Pad)
	x := float32(c.x) + pad
	y := float32(c.y) + pad
	inner := float32(c.width) - 2*pad
	half := (inner - 10) / 2

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 30}, label) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 30}, "Step") {
		state.Paused = true
		state.StepRequested = true
	}
	y += 38

	rl.DrawText(fmt.Sprintf("Speed %.2fx  [,/.]", state.Speed), int32(x), int32(y), r.Style.TextSize, r.Style.Label)
	y += float32(r.Style.Line)
	state.Speed = ClampSpeed(gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: y, Width: inner - 70, Height: 16},
		fmt.Sprintf("%.2g", MinSpeed), fmt.Sprintf("%.0f", MaxSpeed),
		state.Speed, MinSpeed, MaxSpeed,
	))
	y += 26

	for i, desc := range all {
		bx := x
		if i%2 == 1 {
			bx = x + half + 10
		}
		mark := " "
		if overlays.IsEnabled(desc.ID) {
			mark = "x"
		}
		text := fmt.Sprintf("[%s] %s (%s)", mark, desc.Name, desc.KeyLabel)
		if gui.Button(rl.Rectangle{X: bx, Y: y, Width: half, Height: 22}, text) {
			overlays.Toggle(desc.ID)
		}
		if i%2 == 1 || i == len(all)-1 {
			y += 26
		}
	}

	return int32(y)
}
