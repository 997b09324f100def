package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/ui"
)

// handleInput processes keyboard and mouse input for one frame.
func (w *Window) handleInput() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeySpace:
			w.control.Paused = !w.control.Paused
		case rl.KeyPeriod:
			w.control.Speed = ui.ClampSpeed(w.control.Speed * 2)
		case rl.KeyComma:
			w.control.Speed = ui.ClampSpeed(w.control.Speed / 2)
		case rl.KeyN:
			w.control.Paused = true
			w.control.StepRequested = true
		case rl.KeyHome:
			w.control.ResetCamera = true
		default:
			w.overlays.HandleKeyPress(key)
		}
	}

	if w.control.ResetCamera {
		w.control.ResetCamera = false
		w.camera.Reset()
	}

	w.handleCameraInput()
	w.handleMouse()
}

// handleCameraInput processes camera pan/zoom controls.
func (w *Window) handleCameraInput() {
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		w.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		w.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.camera.Pan(0, -panSpeed)
	}

	mouse := rl.GetMousePosition()
	if int32(mouse.X) >= w.viewW {
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.camera.ZoomBy(1.0 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		w.camera.Pan(-d.X, -d.Y)
	}
}

// handleMouse updates the hovered cell and processes selection clicks
// inside the world view.
func (w *Window) handleMouse() {
	mouse := rl.GetMousePosition()
	mx, my := int32(mouse.X), int32(mouse.Y)

	w.hoverX, w.hoverY, w.hovering = w.camera.ScreenToCell(mouse.X, mouse.Y, float32(w.cellSize))
	if mx >= w.viewW {
		w.hovering = false
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		w.inspector.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if w.overlays.IsEnabled(ui.OverlayHistory) && w.history.HandleClick(mx, my) {
		return
	}
	if w.inspector.CloseHit(mx, my) {
		w.inspector.Deselect()
		return
	}
	if w.inspector.ContainsPoint(w.inspector.Resolve(w.game.Population()), mx, my) {
		return
	}
	if w.hovering {
		w.inspector.SelectAt(w.game.Population(), w.hoverX, w.hoverY)
	}
}
