package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/renderer"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayFood      OverlayID = "food"
	OverlayPollution OverlayID = "pollution"
	OverlayGridLines OverlayID = "grid_lines"
	OverlaySymbols   OverlayID = "symbols"
	OverlayHistory   OverlayID = "history"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "F", "P")
	Category    string      // Grouping (e.g., "world", "panels")
	Default     bool        // Enabled at startup
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayFood,
		Name:        "Food",
		Description: "Shade cells by food units",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "world",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPollution,
		Name:        "Pollution",
		Description: "Tint the world by the global pollution level",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "world",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayGridLines,
		Name:        "Grid",
		Description: "Draw cell boundaries",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "world",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlaySymbols,
		Name:        "Symbols",
		Description: "Draw species glyphs instead of filled cells",
		Key:         rl.KeyY,
		KeyLabel:    "Y",
		Category:    "organisms",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayHistory,
		Name:        "History",
		Description: "Population and environment graphs",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "panels",
		Default:     true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// Layers maps the world overlays onto renderer layers.
func (r *OverlayRegistry) Layers() renderer.Layers {
	return renderer.Layers{
		Food:      r.enabled[OverlayFood],
		Pollution: r.enabled[OverlayPollution],
		GridLines: r.enabled[OverlayGridLines],
		Symbols:   r.enabled[OverlaySymbols],
	}
}
