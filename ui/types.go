// Package ui draws the side panel, run controls, HUD and overlay toggles.
// The stats panel is a Layout of Sections of Rows; each row reads its value
// from StatsData, so adding a statistic means adding a row.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RowKind selects how a row is drawn.
type RowKind int

const (
	RowText   RowKind = iota // label and formatted value
	RowGauge                 // horizontal gauge over Span
	RowSwatch                // species color square with caption
)

// Span is the value interval a gauge covers.
type Span struct {
	Lo, Hi float32
}

// Unit is the span for fractions such as the pollution level.
var Unit = Span{Lo: 0, Hi: 1}

// Fraction maps v onto [0, 1] within the span.
func (s Span) Fraction(v float32) float32 {
	width := s.Hi - s.Lo
	if width <= 0 {
		return 0
	}
	return max(0, min(1, (v-s.Lo)/width))
}

// Row is one line of the stats panel.
type Row struct {
	Key    string
	Label  string
	Kind   RowKind
	Span   Span     // gauge interval
	Tint   rl.Color // zero alpha uses the style default
	Format string   // printf verb for Value when Text is nil; "%.0f" if empty

	Value func(StatsData) float32
	Text  func(StatsData) string
	Color func(StatsData) rl.Color // swatch color
}

// Display returns the text drawn for the row.
func (r Row) Display(d StatsData) string {
	if r.Text != nil {
		return r.Text(d)
	}
	if r.Value != nil {
		format := r.Format
		if format == "" {
			format = "%.0f"
		}
		return fmt.Sprintf(format, r.Value(d))
	}
	return ""
}

// Section groups rows under an optional heading.
type Section struct {
	Key   string
	Title string
	Rows  []Row
}

// Layout is a complete panel.
type Layout struct {
	Title    string
	Width    int32
	Sections []Section
}

// Style holds the panel colors and metrics.
type Style struct {
	Background rl.Color
	Border     rl.Color
	Heading    rl.Color
	Label      rl.Color
	Value      rl.Color
	Track      rl.Color
	Fill       rl.Color

	Pad         int32
	Line        int32
	LabelWidth  int32
	GaugeHeight int32
	TextSize    int32
	HeadingSize int32
}

// DefaultStyle returns the dark side-panel style.
func DefaultStyle() Style {
	return Style{
		Background: rl.Color{R: 18, G: 22, B: 28, A: 240},
		Border:     rl.Color{R: 58, G: 66, B: 78, A: 255},
		Heading:    rl.Gold,
		Label:      rl.LightGray,
		Value:      rl.RayWhite,
		Track:      rl.Color{R: 40, G: 40, B: 40, A: 255},
		Fill:       rl.Color{R: 100, G: 150, B: 200, A: 255},

		Pad:         10,
		Line:        16,
		LabelWidth:  110,
		GaugeHeight: 12,
		TextSize:    12,
		HeadingSize: 14,
	}
}
