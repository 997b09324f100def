package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel elements in one Style.
type Renderer struct {
	Style Style
}

// NewRenderer creates a renderer with the default style.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Style.Background)
	rl.DrawRectangleLines(x, y, width, height, r.Style.Border)
}

// DrawHeading draws a section title and returns the next Y.
func (r *Renderer) DrawHeading(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Style.HeadingSize, r.Style.Heading)
	return y + r.Style.Line
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, color rl.Color) int32 {
	rl.DrawText(label+":", x, y, r.Style.TextSize, r.Style.Label)
	rl.DrawText(value, x+r.Style.LabelWidth, y, r.Style.TextSize, color)
	return y + r.Style.Line
}

// DrawGauge draws value as a filled track within span.
func (r *Renderer) DrawGauge(x, y int32, label string, value float32, span Span, fill rl.Color, width int32) int32 {
	trackX := x + r.Style.LabelWidth
	trackW := width - r.Style.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Style.TextSize, r.Style.Label)
	rl.DrawRectangle(trackX, y+2, trackW, r.Style.GaugeHeight, r.Style.Track)
	rl.DrawRectangle(trackX, y+2, int32(float32(trackW)*span.Fraction(value)), r.Style.GaugeHeight, fill)
	rl.DrawText(fmt.Sprintf("%.3f", value), trackX+trackW+5, y, r.Style.TextSize, r.Style.Value)

	return y + r.Style.Line + 2
}

// DrawSwatch draws a color square followed by a caption.
func (r *Renderer) DrawSwatch(x, y int32, label string, color rl.Color, caption string) int32 {
	const size = 12

	rl.DrawText(label+":", x, y, r.Style.TextSize, r.Style.Label)
	rl.DrawRectangle(x+r.Style.LabelWidth, y+1, size, size, color)
	if caption != "" {
		rl.DrawText(caption, x+r.Style.LabelWidth+size+6, y, r.Style.TextSize, r.Style.Value)
	}

	return y + r.Style.Line
}

// DrawRow renders one row and returns the next Y.
func (r *Renderer) DrawRow(x, y int32, row Row, d StatsData, width int32) int32 {
	color := r.Style.Value
	if row.Tint.A > 0 {
		color = row.Tint
	}

	switch row.Kind {
	case RowGauge:
		value := float32(0)
		if row.Value != nil {
			value = row.Value(d)
		}
		fill := r.Style.Fill
		if row.Tint.A > 0 {
			fill = row.Tint
		}
		return r.DrawGauge(x, y, row.Label, value, row.Span, fill, width)

	case RowSwatch:
		if row.Color != nil {
			color = row.Color(d)
		}
		return r.DrawSwatch(x, y, row.Label, color, row.Display(d))
	}

	return r.DrawLabelValue(x, y, row.Label, row.Display(d), color)
}

// DrawSection renders a heading and its rows.
func (r *Renderer) DrawSection(x, y int32, s Section, d StatsData, width int32) int32 {
	if s.Title != "" {
		y = r.DrawHeading(x, y, s.Title)
	}
	for _, row := range s.Rows {
		y = r.DrawRow(x, y, row, d, width)
	}
	return y + 4
}

// DrawLayout renders a whole panel at (x, y) and returns the bottom Y.
func (r *Renderer) DrawLayout(x, y, height int32, l Layout, d StatsData) int32 {
	r.DrawPanel(x, y, l.Width, height)

	inner := l.Width - 2*r.Style.Pad
	cy := y + r.Style.Pad
	if l.Title != "" {
		rl.DrawText(l.Title, x+r.Style.Pad, cy, 16, rl.White)
		cy += r.Style.Line + 6
	}
	for _, s := range l.Sections {
		cy = r.DrawSection(x+r.Style.Pad, cy, s, d, inner)
	}
	return cy
}
