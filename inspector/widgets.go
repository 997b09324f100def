package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/genome"
)

// Widget colors
var (
	ColorBarBg     = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill   = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText      = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim   = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn    = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff   = rl.Color{R: 80, G: 80, B: 80, A: 255}
	ColorIP        = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorUndefined = rl.Color{R: 110, G: 90, B: 90, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal progress bar shading from red (empty) to green (full).
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := value / GetMax(options)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	barHeight := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fillWidth := int32(float32(barWidth) * ratio)
	rl.DrawRectangle(barX, y, fillWidth, barHeight, lerpColor(ColorBarLow, ColorBarFill, ratio))

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "NO"
	if value {
		color = ColorBoolOn
		text = "YES"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
		return DrawLabel(x, y, field.Name, field.Value, field.Options)

	default:
		return DrawLabel(x, y, field.Name, field.Value, field.Options)
	}
}

// ProgramColumns is the number of opcodes per row in a program listing.
const ProgramColumns = 4

// ProgramRows returns the number of listing rows for a genome.
func ProgramRows(g genome.Genome) int {
	return (len(g) + ProgramColumns - 1) / ProgramColumns
}

// DrawProgram renders the genome as a grid of mnemonics, highlighting
// the instruction pointer. Returns the height used.
func DrawProgram(x, y, width int32, g genome.Genome, ip int) int32 {
	const rowHeight = int32(14)
	if len(g) == 0 {
		rl.DrawText("(empty genome)", x, y, 12, ColorTextDim)
		return rowHeight + 4
	}

	colWidth := width / ProgramColumns
	for i := range g {
		op := g.At(i)
		cx := x + int32(i%ProgramColumns)*colWidth
		cy := y + int32(i/ProgramColumns)*rowHeight

		color := ColorTextDim
		if !op.Defined() {
			color = ColorUndefined
		}
		if i == ip {
			rl.DrawRectangle(cx-2, cy-1, colWidth-2, rowHeight, rl.Color{R: 70, G: 60, B: 30, A: 255})
			color = ColorIP
		}
		rl.DrawText(fmt.Sprintf("%02d %s", i, op), cx, cy, 10, color)
	}
	return int32(ProgramRows(g))*rowHeight + 4
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
