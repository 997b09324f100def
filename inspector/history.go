package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/telemetry"
)

const (
	// History buffer size (number of ticks to keep)
	historySize = 300

	// Line series indices
	seriesPopA      = 0
	seriesPopB      = 1
	seriesBirths    = 2
	seriesDeaths    = 3
	seriesFood      = 4
	seriesPollution = 5
	numSeries       = 6
)

// countSeries share the left axis; levelSeries are fractions on the right axis.
var (
	countSeries = []int{seriesPopA, seriesPopB, seriesBirths, seriesDeaths}
	levelSeries = []int{seriesFood, seriesPollution}
)

// History is a fixed-size ring buffer of per-tick samples.
type History struct {
	series [numSeries][]float64
	index  int
	count  int
}

// NewHistory creates a buffer holding the last size samples.
func NewHistory(size int) *History {
	h := &History{}
	for i := range h.series {
		h.series[i] = make([]float64, max(1, size))
	}
	return h
}

// Record appends one sample, overwriting the oldest when full.
func (h *History) Record(sample [numSeries]float64) {
	size := len(h.series[0])
	for i, v := range sample {
		h.series[i][h.index] = v
	}
	h.index = (h.index + 1) % size
	if h.count < size {
		h.count++
	}
}

// Len returns the number of samples held.
func (h *History) Len() int {
	return h.count
}

// At returns sample i of a series, oldest first.
func (h *History) At(series, i int) float64 {
	size := len(h.series[series])
	return h.series[series][(h.index-h.count+i+size)%size]
}

// Values returns a series in chronological order.
func (h *History) Values(series int) []float64 {
	out := make([]float64, h.count)
	for i := range out {
		out[i] = h.At(series, i)
	}
	return out
}

// Range finds min/max across the given series with 10% padding.
// Returns (0, 1) when there is nothing to scale.
func (h *History) Range(series []int) (lo, hi float64) {
	lo = math.MaxFloat64
	hi = -math.MaxFloat64
	for _, s := range series {
		for i := 0; i < h.count; i++ {
			v := h.At(s, i)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if h.count == 0 || len(series) == 0 {
		return 0, 1
	}
	if lo >= hi {
		return lo - 0.5, hi + 0.5
	}
	padding := math.Max((hi-lo)*0.1, 0.001)
	return lo - padding, hi + padding
}

// Sample converts tick stats into one history sample. foodCapacity is
// cells times max units per cell.
func Sample(stats telemetry.TickStats, foodCapacity int) [numSeries]float64 {
	var s [numSeries]float64
	s[seriesPopA] = float64(stats.PopA)
	s[seriesPopB] = float64(stats.PopB)
	s[seriesBirths] = float64(stats.BirthsA + stats.BirthsB)
	s[seriesDeaths] = float64(stats.DeathsA + stats.DeathsB)
	if foodCapacity > 0 {
		s[seriesFood] = float64(stats.TotalFood) / float64(foodCapacity)
	}
	s[seriesPollution] = stats.Pollution
	return s
}

// History panel colors
var (
	colorHistoryTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorHistoryPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg        = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid      = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder    = rl.Color{R: 60, G: 60, B: 70, A: 255}
)

// HistoryPanel displays population and environment history as line graphs.
type HistoryPanel struct {
	history      *History
	foodCapacity int

	panelX, panelY int32
	panelWidth     int32
	panelHeight    int32

	// Series visibility (toggled by clicking legend)
	seriesVisible [numSeries]bool
	seriesNames   [numSeries]string
	seriesColors  [numSeries]rl.Color
}

// NewHistoryPanel creates a panel at (x, y). Species colors come from the
// renderer so the graph matches the grid.
func NewHistoryPanel(x, y, width, height int32, foodCapacity int, colorA, colorB rl.Color) *HistoryPanel {
	return &HistoryPanel{
		history:      NewHistory(historySize),
		foodCapacity: foodCapacity,
		panelX:       x,
		panelY:       y,
		panelWidth:   width,
		panelHeight:  height,
		seriesVisible: [numSeries]bool{
			true,  // Pop A
			true,  // Pop B
			false, // Births
			false, // Deaths
			true,  // Food
			true,  // Pollution
		},
		seriesNames: [numSeries]string{"Pop A", "Pop B", "Births", "Deaths", "Food", "Pollut."},
		seriesColors: [numSeries]rl.Color{
			colorA,
			colorB,
			{R: 150, G: 200, B: 255, A: 255},
			{R: 200, G: 200, B: 200, A: 255},
			{R: 80, G: 180, B: 80, A: 255},
			{R: 160, G: 120, B: 60, A: 255},
		},
	}
}

// SetPosition moves the panel.
func (p *HistoryPanel) SetPosition(x, y int32) {
	p.panelX = x
	p.panelY = y
}

// Update records the latest tick.
func (p *HistoryPanel) Update(stats telemetry.TickStats) {
	p.history.Record(Sample(stats, p.foodCapacity))
}

// HandleClick toggles a series when its legend entry is clicked.
// Returns true if the click was consumed.
func (p *HistoryPanel) HandleClick(mx, my int32) bool {
	legendY := p.panelY + p.panelHeight - 22
	legendX := p.panelX + 10
	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*legendItemWidth
		if mx >= itemX && mx < itemX+legendItemWidth-4 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return true
		}
	}
	return false
}

const legendItemWidth = int32(64)

// Draw renders the panel.
func (p *HistoryPanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorHistoryPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	rl.DrawText("HISTORY", p.panelX+10, p.panelY+6, 14, colorHistoryTitle)

	if p.history.Len() == 0 {
		rl.DrawText("Waiting for data...", p.panelX+10, p.panelY+40, 14, ColorTextDim)
		return
	}

	graphX := p.panelX + 10
	graphY := p.panelY + 24
	graphW := p.panelWidth - 20
	graphH := p.panelHeight - 52

	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-22)
}

// drawGraph renders the line graph.
func (p *HistoryPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}

	if p.history.Len() < 2 {
		return
	}

	countMin, countMax := p.history.Range(p.visible(countSeries))
	countMin = math.Max(0, countMin)

	for _, s := range countSeries {
		if p.seriesVisible[s] {
			p.drawSeriesLine(x, y, w, h, s, countMin, countMax)
		}
	}
	for _, s := range levelSeries {
		if p.seriesVisible[s] {
			p.drawSeriesLine(x, y, w, h, s, 0, 1)
		}
	}

	rl.DrawText(fmt.Sprintf("%.0f", countMax), x+2, y+2, 9, ColorTextDim)
	rl.DrawText(fmt.Sprintf("%.0f", countMin), x+2, y+h-10, 9, ColorTextDim)
	textW := rl.MeasureText("100%", 9)
	rl.DrawText("100%", x+w-textW-2, y+2, 9, ColorTextDim)
}

func (p *HistoryPanel) visible(series []int) []int {
	var out []int
	for _, s := range series {
		if p.seriesVisible[s] {
			out = append(out, s)
		}
	}
	return out
}

// drawSeriesLine draws one data series as a line.
func (p *HistoryPanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	n := p.history.Len()
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := 0; i < n; i++ {
		v := p.history.At(series, i)

		px := x + int32(float64(i)*float64(w)/float64(n-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))
		py = max(y, min(y+h, py))

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, p.seriesColors[series])
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the interactive legend.
func (p *HistoryPanel) drawLegend(x, y int32) {
	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*legendItemWidth
		color := p.seriesColors[i]
		textColor := ColorText
		if !p.seriesVisible[i] {
			color.A = 80
			textColor = ColorTextDim
		}
		rl.DrawRectangle(itemX, y+2, 10, 10, color)
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}
}
