package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/genesis/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkRecovery         BookmarkType = "recovery"
	BookmarkPollution        BookmarkType = "pollution_milestone"
	BookmarkStableCoexisting BookmarkType = "stable_coexistence"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int          `csv:"tick" json:"tick"`
	Species     string       `csv:"species" json:"species,omitempty"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"species", b.Species,
		"description", b.Description,
	)
}

// Detector thresholds.
const (
	crashDrop       = 0.5 // fraction lost from the recent peak
	crashMinLoss    = 5   // organisms lost, so tiny populations do not flap
	recoveryFloor   = 2   // population at or below this counts as near-extinct
	recoveryFactor  = 3
	recoveryMin     = 6
	stableMinA      = 5
	stableMinB      = 2
	stableMaxCV     = 0.2
	stableMinWindow = 20 // ticks of history before stability is judged
)

// pollutionMilestones are announced once each as pollution climbs.
var pollutionMilestones = []float64{0.25, 0.5, 0.75, 1.0}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling per-species population history (circular buffer)
	history     [components.NumSpecies][]float64
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	prevPop       [components.NumSpecies]int
	recentPeak    [components.NumSpecies]int
	recentMin     [components.NumSpecies]int
	nextMilestone int
	stable        bool // a stable_coexistence bookmark is outstanding
}

// NewBookmarkDetector creates a detector with the given history size in ticks.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableMinWindow {
		historySize = stableMinWindow
	}
	bd := &BookmarkDetector{historySize: historySize}
	for i := range bd.history {
		bd.history[i] = make([]float64, historySize)
		bd.recentMin[i] = -1
	}
	return bd
}

// Prime records the starting population so that losses in the first tick
// are measured against it.
func (bd *BookmarkDetector) Prime(counts [components.NumSpecies]int) {
	for i, n := range counts {
		bd.prevPop[i] = n
		bd.recentPeak[i] = max(bd.recentPeak[i], n)
		if bd.recentMin[i] < 0 || n < bd.recentMin[i] {
			bd.recentMin[i] = n
		}
	}
}

// Check analyzes the latest tick and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats TickStats) []Bookmark {
	var bookmarks []Bookmark
	pops := [components.NumSpecies]int{stats.PopA, stats.PopB}

	for _, sp := range components.AllSpecies {
		i := sp.Index()
		if b := bd.checkExtinction(sp, stats.Tick, pops[i]); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkCrash(sp, stats.Tick, pops[i]); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkRecovery(sp, stats.Tick, pops[i]); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkPollution(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(pops)

	if b := bd.checkStableCoexistence(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Track peaks and minimums for the next tick
	for i, n := range pops {
		bd.prevPop[i] = n
		bd.recentPeak[i] = max(bd.recentPeak[i], n)
		if bd.recentMin[i] < 0 || n < bd.recentMin[i] {
			bd.recentMin[i] = n
		}
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(pops [components.NumSpecies]int) {
	for i, n := range pops {
		bd.history[i][bd.historyIdx] = float64(n)
	}
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory(i int) []float64 {
	if bd.historyFull {
		return bd.history[i]
	}
	return bd.history[i][:bd.historyIdx]
}

func (bd *BookmarkDetector) checkExtinction(sp components.Species, tick, pop int) *Bookmark {
	prev := bd.prevPop[sp.Index()]
	if prev == 0 || pop != 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        tick,
		Species:     sp.String(),
		Description: fmt.Sprintf("Species %s died out (was %d)", sp, prev),
	}
}

func (bd *BookmarkDetector) checkCrash(sp components.Species, tick, pop int) *Bookmark {
	i := sp.Index()
	peak := bd.recentPeak[i]
	if peak == 0 || pop == 0 {
		return nil
	}

	drop := 1.0 - float64(pop)/float64(peak)
	if drop <= crashDrop || peak-pop < crashMinLoss {
		return nil
	}
	// Reset peak after crash
	bd.recentPeak[i] = pop
	return &Bookmark{
		Type:        BookmarkPopulationCrash,
		Tick:        tick,
		Species:     sp.String(),
		Description: fmt.Sprintf("Species %s crashed %.0f%% from peak %d to %d", sp, drop*100, peak, pop),
	}
}

func (bd *BookmarkDetector) checkRecovery(sp components.Species, tick, pop int) *Bookmark {
	i := sp.Index()
	low := bd.recentMin[i]
	if low <= 0 || low > recoveryFloor {
		return nil
	}
	if pop < low*recoveryFactor || pop < recoveryMin {
		return nil
	}
	// Reset the minimum after triggering
	bd.recentMin[i] = pop
	return &Bookmark{
		Type:        BookmarkRecovery,
		Tick:        tick,
		Species:     sp.String(),
		Description: fmt.Sprintf("Species %s recovered from %d to %d", sp, low, pop),
	}
}

func (bd *BookmarkDetector) checkPollution(stats TickStats) *Bookmark {
	if bd.nextMilestone >= len(pollutionMilestones) {
		return nil
	}
	level := pollutionMilestones[bd.nextMilestone]
	if stats.Pollution < level {
		return nil
	}
	// Skip any further milestones crossed in the same tick
	for bd.nextMilestone < len(pollutionMilestones) && stats.Pollution >= pollutionMilestones[bd.nextMilestone] {
		bd.nextMilestone++
	}
	return &Bookmark{
		Type:        BookmarkPollution,
		Tick:        stats.Tick,
		Description: fmt.Sprintf("Pollution reached %.2f", stats.Pollution),
	}
}

// checkStableCoexistence fires once when both species hold steady over the
// history window, and re-arms when that stops being true.
func (bd *BookmarkDetector) checkStableCoexistence(stats TickStats) *Bookmark {
	if stats.PopA < stableMinA || stats.PopB < stableMinB {
		bd.stable = false
		return nil
	}

	histA := bd.getHistory(0)
	if len(histA) < stableMinWindow {
		return nil
	}
	histB := bd.getHistory(1)

	steady := cv(histA) < stableMaxCV && cv(histB) < stableMaxCV
	if !steady {
		bd.stable = false
		return nil
	}
	if bd.stable {
		return nil
	}
	bd.stable = true
	return &Bookmark{
		Type:        BookmarkStableCoexisting,
		Tick:        stats.Tick,
		Description: fmt.Sprintf("Stable coexistence with %d A and %d B over %d ticks", stats.PopA, stats.PopB, len(histA)),
	}
}

// cv is the coefficient of variation (std/mean); 0 for an all-zero series.
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
