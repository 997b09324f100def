// Package game drives the ecosystem: initial population, the tick state
// machine and the run loop around it.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/genesis/components"
	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/systems"
	"github.com/pthm-cable/genesis/telemetry"
)

// Outcome is how a run ended.
type Outcome uint8

const (
	OutcomeRunning   Outcome = iota
	OutcomeExtinct           // population emptied
	OutcomeCompleted         // reached the tick limit
)

// String returns the outcome label used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeExtinct:
		return "extinct"
	case OutcomeCompleted:
		return "completed"
	default:
		return "running"
	}
}

// bookmarkHistory is the number of ticks the bookmark detector looks back over.
const bookmarkHistory = 50

// Options configures a Game.
type Options struct {
	Config        *config.Config // nil = config.Cfg()
	Seed          int64
	MaxTicks      int           // 0 = run.max_ticks
	TickDelay     time.Duration // pause between ticks in Run
	OutputDir     string        // empty = no CSV output
	SnapshotDir   string        // empty = no snapshots on bookmarks
	LogStats      bool          // slog stats every telemetry.log_every ticks
	StatsCallback func(telemetry.TickStats)
}

// Game holds one simulation run.
type Game struct {
	sim   *Sim
	seed  int64
	state *State
	pop   components.Population
	env   *systems.Environment

	maxTicks  int
	tickDelay time.Duration
	outcome   Outcome
	last      telemetry.TickStats

	// Telemetry
	logStats      bool
	logEvery      int
	statsCallback func(telemetry.TickStats)
	outputManager *telemetry.OutputManager

	bookmarkDetector *telemetry.BookmarkDetector
	bookmarks        []telemetry.Bookmark
	snapshotDir      string
}

// NewGameWithOptions seeds the food grid, spawns the initial population and
// prepares output. The only error source is output setup.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	sim := NewSim(cfg, opts.Seed)
	sim.Perf = telemetry.NewPerfCollector(cfg.Telemetry.LogEvery)

	g := &Game{
		sim:           sim,
		seed:          opts.Seed,
		state:         NewState(),
		env:           systems.NewEnvironment(cfg),
		maxTicks:      opts.MaxTicks,
		tickDelay:     opts.TickDelay,
		logStats:      opts.LogStats,
		logEvery:      max(1, cfg.Telemetry.LogEvery),
		statsCallback: opts.StatsCallback,
		snapshotDir:   opts.SnapshotDir,

		bookmarkDetector: telemetry.NewBookmarkDetector(bookmarkHistory),
	}
	if g.maxTicks <= 0 {
		g.maxTicks = cfg.Run.MaxTicks
	}

	g.env.SeedFood(g.sim.Rng, cfg)
	g.pop = InitializePopulation(g.sim, [components.NumSpecies]int{
		cfg.Population.InitialA,
		cfg.Population.InitialB,
	}, g.state)
	g.bookmarkDetector.Prime(g.pop.CountBySpecies())

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	return g, nil
}

// Step runs one tick and returns its stats. After the run has ended it
// returns the last stats without ticking.
func (g *Game) Step() telemetry.TickStats {
	if g.Done() {
		return g.last
	}

	g.pop, g.last = Tick(g.sim, g.pop, g.env, g.state)

	switch {
	case len(g.pop) == 0:
		g.outcome = OutcomeExtinct
	case g.state.Tick >= g.maxTicks:
		g.outcome = OutcomeCompleted
	}

	g.publish(g.last)
	return g.last
}

// Run ticks until the run ends or ctx is cancelled, pausing tickDelay
// between ticks. Cancellation is only observed between ticks.
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	slog.Info("run started",
		"seed", g.seed,
		"max_ticks", g.maxTicks,
		"population", len(g.pop),
	)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for !g.Done() {
		if err := ctx.Err(); err != nil {
			return g.outcome, err
		}
		g.Step()

		if g.tickDelay <= 0 || g.Done() {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(g.tickDelay)
		} else {
			timer.Reset(g.tickDelay)
		}
		select {
		case <-ctx.Done():
			return g.outcome, ctx.Err()
		case <-timer.C:
		}
	}

	slog.Info("run finished",
		"tick", g.state.Tick,
		"outcome", g.outcome.String(),
		"pop_a", g.last.PopA,
		"pop_b", g.last.PopB,
	)
	return g.outcome, nil
}

// Done reports whether the run has ended.
func (g *Game) Done() bool {
	return g.outcome != OutcomeRunning
}

// Outcome returns how the run ended, or OutcomeRunning.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int {
	return g.state.Tick
}

// MaxTicks returns the tick limit of the run.
func (g *Game) MaxTicks() int {
	return g.maxTicks
}

// Population returns the current organisms. Callers must not modify it.
func (g *Game) Population() components.Population {
	return g.pop
}

// Environment returns the food grid and pollution level.
func (g *Game) Environment() *systems.Environment {
	return g.env
}

// Stats returns the most recent tick stats.
func (g *Game) Stats() telemetry.TickStats {
	return g.last
}

// Perf returns tick timing over the last telemetry.log_every ticks.
func (g *Game) Perf() telemetry.PerfStats {
	return g.sim.Perf.Stats()
}

// Bookmarks returns the bookmarks raised so far, oldest first.
func (g *Game) Bookmarks() []telemetry.Bookmark {
	return g.bookmarks
}

// Lifetime returns the cumulative tallies of the run.
func (g *Game) Lifetime() *telemetry.Lifetime {
	return &g.state.Lifetime
}

// Config returns the configuration the run uses.
func (g *Game) Config() *config.Config {
	return g.sim.Cfg
}

// Unload closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
