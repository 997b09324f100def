package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/genesis/config"
	"github.com/pthm-cable/genesis/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = run.max_ticks)")
	tickDelay := flag.Duration("tick-delay", -1, "Pause between ticks (negative = 0 headless, run.tick_delay windowed)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	delay := *tickDelay
	if delay < 0 {
		delay = 0
		if !*headless {
			delay = cfg.Derived.TickDelay
		}
	}

	opts := game.Options{
		Config:      cfg,
		Seed:        rngSeed,
		MaxTicks:    *maxTicks,
		TickDelay:   delay,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		LogStats:    *logStats,
	}

	var err error
	if *headless {
		err = runHeadless(opts)
	} else {
		err = runWindowed(opts, delay)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless ticks until the run ends or an interrupt arrives.
func runHeadless(opts game.Options) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := g.Run(ctx)
	if errors.Is(err, context.Canceled) {
		slog.Info("interrupted", "tick", g.Tick(), "outcome", outcome.String())
		return nil
	}
	return err
}

// runWindowed opens a raylib window and drives the run from the frame loop.
func runWindowed(opts game.Options, delay time.Duration) error {
	cfg := opts.Config

	rl.InitWindow(cfg.Derived.ScreenW, cfg.Derived.ScreenH, "GENESIS")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	w := game.NewWindow(g, delay)
	defer w.Unload()

	slog.Info("window opened", "seed", opts.Seed, "max_ticks", g.MaxTicks(), "tick_delay", delay.String())

	for !rl.WindowShouldClose() {
		w.Update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))
		w.Draw()
	}

	slog.Info("window closed", "tick", g.Tick(), "outcome", g.Outcome().String())
	return nil
}
