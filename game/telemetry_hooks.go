package game

import (
	"log/slog"

	"github.com/pthm-cable/genesis/telemetry"
)

// publish hands a tick snapshot to the callback, the log and the CSV output.
// Perf stats go out once per log window.
func (g *Game) publish(stats telemetry.TickStats) {
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	window := stats.Tick%g.logEvery == 0 || g.Done()
	var perfStats telemetry.PerfStats
	if window {
		perfStats = g.sim.Perf.Stats()
	}

	// Log stats if enabled (console output)
	if g.logStats && window {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "tick", stats.Tick, "error", err)
		}
		if window {
			if err := g.outputManager.WritePerf(perfStats, stats.Tick); err != nil {
				slog.Error("failed to write perf", "tick", stats.Tick, "error", err)
			}
		}
	}

	g.checkBookmarks(stats)
}

// checkBookmarks records, logs and writes any bookmarks this tick raised,
// saving a snapshot for each when a snapshot directory is set.
func (g *Game) checkBookmarks(stats telemetry.TickStats) {
	for _, bm := range g.bookmarkDetector.Check(stats) {
		g.bookmarks = append(g.bookmarks, bm)

		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := telemetry.NewSnapshot(g.seed, g.state.Tick, g.env, g.pop, &g.state.Lifetime, bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.state.Tick)
}
