package game

import (
	"log/slog"

	"github.com/pthm-cable/gridsim/telemetry"
)

// flushTelemetry reports occupancy and perf once per stats window.
func (g *Game) flushTelemetry() {
	if g.statsEvery <= 0 || g.tick%g.statsEvery != 0 {
		return
	}

	stats := g.Occupancy()
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.Log()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteOccupancy(stats); err != nil {
			slog.Error("failed to write occupancy", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Occupancy computes cell occupancy statistics for the current grid.
func (g *Game) Occupancy() telemetry.OccupancyStats {
	return telemetry.ComputeOccupancy(g.tick, g.grid.Counts(), len(g.strays))
}
