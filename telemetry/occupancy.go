// Package telemetry collects grid occupancy and performance statistics.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// OccupancyStats summarizes how entities are spread over grid cells at one tick.
type OccupancyStats struct {
	Tick          int32   `csv:"tick"`
	Cells         int     `csv:"cells"`
	Entities      int     `csv:"entities"`
	OffGrid       int     `csv:"off_grid"` // Insertions rejected as out of bounds
	OccupiedCells int     `csv:"occupied_cells"`
	MaxPerCell    int     `csv:"max_per_cell"`
	MeanPerCell   float64 `csv:"mean_per_cell"`
	StdPerCell    float64 `csv:"std_per_cell"`
	P50PerCell    float64 `csv:"p50_per_cell"`
	P90PerCell    float64 `csv:"p90_per_cell"`
}

// ComputeOccupancy builds occupancy statistics from per-cell entity counts.
// An empty grid yields zero statistics.
func ComputeOccupancy(tick int32, counts []int, offGrid int) OccupancyStats {
	s := OccupancyStats{
		Tick:    tick,
		Cells:   len(counts),
		OffGrid: offGrid,
	}
	if len(counts) == 0 {
		return s
	}

	values := make([]float64, len(counts))
	for i, n := range counts {
		values[i] = float64(n)
		s.Entities += n
		if n > 0 {
			s.OccupiedCells++
		}
	}

	s.MaxPerCell = int(floats.Max(values))
	if len(values) > 1 {
		s.MeanPerCell, s.StdPerCell = stat.MeanStdDev(values, nil)
	} else {
		s.MeanPerCell = values[0]
	}

	sort.Float64s(values)
	s.P50PerCell = stat.Quantile(0.5, stat.Empirical, values, nil)
	s.P90PerCell = stat.Quantile(0.9, stat.Empirical, values, nil)

	return s
}

// Log writes the statistics through slog.
func (s OccupancyStats) Log() {
	slog.Info("occupancy",
		"tick", s.Tick,
		"entities", s.Entities,
		"off_grid", s.OffGrid,
		"occupied", s.OccupiedCells,
		"cells", s.Cells,
		"max", s.MaxPerCell,
		"mean", s.MeanPerCell,
		"std", s.StdPerCell,
	)
}
