package telemetry

import (
	"math"
	"testing"
)

func TestComputeOccupancy(t *testing.T) {
	counts := []int{0, 0, 3, 1, 0, 6, 2, 0, 0, 0, 0, 0}

	s := ComputeOccupancy(42, counts, 5)

	if s.Tick != 42 || s.Cells != 12 || s.OffGrid != 5 {
		t.Errorf("header fields = %+v", s)
	}
	if s.Entities != 12 {
		t.Errorf("entities = %d, want 12", s.Entities)
	}
	if s.OccupiedCells != 4 {
		t.Errorf("occupied = %d, want 4", s.OccupiedCells)
	}
	if s.MaxPerCell != 6 {
		t.Errorf("max = %d, want 6", s.MaxPerCell)
	}
	if math.Abs(s.MeanPerCell-1.0) > 1e-9 {
		t.Errorf("mean = %v, want 1", s.MeanPerCell)
	}
	if s.StdPerCell <= 0 {
		t.Errorf("std = %v, want > 0", s.StdPerCell)
	}
	if s.P50PerCell != 0 {
		t.Errorf("p50 = %v, want 0", s.P50PerCell)
	}
	if s.P90PerCell != 3 {
		t.Errorf("p90 = %v, want 3", s.P90PerCell)
	}
}

func TestComputeOccupancyStdDev(t *testing.T) {
	s := ComputeOccupancy(0, []int{1, 2, 3, 4}, 0)

	if math.Abs(s.MeanPerCell-2.5) > 1e-9 {
		t.Errorf("mean = %v, want 2.5", s.MeanPerCell)
	}
	// Sample standard deviation
	if want := math.Sqrt(5.0 / 3.0); math.Abs(s.StdPerCell-want) > 1e-9 {
		t.Errorf("std = %v, want %v", s.StdPerCell, want)
	}
}

func TestComputeOccupancyEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   OccupancyStats
	}{
		{"empty grid", nil, OccupancyStats{}},
		{"single cell", []int{7}, OccupancyStats{
			Cells: 1, Entities: 7, OccupiedCells: 1, MaxPerCell: 7,
			MeanPerCell: 7, P50PerCell: 7, P90PerCell: 7,
		}},
		{"all empty", []int{0, 0, 0}, OccupancyStats{Cells: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeOccupancy(0, tt.counts, 0)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
