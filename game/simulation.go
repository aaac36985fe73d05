package game

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/gridsim/grid"
	"github.com/pthm-cable/gridsim/telemetry"
)

// Update advances the simulation and handles input (graphics mode).
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless advances the simulation without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs one tick: move, re-partition, report.
func (g *Game) simulationStep() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseMovement)
	g.updateMovement()

	g.perf.StartPhase(telemetry.PhaseGridBuild)
	g.rebuildGrid()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.flushTelemetry()

	g.perf.EndTick()
}

// updateMovement integrates velocity and bounces entities off the world edges.
func (g *Game) updateMovement() {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, _, _ := query.Get()
		pos.X, vel.X = bounce(pos.X+vel.X*g.dt, vel.X, g.width)
		pos.Y, vel.Y = bounce(pos.Y+vel.Y*g.dt, vel.Y, g.height)
	}
}

// bounce reflects p into [0, limit) and flips v when it crosses an edge.
func bounce(p, v, limit float32) (float32, float32) {
	if p < 0 {
		p, v = -p, -v
	} else if p >= limit {
		p, v = 2*limit-p, -v
	}
	// The far edge itself is outside; so is anything that tunneled through
	if p >= limit {
		p = math.Nextafter32(limit, 0)
	}
	if p < 0 {
		p = 0
	}
	return p, v
}

// rebuildGrid replaces the grid with a fresh one holding every entity.
// The grid has no removal, so it is rebuilt from scratch each tick.
func (g *Game) rebuildGrid() {
	gr, err := grid.New(g.width, g.height, g.cellSize)
	if err != nil {
		// Validated in NewGame
		slog.Error("rebuilding grid", "error", err)
		return
	}

	g.balls = g.balls[:0]
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, body, marker := query.Get()
		g.balls = append(g.balls, ball{
			id:     marker.ID,
			x:      pos.X,
			y:      pos.Y,
			radius: body.Radius,
			color:  body.Color,
		})
	}

	g.strays = g.strays[:0]
	if g.workers > 1 && len(g.balls) >= g.parallelThreshold {
		g.insertParallel(gr)
	} else {
		for i := range g.balls {
			if err := gr.Add(&g.balls[i]); err != nil {
				g.recordStray(i, err)
			}
		}
	}

	g.grid = gr
}

// insertParallel fills gr from several goroutines through a locked wrapper.
// Cell order then depends on scheduling.
func (g *Game) insertParallel(gr *grid.Grid) {
	synced := grid.NewSynced(gr)
	chunk := (len(g.balls) + g.workers - 1) / g.workers
	failed := make([][]int, g.workers)

	var wg sync.WaitGroup
	for w := 0; w < g.workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(g.balls))
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if err := synced.Add(&g.balls[i]); err != nil {
					failed[w] = append(failed[w], i)
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, idx := range failed {
		for _, i := range idx {
			g.recordStray(i, grid.ErrOutOfBounds)
		}
	}
}

// recordStray notes an entity the grid rejected.
func (g *Game) recordStray(i int, err error) {
	g.strays = append(g.strays, i)
	b := &g.balls[i]
	if errors.Is(err, grid.ErrOutOfBounds) {
		slog.Debug("entity off grid", "id", b.id, "x", b.x, "y", b.y)
		return
	}
	slog.Warn("grid insert failed", "id", b.id, "error", err)
}
