// Package game hosts the grid simulation: moving entities, per-tick
// re-partitioning, rendering, and telemetry.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"
	"runtime"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridsim/camera"
	"github.com/pthm-cable/gridsim/components"
	"github.com/pthm-cable/gridsim/config"
	"github.com/pthm-cable/gridsim/grid"
	"github.com/pthm-cable/gridsim/renderer"
	"github.com/pthm-cable/gridsim/telemetry"
	"github.com/pthm-cable/gridsim/ui"
)

// panelInset is the controls panel's distance from the right screen edge.
const panelInset = 190

// Options configures a Game beyond what the YAML config holds.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	entityMapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Marker]
	entityFilter *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Marker]

	// Spatial partition, rebuilt every tick
	grid     *grid.Grid
	balls    []ball
	strays   []int // indices into balls that fell outside the grid
	cellSize float32

	// Parallel grid rebuild
	workers           int
	parallelThreshold int

	// Rendering (nil in headless mode)
	camera *camera.Camera
	canvas *renderer.Canvas
	panel  *ui.ControlsPanel
	hud    *ui.HUD
	view   ui.PanelState

	// Telemetry
	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsEvery    int32
	logStats      bool

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	nextID         uint32

	// World and screen dimensions
	width, height             float32
	screenWidth, screenHeight float32
	dt                        float32
}

// NewGame creates a game from the global config.
// Fails if the configured grid is invalid or output cannot be created.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()
	g := &Game{
		world:        world,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		entityMapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Marker](world),
		entityFilter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Marker](world),
		cellSize:     cfg.Derived.CellSize32,
		width:        cfg.Derived.WorldW32,
		height:       cfg.Derived.WorldH32,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		dt:           cfg.Derived.DT32,
		headless:     opts.Headless,
		logStats:     opts.LogStats,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		workers:      cfg.Parallel.Workers,
	}
	g.parallelThreshold = cfg.Parallel.Threshold
	g.stepsPerUpdate = max(opts.StepsPerUpdate, 1)
	if g.workers <= 0 {
		g.workers = runtime.NumCPU()
	}

	gr, err := grid.New(g.width, g.height, g.cellSize)
	if err != nil {
		return nil, fmt.Errorf("creating grid: %w", err)
	}
	g.grid = gr
	g.view = ui.PanelState{ShowGrid: cfg.Grid.ShowLines, Rows: gr.Rows(), Cols: gr.Cols()}

	if g.dt > 0 && cfg.Telemetry.StatsWindow > 0 {
		g.statsEvery = int32(math.Max(1, math.Round(cfg.Telemetry.StatsWindow/cfg.Physics.DT)))
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	if !g.headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, g.width, g.height)
		g.canvas = renderer.NewCanvas(1)
		g.panel = ui.NewControlsPanel(g.screenWidth-panelInset, 16, 170)
		g.hud = ui.NewHUD()
	}

	g.spawnInitialPopulation(cfg.Population)
	g.rebuildGrid()

	slog.Info("grid created",
		"world_w", g.width,
		"world_h", g.height,
		"cell_size", g.cellSize,
		"rows", gr.Rows(),
		"cols", gr.Cols(),
		"entities", cfg.Population.Initial,
	)

	return g, nil
}

// spawnInitialPopulation scatters entities over the area the grid covers.
func (g *Game) spawnInitialPopulation(pop config.PopulationConfig) {
	coverW := float32(g.grid.Cols()) * g.grid.CellWidth()
	coverH := float32(g.grid.Rows()) * g.grid.CellHeight()
	if coverW == 0 || coverH == 0 {
		coverW, coverH = g.width, g.height
	}

	for i := 0; i < pop.Initial; i++ {
		x := g.rng.Float32() * coverW
		y := g.rng.Float32() * coverH
		speed := float32(pop.MinSpeed) + g.rng.Float32()*float32(pop.MaxSpeed-pop.MinSpeed)
		heading := g.rng.Float64() * 2 * math.Pi
		g.spawnEntity(x, y, speed*float32(math.Cos(heading)), speed*float32(math.Sin(heading)), float32(pop.Radius))
	}
}

// spawnEntity creates one moving disc.
func (g *Game) spawnEntity(x, y, vx, vy, radius float32) ecs.Entity {
	g.nextID++
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	body := components.Body{Radius: radius, Color: g.randomColor()}
	marker := components.Marker{ID: g.nextID}
	return g.entityMapper.NewEntity(&pos, &vel, &body, &marker)
}

func (g *Game) randomColor() color.RGBA {
	return color.RGBA{
		R: uint8(120 + g.rng.Intn(136)),
		G: uint8(120 + g.rng.Intn(136)),
		B: uint8(120 + g.rng.Intn(136)),
		A: 255,
	}
}

// Grid returns the partition built on the most recent tick.
func (g *Game) Grid() *grid.Grid {
	return g.grid
}

// OffGrid returns how many entities failed insertion on the most recent tick.
func (g *Game) OffGrid() int {
	return len(g.strays)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases resources.
func (g *Game) Unload() {
	slog.Info("simulation finished", "tick", g.tick, "off_grid", len(g.strays), "perf", g.perf.Stats())
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
