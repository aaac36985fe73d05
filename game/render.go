package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridsim/renderer"
	"github.com/pthm-cable/gridsim/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(renderer.Background)

	rl.BeginMode2D(g.camera2D())
	if g.view.ShowGrid {
		// Keep lines one pixel wide regardless of zoom
		g.canvas.SetThickness(1 / g.camera.Zoom)
		g.grid.DrawGrid(g.canvas)
	}
	g.drawVisible()
	g.drawSelectedCell()
	rl.EndMode2D()

	g.drawHUD()
	if g.panel.Draw(&g.view) {
		slog.Debug("view changed", "show_grid", g.view.ShowGrid, "row", g.view.Row, "col", g.view.Col)
	}

	rl.EndDrawing()
}

// camera2D maps the game camera onto raylib's.
func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2},
		Target: rl.Vector2{X: g.camera.X, Y: g.camera.Y},
		Zoom:   g.camera.Zoom,
	}
}

// drawVisible draws entities in cells overlapping the viewport, plus strays.
func (g *Game) drawVisible() {
	minX, minY, maxX, maxY := g.camera.VisibleWorldBounds()
	// Entities near a cell edge can poke into view from a neighbor
	margin := g.grid.CellWidth()
	for _, e := range g.grid.Query(minX-margin, minY-margin, maxX+margin, maxY+margin) {
		e.Draw()
	}
	for _, i := range g.strays {
		g.balls[i].drawStray()
	}
}

// drawSelectedCell highlights the selected cell and redraws its contents on top.
func (g *Game) drawSelectedCell() {
	if g.grid.Rows() == 0 || g.grid.Cols() == 0 {
		return
	}
	cw, ch := g.grid.CellWidth(), g.grid.CellHeight()
	renderer.HighlightRect(float32(g.view.Col)*cw, float32(g.view.Row)*ch, cw, ch)

	if err := g.grid.DrawCell(g.view.Row, g.view.Col); err != nil {
		slog.Warn("drawing selected cell", "error", err)
	}
}

const controlsLegend = "G grid  Tab panel  WASD/click select  arrows pan  wheel zoom  Home reset  Space pause  ,/. speed"

// drawHUD renders status text in screen space.
func (g *Game) drawHUD() {
	data := ui.HUDData{
		Title:    "Spatial Grid",
		Tick:     g.tick,
		Speed:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Rows:     g.grid.Rows(),
		Cols:     g.grid.Cols(),
		CellSize: g.cellSize,
		Entities: g.grid.Len(),
		OffGrid:  len(g.strays),
	}
	if cell, err := g.grid.Cell(g.view.Row, g.view.Col); err == nil {
		data.HasCell = true
		data.SelRow, data.SelCol, data.SelCount = g.view.Row, g.view.Col, len(cell)
	}

	g.hud.Draw(data)
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}
