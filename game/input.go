package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.view.ShowGrid = !g.view.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	g.handleSelectionInput()
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
	g.panel.SetPosition(w-panelInset, 16)
}

// handleSelectionInput moves the selected cell with WASD or a left click.
func (g *Game) handleSelectionInput() {
	if rl.IsKeyPressed(rl.KeyW) {
		g.selectCell(g.view.Row-1, g.view.Col)
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.selectCell(g.view.Row+1, g.view.Col)
	}
	if rl.IsKeyPressed(rl.KeyA) {
		g.selectCell(g.view.Row, g.view.Col-1)
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.selectCell(g.view.Row, g.view.Col+1)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		// Clicks on the controls panel belong to raygui
		if g.panel.Contains(mouse.X, mouse.Y) {
			return
		}
		wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
		if row, col, err := g.grid.CellOf(wx, wy); err == nil {
			g.selectCell(row, col)
		}
	}
}

// selectCell sets the selected cell, ignoring indices outside the grid.
func (g *Game) selectCell(row, col int) {
	if row < 0 || row >= g.grid.Rows() || col < 0 || col >= g.grid.Cols() {
		return
	}
	g.view.Row, g.view.Col = row, col
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Right-drag pans
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
