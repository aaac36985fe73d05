package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Tick       int32
	Speed      int
	FPS        int32
	Paused     bool
	Rows, Cols int
	CellSize   float32
	Entities   int // Stored in the grid
	OffGrid    int // Rejected as out of bounds
	HasCell    bool
	SelRow     int
	SelCol     int
	SelCount   int
}

// Lines returns the HUD text, top to bottom.
func (d HUDData) Lines() []string {
	lines := []string{
		fmt.Sprintf("Grid %dx%d | cell %.0f | entities %d | off-grid %d",
			d.Cols, d.Rows, d.CellSize, d.Entities, d.OffGrid),
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", d.Tick, d.Speed, d.FPS),
	}
	if d.HasCell {
		lines = append(lines, fmt.Sprintf("Selected [%d][%d]: %d", d.SelRow, d.SelCol, d.SelCount))
	} else {
		lines = append(lines, "No cells")
	}
	return lines
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	y := int32(35)
	for _, line := range data.Lines() {
		rl.DrawText(line, 10, y, 16, rl.LightGray)
		y += 20
	}

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, y, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
