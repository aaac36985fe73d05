// Package ui provides on-screen controls for the grid simulation.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelState is the view state the controls panel edits.
type PanelState struct {
	ShowGrid   bool
	Row, Col   int // Selected cell
	Rows, Cols int // Grid dimensions (read-only)
}

// panelRowH is the height of one panel row.
const panelRowH = 26

// ControlsPanel renders grid controls: a line toggle and cell selection sliders.
type ControlsPanel struct {
	x, y    float32
	width   float32
	visible bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width float32) *ControlsPanel {
	return &ControlsPanel{x: x, y: y, width: width, visible: true}
}

// SetPosition moves the panel, e.g. after a window resize.
func (c *ControlsPanel) SetPosition(x, y float32) {
	c.x, c.y = x, y
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	bx, by, bw, bh := c.bounds()
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

// bounds returns the panel background rectangle.
func (c *ControlsPanel) bounds() (x, y, w, h float32) {
	return c.x - 8, c.y - 8, c.width + 16, 4*panelRowH + 24
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and applies user edits to s.
// Returns true if anything changed.
func (c *ControlsPanel) Draw(s *PanelState) bool {
	if !c.visible {
		return false
	}

	changed := false
	const rowH = panelRowH
	y := c.y

	bx, by, bw, bh := c.bounds()
	rl.DrawRectangle(int32(bx), int32(by), int32(bw), int32(bh), rl.Color{R: 0, G: 0, B: 0, A: 160})
	rl.DrawText("Grid", int32(c.x), int32(y), 16, rl.White)
	y += rowH

	label := "Hide lines"
	if !s.ShowGrid {
		label = "Show lines"
	}
	if gui.Button(rl.Rectangle{X: c.x, Y: y, Width: c.width, Height: 20}, label) {
		s.ShowGrid = !s.ShowGrid
		changed = true
	}
	y += rowH

	if s.Rows > 0 && s.Cols > 0 {
		if row, ok := slider(c.x, y, c.width, "row", s.Row, s.Rows); ok {
			s.Row = row
			changed = true
		}
		y += rowH
		if col, ok := slider(c.x, y, c.width, "col", s.Col, s.Cols); ok {
			s.Col = col
			changed = true
		}
	} else {
		rl.DrawText("empty grid", int32(c.x), int32(y), 14, rl.Gray)
	}

	return changed
}

// slider draws an integer slider over [0, n) and reports a changed value.
func slider(x, y, width float32, name string, value, n int) (int, bool) {
	bounds := rl.Rectangle{X: x + 30, Y: y, Width: width - 70, Height: 20}
	v := gui.SliderBar(bounds, name, fmt.Sprintf("%d", value), float32(value), 0, float32(n-1))
	next := int(v + 0.5)
	if next < 0 {
		next = 0
	} else if next >= n {
		next = n - 1
	}
	return next, next != value
}
