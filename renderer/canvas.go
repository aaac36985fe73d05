// Package renderer draws grid and entity primitives with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Canvas strokes lines onto the current raylib render target.
// Coordinates are world units; callers set up a Camera2D for screen mapping.
type Canvas struct {
	stroke    rl.Color
	thickness float32
}

// NewCanvas creates a canvas drawing lines of the given thickness.
func NewCanvas(thickness float32) *Canvas {
	if thickness <= 0 {
		thickness = 1
	}
	return &Canvas{stroke: rl.White, thickness: thickness}
}

// SetStrokeColor sets the color for subsequent lines.
func (c *Canvas) SetStrokeColor(col color.RGBA) {
	c.stroke = rl.Color(col)
}

// SetThickness changes the line width, e.g. to keep lines 1px under zoom.
func (c *Canvas) SetThickness(thickness float32) {
	if thickness > 0 {
		c.thickness = thickness
	}
}

// DrawLine strokes a line from (x1, y1) to (x2, y2).
func (c *Canvas) DrawLine(x1, y1, x2, y2 float32) {
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, c.thickness, c.stroke)
}
