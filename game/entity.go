package game

import (
	"image/color"

	"github.com/pthm-cable/gridsim/renderer"
)

// ball is a per-tick snapshot of an ECS entity, stored in the grid.
// The grid sees the position captured at rebuild time.
type ball struct {
	id     uint32
	x, y   float32
	radius float32
	color  color.RGBA
}

// Center returns the snapshot position.
func (b *ball) Center() (float32, float32) {
	return b.x, b.y
}

// Draw renders the ball in world coordinates.
func (b *ball) Draw() {
	renderer.DrawDisc(b.x, b.y, b.radius, b.color)
}

// drawStray renders a ball outside the grid in a muted color.
func (b *ball) drawStray() {
	renderer.DrawDisc(b.x, b.y, b.radius, color.RGBA{R: 110, G: 110, B: 120, A: 180})
}
