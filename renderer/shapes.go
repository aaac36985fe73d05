package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Background is the clear color for the world view.
var Background = rl.Color{R: 12, G: 16, B: 28, A: 255}

// highlight fills the selected cell.
var highlight = rl.Color{R: 255, G: 200, B: 60, A: 40}

// DrawDisc draws a filled circle with a darker rim.
func DrawDisc(x, y, radius float32, col color.RGBA) {
	c := rl.Color(col)
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, c)
	rim := rl.Color{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
	rl.DrawCircleLines(int32(x), int32(y), radius, rim)
}

// HighlightRect fills a translucent rectangle and outlines it.
func HighlightRect(x, y, w, h float32) {
	rect := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	rl.DrawRectangleRec(rect, highlight)
	rl.DrawRectangleLinesEx(rect, 2, rl.Color{R: highlight.R, G: highlight.G, B: highlight.B, A: 200})
}
