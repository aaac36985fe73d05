package grid

// DrawGrid strokes one horizontal line per row and one vertical line per
// column, each spanning the full world.
func (g *Grid) DrawGrid(c Canvas) {
	c.SetStrokeColor(LineColor)

	for r := 0; r < g.rows; r++ {
		y := float32(r) * g.cellHeight
		c.DrawLine(0, y, g.width, y)
	}
	for col := 0; col < g.cols; col++ {
		x := float32(col) * g.cellWidth
		c.DrawLine(x, 0, x, g.height)
	}
}

// DrawCell draws every entity in the given cell in insertion order.
func (g *Grid) DrawCell(row, col int) error {
	if err := g.checkIndex(row, col); err != nil {
		return err
	}
	for _, e := range g.cells[row][col] {
		e.Draw()
	}
	return nil
}
