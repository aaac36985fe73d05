// Package grid provides a uniform spatial partition of a bounded 2D world.
package grid

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// DefaultCellSize is the cell edge length used when none is configured.
const DefaultCellSize = 100

// MaxCells caps rows*cols so a tiny cell size cannot exhaust memory.
const MaxCells = 1 << 24

var (
	// ErrConfiguration is returned for a non-positive cell size or invalid world size.
	ErrConfiguration = errors.New("grid: invalid configuration")
	// ErrOutOfBounds is returned when a position or cell index falls outside the grid.
	ErrOutOfBounds = errors.New("grid: out of bounds")
)

// LineColor is the stroke used for grid boundary lines (translucent white).
var LineColor = color.RGBA{R: 255, G: 255, B: 255, A: 100}

// Entity is anything the grid can partition: it has a center point and can draw itself.
type Entity interface {
	Center() (x, y float32)
	Draw()
}

// Canvas is the drawing capability used for boundary rendering.
type Canvas interface {
	SetStrokeColor(c color.RGBA)
	DrawLine(x1, y1, x2, y2 float32)
}

// Grid partitions the world into rows x cols equal cells.
// Each cell holds entity references in insertion order.
type Grid struct {
	cellWidth  float32
	cellHeight float32
	cols       int
	rows       int
	width      float32
	height     float32
	cells      [][][]Entity // [row][col]
}

// New creates a grid covering a width x height world with square cells.
// Partial cells at the right and bottom edges are not covered.
func New(width, height, cellSize float32) (*Grid, error) {
	if !(cellSize > 0) || math.IsInf(float64(cellSize), 0) {
		return nil, fmt.Errorf("%w: cell size %v must be positive", ErrConfiguration, cellSize)
	}
	if !(width >= 0) || !(height >= 0) || math.IsInf(float64(width), 0) || math.IsInf(float64(height), 0) {
		return nil, fmt.Errorf("%w: world size %vx%v", ErrConfiguration, width, height)
	}

	fc := math.Floor(float64(width) / float64(cellSize))
	fr := math.Floor(float64(height) / float64(cellSize))
	// Each axis is checked alone too: rows of zero-width still cost a slice each
	if fc > MaxCells || fr > MaxCells || fc*fr > MaxCells {
		return nil, fmt.Errorf("%w: %vx%v cells of size %v exceeds %d cells", ErrConfiguration, fc, fr, cellSize, MaxCells)
	}
	cols := int(fc)
	rows := int(fr)

	cells := make([][][]Entity, rows)
	for r := range cells {
		cells[r] = make([][]Entity, cols)
	}

	return &Grid{
		cellWidth:  cellSize,
		cellHeight: cellSize,
		cols:       cols,
		rows:       rows,
		width:      width,
		height:     height,
		cells:      cells,
	}, nil
}

// Rows returns the number of cell rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of cell columns.
func (g *Grid) Cols() int { return g.cols }

// CellWidth returns the horizontal cell size.
func (g *Grid) CellWidth() float32 { return g.cellWidth }

// CellHeight returns the vertical cell size.
func (g *Grid) CellHeight() float32 { return g.cellHeight }

// WorldWidth returns the world width the grid was built for.
func (g *Grid) WorldWidth() float32 { return g.width }

// WorldHeight returns the world height the grid was built for.
func (g *Grid) WorldHeight() float32 { return g.height }

// CellOf returns the cell containing the point (x, y).
func (g *Grid) CellOf(x, y float32) (row, col int, err error) {
	fc := math.Floor(float64(x) / float64(g.cellWidth))
	fr := math.Floor(float64(y) / float64(g.cellHeight))

	// NaN fails both comparisons
	if !(fc >= 0 && fc < float64(g.cols)) || !(fr >= 0 && fr < float64(g.rows)) {
		return 0, 0, fmt.Errorf("%w: point (%v, %v) outside %dx%d grid", ErrOutOfBounds, x, y, g.rows, g.cols)
	}
	return int(fr), int(fc), nil
}

// Add appends e to the cell containing its center.
// Fails with ErrOutOfBounds, leaving the grid unchanged, if the center is not covered.
func (g *Grid) Add(e Entity) error {
	x, y := e.Center()
	row, col, err := g.CellOf(x, y)
	if err != nil {
		return err
	}
	g.cells[row][col] = append(g.cells[row][col], e)
	return nil
}

func (g *Grid) checkIndex(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return fmt.Errorf("%w: cell [%d][%d] outside %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return nil
}

// Cell returns a copy of the entities stored in the given cell.
func (g *Grid) Cell(row, col int) ([]Entity, error) {
	if err := g.checkIndex(row, col); err != nil {
		return nil, err
	}
	bucket := g.cells[row][col]
	out := make([]Entity, len(bucket))
	copy(out, bucket)
	return out, nil
}

// Len returns the total number of stored references.
func (g *Grid) Len() int {
	n := 0
	for _, row := range g.cells {
		for _, bucket := range row {
			n += len(bucket)
		}
	}
	return n
}

// Counts returns the number of entities per cell in row-major order.
func (g *Grid) Counts() []int {
	counts := make([]int, 0, g.rows*g.cols)
	for _, row := range g.cells {
		for _, bucket := range row {
			counts = append(counts, len(bucket))
		}
	}
	return counts
}

// Query returns the entities of every cell overlapping the rectangle
// [minX, maxX] x [minY, maxY], clipped to the grid.
// Results are ordered by row, then column, then insertion.
func (g *Grid) Query(minX, minY, maxX, maxY float32) []Entity {
	if g.rows == 0 || g.cols == 0 || maxX < minX || maxY < minY {
		return nil
	}

	c0 := clampIndex(math.Floor(float64(minX)/float64(g.cellWidth)), g.cols)
	c1 := clampIndex(math.Floor(float64(maxX)/float64(g.cellWidth)), g.cols)
	r0 := clampIndex(math.Floor(float64(minY)/float64(g.cellHeight)), g.rows)
	r1 := clampIndex(math.Floor(float64(maxY)/float64(g.cellHeight)), g.rows)

	var result []Entity
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			result = append(result, g.cells[r][c]...)
		}
	}
	return result
}

// clampIndex restricts a floored coordinate to [0, n).
func clampIndex(f float64, n int) int {
	if !(f >= 0) {
		return 0
	}
	if f >= float64(n) {
		return n - 1
	}
	return int(f)
}
