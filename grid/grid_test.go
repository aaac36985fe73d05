package grid

import (
	"errors"
	"image/color"
	"math"
	"sync"
	"testing"
)

// marker is a test entity that records draws into a shared log.
type marker struct {
	name string
	x, y float32
	log  *[]string
}

func (m *marker) Center() (float32, float32) { return m.x, m.y }

func (m *marker) Draw() {
	if m.log != nil {
		*m.log = append(*m.log, m.name)
	}
}

type line struct {
	X1, Y1, X2, Y2 float32
}

// recorder is a Canvas that keeps every stroke.
type recorder struct {
	colors []color.RGBA
	lines  []line
}

func (r *recorder) SetStrokeColor(c color.RGBA) { r.colors = append(r.colors, c) }

func (r *recorder) DrawLine(x1, y1, x2, y2 float32) {
	r.lines = append(r.lines, line{x1, y1, x2, y2})
}

func TestNew_Dimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, cell float32
		wantCols   int
		wantRows   int
	}{
		{"exact", 400, 300, 100, 4, 3},
		{"remainder", 450, 399, 100, 4, 3},
		{"default cell", 1280, 720, DefaultCellSize, 12, 7},
		{"cell larger than world", 50, 50, 100, 0, 0},
		{"zero world", 0, 0, 100, 0, 0},
		{"fractional cell", 10, 5, 2.5, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h, tt.cell)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if g.Cols() != tt.wantCols || g.Rows() != tt.wantRows {
				t.Errorf("got %dx%d (cols x rows), want %dx%d", g.Cols(), g.Rows(), tt.wantCols, tt.wantRows)
			}
			counts := g.Counts()
			if len(counts) != tt.wantCols*tt.wantRows {
				t.Errorf("cell count = %d, want %d", len(counts), tt.wantCols*tt.wantRows)
			}
			for i, n := range counts {
				if n != 0 {
					t.Errorf("cell %d not empty: %d", i, n)
				}
			}
		})
	}
}

func TestNew_InvalidConfiguration(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		name       string
		w, h, cell float32
	}{
		{"zero cell", 400, 300, 0},
		{"negative cell", 400, 300, -10},
		{"nan cell", 400, 300, nan},
		{"inf cell", 400, 300, inf},
		{"negative width", -1, 300, 100},
		{"nan height", 400, nan, 100},
		{"tiny cell in huge world", 3e38, 1e30, 1e-10},
		{"tiny cell on screen world", 1280, 720, 1e-7},
		{"too many rows in a zero-width world", 0, 1e9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h, tt.cell)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
			if g != nil {
				t.Error("expected nil grid on error")
			}
		})
	}
}

func TestNew_AtCellLimit(t *testing.T) {
	// 4096 x 4096 = MaxCells exactly
	g, err := New(4096, 4096, 1)
	if err != nil {
		t.Fatalf("New at limit: %v", err)
	}
	if g.Rows()*g.Cols() != MaxCells {
		t.Errorf("cells = %d, want %d", g.Rows()*g.Cols(), MaxCells)
	}
}

func TestAdd_Scenario(t *testing.T) {
	g, err := New(400, 300, 100)
	if err != nil {
		t.Fatal(err)
	}

	var drawn []string
	a := &marker{name: "A", x: 150, y: 250, log: &drawn}
	b := &marker{name: "B", x: 399, y: 0, log: &drawn}

	if err := g.Add(a); err != nil {
		t.Fatalf("Add(A): %v", err)
	}
	if err := g.Add(b); err != nil {
		t.Fatalf("Add(B): %v", err)
	}

	cell, _ := g.Cell(2, 1)
	if len(cell) != 1 || cell[0] != a {
		t.Errorf("cell[2][1] = %v, want [A]", cell)
	}
	cell, _ = g.Cell(0, 3)
	if len(cell) != 1 || cell[0] != b {
		t.Errorf("cell[0][3] = %v, want [B]", cell)
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}

	checks := []struct {
		row, col int
		want     []string
	}{
		{2, 1, []string{"A"}},
		{0, 3, []string{"B"}},
		{0, 0, nil},
	}
	for _, c := range checks {
		drawn = drawn[:0]
		if err := g.DrawCell(c.row, c.col); err != nil {
			t.Fatalf("DrawCell(%d, %d): %v", c.row, c.col, err)
		}
		if len(drawn) != len(c.want) {
			t.Errorf("DrawCell(%d, %d) drew %v, want %v", c.row, c.col, drawn, c.want)
			continue
		}
		for i := range drawn {
			if drawn[i] != c.want[i] {
				t.Errorf("DrawCell(%d, %d) drew %v, want %v", c.row, c.col, drawn, c.want)
			}
		}
	}
}

func TestAdd_CellBoundaries(t *testing.T) {
	g, _ := New(400, 300, 100)

	tests := []struct {
		x, y     float32
		row, col int
	}{
		{0, 0, 0, 0},
		{99.999, 99.999, 0, 0},
		{100, 100, 1, 1},
		{399.5, 299.5, 2, 3},
	}
	for _, tt := range tests {
		m := &marker{x: tt.x, y: tt.y}
		if err := g.Add(m); err != nil {
			t.Fatalf("Add(%v, %v): %v", tt.x, tt.y, err)
		}
		cell, _ := g.Cell(tt.row, tt.col)
		if len(cell) == 0 || cell[len(cell)-1] != m {
			t.Errorf("(%v, %v) not found in cell [%d][%d]", tt.x, tt.y, tt.row, tt.col)
		}
	}

	// Each entity lives in exactly one cell.
	total := 0
	for _, n := range g.Counts() {
		total += n
	}
	if total != len(tests) {
		t.Errorf("total stored = %d, want %d", total, len(tests))
	}
}

func TestAdd_OutOfBounds(t *testing.T) {
	g, _ := New(400, 300, 100)
	if err := g.Add(&marker{x: 10, y: 10}); err != nil {
		t.Fatal(err)
	}

	nan := float32(math.NaN())
	points := []struct {
		name string
		x, y float32
	}{
		{"right edge", 400, 10},
		{"bottom edge", 10, 300},
		{"negative x", -0.5, 10},
		{"negative y", 10, -200},
		{"far away", 1e9, 1e9},
		{"nan", nan, 10},
	}

	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			err := g.Add(&marker{x: p.x, y: p.y})
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("err = %v, want ErrOutOfBounds", err)
			}
			if g.Len() != 1 {
				t.Errorf("Len = %d after failed insert, want 1", g.Len())
			}
		})
	}
}

func TestAdd_EmptyGrid(t *testing.T) {
	g, _ := New(0, 0, 100)
	if err := g.Add(&marker{}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
	if err := g.DrawCell(0, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("DrawCell err = %v, want ErrOutOfBounds", err)
	}
	if got := g.Query(0, 0, 100, 100); got != nil {
		t.Errorf("Query on empty grid = %v, want nil", got)
	}
}

func TestAdd_PreservesOrderAndDuplicates(t *testing.T) {
	g, _ := New(400, 300, 100)

	var drawn []string
	names := []string{"a", "b", "c", "d", "e"}
	for i, n := range names {
		m := &marker{name: n, x: 110 + float32(i), y: 120, log: &drawn}
		if err := g.Add(m); err != nil {
			t.Fatal(err)
		}
	}
	dup := &marker{name: "a2", x: 150, y: 150, log: &drawn}
	g.Add(dup)
	g.Add(dup)

	if err := g.DrawCell(1, 1); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d", "e", "a2", "a2"}
	if len(drawn) != len(want) {
		t.Fatalf("drew %v, want %v", drawn, want)
	}
	for i := range want {
		if drawn[i] != want[i] {
			t.Errorf("draw[%d] = %s, want %s", i, drawn[i], want[i])
		}
	}
}

func TestDrawCell_OutOfBounds(t *testing.T) {
	g, _ := New(400, 300, 100)

	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {5, 1}} {
		if err := g.DrawCell(idx[0], idx[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("DrawCell(%d, %d) err = %v, want ErrOutOfBounds", idx[0], idx[1], err)
		}
		if _, err := g.Cell(idx[0], idx[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Cell(%d, %d) err = %v, want ErrOutOfBounds", idx[0], idx[1], err)
		}
	}
}

func TestDrawGrid_Lines(t *testing.T) {
	g, _ := New(400, 300, 100)
	rec := &recorder{}

	g.DrawGrid(rec)

	if len(rec.colors) != 1 || rec.colors[0] != LineColor {
		t.Errorf("stroke colors = %v, want [%v]", rec.colors, LineColor)
	}
	if LineColor.A != 100 {
		t.Errorf("line alpha = %d, want 100", LineColor.A)
	}

	want := []line{
		{0, 0, 400, 0},
		{0, 100, 400, 100},
		{0, 200, 400, 200},
		{0, 0, 0, 300},
		{100, 0, 100, 300},
		{200, 0, 200, 300},
		{300, 0, 300, 300},
	}
	if len(rec.lines) != len(want) {
		t.Fatalf("drew %d lines, want %d: %v", len(rec.lines), len(want), rec.lines)
	}
	for i := range want {
		if rec.lines[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, rec.lines[i], want[i])
		}
	}
}

func TestDrawGrid_Empty(t *testing.T) {
	g, _ := New(0, 0, 100)
	rec := &recorder{}
	g.DrawGrid(rec)
	if len(rec.lines) != 0 {
		t.Errorf("drew %d lines on empty grid", len(rec.lines))
	}
}

func TestCell_ReturnsCopy(t *testing.T) {
	g, _ := New(400, 300, 100)
	m := &marker{x: 10, y: 10}
	g.Add(m)

	cell, _ := g.Cell(0, 0)
	cell[0] = nil

	again, _ := g.Cell(0, 0)
	if again[0] != m {
		t.Error("mutating Cell result changed the grid")
	}
}

func TestQuery(t *testing.T) {
	g, _ := New(400, 300, 100)
	a := &marker{name: "a", x: 50, y: 50}
	b := &marker{name: "b", x: 150, y: 50}
	c := &marker{name: "c", x: 350, y: 250}
	for _, m := range []*marker{a, b, c} {
		g.Add(m)
	}

	tests := []struct {
		name                   string
		minX, minY, maxX, maxY float32
		want                   []*marker
	}{
		{"single cell", 10, 10, 20, 20, []*marker{a}},
		{"top row", 0, 0, 399, 99, []*marker{a, b}},
		{"whole world", 0, 0, 400, 300, []*marker{a, b, c}},
		{"clipped outside", -1000, -1000, 5000, 5000, []*marker{a, b, c}},
		{"bottom right", 300, 200, 399, 299, []*marker{c}},
		{"inverted", 100, 100, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Query(tt.minX, tt.minY, tt.maxX, tt.maxY)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entities, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("result[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSynced_ConcurrentAdd(t *testing.T) {
	g, _ := New(400, 300, 100)
	s := NewSynced(g)

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				// All workers hammer the same cell
				if err := s.Add(&marker{x: 42, y: 42}); err != nil {
					t.Errorf("worker %d: %v", w, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if s.Unwrap() != g {
		t.Fatal("Unwrap returned a different grid")
	}
	cell, _ := g.Cell(0, 0)
	if len(cell) != workers*perWorker {
		t.Errorf("cell[0][0] has %d entities, want %d", len(cell), workers*perWorker)
	}
}
