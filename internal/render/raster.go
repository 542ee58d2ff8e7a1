package render

import (
	"math"
	"strings"

	"liteedit/internal/document"
	"liteedit/internal/interaction"
)

// Scale maps canvas units onto terminal cells.
type Scale struct {
	CellW float64
	CellH float64
}

// Cells is the grid size that covers a canvas of w by h units.
func (s Scale) Cells(w, h float64) (cols, rows int) {
	return int(math.Ceil(w / s.CellW)), int(math.Ceil(h / s.CellH))
}

// ToCanvas is the canvas point at the center of a cell.
func (s Scale) ToCanvas(col, row int) interaction.Point {
	return interaction.Point{
		X: float64(col)*s.CellW + s.CellW/2,
		Y: float64(row)*s.CellH + s.CellH/2,
	}
}

// ToCell is the cell holding a canvas point.
func (s Scale) ToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / s.CellW)), int(math.Floor(y / s.CellH))
}

// span is the inclusive cell range covered by [lo, lo+size).
func span(lo, size, cell float64) (int, int) {
	first := int(math.Floor(lo / cell))
	last := int(math.Ceil((lo+size)/cell)) - 1
	if last < first {
		last = first
	}
	return first, last
}

const (
	runeCorner     = '+'
	runeHorizontal = '-'
	runeVertical   = '|'
	runeSelected   = '#'
	runeHandle     = '■'
)

// Raster is a tree painted onto a character grid. Owner holds the index of
// the node in Tree.Nodes that last painted a cell, or -1.
type Raster struct {
	Cols  int
	Rows  int
	Cells [][]rune
	Owner [][]int
}

// Rasterize paints t in paint order so later nodes cover earlier ones.
// Rotation is not drawn on the grid.
func Rasterize(t Tree, s Scale) Raster {
	cols, rows := s.Cells(t.Width, t.Height)
	cols, rows = max(cols, 1), max(rows, 1)

	r := Raster{
		Cols:  cols,
		Rows:  rows,
		Cells: make([][]rune, rows),
		Owner: make([][]int, rows),
	}
	for y := range rows {
		r.Cells[y] = make([]rune, cols)
		r.Owner[y] = make([]int, cols)
		for x := range cols {
			r.Cells[y][x] = ' '
			r.Owner[y][x] = -1
		}
	}

	for i, n := range t.Nodes {
		if n.Kind == document.KindText {
			r.drawText(i, n, s)
		} else {
			r.drawBox(i, n, s)
		}
		r.drawHandles(i, n, s)
	}
	return r
}

func (r *Raster) set(x, y int, ch rune, owner int) {
	if y < 0 || y >= r.Rows || x < 0 || x >= r.Cols {
		return
	}
	r.Cells[y][x] = ch
	r.Owner[y][x] = owner
}

func (r *Raster) drawBox(owner int, n Node, s Scale) {
	x0, x1 := span(n.Geometry.X, n.Geometry.W, s.CellW)
	y0, y1 := span(n.Geometry.Y, n.Geometry.H, s.CellH)

	corner, horizontal, vertical := runeCorner, runeHorizontal, runeVertical
	if n.Selected {
		corner, horizontal, vertical = runeSelected, runeSelected, runeSelected
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := ' '
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				ch = corner
			case y == y0 || y == y1:
				ch = horizontal
			case x == x0 || x == x1:
				ch = vertical
			}
			r.set(x, y, ch, owner)
		}
	}
}

// drawHandles marks the corner cells of the node's cell box, which is where
// a press grabs the matching handle.
func (r *Raster) drawHandles(owner int, n Node, s Scale) {
	x0, x1 := span(n.Geometry.X, n.Geometry.W, s.CellW)
	y0, y1 := span(n.Geometry.Y, n.Geometry.H, s.CellH)
	for _, h := range n.Handles {
		x, y := x0, y0
		switch h.Handle {
		case interaction.TopRight:
			x = x1
		case interaction.BottomLeft:
			y = y1
		case interaction.BottomRight:
			x, y = x1, y1
		}
		r.set(x, y, runeHandle, owner)
	}
}

// drawText centres the node's lines in its cell box, clipped to the box.
// A node with handles keeps its outer columns for the handle cells.
func (r *Raster) drawText(owner int, n Node, s Scale) {
	x0, x1 := span(n.Geometry.X, n.Geometry.W, s.CellW)
	y0, y1 := span(n.Geometry.Y, n.Geometry.H, s.CellH)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, ' ', owner)
		}
	}
	if len(n.Handles) > 0 && x1-x0 >= 2 {
		x0, x1 = x0+1, x1-1
	}

	width, height := x1-x0+1, y1-y0+1
	lines := strings.Split(n.Text, "\n")
	top := y0 + max(height-len(lines), 0)/2
	for i, line := range lines {
		y := top + i
		if y > y1 {
			break
		}
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}
		left := x0 + (width-len(runes))/2
		for j, ch := range runes {
			r.set(left+j, y, ch, owner)
		}
	}
}

// Lines returns the grid rows with trailing blanks removed.
func (r Raster) Lines() []string {
	lines := make([]string, r.Rows)
	for y, row := range r.Cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return lines
}
