package interaction

import (
	"math"

	"liteedit/internal/document"
)

// Handle is one of the four corner affordances of the selected element.
type Handle int

const (
	TopLeft Handle = iota
	TopRight
	BottomLeft
	BottomRight
)

// Handles lists every handle in paint order.
var Handles = [...]Handle{TopLeft, TopRight, BottomLeft, BottomRight}

func (h Handle) String() string {
	switch h {
	case TopLeft:
		return "tl"
	case TopRight:
		return "tr"
	case BottomLeft:
		return "bl"
	case BottomRight:
		return "br"
	}
	return "unknown"
}

// Corner returns the canvas position of the handle on g.
func (h Handle) Corner(g document.Geometry) Point {
	switch h {
	case TopRight:
		return Point{X: g.Right(), Y: g.Y}
	case BottomLeft:
		return Point{X: g.X, Y: g.Bottom()}
	case BottomRight:
		return Point{X: g.Right(), Y: g.Bottom()}
	}
	return Point{X: g.X, Y: g.Y}
}

// Reach is how far from a corner, in canvas units per axis, a press still
// grabs the handle.
type Reach struct {
	X, Y float64
}

// HandleAt finds the handle of g whose corner lies within reach of p on both
// axes. When corners overlap on a small element the nearest one wins.
func HandleAt(g document.Geometry, p Point, reach Reach) (Handle, bool) {
	best, found := TopLeft, false
	bestDist := math.Inf(1)
	for _, h := range Handles {
		c := h.Corner(g)
		dx, dy := math.Abs(p.X-c.X), math.Abs(p.Y-c.Y)
		if dx > reach.X || dy > reach.Y {
			continue
		}
		if d := math.Hypot(dx, dy); d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, found
}

// Resize derives the geometry for a resize session from its start geometry
// and the pointer delta. The far edge is bounded by the canvas on the axes
// that grow away from the origin; the result is then clamped to the full
// bounds so every edge stays on the canvas for every handle.
func Resize(h Handle, start document.Geometry, dx, dy float64, b document.Bounds) document.Geometry {
	g := start
	switch h {
	case BottomRight:
		g.W = clampRange(start.W+dx, b.MinSize, b.Width-start.X)
		g.H = clampRange(start.H+dy, b.MinSize, b.Height-start.Y)
	case TopLeft:
		g.W = math.Max(b.MinSize, start.W-dx)
		g.H = math.Max(b.MinSize, start.H-dy)
		g.X = math.Max(0, start.X+dx)
		g.Y = math.Max(0, start.Y+dy)
	case TopRight:
		g.W = clampRange(start.W+dx, b.MinSize, b.Width-start.X)
		g.H = math.Max(b.MinSize, start.H-dy)
		g.Y = math.Max(0, start.Y+dy)
	case BottomLeft:
		g.W = math.Max(b.MinSize, start.W-dx)
		g.H = clampRange(start.H+dy, b.MinSize, b.Height-start.Y)
		g.X = math.Max(0, start.X+dx)
	}
	return b.Clamp(g)
}

// Drag moves start by the pointer delta, pinned inside the canvas.
func Drag(start document.Geometry, dx, dy float64, b document.Bounds) document.Geometry {
	g := start
	g.X = clampRange(start.X+dx, 0, b.Width-start.W)
	g.Y = clampRange(start.Y+dy, 0, b.Height-start.H)
	return b.Clamp(g)
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
