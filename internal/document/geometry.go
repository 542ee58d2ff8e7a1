package document

import "math"

const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
	DefaultMinSize      = 20
)

// Bounds describes the fixed canvas every element must stay inside.
type Bounds struct {
	Width   float64
	Height  float64
	MinSize float64
}

func DefaultBounds() Bounds {
	return Bounds{
		Width:   DefaultCanvasWidth,
		Height:  DefaultCanvasHeight,
		MinSize: DefaultMinSize,
	}
}

// Geometry is the axis-aligned box of an element in canvas units.
// Rotation is applied around the box center and is ignored by clamping.
type Geometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotate"`
}

func (g Geometry) Right() float64 { return g.X + g.W }
func (g Geometry) Bottom() float64 { return g.Y + g.H }

// Contains reports whether the point lies inside the box, edges included.
func (g Geometry) Contains(x, y float64) bool {
	return x >= g.X && x <= g.Right() && y >= g.Y && y <= g.Bottom()
}

// GeometryPatch is a partial geometry update. Nil fields are left alone.
type GeometryPatch struct {
	X        *float64
	Y        *float64
	W        *float64
	H        *float64
	Rotation *float64
}

func (p GeometryPatch) apply(g Geometry) Geometry {
	if p.X != nil {
		g.X = *p.X
	}
	if p.Y != nil {
		g.Y = *p.Y
	}
	if p.W != nil {
		g.W = *p.W
	}
	if p.H != nil {
		g.H = *p.H
	}
	if p.Rotation != nil {
		g.Rotation = *p.Rotation
	}
	return g
}

// PatchFrom builds a patch that sets every field of g.
func PatchFrom(g Geometry) GeometryPatch {
	return GeometryPatch{X: &g.X, Y: &g.Y, W: &g.W, H: &g.H, Rotation: &g.Rotation}
}

// Clamp pulls g back inside the bounds. Size is settled first so the
// position range is known, then position is pinned to the canvas.
func (b Bounds) Clamp(g Geometry) Geometry {
	g.W = clamp(g.W, b.MinSize, b.Width)
	g.H = clamp(g.H, b.MinSize, b.Height)
	g.X = clamp(g.X, 0, b.Width-g.W)
	g.Y = clamp(g.Y, 0, b.Height-g.H)
	if math.IsNaN(g.Rotation) || math.IsInf(g.Rotation, 0) {
		g.Rotation = 0
	}
	return g
}

// InBounds reports whether g already satisfies the canvas invariant.
func (b Bounds) InBounds(g Geometry) bool {
	return g.X >= 0 && g.Y >= 0 &&
		g.Right() <= b.Width && g.Bottom() <= b.Height &&
		g.W >= b.MinSize && g.H >= b.MinSize
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}
