package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// Rect is an axis-aligned box given by its center and half extents.
type Rect struct {
	Center   cp.Vector `yaml:"center"`
	HalfSize cp.Vector `yaml:"half_size"`
}

// NewRect builds a rect from its top-left corner and full size.
func NewRect(x, y, w, h float64) Rect {
	half := cp.Vector{X: w / 2, Y: h / 2}
	return Rect{Center: cp.Vector{X: x + half.X, Y: y + half.Y}, HalfSize: half}
}

// Min returns the top-left corner (y grows downward).
func (r Rect) Min() cp.Vector {
	return r.Center.Sub(r.HalfSize)
}

// Max returns the bottom-right corner.
func (r Rect) Max() cp.Vector {
	return r.Center.Add(r.HalfSize)
}

func (r Rect) Bounds() cp.BB {
	return cp.NewBBForExtents(r.Center, r.HalfSize.X, r.HalfSize.Y)
}

type Circle struct {
	Center cp.Vector `yaml:"center"`
	Radius float64   `yaml:"radius"`
}

func (c Circle) Bounds() cp.BB {
	return cp.NewBBForCircle(c.Center, c.Radius)
}

// RectFromBB converts a chipmunk bounding box back into a center/half-size rect.
func RectFromBB(bb cp.BB) Rect {
	half := cp.Vector{X: (bb.R - bb.L) / 2, Y: (bb.T - bb.B) / 2}
	return Rect{Center: cp.Vector{X: bb.L + half.X, Y: bb.B + half.Y}, HalfSize: half}
}

// RectUnion returns the smallest rect containing both inputs.
func RectUnion(a, b Rect) Rect {
	return RectFromBB(a.Bounds().Merge(b.Bounds()))
}

func NearestRectPoint(r Rect, p cp.Vector) cp.Vector {
	return common.ClampVector(p, r.Min(), r.Max())
}

// NearestCirclePoint projects p onto the circle outline. A point at the center
// has no defined direction and maps to the center itself.
func NearestCirclePoint(c Circle, p cp.Vector) cp.Vector {
	return common.Normalize(p.Sub(c.Center)).Mult(c.Radius).Add(c.Center)
}

func IsPointInRect(p cp.Vector, r Rect) bool {
	return math.Abs(p.X-r.Center.X) <= r.HalfSize.X &&
		math.Abs(p.Y-r.Center.Y) <= r.HalfSize.Y
}

// IsRectsIntersect tests interval overlap on both axes. Touching edges count.
func IsRectsIntersect(a, b Rect) bool {
	return math.Abs(a.Center.X-b.Center.X) <= a.HalfSize.X+b.HalfSize.X &&
		math.Abs(a.Center.Y-b.Center.Y) <= a.HalfSize.Y+b.HalfSize.Y
}

func IsPointInCircle(p cp.Vector, c Circle) bool {
	return distSq(p, c.Center) <= c.Radius*c.Radius
}

func IsCirclesIntersect(a, b Circle) bool {
	sum := a.Radius + b.Radius
	return distSq(a.Center, b.Center) <= sum*sum
}

func IsCircleRectIntersect(c Circle, r Rect) bool {
	return IsPointInCircle(NearestRectPoint(r, c.Center), c)
}

func distSq(a, b cp.Vector) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
