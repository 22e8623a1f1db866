package physics

import "github.com/jakecoffman/cp"

type (
	sweepFunc   func(query, target Shape, dir cp.Vector) (HitResult, bool)
	overlapFunc func(a, b Shape) bool
)

// sweepTable[query][target] moves query along dir against the stationary target.
var sweepTable = [shapeKindCount][shapeKindCount]sweepFunc{
	ShapeRect: {
		ShapeRect: func(q, t Shape, dir cp.Vector) (HitResult, bool) {
			return SweepRects(q.rect, t.rect, dir)
		},
		ShapeCircle: sweepRectCircle,
	},
	ShapeCircle: {
		ShapeRect: func(q, t Shape, dir cp.Vector) (HitResult, bool) {
			return SweepCircleRect(q.circle, t.rect, dir)
		},
		ShapeCircle: func(q, t Shape, dir cp.Vector) (HitResult, bool) {
			return SweepCircles(q.circle, t.circle, dir)
		},
	},
}

// sweepRectCircle runs the circle against the rect in the opposite direction
// and flips the normal back into the frame of the moving rect.
func sweepRectCircle(q, t Shape, dir cp.Vector) (HitResult, bool) {
	hit, ok := SweepCircleRect(t.circle, q.rect, dir.Neg())
	if !ok || hit.InitialOverlap {
		return hit, ok
	}
	hit.Normal = hit.Normal.Neg()
	hit.Flags = hitTypeFromNormal(hit.Normal)
	return hit, true
}

var overlapTable = [shapeKindCount][shapeKindCount]overlapFunc{
	ShapeRect: {
		ShapeRect: func(a, b Shape) bool { return IsRectsIntersect(a.rect, b.rect) },
		ShapeCircle: func(a, b Shape) bool {
			return IsCircleRectIntersect(b.circle, a.rect)
		},
	},
	ShapeCircle: {
		ShapeRect: func(a, b Shape) bool {
			return IsCircleRectIntersect(a.circle, b.rect)
		},
		ShapeCircle: func(a, b Shape) bool { return IsCirclesIntersect(a.circle, b.circle) },
	},
}

// SweepShapes sweeps query along dir against target, dispatching on the shape kinds.
func SweepShapes(query, target Shape, dir cp.Vector) (HitResult, bool) {
	return sweepTable[query.kind][target.kind](query, target, dir)
}
