package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

const parallelEpsilon = 1e-12

// RayIntersect solves p1 + d1*t1 == p2 + d2*t2. It returns false when the rays
// are parallel or one of the directions is zero.
func RayIntersect(p1, d1, p2, d2 cp.Vector) (t1, t2 float64, ok bool) {
	delta := d1.Cross(d2.Neg())
	if math.Abs(delta) <= parallelEpsilon {
		return 0, 0, false
	}
	diff := p2.Sub(p1)
	t1 = diff.Cross(d2.Neg()) / delta
	t2 = d1.Cross(diff) / delta
	return t1, t2, true
}

// slab returns the parametric interval in which origin+d*t lies within [lo, hi].
func slab(origin, d, lo, hi float64) (entry, exit float64, ok bool) {
	if d == 0 {
		if origin < lo || origin > hi {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	entry = (lo - origin) / d
	exit = (hi - origin) / d
	if entry > exit {
		entry, exit = exit, entry
	}
	return entry, exit, true
}

// RaycastRect casts a ray from p along dir against r using slab tests.
// A start point inside r reports an initial overlap at T == 0.
func RaycastRect(p, dir cp.Vector, r Rect) (HitResult, bool) {
	if IsPointInRect(p, r) {
		return HitResult{InitialOverlap: true}, true
	}

	lo, hi := r.Min(), r.Max()
	entryX, exitX, ok := slab(p.X, dir.X, lo.X, hi.X)
	if !ok {
		return HitResult{}, false
	}
	entryY, exitY, ok := slab(p.Y, dir.Y, lo.Y, hi.Y)
	if !ok {
		return HitResult{}, false
	}

	entry := math.Max(entryX, entryY)
	exit := math.Min(exitX, exitY)
	if entry > exit || entry < 0 {
		return HitResult{}, false
	}

	hit := HitResult{T: entry}
	xFlags, xNormal := xFace(dir.X)
	yFlags, yNormal := yFace(dir.Y)
	switch {
	case entryX > entryY:
		hit.Flags, hit.Normal = xFlags, xNormal
	case entryY > entryX:
		hit.Flags, hit.Normal = yFlags, yNormal
	default:
		// exact corner: both sides, x normal wins
		hit.Flags, hit.Normal = xFlags|yFlags, xNormal
	}
	return hit, true
}

func xFace(dx float64) (HitType, cp.Vector) {
	if dx > 0 {
		return HitLeft, cp.Vector{X: -1}
	}
	return HitRight, cp.Vector{X: 1}
}

func yFace(dy float64) (HitType, cp.Vector) {
	if dy > 0 {
		return HitTop, cp.Vector{Y: -1}
	}
	return HitBottom, cp.Vector{Y: 1}
}

// RaycastCircle casts a ray from p along dir against c.
func RaycastCircle(p, dir cp.Vector, c Circle) (HitResult, bool) {
	if IsPointInCircle(p, c) {
		return HitResult{InitialOverlap: true}, true
	}

	q := p.Sub(c.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return HitResult{}, false
	}
	b := 2 * q.Dot(dir)
	cc := q.Dot(q) - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return HitResult{}, false
	}

	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 {
		return HitResult{}, false
	}

	at := p.Add(dir.Mult(t))
	normal := common.Normalize(at.Sub(c.Center))
	return HitResult{T: t, Flags: hitTypeFromNormal(normal), Normal: normal}, true
}

// SweepRects moves a along dir against the stationary b.
func SweepRects(a, b Rect, dir cp.Vector) (HitResult, bool) {
	inflated := Rect{Center: b.Center, HalfSize: b.HalfSize.Add(a.HalfSize)}
	return RaycastRect(a.Center, dir, inflated)
}

// SweepCircles moves a along dir against the stationary b.
func SweepCircles(a, b Circle, dir cp.Vector) (HitResult, bool) {
	return RaycastCircle(a.Center, dir, Circle{Center: b.Center, Radius: b.Radius + a.Radius})
}

// SweepCircleRect moves circle c along dir against the stationary rect r.
// The Minkowski sum is a rounded rect: straight faces from r inflated by the
// radius, and one circle per corner.
func SweepCircleRect(c Circle, r Rect, dir cp.Vector) (HitResult, bool) {
	if IsCircleRectIntersect(c, r) {
		return HitResult{InitialOverlap: true}, true
	}

	lo, hi := r.Min(), r.Max()
	inflated := Rect{Center: r.Center, HalfSize: r.HalfSize.Add(cp.Vector{X: c.Radius, Y: c.Radius})}
	if hit, ok := RaycastRect(c.Center, dir, inflated); ok && !hit.InitialOverlap {
		at := c.Center.Add(dir.Mult(hit.T))
		horizontal := hit.Flags.Has(HitLeft | HitRight)
		vertical := hit.Flags.Has(HitTop | HitBottom)
		switch {
		case horizontal && !vertical && at.Y >= lo.Y && at.Y <= hi.Y:
			return hit, true
		case vertical && !horizontal && at.X >= lo.X && at.X <= hi.X:
			return hit, true
		}
	}

	corners := [4]struct {
		p     cp.Vector
		flags HitType
	}{
		{cp.Vector{X: lo.X, Y: lo.Y}, HitLeftTopCorner},
		{cp.Vector{X: hi.X, Y: lo.Y}, HitRightTopCorner},
		{cp.Vector{X: lo.X, Y: hi.Y}, HitLeftBottomCorner},
		{cp.Vector{X: hi.X, Y: hi.Y}, HitRightBottomCorner},
	}

	var best HitResult
	found := false
	for _, corner := range corners {
		hit, ok := RaycastCircle(c.Center, dir, Circle{Center: corner.p, Radius: c.Radius})
		if !ok || (found && hit.T >= best.T) {
			continue
		}
		hit.Flags = corner.flags
		best = hit
		found = true
	}
	return best, found
}
