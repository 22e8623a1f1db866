package physics

import (
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
)

// HitType flags which side of the struck shape was hit. Corners set two flags.
type HitType uint8

const (
	HitNone   HitType = 0
	HitLeft   HitType = 0x01
	HitRight  HitType = 0x02
	HitTop    HitType = 0x04
	HitBottom HitType = 0x08

	HitLeftTopCorner     = HitLeft | HitTop
	HitRightTopCorner    = HitRight | HitTop
	HitLeftBottomCorner  = HitLeft | HitBottom
	HitRightBottomCorner = HitRight | HitBottom
)

func (h HitType) Has(flag HitType) bool {
	return h&flag != 0
}

// IsCorner reports whether both a horizontal and a vertical side are set.
func (h HitType) IsCorner() bool {
	return h.Has(HitLeft|HitRight) && h.Has(HitTop|HitBottom)
}

func (h HitType) String() string {
	if h == HitNone {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag HitType
		name string
	}{{HitLeft, "left"}, {HitRight, "right"}, {HitTop, "top"}, {HitBottom, "bottom"}} {
		if h.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// hitTypeFromNormal derives side flags from an outward contact normal.
func hitTypeFromNormal(n cp.Vector) HitType {
	const eps = 1e-9
	var h HitType
	switch {
	case n.X < -eps:
		h |= HitLeft
	case n.X > eps:
		h |= HitRight
	}
	switch {
	case n.Y < -eps:
		h |= HitTop
	case n.Y > eps:
		h |= HitBottom
	}
	return h
}

// HitResult describes the first contact of a sweep or raycast.
// T is a world-space distance along the (unit) direction, not a 0..1 ratio.
// InitialOverlap means the shapes already touched at T == 0.
type HitResult struct {
	T              float64
	Flags          HitType
	Normal         cp.Vector
	InitialOverlap bool
}

// SweepResult is a scene sweep hit. Actor stays valid until it is removed.
type SweepResult struct {
	HitResult
	Entity ecs.Entity
	Actor  *Actor
}

// OverlapResult is a scene overlap hit. Actor stays valid until it is removed.
type OverlapResult struct {
	Entity ecs.Entity
	Actor  *Actor
}
