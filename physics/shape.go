package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle

	shapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Shape holds exactly one of a Rect or a Circle. The kind is fixed at construction.
type Shape struct {
	kind   ShapeKind
	rect   Rect
	circle Circle
}

func NewRectShape(r Rect) Shape {
	return Shape{kind: ShapeRect, rect: r}
}

func NewCircleShape(c Circle) Shape {
	return Shape{kind: ShapeCircle, circle: c}
}

func (s Shape) Kind() ShapeKind { return s.kind }

func (s Shape) AsRect() (Rect, bool) {
	return s.rect, s.kind == ShapeRect
}

func (s Shape) AsCircle() (Circle, bool) {
	return s.circle, s.kind == ShapeCircle
}

func (s Shape) Position() cp.Vector {
	if s.kind == ShapeCircle {
		return s.circle.Center
	}
	return s.rect.Center
}

func (s *Shape) MoveTo(p cp.Vector) {
	if s.kind == ShapeCircle {
		s.circle.Center = p
		return
	}
	s.rect.Center = p
}

func (s *Shape) Move(offset cp.Vector) {
	s.MoveTo(s.Position().Add(offset))
}

// Bounds returns the tight axis-aligned box of the shape.
func (s Shape) Bounds() cp.BB {
	if s.kind == ShapeCircle {
		return s.circle.Bounds()
	}
	return s.rect.Bounds()
}

func (s Shape) String() string {
	if s.kind == ShapeCircle {
		return fmt.Sprintf("circle(%v r=%g)", s.circle.Center, s.circle.Radius)
	}
	return fmt.Sprintf("rect(%v half=%v)", s.rect.Center, s.rect.HalfSize)
}
