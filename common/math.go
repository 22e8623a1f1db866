package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TileSize is the default edge length of a level tile in pixels.
const TileSize = 32

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// DecomposeVector splits v into the part tangent to the surface with the given
// normal and the part along that normal. The normal does not need to be unit length.
func DecomposeVector(v, normal cp.Vector) (tangent, along cp.Vector) {
	n := Normalize(normal)
	if n == (cp.Vector{}) {
		return v, cp.Vector{}
	}
	along = n.Mult(v.Dot(n))
	tangent = v.Sub(along)
	return tangent, along
}

// ClampVector clamps each component of v to [min, max].
func ClampVector(v, min, max cp.Vector) cp.Vector {
	return cp.Vector{X: cp.Clamp(v.X, min.X, max.X), Y: cp.Clamp(v.Y, min.Y, max.Y)}
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorToInt converts a float coordinate to the integer cell containing it.
func FloorToInt(v float64) int {
	return int(math.Floor(v))
}
