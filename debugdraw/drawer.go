package debugdraw

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/physics"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugStrokeWidth    = 1
)

// Camera maps world coordinates to the screen.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) ToScreen(v cp.Vector) (float32, float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float32((v.X - c.X) * zoom), float32((v.Y - c.Y) * zoom)
}

func (c Camera) scale(length float64) float32 {
	if c.Zoom <= 0 {
		return float32(length)
	}
	return float32(length * c.Zoom)
}

// Colors picks the outline color per physics.DebugKind.
type Colors struct {
	Actor color.Color
	Tile  color.Color
	Chunk color.Color
}

func DefaultColors() Colors {
	return Colors{
		Actor: colornames.Lime,
		Tile:  colornames.Orangered,
		Chunk: colornames.Cornflowerblue,
	}
}

func (c Colors) For(kind physics.DebugKind) color.Color {
	var clr color.Color
	switch kind {
	case physics.DebugActor:
		clr = c.Actor
	case physics.DebugTile:
		clr = c.Tile
	case physics.DebugChunk:
		clr = c.Chunk
	}
	if clr == nil {
		return colornames.White
	}
	return clr
}

// Drawer renders a physics.Scene's debug geometry onto an ebiten image.
type Drawer struct {
	Screen *ebiten.Image
	Camera Camera
	Colors Colors
}

var _ physics.DebugDrawer = (*Drawer)(nil)

func New(screen *ebiten.Image, cam Camera, colors Colors) *Drawer {
	return &Drawer{Screen: screen, Camera: cam, Colors: colors}
}

func (d *Drawer) DrawRect(r physics.Rect, kind physics.DebugKind) {
	if d.Screen == nil {
		return
	}
	x, y := d.Camera.ToScreen(r.Min())
	w := d.Camera.scale(r.HalfSize.X * 2)
	h := d.Camera.scale(r.HalfSize.Y * 2)
	vector.StrokeRect(d.Screen, x, y, w, h, debugStrokeWidth, d.Colors.For(kind), false)
}

func (d *Drawer) DrawCircle(c physics.Circle, kind physics.DebugKind) {
	if d.Screen == nil || c.Radius <= 0 {
		return
	}
	clr := d.Colors.For(kind)
	points := CirclePoints(c, debugCircleSegments)
	for i := range points {
		d.drawLine(points[i], points[(i+1)%len(points)], clr)
	}
}

// DrawHit marks a sweep hit: the contact position and its normal.
func (d *Drawer) DrawHit(pos cp.Vector, hit physics.HitResult) {
	if d.Screen == nil {
		return
	}
	d.drawLine(pos, pos.Add(hit.Normal.Mult(8)), colornames.Yellow)
}

func (d *Drawer) drawLine(a, b cp.Vector, clr color.Color) {
	x1, y1 := d.Camera.ToScreen(a)
	x2, y2 := d.Camera.ToScreen(b)
	vector.StrokeLine(d.Screen, x1, y1, x2, y2, debugStrokeWidth, clr, true)
}

// CirclePoints approximates c with n points, counter clockwise from +x.
func CirclePoints(c physics.Circle, n int) []cp.Vector {
	points := make([]cp.Vector, 0, n)
	for i := 0; i < n; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(n))
		points = append(points, cp.Vector{X: c.Center.X + math.Cos(t)*c.Radius, Y: c.Center.Y + math.Sin(t)*c.Radius})
	}
	return points
}
