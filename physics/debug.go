package physics

// DebugKind tells a DebugDrawer what it is being asked to draw.
type DebugKind uint8

const (
	DebugActor DebugKind = iota
	DebugTile
	DebugChunk
)

// DebugDrawer receives the scene geometry when debug drawing is enabled.
type DebugDrawer interface {
	DrawRect(r Rect, kind DebugKind)
	DrawCircle(c Circle, kind DebugKind)
}

func (s *Scene) ToggleDebugDraw() {
	s.debugDraw = !s.debugDraw
}

func (s *Scene) SetDebugDraw(enabled bool) {
	s.debugDraw = enabled
}

func (s *Scene) IsDebugDrawEnabled() bool {
	return s.debugDraw
}

// RenderDebug draws loose actors, chunked actors and the area of every
// allocated chunk. It does nothing while debug drawing is disabled.
func (s *Scene) RenderDebug(d DebugDrawer) {
	if !s.debugDraw || d == nil {
		return
	}

	for _, a := range s.actors {
		drawShape(d, a.shape, DebugActor)
	}

	for _, tc := range s.tilemaps {
		for _, layer := range tc.layers {
			for _, a := range layer.actors {
				drawShape(d, a.shape, DebugTile)
			}
			for _, chunk := range layer.grid {
				if chunk == nil {
					continue
				}
				d.DrawRect(RectFromBB(layer.ChunkBounds(chunk.X, chunk.Y)), DebugChunk)
			}
		}
	}
}

func drawShape(d DebugDrawer, shape Shape, kind DebugKind) {
	switch shape.kind {
	case ShapeRect:
		d.DrawRect(shape.rect, kind)
	case ShapeCircle:
		d.DrawCircle(shape.circle, kind)
	}
}
