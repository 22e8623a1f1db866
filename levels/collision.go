package levels

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
)

// DefaultChunkSize is the number of tiles per chunk edge.
const DefaultChunkSize = 8

// TileCollisionRect returns the world rect a tile collides with. Tiles taller
// than the grid are anchored at the bottom of their cell; flipped tiles mirror
// their collision rect inside the tile image.
func (l *Level) TileCollisionRect(topLeft cp.Vector, x, y int, tile Tile, ts *Tileset) (physics.Rect, bool) {
	local := ts.collisionRect(tile.ID - ts.FirstGID)
	if local == nil || local.W <= 0 || local.H <= 0 {
		return physics.Rect{}, false
	}

	rx, ry := local.X, local.Y
	if tile.FlipH {
		rx = ts.TileW - (local.X + local.W)
	}
	if tile.FlipV {
		ry = ts.TileH - (local.Y + local.H)
	}

	size := float64(l.tileSize())
	origin := topLeft.Add(cp.Vector{X: float64(x) * size, Y: float64(y+1)*size - float64(ts.TileH)})
	return physics.NewRect(origin.X+float64(rx), origin.Y+float64(ry), float64(local.W), float64(local.H)), true
}

func (ts *Tileset) collisionRect(local uint32) *TileRect {
	if def, ok := ts.Tiles[int(local)]; ok {
		if def.NoCollision {
			return nil
		}
		if def.Collision != nil {
			return def.Collision
		}
	}
	if ts.Collision != nil {
		return ts.Collision
	}
	return &TileRect{W: ts.TileW, H: ts.TileH}
}

// BuildCollision creates one tilemap collision for lvl with a chunk layer per
// physics layer. Every collidable tile becomes an Obstacle actor that CCTs
// collide with. On error the partial tilemap collision is removed again.
func BuildCollision(scene *physics.Scene, entity ecs.Entity, lvl *Level, topLeft cp.Vector, chunkSize int) (*physics.TilemapCollision, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}

	layerGroup := physics.NewCollisionGroup(physics.GroupObstacle)
	maskGroup := physics.NewCollisionGroup(physics.GroupCCT)

	size := lvl.tileSize()
	tc := scene.CreateTilemapCollision(topLeft)
	for li, cells := range lvl.Layers {
		if !lvl.IsPhysicsLayer(li) {
			continue
		}
		idx, _ := tc.CreateLayer(physics.Size{W: size, H: size}, physics.Size{W: chunkSize, H: chunkSize})

		for i, gid := range cells {
			if gid == 0 {
				continue
			}
			x, y := i%lvl.Width, i/lvl.Width
			tile := DecodeGID(gid)
			ts, ok := lvl.Tileset(tile.ID)
			if !ok {
				scene.RemoveTilemapCollision(tc)
				return nil, fmt.Errorf("levels: layer %d tile (%d,%d): unknown gid %d", li, x, y, tile.ID)
			}
			r, ok := lvl.TileCollisionRect(topLeft, x, y, tile, ts)
			if !ok {
				continue
			}
			a := scene.CreateActorInChunk(entity, tc, idx, physics.NewRectShape(r))
			a.SetCollisionLayer(layerGroup)
			a.SetCollisionMask(maskGroup)
		}
	}
	return tc, nil
}
