package levels

import (
	"testing"
	"testing/fstest"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSandbox(t *testing.T) {
	lvl, err := LoadLevelFromFS("sandbox.json")
	require.NoError(t, err)
	assert.Equal(t, 30, lvl.Width)
	assert.Equal(t, 17, lvl.Height)
	assert.False(t, lvl.IsPhysicsLayer(0))
	assert.True(t, lvl.IsPhysicsLayer(1))

	spawn, ok := lvl.Spawn(cp.Vector{X: 10, Y: 20})
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 106, Y: 500}, spawn)

	s := physics.NewScene()
	tc, err := BuildCollision(s, ecs.NullEntity, lvl, cp.Vector{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tc.LayerCount(), "decor layer has no collision")
	assert.Equal(t, 74, tc.ActorCount())

	tc.Actors(func(_ int, a *physics.Actor) {
		assert.Equal(t, physics.StorageInChunk, a.StorageType())
		assert.True(t, a.CollisionLayer().Has(physics.GroupObstacle))
		assert.True(t, a.CollisionMask().Has(physics.GroupCCT))
	})
}

func TestLoadLevelErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.json":   {Data: []byte(`{"width":`)},
		"short.json": {Data: []byte(`{"width":2,"height":2,"layers":[[1,0,1]]}`)},
		"zero.json":  {Data: []byte(`{"width":0,"height":2}`)},
		"meta.json":  {Data: []byte(`{"width":1,"height":1,"layers":[[0]],"layer_meta":[{},{}]}`)},
		"gids.json":  {Data: []byte(`{"width":1,"height":1,"layers":[[0]],"tilesets":[{"first_gid":0,"count":1}]}`)},
	}

	_, err := LoadLevel(fsys, "missing.json")
	assert.Error(t, err)
	_, err = LoadLevel(fsys, "bad.json")
	assert.Error(t, err)
	_, err = LoadLevel(fsys, "short.json")
	assert.ErrorIs(t, err, ErrLayerSize)
	_, err = LoadLevel(fsys, "zero.json")
	assert.ErrorIs(t, err, ErrBadSize)
	_, err = LoadLevel(fsys, "meta.json")
	assert.ErrorIs(t, err, ErrLayerMeta)
	_, err = LoadLevel(fsys, "gids.json")
	assert.ErrorIs(t, err, ErrTilesetRange)
}

func TestDecodeGID(t *testing.T) {
	tile := DecodeGID(7 | FlipHorizontal | FlipDiagonal)
	assert.Equal(t, uint32(7), tile.ID)
	assert.True(t, tile.FlipH)
	assert.False(t, tile.FlipV)
}

func TestTileCollisionRect(t *testing.T) {
	lvl := &Level{Width: 4, Height: 4, TileSize: 32}
	slab := &Tileset{FirstGID: 1, Count: 1, TileW: 32, TileH: 32, Collision: &TileRect{X: 0, Y: 0, W: 8, H: 16}}
	tall := &Tileset{FirstGID: 2, Count: 1, TileW: 32, TileH: 64, Collision: &TileRect{X: 8, Y: 0, W: 16, H: 64}}
	origin := cp.Vector{X: 100, Y: 200}

	cases := []struct {
		name     string
		x, y     int
		gid      uint32
		ts       *Tileset
		min, max cp.Vector
	}{
		{"plain", 1, 0, 1, slab, cp.Vector{X: 132, Y: 200}, cp.Vector{X: 140, Y: 216}},
		{"flip_h", 1, 0, 1 | FlipHorizontal, slab, cp.Vector{X: 156, Y: 200}, cp.Vector{X: 164, Y: 216}},
		{"flip_v", 1, 0, 1 | FlipVertical, slab, cp.Vector{X: 132, Y: 216}, cp.Vector{X: 140, Y: 232}},
		{"flip_both", 0, 1, 1 | FlipVertical | FlipHorizontal, slab, cp.Vector{X: 124, Y: 248}, cp.Vector{X: 132, Y: 264}},
		{"tall_anchored_at_bottom", 0, 2, 2, tall, cp.Vector{X: 108, Y: 232}, cp.Vector{X: 124, Y: 296}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, ok := lvl.TileCollisionRect(origin, c.x, c.y, DecodeGID(c.gid), c.ts)
			require.True(t, ok)
			assert.Equal(t, c.min, r.Min())
			assert.Equal(t, c.max, r.Max())
		})
	}
}

func TestTileOverrides(t *testing.T) {
	ts := &Tileset{
		FirstGID: 1, Count: 3, TileW: 32, TileH: 32,
		Tiles: map[int]TileDef{
			1: {Collision: &TileRect{Y: 16, W: 32, H: 16}},
			2: {NoCollision: true},
		},
	}
	lvl := &Level{Width: 1, Height: 1}

	r, ok := lvl.TileCollisionRect(cp.Vector{}, 0, 0, DecodeGID(1), ts)
	require.True(t, ok)
	assert.Equal(t, physics.NewRect(0, 0, 32, 32), r, "default is the full tile")

	r, ok = lvl.TileCollisionRect(cp.Vector{}, 0, 0, DecodeGID(2), ts)
	require.True(t, ok)
	assert.Equal(t, physics.NewRect(0, 16, 32, 16), r)

	_, ok = lvl.TileCollisionRect(cp.Vector{}, 0, 0, DecodeGID(3), ts)
	assert.False(t, ok)
}

func TestBuildCollisionUnknownGID(t *testing.T) {
	lvl := &Level{
		Width: 2, Height: 1,
		Layers:   [][]uint32{{1, 9}},
		Tilesets: []Tileset{{FirstGID: 1, Count: 1, TileW: 32, TileH: 32}},
	}
	s := physics.NewScene()
	_, err := BuildCollision(s, ecs.NullEntity, lvl, cp.Vector{}, 4)
	require.Error(t, err)
	assert.Empty(t, s.TilemapCollisions(), "partial collision is removed")
}

func TestBuiltLevelBlocksSweeps(t *testing.T) {
	lvl := &Level{
		Width: 3, Height: 1, TileSize: 32,
		Layers:   [][]uint32{{0, 0, 1}},
		Tilesets: []Tileset{{FirstGID: 1, Count: 1, TileW: 32, TileH: 32}},
	}
	s := physics.NewScene()
	_, err := BuildCollision(s, ecs.NullEntity, lvl, cp.Vector{}, 2)
	require.NoError(t, err)

	out := make([]physics.SweepResult, 2)
	ball := physics.NewCircleShape(physics.Circle{Center: cp.Vector{X: 16, Y: 16}, Radius: 4})
	n := s.Sweep(ball, physics.NewCollisionGroup(physics.GroupObstacle), cp.Vector{X: 1}, 100, out)
	require.Equal(t, 1, n)
	assert.InDelta(t, 44, out[0].T, 1e-9)
	assert.Equal(t, physics.HitLeft, out[0].Flags)
}
