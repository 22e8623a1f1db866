package physics

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// Range is a half-open integer interval [Begin, End).
type Range struct {
	Begin, End int
}

func (r Range) Len() int {
	if r.End <= r.Begin {
		return 0
	}
	return r.End - r.Begin
}

func (r Range) Contains(v int) bool {
	return v >= r.Begin && v < r.End
}

type Range2D struct {
	X, Y Range
}

func (r Range2D) Empty() bool {
	return r.X.Len() == 0 || r.Y.Len() == 0
}

type Size struct {
	W, H int
}

// Chunk is a fixed block of tiles. Each tile holds the actors overlapping it.
type Chunk struct {
	// absolute chunk coordinates
	X, Y  int
	size  Size
	tiles [][]*Actor
}

func newChunk(x, y int, size Size) *Chunk {
	return &Chunk{X: x, Y: y, size: size, tiles: make([][]*Actor, size.W*size.H)}
}

func (c *Chunk) InRange(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.size.W && y < c.size.H
}

// Tile returns the actors referenced by the tile at chunk-local (x, y).
func (c *Chunk) Tile(x, y int) []*Actor {
	if !c.InRange(x, y) {
		return nil
	}
	return c.tiles[y*c.size.W+x]
}

func (c *Chunk) add(x, y int, a *Actor) {
	i := y*c.size.W + x
	c.tiles[i] = append(c.tiles[i], a)
}

func (c *Chunk) remove(x, y int, a *Actor) {
	i := y*c.size.W + x
	c.tiles[i] = slices.DeleteFunc(c.tiles[i], func(o *Actor) bool { return o == a })
}

// Chunks indexes the actors of one tile layer. The chunk grid grows on demand
// in every direction; chunk coordinates may be negative.
type Chunks struct {
	topLeft   cp.Vector
	tileSize  Size
	chunkSize Size

	origin Size // chunk coordinate of grid cell (0, 0)
	extent Size // grid dimensions in chunks
	grid   []*Chunk

	actors []*Actor
}

func newChunks(topLeft cp.Vector, tileSize, chunkSize Size) *Chunks {
	return &Chunks{topLeft: topLeft, tileSize: tileSize, chunkSize: chunkSize}
}

func (cs *Chunks) TileSize() Size  { return cs.tileSize }
func (cs *Chunks) ChunkSize() Size { return cs.chunkSize }

// Actors returns the actors stored in this layer. The slice must not be modified.
func (cs *Chunks) Actors() []*Actor { return cs.actors }

// GridRange returns the allocated chunk coordinates.
func (cs *Chunks) GridRange() Range2D {
	return Range2D{
		X: Range{cs.origin.W, cs.origin.W + cs.extent.W},
		Y: Range{cs.origin.H, cs.origin.H + cs.extent.H},
	}
}

// Chunk returns the chunk at absolute chunk coordinates, or nil if it was never allocated.
func (cs *Chunks) Chunk(x, y int) *Chunk {
	gx, gy := x-cs.origin.W, y-cs.origin.H
	if gx < 0 || gy < 0 || gx >= cs.extent.W || gy >= cs.extent.H {
		return nil
	}
	return cs.grid[gy*cs.extent.W+gx]
}

// ChunkBounds returns the world area covered by the chunk at (x, y).
func (cs *Chunks) ChunkBounds(x, y int) cp.BB {
	w := float64(cs.chunkSize.W * cs.tileSize.W)
	h := float64(cs.chunkSize.H * cs.tileSize.H)
	l := cs.topLeft.X + float64(x)*w
	t := cs.topLeft.Y + float64(y)*h
	return cp.BB{L: l, B: t, R: l + w, T: t + h}
}

// gridBounds returns the world area of the allocated grid.
func (cs *Chunks) gridBounds() (cp.BB, bool) {
	g := cs.GridRange()
	if g.Empty() {
		return cp.BB{}, false
	}
	lo := cs.ChunkBounds(g.X.Begin, g.Y.Begin)
	hi := cs.ChunkBounds(g.X.End-1, g.Y.End-1)
	return cp.BB{L: lo.L, B: lo.B, R: hi.R, T: hi.T}, true
}

// tileRange returns the absolute tiles touched by the closed box bb.
func (cs *Chunks) tileRange(bb cp.BB) Range2D {
	tw, th := float64(cs.tileSize.W), float64(cs.tileSize.H)
	return Range2D{
		X: Range{
			common.FloorToInt((bb.L - cs.topLeft.X) / tw),
			common.FloorToInt((bb.R-cs.topLeft.X)/tw) + 1,
		},
		Y: Range{
			common.FloorToInt((bb.B - cs.topLeft.Y) / th),
			common.FloorToInt((bb.T-cs.topLeft.Y)/th) + 1,
		},
	}
}

// overlapRange is OverlapRange without clamping to the allocated grid.
func (cs *Chunks) overlapRange(bb cp.BB) (chunkRange, tileRange Range2D) {
	tiles := cs.tileRange(bb)
	cw, ch := cs.chunkSize.W, cs.chunkSize.H

	chunkRange.X = Range{common.FloorDiv(tiles.X.Begin, cw), common.FloorDiv(tiles.X.End-1, cw) + 1}
	chunkRange.Y = Range{common.FloorDiv(tiles.Y.Begin, ch), common.FloorDiv(tiles.Y.End-1, ch) + 1}

	// begin is local to the first chunk, end is local to the last one
	tileRange.X = Range{tiles.X.Begin - chunkRange.X.Begin*cw, tiles.X.End - (chunkRange.X.End-1)*cw}
	tileRange.Y = Range{tiles.Y.Begin - chunkRange.Y.Begin*ch, tiles.Y.End - (chunkRange.Y.End-1)*ch}
	return chunkRange, tileRange
}

// OverlapRange maps a world box to the chunks it touches and the tile
// sub-ranges inside the first and last chunk. The result is clamped to the
// allocated grid; ok is false when nothing allocated is touched.
func (cs *Chunks) OverlapRange(bb cp.BB) (chunkRange, tileRange Range2D, ok bool) {
	world, ok := cs.gridBounds()
	if !ok || !bb.Intersects(world) {
		return Range2D{}, Range2D{}, false
	}
	// keep tile indices within int range for huge query boxes
	bb = cp.BB{L: max(bb.L, world.L), B: max(bb.B, world.B), R: min(bb.R, world.R), T: min(bb.T, world.T)}

	chunkRange, tileRange = cs.overlapRange(bb)
	grid := cs.GridRange()

	clamp := func(c, t *Range, g Range, full int) {
		if c.Begin < g.Begin {
			c.Begin = g.Begin
			t.Begin = 0
		}
		if c.End > g.End {
			c.End = g.End
			t.End = full
		}
	}
	clamp(&chunkRange.X, &tileRange.X, grid.X, cs.chunkSize.W)
	clamp(&chunkRange.Y, &tileRange.Y, grid.Y, cs.chunkSize.H)

	if chunkRange.Empty() {
		return Range2D{}, Range2D{}, false
	}
	return chunkRange, tileRange, true
}

// TileRangeInChunk narrows tileRange to the chunk at (x, y): only the first
// and last chunk of the range are partial.
func (cs *Chunks) TileRangeInChunk(chunkRange, tileRange Range2D, x, y int) Range2D {
	out := Range2D{
		X: Range{0, cs.chunkSize.W},
		Y: Range{0, cs.chunkSize.H},
	}
	if x == chunkRange.X.Begin {
		out.X.Begin = tileRange.X.Begin
	}
	if x == chunkRange.X.End-1 {
		out.X.End = tileRange.X.End
	}
	if y == chunkRange.Y.Begin {
		out.Y.Begin = tileRange.Y.Begin
	}
	if y == chunkRange.Y.End-1 {
		out.Y.End = tileRange.Y.End
	}
	return out
}

// Visit calls fn for every actor reference in the tiles touched by bb.
// An actor spanning several tiles is visited once per tile; returning false stops.
func (cs *Chunks) Visit(bb cp.BB, fn func(*Actor) bool) {
	chunkRange, tileRange, ok := cs.OverlapRange(bb)
	if !ok {
		return
	}
	for y := chunkRange.Y.Begin; y < chunkRange.Y.End; y++ {
		for x := chunkRange.X.Begin; x < chunkRange.X.End; x++ {
			chunk := cs.Chunk(x, y)
			if chunk == nil {
				continue
			}
			tiles := cs.TileRangeInChunk(chunkRange, tileRange, x, y)
			for sy := tiles.Y.Begin; sy < tiles.Y.End; sy++ {
				for sx := tiles.X.Begin; sx < tiles.X.End; sx++ {
					for _, a := range chunk.Tile(sx, sy) {
						if !fn(a) {
							return
						}
					}
				}
			}
		}
	}
}

// grow makes sure every chunk in r has a grid cell, keeping existing chunks in place.
func (cs *Chunks) grow(r Range2D) {
	grid := cs.GridRange()
	if cs.extent.W > 0 && cs.extent.H > 0 {
		r.X = Range{min(r.X.Begin, grid.X.Begin), max(r.X.End, grid.X.End)}
		r.Y = Range{min(r.Y.Begin, grid.Y.Begin), max(r.Y.End, grid.Y.End)}
		if r == grid {
			return
		}
	}

	next := make([]*Chunk, r.X.Len()*r.Y.Len())
	for _, c := range cs.grid {
		if c == nil {
			continue
		}
		next[(c.Y-r.Y.Begin)*r.X.Len()+(c.X-r.X.Begin)] = c
	}
	cs.grid = next
	cs.origin = Size{r.X.Begin, r.Y.Begin}
	cs.extent = Size{r.X.Len(), r.Y.Len()}
}

func (cs *Chunks) chunkAt(x, y int) *Chunk {
	i := (y-cs.origin.H)*cs.extent.W + (x - cs.origin.W)
	if cs.grid[i] == nil {
		cs.grid[i] = newChunk(x, y, cs.chunkSize)
	}
	return cs.grid[i]
}

func (cs *Chunks) index(a *Actor) {
	bb := a.shape.Bounds()
	chunkRange, tileRange := cs.overlapRange(bb)
	cs.grow(chunkRange)

	for y := chunkRange.Y.Begin; y < chunkRange.Y.End; y++ {
		for x := chunkRange.X.Begin; x < chunkRange.X.End; x++ {
			chunk := cs.chunkAt(x, y)
			tiles := cs.TileRangeInChunk(chunkRange, tileRange, x, y)
			for sy := tiles.Y.Begin; sy < tiles.Y.End; sy++ {
				for sx := tiles.X.Begin; sx < tiles.X.End; sx++ {
					chunk.add(sx, sy, a)
				}
			}
		}
	}
	a.chunks = cs
	a.indexed = bb
}

func (cs *Chunks) unindex(a *Actor) {
	chunkRange, tileRange, ok := cs.OverlapRange(a.indexed)
	if ok {
		for y := chunkRange.Y.Begin; y < chunkRange.Y.End; y++ {
			for x := chunkRange.X.Begin; x < chunkRange.X.End; x++ {
				chunk := cs.Chunk(x, y)
				if chunk == nil {
					continue
				}
				tiles := cs.TileRangeInChunk(chunkRange, tileRange, x, y)
				for sy := tiles.Y.Begin; sy < tiles.Y.End; sy++ {
					for sx := tiles.X.Begin; sx < tiles.X.End; sx++ {
						chunk.remove(sx, sy, a)
					}
				}
			}
		}
	}
	a.chunks = nil
	a.indexed = cp.BB{}
}

func (cs *Chunks) reindex(a *Actor) {
	cs.unindex(a)
	cs.index(a)
}

func (cs *Chunks) insert(a *Actor) {
	cs.actors = append(cs.actors, a)
	cs.index(a)
}

func (cs *Chunks) remove(a *Actor) bool {
	i := slices.Index(cs.actors, a)
	if i < 0 {
		return false
	}
	cs.unindex(a)
	cs.actors = slices.Delete(cs.actors, i, i+1)
	return true
}

func (cs *Chunks) clear() {
	for _, a := range cs.actors {
		a.chunks = nil
		a.removed = true
	}
	cs.actors = nil
	cs.grid = nil
	cs.origin = Size{}
	cs.extent = Size{}
}
