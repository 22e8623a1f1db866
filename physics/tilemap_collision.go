package physics

import (
	"github.com/jakecoffman/cp"
)

// TilemapCollision groups the chunk layers of one tilemap. It owns every actor
// stored in its layers.
type TilemapCollision struct {
	topLeft cp.Vector
	layers  []*Chunks
	removed bool
}

func (tc *TilemapCollision) TopLeft() cp.Vector { return tc.topLeft }
func (tc *TilemapCollision) LayerCount() int    { return len(tc.layers) }

// Layer returns the chunk index at i, or nil when out of range.
func (tc *TilemapCollision) Layer(i int) *Chunks {
	if i < 0 || i >= len(tc.layers) {
		return nil
	}
	return tc.layers[i]
}

// CreateLayer appends a layer with the given tile size in pixels and chunk
// size in tiles. Non-positive sizes are rejected with (-1, nil).
func (tc *TilemapCollision) CreateLayer(tileSize, chunkSize Size) (int, *Chunks) {
	if tileSize.W <= 0 || tileSize.H <= 0 || chunkSize.W <= 0 || chunkSize.H <= 0 {
		return -1, nil
	}
	layer := newChunks(tc.topLeft, tileSize, chunkSize)
	tc.layers = append(tc.layers, layer)
	return len(tc.layers) - 1, layer
}

// Actors calls fn for every actor owned by the tilemap.
func (tc *TilemapCollision) Actors(fn func(layer int, a *Actor)) {
	for i, layer := range tc.layers {
		for _, a := range layer.actors {
			fn(i, a)
		}
	}
}

func (tc *TilemapCollision) ActorCount() int {
	n := 0
	for _, layer := range tc.layers {
		n += len(layer.actors)
	}
	return n
}
