package physics

import (
	"cmp"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"go.uber.org/zap"
)

// sweepPadding grows the swept broad-phase box on every side.
const sweepPadding = 1.0

// Scene owns loose actors and tilemap collisions and answers sweep and
// overlap queries against them. It is not safe for concurrent use.
type Scene struct {
	logger *zap.Logger

	actors   []*Actor
	tilemaps []*TilemapCollision

	debugDraw bool

	stamp        uint64
	sweepScratch []SweepResult
}

type Option func(*Scene)

func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) { s.logger = common.OrNop(l) }
}

func WithDebugDraw(enabled bool) Option {
	return func(s *Scene) { s.debugDraw = enabled }
}

func NewScene(opts ...Option) *Scene {
	s := &Scene{
		logger:       zap.NewNop(),
		sweepScratch: make([]SweepResult, 0, 100),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Actors returns the loose actors. The slice must not be modified.
func (s *Scene) Actors() []*Actor { return s.actors }

func (s *Scene) TilemapCollisions() []*TilemapCollision { return s.tilemaps }

// CreateActor registers a loose actor with an empty layer and mask.
func (s *Scene) CreateActor(entity ecs.Entity, shape Shape) *Actor {
	a := NewActor(entity, shape, StorageNormal)
	s.actors = append(s.actors, a)
	return a
}

// CreateActorFromInfo registers a loose actor described by info, or returns nil
// when info is invalid.
func (s *Scene) CreateActorFromInfo(entity ecs.Entity, info ActorInfo) *Actor {
	if err := info.Validate(); err != nil {
		s.logger.Warn("rejecting actor", zap.Stringer("entity", entity), zap.Error(err))
		return nil
	}
	a := s.CreateActor(entity, info.Shape())
	a.SetCollisionLayer(info.Layer)
	a.SetCollisionMask(info.Mask)
	return a
}

func (s *Scene) CreateTilemapCollision(topLeft cp.Vector) *TilemapCollision {
	tc := &TilemapCollision{topLeft: topLeft}
	s.tilemaps = append(s.tilemaps, tc)
	return tc
}

// CreateActorInChunk stores a new actor in the given layer of tc. It returns
// nil when tc is not part of this scene or the layer does not exist.
func (s *Scene) CreateActorInChunk(entity ecs.Entity, tc *TilemapCollision, layer int, shape Shape) *Actor {
	chunks := s.layer(tc, layer)
	if chunks == nil {
		s.logger.Warn("rejecting chunk actor", zap.Stringer("entity", entity), zap.Int("layer", layer))
		return nil
	}
	a := NewActor(entity, shape, StorageInChunk)
	chunks.insert(a)
	return a
}

// RemoveActor unregisters a. Removing a nil or already removed actor is a no-op.
func (s *Scene) RemoveActor(a *Actor) bool {
	if a == nil || a.removed {
		return false
	}

	switch a.storage {
	case StorageInChunk:
		if a.chunks == nil || !a.chunks.remove(a) {
			return false
		}
	default:
		i := slices.Index(s.actors, a)
		if i < 0 {
			return false
		}
		s.actors = slices.Delete(s.actors, i, i+1)
	}
	a.removed = true
	return true
}

// RemoveActorInChunk removes a from one specific layer of tc.
func (s *Scene) RemoveActorInChunk(tc *TilemapCollision, layer int, a *Actor) bool {
	chunks := s.layer(tc, layer)
	if chunks == nil || a == nil || a.removed || !chunks.remove(a) {
		return false
	}
	a.removed = true
	return true
}

// RemoveTilemapCollision destroys tc together with every actor it owns.
func (s *Scene) RemoveTilemapCollision(tc *TilemapCollision) bool {
	i := slices.Index(s.tilemaps, tc)
	if i < 0 {
		return false
	}
	for _, layer := range tc.layers {
		layer.clear()
	}
	tc.layers = nil
	tc.removed = true
	s.tilemaps = slices.Delete(s.tilemaps, i, i+1)
	return true
}

func (s *Scene) layer(tc *TilemapCollision, layer int) *Chunks {
	if tc == nil || tc.removed {
		return nil
	}
	return tc.Layer(layer)
}

// gather visits every actor whose box intersects bb and whose layer matches
// mask, once per call. Returning false from fn stops the walk.
func (s *Scene) gather(bb cp.BB, mask CollisionGroup, skip *Actor, fn func(*Actor) bool) {
	s.stamp++
	stamp := s.stamp
	stopped := false

	visit := func(a *Actor) bool {
		if a.queryStamp == stamp {
			return true
		}
		a.queryStamp = stamp
		if a == skip || !mask.CanCollide(a.layer) || !a.Bounds().Intersects(bb) {
			return true
		}
		if !fn(a) {
			stopped = true
			return false
		}
		return true
	}

	for _, a := range s.actors {
		if !visit(a) {
			return
		}
	}
	for _, tc := range s.tilemaps {
		for _, layer := range tc.layers {
			layer.Visit(bb, visit)
			if stopped {
				return
			}
		}
	}
}

func sweptBounds(shape Shape, dir cp.Vector, dist float64) cp.BB {
	bb := shape.Bounds()
	d := dir.Mult(dist)
	moved := cp.BB{L: bb.L + d.X, B: bb.B + d.Y, R: bb.R + d.X, T: bb.T + d.Y}
	bb = bb.Merge(moved)
	return cp.BB{L: bb.L - sweepPadding, B: bb.B - sweepPadding, R: bb.R + sweepPadding, T: bb.T + sweepPadding}
}

// Sweep moves shape along dir for dist and writes the hits into out, nearest
// first. Only actors whose layer shares a bit with mask are considered. It
// returns the number of results written, at most len(out).
func (s *Scene) Sweep(shape Shape, mask CollisionGroup, dir cp.Vector, dist float64, out []SweepResult) int {
	return s.sweep(shape, mask, nil, dir, dist, out)
}

// SweepActor sweeps a's shape with a's mask, ignoring a itself.
func (s *Scene) SweepActor(a *Actor, dir cp.Vector, dist float64, out []SweepResult) int {
	if a == nil {
		return 0
	}
	return s.sweep(a.shape, a.mask, a, dir, dist, out)
}

func (s *Scene) sweep(shape Shape, mask CollisionGroup, skip *Actor, dir cp.Vector, dist float64, out []SweepResult) int {
	if len(out) == 0 {
		return 0
	}
	dist = max(dist, 0)
	dir = common.Normalize(dir)

	narrow := sweepTable[shape.kind]
	s.sweepScratch = s.sweepScratch[:0]
	s.gather(sweptBounds(shape, dir, dist), mask, skip, func(a *Actor) bool {
		hit, ok := narrow[a.shape.kind](shape, a.shape, dir)
		if !ok || hit.T > dist {
			return true
		}
		s.sweepScratch = append(s.sweepScratch, SweepResult{HitResult: hit, Entity: a.entity, Actor: a})
		return true
	})

	slices.SortStableFunc(s.sweepScratch, func(a, b SweepResult) int {
		return cmp.Compare(a.T, b.T)
	})
	return copy(out, s.sweepScratch)
}

// Overlap writes the actors overlapping shape into out in query order.
func (s *Scene) Overlap(shape Shape, mask CollisionGroup, out []OverlapResult) int {
	return s.overlap(shape, mask, nil, out)
}

// OverlapActor finds the actors overlapping a using a's mask, ignoring a itself.
func (s *Scene) OverlapActor(a *Actor, out []OverlapResult) int {
	if a == nil {
		return 0
	}
	return s.overlap(a.shape, a.mask, a, out)
}

func (s *Scene) overlap(shape Shape, mask CollisionGroup, skip *Actor, out []OverlapResult) int {
	if len(out) == 0 {
		return 0
	}

	narrow := overlapTable[shape.kind]
	n := 0
	s.gather(shape.Bounds(), mask, skip, func(a *Actor) bool {
		if !narrow[a.shape.kind](shape, a.shape) {
			return true
		}
		out[n] = OverlapResult{Entity: a.entity, Actor: a}
		n++
		return n < len(out)
	})
	return n
}

// OverlapActors tests the shapes of a and b, ignoring layer and mask.
func (s *Scene) OverlapActors(a, b *Actor) bool {
	if a == nil || b == nil {
		return false
	}
	return OverlapShapes(a.shape, b.shape)
}

// OverlapShapes tests two shapes directly.
func OverlapShapes(a, b Shape) bool {
	return overlapTable[a.kind][b.kind](a, b)
}

func (s *Scene) OverlapShapes(a, b Shape) bool {
	return OverlapShapes(a, b)
}
