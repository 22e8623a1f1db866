package physics

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
)

type StorageType uint8

const (
	// StorageNormal actors live in the scene's loose list.
	StorageNormal StorageType = iota
	// StorageInChunk actors are owned by a tilemap collision layer.
	StorageInChunk
)

func (s StorageType) String() string {
	if s == StorageInChunk {
		return "in_chunk"
	}
	return "normal"
}

// Actor is a collision object owned by an entity. Pointers handed out by the
// scene stay valid until the actor is removed; Removed reports that.
type Actor struct {
	entity  ecs.Entity
	shape   Shape
	storage StorageType
	layer   CollisionGroup
	mask    CollisionGroup
	removed bool

	// chunk binding, set while the actor is indexed in a layer
	chunks  *Chunks
	indexed cp.BB

	queryStamp uint64
}

// NewActor builds an unregistered actor. Use the Scene constructors to make it queryable.
func NewActor(entity ecs.Entity, shape Shape, storage StorageType) *Actor {
	return &Actor{entity: entity, shape: shape, storage: storage}
}

func (a *Actor) Entity() ecs.Entity       { return a.entity }
func (a *Actor) Shape() Shape             { return a.shape }
func (a *Actor) StorageType() StorageType { return a.storage }
func (a *Actor) Position() cp.Vector      { return a.shape.Position() }
func (a *Actor) Bounds() cp.BB            { return a.shape.Bounds() }
func (a *Actor) Removed() bool            { return a.removed }

func (a *Actor) CollisionLayer() CollisionGroup     { return a.layer }
func (a *Actor) SetCollisionLayer(g CollisionGroup) { a.layer = g }
func (a *Actor) CollisionMask() CollisionGroup      { return a.mask }
func (a *Actor) SetCollisionMask(g CollisionGroup)  { a.mask = g }

// MoveTo sets the shape center. Chunked actors are re-indexed so no tile keeps
// a reference to an actor that left it.
func (a *Actor) MoveTo(p cp.Vector) {
	a.shape.MoveTo(p)
	if a.chunks != nil {
		a.chunks.reindex(a)
	}
}

func (a *Actor) Move(offset cp.Vector) {
	a.MoveTo(a.shape.Position().Add(offset))
}

var (
	ErrNoShape        = errors.New("physics: actor info needs a rect or a circle")
	ErrAmbiguousShape = errors.New("physics: actor info has both a rect and a circle")
)

// ActorInfo is the serializable description of an actor.
type ActorInfo struct {
	Rect   *Rect          `yaml:"rect,omitempty"`
	Circle *Circle        `yaml:"circle,omitempty"`
	Layer  CollisionGroup `yaml:"layer"`
	Mask   CollisionGroup `yaml:"mask"`
}

func (i ActorInfo) Validate() error {
	switch {
	case i.Rect == nil && i.Circle == nil:
		return ErrNoShape
	case i.Rect != nil && i.Circle != nil:
		return ErrAmbiguousShape
	}
	return nil
}

// Shape returns the described shape. Call Validate first; a rect wins if both are set.
func (i ActorInfo) Shape() Shape {
	if i.Rect != nil {
		return NewRectShape(*i.Rect)
	}
	if i.Circle != nil {
		return NewCircleShape(*i.Circle)
	}
	return Shape{}
}
