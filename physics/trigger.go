package physics

import (
	"slices"

	"github.com/milk9111/tilephysics/ecs"
)

// Event types pushed by Trigger.Update.
const (
	TriggerEnter = "trigger_enter"
	TriggerTouch = "trigger_touch"
	TriggerLeave = "trigger_leave"
)

const triggerOverlapCapacity = 16

// TriggerEvent reports an actor entering, staying in or leaving a trigger.
type TriggerEvent struct {
	Type    string
	Tag     string
	Trigger ecs.Entity
	Other   ecs.Entity
	Actor   *Actor
}

// TriggerInfo describes a trigger volume.
type TriggerInfo struct {
	Actor ActorInfo `yaml:"actor"`
	Tag   string    `yaml:"tag"`
	// EveryFrame emits TriggerTouch each update while an actor stays inside.
	EveryFrame bool `yaml:"every_frame"`
}

// Trigger tracks which actors are inside a loose actor and reports changes as events.
type Trigger struct {
	scene      *Scene
	actor      *Actor
	tag        string
	everyFrame bool

	touching []*Actor
	results  [triggerOverlapCapacity]OverlapResult
}

// CreateTrigger registers the trigger's actor in the scene. It returns nil
// when the actor description is invalid.
func (s *Scene) CreateTrigger(entity ecs.Entity, info TriggerInfo) *Trigger {
	a := s.CreateActorFromInfo(entity, info.Actor)
	if a == nil {
		return nil
	}
	return &Trigger{scene: s, actor: a, tag: info.Tag, everyFrame: info.EveryFrame}
}

func (t *Trigger) Actor() *Actor              { return t.actor }
func (t *Trigger) Tag() string                { return t.tag }
func (t *Trigger) SetTag(tag string)          { t.tag = tag }
func (t *Trigger) EveryFrame() bool           { return t.everyFrame }
func (t *Trigger) SetEveryFrame(enabled bool) { t.everyFrame = enabled }

// Touching returns the actors currently inside the trigger.
func (t *Trigger) Touching() []*Actor { return t.touching }

func (t *Trigger) event(typ string, a *Actor) TriggerEvent {
	return TriggerEvent{
		Type:    typ,
		Tag:     t.tag,
		Trigger: t.actor.entity,
		Other:   a.entity,
		Actor:   a,
	}
}

// Update emits leave events first, then touch events, then enter events.
func (t *Trigger) Update(q *ecs.Queue[TriggerEvent]) {
	if t.actor == nil || t.actor.removed {
		return
	}

	for i := len(t.touching) - 1; i >= 0; i-- {
		a := t.touching[i]
		if !a.removed && t.scene.OverlapActors(t.actor, a) {
			continue
		}
		q.Push(t.event(TriggerLeave, a))
		t.touching = slices.Delete(t.touching, i, i+1)
	}

	if t.everyFrame {
		for _, a := range t.touching {
			q.Push(t.event(TriggerTouch, a))
		}
	}

	n := t.scene.OverlapActor(t.actor, t.results[:])
	for _, r := range t.results[:n] {
		if !r.Entity.Valid() || r.Actor == nil || slices.Contains(t.touching, r.Actor) {
			continue
		}
		t.touching = append(t.touching, r.Actor)
		q.Push(t.event(TriggerEnter, r.Actor))
	}
}

// Close removes the trigger's actor from the scene.
func (t *Trigger) Close() {
	if t.actor == nil {
		return
	}
	t.scene.RemoveActor(t.actor)
	t.actor = nil
	t.touching = nil
}
