package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainTypes(q *ecs.Queue[TriggerEvent]) []string {
	var types []string
	for _, evt := range q.Drain() {
		types = append(types, evt.Type)
	}
	return types
}

func TestTriggerEnterTouchLeave(t *testing.T) {
	w := ecs.NewWorld()
	s := NewScene()

	r := rect(0, 0, 10, 10)
	trigger := s.CreateTrigger(w.CreateEntity(), TriggerInfo{
		Actor:      ActorInfo{Rect: &r, Layer: NewCollisionGroup(GroupTrigger), Mask: cctGroup},
		Tag:        "door",
		EveryFrame: true,
	})
	require.NotNil(t, trigger)

	player := s.CreateActor(w.CreateEntity(), NewCircleShape(circle(50, 0, 2)))
	player.SetCollisionLayer(cctGroup)

	var q ecs.Queue[TriggerEvent]
	trigger.Update(&q)
	assert.Empty(t, drainTypes(&q), "nothing inside yet")

	player.MoveTo(cp.Vector{X: 5})
	trigger.Update(&q)
	events := q.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, TriggerEvent{
		Type:    TriggerEnter,
		Tag:     "door",
		Trigger: trigger.Actor().Entity(),
		Other:   player.Entity(),
		Actor:   player,
	}, events[0])

	trigger.Update(&q)
	assert.Equal(t, []string{TriggerTouch}, drainTypes(&q))

	player.MoveTo(cp.Vector{X: 50})
	trigger.Update(&q)
	assert.Equal(t, []string{TriggerLeave}, drainTypes(&q))
	assert.Empty(t, trigger.Touching())
}

func TestTriggerRemovedActorLeaves(t *testing.T) {
	s := NewScene()
	r := rect(0, 0, 10, 10)
	trigger := s.CreateTrigger(ecs.NullEntity, TriggerInfo{
		Actor: ActorInfo{Rect: &r, Mask: cctGroup},
	})
	require.NotNil(t, trigger)

	w := ecs.NewWorld()
	other := s.CreateActor(w.CreateEntity(), NewRectShape(rect(1, 1, 1, 1)))
	other.SetCollisionLayer(cctGroup)

	var q ecs.Queue[TriggerEvent]
	trigger.Update(&q)
	assert.Equal(t, []string{TriggerEnter}, drainTypes(&q))

	trigger.Update(&q)
	assert.Empty(t, drainTypes(&q), "touch events are off")

	require.True(t, s.RemoveActor(other))
	trigger.Update(&q)
	assert.Equal(t, []string{TriggerLeave}, drainTypes(&q))
}

func TestTriggerIgnoresNullEntities(t *testing.T) {
	s := NewScene()
	r := rect(0, 0, 10, 10)
	trigger := s.CreateTrigger(ecs.NullEntity, TriggerInfo{Actor: ActorInfo{Rect: &r, Mask: cctGroup}})
	anon := s.CreateActor(ecs.NullEntity, NewRectShape(rect(0, 0, 1, 1)))
	anon.SetCollisionLayer(cctGroup)

	var q ecs.Queue[TriggerEvent]
	trigger.Update(&q)
	assert.Zero(t, q.Len())
}

func TestTriggerClose(t *testing.T) {
	s := NewScene()
	assert.Nil(t, s.CreateTrigger(ecs.NullEntity, TriggerInfo{}), "trigger needs a shape")

	c := circle(0, 0, 3)
	trigger := s.CreateTrigger(ecs.NullEntity, TriggerInfo{Actor: ActorInfo{Circle: &c}})
	require.NotNil(t, trigger)
	a := trigger.Actor()
	require.Len(t, s.Actors(), 1)

	trigger.Close()
	assert.True(t, a.Removed())
	assert.Empty(t, s.Actors())

	var q ecs.Queue[TriggerEvent]
	trigger.Update(&q)
	trigger.Close()
	assert.Zero(t, q.Len())
}
