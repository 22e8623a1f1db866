package main

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/cct"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPlayerSpec() *prefabs.CCTSpec {
	r := physics.Rect{HalfSize: cp.Vector{X: 10, Y: 14}}
	def := cct.DefaultDefinition()
	def.Actor = physics.ActorInfo{
		Rect:  &r,
		Layer: physics.NewCollisionGroup(physics.GroupCCT),
		Mask:  physics.NewCollisionGroup(physics.GroupObstacle),
	}
	return &prefabs.CCTSpec{Name: "player", Definition: def, MoveSpeed: 100, JumpSpeed: 300}
}

func TestPlayerApplySpec(t *testing.T) {
	s := physics.NewScene()
	spawn := cp.Vector{X: 50, Y: 50}
	p, err := NewPlayer(s, ecs.NullEntity, testPlayerSpec(), spawn, 900, zap.NewNop())
	require.NoError(t, err)
	defer p.Close()

	tuned := testPlayerSpec()
	tuned.Skin = 0.5
	tuned.MoveSpeed = 200
	p.ApplySpec(tuned, 100)

	c := p.Controller()
	assert.Equal(t, 0.5, c.Skin())
	assert.Equal(t, spawn, c.Position(), "re-tuning does not move the player")
	require.Len(t, s.Actors(), 1, "the controller keeps its actor")

	p.Update(Input{MoveX: 1})
	assert.InDelta(t, 50+200/tps, c.Position().X, 1e-9, "new move speed applies")
	assert.InDelta(t, 50+100/tps/tps, c.Position().Y, 1e-9, "new gravity applies")
}

func TestOnlyFile(t *testing.T) {
	cases := []struct {
		name    string
		changed []string
		base    string
		want    bool
	}{
		{"player_only", []string{"prefabs/player_cct.yaml", "/abs/prefabs/player_cct.yaml"}, "player_cct.yaml", true},
		{"mixed", []string{"prefabs/player_cct.yaml", "levels/sandbox.json"}, "player_cct.yaml", false},
		{"none", nil, "player_cct.yaml", false},
		{"no_player_spec", []string{"prefabs/player_cct.yaml"}, "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, onlyFile(c.changed, c.base))
		})
	}
}
