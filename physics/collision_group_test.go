package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCollisionGroupBits(t *testing.T) {
	var g CollisionGroup
	g.Add(GroupCCT)
	g.Add(GroupTrigger)
	assert.True(t, g.Has(GroupCCT))
	assert.False(t, g.Has(GroupObstacle))
	assert.Equal(t, "[cct,trigger]", g.String())

	g.Remove(GroupCCT)
	assert.False(t, g.Has(GroupCCT))
	assert.True(t, g.CanCollide(NewCollisionGroup(GroupTrigger, GroupEnemy)))
	assert.False(t, g.CanCollide(NewCollisionGroup(GroupEnemy)))

	g.Clear()
	assert.Equal(t, CollisionGroup(0), g)
	assert.False(t, g.CanCollide(^CollisionGroup(0)), "empty group collides with nothing")
}

func TestCollisionGroupYAML(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    CollisionGroup
		wantErr bool
	}{
		{"list", "group: [obstacle, cct]", NewCollisionGroup(GroupObstacle, GroupCCT), false},
		{"mixed_case", "group: [Weapon]", NewCollisionGroup(GroupWeapon), false},
		{"single_name", "group: pickup", NewCollisionGroup(GroupPickup), false},
		{"integer", "group: 5", CollisionGroup(5), false},
		{"empty_list", "group: []", 0, false},
		{"unknown", "group: [lava]", 0, true},
		{"mapping", "group: {a: 1}", 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var doc struct {
				Group CollisionGroup `yaml:"group"`
			}
			err := yaml.Unmarshal([]byte(c.src), &doc)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, doc.Group)
		})
	}
}

func TestCollisionGroupYAMLRoundTrip(t *testing.T) {
	in := NewCollisionGroup(GroupEnemy, GroupObstacle)
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out CollisionGroup
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestParseCollisionGroupType(t *testing.T) {
	got, ok := ParseCollisionGroupType(" Trigger ")
	require.True(t, ok)
	assert.Equal(t, GroupTrigger, got)

	_, ok = ParseCollisionGroupType("nope")
	assert.False(t, ok)
}
