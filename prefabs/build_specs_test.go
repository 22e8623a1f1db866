package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/cct"
	"github.com/milk9111/tilephysics/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSandboxSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec("sandbox.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sandbox.json", spec.Level)
	assert.Equal(t, "player_cct.yaml", spec.Player)
	require.Len(t, spec.Entities, 4)

	crate := spec.Entities[0]
	info, ok, err := crate.ActorComponent()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, info.Validate())
	assert.Equal(t, physics.NewRect(384, 480, 32, 32), *info.Rect)
	assert.Equal(t, physics.NewCollisionGroup(physics.GroupObstacle), info.Layer, "scalar group name")

	_, ok, err = crate.TriggerComponent()
	require.NoError(t, err)
	assert.False(t, ok)

	goal := spec.Entities[2]
	trig, ok, err := goal.TriggerComponent()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "goal", trig.Tag)
	assert.False(t, trig.EveryFrame)
	assert.True(t, trig.Actor.Mask.Has(physics.GroupCCT))

	wind, _, err := spec.Entities[3].TriggerComponent()
	require.NoError(t, err)
	assert.True(t, wind.EveryFrame)
	require.NotNil(t, wind.Actor.Circle)
	assert.Equal(t, 48.0, wind.Actor.Circle.Radius)
}

func TestSceneSpecErrors(t *testing.T) {
	dir := useDiskDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nolevel.yaml"), []byte("entities: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "badgroup.yaml"), []byte(
		"level: x.json\nentities:\n  - name: a\n    components:\n      actor:\n        layer: [nope]\n"), 0o644))

	_, err := LoadSceneSpec("nolevel.yaml")
	assert.Error(t, err)

	spec, err := LoadSceneSpec("badgroup.yaml")
	require.NoError(t, err)
	_, ok, err := spec.Entities[0].ActorComponent()
	assert.True(t, ok)
	assert.ErrorContains(t, err, "unknown collision group")
}

func TestCCTComponent(t *testing.T) {
	e := EntityBuildSpec{
		Name: "hero",
		Components: map[string]any{
			"cct": map[string]any{
				"min_disp": 0.5,
				"actor": map[string]any{
					"circle": map[string]any{"radius": 6},
					"layer":  "cct",
				},
			},
		},
	}
	def, ok, err := e.CCTComponent()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cct.DefaultSkin, def.Skin)
	assert.Equal(t, 0.5, def.MinDisp)
	require.NoError(t, def.Validate())

	_, ok, err = EntityBuildSpec{}.CCTComponent()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeComponentSpecNil(t *testing.T) {
	info, err := DecodeComponentSpec[physics.ActorInfo](nil)
	require.NoError(t, err)
	assert.ErrorIs(t, info.Validate(), physics.ErrNoShape)
}

func TestOffset(t *testing.T) {
	r := physics.NewRect(0, 0, 4, 4)
	c := physics.Circle{Center: cp.Vector{X: 1, Y: 1}, Radius: 2}
	info := physics.ActorInfo{Rect: &r, Circle: &c}

	moved := Offset(info, cp.Vector{X: 10, Y: -5})
	assert.Equal(t, cp.Vector{X: 12, Y: -3}, moved.Rect.Center)
	assert.Equal(t, cp.Vector{X: 11, Y: -4}, moved.Circle.Center)
	assert.Equal(t, cp.Vector{X: 2, Y: 2}, r.Center, "input is not modified")
}

func TestWatcherReportsSpecAndLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.json"), []byte("{}"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "level.json", filepath.Base(name))
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestFileKinds(t *testing.T) {
	assert.True(t, IsSpecFile("a/b.YAML"))
	assert.True(t, IsSpecFile("b.yml"))
	assert.False(t, IsSpecFile("b.json"))
	assert.True(t, IsLevelFile("levels/sandbox.json"))
	assert.False(t, IsLevelFile("sandbox.tengo"))
}
