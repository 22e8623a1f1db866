package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/cct"
	"github.com/milk9111/tilephysics/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useDiskDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })
	return dir
}

func TestLoadPhysicsSpec(t *testing.T) {
	spec, err := LoadPhysicsSpec()
	require.NoError(t, err)
	assert.Equal(t, 8, spec.TileInChunkSize)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xc0}, spec.DebugColors.Tile.Color)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, spec.DebugColors.Actor.Color)
}

func TestLoadPhysicsSpecRejectsChunkSize(t *testing.T) {
	dir := useDiskDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "physics.yaml"), []byte("tile_in_chunk_size: 0\n"), 0o644))

	_, err := LoadPhysicsSpec()
	assert.Error(t, err)
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := useDiskDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "physics.yaml"), []byte("debug_draw: true\n"), 0o644))

	spec, err := LoadPhysicsSpec()
	require.NoError(t, err)
	assert.True(t, spec.DebugDraw)
	assert.Equal(t, 8, spec.TileInChunkSize, "missing keys keep their defaults")
	assert.Nil(t, spec.DebugColors.Chunk)

	_, ok := ModTime("prefabs/physics.yaml")
	assert.True(t, ok)
	_, ok = ModTime("sandbox.yaml")
	assert.False(t, ok, "embedded only")
}

func TestLoadPlayerCCTFile(t *testing.T) {
	spec, err := LoadCCTSpec("player_cct.yaml")
	require.NoError(t, err)
	assert.Equal(t, "player", spec.Name)
	assert.Equal(t, 0.1, spec.Skin)
	assert.Equal(t, 180.0, spec.MoveSpeed)
	require.NotNil(t, spec.Actor.Rect)
	assert.Equal(t, cp.Vector{X: 10, Y: 14}, spec.Actor.Rect.HalfSize)
	assert.Equal(t, physics.NewCollisionGroup(physics.GroupCCT), spec.Actor.Layer)
	assert.Equal(t, physics.NewCollisionGroup(physics.GroupObstacle), spec.Actor.Mask)
}

func TestLoadCCTSpec(t *testing.T) {
	dir := useDiskDir(t)
	files := map[string]string{
		"defaults.yaml": "actor:\n  circle: {center: {x: 1, y: 2}, radius: 5}\n",
		"negative.yaml": "actor:\n  circle: {radius: 5}\nskin: -1\n",
		"noshape.yaml":  "skin: 0.5\n",
		"broken.yaml":   "skin: [\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	spec, err := LoadCCTSpec("defaults.yaml")
	require.NoError(t, err)
	assert.Equal(t, cct.DefaultSkin, spec.Skin)
	assert.Equal(t, cct.DefaultMinDisp, spec.MinDisp)
	assert.Equal(t, 5.0, spec.Actor.Circle.Radius)

	_, err = LoadCCTSpec("negative.yaml")
	assert.ErrorIs(t, err, cct.ErrNegativeSkin)
	_, err = LoadCCTSpec("noshape.yaml")
	assert.ErrorIs(t, err, physics.ErrNoShape)
	_, err = LoadCCTSpec("broken.yaml")
	assert.Error(t, err)
	_, err = LoadCCTSpec("missing.yaml")
	assert.Error(t, err)
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.Color
		wantErr bool
	}{
		{"rgb", `"#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"rgba", `"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"no_hash", `"ffffff"`, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"short", `"#fff"`, nil, true},
		{"not_hex", `"#zzzzzz"`, nil, true},
		{"sequence", `[1, 2]`, nil, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Color)
		})
	}

	var unset *YAMLColor
	assert.Equal(t, color.White, unset.Or(color.White))
}
