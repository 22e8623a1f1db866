package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/tilephysics/cct"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	return spec, loadInto(filename, &spec)
}

// loadInto decodes onto out, so fields missing from the file keep their current values.
func loadInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// PhysicsSpec holds scene wide settings.
type PhysicsSpec struct {
	TileInChunkSize int            `yaml:"tile_in_chunk_size"`
	DebugDraw       bool           `yaml:"debug_draw"`
	Gravity         float64        `yaml:"gravity"`
	DebugColors     DebugColorSpec `yaml:"debug_colors"`
}

type DebugColorSpec struct {
	Actor *YAMLColor `yaml:"actor"`
	Tile  *YAMLColor `yaml:"tile"`
	Chunk *YAMLColor `yaml:"chunk"`
}

func LoadPhysicsSpec() (*PhysicsSpec, error) {
	spec := PhysicsSpec{TileInChunkSize: 8}
	if err := loadInto("physics.yaml", &spec); err != nil {
		return nil, err
	}
	if spec.TileInChunkSize <= 0 {
		return nil, fmt.Errorf("prefabs: physics.yaml: tile_in_chunk_size must be positive, got %d", spec.TileInChunkSize)
	}
	return &spec, nil
}

// CCTSpec is a controller definition plus the movement tuning of the playground.
type CCTSpec struct {
	Name           string `yaml:"name"`
	cct.Definition `yaml:",inline"`
	MoveSpeed      float64 `yaml:"move_speed"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
}

// LoadCCTSpec loads a controller spec. Skin and min displacement default to
// the cct package defaults when the file leaves them out.
func LoadCCTSpec(filename string) (*CCTSpec, error) {
	spec := CCTSpec{Definition: cct.DefaultDefinition()}
	if err := loadInto(filename, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c's color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
