package prefabs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/cct"
	"github.com/milk9111/tilephysics/physics"
	"gopkg.in/yaml.v3"
)

// Component keys understood by SceneSpec.
const (
	ComponentActor   = "actor"
	ComponentTrigger = "trigger"
	ComponentCCT     = "cct"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// SceneSpec lists the entities placed on top of a level.
type SceneSpec struct {
	Level    string            `yaml:"level"`
	Player   string            `yaml:"player"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Level == "" {
		return nil, fmt.Errorf("prefabs: %s: level is required", filename)
	}
	return &spec, nil
}

// ActorComponent decodes the entity's "actor" component.
func (e EntityBuildSpec) ActorComponent() (physics.ActorInfo, bool, error) {
	return decodeComponent[physics.ActorInfo](e, ComponentActor)
}

// TriggerComponent decodes the entity's "trigger" component.
func (e EntityBuildSpec) TriggerComponent() (physics.TriggerInfo, bool, error) {
	return decodeComponent[physics.TriggerInfo](e, ComponentTrigger)
}

// CCTComponent decodes the entity's "cct" component onto the controller defaults.
func (e EntityBuildSpec) CCTComponent() (cct.Definition, bool, error) {
	raw, ok := e.Components[ComponentCCT]
	if !ok {
		return cct.Definition{}, false, nil
	}
	def := cct.DefaultDefinition()
	b, err := yaml.Marshal(raw)
	if err != nil {
		return def, true, err
	}
	if err := yaml.Unmarshal(b, &def); err != nil {
		return def, true, fmt.Errorf("prefabs: entity %s: cct: %w", e.Name, err)
	}
	return def, true, nil
}

func decodeComponent[T any](e EntityBuildSpec, key string) (T, bool, error) {
	raw, ok := e.Components[key]
	if !ok {
		var zero T
		return zero, false, nil
	}
	v, err := DecodeComponentSpec[T](raw)
	if err != nil {
		return v, true, fmt.Errorf("prefabs: entity %s: %s: %w", e.Name, key, err)
	}
	return v, true, nil
}

// Offset moves every shape of info by offset, used to place specs relative to a level origin.
func Offset(info physics.ActorInfo, offset cp.Vector) physics.ActorInfo {
	if info.Rect != nil {
		r := *info.Rect
		r.Center = r.Center.Add(offset)
		info.Rect = &r
	}
	if info.Circle != nil {
		c := *info.Circle
		c.Center = c.Center.Add(offset)
		info.Circle = &c
	}
	return info
}
