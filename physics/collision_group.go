package physics

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type CollisionGroupType uint8

const (
	GroupObstacle CollisionGroupType = iota
	GroupCCT
	GroupWeapon
	GroupTrigger
	GroupEnemy
	GroupPickup

	collisionGroupTypeCount
)

var collisionGroupNames = [collisionGroupTypeCount]string{
	"obstacle", "cct", "weapon", "trigger", "enemy", "pickup",
}

func (t CollisionGroupType) String() string {
	if t < collisionGroupTypeCount {
		return collisionGroupNames[t]
	}
	return fmt.Sprintf("CollisionGroupType(%d)", uint8(t))
}

// ParseCollisionGroupType maps a case-insensitive name to its type.
func ParseCollisionGroupType(name string) (CollisionGroupType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range collisionGroupNames {
		if n == name {
			return CollisionGroupType(i), true
		}
	}
	return 0, false
}

// CollisionGroup is a bitmask of CollisionGroupType values.
type CollisionGroup uint32

func NewCollisionGroup(types ...CollisionGroupType) CollisionGroup {
	var g CollisionGroup
	for _, t := range types {
		g.Add(t)
	}
	return g
}

func (g *CollisionGroup) Add(t CollisionGroupType) {
	*g |= 1 << t
}

func (g *CollisionGroup) Remove(t CollisionGroupType) {
	*g &^= 1 << t
}

func (g CollisionGroup) Has(t CollisionGroupType) bool {
	return g&(1<<t) != 0
}

func (g *CollisionGroup) Clear() {
	*g = 0
}

// CanCollide reports whether the two groups share any bit.
func (g CollisionGroup) CanCollide(other CollisionGroup) bool {
	return g&other != 0
}

func (g CollisionGroup) String() string {
	if g == 0 {
		return "[]"
	}
	var names []string
	for t := CollisionGroupType(0); t < collisionGroupTypeCount; t++ {
		if g.Has(t) {
			names = append(names, t.String())
		}
	}
	return "[" + strings.Join(names, ",") + "]"
}

// UnmarshalYAML accepts a sequence of group names ([obstacle, cct]) or a raw integer mask.
func (g *CollisionGroup) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		var out CollisionGroup
		for _, n := range names {
			t, ok := ParseCollisionGroupType(n)
			if !ok {
				return fmt.Errorf("physics: unknown collision group %q", n)
			}
			out.Add(t)
		}
		*g = out
		return nil
	case yaml.ScalarNode:
		if t, ok := ParseCollisionGroupType(value.Value); ok {
			*g = NewCollisionGroup(t)
			return nil
		}
		var raw uint32
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("physics: collision group %q: %w", value.Value, err)
		}
		*g = CollisionGroup(raw)
		return nil
	default:
		return fmt.Errorf("physics: collision group must be a list or integer")
	}
}

func (g CollisionGroup) MarshalYAML() (any, error) {
	var names []string
	for t := CollisionGroupType(0); t < collisionGroupTypeCount; t++ {
		if g.Has(t) {
			names = append(names, t.String())
		}
	}
	return names, nil
}
