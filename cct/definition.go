package cct

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilephysics/physics"
)

const (
	DefaultSkin    = 0.1
	DefaultMinDisp = 1.0

	// MaxIter caps the sweeps of one MoveAndSlide call.
	MaxIter = 10
)

var (
	ErrNoScene       = errors.New("cct: scene is nil")
	ErrNegativeSkin  = errors.New("cct: skin must not be negative")
	ErrNegativeMinDp = errors.New("cct: min displacement must not be negative")
)

// Definition describes a character controller.
type Definition struct {
	Actor   physics.ActorInfo `yaml:"actor"`
	Skin    float64           `yaml:"skin"`
	MinDisp float64           `yaml:"min_disp"`
	// Debug logs each slide iteration at debug level.
	Debug bool `yaml:"debug"`
}

// DefaultDefinition returns a definition with the default skin and minimum
// displacement and no shape.
func DefaultDefinition() Definition {
	return Definition{Skin: DefaultSkin, MinDisp: DefaultMinDisp}
}

func (d Definition) Validate() error {
	if err := d.Actor.Validate(); err != nil {
		return fmt.Errorf("cct: actor: %w", err)
	}
	if d.Skin < 0 {
		return ErrNegativeSkin
	}
	if d.MinDisp < 0 {
		return ErrNegativeMinDp
	}
	return nil
}
