package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/cct"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"go.uber.org/zap"
)

const (
	tps           = 60.0
	groundReach   = 0.5
	coyoteFrames  = 6
	landingNormal = -0.7
)

// Player drives a cct.Controller with simple platformer movement.
type Player struct {
	Entity     ecs.Entity
	scene      *physics.Scene
	controller *cct.Controller
	spec       *prefabs.CCTSpec
	gravity    float64

	velocity    cp.Vector
	grounded    bool
	coyoteTimer int
	sweeps      int
	groundHits       [1]physics.SweepResult
}

func NewPlayer(scene *physics.Scene, entity ecs.Entity, spec *prefabs.CCTSpec, spawn cp.Vector, gravity float64, logger *zap.Logger) (*Player, error) {
	c, err := cct.New(scene, entity, spec.Definition, cct.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	c.Teleport(spawn)
	return &Player{Entity: entity, scene: scene, controller: c, spec: spec, gravity: gravity}, nil
}

func (p *Player) Controller() *cct.Controller { return p.controller }
func (p *Player) Grounded() bool              { return p.grounded }
func (p *Player) LastSweeps() int             { return p.sweeps }

// ApplySpec swaps in reloaded tuning without moving the player.
func (p *Player) ApplySpec(spec *prefabs.CCTSpec, gravity float64) {
	p.spec = spec
	p.gravity = gravity
	p.controller.Apply(spec.Definition)
}

func (p *Player) Respawn(at cp.Vector) {
	p.controller.Teleport(at)
	p.velocity = cp.Vector{}
}

func (p *Player) Update(in Input) {
	p.grounded = p.checkGround()
	if p.grounded {
		p.coyoteTimer = coyoteFrames
		if p.velocity.Y > 0 {
			p.velocity.Y = 0
		}
	} else if p.coyoteTimer > 0 {
		p.coyoteTimer--
	}

	p.velocity.X = in.MoveX * p.spec.MoveSpeed
	if in.JumpPressed && p.coyoteTimer > 0 {
		p.velocity.Y = -p.spec.JumpSpeed
		p.coyoteTimer = 0
	}
	p.velocity.Y += p.gravity / tps
	if p.spec.MaxFallSpeed > 0 && p.velocity.Y > p.spec.MaxFallSpeed {
		p.velocity.Y = p.spec.MaxFallSpeed
	}

	before := p.controller.Position()
	want := p.velocity.Mult(1 / tps)
	p.sweeps = p.controller.MoveAndSlide(want)
	moved := p.controller.Position().Sub(before)

	// bumping a ceiling cancels the jump
	if want.Y < 0 && moved.Y > want.Y*0.5 {
		p.velocity.Y = 0
	}
}

func (p *Player) checkGround() bool {
	n := p.scene.SweepActor(p.controller.Actor(), cp.Vector{X: 0, Y: 1}, p.controller.Skin()+groundReach, p.groundHits[:])
	return n > 0 && p.groundHits[0].Normal.Y <= landingNormal
}

func (p *Player) Close() {
	p.controller.Close()
}
