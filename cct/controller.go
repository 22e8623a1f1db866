package cct

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"go.uber.org/zap"
)

// Controller moves a loose actor through the scene with move-and-slide.
type Controller struct {
	scene   *physics.Scene
	actor   *physics.Actor
	skin    float64
	minDisp float64
	debug   bool
	logger  *zap.Logger

	hit [1]physics.SweepResult
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = common.OrNop(l) }
}

// New creates the controller's actor in scene. The controller owns the actor
// until Close.
func New(scene *physics.Scene, entity ecs.Entity, def Definition, opts ...Option) (*Controller, error) {
	if scene == nil {
		return nil, ErrNoScene
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		scene:   scene,
		skin:    def.Skin,
		minDisp: def.MinDisp,
		debug:   def.Debug,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.actor = scene.CreateActorFromInfo(entity, def.Actor)
	return c, nil
}

func (c *Controller) Actor() *physics.Actor { return c.actor }

func (c *Controller) Position() cp.Vector {
	if c.actor == nil {
		return cp.Vector{}
	}
	return c.actor.Position()
}

// Teleport moves the actor without any collision checks.
func (c *Controller) Teleport(p cp.Vector) {
	if c.actor == nil {
		return
	}
	c.actor.MoveTo(p)
}

func (c *Controller) Skin() float64         { return c.skin }
func (c *Controller) SetSkin(skin float64)  { c.skin = max(skin, 0) }
func (c *Controller) MinDisp() float64      { return c.minDisp }
func (c *Controller) SetMinDisp(d float64)  { c.minDisp = max(d, 0) }
func (c *Controller) SetDebug(enabled bool) { c.debug = enabled }
func (c *Controller) DebugEnabled() bool    { return c.debug }

// Apply copies tuning values from def without recreating the actor.
func (c *Controller) Apply(def Definition) {
	c.SetSkin(def.Skin)
	c.SetMinDisp(def.MinDisp)
	c.debug = def.Debug
	if c.actor != nil {
		c.actor.SetCollisionLayer(def.Actor.Layer)
		c.actor.SetCollisionMask(def.Actor.Mask)
	}
}

// MoveAndSlide moves the actor by disp, stopping skin short of obstacles and
// sliding the rest of the motion along the surfaces it hits. Moves no longer
// than the minimum displacement are ignored. It returns the number of sweeps.
func (c *Controller) MoveAndSlide(disp cp.Vector) int {
	if c.actor == nil || c.actor.Removed() {
		return 0
	}

	remaining := disp.Length()
	if remaining <= c.minDisp {
		return 0
	}
	dir := disp
	dirNorm := dir.Mult(1 / remaining)

	sweeps := 0
	for i := 0; i < MaxIter; i++ {
		if remaining <= c.minDisp || dir.Dot(disp) <= 0 {
			break
		}

		n := c.scene.SweepActor(c.actor, dirNorm, remaining+c.skin, c.hit[:])
		sweeps++
		if n == 0 {
			c.actor.Move(dir)
			c.trace(i, "free", dir, nil)
			break
		}

		hit := &c.hit[0]
		if hit.InitialOverlap {
			// penetration is not resolved here
			c.actor.Move(dir)
			c.trace(i, "overlap", dir, hit)
			break
		}

		advance := 0.0
		if hit.T > c.skin {
			advance = hit.T - c.skin
			c.actor.Move(dirNorm.Mult(advance))
		}
		remaining -= advance
		c.trace(i, "hit", dirNorm.Mult(advance), hit)

		dir, _ = common.DecomposeVector(dirNorm.Mult(remaining), hit.Normal)
		remaining = dir.Length()
		if remaining == 0 {
			break
		}
		dirNorm = dir.Mult(1 / remaining)
	}
	return sweeps
}

func (c *Controller) trace(iter int, what string, moved cp.Vector, hit *physics.SweepResult) {
	if !c.debug {
		return
	}
	fields := []zap.Field{
		zap.Int("iter", iter),
		zap.String("step", what),
		zap.Float64("dx", moved.X),
		zap.Float64("dy", moved.Y),
		zap.Float64("x", c.actor.Position().X),
		zap.Float64("y", c.actor.Position().Y),
	}
	if hit != nil {
		fields = append(fields,
			zap.Float64("t", hit.T),
			zap.Stringer("flags", hit.Flags),
			zap.Float64("nx", hit.Normal.X),
			zap.Float64("ny", hit.Normal.Y),
		)
	}
	c.logger.Debug("cct slide", fields...)
}

// Close removes the controller's actor from the scene.
func (c *Controller) Close() {
	if c.actor == nil {
		return
	}
	c.scene.RemoveActor(c.actor)
	c.actor = nil
}
