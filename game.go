package main

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/debugdraw"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	logger *zap.Logger

	sceneName string
	spec      *prefabs.SceneSpec
	physSpec  *prefabs.PhysicsSpec
	topLeft   cp.Vector

	world    *ecs.World
	scene    *physics.Scene
	level    *levels.Level
	tilemap  *physics.TilemapCollision
	player   *Player
	triggers []*physics.Trigger
	entities []ecs.Entity
	events   ecs.Queue[physics.TriggerEvent]
	spawn    cp.Vector

	watcher   *prefabs.Watcher
	input     Input
	lastEvent string
	colors    debugdraw.Colors
}

func NewGame(sceneName string, debug bool, logger *zap.Logger) (*Game, error) {
	g := &Game{
		logger:    logger,
		sceneName: sceneName,
		world:     ecs.NewWorld(),
	}
	g.world.AddSystem(ecs.SystemFunc(g.updatePlayer))
	g.world.AddSystem(ecs.SystemFunc(g.updateTriggers))

	if err := g.load(); err != nil {
		return nil, err
	}
	if debug {
		g.scene.SetDebugDraw(true)
	}

	w, err := prefabs.NewWatcher(prefabs.DiskDir, levelsDir)
	if err != nil {
		logger.Warn("hot reload disabled", zap.Error(err))
	} else {
		g.watcher = w
	}
	return g, nil
}

// load builds a fresh scene from the scene spec and swaps it in. The current
// scene stays untouched when anything fails to load.
func (g *Game) load() error {
	physSpec, err := prefabs.LoadPhysicsSpec()
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadSceneSpec(g.sceneName)
	if err != nil {
		return err
	}
	lvl, err := loadLevel(spec.Level)
	if err != nil {
		return fmt.Errorf("scene %s: %w", g.sceneName, err)
	}
	playerSpec, err := prefabs.LoadCCTSpec(spec.Player)
	if err != nil {
		return err
	}

	scene := physics.NewScene(physics.WithLogger(g.logger), physics.WithDebugDraw(physSpec.DebugDraw))
	var entities []ecs.Entity
	create := func() ecs.Entity {
		e := g.world.CreateEntity()
		entities = append(entities, e)
		return e
	}
	abort := func(err error) error {
		for _, e := range entities {
			g.world.DestroyEntity(e)
		}
		return err
	}

	tc, err := levels.BuildCollision(scene, create(), lvl, g.topLeft, physSpec.TileInChunkSize)
	if err != nil {
		return abort(err)
	}

	var triggers []*physics.Trigger
	for _, e := range spec.Entities {
		if t := g.spawnEntity(scene, e, create); t != nil {
			triggers = append(triggers, t)
		}
	}

	spawn, ok := lvl.Spawn(g.topLeft)
	if !ok {
		g.logger.Warn("level has no spawn", zap.String("level", spec.Level))
	}
	player, err := NewPlayer(scene, create(), playerSpec, spawn, physSpec.Gravity, g.logger)
	if err != nil {
		return abort(fmt.Errorf("player %s: %w", spec.Player, err))
	}

	debug := physSpec.DebugDraw || (g.scene != nil && g.scene.IsDebugDrawEnabled())
	g.unload()
	scene.SetDebugDraw(debug)

	g.spec, g.physSpec = spec, physSpec
	g.scene, g.level, g.tilemap = scene, lvl, tc
	g.player, g.spawn, g.triggers = player, spawn, triggers
	g.entities = entities
	g.colors = debugdraw.Colors{
		Actor: physSpec.DebugColors.Actor.Or(colornames.Lime),
		Tile:  physSpec.DebugColors.Tile.Or(colornames.Orangered),
		Chunk: physSpec.DebugColors.Chunk.Or(colornames.Cornflowerblue),
	}

	g.logger.Info("scene loaded",
		zap.String("scene", g.sceneName),
		zap.String("level", spec.Level),
		zap.Int("tiles", tc.ActorCount()),
		zap.Int("actors", len(scene.Actors())),
		zap.Int("triggers", len(triggers)),
	)
	return nil
}

func (g *Game) spawnEntity(scene *physics.Scene, e prefabs.EntityBuildSpec, create func() ecs.Entity) *physics.Trigger {
	log := g.logger.With(zap.String("entity", e.Name))

	if info, ok, err := e.ActorComponent(); err != nil {
		log.Warn("bad actor component", zap.Error(err))
	} else if ok {
		scene.CreateActorFromInfo(create(), prefabs.Offset(info, g.topLeft))
	}

	info, ok, err := e.TriggerComponent()
	if err != nil {
		log.Warn("bad trigger component", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	info.Actor = prefabs.Offset(info.Actor, g.topLeft)
	return scene.CreateTrigger(create(), info)
}

// unload tears down the current scene and frees its entities.
func (g *Game) unload() {
	for _, t := range g.triggers {
		t.Close()
	}
	g.triggers = nil
	if g.player != nil {
		g.player.Close()
		g.player = nil
	}
	if g.scene != nil && g.tilemap != nil {
		g.scene.RemoveTilemapCollision(g.tilemap)
	}
	for _, e := range g.entities {
		g.world.DestroyEntity(e)
	}
	g.entities = nil
	g.events.Drain()
}

func (g *Game) updatePlayer(_ *ecs.World) {
	if g.input.ToggleDebug {
		g.scene.ToggleDebugDraw()
	}
	if g.input.ToggleTrace {
		c := g.player.Controller()
		c.SetDebug(!c.DebugEnabled())
	}
	if g.input.Respawn {
		g.player.Respawn(g.spawn)
	}
	g.player.Update(g.input)
}

func (g *Game) updateTriggers(_ *ecs.World) {
	for _, t := range g.triggers {
		t.Update(&g.events)
	}
	for _, evt := range g.events.Drain() {
		g.onTrigger(evt)
	}
}

func (g *Game) onTrigger(evt physics.TriggerEvent) {
	if evt.Type != physics.TriggerTouch {
		g.lastEvent = fmt.Sprintf("%s %s", evt.Type, evt.Tag)
		g.logger.Info("trigger", zap.String("type", evt.Type), zap.String("tag", evt.Tag), zap.Stringer("other", evt.Other))
	}
	if evt.Type == physics.TriggerEnter && evt.Tag == "goal" && evt.Other == g.player.Entity {
		g.player.Respawn(g.spawn)
	}
}

// reload reacts to watched file changes. An edit to the player spec alone
// re-tunes the controller in place; anything else rebuilds the scene with the
// player kept where it was.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	var changed []string
drain:
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				break drain
			}
			g.logger.Info("file changed", zap.String("file", filepath.Base(name)))
			changed = append(changed, name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			g.logger.Warn("watcher error", zap.Error(err))
		default:
			break drain
		}
	}
	if len(changed) == 0 {
		return
	}
	if onlyFile(changed, g.spec.Player) {
		spec, err := prefabs.LoadCCTSpec(g.spec.Player)
		if err != nil {
			g.logger.Error("reload player spec failed", zap.Error(err))
			return
		}
		g.player.ApplySpec(spec, g.physSpec.Gravity)
		return
	}
	pos := g.player.Controller().Position()
	if err := g.load(); err != nil {
		g.logger.Error("reload failed", zap.Error(err))
		return
	}
	g.player.Respawn(pos)
}

// onlyFile reports whether every changed path names the file base.
func onlyFile(changed []string, base string) bool {
	if base == "" || len(changed) == 0 {
		return false
	}
	for _, name := range changed {
		if filepath.Base(name) != filepath.Base(base) {
			return false
		}
	}
	return true
}

func (g *Game) Update() error {
	g.frames++
	g.reload()
	g.input = ReadInput()
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	drawLevel(screen, g.level, g.topLeft, cp.Vector{})

	for _, a := range g.scene.Actors() {
		if a == g.player.Controller().Actor() {
			continue
		}
		b := a.Bounds()
		vector.StrokeRect(screen, float32(b.L), float32(b.B), float32(b.R-b.L), float32(b.T-b.B), 1, colornames.Gray, false)
	}

	b := g.player.Controller().Actor().Bounds()
	vector.FillRect(screen, float32(b.L), float32(b.B), float32(b.R-b.L), float32(b.T-b.B), colornames.Crimson, false)

	g.scene.RenderDebug(debugdraw.New(screen, debugdraw.Camera{Zoom: 1}, g.colors))

	pos := g.player.Controller().Position()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Frames: %d    FPS: %.2f\nPos: %.1f, %.1f  Grounded: %v  Sweeps: %d\nF3 debug draw  F4 cct trace  R respawn\n%s",
		g.frames, ebiten.ActualFPS(), pos.X, pos.Y, g.player.Grounded(), g.player.LastSweeps(), g.lastEvent))
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.unload()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
