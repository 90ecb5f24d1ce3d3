package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/softglow/duality/common"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/system"
	"github.com/softglow/duality/prefabs"
	"github.com/softglow/duality/scene"
)

type Game struct {
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	index     *scene.Index
	library   *scene.Library
	input     *Input
	player    ecs.Entity
	view      *debugView

	paused  bool
	pauseUI *ebitenui.UI

	scenePath string
	audioDir  string
	watcher   *prefabs.Watcher
	debug     bool
}

func NewGame(scenePath, audioDir string, debug bool) (*Game, error) {
	spec, err := prefabs.LoadSceneSpec(scenePath)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	g := &Game{
		input:     NewInput(),
		scenePath: scenePath,
		audioDir:  audioDir,
		debug:     debug,
	}
	g.library = scene.NewLibrary(&scene.Material{
		Name:   "dissolve",
		Shader: scene.DissolveShader,
		Floats: map[string]float64{scene.DissolveProperty: 0},
	})
	if err := g.loadScene(spec); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	sceneDir := filepath.Dir(scenePath)
	watcher, err := prefabs.NewWatcher(sceneDir)
	if err != nil {
		log.Printf("scene watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g, nil
}

// loadScene rebuilds the world from a spec. Called at startup and again
// on every hot reload.
func (g *Game) loadScene(spec *prefabs.SceneSpec) error {
	built, err := buildWorld(spec)
	if err != nil {
		return err
	}
	g.world = built.world
	g.index = built.index
	g.player = built.player
	g.view = &debugView{player: built.player, verbose: g.debug}

	dt := 1.0 / common.TickRate
	guides := system.NewGuideSystem(g.library, g.index, dt)
	guides.ScriptDir = filepath.Dir(g.scenePath)

	g.scheduler = ecs.NewScheduler(
		NewInputSystem(g.input, built.player),
		system.NewDualitySystem(g.library, dt),
		system.NewDissolveSystem(g.library, dt),
		system.NewRevealZoneSystem(g.library, g.index),
		guides,
		system.NewGrappleSystem(g.index, dt),
		system.NewLocomotionSystem(dt),
		system.NewPhysicsSystem(g.index, dt),
		system.NewRopeLineSystem(),
		system.NewAudioSystem(g.audioDir),
	)
	return nil
}

func (g *Game) Update() error {
	g.frames++

	g.drainReloads()

	g.input.Update()
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("scene file changed: %s", path)
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("scene watcher: %v", err)
		default:
			if reload {
				spec, err := prefabs.LoadSceneSpec(g.scenePath)
				if err != nil {
					log.Printf("hot reload failed: %v", err)
					return
				}
				if err := g.loadScene(spec); err != nil {
					log.Printf("hot reload failed: %v", err)
				}
			}
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Draw(screen, g.world)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
