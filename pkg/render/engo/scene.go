// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/render"
)

// GameScene runs one session inside an engo window
type GameScene struct {
	session    *engine.Session
	controller *input.Controller
	logger     *logging.Logger

	assets   *AssetManager
	camera   *Camera
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
}

// NewGameScene creates a new game scene
func NewGameScene(session *engine.Session, controller *input.Controller, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GameScene{
		session:    session,
		controller: controller,
		logger:     logger.With("component", "engo_scene"),
		assets:     NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "SlingshotScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Warn(context.Background(), "HUD font unavailable", "error", err.Error())
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.White)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.build(renderSystem, engo.GameWidth(), engo.GameHeight())
	if err := scene.input.SetupInputBindings(scene.session.Config().Keys); err != nil {
		scene.logger.Error(context.Background(), "key bindings unusable", err)
	}

	world.AddSystem(scene.input)
	world.AddSystem(&frameSystem{scene: scene})
	world.AddSystem(scene.hud)
}

// build creates the scene's systems on top of a sprite sink
func (scene *GameScene) build(sink spriteSink, canvasWidth, canvasHeight float32) {
	cfg := scene.session.Config()
	scene.camera = NewCamera(cfg.Screen.Width, cfg.Screen.Height)
	scene.camera.FitTo(canvasWidth, canvasHeight)

	scene.renderer = NewEngoRenderer(sink, scene.camera)
	scene.input = NewInputSystem(scene.controller, scene.camera, scene.logger)
	scene.hud = NewHUDSystem(sink, scene.assets.Font(), render.Legend(cfg.Keys))
}

// frame advances the session one step and redraws it
func (scene *GameScene) frame() {
	if err := scene.controller.Handle(input.Tick{}); err != nil {
		scene.logger.Warn(context.Background(), "tick failed", "error", err.Error())
	}
	snap := scene.session.Snapshot()
	scene.renderer.DrawSnapshot(snap)
	scene.hud.Show(snap)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	scene.logger.Info(context.Background(), "window closed")
}

// frameSystem ticks the session once per engo frame
type frameSystem struct {
	scene *GameScene
}

func (f *frameSystem) Remove(basic ecs.BasicEntity) {}

func (f *frameSystem) Update(dt float32) {
	f.scene.frame()
}
