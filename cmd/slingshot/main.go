// cmd/slingshot/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/logging"
	"github.com/opd-ai/go-slingshot/pkg/render"
	engorender "github.com/opd-ai/go-slingshot/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	createDefault := flag.String("default", "", "Write the default configuration to this path and exit")
	renderer := flag.String("renderer", "engo", "Renderer type: 'engo', 'terminal' or 'null'")
	frames := flag.Int("frames", 600, "Frames to simulate (null renderer only)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	flag.Parse()

	os.Exit(run(*configPath, *createDefault, *renderer, *frames, *fullscreen))
}

var renderers = map[string]bool{"engo": true, "terminal": true, "null": true}

// run returns the process exit code
func run(configPath, createDefault, renderer string, frames int, fullscreen bool) int {
	ctx := context.Background()
	bootLogger := logging.NewLogger()

	if !renderers[renderer] {
		bootLogger.Error(ctx, "Unknown renderer", nil, "renderer", renderer)
		return 2
	}

	if createDefault != "" {
		if err := config.SaveConfig(config.DefaultConfig(), createDefault); err != nil {
			bootLogger.Error(ctx, "Failed to create default configuration", err,
				"config_path", createDefault,
			)
			return 1
		}
		bootLogger.Info(ctx, "Created default configuration file", "config_path", createDefault)
		return 0
	}

	gameConfig, err := config.Load(configPath)
	if err != nil {
		bootLogger.Error(ctx, "Failed to load configuration", err, "config_path", configPath)
		return 1
	}

	logger := logging.NewLoggerWithLevel(gameConfig.LogLevel)
	defer func() { _ = logger.Sync() }()

	session, err := engine.NewSession(gameConfig, logger, nil)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		return 1
	}
	defer session.Close()

	controller, err := input.NewController(session, gameConfig.Keys, logger)
	if err != nil {
		logger.Error(ctx, "Failed to bind keys", err)
		return 1
	}

	if gameConfig.Sound && renderer != "null" {
		sound := render.NewSoundManager(logger)
		if err := sound.Initialize(); err != nil {
			// the game runs without sound
			logger.Warn(ctx, "Audio initialization failed", "error", err.Error())
		} else {
			sound.Attach(session.Bus())
			defer sound.Cleanup()
			defer sound.Detach()
		}
	}

	switch renderer {
	case "engo":
		startEngoRenderer(session, controller, logger, gameConfig, fullscreen)
	case "terminal":
		startTerminalRenderer(session, controller, logger)
	case "null":
		runHeadless(ctx, session, controller, logger, frames)
	}
	return 0
}

// startEngoRenderer opens a window sized to the playfield
func startEngoRenderer(session *engine.Session, controller *input.Controller, logger *logging.Logger, cfg *config.GameConfig, fullscreen bool) {
	scene := engorender.NewGameScene(session, controller, logger)

	opts := engo.RunOptions{
		Title:      "Go Slingshot",
		Width:      int(cfg.Screen.Width),
		Height:     int(cfg.Screen.Height),
		Fullscreen: fullscreen,
		VSync:      true,
	}

	engo.Run(opts, scene)
}

// startTerminalRenderer plays in the current terminal until Escape or a
// signal
func startTerminalRenderer(session *engine.Session, controller *input.Controller, logger *logging.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error(ctx, "Failed to open terminal", err)
		return
	}

	if err := render.NewTerminalFrontend(screen, session, controller, logger).Run(ctx); err != nil {
		logger.Error(ctx, "Terminal frontend failed", err)
	}
}

// runHeadless simulates a fixed number of frames, launching the selected
// projectile once at full pull
func runHeadless(ctx context.Context, session *engine.Session, controller *input.Controller, logger *logging.Logger, frames int) {
	cfg := session.Config()
	nullRenderer := render.NewNullRenderer(logger)

	// pull down and back past the drag limit so the launch is at full power
	anchor := cfg.Launch.Anchor
	pullX := anchor.X - cfg.Launch.MaxDrag
	pullY := anchor.Y - cfg.Launch.MaxDrag/2

	script := []input.Event{
		input.PointerDown{X: anchor.X, Y: anchor.Y, Button: input.ButtonLeft},
		input.PointerDrag{X: pullX, Y: pullY},
		input.PointerUp{X: pullX, Y: pullY, Button: input.ButtonLeft},
	}
	for _, ev := range script {
		if err := controller.Handle(ev); err != nil {
			logger.Error(ctx, "Scripted launch failed", err)
			return
		}
	}

	start := time.Now()
	for i := 0; i < frames && !session.Won(); i++ {
		if err := controller.Handle(input.Tick{}); err != nil {
			logger.Error(ctx, "Tick failed", err, "frame", i)
		}
		session.Snapshot().Draw(nullRenderer)
	}

	snap := session.Snapshot()
	logger.Info(ctx, "Headless run finished",
		"frames", nullRenderer.Frames(),
		"targets_left", snap.Targets,
		"won", session.Won(),
		"elapsed", time.Since(start).String(),
	)
}
