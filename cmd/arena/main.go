package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/game"
	"github.com/plus3/sparsecs/internal/config"
	"github.com/plus3/sparsecs/level"
	"github.com/plus3/sparsecs/render/term"
	"github.com/plus3/sparsecs/render/window"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	backend := flag.String("render", "", "Override the renderer: window or term.")
	debug := flag.Bool("debug", false, "Enable the ImGui inspector overlay (window renderer, F1 toggles).")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *backend != "" {
		cfg.Render.Backend = *backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if *debug {
		cfg.Render.Debug = true
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	lvl, err := level.Load(cfg.Game.Level, cfg.Game.TileSize, level.WithLogger(log.Named("level")))
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	log.Info("level loaded",
		zap.String("path", cfg.Game.Level),
		zap.Int("width", lvl.Width()),
		zap.Int("height", lvl.Height()))

	arsenal := game.DefaultArsenal()
	if cfg.Game.Weapons != "" {
		if arsenal, err = game.LoadArsenal(cfg.Game.Weapons); err != nil {
			return fmt.Errorf("weapons: %w", err)
		}
	}

	world := game.NewWorld(lvl, log, ecs.WithCapacity(cfg.Game.Capacity))
	scene := game.NewSafeHouse(world.Registry, arsenal)
	world.Registry.Apply()
	log.Info("scene ready",
		zap.Uint32("player", uint32(scene.Player)),
		zap.Uint32("enemy", uint32(scene.Enemy)),
		zap.Int("weapons", len(arsenal)))

	switch cfg.Render.Backend {
	case "term":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return term.Run(ctx, world, lvl, term.Options{
			TickRate: cfg.Game.TickRate,
			Player:   scene.Player,
			Log:      log.Named("term"),
		})
	default:
		return window.Run(world, lvl, window.Options{
			Title:    cfg.Window.Title,
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			TickRate: cfg.Game.TickRate,
			Debug:    cfg.Render.Debug,
			Log:      log.Named("window"),
		})
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
