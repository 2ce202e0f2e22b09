package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Render  RenderConfig  `toml:"render"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type GameConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Level    string        `toml:"level"`
	TileSize float32       `toml:"tile_size"`
	Weapons  string        `toml:"weapons"`  // empty uses the built-in arsenal
	Capacity int           `toml:"capacity"` // entities presized in the registry
}

type RenderConfig struct {
	Backend string `toml:"backend"` // "window" or "term"
	Debug   bool   `toml:"debug"`   // ImGui inspector overlay, window backend only
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Safe House",
			Width:  1000,
			Height: 500,
		},
		Game: GameConfig{
			TickRate: time.Second / 60,
			Level:    "assets/levels/safehouse.txt",
			TileSize: 100,
			Capacity: 1024,
		},
		Render: RenderConfig{
			Backend: "window",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var (
	ErrBadBackend  = errors.New("unknown render backend")
	ErrBadTickRate = errors.New("tick rate must be positive")
	ErrBadTileSize = errors.New("tile size must be positive")
)

func (c *Config) Validate() error {
	switch c.Render.Backend {
	case "window", "term":
	default:
		return fmt.Errorf("%w: %q", ErrBadBackend, c.Render.Backend)
	}
	if c.Game.TickRate <= 0 {
		return ErrBadTickRate
	}
	if c.Game.TileSize <= 0 {
		return ErrBadTileSize
	}
	return nil
}
