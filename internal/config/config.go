package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all engine configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Movement   MovementConfig   `yaml:"movement"`
	Level      LevelConfig      `yaml:"level"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Debug      DebugConfig      `yaml:"debug"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

// RenderConfig is the internal resolution; the display scales it to the window.
type RenderConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Workers int `yaml:"workers"` // 0 = one per CPU, 1 = no pool
}

type CameraConfig struct {
	DirX   float64 `yaml:"dir_x"`
	DirY   float64 `yaml:"dir_y"`
	PlaneX float64 `yaml:"plane_x"`
	PlaneY float64 `yaml:"plane_y"`
}

type MovementConfig struct {
	FrameTime     float64 `yaml:"frame_time"`     // nominal seconds per update
	MoveSpeed     float64 `yaml:"move_speed"`     // cells per second
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per second
}

type LevelConfig struct {
	Path string `yaml:"path"`
}

type TerminalConfig struct {
	FPS int `yaml:"fps"`
}

// MonitoringConfig tunes the frame-time alerts written with the stats log.
type MonitoringConfig struct {
	LowFPS float64 `yaml:"low_fps"`
}

type DebugConfig struct {
	ShowHUD       bool          `yaml:"show_hud"`
	StatsInterval time.Duration `yaml:"stats_interval"` // 0 disables the periodic stats log
}

// Default returns the configuration used for any key left out of the file.
func Default() *Config {
	cfg := defaults()
	cfg.derivePlane()
	return cfg
}

// defaults is Default with a zero camera plane, so a configured direction
// can still decide the plane.
func defaults() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			WindowTitle:  "Raycaster",
			TPS:          60,
		},
		Render:     RenderConfig{Width: 320, Height: 240},
		Camera:     CameraConfig{DirX: -1, DirY: 0},
		Movement:   MovementConfig{FrameTime: 0.05, MoveSpeed: 3.0, RotationSpeed: 1.0},
		Level:      LevelConfig{Path: "assets/levels/level.yaml"},
		Terminal:   TerminalConfig{FPS: 20},
		Monitoring: MonitoringConfig{LowFPS: 30},
	}
}

// derivePlane fills a missing camera plane: perpendicular to the direction,
// 0.66 long. A zero plane has no field of view, so it is never kept.
func (c *Config) derivePlane() {
	if c.Camera.PlaneX == 0 && c.Camera.PlaneY == 0 {
		c.Camera.PlaneX, c.Camera.PlaneY = 0.66*c.Camera.DirY, -0.66*c.Camera.DirX
	}
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Display.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.Display.TPS)
	case c.Render.Width < 2 || c.Render.Height < 2:
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	case c.Render.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Render.Workers)
	case c.Movement.FrameTime < 0 || c.Movement.MoveSpeed < 0 || c.Movement.RotationSpeed < 0:
		return fmt.Errorf("%w: movement values must not be negative", ErrInvalidConfig)
	case c.Camera.DirX == 0 && c.Camera.DirY == 0:
		return fmt.Errorf("%w: camera direction is zero", ErrInvalidConfig)
	case c.Terminal.FPS <= 0:
		return fmt.Errorf("%w: terminal fps %d", ErrInvalidConfig, c.Terminal.FPS)
	case c.Debug.StatsInterval < 0:
		return fmt.Errorf("%w: stats interval %s", ErrInvalidConfig, c.Debug.StatsInterval)
	case c.Monitoring.LowFPS < 0:
		return fmt.Errorf("%w: low fps threshold %.1f", ErrInvalidConfig, c.Monitoring.LowFPS)
	}
	return nil
}

// LoadConfig loads the configuration from a YAML file, fills defaults and
// validates the result.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes configuration YAML over Default and validates the result.
// Keys present in the file win, including explicit zeros.
func Parse(data []byte) (*Config, error) {
	config := defaults()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	config.derivePlane()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetRenderWidth() int {
	return c.Render.Width
}

func (c *Config) GetRenderHeight() int {
	return c.Render.Height
}

// GetWorkers resolves the worker count, mapping 0 to the CPU count.
func (c *Config) GetWorkers() int {
	if c.Render.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Render.Workers
}

func (c *Config) GetFrameTime() float64 {
	return c.Movement.FrameTime
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetLevelPath() string {
	return c.Level.Path
}
