package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.GetScreenWidth() != 640 || cfg.GetScreenHeight() != 480 {
		t.Errorf("unexpected window %dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight())
	}
	if cfg.GetRenderWidth() != 320 || cfg.GetRenderHeight() != 240 {
		t.Errorf("unexpected render size %dx%d", cfg.GetRenderWidth(), cfg.GetRenderHeight())
	}
	if cfg.Camera.DirX != -1 || cfg.Camera.DirY != 0 || cfg.Camera.PlaneY != 0.66 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.GetFrameTime() != 0.05 || cfg.GetMoveSpeed() != 3 || cfg.GetRotSpeed() != 1 {
		t.Errorf("unexpected movement %+v", cfg.Movement)
	}
	if cfg.GetWorkers() != runtime.NumCPU() {
		t.Errorf("expected workers to default to CPU count, got %d", cfg.GetWorkers())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
display:
  screen_width: 1280
  screen_height: 960
  window_title: Test
render:
  width: 160
  height: 120
  workers: 2
camera:
  dir_x: 0
  dir_y: 1
movement:
  move_speed: 4.5
level:
  path: levels/test.yaml
debug:
  show_hud: true
  stats_interval: 5s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.GetScreenWidth() != 1280 || cfg.Display.WindowTitle != "Test" {
		t.Errorf("display section not decoded: %+v", cfg.Display)
	}
	if cfg.GetRenderWidth() != 160 || cfg.GetWorkers() != 2 {
		t.Errorf("render section not decoded: %+v", cfg.Render)
	}
	if cfg.Camera.DirX != 0 || cfg.Camera.DirY != 1 {
		t.Errorf("explicit camera direction overwritten: %+v", cfg.Camera)
	}
	if cfg.Camera.PlaneX != 0.66 || cfg.Camera.PlaneY != 0 {
		t.Errorf("default plane not perpendicular to the direction: %+v", cfg.Camera)
	}
	if cfg.GetMoveSpeed() != 4.5 || cfg.GetRotSpeed() != 1 {
		t.Errorf("movement defaults not merged: %+v", cfg.Movement)
	}
	if cfg.GetLevelPath() != "levels/test.yaml" {
		t.Errorf("unexpected level path %q", cfg.GetLevelPath())
	}
	if !cfg.Debug.ShowHUD || cfg.Debug.StatsInterval != 5*time.Second {
		t.Errorf("debug section not decoded: %+v", cfg.Debug)
	}
	if cfg.Display.TPS != 60 || cfg.Terminal.FPS != 20 {
		t.Errorf("defaults not applied: tps=%d fps=%d", cfg.Display.TPS, cfg.Terminal.FPS)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative render width", "render:\n  width: -4\n"},
		{"render width of one", "render:\n  width: 1\n"},
		{"negative workers", "render:\n  workers: -1\n"},
		{"negative speed", "movement:\n  move_speed: -2\n"},
		{"negative interval", "debug:\n  stats_interval: -1s\n"},
		{"zero screen", "display:\n  screen_width: 0\n"},
		{"zero tps", "display:\n  tps: 0\n"},
		{"zero direction", "camera:\n  dir_x: 0\n"},
		{"negative low fps", "monitoring:\n  low_fps: -1\n"},
		{"not yaml", "render: [\n"},
		{"wrong type", "render:\n  width: wide\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMustLoadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a missing file")
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestShippedConfig(t *testing.T) {
	cfg, err := LoadConfig("../../config.yaml")
	if err != nil {
		t.Fatalf("shipped config: %v", err)
	}
	if cfg.GetRenderWidth() != 320 || cfg.GetRenderHeight() != 240 {
		t.Errorf("expected a 320x240 render, got %dx%d", cfg.GetRenderWidth(), cfg.GetRenderHeight())
	}
	if cfg.GetLevelPath() != "assets/levels/level.yaml" {
		t.Errorf("unexpected level path %q", cfg.GetLevelPath())
	}
}

func TestParseKeepsExplicitZeros(t *testing.T) {
	data := `
render:
  workers: 0
movement:
  frame_time: 0
  rotation_speed: 0
debug:
  stats_interval: 0s
monitoring:
  low_fps: 0
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GetFrameTime() != 0 || cfg.GetRotSpeed() != 0 {
		t.Errorf("explicit zero movement replaced by defaults: %+v", cfg.Movement)
	}
	if cfg.GetMoveSpeed() != 3 {
		t.Errorf("missing move_speed should take the default, got %v", cfg.GetMoveSpeed())
	}
	if cfg.Monitoring.LowFPS != 0 {
		t.Errorf("explicit zero low_fps replaced, got %v", cfg.Monitoring.LowFPS)
	}
}

func TestParseDefaultsMonitoring(t *testing.T) {
	cfg, err := Parse([]byte("level:\n  path: x.yaml\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Monitoring.LowFPS != 30 {
		t.Errorf("expected default low_fps 30, got %v", cfg.Monitoring.LowFPS)
	}
	if cfg.Camera.PlaneY != 0.66 {
		t.Errorf("expected the default plane, got %+v", cfg.Camera)
	}
}
