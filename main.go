package main

import (
	"errors"
	"flag"
	"log"

	"raycaster/internal/config"
	"raycaster/internal/display"
	"raycaster/internal/render"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the engine config")
	levelPath := flag.String("level", "", "level description (.yaml or legacy .xml); overrides the config")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)
	if *levelPath != "" {
		cfg.Level.Path = *levelPath
	}

	m, err := world.NewMapLoader().LoadMap(cfg.GetLevelPath())
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	r, err := render.NewRenderer(m, renderOptions(cfg, m))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Close()
	log.Printf("Rendering %dx%d with %d worker(s)", cfg.GetRenderWidth(), cfg.GetRenderHeight(), r.Workers())

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	g := display.NewGame(r, display.GameOptions{
		ScreenWidth:   cfg.GetScreenWidth(),
		ScreenHeight:  cfg.GetScreenHeight(),
		ShowHUD:       cfg.Debug.ShowHUD,
		StatsInterval: cfg.Debug.StatsInterval,
	})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func renderOptions(cfg *config.Config, m *world.Map) render.Options {
	cam := render.NewCamera(m.GetStartingPosition())
	cam.DirX, cam.DirY = cfg.Camera.DirX, cfg.Camera.DirY
	cam.PlaneX, cam.PlaneY = cfg.Camera.PlaneX, cfg.Camera.PlaneY

	pm := monitoring.NewPerformanceMonitor()
	pm.SetLowFPSThreshold(cfg.Monitoring.LowFPS)

	return render.Options{
		Width:   cfg.GetRenderWidth(),
		Height:  cfg.GetRenderHeight(),
		Workers: cfg.GetWorkers(),
		Step:    render.NewStep(cfg.GetFrameTime(), cfg.GetMoveSpeed(), cfg.GetRotSpeed()),
		Camera:  &cam,
		Monitor: pm,
	}
}
