// Command termcast renders a level into the terminal with half-block
// truecolor cells.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/config"
	"raycaster/internal/display"
	"raycaster/internal/render"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the engine config")
	levelPath := flag.String("level", "", "level description; overrides the config")
	logPath := flag.String("log", "", "append log output to this file while the screen is in use")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	if *levelPath != "" {
		cfg.Level.Path = *levelPath
	}

	// Log lines on stderr would tear the screen, so periodic stats need -log.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		cfg.Debug.StatsInterval = 0
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	m, err := world.NewMapLoader().LoadMap(cfg.GetLevelPath())
	if err != nil {
		return err
	}

	cam := render.NewCamera(m.GetStartingPosition())
	cam.DirX, cam.DirY = cfg.Camera.DirX, cfg.Camera.DirY
	cam.PlaneX, cam.PlaneY = cfg.Camera.PlaneX, cfg.Camera.PlaneY

	pm := monitoring.NewPerformanceMonitor()
	pm.SetLowFPSThreshold(cfg.Monitoring.LowFPS)

	r, err := render.NewRenderer(m, render.Options{
		Width:   cfg.GetRenderWidth(),
		Height:  cfg.GetRenderHeight(),
		Workers: cfg.GetWorkers(),
		Step:    render.NewStep(cfg.GetFrameTime(), cfg.GetMoveSpeed(), cfg.GetRotSpeed()),
		Camera:  &cam,
		Monitor: pm,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := display.NewTerminal(screen, r, display.TerminalOptions{
		FPS:           cfg.Terminal.FPS,
		StatsInterval: cfg.Debug.StatsInterval,
	})
	return term.Run(ctx)
}
