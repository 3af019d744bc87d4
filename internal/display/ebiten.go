package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"raycaster/internal/display/keytracker"
	"raycaster/internal/render"
	"raycaster/internal/threading/monitoring"
)

// GameOptions configures the window adapter.
type GameOptions struct {
	ScreenWidth   int
	ScreenHeight  int
	ShowHUD       bool
	StatsInterval time.Duration
}

// Game drives a Renderer from Ebiten's update loop and scales its published
// frame onto the window.
type Game struct {
	renderer *render.Renderer
	opts     GameOptions

	frame *ebiten.Image
	rgba  []byte

	keys    keytracker.KeyStateTracker
	pressed func(ebiten.Key) bool
	showHUD bool
	stats   *statsLogger
}

// NewGame wraps a renderer for ebiten.RunGame.
func NewGame(r *render.Renderer, opts GameOptions) *Game {
	return &Game{
		renderer: r,
		opts:     opts,
		pressed:  ebiten.IsKeyPressed,
		showHUD:  opts.ShowHUD,
		stats:    newStatsLogger(opts.StatsInterval),
	}
}

// Update handles Escape (quit) and F1 (HUD), then renders one frame from
// the held movement keys. A render error ends the game loop.
func (g *Game) Update() error {
	if g.keys.Observe(ebiten.KeyEscape, g.pressed(ebiten.KeyEscape)) {
		return ebiten.Termination
	}
	if g.keys.Observe(ebiten.KeyF1, g.pressed(ebiten.KeyF1)) {
		g.showHUD = !g.showHUD
	}

	if err := g.renderer.Frame(InputFromKeys(g.pressed)); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	g.stats.maybeLog(time.Now(), g.renderer.Monitor())
	return nil
}

// Draw uploads the published frame and stretches it over the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	buf := g.renderer.Pixels()
	if g.frame == nil {
		g.frame = ebiten.NewImage(buf.Width, buf.Height)
	}
	g.rgba = buf.RGBA(g.rgba, true)
	g.frame.WritePixels(g.rgba)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(buf.Width), float64(sh)/float64(buf.Height))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.frame, op)

	if g.showHUD {
		face := basicfont.Face7x13
		lines := hudLines(g.renderer.Camera(), centreRay(g.renderer.Rays()), g.renderer.Monitor().GetCurrentMetrics(), ebiten.ActualFPS(), ebiten.ActualTPS())
		for i, line := range lines {
			y := 4 + face.Ascent + i*face.Height
			ebitext.Draw(screen, line, face, 5, y+1, color.Black)
			ebitext.Draw(screen, line, face, 4, y, color.White)
		}
	}
}

// Layout keeps the configured logical screen size regardless of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.opts.ScreenWidth, g.opts.ScreenHeight
}

func centreRay(rays []render.Ray) render.Ray {
	if len(rays) == 0 {
		return render.Ray{}
	}
	return rays[len(rays)/2]
}

func hudLines(cam render.Camera, centre render.Ray, m monitoring.Metrics, fps, tps float64) []string {
	return []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f", fps, tps),
		fmt.Sprintf("pos %.2f, %.2f  heading %.0f  depth %.2f", cam.PosX, cam.PosY, cam.HeadingDegrees(), centre.Depth),
		fmt.Sprintf("cast %s  sky %s", m.Stage(monitoring.StageCast).Round(time.Microsecond), m.Stage(monitoring.StageSky).Round(time.Microsecond)),
		fmt.Sprintf("flats %s  walls %s", m.Stage(monitoring.StageFlats).Round(time.Microsecond), m.Stage(monitoring.StageWalls).Round(time.Microsecond)),
	}
}
