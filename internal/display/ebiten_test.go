package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/render"
	"raycaster/internal/threading/monitoring"
)

type fakeKeys map[ebiten.Key]bool

func (f fakeKeys) pressed(k ebiten.Key) bool { return f[k] }

func TestGameUpdateRendersFrame(t *testing.T) {
	r := newSampleRenderer(t, 32, 24)
	keys := fakeKeys{ebiten.KeyW: true}
	g := NewGame(r, GameOptions{ScreenWidth: 64, ScreenHeight: 48})
	g.pressed = keys.pressed

	start := r.Camera()
	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if r.Camera().PosX >= start.PosX {
		t.Errorf("expected forward motion, x went %v -> %v", start.PosX, r.Camera().PosX)
	}
	if r.Monitor().GetCurrentMetrics().Frames != 1 {
		t.Error("expected one rendered frame")
	}
}

func TestGameUpdateEscapeTerminates(t *testing.T) {
	g := NewGame(newSampleRenderer(t, 32, 24), GameOptions{})
	g.pressed = fakeKeys{ebiten.KeyEscape: true}.pressed

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected ebiten.Termination, got %v", err)
	}
}

func TestGameUpdateTogglesHUD(t *testing.T) {
	keys := fakeKeys{}
	g := NewGame(newSampleRenderer(t, 32, 24), GameOptions{})
	g.pressed = keys.pressed

	keys[ebiten.KeyF1] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !g.showHUD {
		t.Fatal("F1 should show the HUD")
	}
	// Held F1 must not toggle again.
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !g.showHUD {
		t.Fatal("held F1 toggled the HUD twice")
	}
	keys[ebiten.KeyF1] = false
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	keys[ebiten.KeyF1] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.showHUD {
		t.Error("second F1 press should hide the HUD")
	}
}

func TestGameUpdateReturnsRenderError(t *testing.T) {
	cam := render.NewCamera(-5, 3)
	r := newSampleRendererWith(t, render.Options{Width: 32, Height: 24, Camera: &cam})
	g := NewGame(r, GameOptions{})
	g.pressed = fakeKeys{}.pressed

	if err := g.Update(); !errors.Is(err, render.ErrRayEscaped) {
		t.Fatalf("expected ErrRayEscaped, got %v", err)
	}
}

func TestGameLayout(t *testing.T) {
	g := NewGame(newSampleRenderer(t, 32, 24), GameOptions{ScreenWidth: 640, ScreenHeight: 480})
	if w, h := g.Layout(1920, 1080); w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
}

func TestHUDLines(t *testing.T) {
	cam := render.NewCamera(12, 8)
	lines := hudLines(cam, render.Ray{Depth: 3.5}, monitoring.Metrics{}, 59.9, 60)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "FPS 59.9") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "pos 12.00, 8.00") || !strings.Contains(lines[1], "heading 0") || !strings.Contains(lines[1], "depth 3.50") {
		t.Errorf("unexpected camera line %q", lines[1])
	}
}

func TestCentreRay(t *testing.T) {
	r := newSampleRenderer(t, 32, 24)
	if err := r.Frame(render.Input{}); err != nil {
		t.Fatalf("frame: %v", err)
	}
	got := centreRay(r.Rays())
	if got.Column != 16 || got.Depth <= 0 {
		t.Errorf("unexpected centre ray %+v", got)
	}
	if centreRay(nil) != (render.Ray{}) {
		t.Error("no rays should give the zero ray")
	}
}
