package display

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/pixel"
	"raycaster/internal/render"
)

// halfBlock paints the top half of a cell in the foreground color and the
// bottom half in the background color, doubling the vertical resolution.
const halfBlock = '▀'

// TerminalOptions configures the terminal adapter.
type TerminalOptions struct {
	FPS           int
	StatsInterval time.Duration
}

// Terminal drives a Renderer on a tcell screen using truecolor half blocks.
type Terminal struct {
	screen   tcell.Screen
	renderer *render.Renderer
	fps      int
	stats    *statsLogger
}

// NewTerminal wraps an initialized screen. The caller owns the screen and
// calls Fini on it.
func NewTerminal(screen tcell.Screen, r *render.Renderer, opts TerminalOptions) *Terminal {
	fps := opts.FPS
	if fps <= 0 {
		fps = 20
	}
	return &Terminal{
		screen:   screen,
		renderer: r,
		fps:      fps,
		stats:    newStatsLogger(opts.StatsInterval),
	}
}

// Run renders at the configured rate until ctx is done, a quit key is
// pressed or a frame fails. Key presses received between two ticks are
// merged into the next frame's input.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var pending render.Input
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in, quit := KeyIntent(ev)
				if quit {
					return nil
				}
				pending = mergeInput(pending, in)
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			if err := t.renderer.Frame(pending); err != nil {
				return fmt.Errorf("render frame: %w", err)
			}
			pending = render.Input{}
			t.Draw()
			t.screen.Show()
			t.stats.maybeLog(time.Now(), t.renderer.Monitor())
		}
	}
}

// Draw copies the published frame onto the screen, scaled to fit.
func (t *Terminal) Draw() {
	cols, rows := t.screen.Size()
	buf := t.renderer.Pixels()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top, bottom := sampleCell(buf, cols, rows, cx, cy)
			t.screen.SetContent(cx, cy, halfBlock, nil, cellStyle(top, bottom))
		}
	}
}

// sampleCell picks the two pixels shown by terminal cell (cx, cy) of a
// cols x rows grid, nearest neighbour.
func sampleCell(buf *pixel.Buffer, cols, rows, cx, cy int) (top, bottom pixel.Pixel) {
	x := cx * buf.Width / cols
	yTop := (2 * cy) * buf.Height / (2 * rows)
	yBottom := (2*cy + 1) * buf.Height / (2 * rows)
	return buf.At(x, yTop), buf.At(x, yBottom)
}

func cellStyle(top, bottom pixel.Pixel) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R()), int32(top.G()), int32(top.B()))).
		Background(tcell.NewRGBColor(int32(bottom.R()), int32(bottom.G()), int32(bottom.B())))
}
