package display

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/render"
)

func TestInputFromKeys(t *testing.T) {
	tests := []struct {
		name string
		held []ebiten.Key
		want render.Input
	}{
		{"nothing", nil, render.Input{}},
		{"w", []ebiten.Key{ebiten.KeyW}, render.Input{Forward: true}},
		{"up arrow", []ebiten.Key{ebiten.KeyArrowUp}, render.Input{Forward: true}},
		{"s and left", []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowLeft}, render.Input{Backward: true, RotateLeft: true}},
		{"d", []ebiten.Key{ebiten.KeyD}, render.Input{RotateRight: true}},
		{"a and right arrow", []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowRight}, render.Input{RotateLeft: true, RotateRight: true}},
		{"unrelated", []ebiten.Key{ebiten.KeyQ}, render.Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := map[ebiten.Key]bool{}
			for _, k := range tt.held {
				held[k] = true
			}
			got := InputFromKeys(func(k ebiten.Key) bool { return held[k] })
			if got != tt.want {
				t.Errorf("InputFromKeys = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestKeyIntent(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		mod      tcell.ModMask
		want     render.Input
		wantQuit bool
	}{
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, render.Input{}, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, tcell.ModCtrl, render.Input{}, true},
		{"q", tcell.KeyRune, 'q', tcell.ModNone, render.Input{}, true},
		{"up", tcell.KeyUp, 0, tcell.ModNone, render.Input{Forward: true}, false},
		{"down", tcell.KeyDown, 0, tcell.ModNone, render.Input{Backward: true}, false},
		{"left", tcell.KeyLeft, 0, tcell.ModNone, render.Input{RotateLeft: true}, false},
		{"right", tcell.KeyRight, 0, tcell.ModNone, render.Input{RotateRight: true}, false},
		{"w", tcell.KeyRune, 'w', tcell.ModNone, render.Input{Forward: true}, false},
		{"S", tcell.KeyRune, 'S', tcell.ModNone, render.Input{Backward: true}, false},
		{"a", tcell.KeyRune, 'a', tcell.ModNone, render.Input{RotateLeft: true}, false},
		{"d", tcell.KeyRune, 'd', tcell.ModNone, render.Input{RotateRight: true}, false},
		{"other rune", tcell.KeyRune, 'x', tcell.ModNone, render.Input{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tt.mod)
			got, quit := KeyIntent(ev)
			if got != tt.want || quit != tt.wantQuit {
				t.Errorf("KeyIntent = %+v, %v; want %+v, %v", got, quit, tt.want, tt.wantQuit)
			}
		})
	}
}

func TestMergeInput(t *testing.T) {
	got := mergeInput(render.Input{Forward: true}, render.Input{RotateLeft: true})
	want := render.Input{Forward: true, RotateLeft: true}
	if got != want {
		t.Errorf("mergeInput = %+v, want %+v", got, want)
	}
}
