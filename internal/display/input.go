package display

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/internal/render"
)

// InputFromKeys maps held keys to movement intent: W/Up and S/Down move,
// A/Left and D/Right turn.
func InputFromKeys(pressed func(ebiten.Key) bool) render.Input {
	return render.Input{
		Forward:     pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp),
		Backward:    pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown),
		RotateLeft:  pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft),
		RotateRight: pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight),
	}
}

// KeyIntent maps one terminal key event to movement intent. Terminals only
// report presses, so every event is one frame of motion. quit is set for
// Escape, Ctrl-C and q.
func KeyIntent(ev *tcell.EventKey) (in render.Input, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return in, true
	case tcell.KeyUp:
		in.Forward = true
	case tcell.KeyDown:
		in.Backward = true
	case tcell.KeyLeft:
		in.RotateLeft = true
	case tcell.KeyRight:
		in.RotateRight = true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			return in, true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return in, true
		case 'w', 'W':
			in.Forward = true
		case 's', 'S':
			in.Backward = true
		case 'a', 'A':
			in.RotateLeft = true
		case 'd', 'D':
			in.RotateRight = true
		}
	}
	return in, false
}

func mergeInput(a, b render.Input) render.Input {
	return render.Input{
		Forward:     a.Forward || b.Forward,
		Backward:    a.Backward || b.Backward,
		RotateLeft:  a.RotateLeft || b.RotateLeft,
		RotateRight: a.RotateRight || b.RotateRight,
	}
}
