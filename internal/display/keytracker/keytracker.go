// Package keytracker turns Ebiten's level-triggered key state into edge
// events.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of every key it is asked about.
type KeyStateTracker struct {
	prevPressed map[ebiten.Key]bool
}

// Observe records the current state of key and reports whether it went
// from released to pressed since the previous observation.
func (k *KeyStateTracker) Observe(key ebiten.Key, pressed bool) bool {
	if k.prevPressed == nil {
		k.prevPressed = make(map[ebiten.Key]bool)
	}
	justPressed := pressed && !k.prevPressed[key]
	k.prevPressed[key] = pressed
	return justPressed
}
