// Command mapview shows levels from above, one texture layer at a time.
//
//	mapview [-dir assets/levels] [level.yaml ...]
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	windowWidth  = 1000
	windowHeight = 700
	sidebarWidth = 260
)

func main() {
	dir := flag.String("dir", "assets/levels", "directory scanned for levels when none are given")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		found, err := findLevels(*dir)
		if err != nil {
			log.Printf("Warning: %v", err)
		}
		paths = found
	}

	v := newViewer(loadLevels(paths))

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
