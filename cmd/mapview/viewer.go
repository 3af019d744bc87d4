package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"raycaster/internal/world"
)

type layer int

const (
	layerWall layer = iota
	layerFloor
	layerCeiling
	layerCount
)

func (l layer) String() string {
	switch l {
	case layerWall:
		return "Wall"
	case layerFloor:
		return "Floor"
	default:
		return "Ceiling"
	}
}

type levelInfo struct {
	Path     string
	Map      *world.Map
	Err      error
	swatches []color.RGBA
}

type viewer struct {
	levels     []levelInfo
	levelIndex int
	layer      layer
}

var (
	emptyColor    = color.RGBA{15, 15, 22, 255}
	openSkyColor  = color.RGBA{90, 140, 200, 255}
	borderColor   = color.RGBA{70, 70, 90, 255}
	panelColor    = color.RGBA{20, 20, 35, 255}
	sidebarColor  = color.RGBA{18, 18, 26, 255}
	startColor    = color.RGBA{50, 200, 255, 255}
	missingColor  = color.RGBA{255, 0, 255, 255}
	activeTab     = color.RGBA{70, 70, 95, 255}
	inactiveTab   = color.RGBA{40, 40, 55, 255}
	gridLineColor = color.RGBA{0, 0, 0, 80}
)

func newViewer(levels []levelInfo) *viewer {
	return &viewer{levels: levels}
}

// findLevels lists the .yaml, .yml and .xml files in dir, sorted.
func findLevels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".xml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func loadLevels(paths []string) []levelInfo {
	loader := world.NewMapLoader()
	levels := make([]levelInfo, 0, len(paths))
	for _, p := range paths {
		m, err := loader.LoadMap(p)
		info := levelInfo{Path: p, Map: m, Err: err}
		if m != nil {
			info.swatches = textureSwatches(m.Textures)
		}
		levels = append(levels, info)
	}
	return levels
}

// textureSwatches averages each atlas tile into one color for the map cells.
func textureSwatches(textures []world.Tile) []color.RGBA {
	swatches := make([]color.RGBA, len(textures))
	for i, tile := range textures {
		swatches[i] = averageColor(tile)
	}
	return swatches
}

func averageColor(tile world.Tile) color.RGBA {
	if len(tile) == 0 {
		return missingColor
	}
	var r, g, b int
	for _, p := range tile {
		r += int(p.R())
		g += int(p.G())
		b += int(p.B())
	}
	n := len(tile)
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

// cellColor picks the color of one grid cell for the selected layer.
func (l *levelInfo) cellColor(ly layer, x, y int) color.RGBA {
	var idx int
	switch ly {
	case layerWall:
		idx = l.Map.WallAt(x, y)
		if idx == world.None {
			return emptyColor
		}
	case layerFloor:
		idx = l.Map.FloorAt(x, y)
	default:
		idx = l.Map.CeilingAt(x, y)
		if idx == world.None {
			return openSkyColor
		}
	}
	if idx < 0 || idx >= len(l.swatches) {
		return missingColor
	}
	return l.swatches[idx]
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.layer = (v.layer + 1) % layerCount
	}
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(k) {
			v.layer = layer(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.step(-1)
	}
	return nil
}

func (v *viewer) step(delta int) {
	if len(v.levels) == 0 {
		return
	}
	v.levelIndex = (v.levelIndex + delta + len(v.levels)) % len(v.levels)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(emptyColor)

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, "no levels loaded", 16, 16)
		return
	}

	l := &v.levels[v.levelIndex]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s failed to load: %v", l.Path, l.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	drawMapPanel(screen, l, v.layer, padding, padding, mapAreaW, mapAreaH)
	drawSidebar(screen, l, v.layer, sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// gridLayout fits a cols x rows grid into a w x h panel and centres it.
func gridLayout(x, y, w, h, cols, rows int) (cell, originX, originY int) {
	cell = w / cols
	if alt := h / rows; alt < cell {
		cell = alt
	}
	if cell < 2 {
		cell = 2
	}
	return cell, x + (w-cols*cell)/2, y + (h-rows*cell)/2
}

func drawMapPanel(screen *ebiten.Image, l *levelInfo, ly layer, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, panelColor)
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	m := l.Map
	// Columns run across the screen and rows run down it.
	cell, originX, originY := gridLayout(x, y+40, w, h-40, m.Width, m.Height)
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			drawX := float32(originX + col*cell)
			drawY := float32(originY + row*cell)
			vector.DrawFilledRect(screen, drawX, drawY, float32(cell), float32(cell), l.cellColor(ly, row, col), false)
			if cell >= 8 {
				vector.StrokeRect(screen, drawX, drawY, float32(cell), float32(cell), 1, gridLineColor, false)
			}
		}
	}

	cx := float32(originX + m.StartY*cell + cell/2)
	cy := float32(originY + m.StartX*cell + cell/2)
	radius := float32(cell) * 0.35
	vector.DrawFilledCircle(screen, cx, cy, radius, startColor, true)
	vector.StrokeCircle(screen, cx, cy, radius, 1, color.White, true)

	ebitenutil.DebugPrintAt(screen, filepath.Base(l.Path), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) switch levels, Tab/1-3 layers, Esc quits", x+12, y+24)
}

func drawSidebar(screen *ebiten.Image, l *levelInfo, ly layer, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, sidebarColor)
	drawRectBorder(screen, x, y, w, h, 2, borderColor)

	tabHeight := 24
	tabW := w / int(layerCount)
	for i := layer(0); i < layerCount; i++ {
		clr := inactiveTab
		if i == ly {
			clr = activeTab
		}
		drawFilledRect(screen, x+int(i)*tabW, y, tabW, tabHeight, clr)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%d)", i, i+1), x+int(i)*tabW+6, y+6)
	}
	drawRectBorder(screen, x, y, w, tabHeight, 2, borderColor)

	row := y + tabHeight + 12
	for _, line := range levelStats(l.Map) {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	ebitenutil.DebugPrintAt(screen, "Textures:", x+12, row)
	row += 16
	for i, sw := range l.swatches {
		if row > y+h-16 {
			break
		}
		drawFilledRect(screen, x+12, row+2, 12, 12, sw)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", i), x+30, row)
		row += 16
	}
}

func levelStats(m *world.Map) []string {
	walls, open := 0, 0
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			if m.Walls[row][col] != world.None {
				walls++
			}
			if m.Ceilings[row][col] == world.None {
				open++
			}
		}
	}
	return []string{
		fmt.Sprintf("Cells: %dx%d", m.Width, m.Height),
		fmt.Sprintf("Start: row %d, column %d", m.StartX, m.StartY),
		fmt.Sprintf("Walls: %d", walls),
		fmt.Sprintf("Open to sky: %d", open),
		fmt.Sprintf("Textures: %d", len(m.Textures)),
	}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.Color) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}
