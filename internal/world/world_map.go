package world

import (
	"errors"
	"fmt"

	"raycaster/internal/pixel"
)

// Texture geometry is fixed: square atlas tiles and one panoramic sky strip.
const (
	TileSize  = 256
	SkyWidth  = 1024
	SkyHeight = 240
)

// None marks a cell with no wall, or a ceiling open to the sky.
const None = -1

var (
	ErrMalformedMap    = errors.New("malformed map")
	ErrIndexOutOfRange = errors.New("texture index out of range")
	ErrNotEnclosed     = errors.New("map is not enclosed by walls")
	ErrBadTexture      = errors.New("bad texture")
)

// Tile is a block of decoded pixels, row-major. Atlas tiles are
// TileSize x TileSize, the sky is SkyWidth x SkyHeight.
type Tile []pixel.Pixel

// Map is the read-only level the renderer draws. Layers are stored as Height
// rows of Width columns. Cell coordinates (x, y) come from truncating a
// continuous position: x selects the row and y the column.
type Map struct {
	Width    int
	Height   int
	Walls    [][]int
	Floors   [][]int
	Ceilings [][]int
	StartX   int
	StartY   int
	Textures []Tile
	Sky      Tile
}

// InBounds reports whether cell (x, y) lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Height && y >= 0 && y < m.Width
}

// WallAt returns the wall texture index of cell (x, y), or None when the
// cell is open or off the grid.
func (m *Map) WallAt(x, y int) int {
	if !m.InBounds(x, y) {
		return None
	}
	return m.Walls[x][y]
}

// FloorAt returns the floor texture index of cell (x, y), or None off the grid.
func (m *Map) FloorAt(x, y int) int {
	if !m.InBounds(x, y) {
		return None
	}
	return m.Floors[x][y]
}

// CeilingAt returns the ceiling texture index of cell (x, y), or None when
// the cell is open to the sky or off the grid.
func (m *Map) CeilingAt(x, y int) int {
	if !m.InBounds(x, y) {
		return None
	}
	return m.Ceilings[x][y]
}

// IsTileBlocking reports whether movement into cell (x, y) is blocked.
// Cells off the grid block.
func (m *Map) IsTileBlocking(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Walls[x][y] >= 0
}

// GetStartingPosition returns the camera start in continuous grid units.
func (m *Map) GetStartingPosition() (float64, float64) {
	return float64(m.StartX), float64(m.StartY)
}

// Validate checks every invariant the renderer relies on. A map that fails
// validation must not be rendered.
func (m *Map) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformedMap, m.Width, m.Height)
	}
	if len(m.Textures) == 0 {
		return fmt.Errorf("%w: texture atlas is empty", ErrBadTexture)
	}
	for i, tile := range m.Textures {
		if len(tile) != TileSize*TileSize {
			return fmt.Errorf("%w: tile %d has %d pixels, want %d", ErrBadTexture, i, len(tile), TileSize*TileSize)
		}
	}
	if len(m.Sky) != SkyWidth*SkyHeight {
		return fmt.Errorf("%w: sky has %d pixels, want %d", ErrBadTexture, len(m.Sky), SkyWidth*SkyHeight)
	}

	layers := []struct {
		name      string
		cells     [][]int
		allowNone bool
	}{
		{"wall", m.Walls, true},
		{"floor", m.Floors, false},
		{"ceiling", m.Ceilings, true},
	}
	for _, layer := range layers {
		if err := m.validateLayer(layer.name, layer.cells, layer.allowNone); err != nil {
			return err
		}
	}

	if !m.InBounds(m.StartX, m.StartY) {
		return fmt.Errorf("%w: start (%d,%d) is off the grid", ErrMalformedMap, m.StartX, m.StartY)
	}
	if m.IsTileBlocking(m.StartX, m.StartY) {
		return fmt.Errorf("%w: start (%d,%d) is inside a wall", ErrMalformedMap, m.StartX, m.StartY)
	}

	for x := 0; x < m.Height; x++ {
		for y := 0; y < m.Width; y++ {
			border := x == 0 || y == 0 || x == m.Height-1 || y == m.Width-1
			if border && m.Walls[x][y] < 0 {
				return fmt.Errorf("%w: open border cell (%d,%d)", ErrNotEnclosed, x, y)
			}
		}
	}
	return nil
}

func (m *Map) validateLayer(name string, cells [][]int, allowNone bool) error {
	if len(cells) != m.Height {
		return fmt.Errorf("%w: %s layer has %d rows, want %d", ErrMalformedMap, name, len(cells), m.Height)
	}
	for x, row := range cells {
		if len(row) != m.Width {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrMalformedMap, name, x, len(row), m.Width)
		}
		for y, idx := range row {
			if idx == None && allowNone {
				continue
			}
			if idx < 0 || idx >= len(m.Textures) {
				return fmt.Errorf("%w: %s cell (%d,%d) = %d, atlas has %d tiles", ErrIndexOutOfRange, name, x, y, idx, len(m.Textures))
			}
		}
	}
	return nil
}
