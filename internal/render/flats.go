package render

import (
	"math"

	"raycaster/internal/pixel"
	"raycaster/internal/world"
)

// FlatView is the camera state the floor and ceiling projection needs.
type FlatView struct {
	PosX, PosY float64
	Heading    float64
}

// FlatRows returns the screen row range [lo, hi) DrawFlats iterates over.
// Each screenY in it owns floor row screenY-1 and ceiling row height-screenY.
func FlatRows(height int) (lo, hi int) {
	return height/2 + 1, height + 1
}

// DrawFlats projects the floor and ceiling layers for screenY values in
// [lo, hi). Every projected line is one constant distance from the viewer,
// so it is walked with a fixed texel step and shaded once.
func DrawFlats(dst *pixel.Buffer, m *world.Map, shading *ShadingTable, view FlatView, lo, hi int) {
	const (
		texSize = world.TileSize
		mask    = texSize - 1
	)
	width, height := dst.Width, dst.Height
	sin, cos := math.Sincos(view.Heading)

	for screenY := lo; screenY < hi; screenY++ {
		distance := float64(height) / (2*float64(screenY) - float64(height))
		key := depthKey(distance)
		distance *= texSize
		scale := distance / float64(height)

		lineDX := -sin * scale
		lineDY := cos * scale
		spaceX := -view.PosX*texSize + distance*cos - float64(width/2)*lineDX
		spaceY := view.PosY*texSize + distance*sin - float64(width/2)*lineDY

		div := uint8(FogDivisor)
		if key > 0 {
			div = shading.Divisor(key)
		}

		floorRow := dst.Row(screenY - 1)
		ceilingRow := dst.Row(height - screenY)

		for x := 0; x < width; x++ {
			texX := int(spaceX) & mask
			texY := int(spaceY) & mask
			cellX := int(math.Abs(spaceX / texSize))
			cellY := int(math.Abs(spaceY / texSize))

			if m.InBounds(cellX, cellY) {
				texel := texX + texY*texSize
				floorRow[x] = m.Textures[m.Floors[cellX][cellY]][texel].Shade(div)
				if ceiling := m.Ceilings[cellX][cellY]; ceiling != world.None {
					ceilingRow[x] = m.Textures[ceiling][texel].Shade(div)
				}
			}

			spaceX += lineDX
			spaceY += lineDY
		}
	}
}
