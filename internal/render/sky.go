package render

import (
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/pixel"
	"raycaster/internal/world"
)

// SkyOffset is the sky strip column shown at screen column 0 for a heading
// in radians. One full turn scrolls the whole strip.
func SkyOffset(heading float64) int {
	heading = math.Remainder(heading, 2*math.Pi)
	degrees := mathutil.FloorMod(int(heading*180/math.Pi), 360)
	return int(float64(degrees) * world.SkyWidth / 360.0)
}

// DrawSky fills the top half of dst from the sky strip, scrolled by heading,
// and clears the bottom half. Sky texels are not shaded.
func DrawSky(dst *pixel.Buffer, sky world.Tile, heading float64) {
	const mask = world.SkyWidth - 1
	offset := SkyOffset(heading)
	horizon := dst.Height / 2

	for y := 0; y < horizon; y++ {
		row := dst.Row(y)
		skyRow := sky[mathutil.IntMin(y, world.SkyHeight-1)*world.SkyWidth:]
		for x := range row {
			row[x] = skyRow[(x+offset)&mask]
		}
	}

	clear(dst.Pix[horizon*dst.Width:])
}
