package render

import (
	"raycaster/internal/mathutil"
	"raycaster/internal/pixel"
	"raycaster/internal/world"
)

// DrawWalls paints the wall spans of columns [lo, hi) into dst, sampling each
// ray's texture column and darkening it by the ray's depth.
func DrawWalls(dst *pixel.Buffer, rays []Ray, textures []world.Tile, shading *ShadingTable, lo, hi int) {
	const texSize = world.TileSize
	height := int64(dst.Height)

	for i := lo; i < hi; i++ {
		ray := &rays[i]
		if ray.TextureIndex < 0 || ray.LineHeight <= 0 {
			continue
		}
		tile := textures[ray.TextureIndex]
		div := shading.Divisor(depthKey(ray.Depth))
		lineHeight := int64(ray.LineHeight)

		for y := ray.DrawStart; y < ray.DrawEnd; y++ {
			// Fixed point with 8 fractional bits.
			d := int64(y)<<8 - height<<7 + lineHeight<<7
			texY := int(d * texSize / lineHeight / 256)
			texY = mathutil.IntClamp(texY, 0, texSize-1)

			dst.Pix[ray.Column+y*dst.Width] = tile[ray.TextureX+texY*texSize].Shade(div)
		}
	}
}
