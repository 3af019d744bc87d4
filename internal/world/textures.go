package world

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"raycaster/internal/pixel"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// LoadImage decodes an image file and converts it to RGBA.
func LoadImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// SliceAtlas cuts an atlas image into TileSize x TileSize tiles, left to
// right along its top edge.
func SliceAtlas(img image.Image) ([]Tile, error) {
	rgba := toRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w < TileSize || w%TileSize != 0 || h < TileSize {
		return nil, fmt.Errorf("%w: atlas is %dx%d, want a row of %dx%d tiles", ErrBadTexture, w, h, TileSize, TileSize)
	}

	tiles := make([]Tile, w/TileSize)
	for i := range tiles {
		tiles[i] = copyRegion(rgba, image.Rect(i*TileSize, 0, (i+1)*TileSize, TileSize))
	}
	return tiles, nil
}

// SkyFromImage converts a SkyWidth x SkyHeight panorama into a Tile.
func SkyFromImage(img image.Image) (Tile, error) {
	rgba := toRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w != SkyWidth || h != SkyHeight {
		return nil, fmt.Errorf("%w: sky is %dx%d, want %dx%d", ErrBadTexture, w, h, SkyWidth, SkyHeight)
	}
	return copyRegion(rgba, rgba.Rect), nil
}

func copyRegion(img *image.RGBA, r image.Rectangle) Tile {
	tile := make(Tile, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := img.PixOffset(x, y)
			p := img.Pix[i : i+4 : i+4]
			tile = append(tile, pixel.New(p[0], p[1], p[2], p[3]))
		}
	}
	return tile
}

// TileImage converts a tile back into an image of the given width.
func TileImage(tile Tile, width int) *image.RGBA {
	height := len(tile) / width
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range tile {
		base := i * 4
		img.Pix[base+0] = p.R()
		img.Pix[base+1] = p.G()
		img.Pix[base+2] = p.B()
		img.Pix[base+3] = p.A()
	}
	return img
}
