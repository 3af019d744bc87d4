package world

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"raycaster/internal/pixel"
)

// Sample atlas slots written by GenerateAtlas.
const (
	TextureBrick = iota
	TextureStone
	TextureWood
	TextureTiles
	TextureMoss
	textureCount
)

// SolidTile returns a TileSize x TileSize tile of one color.
func SolidTile(p pixel.Pixel) Tile {
	tile := make(Tile, TileSize*TileSize)
	for i := range tile {
		tile[i] = p
	}
	return tile
}

// SolidSky returns a sky strip of one color.
func SolidSky(p pixel.Pixel) Tile {
	sky := make(Tile, SkyWidth*SkyHeight)
	for i := range sky {
		sky[i] = p
	}
	return sky
}

// GenerateAtlas draws the sample texture atlas: a row of procedural tiles.
func GenerateAtlas() []Tile {
	tiles := make([]Tile, textureCount)
	for i := range tiles {
		tile := make(Tile, TileSize*TileSize)
		for y := 0; y < TileSize; y++ {
			for x := 0; x < TileSize; x++ {
				tile[x+y*TileSize] = texel(i, x, y)
			}
		}
		tiles[i] = tile
	}
	return tiles
}

func texel(kind, x, y int) pixel.Pixel {
	switch kind {
	case TextureBrick:
		row := y / 32
		offset := (row % 2) * 32
		if y%32 < 3 || (x+offset)%64 < 3 {
			return pixel.New(190, 180, 170, 255)
		}
		shade := uint8(150 + (x*7+y*13)%40)
		return pixel.New(shade, 60, 40, 255)
	case TextureStone:
		v := uint8(100 + (x^y)%60)
		return pixel.New(v, v, v+10, 255)
	case TextureWood:
		grain := math.Sin(float64(x)/6+math.Sin(float64(y)/23)*2) * 20
		base := 120 + int(grain)
		return pixel.New(uint8(base), uint8(base*2/3), uint8(base/3), 255)
	case TextureTiles:
		if (x/64+y/64)%2 == 0 {
			return pixel.New(220, 220, 210, 255)
		}
		return pixel.New(60, 70, 90, 255)
	default:
		g := uint8(90 + (x*y)%70)
		return pixel.New(40, g, 50, 255)
	}
}

// GenerateSky draws a dusk gradient with a ridge line so rotation is visible.
func GenerateSky() Tile {
	sky := make(Tile, SkyWidth*SkyHeight)
	for x := 0; x < SkyWidth; x++ {
		angle := float64(x) / SkyWidth * 2 * math.Pi
		ridge := SkyHeight - 40 - int(25*math.Sin(angle*3)+15*math.Sin(angle*7+1))
		for y := 0; y < SkyHeight; y++ {
			var p pixel.Pixel
			if y >= ridge {
				p = pixel.New(30, 35, 50, 255)
			} else {
				t := float64(y) / SkyHeight
				p = pixel.New(uint8(40+160*t), uint8(60+90*t), uint8(140-40*t), 255)
			}
			sky[x+y*SkyWidth] = p
		}
	}
	return sky
}

// Box describes a width x height room walled on its border, starting in the
// middle, with uniform layers.
func Box(width, height, wall, floor, ceiling int) *Description {
	d := &Description{
		Textures: "textures.png",
		Sky:      "sky.png",
		Width:    width,
		Height:   height,
		Start:    &GridPoint{X: height / 2, Y: width / 2},
		Ceiling:  make([][]int, height),
		Wall:     make([][]int, height),
		Floor:    make([][]int, height),
	}
	for x := 0; x < height; x++ {
		d.Ceiling[x] = make([]int, width)
		d.Wall[x] = make([]int, width)
		d.Floor[x] = make([]int, width)
		for y := 0; y < width; y++ {
			d.Ceiling[x][y] = ceiling
			d.Floor[x][y] = floor
			d.Wall[x][y] = None
			if x == 0 || y == 0 || x == height-1 || y == width-1 {
				d.Wall[x][y] = wall
			}
		}
	}
	return d
}

// SampleDescription is the demo level: a walled courtyard with pillars, a
// roofed hall along one side and open sky elsewhere.
func SampleDescription() *Description {
	d := Box(16, 16, TextureBrick, TextureTiles, None)
	d.Start = &GridPoint{X: 12, Y: 8}

	for _, p := range [][2]int{{4, 4}, {4, 11}, {8, 4}, {8, 11}} {
		d.Wall[p[0]][p[1]] = TextureStone
	}
	for y := 1; y < 15; y++ {
		if y != 7 && y != 8 {
			d.Wall[5][y] = TextureWood
		}
	}
	d.Wall[5][4] = TextureStone
	d.Wall[5][11] = TextureStone
	for x := 1; x < 5; x++ {
		for y := 1; y < 15; y++ {
			d.Ceiling[x][y] = TextureWood
			d.Floor[x][y] = TextureStone
		}
	}
	for x := 10; x < 15; x++ {
		d.Floor[x][2] = TextureMoss
		d.Floor[x][13] = TextureMoss
	}
	return d
}

// WriteSampleLevel writes textures.png, sky.png and level.yaml into dir and
// returns the path of the level description.
func WriteSampleLevel(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	atlas := GenerateAtlas()
	strip := make(Tile, 0, len(atlas)*TileSize*TileSize)
	for y := 0; y < TileSize; y++ {
		for _, tile := range atlas {
			strip = append(strip, tile[y*TileSize:(y+1)*TileSize]...)
		}
	}

	desc := SampleDescription()
	if err := writePNG(filepath.Join(dir, desc.Textures), TileImage(strip, len(atlas)*TileSize)); err != nil {
		return "", err
	}
	if err := writePNG(filepath.Join(dir, desc.Sky), TileImage(GenerateSky(), SkyWidth)); err != nil {
		return "", err
	}

	data, err := desc.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to encode level: %w", err)
	}
	levelPath := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(levelPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", levelPath, err)
	}
	return levelPath, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
