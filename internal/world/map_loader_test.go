package world

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"raycaster/internal/pixel"
)

func testAtlas(n int) []Tile {
	tiles := make([]Tile, n)
	for i := range tiles {
		tiles[i] = SolidTile(pixel.New(uint8(10*i), 0, 0, 255))
	}
	return tiles
}

func TestMapLoader_LoadSampleLevel(t *testing.T) {
	dir := t.TempDir()
	levelPath, err := WriteSampleLevel(dir)
	if err != nil {
		t.Fatalf("write sample level: %v", err)
	}

	m, err := NewMapLoader().LoadMap(levelPath)
	if err != nil {
		t.Fatalf("load map: %v", err)
	}

	if m.Width != 16 || m.Height != 16 {
		t.Errorf("expected 16x16 map, got %dx%d", m.Width, m.Height)
	}
	if len(m.Textures) != textureCount {
		t.Errorf("expected %d textures, got %d", textureCount, len(m.Textures))
	}
	if len(m.Sky) != SkyWidth*SkyHeight {
		t.Errorf("unexpected sky size %d", len(m.Sky))
	}
	if m.StartX != 12 || m.StartY != 8 {
		t.Errorf("expected start (12,8), got (%d,%d)", m.StartX, m.StartY)
	}

	// Decoded pixels must round-trip through PNG unchanged.
	want := GenerateAtlas()
	for i := range want {
		if m.Textures[i][1234] != want[i][1234] {
			t.Errorf("texture %d pixel mismatch: got %#08x want %#08x", i, uint32(m.Textures[i][1234]), uint32(want[i][1234]))
		}
	}
	if m.WallAt(5, 4) != TextureStone {
		t.Errorf("expected stone pillar at (5,4), got %d", m.WallAt(5, 4))
	}
	if m.CeilingAt(12, 8) != None {
		t.Errorf("expected open sky above the start cell")
	}
}

func TestMapLoader_MissingAsset(t *testing.T) {
	dir := t.TempDir()
	data, err := Box(4, 4, 0, 0, None).Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	levelPath := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(levelPath, data, 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}

	if _, err := NewMapLoader().LoadMap(levelPath); err == nil {
		t.Fatal("expected an error for missing texture files")
	}
}

func TestMapLoader_RejectsWrongSkySize(t *testing.T) {
	ml := &MapLoader{ImageLoader: func(path string) (image.Image, error) {
		if filepath.Base(path) == "sky.png" {
			return image.NewRGBA(image.Rect(0, 0, 512, 240)), nil
		}
		return image.NewRGBA(image.Rect(0, 0, TileSize, TileSize)), nil
	}}

	dir := t.TempDir()
	data, _ := Box(4, 4, 0, 0, None).Marshal()
	levelPath := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(levelPath, data, 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}

	_, err := ml.LoadMap(levelPath)
	if !errors.Is(err, ErrBadTexture) {
		t.Fatalf("expected ErrBadTexture, got %v", err)
	}
}

func TestParseDescription_MissingNodes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no start", "textures: a.png\nsky: b.png\nwidth: 1\nheight: 1\nceiling: [[0]]\nwall: [[0]]\nfloor: [[0]]\n"},
		{"no floor", "textures: a.png\nsky: b.png\nwidth: 1\nheight: 1\nstart: {x: 0, y: 0}\nceiling: [[0]]\nwall: [[0]]\n"},
		{"bad width", "textures: a.png\nsky: b.png\nwidth: zero\nheight: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescription([]byte(tt.yaml))
			if !errors.Is(err, ErrMalformedMap) {
				t.Fatalf("expected ErrMalformedMap, got %v", err)
			}
		})
	}
}

func TestDescriptionBuild_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Description)
		want   error
	}{
		{"wall index past atlas", func(d *Description) { d.Wall[0][0] = 7 }, ErrIndexOutOfRange},
		{"floor cannot be none", func(d *Description) { d.Floor[2][2] = None }, ErrIndexOutOfRange},
		{"ceiling index past atlas", func(d *Description) { d.Ceiling[2][2] = 3 }, ErrIndexOutOfRange},
		{"open border", func(d *Description) { d.Wall[0][2] = None }, ErrNotEnclosed},
		{"short row", func(d *Description) { d.Floor[1] = d.Floor[1][:3] }, ErrMalformedMap},
		{"missing row", func(d *Description) { d.Wall = d.Wall[:4] }, ErrMalformedMap},
		{"start in wall", func(d *Description) { d.Start = &GridPoint{X: 0, Y: 0} }, ErrMalformedMap},
		{"start off grid", func(d *Description) { d.Start = &GridPoint{X: 9, Y: 1} }, ErrMalformedMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Box(5, 5, 0, 1, 2)
			tt.mutate(d)
			_, err := d.Build(testAtlas(3), SolidSky(0))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDescriptionBuild_NormalizesNegativeIndices(t *testing.T) {
	d := Box(5, 5, 0, 0, -7)
	d.Wall[2][3] = -42

	m, err := d.Build(testAtlas(1), SolidSky(0))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Ceilings[2][2] != None {
		t.Errorf("expected ceiling -7 normalized to None, got %d", m.Ceilings[2][2])
	}
	if m.Walls[2][3] != None {
		t.Errorf("expected wall -42 normalized to None, got %d", m.Walls[2][3])
	}
	// The description itself must not be modified.
	if d.Wall[2][3] != -42 {
		t.Errorf("Build mutated the description")
	}
}

func TestMapAccessors(t *testing.T) {
	d := Box(6, 4, 0, 1, None)
	m, err := d.Build(testAtlas(2), SolidSky(0))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// x selects the row (Height), y the column (Width).
	if !m.InBounds(3, 5) || m.InBounds(4, 0) || m.InBounds(0, 6) || m.InBounds(-1, 0) {
		t.Error("InBounds disagrees with row/column addressing")
	}
	if !m.IsTileBlocking(0, 3) || m.IsTileBlocking(1, 1) {
		t.Error("IsTileBlocking disagrees with the wall layer")
	}
	if !m.IsTileBlocking(-1, 2) || !m.IsTileBlocking(2, 99) {
		t.Error("off-grid cells must block")
	}
	if m.FloorAt(1, 1) != 1 || m.FloorAt(10, 10) != None {
		t.Error("unexpected FloorAt result")
	}
	x, y := m.GetStartingPosition()
	if x != 2 || y != 3 {
		t.Errorf("expected start (2,3), got (%v,%v)", x, y)
	}
}

func TestSliceAtlas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3*TileSize, TileSize))
	// Mark the first pixel of the second tile.
	img.Pix[img.PixOffset(TileSize, 0)] = 200
	img.Pix[img.PixOffset(TileSize, 0)+3] = 255

	tiles, err := SliceAtlas(img)
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if len(tiles) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(tiles))
	}
	if tiles[1][0] != pixel.New(200, 0, 0, 255) {
		t.Errorf("tile 1 origin pixel = %#08x", uint32(tiles[1][0]))
	}
	if tiles[0][0] != 0 {
		t.Errorf("tile 0 origin pixel should be empty")
	}

	if _, err := SliceAtlas(image.NewRGBA(image.Rect(0, 0, TileSize+10, TileSize))); !errors.Is(err, ErrBadTexture) {
		t.Errorf("expected ErrBadTexture for ragged atlas, got %v", err)
	}
	if _, err := SliceAtlas(image.NewRGBA(image.Rect(0, 0, TileSize, 100))); !errors.Is(err, ErrBadTexture) {
		t.Errorf("expected ErrBadTexture for short atlas, got %v", err)
	}
}

func TestSkyFromImage(t *testing.T) {
	if _, err := SkyFromImage(image.NewRGBA(image.Rect(0, 0, SkyWidth, SkyHeight))); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := SkyFromImage(image.NewRGBA(image.Rect(0, 0, SkyWidth, SkyHeight+1))); !errors.Is(err, ErrBadTexture) {
		t.Errorf("expected ErrBadTexture, got %v", err)
	}
}

func TestShippedSampleLevel(t *testing.T) {
	m, err := NewMapLoader().LoadMap("../../assets/levels/level.yaml")
	if err != nil {
		t.Fatalf("load shipped level: %v", err)
	}

	want, err := SampleDescription().Build(GenerateAtlas(), GenerateSky())
	if err != nil {
		t.Fatalf("build sample: %v", err)
	}
	if m.StartX != want.StartX || m.StartY != want.StartY {
		t.Errorf("start (%d,%d), want (%d,%d)", m.StartX, m.StartY, want.StartX, want.StartY)
	}
	for x := 0; x < want.Height; x++ {
		for y := 0; y < want.Width; y++ {
			if m.WallAt(x, y) != want.WallAt(x, y) || m.FloorAt(x, y) != want.FloorAt(x, y) || m.CeilingAt(x, y) != want.CeilingAt(x, y) {
				t.Fatalf("cell (%d,%d) differs from the generated level", x, y)
			}
		}
	}
	for i, p := range want.Textures[TextureBrick] {
		if m.Textures[TextureBrick][i] != p {
			t.Fatalf("brick texel %d = %#08x, want %#08x", i, uint32(m.Textures[TextureBrick][i]), uint32(p))
		}
	}
}
