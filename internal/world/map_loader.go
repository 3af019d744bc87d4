package world

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// GridPoint is an integer cell coordinate in a map description.
type GridPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Description is the on-disk shape of a level before its images are decoded.
type Description struct {
	Textures string     `yaml:"textures"`
	Sky      string     `yaml:"sky"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Start    *GridPoint `yaml:"start"`
	Ceiling  [][]int    `yaml:"ceiling"`
	Wall     [][]int    `yaml:"wall"`
	Floor    [][]int    `yaml:"floor"`
}

// MapLoader loads level descriptions and their texture assets.
type MapLoader struct {
	// ImageLoader decodes an asset path. Defaults to LoadImage.
	ImageLoader func(path string) (image.Image, error)
}

// NewMapLoader creates a loader that reads assets from disk.
func NewMapLoader() *MapLoader {
	return &MapLoader{ImageLoader: loadImageFile}
}

func loadImageFile(path string) (image.Image, error) {
	return LoadImage(path)
}

// LoadMap reads a level description (YAML, or the legacy XML layout when the
// file ends in .xml), decodes the atlas and sky it references, and returns a
// validated Map. Asset paths are resolved relative to the description file.
func (ml *MapLoader) LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var desc *Description
	if strings.EqualFold(filepath.Ext(mapPath), ".xml") {
		desc, err = ParseLegacyXML(data)
	} else {
		desc, err = ParseDescription(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	dir := filepath.Dir(mapPath)
	textures, sky, err := ml.loadAssets(resolve(dir, desc.Textures), resolve(dir, desc.Sky))
	if err != nil {
		return nil, err
	}

	m, err := desc.Build(textures, sky)
	if err != nil {
		return nil, fmt.Errorf("invalid map %s: %w", mapPath, err)
	}

	log.Printf("[MapLoader] Loaded %s: %dx%d cells, %d textures, start (%d,%d)",
		mapPath, m.Width, m.Height, len(m.Textures), m.StartX, m.StartY)
	return m, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// loadAssets decodes the atlas and the sky concurrently.
func (ml *MapLoader) loadAssets(atlasPath, skyPath string) ([]Tile, Tile, error) {
	loader := ml.ImageLoader
	if loader == nil {
		loader = loadImageFile
	}

	var (
		textures []Tile
		sky      Tile
		g        errgroup.Group
	)
	g.Go(func() error {
		img, err := loader(atlasPath)
		if err != nil {
			return fmt.Errorf("texture atlas: %w", err)
		}
		textures, err = SliceAtlas(img)
		if err != nil {
			return fmt.Errorf("texture atlas %s: %w", atlasPath, err)
		}
		return nil
	})
	g.Go(func() error {
		img, err := loader(skyPath)
		if err != nil {
			return fmt.Errorf("sky: %w", err)
		}
		sky, err = SkyFromImage(img)
		if err != nil {
			return fmt.Errorf("sky %s: %w", skyPath, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return textures, sky, nil
}

// ParseDescription decodes a YAML level description and checks that every
// required node is present.
func ParseDescription(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
	}
	if err := desc.checkRequired(); err != nil {
		return nil, err
	}
	return &desc, nil
}

func (d *Description) checkRequired() error {
	var missing []string
	if d.Textures == "" {
		missing = append(missing, "textures")
	}
	if d.Sky == "" {
		missing = append(missing, "sky")
	}
	if d.Width <= 0 {
		missing = append(missing, "width")
	}
	if d.Height <= 0 {
		missing = append(missing, "height")
	}
	if d.Start == nil {
		missing = append(missing, "start")
	}
	if d.Ceiling == nil {
		missing = append(missing, "ceiling")
	}
	if d.Wall == nil {
		missing = append(missing, "wall")
	}
	if d.Floor == nil {
		missing = append(missing, "floor")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing or invalid %s", ErrMalformedMap, strings.Join(missing, ", "))
	}
	return nil
}

// Build combines the description with decoded assets into a validated Map.
// Negative indices in the wall and ceiling layers become None.
func (d *Description) Build(textures []Tile, sky Tile) (*Map, error) {
	if err := d.checkRequired(); err != nil {
		return nil, err
	}
	m := &Map{
		Width:    d.Width,
		Height:   d.Height,
		Walls:    normalizeLayer(d.Wall),
		Floors:   copyLayer(d.Floor),
		Ceilings: normalizeLayer(d.Ceiling),
		StartX:   d.Start.X,
		StartY:   d.Start.Y,
		Textures: textures,
		Sky:      sky,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func copyLayer(layer [][]int) [][]int {
	out := make([][]int, len(layer))
	for i, row := range layer {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func normalizeLayer(layer [][]int) [][]int {
	out := copyLayer(layer)
	for _, row := range out {
		for i, idx := range row {
			if idx < 0 {
				row[i] = None
			}
		}
	}
	return out
}

// Marshal encodes the description as YAML.
func (d *Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
