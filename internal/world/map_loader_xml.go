package world

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ParseLegacyXML reads the older XML level layout:
//
//	<Texture Filename="..."/> <Skybox Filename="..."/>
//	<Layout Width="w" Height="h"> <Ceiling|Wall|Floor> <Row> <Column TextureIndex="i"/> ...
//	<StartPosition X="x" Y="y"/>
//
// Elements are matched by name wherever they appear; the first occurrence of
// each wins.
func ParseLegacyXML(data []byte) (*Description, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	desc := &Description{}

	var (
		layer     *[][]int
		seen      = map[string]bool{}
		haveStart bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			name := el.Name.Local
			switch name {
			case "Texture":
				if !seen[name] {
					desc.Textures = attr(el, "Filename")
				}
			case "Skybox":
				if !seen[name] {
					desc.Sky = attr(el, "Filename")
				}
			case "Layout":
				if !seen[name] {
					if desc.Width, err = intAttr(el, "Width"); err != nil {
						return nil, err
					}
					if desc.Height, err = intAttr(el, "Height"); err != nil {
						return nil, err
					}
				}
			case "Ceiling", "Wall", "Floor":
				layer = nil
				if !seen[name] {
					layer = legacyLayer(desc, name)
					*layer = [][]int{}
				}
			case "Row":
				if layer != nil {
					*layer = append(*layer, []int{})
				}
			case "Column":
				if layer != nil && len(*layer) > 0 {
					idx, err := intAttr(el, "TextureIndex")
					if err != nil {
						return nil, err
					}
					last := len(*layer) - 1
					(*layer)[last] = append((*layer)[last], idx)
				}
			case "StartPosition":
				if !haveStart {
					x, err := intAttr(el, "X")
					if err != nil {
						return nil, err
					}
					y, err := intAttr(el, "Y")
					if err != nil {
						return nil, err
					}
					desc.Start = &GridPoint{X: x, Y: y}
					haveStart = true
				}
			}
			seen[name] = true
		case xml.EndElement:
			switch el.Name.Local {
			case "Ceiling", "Wall", "Floor":
				layer = nil
			}
		}
	}

	if err := desc.checkRequired(); err != nil {
		return nil, err
	}
	return desc, nil
}

func legacyLayer(desc *Description, name string) *[][]int {
	switch name {
	case "Ceiling":
		return &desc.Ceiling
	case "Wall":
		return &desc.Wall
	default:
		return &desc.Floor
	}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func intAttr(el xml.StartElement, name string) (int, error) {
	raw := attr(el, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: <%s %s=%q> is not an integer", ErrMalformedMap, el.Name.Local, name, raw)
	}
	return v, nil
}
