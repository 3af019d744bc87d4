package pixel

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a row-major block of packed pixels.
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewBuffer allocates a zeroed width x height buffer.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("pixel: invalid buffer size %dx%d", width, height))
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// At returns the pixel at (x, y). Out-of-range coordinates return 0.
func (b *Buffer) At(x, y int) Pixel {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pix[x+y*b.Width]
}

// Row returns the slice backing row y.
func (b *Buffer) Row(y int) []Pixel {
	start := y * b.Width
	return b.Pix[start : start+b.Width]
}

// BGRA writes the buffer as little-endian packed words (B, G, R, A per pixel),
// the layout expected by a BGRA texture upload. dst is reused when it is large
// enough.
func (b *Buffer) BGRA(dst []byte) []byte {
	n := len(b.Pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range b.Pix {
		binary.LittleEndian.PutUint32(dst[i*4:], uint32(p))
	}
	return dst
}

// RGBA writes the buffer as R, G, B, A bytes per pixel. Alpha is forced to
// opaque when opaque is set, since the sky and texture assets may carry a
// zero alpha channel.
func (b *Buffer) RGBA(dst []byte, opaque bool) []byte {
	n := len(b.Pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range b.Pix {
		base := i * 4
		dst[base+0] = p.R()
		dst[base+1] = p.G()
		dst[base+2] = p.B()
		if opaque {
			dst[base+3] = 0xff
		} else {
			dst[base+3] = p.A()
		}
	}
	return dst
}
