package pixel

import "image/color"

// Pixel is a packed 32-bit ARGB value (0xAARRGGBB). Read as little-endian
// bytes it is laid out Blue, Green, Red, Alpha.
type Pixel uint32

const (
	blueShift  = 0
	greenShift = 8
	redShift   = 16
	alphaShift = 24
)

// New packs four 8-bit channels into a Pixel.
func New(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<alphaShift | uint32(r)<<redShift | uint32(g)<<greenShift | uint32(b)<<blueShift)
}

func (p Pixel) R() uint8 { return uint8(p >> redShift) }
func (p Pixel) G() uint8 { return uint8(p >> greenShift) }
func (p Pixel) B() uint8 { return uint8(p >> blueShift) }
func (p Pixel) A() uint8 { return uint8(p >> alphaShift) }

// Shade divides the red, green and blue channels by divisor using integer
// division. Alpha is left untouched. A divisor of 0 or 1 returns p unchanged.
func (p Pixel) Shade(divisor uint8) Pixel {
	if divisor <= 1 {
		return p
	}
	return New(p.R()/divisor, p.G()/divisor, p.B()/divisor, p.A())
}

// RGBA implements color.Color. The packed value is treated as non-premultiplied.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R(), G: p.G(), B: p.B(), A: p.A()}.RGBA()
}
