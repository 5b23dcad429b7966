package types

import (
	"fmt"
	"strconv"
)

// Color is an opaque RGB colour. Alpha is never persisted.
type Color struct {
	R, G, B uint8
}

// Standard colours used by the editor.
var (
	Black      = Color{}
	White      = Color{R: 0xff, G: 0xff, B: 0xff}
	Blue       = Color{B: 0xff}
	TableBrown = Color{R: 0x8b, G: 0x45, B: 0x13}
	ChairTan   = Color{R: 0xd2, G: 0xb4, B: 0x8c}
)

// RGB builds a Color from a packed 0xRRGGBB value. Bits above the low 24 are
// ignored.
func RGB(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Uint32 returns the colour packed as 0xRRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns six lowercase hex digits without a prefix.
func (c Color) Hex() string {
	return fmt.Sprintf("%06x", c.Uint32())
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// RGBA implements color.Color. The colour is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = 0xffff
	return r, g, b, a
}

// ParseHexColor parses a hexadecimal integer as written in a layout file and
// keeps its low 24 bits. Short values such as "ff" are accepted and mean
// 0x0000ff. A leading sign is accepted; the value is taken in two's complement.
func ParseHexColor(s string) (Color, error) {
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB(uint32(int32(v)) & 0xffffff), nil
}
