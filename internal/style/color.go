package style

import "fmt"

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// Hex decodes a 0xAARRGGBB value.
func Hex(argb uint32) Color {
	return Color{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}

// Transparent is fully transparent black.
func Transparent() Color { return Color{} }

// White is opaque white.
func White() Color { return Color{255, 255, 255, 255} }

// Black is opaque black.
func Black() Color { return Color{0, 0, 0, 255} }

// ARGB packs the color back into a 0xAARRGGBB value.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}
