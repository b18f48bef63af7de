package gfx

// Color is an 8-bit sRGB color with straight (non-premultiplied) alpha, as
// delivered by the UI library in vertex data and parameter dictionaries.
type Color [4]uint8

// ColorF is a color with float channels. Whether it is premultiplied depends
// on context; the compositing pipeline works in premultiplied space
// throughout.
type ColorF [4]float32

// Premultiplied converts to float channels with the color channels scaled by
// alpha, the representation every blend in this package assumes.
func (c Color) Premultiplied() ColorF {
	a := float32(c[3]) / 255
	return ColorF{
		float32(c[0]) / 255 * a,
		float32(c[1]) / 255 * a,
		float32(c[2]) / 255 * a,
		a,
	}
}

// ColorStop is one stop of a gradient, with a normalized position where 0 is
// the gradient's starting point and 1 its ending point.
type ColorStop struct {
	Position float32
	Color    Color
}
