//go:generate stringer -type=BlendMode
//go:generate stringer -type=ClipMaskOperation

package gfx

// BlendMode selects how a composited source layer is combined with its
// destination layer.
type BlendMode uint8

const (
	// Standard premultiplied-alpha "A over B" composition:
	// out = src + dst*(1-src.a).
	BlendOver BlendMode = iota
	// Straight overwrite of the destination, blending disabled.
	BlendReplace
)

// ClipMaskOperation selects how geometry rendered with RenderToClipMask
// modifies the stencil clip region.
type ClipMaskOperation uint8

const (
	// Clear the mask, then include the pixels covered by the geometry.
	ClipSet ClipMaskOperation = iota
	// Clear the mask, then include the pixels NOT covered by the geometry.
	ClipSetInverse
	// Intersect the existing mask with the geometry's coverage. Each
	// intersection deepens the nesting level a pixel must pass.
	ClipIntersect
)
