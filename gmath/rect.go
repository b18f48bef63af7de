package gmath

// Rect is an integer rectangle with exclusive lower-right corner, in
// top-left-origin UI coordinates unless stated otherwise.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// InvalidRect is the canonical "no rectangle" value; Valid reports false
// for it and for any other degenerate rectangle.
func InvalidRect() Rect {
	return Rect{0, 0, -1, -1}
}

func MakeRect(x, y, w, h int) Rect {
	return Rect{x, y, x + w, y + h}
}

func (r Rect) Valid() bool {
	return r.X1 >= r.X0 && r.Y1 >= r.Y0
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// FlipVertically mirrors the rectangle across the horizontal center line of
// a viewport of the given height, converting between top-left-origin UI
// coordinates and bottom-left-origin GPU coordinates. It is its own inverse.
func (r Rect) FlipVertically(viewportHeight int) Rect {
	return Rect{
		X0: r.X0,
		Y0: viewportHeight - r.Y1,
		X1: r.X1,
		Y1: viewportHeight - r.Y0,
	}
}

// ClampTo limits the rectangle to [0, w) x [0, h).
func (r Rect) ClampTo(w, h int) Rect {
	return Rect{
		X0: Clamp(r.X0, 0, w),
		Y0: Clamp(r.Y0, 0, h),
		X1: Clamp(r.X1, 0, w),
		Y1: Clamp(r.Y1, 0, h),
	}
}
