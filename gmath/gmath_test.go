package gmath

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestMulVec4Identity(t *testing.T) {
	v := Vec4{1, 2, 3, 4}
	if got := Identity.MulVec4(v); got != v {
		t.Errorf("Identity * %v = %v", v, got)
	}
}

func TestFromRowsRoundTrip(t *testing.T) {
	rows := [4]Vec4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	m := FromRows(rows[0], rows[1], rows[2], rows[3])
	for i := range 4 {
		if got := m.Row(i); got != rows[i] {
			t.Errorf("row %d = %v, want %v", i, got, rows[i])
		}
	}
}

func TestMulAgainstHandComputed(t *testing.T) {
	a := FromRows(
		Vec4{1, 0, 0, 2},
		Vec4{0, 1, 0, 3},
		Vec4{0, 0, 1, 0},
		Vec4{0, 0, 0, 1},
	)
	b := Diag(2, 2, 2, 1)
	// Translation then scale: (a*b)*v == a*(b*v).
	v := Vec4{1, 1, 1, 1}
	want := a.MulVec4(b.MulVec4(v))
	got := a.Mul(b).MulVec4(v)
	for i := range 4 {
		if !approx(got[i], want[i]) {
			t.Fatalf("a*b*v = %v, want %v", got, want)
		}
	}
}

func TestOrthoMapsViewportCorners(t *testing.T) {
	// The projection used by SetViewport: top-left origin, y down.
	m := Ortho(0, 800, 600, 0, -10000, 10000)

	corners := []struct {
		in   Vec4
		want Vec4
	}{
		{Vec4{0, 0, 0, 1}, Vec4{-1, 1, 0, 1}},
		{Vec4{800, 600, 0, 1}, Vec4{1, -1, 0, 1}},
		{Vec4{400, 300, 0, 1}, Vec4{0, 0, 0, 1}},
	}
	for _, c := range corners {
		got := m.MulVec4(c.in)
		for i := range 2 {
			if !approx(got[i], c.want[i]) {
				t.Errorf("Ortho(%v) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestRectFlipVertically(t *testing.T) {
	r := Rect{X0: 10, Y0: 20, X1: 110, Y1: 70}
	f := r.FlipVertically(600)
	if f.Width() != r.Width() || f.Height() != r.Height() {
		t.Errorf("flip changed size: %v -> %v", r, f)
	}
	if f.Y0 != 600-70 || f.Y1 != 600-20 {
		t.Errorf("flip = %v", f)
	}
	if got := f.FlipVertically(600); got != r {
		t.Errorf("flip not involutive: %v", got)
	}
}

func TestRectClampTo(t *testing.T) {
	r := Rect{X0: -50, Y0: 10, X1: 900, Y1: 700}
	c := r.ClampTo(800, 600)
	if c.X0 != 0 || c.Y0 != 10 || c.X1 != 800 || c.Y1 != 600 {
		t.Errorf("clamp = %v", c)
	}
}

func TestInvalidRect(t *testing.T) {
	if InvalidRect().Valid() {
		t.Error("InvalidRect reports valid")
	}
	if !MakeRect(0, 0, 0, 0).Valid() {
		t.Error("empty rect should be valid")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp misbehaves")
	}
	if Clamp(1.5, 0.0, 1.0) != 1.0 {
		t.Error("Clamp misbehaves for floats")
	}
}
