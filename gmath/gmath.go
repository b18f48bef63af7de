// Package gmath provides the small amount of linear algebra the renderer
// needs: 2D vectors, 4x4 matrices in HLSL column-major layout, and integer
// rectangles in top-left-origin UI coordinates.
package gmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

type Vec4 [4]float32

// Mat4 is a 4x4 matrix stored column-major, matching the default HLSL
// cbuffer packing so it can be uploaded without transposition.
type Mat4 [16]float32

var Identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Diag returns a diagonal matrix.
func Diag(x, y, z, w float32) Mat4 {
	var m Mat4
	m[0] = x
	m[5] = y
	m[10] = z
	m[15] = w
	return m
}

// FromRows builds a matrix from four row vectors.
func FromRows(r0, r1, r2, r3 Vec4) Mat4 {
	var m Mat4
	rows := [4]Vec4{r0, r1, r2, r3}
	for row := range 4 {
		for col := range 4 {
			m[col*4+row] = rows[row][col]
		}
	}
	return m
}

func (m Mat4) Row(i int) Vec4 {
	return Vec4{m[0*4+i], m[1*4+i], m[2*4+i], m[3*4+i]}
}

// SetColumn overwrites column i.
func (m *Mat4) SetColumn(i int, c Vec4) {
	copy(m[i*4:i*4+4], c[:])
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+row] * o[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for row := range 4 {
		out[row] = m[0*4+row]*v[0] + m[1*4+row]*v[1] + m[2*4+row]*v[2] + m[3*4+row]*v[3]
	}
	return out
}

// Ortho returns an orthographic projection spanning the given planes, with
// the OpenGL-style [-1, 1] depth mapping the UI library's transforms assume.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	var m Mat4
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	m[15] = 1
	return m
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

func Sin(x float32) float32 { return float32(math.Sin(float64(x))) }
func Cos(x float32) float32 { return float32(math.Cos(float64(x))) }
