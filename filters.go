package glint

import (
	"math"

	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// blurSize is the number of taps of the separable Gaussian kernel. It is
// fixed at shader compile time, so very large sigma values are visually
// approximate rather than exact.
const blurSize = 7
const blurNumWeights = (blurSize + 1) / 2

type filterKind uint8

const (
	filterInvalid filterKind = iota
	// Uniform opacity: a blend-factor multiply on an otherwise untouched
	// copy.
	filterPassthrough
	filterBlur
	filterDropShadow
	filterColorMatrix
	// Multiplies the alpha channel by a previously captured mask surface.
	filterMaskImage
)

type compiledFilter struct {
	kind filterKind

	// Passthrough
	blendFactor float32

	// Blur and drop shadow
	sigma float32

	// Drop shadow
	offset gmath.Vec2
	color  gfx.ColorF // premultiplied

	// Color matrix
	colorMatrix gmath.Mat4
}

// compileFilter translates a named filter and its parameter dictionary into
// a compiled value. An unknown name yields kind == filterInvalid; the caller
// logs and returns an invalid handle.
//
// The color-matrix family maps each CSS-style effect to a precomputed
// matrix applied in premultiplied space. Without alpha rows the constant
// term must be scaled by alpha rather than unity, which the shader does.
func compileFilter(name string, params Dictionary) compiledFilter {
	var f compiledFilter

	switch name {
	case "opacity":
		f.kind = filterPassthrough
		f.blendFactor = dictFloat(params, "value", 1)

	case "blur":
		f.kind = filterBlur
		f.sigma = dictFloat(params, "sigma", 1)

	case "drop-shadow":
		f.kind = filterDropShadow
		f.sigma = dictFloat(params, "sigma", 0)
		f.color = dictColor(params, "color", gfx.Color{}).Premultiplied()
		f.offset = dictVec2(params, "offset", gmath.Vec2{})

	case "brightness":
		f.kind = filterColorMatrix
		v := dictFloat(params, "value", 1)
		f.colorMatrix = gmath.Diag(v, v, v, 1)

	case "contrast":
		f.kind = filterColorMatrix
		v := dictFloat(params, "value", 1)
		grayness := 0.5 - 0.5*v
		f.colorMatrix = gmath.Diag(v, v, v, 1)
		f.colorMatrix.SetColumn(3, gmath.Vec4{grayness, grayness, grayness, 1})

	case "invert":
		f.kind = filterColorMatrix
		v := gmath.Clamp(dictFloat(params, "value", 1), 0, 1)
		inverted := 1 - 2*v
		f.colorMatrix = gmath.Diag(inverted, inverted, inverted, 1)
		f.colorMatrix.SetColumn(3, gmath.Vec4{v, v, v, 1})

	case "grayscale":
		f.kind = filterColorMatrix
		v := dictFloat(params, "value", 1)
		rev := 1 - v
		gray := [3]float32{v * 0.2126, v * 0.7152, v * 0.0722}
		f.colorMatrix = gmath.FromRows(
			gmath.Vec4{gray[0] + rev, gray[1], gray[2], 0},
			gmath.Vec4{gray[0], gray[1] + rev, gray[2], 0},
			gmath.Vec4{gray[0], gray[1], gray[2] + rev, 0},
			gmath.Vec4{0, 0, 0, 1},
		)

	case "sepia":
		f.kind = filterColorMatrix
		v := dictFloat(params, "value", 1)
		rev := 1 - v
		rMix := [3]float32{v * 0.393, v * 0.769, v * 0.189}
		gMix := [3]float32{v * 0.349, v * 0.686, v * 0.168}
		bMix := [3]float32{v * 0.272, v * 0.534, v * 0.131}
		f.colorMatrix = gmath.FromRows(
			gmath.Vec4{rMix[0] + rev, rMix[1], rMix[2], 0},
			gmath.Vec4{gMix[0], gMix[1] + rev, gMix[2], 0},
			gmath.Vec4{bMix[0], bMix[1], bMix[2] + rev, 0},
			gmath.Vec4{0, 0, 0, 1},
		)

	case "hue-rotate":
		// Matrix per https://www.w3.org/TR/filter-effects-1/#attr-valuedef-type-huerotate
		f.kind = filterColorMatrix
		v := dictFloat(params, "value", 1)
		s := gmath.Sin(v)
		c := gmath.Cos(v)
		f.colorMatrix = gmath.FromRows(
			gmath.Vec4{0.213 + 0.787*c - 0.213*s, 0.715 - 0.715*c - 0.715*s, 0.072 - 0.072*c + 0.928*s, 0},
			gmath.Vec4{0.213 - 0.213*c + 0.143*s, 0.715 + 0.285*c + 0.140*s, 0.072 - 0.072*c - 0.283*s, 0},
			gmath.Vec4{0.213 - 0.213*c - 0.787*s, 0.715 - 0.715*c + 0.715*s, 0.072 + 0.928*c + 0.072*s, 0},
			gmath.Vec4{0, 0, 0, 1},
		)

	case "saturate":
		f.kind = filterColorMatrix
		v := dictFloat(params, "value", 1)
		f.colorMatrix = gmath.FromRows(
			gmath.Vec4{0.213 + 0.787*v, 0.715 - 0.715*v, 0.072 - 0.072*v, 0},
			gmath.Vec4{0.213 - 0.213*v, 0.715 + 0.285*v, 0.072 - 0.072*v, 0},
			gmath.Vec4{0.213 - 0.213*v, 0.715 - 0.715*v, 0.072 + 0.928*v, 0},
			gmath.Vec4{0, 0, 0, 1},
		)
	}

	return f
}

// blurWeights computes the one-sided weights of the 7-tap Gaussian kernel,
// normalized so the full kernel (center weight plus both sides) sums to 1.
// A degenerate sigma collapses to a pass-through kernel.
func blurWeights(sigma float32) [blurNumWeights]float32 {
	var w [blurNumWeights]float32
	if sigma < 0.1 {
		w[0] = 1
		return w
	}
	var sum float32
	for i := range blurNumWeights {
		x := float64(i)
		w[i] = float32(math.Exp(-x * x / (2 * float64(sigma) * float64(sigma))))
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}
