package glint

import (
	"math"
	"testing"

	"github.com/glintui/glint/gmath"
)

func mat4Near(a, b gmath.Mat4, tol float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func TestCompileFilterUnknownName(t *testing.T) {
	f := compileFilter("emboss", Dictionary{"value": 1.0})
	if f.kind != filterInvalid {
		t.Errorf("kind = %v, want filterInvalid", f.kind)
	}
}

func TestCompileFilterOpacity(t *testing.T) {
	f := compileFilter("opacity", Dictionary{"value": 0.25})
	if f.kind != filterPassthrough {
		t.Fatalf("kind = %v", f.kind)
	}
	if f.blendFactor != 0.25 {
		t.Errorf("blendFactor = %v", f.blendFactor)
	}
}

func TestCompileFilterGrayscaleFull(t *testing.T) {
	f := compileFilter("grayscale", Dictionary{"value": 1.0})
	if f.kind != filterColorMatrix {
		t.Fatalf("kind = %v", f.kind)
	}

	// Opaque red, premultiplied. Full grayscale must land every channel on
	// the red luma coefficient.
	out := f.colorMatrix.MulVec4(gmath.Vec4{1, 0, 0, 1})
	for i := range 3 {
		if math.Abs(float64(out[i])-0.2126) > 1e-6 {
			t.Errorf("channel %d = %v, want 0.2126", i, out[i])
		}
	}
	if out[3] != 1 {
		t.Errorf("alpha = %v, want 1", out[3])
	}
}

func TestCompileFilterGrayscaleZeroIsIdentity(t *testing.T) {
	f := compileFilter("grayscale", Dictionary{"value": 0.0})
	if !mat4Near(f.colorMatrix, gmath.Identity, 1e-6) {
		t.Errorf("matrix = %v, want identity", f.colorMatrix)
	}
}

func TestCompileFilterContrastNeutral(t *testing.T) {
	f := compileFilter("contrast", Dictionary{"value": 1.0})
	if !mat4Near(f.colorMatrix, gmath.Identity, 1e-6) {
		t.Errorf("matrix = %v, want identity", f.colorMatrix)
	}
}

func TestCompileFilterInvert(t *testing.T) {
	f := compileFilter("invert", Dictionary{"value": 1.0})

	// White inverts to black, black to white. The constant column is scaled
	// by alpha, which is 1 for these inputs.
	white := f.colorMatrix.MulVec4(gmath.Vec4{1, 1, 1, 1})
	black := f.colorMatrix.MulVec4(gmath.Vec4{0, 0, 0, 1})
	for i := range 3 {
		if math.Abs(float64(white[i])) > 1e-6 {
			t.Errorf("inverted white channel %d = %v", i, white[i])
		}
		if math.Abs(float64(black[i])-1) > 1e-6 {
			t.Errorf("inverted black channel %d = %v", i, black[i])
		}
	}
}

func TestCompileFilterInvertClampsValue(t *testing.T) {
	a := compileFilter("invert", Dictionary{"value": 5.0})
	b := compileFilter("invert", Dictionary{"value": 1.0})
	if !mat4Near(a.colorMatrix, b.colorMatrix, 0) {
		t.Error("value above 1 not clamped")
	}
}

func TestCompileFilterHueRotateZeroIsIdentity(t *testing.T) {
	f := compileFilter("hue-rotate", Dictionary{"value": 0.0})
	if !mat4Near(f.colorMatrix, gmath.Identity, 1e-6) {
		t.Errorf("matrix = %v, want identity", f.colorMatrix)
	}
}

func TestCompileFilterSaturatePreservesGray(t *testing.T) {
	f := compileFilter("saturate", Dictionary{"value": 3.0})
	out := f.colorMatrix.MulVec4(gmath.Vec4{0.5, 0.5, 0.5, 1})
	for i := range 3 {
		if math.Abs(float64(out[i])-0.5) > 1e-5 {
			t.Errorf("channel %d = %v, want 0.5", i, out[i])
		}
	}
}

func TestCompileFilterDropShadowDefaults(t *testing.T) {
	f := compileFilter("drop-shadow", Dictionary{
		"color":  "#ff0000",
		"offset": gmath.Vec2{X: 2, Y: 3},
	})
	if f.kind != filterDropShadow {
		t.Fatalf("kind = %v", f.kind)
	}
	if f.sigma != 0 {
		t.Errorf("sigma = %v, want 0", f.sigma)
	}
	if f.offset != (gmath.Vec2{X: 2, Y: 3}) {
		t.Errorf("offset = %v", f.offset)
	}
	if f.color != ([4]float32{1, 0, 0, 1}) {
		t.Errorf("color = %v", f.color)
	}
}

func TestBlurWeightsNormalized(t *testing.T) {
	for _, sigma := range []float32{0.5, 1, 2.5, 10} {
		w := blurWeights(sigma)
		sum := float64(w[0])
		for _, v := range w[1:] {
			sum += 2 * float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("sigma %v: kernel sums to %v", sigma, sum)
		}
		for i := 1; i < len(w); i++ {
			if w[i] > w[i-1] {
				t.Errorf("sigma %v: weights not decreasing at %d", sigma, i)
			}
		}
	}
}

func TestBlurWeightsDegenerateSigma(t *testing.T) {
	w := blurWeights(0)
	if w != ([blurNumWeights]float32{1, 0, 0, 0}) {
		t.Errorf("weights = %v, want pass-through kernel", w)
	}
}
