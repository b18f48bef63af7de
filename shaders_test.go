package glint

import (
	"math"
	"testing"

	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

func TestCompileShaderUnknownName(t *testing.T) {
	if s := compileShader("mandelbrot", nil); s.kind != shaderInvalid {
		t.Errorf("kind = %v, want shaderInvalid", s.kind)
	}
	if s := compileShader("shader", Dictionary{"value": "plasma"}); s.kind != shaderInvalid {
		t.Errorf("unsupported shader value: kind = %v, want shaderInvalid", s.kind)
	}
}

func TestCompileShaderLinearGradient(t *testing.T) {
	s := compileShader("linear-gradient", Dictionary{
		"p0": gmath.Vec2{X: 10, Y: 20},
		"p1": gmath.Vec2{X: 110, Y: 70},
		"color_stop_list": []gfx.ColorStop{
			{Position: 0, Color: gfx.Color{255, 0, 0, 255}},
			{Position: 1, Color: gfx.Color{0, 0, 255, 255}},
		},
	})
	if s.kind != shaderGradient || s.gradientFunc != gradientLinear {
		t.Fatalf("kind = %v, func = %v", s.kind, s.gradientFunc)
	}
	if s.p != (gmath.Vec2{X: 10, Y: 20}) {
		t.Errorf("p = %v", s.p)
	}
	if s.v != (gmath.Vec2{X: 100, Y: 50}) {
		t.Errorf("v = %v, want p1-p0", s.v)
	}
	if s.numStops != 2 {
		t.Fatalf("numStops = %d", s.numStops)
	}
	if s.stopColors[0] != (gfx.ColorF{1, 0, 0, 1}) {
		t.Errorf("stop 0 color = %v", s.stopColors[0])
	}
}

func TestCompileShaderRepeatingFunctions(t *testing.T) {
	tests := []struct {
		name string
		want gradientFunction
	}{
		{"linear-gradient", gradientRepeatingLinear},
		{"radial-gradient", gradientRepeatingRadial},
		{"conic-gradient", gradientRepeatingConic},
	}
	for _, tt := range tests {
		s := compileShader(tt.name, Dictionary{"repeating": true})
		if s.gradientFunc != tt.want {
			t.Errorf("%s: func = %v, want %v", tt.name, s.gradientFunc, tt.want)
		}
	}
}

func TestCompileShaderRadialGradientInverseRadius(t *testing.T) {
	s := compileShader("radial-gradient", Dictionary{
		"center": gmath.Vec2{X: 50, Y: 50},
		"radius": gmath.Vec2{X: 4, Y: 8},
	})
	if s.v != (gmath.Vec2{X: 0.25, Y: 0.125}) {
		t.Errorf("v = %v, want inverse radius", s.v)
	}
}

func TestCompileShaderConicGradientAngle(t *testing.T) {
	s := compileShader("conic-gradient", Dictionary{
		"center": gmath.Vec2{X: 1, Y: 2},
		"angle":  float32(math.Pi / 2),
	})
	if math.Abs(float64(s.v.X)) > 1e-6 || math.Abs(float64(s.v.Y)-1) > 1e-6 {
		t.Errorf("v = %v, want unit vector at pi/2", s.v)
	}
}

func TestCompileShaderStopTruncation(t *testing.T) {
	stops := make([]gfx.ColorStop, maxNumStops+5)
	for i := range stops {
		stops[i] = gfx.ColorStop{Position: float32(i), Color: gfx.Color{0, 0, 0, 255}}
	}
	s := compileShader("linear-gradient", Dictionary{"color_stop_list": stops})
	if s.numStops != maxNumStops {
		t.Errorf("numStops = %d, want %d", s.numStops, maxNumStops)
	}
}

func TestCompileShaderStopsPremultiplied(t *testing.T) {
	s := compileShader("linear-gradient", Dictionary{
		"color_stop_list": []gfx.ColorStop{
			{Position: 0, Color: gfx.Color{255, 0, 0, 127}},
		},
	})
	got := s.stopColors[0]
	want := gfx.Color{255, 0, 0, 127}.Premultiplied()
	if got != want {
		t.Errorf("stop color = %v, want %v", got, want)
	}
	if got[0] >= 0.5 {
		t.Errorf("red channel %v not premultiplied by alpha", got[0])
	}
}

func TestCompileShaderCreation(t *testing.T) {
	s := compileShader("shader", Dictionary{
		"value":      "creation",
		"dimensions": gmath.Vec2{X: 640, Y: 480},
	})
	if s.kind != shaderCreation {
		t.Fatalf("kind = %v", s.kind)
	}
	if s.dimensions != (gmath.Vec2{X: 640, Y: 480}) {
		t.Errorf("dimensions = %v", s.dimensions)
	}
}
