package glint

import (
	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// maxNumStops is the gradient stop capacity of the shader's constant
// buffer. Longer stop lists are truncated.
const maxNumStops = 16

type shaderKind uint8

const (
	shaderInvalid shaderKind = iota
	shaderGradient
	// Time-driven generative effect used by documentation demos.
	shaderCreation
)

// gradientFunction selects the gradient evaluation in the fragment shader.
// The values match the integer branch constants compiled into it.
type gradientFunction int32

const (
	gradientLinear gradientFunction = iota
	gradientRadial
	gradientConic
	gradientRepeatingLinear
	gradientRepeatingRadial
	gradientRepeatingConic
)

type compiledShader struct {
	kind shaderKind

	// Gradient
	gradientFunc  gradientFunction
	p             gmath.Vec2 // starting point or center
	v             gmath.Vec2 // direction, inverse radius, or angle vector
	numStops      int32
	stopPositions [maxNumStops]float32
	stopColors    [maxNumStops]gfx.ColorF // premultiplied

	// Creation
	dimensions gmath.Vec2
}

// compileShader translates a named shader effect and its parameter
// dictionary into a compiled value. An unknown name or unsupported "shader"
// value yields kind == shaderInvalid.
func compileShader(name string, params Dictionary) compiledShader {
	var s compiledShader

	switch name {
	case "linear-gradient":
		s.kind = shaderGradient
		s.gradientFunc = gradientLinear
		if dictBool(params, "repeating", false) {
			s.gradientFunc = gradientRepeatingLinear
		}
		s.p = dictVec2(params, "p0", gmath.Vec2{})
		s.v = dictVec2(params, "p1", gmath.Vec2{}).Sub(s.p)
		s.compileColorStops(params)

	case "radial-gradient":
		s.kind = shaderGradient
		s.gradientFunc = gradientRadial
		if dictBool(params, "repeating", false) {
			s.gradientFunc = gradientRepeatingRadial
		}
		s.p = dictVec2(params, "center", gmath.Vec2{})
		radius := dictVec2(params, "radius", gmath.Vec2{X: 1, Y: 1})
		s.v = gmath.Vec2{X: 1 / radius.X, Y: 1 / radius.Y}
		s.compileColorStops(params)

	case "conic-gradient":
		s.kind = shaderGradient
		s.gradientFunc = gradientConic
		if dictBool(params, "repeating", false) {
			s.gradientFunc = gradientRepeatingConic
		}
		s.p = dictVec2(params, "center", gmath.Vec2{})
		angle := dictFloat(params, "angle", 0)
		s.v = gmath.Vec2{X: gmath.Cos(angle), Y: gmath.Sin(angle)}
		s.compileColorStops(params)

	case "shader":
		if dictString(params, "value", "") == "creation" {
			s.kind = shaderCreation
			s.dimensions = dictVec2(params, "dimensions", gmath.Vec2{})
		}
	}

	return s
}

func (s *compiledShader) compileColorStops(params Dictionary) {
	stops := dictColorStops(params, "color_stop_list")
	n := min(len(stops), maxNumStops)
	s.numStops = int32(n)
	for i, stop := range stops[:n] {
		s.stopPositions[i] = stop.Position
		s.stopColors[i] = stop.Color.Premultiplied()
	}
}
