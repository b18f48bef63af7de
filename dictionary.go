package glint

import (
	"github.com/mazznoer/csscolorparser"

	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// Dictionary carries the named parameters of a filter or shader, as
// assembled by the UI library's style system. Values are looked up
// permissively: a missing or mistyped entry falls back to the caller's
// default, matching the best-effort contract of CompileFilter and
// CompileShader.
type Dictionary map[string]any

func dictFloat(d Dictionary, key string, def float32) float32 {
	switch v := d[key].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	case int:
		return float32(v)
	}
	return def
}

func dictBool(d Dictionary, key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

func dictString(d Dictionary, key string, def string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return def
}

func dictVec2(d Dictionary, key string, def gmath.Vec2) gmath.Vec2 {
	switch v := d[key].(type) {
	case gmath.Vec2:
		return v
	case [2]float32:
		return gmath.Vec2{X: v[0], Y: v[1]}
	}
	return def
}

// dictColor accepts the UI library's own color type as well as CSS color
// strings ("#80ff0080", "rgb(...)", named colors).
func dictColor(d Dictionary, key string, def gfx.Color) gfx.Color {
	switch v := d[key].(type) {
	case gfx.Color:
		return v
	case [4]uint8:
		return gfx.Color(v)
	case string:
		c, err := csscolorparser.Parse(v)
		if err != nil {
			logger().Warn("invalid color parameter", "key", key, "value", v, "err", err)
			return def
		}
		r, g, b, a := c.RGBA255()
		return gfx.Color{r, g, b, a}
	}
	return def
}

func dictColorStops(d Dictionary, key string) []gfx.ColorStop {
	v, ok := d[key].([]gfx.ColorStop)
	if !ok {
		return nil
	}
	return v
}
