package glint

import (
	"github.com/glintui/glint/d3d11"
	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// EnableClipMask toggles stencil testing against the clip mask written by
// RenderToClipMask. While enabled, only pixels whose stencil value equals
// the mask's current reference pass.
func (r *Renderer) EnableClipMask(enable bool) {
	if enable == r.stencilEnabled {
		return
	}
	r.stencilEnabled = enable
	if enable {
		r.ctx.OMSetDepthStencilState(r.depthStencilTest, r.stencilRef)
	} else {
		r.ctx.OMSetDepthStencilState(r.depthStencilDisable, 0)
	}
}

// RenderToClipMask modifies the clip mask using the geometry's coverage.
// Set and SetInverse clear the mask first; Intersect deepens the nesting
// level so a pixel must be covered by every intersected clip to pass.
// Color output stays untouched, only stencil values are written.
func (r *Renderer) RenderToClipMask(operation gfx.ClipMaskOperation, geometry GeometryHandle, translation gmath.Vec2) {
	rt := r.layers.top()
	if rt.depthStencilView == nil {
		logger().Warn("clip mask on layer without stencil")
		return
	}

	switch operation {
	case gfx.ClipSet:
		r.stencilRef = 1
		r.ctx.ClearDepthStencilView(rt.depthStencilView, d3d11.CLEAR_STENCIL, 1, 0)
		r.ctx.OMSetDepthStencilState(r.depthStencilSet, 1)
	case gfx.ClipSetInverse:
		// Covered pixels get 1; the test passes on the untouched zeroes.
		r.stencilRef = 0
		r.ctx.ClearDepthStencilView(rt.depthStencilView, d3d11.CLEAR_STENCIL, 1, 0)
		r.ctx.OMSetDepthStencilState(r.depthStencilSet, 1)
	case gfx.ClipIntersect:
		r.stencilRef++
		r.ctx.OMSetDepthStencilState(r.depthStencilIntersect, 0)
	}

	previousBlend := r.currentBlendState
	r.setBlendState(r.blendDisableColor)
	r.RenderGeometry(geometry, translation, 0)
	r.setBlendState(previousBlend)

	if r.stencilEnabled {
		r.ctx.OMSetDepthStencilState(r.depthStencilTest, r.stencilRef)
	} else {
		r.ctx.OMSetDepthStencilState(r.depthStencilDisable, 0)
	}
}
