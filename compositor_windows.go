package glint

import (
	"time"

	"honnef.co/go/safeish"

	"github.com/glintui/glint/d3d11"
	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// PushLayer activates a fresh layer on top of the stack and directs all
// subsequent geometry into it.
func (r *Renderer) PushLayer() LayerHandle {
	layer, err := r.layers.push()
	if err != nil {
		logger().Error("creating layer", "err", err)
		// The UI library still issues the matching PopLayer; record the
		// failure so that pop doesn't remove the current top.
		r.layers.pushFailed()
		return r.layers.topHandle()
	}
	rt := r.layers.top()
	r.ctx.OMSetRenderTargets(rt.renderTargetView, rt.depthStencilView)
	r.ctx.ClearRenderTargetView(rt.renderTargetView, &pushedLayerClear)
	return layer
}

// PopLayer removes the top layer and rebinds the one below it. The layer's
// render target returns to the pool; its contents are assumed to have been
// composited already.
func (r *Renderer) PopLayer() {
	r.layers.pop()
	rt := r.layers.top()
	r.ctx.OMSetRenderTargets(rt.renderTargetView, rt.depthStencilView)
}

// blitLayerToPostprocessPrimary resolves a multisampled layer into the
// single-sample primary postprocess target, where the filter passes and
// final blit read it.
func (r *Renderer) blitLayerToPostprocessPrimary(h LayerHandle) (*renderTarget, error) {
	source := r.layers.layer(h)
	primary, err := r.layers.getPostprocess(postprocessPrimary)
	if err != nil {
		logger().Error("creating postprocess target", "err", err)
		return nil, err
	}
	if r.samples > 1 {
		r.ctx.ResolveSubresource(primary.texture.Resource(), 0, source.texture.Resource(), 0, d3d11.DXGI_FORMAT_R8G8B8A8_UNORM)
	} else {
		r.ctx.CopySubresourceRegion(primary.texture.Resource(), 0, 0, 0, 0, source.texture.Resource(), 0, nil)
	}
	return primary, nil
}

func (r *Renderer) postprocessPair() (primary, secondary *renderTarget, ok bool) {
	primary, err := r.layers.getPostprocess(postprocessPrimary)
	if err != nil {
		logger().Error("creating postprocess target", "err", err)
		return nil, nil, false
	}
	secondary, err = r.layers.getPostprocess(postprocessSecondary)
	if err != nil {
		logger().Error("creating postprocess target", "err", err)
		return nil, nil, false
	}
	return primary, secondary, true
}

// CompositeLayers blits the source layer through the filter chain and
// composites the result onto the destination layer. The top layer stays
// bound for subsequent geometry regardless of the destination.
func (r *Renderer) CompositeLayers(source, destination LayerHandle, blendMode gfx.BlendMode, filters []FilterHandle) {
	if _, err := r.blitLayerToPostprocessPrimary(source); err != nil {
		return
	}
	r.renderFilters(filters)

	// The filter chain may have swapped the scratch targets; the result is
	// whichever is primary now.
	primary, err := r.layers.getPostprocess(postprocessPrimary)
	if err != nil {
		return
	}
	dst := r.layers.layer(destination)
	r.ctx.OMSetRenderTargets(dst.renderTargetView, dst.depthStencilView)
	r.useProgram(programPassthrough)
	r.ctx.PSSetShaderResources(0, primary.shaderResource)
	r.ctx.PSSetSamplers(0, r.sampler)
	if blendMode == gfx.BlendReplace {
		r.setBlendState(r.blendDisable)
	}
	r.drawFullscreenQuad()
	if blendMode == gfx.BlendReplace {
		r.setBlendState(r.blendEnable)
	}

	if destination != r.layers.topHandle() {
		top := r.layers.top()
		r.ctx.OMSetRenderTargets(top.renderTargetView, top.depthStencilView)
	}
}

// renderFilters applies a filter chain to the primary postprocess target,
// leaving the final image in primary. Released or invalid filter handles
// are skipped.
func (r *Renderer) renderFilters(filters []FilterHandle) {
	for _, handle := range filters {
		filter, ok := r.filters.lookup(uint64(handle))
		if !ok {
			logger().Warn("rendering released filter", "handle", handle)
			continue
		}

		switch filter.kind {
		case filterPassthrough:
			primary, secondary, ok := r.postprocessPair()
			if !ok {
				continue
			}
			// The blend factor scales all four premultiplied channels, so a
			// plain copy draw applies the opacity.
			r.useProgram(programPassthrough)
			f := filter.blendFactor
			r.setBlendFactor([4]float32{f, f, f, f})
			r.ctx.OMSetRenderTargets(secondary.renderTargetView, nil)
			r.ctx.PSSetShaderResources(0, primary.shaderResource)
			r.ctx.PSSetSamplers(0, r.sampler)
			r.drawFullscreenQuad()
			r.layers.swapPostprocessPrimarySecondary()
			r.setBlendState(r.blendEnable)

		case filterBlur:
			primary, secondary, ok := r.postprocessPair()
			if !ok {
				continue
			}
			r.renderBlur(filter.sigma, primary, secondary)

		case filterDropShadow:
			r.renderDropShadow(filter)

		case filterColorMatrix:
			primary, secondary, ok := r.postprocessPair()
			if !ok {
				continue
			}
			r.useProgram(programColorMatrix)
			r.setBlendState(r.blendDisable)
			cb := colorMatrixCbuffer{ColorMatrix: [16]float32(filter.colorMatrix)}
			r.writeCbuffer(safeish.AsBytes(&cb))
			r.cbufferDirty = true
			r.ctx.OMSetRenderTargets(secondary.renderTargetView, nil)
			r.ctx.PSSetShaderResources(0, primary.shaderResource)
			r.ctx.PSSetSamplers(0, r.sampler)
			r.drawFullscreenQuad()
			r.layers.swapPostprocessPrimarySecondary()
			r.setBlendState(r.blendEnable)

		case filterMaskImage:
			primary, secondary, ok := r.postprocessPair()
			if !ok {
				continue
			}
			mask, err := r.layers.getPostprocess(postprocessBlendMask)
			if err != nil {
				logger().Error("creating blend mask target", "err", err)
				continue
			}
			r.useProgram(programBlendMask)
			r.setBlendState(r.blendDisable)
			r.ctx.OMSetRenderTargets(secondary.renderTargetView, nil)
			r.ctx.PSSetShaderResources(0, primary.shaderResource)
			r.ctx.PSSetShaderResources(1, mask.shaderResource)
			r.ctx.PSSetSamplers(0, r.sampler)
			r.drawFullscreenQuad()
			r.layers.swapPostprocessPrimarySecondary()
			r.setBlendState(r.blendEnable)

		default:
			logger().Warn("rendering invalid filter", "handle", handle)
		}
	}
}

// scissorTexCoords returns the active scissor region in the [0,1] sampling
// space of a postprocess target, or the full range when scissoring is off.
// The blur and drop-shadow shaders zero out taps beyond these bounds so
// clipped-away pixels never bleed in.
func (r *Renderer) scissorTexCoords(rt *renderTarget) (texMin, texMax gmath.Vec2) {
	if !r.scissor.Valid() {
		return gmath.Vec2{}, gmath.Vec2{X: 1, Y: 1}
	}
	return normalizedRect(r.scissor, rt.width, rt.height)
}

// renderBlur runs the separable Gaussian kernel over source in two passes,
// horizontal into temp and vertical back into source. Blending ends up
// enabled.
func (r *Renderer) renderBlur(sigma float32, source, temp *renderTarget) {
	r.useProgram(programBlur)
	r.setBlendState(r.blendDisable)

	texMin, texMax := r.scissorTexCoords(source)
	cb := blurCbuffer{
		Transform:   [16]float32(r.transform),
		Translate:   [2]float32{r.translation.X, r.translation.Y},
		Weights:     blurWeights(sigma),
		TexelOffset: [2]float32{1 / float32(source.width), 0},
		TexCoordMin: [2]float32{texMin.X, texMin.Y},
		TexCoordMax: [2]float32{texMax.X, texMax.Y},
	}
	r.writeCbuffer(safeish.AsBytes(&cb))
	r.cbufferDirty = true

	r.ctx.OMSetRenderTargets(temp.renderTargetView, nil)
	r.ctx.PSSetShaderResources(0, source.shaderResource)
	r.ctx.PSSetSamplers(0, r.sampler)
	r.drawFullscreenQuad()

	cb.TexelOffset = [2]float32{0, 1 / float32(source.height)}
	r.writeCbuffer(safeish.AsBytes(&cb))

	// Unbind source before it becomes the render target again.
	r.ctx.PSSetShaderResources(0, nil)
	r.ctx.OMSetRenderTargets(source.renderTargetView, nil)
	r.ctx.PSSetShaderResources(0, temp.shaderResource)
	r.drawFullscreenQuad()

	r.setBlendState(r.blendEnable)
}

// renderDropShadow draws the source's alpha tinted by the shadow color at
// an offset, optionally blurs it, and composites the source back on top.
func (r *Renderer) renderDropShadow(filter *compiledFilter) {
	primary, secondary, ok := r.postprocessPair()
	if !ok {
		return
	}

	r.useProgram(programDropShadow)
	r.setBlendState(r.blendDisable)

	texMin, texMax := r.scissorTexCoords(primary)
	cb := dropShadowCbuffer{
		Transform:   [16]float32(r.transform),
		Translate:   [2]float32{r.translation.X, r.translation.Y},
		TexCoordMin: [2]float32{texMin.X, texMin.Y},
		TexCoordMax: [2]float32{texMax.X, texMax.Y},
		Color:       [4]float32(filter.color),
	}
	r.writeCbuffer(safeish.AsBytes(&cb))
	r.cbufferDirty = true

	r.ctx.OMSetRenderTargets(secondary.renderTargetView, nil)
	r.ctx.PSSetShaderResources(0, primary.shaderResource)
	r.ctx.PSSetSamplers(0, r.sampler)
	// Shifting the sampling coordinates by the negated offset moves the
	// shadow itself by the offset. V is negated once more for the
	// passthrough flip.
	uvOffset := gmath.Vec2{
		X: -filter.offset.X / float32(primary.width),
		Y: filter.offset.Y / float32(primary.height),
	}
	r.drawFullscreenQuadUV(uvOffset, gmath.Vec2{X: 1, Y: 1})

	if filter.sigma >= 0.5 {
		tertiary, err := r.layers.getPostprocess(postprocessTertiary)
		if err != nil {
			logger().Error("creating postprocess target", "err", err)
			return
		}
		// Blur only the shadow; primary must stay intact for the final
		// composite.
		r.renderBlur(filter.sigma, secondary, tertiary)
	}

	r.useProgram(programPassthrough)
	r.setBlendState(r.blendEnable)
	r.ctx.OMSetRenderTargets(secondary.renderTargetView, nil)
	r.ctx.PSSetShaderResources(0, primary.shaderResource)
	r.drawFullscreenQuad()

	r.layers.swapPostprocessPrimarySecondary()
}

// SaveLayerAsTexture captures the current scissor region of the top layer
// into a new texture. Requires an active scissor region.
func (r *Renderer) SaveLayerAsTexture() TextureHandle {
	if !r.scissor.Valid() {
		logger().Warn("SaveLayerAsTexture without scissor region")
		return 0
	}
	bounds := r.scissor

	handle := r.GenerateTexture(nil, bounds.Width(), bounds.Height())
	if handle == 0 {
		return 0
	}
	primary, err := r.blitLayerToPostprocessPrimary(r.layers.topHandle())
	if err != nil {
		r.ReleaseTexture(handle)
		return 0
	}
	secondary, err := r.layers.getPostprocess(postprocessSecondary)
	if err != nil {
		logger().Error("creating postprocess target", "err", err)
		r.ReleaseTexture(handle)
		return 0
	}
	r.EnableScissorRegion(false)

	flipped := bounds.FlipVertically(r.viewportHeight)
	srcBox := d3d11.BOX{
		Left:   uint32(flipped.X0),
		Top:    uint32(flipped.Y0),
		Right:  uint32(flipped.X1),
		Bottom: uint32(flipped.Y1),
		Back:   1,
	}
	r.ctx.CopySubresourceRegion(secondary.texture.Resource(), 0, 0, 0, 0, primary.texture.Resource(), 0, &srcBox)

	tex, _ := r.textures.lookup(uint64(handle))
	texBox := d3d11.BOX{
		Right:  uint32(bounds.Width()),
		Bottom: uint32(bounds.Height()),
		Back:   1,
	}
	r.ctx.CopySubresourceRegion(tex.texture.Resource(), 0, 0, 0, 0, secondary.texture.Resource(), 0, &texBox)
	r.ctx.GenerateMips(tex.view)

	r.SetScissorRegion(bounds)
	top := r.layers.top()
	r.ctx.OMSetRenderTargets(top.renderTargetView, top.depthStencilView)
	return handle
}

// SaveLayerAsMaskImage captures the top layer into the blend mask target
// and returns a filter that multiplies by the captured alpha.
func (r *Renderer) SaveLayerAsMaskImage() FilterHandle {
	primary, err := r.blitLayerToPostprocessPrimary(r.layers.topHandle())
	if err != nil {
		return 0
	}
	mask, err := r.layers.getPostprocess(postprocessBlendMask)
	if err != nil {
		logger().Error("creating blend mask target", "err", err)
		return 0
	}

	previousBlend := r.currentBlendState
	r.ctx.OMSetRenderTargets(mask.renderTargetView, nil)
	r.useProgram(programPassthrough)
	r.ctx.PSSetShaderResources(0, primary.shaderResource)
	r.ctx.PSSetSamplers(0, r.sampler)
	r.setBlendState(r.blendDisable)
	r.drawFullscreenQuad()
	r.setBlendState(previousBlend)

	top := r.layers.top()
	r.ctx.OMSetRenderTargets(top.renderTargetView, top.depthStencilView)

	return FilterHandle(r.filters.insert(compiledFilter{kind: filterMaskImage}))
}

// CompileFilter translates a named filter and its parameters into a
// handle. Unknown names are logged and yield the invalid handle.
func (r *Renderer) CompileFilter(name string, params Dictionary) FilterHandle {
	f := compileFilter(name, params)
	if f.kind == filterInvalid {
		logger().Warn("unsupported filter", "name", name)
		return 0
	}
	return FilterHandle(r.filters.insert(f))
}

// ReleaseFilter frees a compiled filter. Stale handles are logged and
// ignored.
func (r *Renderer) ReleaseFilter(handle FilterHandle) {
	if _, ok := r.filters.remove(uint64(handle)); !ok {
		logger().Warn("releasing unknown filter", "handle", handle)
	}
}

// CompileShader translates a named shader effect and its parameters into a
// handle. Unknown names are logged and yield the invalid handle.
func (r *Renderer) CompileShader(name string, params Dictionary) ShaderHandle {
	s := compileShader(name, params)
	if s.kind == shaderInvalid {
		logger().Warn("unsupported shader", "name", name)
		return 0
	}
	return ShaderHandle(r.shaders.insert(s))
}

// RenderShader draws compiled geometry with a shader effect program.
func (r *Renderer) RenderShader(handle ShaderHandle, geometry GeometryHandle, translation gmath.Vec2) {
	shader, ok := r.shaders.lookup(uint64(handle))
	if !ok {
		logger().Warn("rendering released shader", "handle", handle)
		return
	}

	switch shader.kind {
	case shaderGradient:
		r.useProgram(programGradient)
		cb := gradientCbuffer{
			Transform: [16]float32(r.transform),
			Translate: [2]float32{translation.X, translation.Y},
			Func:      int32(shader.gradientFunc),
			NumStops:  shader.numStops,
			P:         [2]float32{shader.p.X, shader.p.Y},
			V:         [2]float32{shader.v.X, shader.v.Y},
		}
		for i, c := range shader.stopColors {
			cb.StopColors[i] = [4]float32(c)
		}
		for i, pos := range shader.stopPositions {
			cb.StopPositions[i/4][i%4] = pos
		}
		r.writeCbuffer(safeish.AsBytes(&cb))

	case shaderCreation:
		r.useProgram(programCreation)
		cb := creationCbuffer{
			Transform:  [16]float32(r.transform),
			Translate:  [2]float32{translation.X, translation.Y},
			Dimensions: [2]float32{shader.dimensions.X, shader.dimensions.Y},
			Value:      float32(time.Since(r.startTime).Seconds()),
		}
		r.writeCbuffer(safeish.AsBytes(&cb))

	default:
		logger().Warn("rendering invalid shader", "handle", handle)
		return
	}

	// The effect cbuffers lead with the same transform and translate
	// fields the main programs read, so the buffer stays valid for
	// subsequent plain draws at this translation.
	r.translation = translation
	r.cbufferDirty = false
	r.RenderGeometry(geometry, translation, TexturePostprocess)
}

// ReleaseShader frees a compiled shader effect. Stale handles are logged
// and ignored.
func (r *Renderer) ReleaseShader(handle ShaderHandle) {
	if _, ok := r.shaders.remove(uint64(handle)); !ok {
		logger().Warn("releasing unknown shader", "handle", handle)
	}
}
