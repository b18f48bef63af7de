package glint

import (
	"github.com/glintui/glint/d3d11"
	"github.com/glintui/glint/gmath"
)

// maxClassInstances caps how many shader class instances the frame
// snapshot can carry per stage.
const maxClassInstances = 256

// stateSnapshot holds every piece of device-context state the renderer
// touches during a frame. BeginFrame captures it, EndFrame puts it back, so
// the host application's pipeline state survives UI rendering untouched.
//
// The getters return referenced COM objects; restore releases each one
// after rebinding it, returning ownership to the context.
type stateSnapshot struct {
	scissorCount  uint32
	scissorRects  [d3d11.VIEWPORT_AND_SCISSORRECT_OBJECT_COUNT]d3d11.RECT
	viewportCount uint32
	viewports     [d3d11.VIEWPORT_AND_SCISSORRECT_OBJECT_COUNT]d3d11.VIEWPORT
	rasterizer    *d3d11.RasterizerState

	blendState  *d3d11.BlendState
	blendFactor [4]float32
	sampleMask  uint32

	depthStencilState *d3d11.DepthStencilState
	stencilRef        uint32

	renderTarget *d3d11.RenderTargetView
	depthStencil *d3d11.DepthStencilView

	ps               *d3d11.PixelShader
	psInstances      [maxClassInstances]*d3d11.ClassInstance
	psInstanceCount  uint32
	psShaderResource *d3d11.ShaderResourceView
	psSampler        *d3d11.SamplerState
	psConstantBuffer *d3d11.Buffer

	vs               *d3d11.VertexShader
	vsInstances      [maxClassInstances]*d3d11.ClassInstance
	vsInstanceCount  uint32
	vsConstantBuffer *d3d11.Buffer

	gs              *d3d11.GeometryShader
	gsInstances     [maxClassInstances]*d3d11.ClassInstance
	gsInstanceCount uint32

	inputLayout  *d3d11.InputLayout
	indexBuffer  *d3d11.Buffer
	indexFormat  uint32
	indexOffset  uint32
	vertexBuffer *d3d11.Buffer
	vertexStride uint32
	vertexOffset uint32
	topology     uint32
}

func (s *stateSnapshot) capture(ctx *d3d11.DeviceContext) {
	s.scissorCount = ctx.RSGetScissorRects(s.scissorRects[:])
	s.viewportCount = ctx.RSGetViewports(s.viewports[:])
	s.rasterizer = ctx.RSGetState()

	s.blendState, s.blendFactor, s.sampleMask = ctx.OMGetBlendState()
	s.depthStencilState, s.stencilRef = ctx.OMGetDepthStencilState()
	s.renderTarget, s.depthStencil = ctx.OMGetRenderTargets()

	s.ps, s.psInstanceCount = ctx.PSGetShader(s.psInstances[:])
	s.psShaderResource = ctx.PSGetShaderResources(0)
	s.psSampler = ctx.PSGetSamplers(0)
	s.psConstantBuffer = ctx.PSGetConstantBuffers(0)

	s.vs, s.vsInstanceCount = ctx.VSGetShader(s.vsInstances[:])
	s.vsConstantBuffer = ctx.VSGetConstantBuffers(0)

	s.gs, s.gsInstanceCount = ctx.GSGetShader(s.gsInstances[:])

	s.inputLayout = ctx.IAGetInputLayout()
	s.indexBuffer, s.indexFormat, s.indexOffset = ctx.IAGetIndexBuffer()
	s.vertexBuffer, s.vertexStride, s.vertexOffset = ctx.IAGetVertexBuffers()
	s.topology = ctx.IAGetPrimitiveTopology()
}

func (s *stateSnapshot) restore(ctx *d3d11.DeviceContext) {
	if s.scissorCount > 0 {
		ctx.RSSetScissorRects(s.scissorRects[:s.scissorCount])
	}
	if s.viewportCount > 0 {
		ctx.RSSetViewports(s.viewports[:s.viewportCount])
	}
	ctx.RSSetState(s.rasterizer)
	s.rasterizer.Release()

	ctx.OMSetBlendState(s.blendState, &s.blendFactor, s.sampleMask)
	s.blendState.Release()
	ctx.OMSetDepthStencilState(s.depthStencilState, s.stencilRef)
	s.depthStencilState.Release()
	ctx.OMSetRenderTargets(s.renderTarget, s.depthStencil)
	s.renderTarget.Release()
	s.depthStencil.Release()

	ctx.PSSetShader(s.ps, s.psInstances[:s.psInstanceCount])
	s.ps.Release()
	for i := range s.psInstanceCount {
		s.psInstances[i].Release()
	}
	ctx.PSSetShaderResources(0, s.psShaderResource)
	s.psShaderResource.Release()
	ctx.PSSetSamplers(0, s.psSampler)
	s.psSampler.Release()
	ctx.PSSetConstantBuffers(0, s.psConstantBuffer)
	s.psConstantBuffer.Release()

	ctx.VSSetShader(s.vs, s.vsInstances[:s.vsInstanceCount])
	s.vs.Release()
	for i := range s.vsInstanceCount {
		s.vsInstances[i].Release()
	}
	ctx.VSSetConstantBuffers(0, s.vsConstantBuffer)
	s.vsConstantBuffer.Release()

	ctx.GSSetShader(s.gs, s.gsInstances[:s.gsInstanceCount])
	s.gs.Release()
	for i := range s.gsInstanceCount {
		s.gsInstances[i].Release()
	}

	ctx.IASetInputLayout(s.inputLayout)
	s.inputLayout.Release()
	ctx.IASetIndexBuffer(s.indexBuffer, s.indexFormat, s.indexOffset)
	s.indexBuffer.Release()
	ctx.IASetVertexBuffers(s.vertexBuffer, s.vertexStride, s.vertexOffset)
	s.vertexBuffer.Release()
	ctx.IASetPrimitiveTopology(s.topology)

	*s = stateSnapshot{}
}

// BeginFrame captures the host's pipeline state and sets up rendering into
// the base layer of the layer stack. The swapchain and render target stay
// bound until EndFrame; the render target is only drawn to in EndFrame's
// final blit.
func (r *Renderer) BeginFrame(swapchain *d3d11.IDXGISwapChain, renderTarget *d3d11.RenderTargetView) {
	if r.device == nil {
		panic("glint: BeginFrame before Init")
	}
	if r.boundSwapchain != nil || r.boundRenderTarget != nil {
		panic("glint: BeginFrame without matching EndFrame")
	}
	r.boundSwapchain = swapchain
	r.boundRenderTarget = renderTarget

	r.snapshot.capture(r.ctx)

	viewport := d3d11.VIEWPORT{
		Width:    float32(r.viewportWidth),
		Height:   float32(r.viewportHeight),
		MaxDepth: 1,
	}
	r.ctx.RSSetViewports([]d3d11.VIEWPORT{viewport})

	// Force-apply our baseline state; the cache must not trust whatever the
	// host left bound.
	r.ctx.RSSetState(r.rasterizerScissorDisabled)
	r.scissor = gmath.InvalidRect()
	r.currentBlendState = nil
	r.setBlendState(r.blendEnable)
	r.ctx.OMSetDepthStencilState(r.depthStencilDisable, 0)
	r.stencilEnabled = false
	r.stencilRef = 0
	r.activeProgram = programNone

	layer, err := r.layers.beginFrame(r.viewportWidth, r.viewportHeight)
	if err != nil {
		logger().Error("creating base layer", "err", err)
		return
	}
	rt := r.layers.layer(layer)
	r.ctx.OMSetRenderTargets(rt.renderTargetView, rt.depthStencilView)
	r.ctx.ClearRenderTargetView(rt.renderTargetView, &baseLayerClear)

	r.SetTransform(nil)
	r.translation = gmath.Vec2{}
	r.cbufferDirty = true
}

// EndFrame resolves the base layer into the bound render target and
// restores the host's pipeline state.
func (r *Renderer) EndFrame() {
	if r.boundRenderTarget == nil {
		panic("glint: EndFrame without BeginFrame")
	}

	// The multisampled base layer resolves into the single-sample primary
	// postprocess target, which the passthrough program then blits onto the
	// backbuffer.
	primary, err := r.blitLayerToPostprocessPrimary(r.layers.topHandle())
	if err == nil {
		r.ctx.OMSetRenderTargets(r.boundRenderTarget, nil)
		r.useProgram(programPassthrough)
		r.ctx.PSSetShaderResources(0, primary.shaderResource)
		r.ctx.PSSetSamplers(0, r.sampler)
		r.setBlendState(r.blendDisable)
		r.drawFullscreenQuad()
		r.setBlendState(r.blendEnable)
	}

	r.layers.endFrame()
	r.boundSwapchain = nil
	r.boundRenderTarget = nil

	r.snapshot.restore(r.ctx)
	r.currentBlendState = nil
	r.activeProgram = programNone
}
