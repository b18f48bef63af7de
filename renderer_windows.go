package glint

import (
	"log/slog"
	"time"
	"unsafe"

	"honnef.co/go/safeish"

	"github.com/glintui/glint/d3d11"
	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// defaultSampleCount is the MSAA sample count of layer render targets.
const defaultSampleCount = 2

// Sentinel texture handles understood by RenderGeometry.
const (
	// TexturePostprocess marks a draw that samples whatever postprocess
	// target the caller has already bound; no program or texture change is
	// made.
	TexturePostprocess TextureHandle = ^TextureHandle(0)
	// TextureEnableWithoutBinding selects the texturing program while
	// keeping the currently bound shader resource.
	TextureEnableWithoutBinding TextureHandle = ^TextureHandle(0) - 1
)

// RendererOptions configures a Renderer. The zero value is usable.
type RendererOptions struct {
	// SampleCount is the MSAA sample count for layer render targets.
	// Zero selects the default of 2; 1 disables multisampling.
	SampleCount int

	// LoadTextureFromFile overrides the built-in image loader used by
	// LoadTexture. It must return tightly packed premultiplied RGBA
	// pixels, top row first.
	LoadTextureFromFile func(source string) (pix []byte, width, height int, err error)

	// Logger, if set, is installed via SetLogger.
	Logger *slog.Logger
}

type geometryData struct {
	vertexBuffer *d3d11.Buffer
	indexBuffer  *d3d11.Buffer
	indexCount   uint32
}

type textureData struct {
	// texture is retained alongside the view so SaveLayerAsTexture can
	// copy into it without querying the view for its resource.
	texture *d3d11.Texture2D
	view    *d3d11.ShaderResourceView

	width, height int
}

// Renderer issues Direct3D 11 calls on behalf of a retained-mode UI
// library. It is single-threaded and assumes exclusive ownership of the
// device context between BeginFrame and EndFrame; the frame state guard
// saves and restores the host's pipeline state around that window.
type Renderer struct {
	opts    RendererOptions
	samples int

	device *d3d11.Device
	ctx    *d3d11.DeviceContext

	programs     *programData
	vertexLayout *d3d11.InputLayout
	shaderBuffer *d3d11.Buffer
	sampler      *d3d11.SamplerState

	blendEnable       *d3d11.BlendState
	blendDisable      *d3d11.BlendState
	blendDisableColor *d3d11.BlendState
	// blendMultiply scales the source by the blend factor, used by the
	// opacity filter.
	blendMultiply *d3d11.BlendState

	rasterizerScissorEnabled  *d3d11.RasterizerState
	rasterizerScissorDisabled *d3d11.RasterizerState

	depthStencilDisable   *d3d11.DepthStencilState
	depthStencilTest      *d3d11.DepthStencilState
	depthStencilSet       *d3d11.DepthStencilState
	depthStencilIntersect *d3d11.DepthStencilState

	geometry arena[geometryData]
	textures arena[textureData]
	filters  arena[compiledFilter]
	shaders  arena[compiledShader]

	layers layerStack[renderTarget]

	viewportWidth  int
	viewportHeight int
	projection     gmath.Mat4
	transform      gmath.Mat4
	translation    gmath.Vec2
	cbufferDirty   bool

	// scissor is the active scissor region in UI coordinates; an invalid
	// rect means scissoring is off.
	scissor gmath.Rect

	activeProgram     programID
	currentBlendState *d3d11.BlendState
	stencilEnabled    bool
	// stencilRef is the value a pixel's stencil must equal to pass the
	// clip mask test while it is enabled.
	stencilRef uint32

	boundSwapchain    *d3d11.IDXGISwapChain
	boundRenderTarget *d3d11.RenderTargetView

	fullscreenQuad GeometryHandle
	startTime      time.Time

	snapshot stateSnapshot
}

// NewRenderer returns an unconnected Renderer; call Init before use.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.Logger != nil {
		SetLogger(opts.Logger)
	}
	samples := opts.SampleCount
	if samples == 0 {
		samples = defaultSampleCount
	}
	return &Renderer{
		opts:    opts,
		samples: samples,
		scissor: gmath.InvalidRect(),
	}
}

// Init connects the renderer to a device and compiles every fixed GPU
// object: shader programs, blend/rasterizer/depth-stencil states, the
// shared constant buffer, the sampler, the vertex layout, and the cached
// fullscreen quad. A nil device or context is a caller integration bug.
func (r *Renderer) Init(device *d3d11.Device, ctx *d3d11.DeviceContext) error {
	if device == nil || ctx == nil {
		panic("glint: Init with nil device or context")
	}
	r.device = device
	r.ctx = ctx
	r.startTime = time.Now()

	r.layers = layerStack[renderTarget]{
		createLayer: func(width, height int, share *renderTarget) (renderTarget, error) {
			var shared *d3d11.DepthStencilView
			if share != nil {
				shared = share.depthStencilView
			}
			return createRenderTarget(r.device, width, height, r.samples, attachmentDepthStencil, shared)
		},
		createPostprocess: func(width, height int) (renderTarget, error) {
			return createRenderTarget(r.device, width, height, 1, attachmentNone, nil)
		},
		destroy: destroyRenderTarget,
	}

	// The UI library serves vertex colors and textures with premultiplied
	// alpha; the enabled state is the matching "one, one minus source
	// alpha" mode.
	blendDesc := d3d11.BLEND_DESC{}
	blendDesc.RenderTarget[0] = d3d11.RENDER_TARGET_BLEND_DESC{
		BlendEnable:           0,
		SrcBlend:              d3d11.BLEND_ONE,
		DestBlend:             d3d11.BLEND_ZERO,
		BlendOp:               d3d11.BLEND_OP_ADD,
		SrcBlendAlpha:         d3d11.BLEND_ONE,
		DestBlendAlpha:        d3d11.BLEND_ZERO,
		BlendOpAlpha:          d3d11.BLEND_OP_ADD,
		RenderTargetWriteMask: d3d11.COLOR_WRITE_ENABLE_ALL,
	}
	var err error
	if r.blendDisable, err = device.CreateBlendState(&blendDesc); err != nil {
		return err
	}
	blendDesc.RenderTarget[0].BlendEnable = 1
	blendDesc.RenderTarget[0].DestBlend = d3d11.BLEND_INV_SRC_ALPHA
	blendDesc.RenderTarget[0].DestBlendAlpha = d3d11.BLEND_INV_SRC_ALPHA
	if r.blendEnable, err = device.CreateBlendState(&blendDesc); err != nil {
		return err
	}
	blendDesc.RenderTarget[0].BlendEnable = 1
	blendDesc.RenderTarget[0].SrcBlend = d3d11.BLEND_BLEND_FACTOR
	blendDesc.RenderTarget[0].DestBlend = d3d11.BLEND_ZERO
	blendDesc.RenderTarget[0].SrcBlendAlpha = d3d11.BLEND_BLEND_FACTOR
	blendDesc.RenderTarget[0].DestBlendAlpha = d3d11.BLEND_ZERO
	if r.blendMultiply, err = device.CreateBlendState(&blendDesc); err != nil {
		return err
	}
	// Color writes fully masked, used while rendering clip mask geometry.
	blendDesc.RenderTarget[0] = d3d11.RENDER_TARGET_BLEND_DESC{
		SrcBlend:       d3d11.BLEND_ONE,
		DestBlend:      d3d11.BLEND_ZERO,
		BlendOp:        d3d11.BLEND_OP_ADD,
		SrcBlendAlpha:  d3d11.BLEND_ONE,
		DestBlendAlpha: d3d11.BLEND_ZERO,
		BlendOpAlpha:   d3d11.BLEND_OP_ADD,
	}
	if r.blendDisableColor, err = device.CreateBlendState(&blendDesc); err != nil {
		return err
	}

	rasterizerDesc := d3d11.RASTERIZER_DESC{
		FillMode:              d3d11.FILL_SOLID,
		CullMode:              d3d11.CULL_NONE,
		DepthClipEnable:       0,
		ScissorEnable:         1,
		MultisampleEnable:     b2u(r.samples > 1),
		AntialiasedLineEnable: b2u(r.samples > 1),
	}
	if r.rasterizerScissorEnabled, err = device.CreateRasterizerState(&rasterizerDesc); err != nil {
		return err
	}
	rasterizerDesc.ScissorEnable = 0
	if r.rasterizerScissorDisabled, err = device.CreateRasterizerState(&rasterizerDesc); err != nil {
		return err
	}

	if r.programs, err = createShaders(device); err != nil {
		return err
	}

	semPosition := []byte("POSITION\x00")
	semColor := []byte("COLOR\x00")
	semTexCoord := []byte("TEXCOORD\x00")
	const appendAligned = 0xffffffff
	layout := []d3d11.INPUT_ELEMENT_DESC{
		{SemanticName: &semPosition[0], Format: d3d11.DXGI_FORMAT_R32G32_FLOAT, AlignedByteOffset: appendAligned},
		{SemanticName: &semColor[0], Format: d3d11.DXGI_FORMAT_R8G8B8A8_UNORM, AlignedByteOffset: appendAligned},
		{SemanticName: &semTexCoord[0], Format: d3d11.DXGI_FORMAT_R32G32_FLOAT, AlignedByteOffset: appendAligned},
	}
	if r.vertexLayout, err = device.CreateInputLayout(layout, r.programs.mainVertBytecode); err != nil {
		return err
	}

	cbufferDesc := d3d11.BUFFER_DESC{
		ByteWidth:      cbufferSize,
		Usage:          d3d11.USAGE_DYNAMIC,
		BindFlags:      d3d11.BIND_CONSTANT_BUFFER,
		CPUAccessFlags: d3d11.CPU_ACCESS_WRITE,
	}
	if r.shaderBuffer, err = device.CreateBuffer(&cbufferDesc, nil); err != nil {
		return err
	}

	samplerDesc := d3d11.SAMPLER_DESC{
		Filter:         d3d11.FILTER_MIN_MAG_MIP_LINEAR,
		AddressU:       d3d11.TEXTURE_ADDRESS_WRAP,
		AddressV:       d3d11.TEXTURE_ADDRESS_WRAP,
		AddressW:       d3d11.TEXTURE_ADDRESS_WRAP,
		MaxAnisotropy:  1,
		ComparisonFunc: d3d11.COMPARISON_ALWAYS,
		MaxLOD:         maxFloat32,
	}
	if r.sampler, err = device.CreateSamplerState(&samplerDesc); err != nil {
		return err
	}

	dsDesc := d3d11.DEPTH_STENCIL_DESC{
		DepthEnable: 0,
		FrontFace: d3d11.DEPTH_STENCILOP_DESC{
			StencilFailOp:      d3d11.STENCIL_OP_KEEP,
			StencilDepthFailOp: d3d11.STENCIL_OP_KEEP,
			StencilPassOp:      d3d11.STENCIL_OP_KEEP,
			StencilFunc:        d3d11.COMPARISON_EQUAL,
		},
	}
	dsDesc.BackFace = dsDesc.FrontFace
	if r.depthStencilDisable, err = device.CreateDepthStencilState(&dsDesc); err != nil {
		return err
	}
	dsDesc.StencilEnable = 1
	dsDesc.StencilReadMask = 0xff
	dsDesc.StencilWriteMask = 0xff
	if r.depthStencilTest, err = device.CreateDepthStencilState(&dsDesc); err != nil {
		return err
	}
	dsDesc.FrontFace.StencilFunc = d3d11.COMPARISON_ALWAYS
	dsDesc.FrontFace.StencilPassOp = d3d11.STENCIL_OP_REPLACE
	dsDesc.BackFace = dsDesc.FrontFace
	if r.depthStencilSet, err = device.CreateDepthStencilState(&dsDesc); err != nil {
		return err
	}
	dsDesc.FrontFace.StencilPassOp = d3d11.STENCIL_OP_INCR
	dsDesc.BackFace = dsDesc.FrontFace
	if r.depthStencilIntersect, err = device.CreateDepthStencilState(&dsDesc); err != nil {
		return err
	}

	// Cache a clip-space unit quad for blits. Texture coordinate (0,0)
	// sits at clip-space bottom left; the passthrough vertex stage flips V.
	r.fullscreenQuad = r.CompileGeometry(fullscreenQuadVertices(gmath.Vec2{}, gmath.Vec2{X: 1, Y: 1}), fullscreenQuadIndices())
	return nil
}

// Cleanup releases every cached geometry and texture plus all fixed GPU
// objects. Safe to call more than once.
func (r *Renderer) Cleanup() {
	r.geometry.drain(func(g geometryData) {
		g.vertexBuffer.Release()
		g.indexBuffer.Release()
	})
	r.textures.drain(func(t textureData) {
		t.view.Release()
		t.texture.Release()
	})
	r.filters.drain(func(compiledFilter) {})
	r.shaders.drain(func(compiledShader) {})
	r.layers.destroyAll()

	if r.programs != nil {
		r.programs.destroy()
		r.programs = nil
	}
	r.sampler.Release()
	r.sampler = nil
	r.blendEnable.Release()
	r.blendEnable = nil
	r.blendDisable.Release()
	r.blendDisable = nil
	r.blendDisableColor.Release()
	r.blendDisableColor = nil
	r.blendMultiply.Release()
	r.blendMultiply = nil
	r.depthStencilDisable.Release()
	r.depthStencilDisable = nil
	r.depthStencilTest.Release()
	r.depthStencilTest = nil
	r.depthStencilSet.Release()
	r.depthStencilSet = nil
	r.depthStencilIntersect.Release()
	r.depthStencilIntersect = nil
	r.rasterizerScissorEnabled.Release()
	r.rasterizerScissorEnabled = nil
	r.rasterizerScissorDisabled.Release()
	r.rasterizerScissorDisabled = nil
	r.shaderBuffer.Release()
	r.shaderBuffer = nil
	r.vertexLayout.Release()
	r.vertexLayout = nil
}

// SetViewport sets the target dimensions and recomputes the orthographic
// projection. A size change takes effect at the next BeginFrame, where the
// layer pool is rebuilt.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportWidth = width
	r.viewportHeight = height
	r.projection = gmath.Ortho(0, float32(width), float32(height), 0, -10000, 10000)
}

// SetTransform applies a transform on top of the projection. nil resets to
// the plain projection.
func (r *Renderer) SetTransform(transform *gmath.Mat4) {
	if transform != nil {
		r.transform = r.projection.Mul(*transform)
	} else {
		r.transform = r.projection
	}
	r.cbufferDirty = true
}

// Clear fills the bound swapchain render target with opaque black.
func (r *Renderer) Clear() {
	clearColor := [4]float32{0, 0, 0, 1}
	r.ctx.ClearRenderTargetView(r.boundRenderTarget, &clearColor)
}

func (r *Renderer) setBlendState(state *d3d11.BlendState) {
	if state != r.currentBlendState {
		factor := [4]float32{}
		r.ctx.OMSetBlendState(state, &factor, 0xffffffff)
		r.currentBlendState = state
	}
}

// setBlendFactor binds the multiply blend state with an explicit factor.
// It always issues the call since the factor is not part of the cache key.
func (r *Renderer) setBlendFactor(factor [4]float32) {
	r.ctx.OMSetBlendState(r.blendMultiply, &factor, 0xffffffff)
	r.currentBlendState = r.blendMultiply
}

func (r *Renderer) useProgram(id programID) {
	if r.activeProgram == id {
		return
	}
	if id != programNone {
		prog := r.programs.programs[id]
		r.ctx.VSSetShader(prog.vertexShader, nil)
		r.ctx.PSSetShader(prog.pixelShader, nil)
	}
	r.activeProgram = id
}

// writeCbuffer replaces the shared constant buffer's contents.
func (r *Renderer) writeCbuffer(data []byte) {
	mapped, err := r.ctx.Map(r.shaderBuffer.Resource(), 0, d3d11.MAP_WRITE_DISCARD, 0)
	if err != nil {
		logger().Error("mapping constant buffer", "err", err)
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(mapped.PData)), cbufferSize)
	copy(dst, data)
	r.ctx.Unmap(r.shaderBuffer.Resource(), 0)
}

// updateConstantBuffer uploads transform and translation when either has
// changed since the last upload.
func (r *Renderer) updateConstantBuffer() {
	if !r.cbufferDirty {
		return
	}
	cb := mainCbuffer{
		Transform: [16]float32(r.transform),
		Translate: [2]float32{r.translation.X, r.translation.Y},
	}
	r.writeCbuffer(safeish.AsBytes(&cb))
	r.cbufferDirty = false
}

func fullscreenQuadVertices(uvOffset, uvScale gmath.Vec2) []gfx.Vertex {
	white := gfx.Color{255, 255, 255, 255}
	uv := func(u, v float32) [2]float32 {
		return [2]float32{u*uvScale.X + uvOffset.X, v*uvScale.Y + uvOffset.Y}
	}
	return []gfx.Vertex{
		{Pos: [2]float32{-1, -1}, Color: white, TexCoord: uv(0, 0)},
		{Pos: [2]float32{1, -1}, Color: white, TexCoord: uv(1, 0)},
		{Pos: [2]float32{-1, 1}, Color: white, TexCoord: uv(0, 1)},
		{Pos: [2]float32{1, 1}, Color: white, TexCoord: uv(1, 1)},
	}
}

func fullscreenQuadIndices() []uint32 {
	return []uint32{0, 1, 2, 2, 1, 3}
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

const maxFloat32 = 0x1.fffffep127
