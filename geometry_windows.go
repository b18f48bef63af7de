package glint

import (
	"os"
	"unsafe"

	"honnef.co/go/safeish"

	"github.com/glintui/glint/d3d11"
	"github.com/glintui/glint/gfx"
	"github.com/glintui/glint/gmath"
)

// CompileGeometry uploads an indexed triangle list into immutable GPU
// buffers and returns a handle for later draws. Returns the invalid handle
// on allocation failure.
func (r *Renderer) CompileGeometry(vertices []gfx.Vertex, indices []uint32) GeometryHandle {
	vertexDesc := d3d11.BUFFER_DESC{
		ByteWidth: uint32(len(vertices)) * uint32(unsafe.Sizeof(gfx.Vertex{})),
		Usage:     d3d11.USAGE_DEFAULT,
		BindFlags: d3d11.BIND_VERTEX_BUFFER,
	}
	vertexBuffer, err := r.device.CreateBuffer(&vertexDesc, safeish.SliceCast[[]byte](vertices))
	if err != nil {
		logger().Error("creating vertex buffer", "err", err)
		return 0
	}
	indexDesc := d3d11.BUFFER_DESC{
		ByteWidth: uint32(len(indices)) * 4,
		Usage:     d3d11.USAGE_DEFAULT,
		BindFlags: d3d11.BIND_INDEX_BUFFER,
	}
	indexBuffer, err := r.device.CreateBuffer(&indexDesc, safeish.SliceCast[[]byte](indices))
	if err != nil {
		vertexBuffer.Release()
		logger().Error("creating index buffer", "err", err)
		return 0
	}
	return GeometryHandle(r.geometry.insert(geometryData{
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		indexCount:   uint32(len(indices)),
	}))
}

// RenderGeometry draws compiled geometry at a translation offset. The
// texture handle selects the program: zero draws vertex colors only, a
// live handle binds that texture, TextureEnableWithoutBinding selects the
// texturing program while keeping whatever shader resource is bound, and
// TexturePostprocess leaves program and bindings entirely to the caller.
func (r *Renderer) RenderGeometry(handle GeometryHandle, translation gmath.Vec2, texture TextureHandle) {
	geom, ok := r.geometry.lookup(uint64(handle))
	if !ok {
		logger().Warn("rendering released geometry", "handle", handle)
		return
	}

	if translation != r.translation {
		r.translation = translation
		r.cbufferDirty = true
	}

	switch texture {
	case TexturePostprocess:
		// Program and resources were bound by the compositing pass.
	case TextureEnableWithoutBinding:
		r.useProgram(programTexture)
		r.ctx.PSSetSamplers(0, r.sampler)
	case 0:
		r.useProgram(programColor)
	default:
		if tex, ok := r.textures.lookup(uint64(texture)); ok {
			r.useProgram(programTexture)
			r.ctx.PSSetShaderResources(0, tex.view)
			r.ctx.PSSetSamplers(0, r.sampler)
		} else {
			logger().Warn("rendering with released texture", "handle", texture)
			r.useProgram(programColor)
		}
	}

	r.updateConstantBuffer()

	r.ctx.IASetInputLayout(r.vertexLayout)
	r.ctx.VSSetConstantBuffers(0, r.shaderBuffer)
	r.ctx.PSSetConstantBuffers(0, r.shaderBuffer)
	r.ctx.IASetVertexBuffers(geom.vertexBuffer, uint32(unsafe.Sizeof(gfx.Vertex{})), 0)
	r.ctx.IASetIndexBuffer(geom.indexBuffer, d3d11.DXGI_FORMAT_R32_UINT, 0)
	r.ctx.IASetPrimitiveTopology(d3d11.PRIMITIVE_TOPOLOGY_TRIANGLELIST)
	r.ctx.DrawIndexed(geom.indexCount, 0, 0)
}

// ReleaseGeometry frees the buffers behind a handle. Stale handles are
// logged and ignored.
func (r *Renderer) ReleaseGeometry(handle GeometryHandle) {
	geom, ok := r.geometry.remove(uint64(handle))
	if !ok {
		logger().Warn("releasing unknown geometry", "handle", handle)
		return
	}
	geom.vertexBuffer.Release()
	geom.indexBuffer.Release()
}

// drawFullscreenQuad draws the cached unit quad with whatever program and
// bindings are active.
func (r *Renderer) drawFullscreenQuad() {
	r.RenderGeometry(r.fullscreenQuad, gmath.Vec2{}, TexturePostprocess)
}

// drawFullscreenQuadUV draws a transient unit quad with transformed
// texture coordinates, used to sample a postprocess target at an offset.
func (r *Renderer) drawFullscreenQuadUV(uvOffset, uvScale gmath.Vec2) {
	quad := r.CompileGeometry(fullscreenQuadVertices(uvOffset, uvScale), fullscreenQuadIndices())
	if quad == 0 {
		return
	}
	r.RenderGeometry(quad, gmath.Vec2{}, TexturePostprocess)
	r.ReleaseGeometry(quad)
}

// LoadTexture reads and decodes an image file and uploads it as a
// mipmapped texture, returning the handle and pixel dimensions. Failures
// are logged and yield the invalid handle, matching the UI library's
// best-effort texture contract.
func (r *Renderer) LoadTexture(source string) (TextureHandle, int, int) {
	var (
		pix           []byte
		width, height int
		err           error
	)
	if load := r.opts.LoadTextureFromFile; load != nil {
		pix, width, height, err = load(source)
	} else {
		var data []byte
		data, err = os.ReadFile(source)
		if err == nil {
			pix, width, height, err = decodeImage(data)
		}
	}
	if err != nil {
		logger().Warn("loading texture", "source", source, "err", err)
		return 0, 0, 0
	}
	handle := r.GenerateTexture(pix, width, height)
	if handle == 0 {
		return 0, 0, 0
	}
	return handle, width, height
}

// GenerateTexture uploads tightly packed premultiplied RGBA pixels, top
// row first, and generates a full mip chain. Empty pix allocates an
// uninitialized texture of the given size, which SaveLayerAsTexture fills
// by GPU copy.
func (r *Renderer) GenerateTexture(pix []byte, width, height int) TextureHandle {
	desc := d3d11.TEXTURE2D_DESC{
		Width:     uint32(width),
		Height:    uint32(height),
		MipLevels: 0,
		ArraySize: 1,
		Format:    d3d11.DXGI_FORMAT_R8G8B8A8_UNORM,
		SampleDesc: d3d11.DXGI_SAMPLE_DESC{
			Count: 1,
		},
		Usage:     d3d11.USAGE_DEFAULT,
		BindFlags: d3d11.BIND_SHADER_RESOURCE | d3d11.BIND_RENDER_TARGET,
		MiscFlags: d3d11.RESOURCE_MISC_GENERATE_MIPS,
	}
	texture, err := r.device.CreateTexture2D(&desc, nil)
	if err != nil {
		logger().Error("creating texture", "width", width, "height", height, "err", err)
		return 0
	}
	if len(pix) > 0 {
		r.ctx.UpdateSubresource(texture.Resource(), 0, nil, pix, uint32(width)*4, 0)
	}

	srvDesc := d3d11.SHADER_RESOURCE_VIEW_DESC_TEX2D{
		SHADER_RESOURCE_VIEW_DESC: d3d11.SHADER_RESOURCE_VIEW_DESC{
			Format:        desc.Format,
			ViewDimension: d3d11.SRV_DIMENSION_TEXTURE2D,
		},
		// All mip levels, down to the smallest.
		Texture2D: d3d11.TEX2D_SRV{MipLevels: ^uint32(0)},
	}
	view, err := r.device.CreateShaderResourceView(texture.Resource(), &srvDesc)
	if err != nil {
		texture.Release()
		logger().Error("creating texture view", "err", err)
		return 0
	}
	if len(pix) > 0 {
		r.ctx.GenerateMips(view)
	}

	return TextureHandle(r.textures.insert(textureData{
		texture: texture,
		view:    view,
		width:   width,
		height:  height,
	}))
}

// ReleaseTexture frees the texture behind a handle. Stale handles are
// logged and ignored.
func (r *Renderer) ReleaseTexture(handle TextureHandle) {
	tex, ok := r.textures.remove(uint64(handle))
	if !ok {
		logger().Warn("releasing unknown texture", "handle", handle)
		return
	}
	tex.view.Release()
	tex.texture.Release()
}

// EnableScissorRegion turns scissor testing off; enabling happens
// implicitly through SetScissorRegion.
func (r *Renderer) EnableScissorRegion(enable bool) {
	if !enable {
		r.setScissor(gmath.InvalidRect(), false)
	}
}

// SetScissorRegion enables scissor testing over a region in UI
// coordinates.
func (r *Renderer) SetScissorRegion(region gmath.Rect) {
	r.setScissor(region, false)
}

// setScissor applies a scissor region, swapping rasterizer states when the
// enabled/disabled edge is crossed. verticallyFlip converts from UI to
// bottom-left-origin coordinates, needed when rendering into a flipped
// intermediate.
func (r *Renderer) setScissor(region gmath.Rect, verticallyFlip bool) {
	if region.Valid() != r.scissor.Valid() {
		if region.Valid() {
			r.ctx.RSSetState(r.rasterizerScissorEnabled)
		} else {
			r.ctx.RSSetState(r.rasterizerScissorDisabled)
		}
	}
	if region.Valid() {
		rect := region
		if verticallyFlip {
			rect = rect.FlipVertically(r.viewportHeight)
		}
		rect = rect.ClampTo(r.viewportWidth, r.viewportHeight)
		r.ctx.RSSetScissorRects([]d3d11.RECT{{
			Left:   int32(rect.X0),
			Top:    int32(rect.Y0),
			Right:  int32(rect.X1),
			Bottom: int32(rect.Y1),
		}})
	}
	r.scissor = region
}
