package glint

import (
	"github.com/glintui/glint/d3d11"
	"github.com/glintui/glint/gmath"
)

// renderTargetAttachment selects the depth-stencil surface of a new render
// target.
type renderTargetAttachment uint8

const (
	attachmentNone renderTargetAttachment = iota
	attachmentDepthStencil
)

// renderTarget is one offscreen surface: a color texture bindable both as a
// render target and as a sampling source, plus an optional depth-stencil
// view. The depth-stencil view may be shared between layers, in which case
// only the first owner allocated it and the rest hold references.
type renderTarget struct {
	width, height int

	texture          *d3d11.Texture2D
	renderTargetView *d3d11.RenderTargetView
	shaderResource   *d3d11.ShaderResourceView
	depthStencilView *d3d11.DepthStencilView

	ownsDepthStencil bool
}

// createRenderTarget allocates a color surface, its views, and the
// requested depth-stencil attachment. samples > 1 selects multisampling.
// When sharedDepthStencil is non-nil the new target references it instead
// of allocating its own. Resources created before a failure are released
// before returning.
func createRenderTarget(dev *d3d11.Device, width, height, samples int, attachment renderTargetAttachment, sharedDepthStencil *d3d11.DepthStencilView) (renderTarget, error) {
	sampleCount := uint32(max(samples, 1))
	multisampled := samples > 1

	textureDesc := d3d11.TEXTURE2D_DESC{
		Width:     uint32(width),
		Height:    uint32(height),
		MipLevels: 1,
		ArraySize: 1,
		Format:    d3d11.DXGI_FORMAT_R8G8B8A8_UNORM,
		SampleDesc: d3d11.DXGI_SAMPLE_DESC{
			Count: sampleCount,
		},
		Usage:     d3d11.USAGE_DEFAULT,
		BindFlags: d3d11.BIND_RENDER_TARGET | d3d11.BIND_SHADER_RESOURCE,
	}
	texture, err := dev.CreateTexture2D(&textureDesc, nil)
	if err != nil {
		return renderTarget{}, err
	}

	rtvDesc := d3d11.RENDER_TARGET_VIEW_DESC_TEX2D{
		Format:        textureDesc.Format,
		ViewDimension: d3d11.RTV_DIMENSION_TEXTURE2D,
	}
	if multisampled {
		rtvDesc.ViewDimension = d3d11.RTV_DIMENSION_TEXTURE2DMS
	}
	rtv, err := dev.CreateRenderTargetView(texture.Resource(), &rtvDesc)
	if err != nil {
		texture.Release()
		return renderTarget{}, err
	}

	srvDesc := d3d11.SHADER_RESOURCE_VIEW_DESC_TEX2D{
		SHADER_RESOURCE_VIEW_DESC: d3d11.SHADER_RESOURCE_VIEW_DESC{
			Format:        textureDesc.Format,
			ViewDimension: d3d11.SRV_DIMENSION_TEXTURE2D,
		},
		Texture2D: d3d11.TEX2D_SRV{MipLevels: 1},
	}
	if multisampled {
		srvDesc.ViewDimension = d3d11.SRV_DIMENSION_TEXTURE2DMS
	}
	srv, err := dev.CreateShaderResourceView(texture.Resource(), &srvDesc)
	if err != nil {
		rtv.Release()
		texture.Release()
		return renderTarget{}, err
	}

	rt := renderTarget{
		width:            width,
		height:           height,
		texture:          texture,
		renderTargetView: rtv,
		shaderResource:   srv,
	}

	if attachment != attachmentNone {
		if sharedDepthStencil != nil {
			sharedDepthStencil.AddRef()
			rt.depthStencilView = sharedDepthStencil
		} else {
			depthDesc := d3d11.TEXTURE2D_DESC{
				Width:     uint32(width),
				Height:    uint32(height),
				MipLevels: 1,
				ArraySize: 1,
				Format:    d3d11.DXGI_FORMAT_D32_FLOAT_S8X24_UINT,
				SampleDesc: d3d11.DXGI_SAMPLE_DESC{
					Count: sampleCount,
				},
				Usage:     d3d11.USAGE_DEFAULT,
				BindFlags: d3d11.BIND_DEPTH_STENCIL,
			}
			depthTexture, err := dev.CreateTexture2D(&depthDesc, nil)
			if err != nil {
				rt.destroyViews()
				return renderTarget{}, err
			}
			dsvDesc := d3d11.DEPTH_STENCIL_VIEW_DESC_TEX2D{
				Format:        d3d11.DXGI_FORMAT_D32_FLOAT_S8X24_UINT,
				ViewDimension: d3d11.DSV_DIMENSION_TEXTURE2D,
			}
			if multisampled {
				dsvDesc.ViewDimension = d3d11.DSV_DIMENSION_TEXTURE2DMS
			}
			dsv, err := dev.CreateDepthStencilView(depthTexture.Resource(), &dsvDesc)
			// The view holds its own reference to the depth texture.
			depthTexture.Release()
			if err != nil {
				rt.destroyViews()
				return renderTarget{}, err
			}
			rt.depthStencilView = dsv
			rt.ownsDepthStencil = true
		}
	}

	return rt, nil
}

func (rt *renderTarget) destroyViews() {
	rt.shaderResource.Release()
	rt.renderTargetView.Release()
	rt.texture.Release()
	rt.shaderResource = nil
	rt.renderTargetView = nil
	rt.texture = nil
}

// destroyRenderTarget releases all views and surfaces. Shared depth-stencil
// views are released too; the underlying buffer stays alive while other
// layers still reference it. Idempotent on a zero target.
func destroyRenderTarget(rt *renderTarget) {
	rt.destroyViews()
	rt.depthStencilView.Release()
	rt.depthStencilView = nil
	rt.ownsDepthStencil = false
	rt.width = 0
	rt.height = 0
}

// normalizedRect converts a scissor rectangle in top-left-origin pixels to
// the [0,1] texture coordinate space of a postprocess target.
func normalizedRect(r gmath.Rect, width, height int) (min, max gmath.Vec2) {
	min = gmath.Vec2{X: float32(r.X0) / float32(width), Y: float32(r.Y0) / float32(height)}
	max = gmath.Vec2{X: float32(r.X1) / float32(width), Y: float32(r.Y1) / float32(height)}
	return min, max
}
