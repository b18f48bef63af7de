// Package d3d11 is a minimal hand-rolled binding to the Direct3D 11 API,
// covering the subset of device, context and DXGI methods the renderer
// uses. COM objects are raw vtable pointers; ownership follows COM
// reference counting via IUnknownAddRef and IUnknownRelease.
package d3d11

import (
	"fmt"
	"math"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type DXGI_SWAP_CHAIN_DESC struct {
	BufferDesc   DXGI_MODE_DESC
	SampleDesc   DXGI_SAMPLE_DESC
	BufferUsage  uint32
	BufferCount  uint32
	OutputWindow windows.Handle
	Windowed     uint32
	SwapEffect   uint32
	Flags        uint32
}

type DXGI_SAMPLE_DESC struct {
	Count   uint32
	Quality uint32
}

type DXGI_MODE_DESC struct {
	Width            uint32
	Height           uint32
	RefreshRate      DXGI_RATIONAL
	Format           uint32
	ScanlineOrdering uint32
	Scaling          uint32
}

type DXGI_RATIONAL struct {
	Numerator   uint32
	Denominator uint32
}

type TEXTURE2D_DESC struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleDesc     DXGI_SAMPLE_DESC
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type SAMPLER_DESC struct {
	Filter         uint32
	AddressU       uint32
	AddressV       uint32
	AddressW       uint32
	MipLODBias     float32
	MaxAnisotropy  uint32
	ComparisonFunc uint32
	BorderColor    [4]float32
	MinLOD         float32
	MaxLOD         float32
}

type SHADER_RESOURCE_VIEW_DESC struct {
	Format        uint32
	ViewDimension uint32
}

type SHADER_RESOURCE_VIEW_DESC_TEX2D struct {
	SHADER_RESOURCE_VIEW_DESC
	Texture2D TEX2D_SRV
}

type TEX2D_SRV struct {
	MostDetailedMip uint32
	MipLevels       uint32
}

type RENDER_TARGET_VIEW_DESC_TEX2D struct {
	Format        uint32
	ViewDimension uint32
	Texture2D     TEX2D_RTV
}

type TEX2D_RTV struct {
	MipSlice uint32
}

type DEPTH_STENCIL_VIEW_DESC_TEX2D struct {
	Format        uint32
	ViewDimension uint32
	Flags         uint32
	Texture2D     TEX2D_DSV
}

type TEX2D_DSV struct {
	MipSlice uint32
}

type INPUT_ELEMENT_DESC struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               uint32
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       uint32
	InstanceDataStepRate uint32
}

type IDXGISwapChain struct {
	Vtbl *struct {
		_IUnknownVTbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
		GetDevice               uintptr
		Present                 uintptr
		GetBuffer               uintptr
		SetFullscreenState      uintptr
		GetFullscreenState      uintptr
		GetDesc                 uintptr
		ResizeBuffers           uintptr
		ResizeTarget            uintptr
		GetContainingOutput     uintptr
		GetFrameStatistics      uintptr
		GetLastPresentCount     uintptr
	}
}

type Debug struct {
	Vtbl *struct {
		_IUnknownVTbl
		SetFeatureMask             uintptr
		GetFeatureMask             uintptr
		SetPresentPerRenderOpDelay uintptr
		GetPresentPerRenderOpDelay uintptr
		SetSwapChain               uintptr
		GetSwapChain               uintptr
		ValidateContext            uintptr
		ReportLiveDeviceObjects    uintptr
		ValidateContextForDispatch uintptr
	}
}

type Device struct {
	Vtbl *struct {
		_IUnknownVTbl
		CreateBuffer                         uintptr
		CreateTexture1D                      uintptr
		CreateTexture2D                      uintptr
		CreateTexture3D                      uintptr
		CreateShaderResourceView             uintptr
		CreateUnorderedAccessView            uintptr
		CreateRenderTargetView               uintptr
		CreateDepthStencilView               uintptr
		CreateInputLayout                    uintptr
		CreateVertexShader                   uintptr
		CreateGeometryShader                 uintptr
		CreateGeometryShaderWithStreamOutput uintptr
		CreatePixelShader                    uintptr
		CreateHullShader                     uintptr
		CreateDomainShader                   uintptr
		CreateComputeShader                  uintptr
		CreateClassLinkage                   uintptr
		CreateBlendState                     uintptr
		CreateDepthStencilState              uintptr
		CreateRasterizerState                uintptr
		CreateSamplerState                   uintptr
		CreateQuery                          uintptr
		CreatePredicate                      uintptr
		CreateCounter                        uintptr
		CreateDeferredContext                uintptr
		OpenSharedResource                   uintptr
		CheckFormatSupport                   uintptr
		CheckMultisampleQualityLevels        uintptr
		CheckCounterInfo                     uintptr
		CheckCounter                         uintptr
		CheckFeatureSupport                  uintptr
		GetPrivateData                       uintptr
		SetPrivateData                       uintptr
		SetPrivateDataInterface              uintptr
		GetFeatureLevel                      uintptr
		GetCreationFlags                     uintptr
		GetDeviceRemovedReason               uintptr
		GetImmediateContext                  uintptr
		SetExceptionMode                     uintptr
		GetExceptionMode                     uintptr
	}
}

type DeviceContext struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetDevice                                 uintptr
		GetPrivateData                            uintptr
		SetPrivateData                            uintptr
		SetPrivateDataInterface                   uintptr
		VSSetConstantBuffers                      uintptr
		PSSetShaderResources                      uintptr
		PSSetShader                               uintptr
		PSSetSamplers                             uintptr
		VSSetShader                               uintptr
		DrawIndexed                               uintptr
		Draw                                      uintptr
		Map                                       uintptr
		Unmap                                     uintptr
		PSSetConstantBuffers                      uintptr
		IASetInputLayout                          uintptr
		IASetVertexBuffers                        uintptr
		IASetIndexBuffer                          uintptr
		DrawIndexedInstanced                      uintptr
		DrawInstanced                             uintptr
		GSSetConstantBuffers                      uintptr
		GSSetShader                               uintptr
		IASetPrimitiveTopology                    uintptr
		VSSetShaderResources                      uintptr
		VSSetSamplers                             uintptr
		Begin                                     uintptr
		End                                       uintptr
		GetData                                   uintptr
		SetPredication                            uintptr
		GSSetShaderResources                      uintptr
		GSSetSamplers                             uintptr
		OMSetRenderTargets                        uintptr
		OMSetRenderTargetsAndUnorderedAccessViews uintptr
		OMSetBlendState                           uintptr
		OMSetDepthStencilState                    uintptr
		SOSetTargets                              uintptr
		DrawAuto                                  uintptr
		DrawIndexedInstancedIndirect              uintptr
		DrawInstancedIndirect                     uintptr
		Dispatch                                  uintptr
		DispatchIndirect                          uintptr
		RSSetState                                uintptr
		RSSetViewports                            uintptr
		RSSetScissorRects                         uintptr
		CopySubresourceRegion                     uintptr
		CopyResource                              uintptr
		UpdateSubresource                         uintptr
		CopyStructureCount                        uintptr
		ClearRenderTargetView                     uintptr
		ClearUnorderedAccessViewUint              uintptr
		ClearUnorderedAccessViewFloat             uintptr
		ClearDepthStencilView                     uintptr
		GenerateMips                              uintptr
		SetResourceMinLOD                         uintptr
		GetResourceMinLOD                         uintptr
		ResolveSubresource                        uintptr
		ExecuteCommandList                        uintptr
		HSSetShaderResources                      uintptr
		HSSetShader                               uintptr
		HSSetSamplers                             uintptr
		HSSetConstantBuffers                      uintptr
		DSSetShaderResources                      uintptr
		DSSetShader                               uintptr
		DSSetSamplers                             uintptr
		DSSetConstantBuffers                      uintptr
		CSSetShaderResources                      uintptr
		CSSetUnorderedAccessViews                 uintptr
		CSSetShader                               uintptr
		CSSetSamplers                             uintptr
		CSSetConstantBuffers                      uintptr
		VSGetConstantBuffers                      uintptr
		PSGetShaderResources                      uintptr
		PSGetShader                               uintptr
		PSGetSamplers                             uintptr
		VSGetShader                               uintptr
		PSGetConstantBuffers                      uintptr
		IAGetInputLayout                          uintptr
		IAGetVertexBuffers                        uintptr
		IAGetIndexBuffer                          uintptr
		GSGetConstantBuffers                      uintptr
		GSGetShader                               uintptr
		IAGetPrimitiveTopology                    uintptr
		VSGetShaderResources                      uintptr
		VSGetSamplers                             uintptr
		GetPredication                            uintptr
		GSGetShaderResources                      uintptr
		GSGetSamplers                             uintptr
		OMGetRenderTargets                        uintptr
		OMGetRenderTargetsAndUnorderedAccessViews uintptr
		OMGetBlendState                           uintptr
		OMGetDepthStencilState                    uintptr
		SOGetTargets                              uintptr
		RSGetState                                uintptr
		RSGetViewports                            uintptr
		RSGetScissorRects                         uintptr
		HSGetShaderResources                      uintptr
		HSGetShader                               uintptr
		HSGetSamplers                             uintptr
		HSGetConstantBuffers                      uintptr
		DSGetShaderResources                      uintptr
		DSGetShader                               uintptr
		DSGetSamplers                             uintptr
		DSGetConstantBuffers                      uintptr
		CSGetShaderResources                      uintptr
		CSGetUnorderedAccessViews                 uintptr
		CSGetShader                               uintptr
		CSGetSamplers                             uintptr
		CSGetConstantBuffers                      uintptr
		ClearState                                uintptr
		Flush                                     uintptr
		GetType                                   uintptr
		GetContextFlags                           uintptr
		FinishCommandList                         uintptr
	}
}

type RenderTargetView struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type Resource struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type Texture2D struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type Buffer struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type SamplerState struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type PixelShader struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type VertexShader struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type GeometryShader struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type ClassInstance struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type ShaderResourceView struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type DepthStencilView struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type BlendState struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type DepthStencilState struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type RasterizerState struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type InputLayout struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetBufferPointer uintptr
		GetBufferSize    uintptr
	}
}

type DEPTH_STENCIL_DESC struct {
	DepthEnable      uint32
	DepthWriteMask   uint32
	DepthFunc        uint32
	StencilEnable    uint32
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        DEPTH_STENCILOP_DESC
	BackFace         DEPTH_STENCILOP_DESC
}

type DEPTH_STENCILOP_DESC struct {
	StencilFailOp      uint32
	StencilDepthFailOp uint32
	StencilPassOp      uint32
	StencilFunc        uint32
}

type BLEND_DESC struct {
	AlphaToCoverageEnable  uint32
	IndependentBlendEnable uint32
	RenderTarget           [8]RENDER_TARGET_BLEND_DESC
}

type RENDER_TARGET_BLEND_DESC struct {
	BlendEnable           uint32
	SrcBlend              uint32
	DestBlend             uint32
	BlendOp               uint32
	SrcBlendAlpha         uint32
	DestBlendAlpha        uint32
	BlendOpAlpha          uint32
	RenderTargetWriteMask uint8
}

type IDXGIObject struct {
	Vtbl *struct {
		_IUnknownVTbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
	}
}

type IDXGIAdapter struct {
	Vtbl *struct {
		_IUnknownVTbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
		EnumOutputs             uintptr
		GetDesc                 uintptr
		CheckInterfaceSupport   uintptr
		GetDesc1                uintptr
	}
}

type IDXGIFactory struct {
	Vtbl *struct {
		_IUnknownVTbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
		EnumAdapters            uintptr
		MakeWindowAssociation   uintptr
		GetWindowAssociation    uintptr
		CreateSwapChain         uintptr
		CreateSoftwareAdapter   uintptr
	}
}

type IDXGIDevice struct {
	Vtbl *struct {
		_IUnknownVTbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
		GetAdapter              uintptr
		CreateSurface           uintptr
		QueryResourceResidency  uintptr
		SetGPUThreadPriority    uintptr
		GetGPUThreadPriority    uintptr
	}
}

type IUnknown struct {
	Vtbl *struct {
		_IUnknownVTbl
	}
}

type _IUnknownVTbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type BUFFER_DESC struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

type GUID struct {
	Data1   uint32
	Data2   uint16
	Data3   uint16
	Data4_0 uint8
	Data4_1 uint8
	Data4_2 uint8
	Data4_3 uint8
	Data4_4 uint8
	Data4_5 uint8
	Data4_6 uint8
	Data4_7 uint8
}

type VIEWPORT struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type RECT struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type SUBRESOURCE_DATA struct {
	SysMem           *byte
	SysMemPitch      uint32
	SysMemSlicePitch uint32
}

type BOX struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}

type MAPPED_SUBRESOURCE struct {
	PData      uintptr
	RowPitch   uint32
	DepthPitch uint32
}

type ErrorCode struct {
	Name string
	Code uint32
}

type RASTERIZER_DESC struct {
	FillMode              uint32
	CullMode              uint32
	FrontCounterClockwise uint32
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       uint32
	ScissorEnable         uint32
	MultisampleEnable     uint32
	AntialiasedLineEnable uint32
}

var (
	IID_Texture2D   = GUID{0x6f15aaf2, 0xd208, 0x4e89, 0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}
	IID_IDXGIDebug  = GUID{0x119E7452, 0xDE9E, 0x40fe, 0x88, 0x06, 0x88, 0xF9, 0x0C, 0x12, 0xB4, 0x41}
	IID_ID3D11Debug = GUID{0x79cf2233, 0x7536, 0x4948, 0x9d, 0x36, 0x1e, 0x46, 0x92, 0xdc, 0x57, 0x60}

	DXGI_DEBUG_ALL = GUID{0xe48ae283, 0xda80, 0x490b, 0x87, 0xe6, 0x43, 0xe9, 0xa9, 0xcf, 0xda, 0x8}
)

var (
	d3d11 = windows.NewLazySystemDLL("d3d11.dll")

	_D3D11CreateDevice = d3d11.NewProc("D3D11CreateDevice")

	dxgi = windows.NewLazySystemDLL("dxgi.dll")

	_DXGIGetDebugInterface1 = dxgi.NewProc("DXGIGetDebugInterface1")
)

const (
	SDK_VERSION          = 7
	DRIVER_TYPE_HARDWARE = 1

	DXGI_FORMAT_UNKNOWN              = 0
	DXGI_FORMAT_R32G32_FLOAT         = 16
	DXGI_FORMAT_D32_FLOAT_S8X24_UINT = 20
	DXGI_FORMAT_R8G8B8A8_UNORM       = 28
	DXGI_FORMAT_R32_UINT             = 42
	DXGI_FORMAT_D24_UNORM_S8_UINT    = 45

	DXGI_DEBUG_RLO_SUMMARY         = 0x1
	DXGI_DEBUG_RLO_DETAIL          = 0x2
	DXGI_DEBUG_RLO_IGNORE_INTERNAL = 0x4

	DXGI_USAGE_RENDER_TARGET_OUTPUT = 1 << (1 + 4)

	DXGI_SWAP_EFFECT_DISCARD = 0

	FEATURE_LEVEL_11_0 = 0xb000

	USAGE_DEFAULT   = 0
	USAGE_IMMUTABLE = 1
	USAGE_DYNAMIC   = 2
	USAGE_STAGING   = 3

	CPU_ACCESS_WRITE = 0x10000
	CPU_ACCESS_READ  = 0x20000

	MAP_READ          = 1
	MAP_WRITE_DISCARD = 4

	BIND_VERTEX_BUFFER   = 0x1
	BIND_INDEX_BUFFER    = 0x2
	BIND_CONSTANT_BUFFER = 0x4
	BIND_SHADER_RESOURCE = 0x8
	BIND_RENDER_TARGET   = 0x20
	BIND_DEPTH_STENCIL   = 0x40

	RESOURCE_MISC_GENERATE_MIPS = 0x1

	PRIMITIVE_TOPOLOGY_TRIANGLELIST = 4

	FILTER_MIN_MAG_MIP_LINEAR = 0x15

	TEXTURE_ADDRESS_WRAP   = 1
	TEXTURE_ADDRESS_MIRROR = 2
	TEXTURE_ADDRESS_CLAMP  = 3

	SRV_DIMENSION_TEXTURE2D   = 4
	SRV_DIMENSION_TEXTURE2DMS = 6

	RTV_DIMENSION_TEXTURE2D   = 4
	RTV_DIMENSION_TEXTURE2DMS = 6

	DSV_DIMENSION_TEXTURE2D   = 3
	DSV_DIMENSION_TEXTURE2DMS = 5

	CREATE_DEVICE_DEBUG = 0x2

	FILL_SOLID = 3

	CULL_NONE = 1

	CLEAR_DEPTH   = 0x1
	CLEAR_STENCIL = 0x2

	DEPTH_WRITE_MASK_ZERO = 0
	DEPTH_WRITE_MASK_ALL  = 1

	COMPARISON_NEVER         = 1
	COMPARISON_LESS          = 2
	COMPARISON_EQUAL         = 3
	COMPARISON_GREATER       = 5
	COMPARISON_GREATER_EQUAL = 7
	COMPARISON_ALWAYS        = 8

	STENCIL_OP_KEEP     = 1
	STENCIL_OP_ZERO     = 2
	STENCIL_OP_REPLACE  = 3
	STENCIL_OP_INCR_SAT = 4
	STENCIL_OP_DECR_SAT = 5
	STENCIL_OP_INVERT   = 6
	STENCIL_OP_INCR     = 7
	STENCIL_OP_DECR     = 8

	BLEND_OP_ADD = 1

	BLEND_ZERO             = 1
	BLEND_ONE              = 2
	BLEND_SRC_ALPHA        = 5
	BLEND_INV_SRC_ALPHA    = 6
	BLEND_DEST_ALPHA       = 7
	BLEND_DEST_COLOR       = 9
	BLEND_BLEND_FACTOR     = 14
	BLEND_INV_BLEND_FACTOR = 15

	COLOR_WRITE_ENABLE_ALL = 1 | 2 | 4 | 8

	// Array capacities for the RSGet/RSSet viewport and scissor calls.
	VIEWPORT_AND_SCISSORRECT_OBJECT_COUNT = 16

	DXGI_STATUS_OCCLUDED      = 0x087A0001
	DXGI_ERROR_DEVICE_RESET   = 0x887A0007
	DXGI_ERROR_DEVICE_REMOVED = 0x887A0005

	RLDO_SUMMARY         = 1
	RLDO_DETAIL          = 2
	RLDO_IGNORE_INTERNAL = 4
)

func CreateDevice(driverType uint32, flags uint32) (*Device, *DeviceContext, uint32, error) {
	var (
		dev     *Device
		ctx     *DeviceContext
		featLvl uint32
	)
	r, _, _ := _D3D11CreateDevice.Call(
		0,                                 // pAdapter
		uintptr(driverType),               // driverType
		0,                                 // Software
		uintptr(flags),                    // Flags
		0,                                 // pFeatureLevels
		0,                                 // FeatureLevels
		SDK_VERSION,                       // SDKVersion
		uintptr(unsafe.Pointer(&dev)),     // ppDevice
		uintptr(unsafe.Pointer(&featLvl)), // pFeatureLevel
		uintptr(unsafe.Pointer(&ctx)),     // ppImmediateContext
	)
	if r != 0 {
		return nil, nil, 0, ErrorCode{Name: "D3D11CreateDevice", Code: uint32(r)}
	}
	return dev, ctx, featLvl, nil
}

func DXGIGetDebugInterface1() (*IDXGIDebug, error) {
	var dbg *IDXGIDebug
	r, _, _ := _DXGIGetDebugInterface1.Call(
		0, // Flags
		uintptr(unsafe.Pointer(&IID_IDXGIDebug)),
		uintptr(unsafe.Pointer(&dbg)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DXGIGetDebugInterface1", Code: uint32(r)}
	}
	return dbg, nil
}

type IDXGIDebug struct {
	Vtbl *struct {
		_IUnknownVTbl
		ReportLiveObjects uintptr
	}
}

func ReportLiveObjects() error {
	dxgi, err := DXGIGetDebugInterface1()
	if err != nil {
		return err
	}
	defer IUnknownRelease(unsafe.Pointer(dxgi), dxgi.Vtbl.Release)
	dxgi.ReportLiveObjects(&DXGI_DEBUG_ALL, DXGI_DEBUG_RLO_DETAIL|DXGI_DEBUG_RLO_IGNORE_INTERNAL)
	return nil
}

func (d *IDXGIDebug) ReportLiveObjects(guid *GUID, flags uint32) {
	syscall.Syscall6(
		d.Vtbl.ReportLiveObjects,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(guid)),
		uintptr(flags),
		0,
		0,
		0,
	)
}

func (d *Device) CreateBuffer(desc *BUFFER_DESC, data []byte) (*Buffer, error) {
	var dataDesc *SUBRESOURCE_DATA
	if len(data) > 0 {
		dataDesc = &SUBRESOURCE_DATA{
			SysMem: &data[0],
		}
	}
	var buf *Buffer
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateBuffer,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(dataDesc)),
		uintptr(unsafe.Pointer(&buf)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateBuffer", Code: uint32(r)}
	}
	return buf, nil
}

func (d *Device) CreateTexture2D(desc *TEXTURE2D_DESC, data *SUBRESOURCE_DATA) (*Texture2D, error) {
	var tex *Texture2D
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateTexture2D,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(data)),
		uintptr(unsafe.Pointer(&tex)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateTexture2D", Code: uint32(r)}
	}
	return tex, nil
}

// CreateRenderTargetView with a nil desc inherits format and dimension from
// the resource, which covers both single and multisampled textures.
func (d *Device) CreateRenderTargetView(res *Resource, desc *RENDER_TARGET_VIEW_DESC_TEX2D) (*RenderTargetView, error) {
	var target *RenderTargetView
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateRenderTargetView,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(res)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&target)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateRenderTargetView", Code: uint32(r)}
	}
	return target, nil
}

func (d *Device) CreateDepthStencilView(res *Resource, desc *DEPTH_STENCIL_VIEW_DESC_TEX2D) (*DepthStencilView, error) {
	var view *DepthStencilView
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateDepthStencilView,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(res)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&view)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateDepthStencilView", Code: uint32(r)}
	}
	return view, nil
}

func (d *Device) CreateShaderResourceView(res *Resource, desc *SHADER_RESOURCE_VIEW_DESC_TEX2D) (*ShaderResourceView, error) {
	var resView *ShaderResourceView
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateShaderResourceView,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(res)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&resView)),
		0, 0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateShaderResourceView", Code: uint32(r)}
	}
	return resView, nil
}

func (d *Device) CreatePixelShader(bytecode []byte) (*PixelShader, error) {
	var shader *PixelShader
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreatePixelShader,
		5,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0, // pClassLinkage
		uintptr(unsafe.Pointer(&shader)),
		0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreatePixelShader", Code: uint32(r)}
	}
	return shader, nil
}

func (d *Device) CreateVertexShader(bytecode []byte) (*VertexShader, error) {
	var shader *VertexShader
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateVertexShader,
		5,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0, // pClassLinkage
		uintptr(unsafe.Pointer(&shader)),
		0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateVertexShader", Code: uint32(r)}
	}
	return shader, nil
}

func (d *Device) CreateRasterizerState(desc *RASTERIZER_DESC) (*RasterizerState, error) {
	var state *RasterizerState
	r, _, _ := syscall.Syscall(
		d.Vtbl.CreateRasterizerState,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&state)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateRasterizerState", Code: uint32(r)}
	}
	return state, nil
}

func (d *Device) CreateInputLayout(descs []INPUT_ELEMENT_DESC, bytecode []byte) (*InputLayout, error) {
	var pdesc *INPUT_ELEMENT_DESC
	if len(descs) > 0 {
		pdesc = &descs[0]
	}
	var layout *InputLayout
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CreateInputLayout,
		6,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(pdesc)),
		uintptr(len(descs)),
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		uintptr(unsafe.Pointer(&layout)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateInputLayout", Code: uint32(r)}
	}
	return layout, nil
}

func (d *Device) CreateSamplerState(desc *SAMPLER_DESC) (*SamplerState, error) {
	var sampler *SamplerState
	r, _, _ := syscall.Syscall(
		d.Vtbl.CreateSamplerState,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&sampler)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateSamplerState", Code: uint32(r)}
	}
	return sampler, nil
}

func (d *Device) CreateBlendState(desc *BLEND_DESC) (*BlendState, error) {
	var state *BlendState
	r, _, _ := syscall.Syscall(
		d.Vtbl.CreateBlendState,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&state)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateBlendState", Code: uint32(r)}
	}
	return state, nil
}

func (d *Device) CreateDepthStencilState(desc *DEPTH_STENCIL_DESC) (*DepthStencilState, error) {
	var state *DepthStencilState
	r, _, _ := syscall.Syscall(
		d.Vtbl.CreateDepthStencilState,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(&state)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "DeviceCreateDepthStencilState", Code: uint32(r)}
	}
	return state, nil
}

func (d *Device) CheckMultisampleQualityLevels(format uint32, sampleCount uint32) (uint32, error) {
	var levels uint32
	r, _, _ := syscall.Syscall6(
		d.Vtbl.CheckMultisampleQualityLevels,
		4,
		uintptr(unsafe.Pointer(d)),
		uintptr(format),
		uintptr(sampleCount),
		uintptr(unsafe.Pointer(&levels)),
		0, 0,
	)
	if r != 0 {
		return 0, ErrorCode{Name: "DeviceCheckMultisampleQualityLevels", Code: uint32(r)}
	}
	return levels, nil
}

func (d *Device) GetFeatureLevel() int {
	lvl, _, _ := syscall.Syscall(
		d.Vtbl.GetFeatureLevel,
		1,
		uintptr(unsafe.Pointer(d)),
		0, 0,
	)
	return int(lvl)
}

func (d *Device) GetImmediateContext() *DeviceContext {
	var ctx *DeviceContext
	syscall.Syscall(
		d.Vtbl.GetImmediateContext,
		2,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&ctx)),
		0,
	)
	return ctx
}

func (d *Device) ReportLiveDeviceObjects() error {
	intf, err := IUnknownQueryInterface(unsafe.Pointer(d), d.Vtbl.QueryInterface, &IID_ID3D11Debug)
	if err != nil {
		return fmt.Errorf("ReportLiveObjects: failed to query ID3D11Debug interface: %v", err)
	}
	defer IUnknownRelease(unsafe.Pointer(intf), intf.Vtbl.Release)
	dbg := (*Debug)(unsafe.Pointer(intf))
	dbg.ReportLiveDeviceObjects(RLDO_DETAIL | RLDO_IGNORE_INTERNAL)
	return nil
}

func (d *Debug) ReportLiveDeviceObjects(flags uint32) {
	syscall.Syscall(
		d.Vtbl.ReportLiveDeviceObjects,
		2,
		uintptr(unsafe.Pointer(d)),
		uintptr(flags),
		0,
	)
}

func (s *IDXGISwapChain) ResizeBuffers(buffers, width, height, newFormat, flags uint32) error {
	r, _, _ := syscall.Syscall6(
		s.Vtbl.ResizeBuffers,
		6,
		uintptr(unsafe.Pointer(s)),
		uintptr(buffers),
		uintptr(width),
		uintptr(height),
		uintptr(newFormat),
		uintptr(flags),
	)
	if r != 0 {
		return ErrorCode{Name: "IDXGISwapChainResizeBuffers", Code: uint32(r)}
	}
	return nil
}

func (s *IDXGISwapChain) Present(SyncInterval int, Flags uint32) error {
	r, _, _ := syscall.Syscall(
		s.Vtbl.Present,
		3,
		uintptr(unsafe.Pointer(s)),
		uintptr(SyncInterval),
		uintptr(Flags),
	)
	if r != 0 {
		return ErrorCode{Name: "IDXGISwapChainPresent", Code: uint32(r)}
	}
	return nil
}

func (s *IDXGISwapChain) GetBuffer(index int, riid *GUID) (*IUnknown, error) {
	var buf *IUnknown
	r, _, _ := syscall.Syscall6(
		s.Vtbl.GetBuffer,
		4,
		uintptr(unsafe.Pointer(s)),
		uintptr(index),
		uintptr(unsafe.Pointer(riid)),
		uintptr(unsafe.Pointer(&buf)),
		0,
		0,
	)
	if r != 0 {
		return nil, ErrorCode{Name: "IDXGISwapChainGetBuffer", Code: uint32(r)}
	}
	return buf, nil
}

func (c *DeviceContext) Map(resource *Resource, subResource, mapType, mapFlags uint32) (MAPPED_SUBRESOURCE, error) {
	var resMap MAPPED_SUBRESOURCE
	r, _, _ := syscall.Syscall6(
		c.Vtbl.Map,
		6,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(resource)),
		uintptr(subResource),
		uintptr(mapType),
		uintptr(mapFlags),
		uintptr(unsafe.Pointer(&resMap)),
	)
	if r != 0 {
		return resMap, ErrorCode{Name: "DeviceContextMap", Code: uint32(r)}
	}
	return resMap, nil
}

func (c *DeviceContext) Unmap(resource *Resource, subResource uint32) {
	syscall.Syscall(
		c.Vtbl.Unmap,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(resource)),
		uintptr(subResource),
	)
}

func (c *DeviceContext) CopySubresourceRegion(dst *Resource, dstSubresource, dstX, dstY, dstZ uint32, src *Resource, srcSubresource uint32, srcBox *BOX) {
	syscall.Syscall9(
		c.Vtbl.CopySubresourceRegion,
		9,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(dst)),
		uintptr(dstSubresource),
		uintptr(dstX),
		uintptr(dstY),
		uintptr(dstZ),
		uintptr(unsafe.Pointer(src)),
		uintptr(srcSubresource),
		uintptr(unsafe.Pointer(srcBox)),
	)
}

func (c *DeviceContext) UpdateSubresource(dst *Resource, dstSubresource uint32, dstBox *BOX, data []byte, rowPitch, depthPitch uint32) {
	syscall.Syscall9(
		c.Vtbl.UpdateSubresource,
		7,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(dst)),
		uintptr(dstSubresource),
		uintptr(unsafe.Pointer(dstBox)),
		uintptr(unsafe.Pointer(&data[0])),
		uintptr(rowPitch),
		uintptr(depthPitch),
		0, 0,
	)
}

func (c *DeviceContext) ResolveSubresource(dst *Resource, dstSubresource uint32, src *Resource, srcSubresource, format uint32) {
	syscall.Syscall6(
		c.Vtbl.ResolveSubresource,
		6,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(dst)),
		uintptr(dstSubresource),
		uintptr(unsafe.Pointer(src)),
		uintptr(srcSubresource),
		uintptr(format),
	)
}

func (c *DeviceContext) GenerateMips(view *ShaderResourceView) {
	syscall.Syscall(
		c.Vtbl.GenerateMips,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(view)),
		0,
	)
}

func (c *DeviceContext) ClearDepthStencilView(target *DepthStencilView, flags uint32, depth float32, stencil uint8) {
	syscall.Syscall6(
		c.Vtbl.ClearDepthStencilView,
		5,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(target)),
		uintptr(flags),
		uintptr(math.Float32bits(depth)),
		uintptr(stencil),
		0,
	)
}

func (c *DeviceContext) ClearRenderTargetView(target *RenderTargetView, color *[4]float32) {
	syscall.Syscall(
		c.Vtbl.ClearRenderTargetView,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(target)),
		uintptr(unsafe.Pointer(color)),
	)
}

func (c *DeviceContext) RSSetViewports(viewports []VIEWPORT) {
	var p *VIEWPORT
	if len(viewports) > 0 {
		p = &viewports[0]
	}
	syscall.Syscall(
		c.Vtbl.RSSetViewports,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(len(viewports)),
		uintptr(unsafe.Pointer(p)),
	)
}

func (c *DeviceContext) RSGetViewports(viewports []VIEWPORT) uint32 {
	num := uint32(len(viewports))
	var p *VIEWPORT
	if len(viewports) > 0 {
		p = &viewports[0]
	}
	syscall.Syscall(
		c.Vtbl.RSGetViewports,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&num)),
		uintptr(unsafe.Pointer(p)),
	)
	return num
}

func (c *DeviceContext) RSSetScissorRects(rects []RECT) {
	var p *RECT
	if len(rects) > 0 {
		p = &rects[0]
	}
	syscall.Syscall(
		c.Vtbl.RSSetScissorRects,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(len(rects)),
		uintptr(unsafe.Pointer(p)),
	)
}

func (c *DeviceContext) RSGetScissorRects(rects []RECT) uint32 {
	num := uint32(len(rects))
	var p *RECT
	if len(rects) > 0 {
		p = &rects[0]
	}
	syscall.Syscall(
		c.Vtbl.RSGetScissorRects,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&num)),
		uintptr(unsafe.Pointer(p)),
	)
	return num
}

func (c *DeviceContext) RSSetState(state *RasterizerState) {
	syscall.Syscall(
		c.Vtbl.RSSetState,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(state)),
		0,
	)
}

func (c *DeviceContext) RSGetState() *RasterizerState {
	var state *RasterizerState
	syscall.Syscall(
		c.Vtbl.RSGetState,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&state)),
		0,
	)
	return state
}

func (c *DeviceContext) VSSetShader(s *VertexShader, instances []*ClassInstance) {
	var p **ClassInstance
	if len(instances) > 0 {
		p = &instances[0]
	}
	syscall.Syscall6(
		c.Vtbl.VSSetShader,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(s)),
		uintptr(unsafe.Pointer(p)),
		uintptr(len(instances)),
		0, 0,
	)
}

// VSGetShader fills instances, which must have capacity for the maximum
// number of class instances, and returns the shader together with the
// number of instances written. Every returned object carries a reference.
func (c *DeviceContext) VSGetShader(instances []*ClassInstance) (*VertexShader, uint32) {
	var shader *VertexShader
	num := uint32(len(instances))
	var p **ClassInstance
	if len(instances) > 0 {
		p = &instances[0]
	}
	syscall.Syscall6(
		c.Vtbl.VSGetShader,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&shader)),
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&num)),
		0, 0,
	)
	return shader, num
}

func (c *DeviceContext) PSSetShader(s *PixelShader, instances []*ClassInstance) {
	var p **ClassInstance
	if len(instances) > 0 {
		p = &instances[0]
	}
	syscall.Syscall6(
		c.Vtbl.PSSetShader,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(s)),
		uintptr(unsafe.Pointer(p)),
		uintptr(len(instances)),
		0, 0,
	)
}

func (c *DeviceContext) PSGetShader(instances []*ClassInstance) (*PixelShader, uint32) {
	var shader *PixelShader
	num := uint32(len(instances))
	var p **ClassInstance
	if len(instances) > 0 {
		p = &instances[0]
	}
	syscall.Syscall6(
		c.Vtbl.PSGetShader,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&shader)),
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&num)),
		0, 0,
	)
	return shader, num
}

func (c *DeviceContext) GSSetShader(s *GeometryShader, instances []*ClassInstance) {
	var p **ClassInstance
	if len(instances) > 0 {
		p = &instances[0]
	}
	syscall.Syscall6(
		c.Vtbl.GSSetShader,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(s)),
		uintptr(unsafe.Pointer(p)),
		uintptr(len(instances)),
		0, 0,
	)
}

func (c *DeviceContext) GSGetShader(instances []*ClassInstance) (*GeometryShader, uint32) {
	var shader *GeometryShader
	num := uint32(len(instances))
	var p **ClassInstance
	if len(instances) > 0 {
		p = &instances[0]
	}
	syscall.Syscall6(
		c.Vtbl.GSGetShader,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&shader)),
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&num)),
		0, 0,
	)
	return shader, num
}

func (c *DeviceContext) VSSetConstantBuffers(startSlot uint32, b *Buffer) {
	syscall.Syscall6(
		c.Vtbl.VSSetConstantBuffers,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumBuffers
		uintptr(unsafe.Pointer(&b)),
		0, 0,
	)
}

func (c *DeviceContext) VSGetConstantBuffers(startSlot uint32) *Buffer {
	var b *Buffer
	syscall.Syscall6(
		c.Vtbl.VSGetConstantBuffers,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumBuffers
		uintptr(unsafe.Pointer(&b)),
		0, 0,
	)
	return b
}

func (c *DeviceContext) PSSetConstantBuffers(startSlot uint32, b *Buffer) {
	syscall.Syscall6(
		c.Vtbl.PSSetConstantBuffers,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumBuffers
		uintptr(unsafe.Pointer(&b)),
		0, 0,
	)
}

func (c *DeviceContext) PSGetConstantBuffers(startSlot uint32) *Buffer {
	var b *Buffer
	syscall.Syscall6(
		c.Vtbl.PSGetConstantBuffers,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumBuffers
		uintptr(unsafe.Pointer(&b)),
		0, 0,
	)
	return b
}

func (c *DeviceContext) PSSetShaderResources(startSlot uint32, s *ShaderResourceView) {
	syscall.Syscall6(
		c.Vtbl.PSSetShaderResources,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumViews
		uintptr(unsafe.Pointer(&s)),
		0, 0,
	)
}

func (c *DeviceContext) PSGetShaderResources(startSlot uint32) *ShaderResourceView {
	var s *ShaderResourceView
	syscall.Syscall6(
		c.Vtbl.PSGetShaderResources,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumViews
		uintptr(unsafe.Pointer(&s)),
		0, 0,
	)
	return s
}

func (c *DeviceContext) PSSetSamplers(startSlot uint32, s *SamplerState) {
	syscall.Syscall6(
		c.Vtbl.PSSetSamplers,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumSamplers
		uintptr(unsafe.Pointer(&s)),
		0, 0,
	)
}

func (c *DeviceContext) PSGetSamplers(startSlot uint32) *SamplerState {
	var s *SamplerState
	syscall.Syscall6(
		c.Vtbl.PSGetSamplers,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(startSlot),
		1, // NumSamplers
		uintptr(unsafe.Pointer(&s)),
		0, 0,
	)
	return s
}

func (c *DeviceContext) IASetInputLayout(layout *InputLayout) {
	syscall.Syscall(
		c.Vtbl.IASetInputLayout,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(layout)),
		0,
	)
}

func (c *DeviceContext) IAGetInputLayout() *InputLayout {
	var layout *InputLayout
	syscall.Syscall(
		c.Vtbl.IAGetInputLayout,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&layout)),
		0,
	)
	return layout
}

func (c *DeviceContext) IASetIndexBuffer(buf *Buffer, format, offset uint32) {
	syscall.Syscall6(
		c.Vtbl.IASetIndexBuffer,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(buf)),
		uintptr(format),
		uintptr(offset),
		0, 0,
	)
}

func (c *DeviceContext) IAGetIndexBuffer() (*Buffer, uint32, uint32) {
	var (
		buf            *Buffer
		format, offset uint32
	)
	syscall.Syscall6(
		c.Vtbl.IAGetIndexBuffer,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&buf)),
		uintptr(unsafe.Pointer(&format)),
		uintptr(unsafe.Pointer(&offset)),
		0, 0,
	)
	return buf, format, offset
}

func (c *DeviceContext) IASetVertexBuffers(buf *Buffer, stride, offset uint32) {
	syscall.Syscall6(
		c.Vtbl.IASetVertexBuffers,
		6,
		uintptr(unsafe.Pointer(c)),
		0, // StartSlot
		1, // NumBuffers,
		uintptr(unsafe.Pointer(&buf)),
		uintptr(unsafe.Pointer(&stride)),
		uintptr(unsafe.Pointer(&offset)),
	)
}

func (c *DeviceContext) IAGetVertexBuffers() (*Buffer, uint32, uint32) {
	var (
		buf            *Buffer
		stride, offset uint32
	)
	syscall.Syscall6(
		c.Vtbl.IAGetVertexBuffers,
		6,
		uintptr(unsafe.Pointer(c)),
		0, // StartSlot
		1, // NumBuffers,
		uintptr(unsafe.Pointer(&buf)),
		uintptr(unsafe.Pointer(&stride)),
		uintptr(unsafe.Pointer(&offset)),
	)
	return buf, stride, offset
}

func (c *DeviceContext) IASetPrimitiveTopology(mode uint32) {
	syscall.Syscall(
		c.Vtbl.IASetPrimitiveTopology,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(mode),
		0,
	)
}

func (c *DeviceContext) IAGetPrimitiveTopology() uint32 {
	var mode uint32
	syscall.Syscall(
		c.Vtbl.IAGetPrimitiveTopology,
		2,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&mode)),
		0,
	)
	return mode
}

func (c *DeviceContext) OMSetRenderTargets(target *RenderTargetView, depthStencil *DepthStencilView) {
	syscall.Syscall6(
		c.Vtbl.OMSetRenderTargets,
		4,
		uintptr(unsafe.Pointer(c)),
		1, // NumViews
		uintptr(unsafe.Pointer(&target)),
		uintptr(unsafe.Pointer(depthStencil)),
		0, 0,
	)
}

func (c *DeviceContext) OMGetRenderTargets() (*RenderTargetView, *DepthStencilView) {
	var (
		target           *RenderTargetView
		depthStencilView *DepthStencilView
	)
	syscall.Syscall6(
		c.Vtbl.OMGetRenderTargets,
		4,
		uintptr(unsafe.Pointer(c)),
		1, // NumViews
		uintptr(unsafe.Pointer(&target)),
		uintptr(unsafe.Pointer(&depthStencilView)),
		0, 0,
	)
	return target, depthStencilView
}

func (c *DeviceContext) OMSetBlendState(state *BlendState, factor *[4]float32, sampleMask uint32) {
	syscall.Syscall6(
		c.Vtbl.OMSetBlendState,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(state)),
		uintptr(unsafe.Pointer(factor)),
		uintptr(sampleMask),
		0, 0,
	)
}

func (c *DeviceContext) OMGetBlendState() (*BlendState, [4]float32, uint32) {
	var (
		state      *BlendState
		factor     [4]float32
		sampleMask uint32
	)
	syscall.Syscall6(
		c.Vtbl.OMGetBlendState,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&state)),
		uintptr(unsafe.Pointer(&factor)),
		uintptr(unsafe.Pointer(&sampleMask)),
		0, 0,
	)
	return state, factor, sampleMask
}

func (c *DeviceContext) OMSetDepthStencilState(state *DepthStencilState, stencilRef uint32) {
	syscall.Syscall(
		c.Vtbl.OMSetDepthStencilState,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(state)),
		uintptr(stencilRef),
	)
}

func (c *DeviceContext) OMGetDepthStencilState() (*DepthStencilState, uint32) {
	var (
		state      *DepthStencilState
		stencilRef uint32
	)
	syscall.Syscall(
		c.Vtbl.OMGetDepthStencilState,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&state)),
		uintptr(unsafe.Pointer(&stencilRef)),
	)
	return state, stencilRef
}

func (c *DeviceContext) Draw(count, start uint32) {
	syscall.Syscall(
		c.Vtbl.Draw,
		3,
		uintptr(unsafe.Pointer(c)),
		uintptr(count),
		uintptr(start),
	)
}

func (c *DeviceContext) DrawIndexed(count, start uint32, base int32) {
	syscall.Syscall6(
		c.Vtbl.DrawIndexed,
		4,
		uintptr(unsafe.Pointer(c)),
		uintptr(count),
		uintptr(start),
		uintptr(base),
		0, 0,
	)
}

func (d *IDXGIObject) GetParent(guid *GUID) (*IDXGIObject, error) {
	var parent *IDXGIObject
	r, _, _ := syscall.Syscall(
		d.Vtbl.GetParent,
		3,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(guid)),
		uintptr(unsafe.Pointer(&parent)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "IDXGIObjectGetParent", Code: uint32(r)}
	}
	return parent, nil
}

func IUnknownQueryInterface(obj unsafe.Pointer, queryInterfaceMethod uintptr, guid *GUID) (*IUnknown, error) {
	var ref *IUnknown
	r, _, _ := syscall.Syscall(
		queryInterfaceMethod,
		3,
		uintptr(obj),
		uintptr(unsafe.Pointer(guid)),
		uintptr(unsafe.Pointer(&ref)),
	)
	if r != 0 {
		return nil, ErrorCode{Name: "IUnknownQueryInterface", Code: uint32(r)}
	}
	return ref, nil
}

func IUnknownAddRef(obj unsafe.Pointer, addRefMethod uintptr) {
	syscall.Syscall(
		addRefMethod,
		1,
		uintptr(obj),
		0,
		0,
	)
}

func IUnknownRelease(obj unsafe.Pointer, releaseMethod uintptr) {
	syscall.Syscall(
		releaseMethod,
		1,
		uintptr(obj),
		0,
		0,
	)
}

func (e ErrorCode) Error() string {
	return fmt.Sprintf("%s: %#x", e.Name, e.Code)
}

// Typed Release/AddRef wrappers. Calling Release on a nil receiver is a
// no-op, which keeps teardown code free of nil checks.

func (x *Buffer) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *Texture2D) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *RenderTargetView) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *DepthStencilView) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *DepthStencilView) AddRef() {
	IUnknownAddRef(unsafe.Pointer(x), x.Vtbl.AddRef)
}

func (x *ShaderResourceView) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *SamplerState) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *PixelShader) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *VertexShader) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *GeometryShader) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *ClassInstance) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *BlendState) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *DepthStencilState) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *RasterizerState) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

func (x *InputLayout) Release() {
	if x != nil {
		IUnknownRelease(unsafe.Pointer(x), x.Vtbl.Release)
	}
}

// Resource upcasts for the context methods that take ID3D11Resource.

func (x *Texture2D) Resource() *Resource { return (*Resource)(unsafe.Pointer(x)) }
func (x *Buffer) Resource() *Resource    { return (*Resource)(unsafe.Pointer(x)) }
