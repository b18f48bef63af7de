package glint

import (
	"fmt"
	"structs"

	"github.com/glintui/glint/d3d11"
)

// The renderer draws everything with nine shader programs built from three
// vertex and nine pixel shaders, compiled at Init with d3dcompiler. All
// programs share one dynamic constant buffer at b0; each declares only the
// fields it reads, and the buffer is sized to cover the largest layout.

// shaderHeader is prepended to every HLSL source.
const shaderHeader = "#define MAX_NUM_STOPS 16\n"

// blurHeader additionally defines the blur kernel size.
const blurHeader = shaderHeader + "#define BLUR_SIZE 7\n#define BLUR_NUM_WEIGHTS 4\n"

// Vertex colors arrive with straight alpha and are premultiplied in the
// vertex stage, so every blend downstream works in premultiplied space.
const shaderVertMain = shaderHeader + `
struct VS_Input
{
    float2 inPosition : POSITION;
    float4 inColor : COLOR;
    float2 inTexCoord : TEXCOORD;
};

struct PS_Input
{
    float4 outPosition : SV_Position;
    float4 outColor : COLOR;
    float2 outUV : TEXCOORD;
};

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_transform;
    float2 m_translate;
};

PS_Input VSMain(const VS_Input IN)
{
    PS_Input result = (PS_Input)0;

    float2 translatedPos = IN.inPosition + m_translate;
    float4 resPos = mul(m_transform, float4(translatedPos.x, translatedPos.y, 0.0, 1.0));

    result.outPosition = resPos;
    result.outColor = IN.inColor;
    result.outColor.rgb = result.outColor.rgb * result.outColor.a;
    result.outUV = IN.inTexCoord;

    return result;
};
`

const shaderFragColor = shaderHeader + `
struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    return IN.inputColor;
};
`

const shaderFragTexture = shaderHeader + `
struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

Texture2D g_InputTexture : register(t0);
SamplerState g_SamplerLinear : register(s0);

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    return IN.inputColor * g_InputTexture.Sample(g_SamplerLinear, IN.inputUV);
};
`

// The gradient cbuffer packs stop positions four to a float4, as each array
// element of a cbuffer starts a new 16-byte row.
const shaderFragGradient = shaderHeader + `
#define MAX_NUM_STOPS_PACKED (uint)(MAX_NUM_STOPS / 4)
#define LINEAR 0
#define RADIAL 1
#define CONIC 2
#define REPEATING_LINEAR 3
#define REPEATING_RADIAL 4
#define REPEATING_CONIC 5
#define PI 3.14159265

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_transform;
    float2 m_translate;
    int m_func;
    int m_num_stops;
    float2 m_p;   // linear: starting point,         radial: center,                        conic: center
    float2 m_v;   // linear: vector to ending point, radial: 2d curvature (inverse radius), conic: angled unit vector
    float4 m_stop_colors[MAX_NUM_STOPS];
    float4 m_stop_positions[MAX_NUM_STOPS_PACKED]; // normalized, 0 -> starting point, 1 -> ending point
};

#define GET_STOP_POS(i) (m_stop_positions[i >> 2][i & 3])

struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

#define glsl_mod(x,y) (((x)-(y)*floor((x)/(y))))

float4 lerp_stop_colors(float t) {
    float4 color = m_stop_colors[0];

    for (int i = 1; i < m_num_stops; i++)
        color = lerp(color, m_stop_colors[i], smoothstep(GET_STOP_POS(i-1), GET_STOP_POS(i), t));

    return color;
};

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    float t = 0.0;

    if (m_func == LINEAR || m_func == REPEATING_LINEAR) {
        float dist_square = dot(m_v, m_v);
        float2 V = IN.inputPos.xy - m_p;
        t = dot(m_v, V) / dist_square;
    }
    else if (m_func == RADIAL || m_func == REPEATING_RADIAL) {
        float2 V = IN.inputPos.xy - m_p;
        t = length(m_v * V);
    }
    else if (m_func == CONIC || m_func == REPEATING_CONIC) {
        float2x2 R = float2x2(m_v.x, -m_v.y, m_v.y, m_v.x);
        float2 V = mul(R, (IN.inputPos.xy - m_p));
        t = 0.5 + atan2(V.y, -V.x) / (2.0 * PI);
    }

    if (m_func == REPEATING_LINEAR || m_func == REPEATING_RADIAL || m_func == REPEATING_CONIC) {
        float t0 = GET_STOP_POS(0);
        float t1 = GET_STOP_POS(m_num_stops - 1);
        t = t0 + glsl_mod(t - t0, t1 - t0);
    }

    return IN.inputColor * lerp_stop_colors(t);
};
`

// "Creation" by Danilo Guanabara, based on: https://www.shadertoy.com/view/XsXXDn
const shaderFragCreation = shaderHeader + `
struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_transform;
    float2 m_translate;
    float2 m_dimensions;
    float m_value;
};

#define glsl_mod(x,y) (((x)-(y)*floor((x)/(y))))

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    float t = m_value;
    float3 c;
    float l;
    for (int i = 0; i < 3; i++) {
        float2 p = IN.inputUV;
        float2 uv = p;
        p -= .5;
        p.x *= m_dimensions.x / m_dimensions.y;
        float z = t + ((float)i) * .07;
        l = length(p);
        uv += p / l * (sin(z) + 1.) * abs(sin(l * 9. - z - z));
        c[i] = .01 / length(glsl_mod(uv, 1.) - .5);
    }
    return float4(c / l, IN.inputColor.a);
};
`

// The passthrough vertex stage maps the unit quad directly to clip space
// and flips V, converting the bottom-left-origin render target into
// top-left-origin sampling.
const shaderVertPassthrough = shaderHeader + `
struct VS_Input
{
    float2 inPosition : POSITION;
    float4 inColor : COLOR;
    float2 inTexCoord : TEXCOORD;
};

struct PS_Input
{
    float4 outPosition : SV_Position;
    float4 outColor : COLOR;
    float2 outUV : TEXCOORD;
};

PS_Input VSMain(const VS_Input IN)
{
    PS_Input result = (PS_Input)0;

    result.outPosition = float4(IN.inPosition.xy, 0.0f, 1.0f);
    result.outUV = float2(IN.inTexCoord.x, 1.0f - IN.inTexCoord.y);

    return result;
};
`

const shaderFragPassthrough = shaderHeader + `
struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

Texture2D g_InputTexture : register(t0);
SamplerState g_SamplerLinear : register(s0);

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    return g_InputTexture.Sample(g_SamplerLinear, IN.inputUV);
};
`

const shaderFragColorMatrix = shaderHeader + `
Texture2D g_InputTexture : register(t0);
SamplerState g_SamplerLinear : register(s0);

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_color_matrix;
};

struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    // The general case uses a 4x5 color matrix for full rgba transformation,
    // plus a constant term in the last column. Only rgb transformations are
    // needed here, which can run directly in premultiplied space; the
    // constant term is then scaled by alpha instead of unity.
    float4 texColor = g_InputTexture.Sample(g_SamplerLinear, IN.inputUV);
    float3 transformedColor = mul(m_color_matrix, texColor).rgb;
    return float4(transformedColor, texColor.a);
};
`

const shaderFragBlendMask = shaderHeader + `
Texture2D g_InputTexture : register(t0);
SamplerState g_SamplerLinear : register(s0);
Texture2D g_MaskTexture : register(t1);

struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    float4 texColor = g_InputTexture.Sample(g_SamplerLinear, IN.inputUV);
    float maskAlpha = g_MaskTexture.Sample(g_SamplerLinear, IN.inputUV).a;
    return texColor * maskAlpha;
};
`

// The blur vertex stage precomputes the tap coordinates of the separable
// kernel, one per BLUR_SIZE, centered on the flipped quad UV.
const shaderVertBlur = blurHeader + `
struct VS_Input
{
    float2 inPosition : POSITION;
    float4 inColor : COLOR;
    float2 inTexCoord : TEXCOORD;
};

struct PS_Input
{
    float4 outPosition : SV_Position;
    float2 outUV[BLUR_SIZE] : TEXCOORD;
};

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_transform;
    float2 m_translate;
    float4 m_weights;
    float2 m_texelOffset;
    float2 m_texCoordMin;
    float2 m_texCoordMax;
};

PS_Input VSMain(const VS_Input IN)
{
    PS_Input result = (PS_Input)0;

    result.outPosition = float4(IN.inPosition.xy, 0.0f, 1.0f);
    float2 uv = float2(IN.inTexCoord.x, 1.0f - IN.inTexCoord.y);
    for (int i = 0; i < BLUR_SIZE; i++)
        result.outUV[i] = uv - float(i - BLUR_NUM_WEIGHTS + 1) * m_texelOffset;

    return result;
};
`

const shaderFragBlur = blurHeader + `
Texture2D g_InputTexture : register(t0);
SamplerState g_SamplerLinear : register(s0);

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_transform;
    float2 m_translate;
    float4 m_weights;
    float2 m_texelOffset;
    float2 m_texCoordMin;
    float2 m_texCoordMax;
};

struct PS_Input
{
    float4 inputPos : SV_Position;
    float2 inputUV[BLUR_SIZE] : TEXCOORD;
};

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    float4 color = float4(0.0, 0.0, 0.0, 0.0);
    for (int i = 0; i < BLUR_SIZE; i++)
    {
        float2 in_region = step(m_texCoordMin, IN.inputUV[i]) * step(IN.inputUV[i], m_texCoordMax);
        color += g_InputTexture.Sample(g_SamplerLinear, IN.inputUV[i]) * in_region.x * in_region.y * m_weights[abs(i - BLUR_NUM_WEIGHTS + 1)];
    }
    return color;
};
`

const shaderFragDropShadow = shaderHeader + `
Texture2D g_InputTexture : register(t0);
SamplerState g_SamplerLinear : register(s0);

cbuffer SharedConstantBuffer : register(b0)
{
    float4x4 m_transform;
    float2 m_translate;
    float2 m_texCoordMin;
    float2 m_texCoordMax;
    float4 m_color;
};

struct PS_Input
{
    float4 inputPos : SV_Position;
    float4 inputColor : COLOR;
    float2 inputUV : TEXCOORD;
};

float4 PSMain(const PS_Input IN) : SV_TARGET
{
    float2 in_region = step(m_texCoordMin, IN.inputUV) * step(IN.inputUV, m_texCoordMax);
    return g_InputTexture.Sample(g_SamplerLinear, IN.inputUV).a * in_region.x * in_region.y * m_color;
};
`

type programID uint8

const (
	programNone programID = iota
	programColor
	programTexture
	programGradient
	programCreation
	programPassthrough
	programColorMatrix
	programBlendMask
	programBlur
	programDropShadow
	numPrograms
)

type vertShaderID uint8

const (
	vertShaderMain vertShaderID = iota
	vertShaderPassthrough
	vertShaderBlur
	numVertShaders
)

type fragShaderID uint8

const (
	fragShaderColor fragShaderID = iota
	fragShaderTexture
	fragShaderGradient
	fragShaderCreation
	fragShaderPassthrough
	fragShaderColorMatrix
	fragShaderBlendMask
	fragShaderBlur
	fragShaderDropShadow
	numFragShaders
)

var vertShaderDefinitions = [numVertShaders]struct {
	name string
	src  string
}{
	vertShaderMain:        {"main", shaderVertMain},
	vertShaderPassthrough: {"passthrough", shaderVertPassthrough},
	vertShaderBlur:        {"blur", shaderVertBlur},
}

var fragShaderDefinitions = [numFragShaders]struct {
	name string
	src  string
}{
	fragShaderColor:       {"color", shaderFragColor},
	fragShaderTexture:     {"texture", shaderFragTexture},
	fragShaderGradient:    {"gradient", shaderFragGradient},
	fragShaderCreation:    {"creation", shaderFragCreation},
	fragShaderPassthrough: {"passthrough", shaderFragPassthrough},
	fragShaderColorMatrix: {"color_matrix", shaderFragColorMatrix},
	fragShaderBlendMask:   {"blend_mask", shaderFragBlendMask},
	fragShaderBlur:        {"blur", shaderFragBlur},
	fragShaderDropShadow:  {"drop_shadow", shaderFragDropShadow},
}

var programDefinitions = [numPrograms]struct {
	vert vertShaderID
	frag fragShaderID
}{
	programColor:       {vertShaderMain, fragShaderColor},
	programTexture:     {vertShaderMain, fragShaderTexture},
	programGradient:    {vertShaderMain, fragShaderGradient},
	programCreation:    {vertShaderMain, fragShaderCreation},
	programPassthrough: {vertShaderPassthrough, fragShaderPassthrough},
	programColorMatrix: {vertShaderPassthrough, fragShaderColorMatrix},
	programBlendMask:   {vertShaderPassthrough, fragShaderBlendMask},
	programBlur:        {vertShaderBlur, fragShaderBlur},
	programDropShadow:  {vertShaderPassthrough, fragShaderDropShadow},
}

type shaderProgram struct {
	vertexShader *d3d11.VertexShader
	pixelShader  *d3d11.PixelShader
}

type programData struct {
	programs    [numPrograms]shaderProgram
	vertShaders [numVertShaders]*d3d11.VertexShader
	fragShaders [numFragShaders]*d3d11.PixelShader
	// mainVertBytecode is kept for CreateInputLayout, which validates the
	// vertex layout against the shader signature.
	mainVertBytecode []byte
}

// createShaders compiles every vertex and pixel shader and links them into
// the program table. On failure everything created so far is released.
func createShaders(dev *d3d11.Device) (*programData, error) {
	var vertShaders [numVertShaders]*d3d11.VertexShader
	var fragShaders [numFragShaders]*d3d11.PixelShader
	var vertBytecode [numVertShaders][]byte

	data := &programData{}
	cleanup := func() {
		for _, s := range vertShaders {
			s.Release()
		}
		for _, s := range fragShaders {
			s.Release()
		}
	}

	for id, def := range vertShaderDefinitions {
		code, err := d3d11.Compile([]byte(def.src), def.name, "VSMain", "vs_5_0", d3d11.COMPILE_ENABLE_STRICTNESS)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("compiling vertex shader %q: %w", def.name, err)
		}
		shader, err := dev.CreateVertexShader(code)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("creating vertex shader %q: %w", def.name, err)
		}
		vertShaders[id] = shader
		vertBytecode[id] = code
	}

	for id, def := range fragShaderDefinitions {
		code, err := d3d11.Compile([]byte(def.src), def.name, "PSMain", "ps_5_0", d3d11.COMPILE_ENABLE_STRICTNESS)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("compiling pixel shader %q: %w", def.name, err)
		}
		shader, err := dev.CreatePixelShader(code)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("creating pixel shader %q: %w", def.name, err)
		}
		fragShaders[id] = shader
	}

	for id := programColor; id < numPrograms; id++ {
		def := programDefinitions[id]
		data.programs[id] = shaderProgram{
			vertexShader: vertShaders[def.vert],
			pixelShader:  fragShaders[def.frag],
		}
	}
	data.vertShaders = vertShaders
	data.fragShaders = fragShaders
	data.mainVertBytecode = vertBytecode[vertShaderMain]
	return data, nil
}

// destroy releases the underlying shaders. The program table aliases them,
// so only the per-shader references are released.
func (p *programData) destroy() {
	for _, s := range p.vertShaders {
		s.Release()
	}
	for _, s := range p.fragShaders {
		s.Release()
	}
}

// Constant buffer layouts, one per cbuffer declaration in the HLSL above.
// Field order and padding mirror HLSL packing rules: vectors do not straddle
// 16-byte rows, array elements start a new row. One dynamic buffer of
// cbufferSize bytes backs all of them.

const cbufferSize = 512

type mainCbuffer struct {
	_ structs.HostLayout

	Transform [16]float32
	Translate [2]float32
	_         [2]float32
}

type gradientCbuffer struct {
	_ structs.HostLayout

	Transform     [16]float32
	Translate     [2]float32
	Func          int32
	NumStops      int32
	P             [2]float32
	V             [2]float32
	StopColors    [maxNumStops][4]float32
	StopPositions [maxNumStops / 4][4]float32
}

type creationCbuffer struct {
	_ structs.HostLayout

	Transform  [16]float32
	Translate  [2]float32
	Dimensions [2]float32
	Value      float32
	_          [3]float32
}

type colorMatrixCbuffer struct {
	_ structs.HostLayout

	ColorMatrix [16]float32
}

type blurCbuffer struct {
	_ structs.HostLayout

	Transform   [16]float32
	Translate   [2]float32
	_           [2]float32
	Weights     [4]float32
	TexelOffset [2]float32
	TexCoordMin [2]float32
	TexCoordMax [2]float32
}

type dropShadowCbuffer struct {
	_ structs.HostLayout

	Transform   [16]float32
	Translate   [2]float32
	TexCoordMin [2]float32
	TexCoordMax [2]float32
	_           [2]float32
	Color       [4]float32
}
