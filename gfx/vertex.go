package gfx

import "structs"

// Vertex matches the input layout of the renderer's vertex shaders:
// position, color and texture coordinates. The layout is consumed directly
// by the GPU; do not reorder fields.
type Vertex struct {
	_ structs.HostLayout

	Pos      [2]float32
	Color    Color
	TexCoord [2]float32
}
