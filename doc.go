// Package glint implements a Direct3D 11 render backend for a
// retained-mode UI library.
//
// The UI library hands the renderer pre-tessellated triangle lists,
// textures, and a tree of compositing instructions; the renderer turns
// them into D3D11 draws. Rendering happens into a stack of pooled,
// multisampled offscreen layers so that groups of elements can be
// composited with blend modes and filter chains (opacity, blur, drop
// shadow, color matrices, mask images). Clip regions combine a scissor
// rectangle for axis-aligned clips with a stencil-based clip mask for
// transformed or rounded ones.
//
// A frame is bracketed by BeginFrame and EndFrame. BeginFrame captures
// the host application's device-context state and EndFrame restores it,
// so the renderer can share a device with an application's own 3D scene
// without coordination.
//
// All GPU work happens through the hand-rolled COM binding in the d3d11
// subpackage. Only files built on Windows touch it; the compositing,
// filter, and handle logic is pure and portable.
package glint
