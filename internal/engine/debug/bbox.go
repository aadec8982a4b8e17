// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glbview/internal/engine/scene"
)

// LineVertexFloats is the number of floats per line vertex: position then colour.
const LineVertexFloats = 6

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 0.02

// SelectionColor is the colour of the picked-part wireframe.
var SelectionColor = mgl32.Vec3{1, 0.85, 0.1}

// BBoxWireframe creates coloured line vertices for a bounding box grown by padding.
func BBoxWireframe(b scene.Bounds, padding float32, color mgl32.Vec3) []float32 {
	lo := b.Min.Sub(mgl32.Vec3{padding, padding, padding})
	hi := b.Max.Add(mgl32.Vec3{padding, padding, padding})

	corner := func(x, y, z bool) mgl32.Vec3 {
		c := lo
		if x {
			c[0] = hi[0]
		}
		if y {
			c[1] = hi[1]
		}
		if z {
			c[2] = hi[2]
		}
		return c
	}

	edges := [12][2]mgl32.Vec3{
		// Bottom face
		{corner(false, false, false), corner(true, false, false)},
		{corner(true, false, false), corner(true, false, true)},
		{corner(true, false, true), corner(false, false, true)},
		{corner(false, false, true), corner(false, false, false)},
		// Top face
		{corner(false, true, false), corner(true, true, false)},
		{corner(true, true, false), corner(true, true, true)},
		{corner(true, true, true), corner(false, true, true)},
		{corner(false, true, true), corner(false, true, false)},
		// Vertical edges
		{corner(false, false, false), corner(false, true, false)},
		{corner(true, false, false), corner(true, true, false)},
		{corner(true, false, true), corner(true, true, true)},
		{corner(false, false, true), corner(false, true, true)},
	}

	out := make([]float32, 0, BBoxWireframeVertexCount*LineVertexFloats)
	for _, e := range edges {
		out = appendLineVertex(out, e[0], color)
		out = appendLineVertex(out, e[1], color)
	}
	return out
}

// AxesLines creates an axes helper of the given length: X red, Y green, Z blue,
// each fading slightly towards its tip.
func AxesLines(size float32) []float32 {
	out := make([]float32, 0, 6*LineVertexFloats)
	out = appendLineVertex(out, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	out = appendLineVertex(out, mgl32.Vec3{size, 0, 0}, mgl32.Vec3{1, 0.6, 0})
	out = appendLineVertex(out, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	out = appendLineVertex(out, mgl32.Vec3{0, size, 0}, mgl32.Vec3{0.6, 1, 0})
	out = appendLineVertex(out, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
	out = appendLineVertex(out, mgl32.Vec3{0, 0, size}, mgl32.Vec3{0, 0.6, 1})
	return out
}

func appendLineVertex(out []float32, p, c mgl32.Vec3) []float32 {
	return append(out, p[0], p[1], p[2], c[0], c[1], c[2])
}
