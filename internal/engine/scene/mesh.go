package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a named group of primitives sharing a node transform.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Primitive is an indexed triangle list with a single material.
type Primitive struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Indices   []uint32
	Material  Material
	Bounds    Bounds
}

// Material holds the subset of metallic-roughness inputs the viewer shades with.
type Material struct {
	Name        string
	BaseColor   [4]float32
	Texture     *image.RGBA // Base colour texture, nil if untextured
	DoubleSided bool
}

// DefaultMaterial returns an opaque white material.
func DefaultMaterial() Material {
	return Material{BaseColor: [4]float32{1, 1, 1, 1}}
}

// TriangleCount returns the number of triangles in the primitive.
func (p *Primitive) TriangleCount() int {
	return len(p.Indices) / 3
}

// Triangle returns the local-space corners of triangle i.
func (p *Primitive) Triangle(i int) (a, b, c mgl32.Vec3) {
	ia, ib, ic := p.Indices[i*3], p.Indices[i*3+1], p.Indices[i*3+2]
	return mgl32.Vec3(p.Positions[ia]), mgl32.Vec3(p.Positions[ib]), mgl32.Vec3(p.Positions[ic])
}

// ComputeBounds recalculates Bounds from Positions.
func (p *Primitive) ComputeBounds() {
	p.Bounds = BoundsOf(p.Positions)
}

// ComputeNormals fills Normals with area-weighted smooth vertex normals.
func (p *Primitive) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(p.Positions))
	for i := 0; i < p.TriangleCount(); i++ {
		a, b, c := p.Triangle(i)
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range p.Indices[i*3 : i*3+3] {
			normals[idx] = normals[idx].Add(n)
		}
	}

	p.Normals = make([][3]float32, len(normals))
	for i, n := range normals {
		if n.Len() > 0 {
			n = n.Normalize()
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		p.Normals[i] = n
	}
}

// Bounds is an axis-aligned bounding box in local space.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundsOf returns the bounding box of the given points. Empty input yields a zero box.
func BoundsOf(points [][3]float32) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < b.Min[k] {
				b.Min[k] = p[k]
			}
			if p[k] > b.Max[k] {
				b.Max[k] = p[k]
			}
		}
	}
	return b
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Transform returns the world-space box enclosing b after applying m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	corners := b.Corners()
	pts := make([][3]float32, len(corners))
	for i, c := range corners {
		pts[i] = mgl32.TransformCoordinate(c, m)
	}
	return BoundsOf(pts)
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return BoundsOf([][3]float32{b.Min, b.Max, o.Min, o.Max})
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// WorldBounds returns the world-space box of every mesh under n.
// Call UpdateWorldMatrix first. ok is false when the subtree has no geometry.
func WorldBounds(n *Node) (b Bounds, ok bool) {
	n.Traverse(func(c *Node) {
		if c.Mesh == nil {
			return
		}
		for _, p := range c.Mesh.Primitives {
			wb := p.Bounds.Transform(c.WorldMatrix())
			if !ok {
				b, ok = wb, true
			} else {
				b = b.Union(wb)
			}
		}
	})
	return b, ok
}
