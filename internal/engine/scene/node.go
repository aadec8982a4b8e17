// Package scene provides the node graph the viewer renders, animates and picks against.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a transform in the scene graph, optionally carrying a mesh.
type Node struct {
	Name string

	// Local transform, composed as T * R * S
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	Mesh    *Mesh
	Visible bool

	Parent   *Node
	Children []*Node

	world mgl32.Mat4
}

// NewNode creates a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
		world:    mgl32.Ident4(),
	}
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Remove detaches child from n. It is a no-op if child is not a direct child.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetUniformScale sets the same scale factor on all three axes.
func (n *Node) SetUniformScale(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// SetMatrix replaces the local transform with the decomposition of m.
// Shear is discarded.
func (n *Node) SetMatrix(m mgl32.Mat4) {
	n.Translation, n.Rotation, n.Scale = Decompose(m)
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// UpdateWorldMatrix recomputes world matrices for n and its whole subtree.
func (n *Node) UpdateWorldMatrix() {
	if n.Parent != nil {
		n.world = n.Parent.world.Mul4(n.LocalMatrix())
	} else {
		n.world = n.LocalMatrix()
	}
	for _, c := range n.Children {
		c.UpdateWorldMatrix()
	}
}

// WorldMatrix returns the world matrix from the last UpdateWorldMatrix.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	return n.world
}

// Traverse calls fn for n and every descendant, depth first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// TraverseVisible is like Traverse but skips hidden nodes and their subtrees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.TraverseVisible(fn)
	}
}

// FindByName returns the first node in the subtree with the given name.
func (n *Node) FindByName(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}

// DisplayName returns the node name, falling back to its mesh name.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Mesh != nil {
		return n.Mesh.Name
	}
	return ""
}

// Decompose splits an affine matrix into translation, rotation and scale.
func Decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	t := m.Col(3).Vec3()

	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	s := mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}

	// A negative determinant means one axis is mirrored
	if m.Mat3().Det() < 0 {
		s[0] = -s[0]
	}

	var rot mgl32.Mat3
	if s[0] != 0 && s[1] != 0 && s[2] != 0 {
		rot = mgl32.Mat3FromCols(c0.Mul(1/s[0]), c1.Mul(1/s[1]), c2.Mul(1/s[2]))
	} else {
		rot = mgl32.Ident3()
	}

	return t, mgl32.Mat4ToQuat(rot.Mat4()).Normalize(), s
}
