// Package picking provides ray casting and object picking utilities.
//
// Raycaster.IntersectObject only reports visible nodes: a hidden node and
// its whole subtree are never hit.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glbview/internal/engine/scene"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// NDC converts pixel coordinates to normalized device coordinates (-1 to 1, Y up).
func NDC(screenX, screenY, viewportW, viewportH float32) mgl32.Vec2 {
	if viewportW <= 0 || viewportH <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		2*screenX/viewportW - 1,
		1 - 2*screenY/viewportH,
	}
}

// NDCToRay unprojects a point on the near plane and one on the far plane.
func NDCToRay(ndc mgl32.Vec2, invViewProj mgl32.Mat4) Ray {
	near := unproject(mgl32.Vec4{ndc[0], ndc[1], -1, 1}, invViewProj)
	far := unproject(mgl32.Vec4{ndc[0], ndc[1], 1, 1}, invViewProj)

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(p mgl32.Vec4, inv mgl32.Mat4) mgl32.Vec3 {
	w := inv.Mul4x1(p)
	if w[3] != 0 {
		return w.Vec3().Mul(1 / w[3])
	}
	return w.Vec3()
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box scene.Bounds) (t float32, hit bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle runs Möller–Trumbore against triangle abc.
// Back faces are culled unless doubleSided is set.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3, doubleSided bool) (t float32, hit bool) {
	const epsilon = 1e-7

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)

	if doubleSided {
		if det > -epsilon && det < epsilon {
			return 0, false
		}
	} else if det < epsilon {
		return 0, false
	}

	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = edge2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}
