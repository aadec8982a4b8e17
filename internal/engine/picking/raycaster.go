package picking

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glbview/internal/engine/scene"
)

// Projector is anything that can unproject NDC into world space.
type Projector interface {
	InverseViewProjection() mgl32.Mat4
}

// Intersection is a single ray hit against scene geometry.
type Intersection struct {
	Distance  float32
	Point     mgl32.Vec3
	Object    *scene.Node
	Primitive *scene.Primitive
	FaceIndex int
}

// Raycaster casts a ray from the camera into a node tree.
type Raycaster struct {
	Ray  Ray
	Near float32
	Far  float32
}

// NewRaycaster creates a raycaster with an unbounded range.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: float32(1e30)}
}

// SetFromCamera aims the ray through ndc as seen by cam.
func (rc *Raycaster) SetFromCamera(ndc mgl32.Vec2, cam Projector) {
	rc.Ray = NDCToRay(ndc, cam.InverseViewProjection())
}

// IntersectObject returns every hit on root (and its descendants if
// recursive), nearest first. Hidden subtrees are skipped.
// World matrices must be up to date.
func (rc *Raycaster) IntersectObject(root *scene.Node, recursive bool) []Intersection {
	var hits []Intersection
	if root == nil {
		return hits
	}
	if recursive {
		root.TraverseVisible(func(n *scene.Node) {
			hits = rc.intersectNode(n, hits)
		})
	} else if root.Visible {
		hits = rc.intersectNode(root, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func (rc *Raycaster) intersectNode(n *scene.Node, hits []Intersection) []Intersection {
	if n.Mesh == nil {
		return hits
	}
	world := n.WorldMatrix()
	if world.Det() == 0 {
		return hits
	}

	// Test in local space so bounds stay axis-aligned
	inv := world.Inv()
	local := Ray{
		Origin:    mgl32.TransformCoordinate(rc.Ray.Origin, inv),
		Direction: mgl32.TransformNormal(rc.Ray.Direction, inv).Normalize(),
	}

	for _, prim := range n.Mesh.Primitives {
		if _, ok := local.IntersectAABB(prim.Bounds); !ok {
			continue
		}
		for f := 0; f < prim.TriangleCount(); f++ {
			a, b, c := prim.Triangle(f)
			t, ok := local.IntersectTriangle(a, b, c, prim.Material.DoubleSided)
			if !ok {
				continue
			}
			point := mgl32.TransformCoordinate(local.At(t), world)
			dist := point.Sub(rc.Ray.Origin).Len()
			if dist < rc.Near || dist > rc.Far {
				continue
			}
			hits = append(hits, Intersection{
				Distance:  dist,
				Point:     point,
				Object:    n,
				Primitive: prim,
				FaceIndex: f,
			})
		}
	}
	return hits
}
