// Package animation provides keyframe clips and a mixer that plays them on scene nodes.
package animation

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glbview/internal/engine/scene"
)

// Path selects the node property a track drives.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

// Width returns the number of floats per keyframe value.
func (p Path) Width() int {
	if p == PathRotation {
		return 4
	}
	return 3
}

func (p Path) String() string {
	switch p {
	case PathTranslation:
		return "translation"
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	}
	return "unknown"
}

// Interpolation is the keyframe interpolation mode.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	// InterpolationCubicSpline stores [in-tangent, value, out-tangent] per key.
	InterpolationCubicSpline
)

// Track animates one property of one node.
type Track struct {
	Target        *scene.Node
	Path          Path
	Interpolation Interpolation
	Times         []float32 // Seconds, ascending
	Values        []float32 // Flattened, Path.Width() floats per key (x3 for cubic spline)
}

// Duration returns the time of the last keyframe.
func (t *Track) Duration() float32 {
	if len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}

// Sample evaluates the track at time and writes the result to the target node.
func (t *Track) Sample(time float32) {
	if t.Target == nil || len(t.Times) == 0 {
		return
	}
	v := t.valueAt(time)
	switch t.Path {
	case PathTranslation:
		t.Target.Translation = mgl32.Vec3{v[0], v[1], v[2]}
	case PathRotation:
		t.Target.Rotation = mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}.Normalize()
	case PathScale:
		t.Target.Scale = mgl32.Vec3{v[0], v[1], v[2]}
	}
}

// valueAt returns the interpolated value, clamped to the first/last key outside the keyed range.
func (t *Track) valueAt(time float32) [4]float32 {
	n := len(t.Times)
	if time <= t.Times[0] {
		return t.key(0)
	}
	if time >= t.Times[n-1] {
		return t.key(n - 1)
	}

	// First key strictly after time; the previous one is at or before it
	next := sort.Search(n, func(i int) bool { return t.Times[i] > time })
	prev := next - 1

	t0, t1 := t.Times[prev], t.Times[next]
	dt := t1 - t0
	u := float32(0)
	if dt > 0 {
		u = (time - t0) / dt
	}

	switch t.Interpolation {
	case InterpolationStep:
		return t.key(prev)
	case InterpolationCubicSpline:
		return t.cubic(prev, next, u, dt)
	}

	a, b := t.key(prev), t.key(next)
	if t.Path == PathRotation {
		qa := mgl32.Quat{W: a[3], V: mgl32.Vec3{a[0], a[1], a[2]}}
		qb := mgl32.Quat{W: b[3], V: mgl32.Vec3{b[0], b[1], b[2]}}
		if qa.Dot(qb) < 0 {
			qb = qb.Scale(-1) // shortest arc
		}
		q := mgl32.QuatSlerp(qa, qb, u)
		return [4]float32{q.V[0], q.V[1], q.V[2], q.W}
	}
	var out [4]float32
	for i := 0; i < t.Path.Width(); i++ {
		out[i] = a[i] + (b[i]-a[i])*u
	}
	return out
}

// key returns the value of keyframe i, skipping tangents for cubic splines.
func (t *Track) key(i int) [4]float32 {
	w := t.Path.Width()
	off := i * w
	if t.Interpolation == InterpolationCubicSpline {
		off = i*3*w + w
	}
	var out [4]float32
	copy(out[:w], t.Values[off:off+w])
	return out
}

// cubic evaluates the Hermite spline between keys prev and next.
func (t *Track) cubic(prev, next int, u, dt float32) [4]float32 {
	w := t.Path.Width()
	base0 := prev * 3 * w
	base1 := next * 3 * w

	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	var out [4]float32
	for i := 0; i < w; i++ {
		p0 := t.Values[base0+w+i]
		m0 := t.Values[base0+2*w+i] * dt // out-tangent of prev
		p1 := t.Values[base1+w+i]
		m1 := t.Values[base1+i] * dt // in-tangent of next
		out[i] = h00*p0 + h10*m0 + h01*p1 + h11*m1
	}
	return out
}
