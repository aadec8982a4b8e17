package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-3

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewPerspective(45, 1, 0.1, 1000)
	before := c.Projection()

	c.SetAspect(2)

	assert.Equal(t, float32(2), c.Aspect)
	assert.NotEqual(t, before, c.Projection())
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 1000)
	assert.True(t, c.Projection().ApproxEqualThreshold(want, eps))
}

func TestZeroAspectDoesNotPanic(t *testing.T) {
	c := NewPerspective(45, 0, 0.1, 100)
	assert.False(t, c.Projection().Det() == 0)
}

func TestInverseViewProjectionRoundTrip(t *testing.T) {
	c := NewPerspective(45, 1.5, 0.1, 100)
	c.Position = mgl32.Vec3{0, 6, 5}
	c.LookAt(mgl32.Vec3{0, 4.5, 0})

	p := mgl32.Vec3{1, 2, -3}
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	back := c.InverseViewProjection().Mul4x1(clip)
	got := back.Vec3().Mul(1 / back[3])

	assert.True(t, got.ApproxEqualThreshold(p, eps), "got %v", got)
}

func newControls(pos, target mgl32.Vec3) *OrbitControls {
	cam := NewPerspective(45, 1, 0.1, 1000)
	cam.Position = pos
	o := NewOrbitControls(cam)
	o.Target = target
	return o
}

func TestUpdateLooksAtTarget(t *testing.T) {
	o := newControls(mgl32.Vec3{0, 6, 5}, mgl32.Vec3{0, 4.5, 0})
	o.Update()

	assert.Equal(t, o.Target, o.Camera.Target())
	assert.True(t, o.Camera.Position.ApproxEqualThreshold(mgl32.Vec3{0, 6, 5}, eps),
		"no input keeps the camera in place, got %v", o.Camera.Position)
}

func TestDistanceClamp(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl32.Vec3
		want float32
	}{
		{"too far", mgl32.Vec3{0, 0, 50}, 10},
		{"too close", mgl32.Vec3{0, 0, 0.2}, 1},
		{"inside", mgl32.Vec3{0, 0, 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newControls(tt.pos, mgl32.Vec3{})
			o.MinDistance = 1
			o.MaxDistance = 10
			o.Update()
			assert.InDelta(t, tt.want, o.Camera.Position.Len(), eps)
		})
	}
}

func TestZoomClampsAtMinimum(t *testing.T) {
	o := newControls(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{})
	o.MinDistance = 1
	o.MaxDistance = 10

	for i := 0; i < 100; i++ {
		o.HandleZoom(1)
		o.Update()
	}
	assert.InDelta(t, 1, o.Camera.Position.Len(), eps)

	o.HandleZoom(-1)
	o.Update()
	assert.Greater(t, o.Camera.Position.Len(), float32(1))
}

func TestDragWithoutDampingAppliesAtOnce(t *testing.T) {
	o := newControls(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o.SetViewportHeight(400)

	// A quarter of the viewport height is a quarter turn
	o.HandleDrag(-100, 0)
	assert.True(t, o.Update())
	assert.True(t, o.Camera.Position.ApproxEqualThreshold(mgl32.Vec3{5, 0, 0}, eps), "got %v", o.Camera.Position)

	assert.False(t, o.Update(), "no pending input")
}

func TestDampingSettlesGradually(t *testing.T) {
	o := newControls(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o.EnableDamping = true
	o.SetViewportHeight(400)
	o.HandleDrag(-100, 0)

	o.Update()
	first := o.Camera.Position
	assert.Less(t, first.X(), float32(1), "only a fraction applied on the first update")

	for i := 0; i < 500; i++ {
		o.Update()
	}
	// Geometric series of 0.05 * 0.95^k converges to the full quarter turn
	assert.True(t, o.Camera.Position.ApproxEqualThreshold(mgl32.Vec3{5, 0, 0}, 1e-2), "got %v", o.Camera.Position)
	assert.InDelta(t, 5, o.Camera.Position.Len(), eps)
}

func TestPolarAngleClamped(t *testing.T) {
	o := newControls(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o.SetViewportHeight(100)
	o.HandleDrag(0, 1000) // far past the pole

	o.Update()
	assert.Greater(t, o.Camera.Position.Y(), float32(4.99))
	assert.False(t, o.Camera.View().Det() == 0)
}

func TestPanMovesTarget(t *testing.T) {
	o := newControls(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	o.Update()

	o.HandlePan(50, 0)
	o.Update()

	assert.Less(t, o.Target.X(), float32(0), "dragging right moves the target left")
	assert.InDelta(t, 0, o.Target.Y(), eps)
	assert.InDelta(t, 5, o.Camera.Position.Sub(o.Target).Len(), eps, "pan keeps distance")
}
