package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const minPolar = 1e-6

// OrbitControls orbits a Perspective camera around a target point.
//
// Input handlers accumulate deltas; Update applies them. With damping
// enabled, only a fraction of each pending delta is applied per Update,
// so Update must run every frame for the motion to settle.
type OrbitControls struct {
	Camera *Perspective
	Target mgl32.Vec3

	MinDistance float32
	MaxDistance float32

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	viewportHeight float32

	deltaTheta float32 // Azimuth around Y
	deltaPhi   float32 // Polar angle from +Y
	scale      float32
	panOffset  mgl32.Vec3
}

// NewOrbitControls creates controls for cam with three.js-like defaults.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		Camera:         cam,
		MinDistance:    0,
		MaxDistance:    float32(math.Inf(1)),
		DampingFactor:  0.05,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		PanSpeed:       1,
		viewportHeight: 600,
		scale:          1,
	}
}

// SetViewportHeight sets the pixel height drag deltas are measured against.
func (o *OrbitControls) SetViewportHeight(h float32) {
	if h > 0 {
		o.viewportHeight = h
	}
}

// HandleDrag rotates around the target by a mouse drag delta in pixels.
// A drag across the full viewport height turns a full circle.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	o.deltaTheta -= 2 * math.Pi * deltaX / o.viewportHeight * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * deltaY / o.viewportHeight * o.RotateSpeed
}

// HandleZoom dollies towards the target for positive wheel deltas.
func (o *OrbitControls) HandleZoom(delta float32) {
	step := float32(math.Pow(0.95, float64(o.ZoomSpeed)))
	switch {
	case delta > 0:
		o.scale *= step
	case delta < 0:
		o.scale /= step
	}
}

// HandlePan moves the target in the camera plane by a drag delta in pixels.
func (o *OrbitControls) HandlePan(deltaX, deltaY float32) {
	offset := o.Camera.Position.Sub(o.Target)
	// Half the visible height at the target distance
	targetDistance := offset.Len() * float32(math.Tan(float64(mgl32.DegToRad(o.Camera.FOV)/2)))

	view := o.Camera.View()
	// Rows of the view rotation are the camera axes in world space
	right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}

	left := right.Mul(-2 * deltaX * targetDistance / o.viewportHeight * o.PanSpeed)
	upward := up.Mul(2 * deltaY * targetDistance / o.viewportHeight * o.PanSpeed)
	o.panOffset = o.panOffset.Add(left).Add(upward)
}

// Update applies pending input to the camera and reports whether it moved.
func (o *OrbitControls) Update() bool {
	cam := o.Camera
	offset := cam.Position.Sub(o.Target)

	radius := offset.Len()
	theta := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	phi := float32(0)
	if radius > 0 {
		phi = float32(math.Acos(float64(mgl32.Clamp(offset.Y()/radius, -1, 1))))
	}

	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}

	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor
	phi = mgl32.Clamp(phi, minPolar, math.Pi-minPolar)

	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	o.Target = o.Target.Add(o.panOffset.Mul(factor))

	sinPhi := float32(math.Sin(float64(phi)))
	newOffset := mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}
	prev := cam.Position
	cam.Position = o.Target.Add(newOffset)
	cam.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.panOffset = o.panOffset.Mul(1 - o.DampingFactor)
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = mgl32.Vec3{}
	}
	o.scale = 1

	return cam.Position.Sub(prev).LenSqr() > 1e-12
}
