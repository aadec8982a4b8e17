// Package lighting provides the spot lights that shade the model.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxSpotLights is the maximum number of spot lights supported in shaders.
const MaxSpotLights = 4

// SpotLight is a cone light aimed at a target point.
type SpotLight struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Color    mgl32.Vec3 // RGB, 0-1
	Angle    float32    // Half-angle of the cone, radians
}

// Direction returns the unit vector from the light towards its target.
// A light sitting on its target points straight down.
func (l SpotLight) Direction() mgl32.Vec3 {
	d := l.Target.Sub(l.Position)
	if d.LenSqr() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// DefaultLights returns two white spot lights in front of and behind the origin.
func DefaultLights() []SpotLight {
	return []SpotLight{
		{Position: mgl32.Vec3{0, 50, 300}, Color: mgl32.Vec3{1, 1, 1}, Angle: math.Pi / 3},
		{Position: mgl32.Vec3{0, 50, -300}, Color: mgl32.Vec3{1, 1, 1}, Angle: math.Pi / 3},
	}
}

// SpotLightBuffer holds lights for GPU upload.
type SpotLightBuffer struct {
	Lights []SpotLight
}

// NewSpotLightBuffer creates a buffer holding lights, truncated to MaxSpotLights.
func NewSpotLightBuffer(lights []SpotLight) *SpotLightBuffer {
	b := &SpotLightBuffer{Lights: make([]SpotLight, 0, MaxSpotLights)}
	b.SetLights(lights)
	return b
}

// SetLights replaces all lights in the buffer.
func (b *SpotLightBuffer) SetLights(lights []SpotLight) {
	b.Lights = append(b.Lights[:0], lights[:min(len(lights), MaxSpotLights)]...)
}

// Count returns the number of lights in use.
func (b *SpotLightBuffer) Count() int {
	return len(b.Lights)
}

// Positions returns positions as a flat slice: [x0, y0, z0, x1, ...].
func (b *SpotLightBuffer) Positions() []float32 {
	return b.flatten(func(l SpotLight) mgl32.Vec3 { return l.Position })
}

// Directions returns normalized cone axes as a flat slice.
func (b *SpotLightBuffer) Directions() []float32 {
	return b.flatten(SpotLight.Direction)
}

// Colors returns colours as a flat slice, clamped to 0-1.
func (b *SpotLightBuffer) Colors() []float32 {
	return b.flatten(func(l SpotLight) mgl32.Vec3 {
		return mgl32.Vec3{
			mgl32.Clamp(l.Color[0], 0, 1),
			mgl32.Clamp(l.Color[1], 0, 1),
			mgl32.Clamp(l.Color[2], 0, 1),
		}
	})
}

// Cosines returns the cosine of each cone half-angle.
func (b *SpotLightBuffer) Cosines() []float32 {
	result := make([]float32, MaxSpotLights)
	for i, l := range b.Lights {
		result[i] = float32(math.Cos(float64(l.Angle)))
	}
	return result
}

func (b *SpotLightBuffer) flatten(get func(SpotLight) mgl32.Vec3) []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, l := range b.Lights {
		v := get(l)
		copy(result[i*3:], v[:])
	}
	return result
}
