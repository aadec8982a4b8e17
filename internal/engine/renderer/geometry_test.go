package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereGeometryCounts(t *testing.T) {
	s := SphereGeometry(500, 60, 40)

	assert.Len(t, s.Positions, 61*41)
	assert.Len(t, s.TexCoords, len(s.Positions))
	// Each pole row contributes one triangle per segment, other rows two
	assert.Len(t, s.Indices, 3*(60*(2*40-2)))
	for _, i := range s.Indices {
		require.Less(t, int(i), len(s.Positions))
	}
}

func TestSphereGeometryRadiusAndPoles(t *testing.T) {
	s := SphereGeometry(2, 8, 6)

	for i, p := range s.Positions {
		assert.InDelta(t, 2, mgl32.Vec3(p).Len(), 1e-4, "vertex %d", i)
	}
	assert.InDelta(t, 2, s.Positions[0][1], 1e-5, "first row is the north pole")
	assert.InDelta(t, 1, s.TexCoords[0][1], 1e-6, "north pole has V = 1")
	assert.InDelta(t, 0, s.TexCoords[len(s.TexCoords)-1][1], 1e-6)
	assert.InDelta(t, 2, s.Bounds.Max.Y(), 1e-5)
}

func TestSphereGeometryFacesOutward(t *testing.T) {
	s := SphereGeometry(1, 8, 6)

	a, b, c := s.Triangle(s.TriangleCount() / 2)
	normal := b.Sub(a).Cross(c.Sub(a))
	center := a.Add(b).Add(c).Mul(1.0 / 3)
	assert.Greater(t, normal.Dot(center), float32(0))

	MirrorX(s)
	a, b, c = s.Triangle(s.TriangleCount() / 2)
	normal = b.Sub(a).Cross(c.Sub(a))
	center = a.Add(b).Add(c).Mul(1.0 / 3)
	assert.Less(t, normal.Dot(center), float32(0), "mirrored sphere faces inward")
}

func TestSphereGeometryMinimumSegments(t *testing.T) {
	s := SphereGeometry(1, 1, 1)
	assert.Len(t, s.Positions, 4*3)
}
