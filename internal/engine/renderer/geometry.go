package renderer

import (
	"math"

	"github.com/Faultbox/glbview/internal/engine/scene"
)

// SphereGeometry builds a UV sphere the way three.js lays it out: rows from
// the north pole down, U increasing with azimuth and V = 1 at the top.
// widthSegments must be at least 3 and heightSegments at least 2.
func SphereGeometry(radius float32, widthSegments, heightSegments int) *scene.Primitive {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	p := &scene.Primitive{Material: scene.DefaultMaterial()}
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)

		// Poles get a half-segment U offset so their triangles sample the middle
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float64(widthSegments)
		}

		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			theta := v * math.Pi

			x := -math.Cos(phi) * math.Sin(theta)
			y := math.Cos(theta)
			z := math.Sin(phi) * math.Sin(theta)

			p.Positions = append(p.Positions, [3]float32{radius * float32(x), radius * float32(y), radius * float32(z)})
			p.Normals = append(p.Normals, [3]float32{float32(x), float32(y), float32(z)})
			p.TexCoords = append(p.TexCoords, [2]float32{float32(u + uOffset), float32(1 - v)})

			row[ix] = uint32(len(p.Positions) - 1)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				p.Indices = append(p.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				p.Indices = append(p.Indices, b, c, d)
			}
		}
	}

	p.ComputeBounds()
	return p
}

// MirrorX negates X on positions and normals. Winding is left alone, so a
// sphere's front faces end up on the inside and its texture reads
// correctly from the centre.
func MirrorX(p *scene.Primitive) {
	for i := range p.Positions {
		p.Positions[i][0] = -p.Positions[i][0]
	}
	for i := range p.Normals {
		p.Normals[i][0] = -p.Normals[i][0]
	}
	p.ComputeBounds()
}
