package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
)

// Cylinder builds a capped cylinder centered at the origin with its
// axis along Y. The seam column is duplicated, so the mesh has
// 2*(segs+1) ring vertices plus two cap centers.
func Cylinder(radius, height float32, segs int) *Mesh {
	m := &Mesh{}
	hh := height / 2
	for _, y := range []float32{-hh, hh} {
		for j := 0; j <= segs; j++ {
			phi := float32(j) / float32(segs) * 2 * math32.Pi
			m.AddVertex(geom.V3(radius*math32.Cos(phi), y, radius*math32.Sin(phi)))
		}
	}
	botCenter := m.AddVertex(geom.V3(0, -hh, 0))
	topCenter := m.AddVertex(geom.V3(0, hh, 0))

	ringLen := uint32(segs + 1)
	for j := uint32(0); j < uint32(segs); j++ {
		b, t := j, ringLen+j
		// Side wall, outward radial winding.
		m.AddTriangle(b, t, t+1)
		m.AddTriangle(b, t+1, b+1)
		// Caps fan from the center vertices.
		m.AddTriangle(topCenter, t+1, t)
		m.AddTriangle(botCenter, b, b+1)
	}
	return m
}

// Ring builds a flat double-sided annulus at y=0 centered on the
// origin, from inner to outer radius.
func Ring(inner, outer float32, segs int) *Mesh {
	m := &Mesh{}
	for _, r := range []float32{inner, outer} {
		for j := 0; j <= segs; j++ {
			phi := float32(j) / float32(segs) * 2 * math32.Pi
			m.AddVertex(geom.V3(r*math32.Cos(phi), 0, r*math32.Sin(phi)))
		}
	}
	ringLen := uint32(segs + 1)
	for j := uint32(0); j < uint32(segs); j++ {
		in, out := j, ringLen+j
		// Upward-facing layer.
		m.AddTriangle(in, in+1, out+1)
		m.AddTriangle(in, out+1, out)
		// Downward-facing layer over the same vertices.
		m.AddTriangle(in, out+1, in+1)
		m.AddTriangle(in, out, out+1)
	}
	return m
}

// Box builds an axis-aligned box centered at the origin with the given
// full extents: 8 vertices, 12 triangles.
func Box(sx, sy, sz float32) *Mesh {
	hx, hy, hz := sx/2, sy/2, sz/2
	m := &Mesh{
		Vertices: []float32{
			-hx, hy, -hz, // 0
			-hx, hy, hz, // 1
			-hx, -hy, -hz, // 2
			-hx, -hy, hz, // 3
			hx, hy, -hz, // 4
			hx, hy, hz, // 5
			hx, -hy, -hz, // 6
			hx, -hy, hz, // 7
		},
	}
	m.Indices = BoxIndices()
	return m
}

// BoxIndices is the fixed 12-triangle wind order over 8 box corners
// laid out min-X first, +Y before -Y, -Z before +Z: top, bottom,
// front, back, left, right. Reused by every un-segmented box shape.
func BoxIndices() []uint32 {
	return []uint32{
		0, 1, 5, 0, 5, 4, // top (+Y)
		2, 6, 7, 2, 7, 3, // bottom (-Y)
		1, 3, 7, 1, 7, 5, // front (+Z)
		0, 4, 6, 0, 6, 2, // back (-Z)
		0, 2, 3, 0, 3, 1, // left (-X)
		4, 7, 6, 4, 5, 7, // right (+X)
	}
}
