// Package mesh defines the flat triangle-mesh buffer produced by every
// builder, plus the combine and primitive-generation helpers they share.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering. Each builder returns
// a freshly allocated, exclusively owned Mesh; nothing is shared or
// mutated incrementally across generation calls.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // derived, see RecalcNormals
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which assembly part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i as a Vec3.
func (m *Mesh) Vertex(i int) geom.Vec3 {
	return geom.Vec3{X: m.Vertices[i*3], Y: m.Vertices[i*3+1], Z: m.Vertices[i*3+2]}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v geom.Vec3) uint32 {
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
	return i
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// AddQuad appends a quad as two triangles (a,b,c) and (a,c,d).
func (m *Mesh) AddQuad(a, b, c, d uint32) {
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
}

// Validate checks the flat-buffer invariants: index count divisible by
// three and every index inside the vertex range.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("vertex buffer length %d not divisible by 3", len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index buffer length %d not divisible by 3", len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d exceeds vertex count %d", idx, i, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the mesh.
// An empty mesh yields two zero vectors.
func (m *Mesh) Bounds() (min, max geom.Vec3) {
	if m.IsEmpty() {
		return
	}
	min = m.Vertex(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		min.X = math32.Min(min.X, v.X)
		min.Y = math32.Min(min.Y, v.Y)
		min.Z = math32.Min(min.Z, v.Z)
		max.X = math32.Max(max.X, v.X)
		max.Y = math32.Max(max.Y, v.Y)
		max.Z = math32.Max(max.Z, v.Z)
	}
	return min, max
}

// RecalcNormals derives smooth per-vertex normals by accumulating
// area-weighted face normals. Builders author positions and indices
// only; normals are always derived.
func (m *Mesh) RecalcNormals() {
	m.Normals = make([]float32, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		va, vb, vc := m.Vertex(int(a)), m.Vertex(int(b)), m.Vertex(int(c))
		// Cross product length carries the area weighting.
		fn := vb.Sub(va).Cross(vc.Sub(va))
		for _, vi := range []uint32{a, b, c} {
			m.Normals[vi*3] += fn.X
			m.Normals[vi*3+1] += fn.Y
			m.Normals[vi*3+2] += fn.Z
		}
	}
	for i := 0; i < m.VertexCount(); i++ {
		n := geom.Vec3{X: m.Normals[i*3], Y: m.Normals[i*3+1], Z: m.Normals[i*3+2]}.Normalized()
		m.Normals[i*3] = n.X
		m.Normals[i*3+1] = n.Y
		m.Normals[i*3+2] = n.Z
	}
}
