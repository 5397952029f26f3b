package mesh

import "github.com/Boomstam/dronegen/pkg/geom"

// Append copies src into m with the given transform applied to every
// vertex, offsetting indices past the existing vertices. This is a
// combine operation producing one flat buffer, not a scene hierarchy:
// src is never referenced afterwards and may be appended repeatedly
// with different transforms to instance geometry.
func (m *Mesh) Append(src *Mesh, xf geom.Transform) {
	base := uint32(m.VertexCount())
	for i := 0; i < src.VertexCount(); i++ {
		v := xf.Apply(src.Vertex(i))
		m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
	}
	for _, idx := range src.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Merge concatenates all given meshes into one fresh buffer pair.
func Merge(parts ...*Mesh) *Mesh {
	out := &Mesh{}
	for _, p := range parts {
		out.Append(p, geom.Identity())
	}
	return out
}

// AppendQuadStrip emits the triangles for a strip of segs quads over
// vertices laid out pairwise per profile step: strip vertex 2i and
// 2i+1 belong to step i. Segment i produces the quad
// (2i, 2i+2, 2i+1) and (2i+1, 2i+2, 2i+3), relative to base.
func (m *Mesh) AppendQuadStrip(base uint32, segs int) {
	for i := 0; i < segs; i++ {
		a := base + uint32(i*2)
		m.AddTriangle(a, a+2, a+1)
		m.AddTriangle(a+1, a+2, a+3)
	}
}
