// Package export writes generated meshes to disk in STL form.
package export

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/mesh"
)

// Triangles converts a mesh into the triangle soup the STL writer
// consumes. Vertex winding is preserved.
func Triangles(m *mesh.Mesh) []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		var t sdf.Triangle3
		for j := 0; j < 3; j++ {
			t[j] = toVec(m.Vertex(int(m.Indices[i+j])))
		}
		tris = append(tris, &t)
	}
	return tris
}

// WriteSTL saves the mesh as a binary STL file.
func WriteSTL(path string, m *mesh.Mesh) error {
	if m == nil || m.IsEmpty() {
		return fmt.Errorf("%w: nothing to export", geom.ErrInvalidParameter)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("export %q: %w", path, err)
	}
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("export %q: %w", path, err)
	}
	return nil
}

func toVec(v geom.Vec3) v3.Vec {
	return v3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
