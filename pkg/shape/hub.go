// Package shape builds the drone part meshes: the deformed body hub,
// individual rotor blades, and the combined rotor (hub cylinder, blade
// instances, optional protective ring). Every builder is a pure
// deterministic function of its parameter struct and returns a freshly
// owned mesh buffer.
package shape

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/mesh"
)

// BaseShape selects the hub's undeformed unit shape.
type BaseShape int

const (
	Sphere BaseShape = iota
	Cube
)

func (s BaseShape) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Cube:
		return "cube"
	default:
		return "unknown"
	}
}

// TaperDirection selects which axis the hub narrows along.
type TaperDirection int

const (
	BottomToTop TaperDirection = iota // narrows along +Y
	BackToFront                       // narrows along +X
)

func (d TaperDirection) String() string {
	switch d {
	case BottomToTop:
		return "bottom-to-top"
	case BackToFront:
		return "back-to-front"
	default:
		return "unknown"
	}
}

// Hub mesh resolution. Unit shapes span [-0.5, 0.5] per axis, so Scale
// is the hub's full extent along each axis.
const (
	sphereLatSegs  = 24
	sphereLonSegs  = 48
	cubeFaceSegs   = 8
	unitHalfExtent = float32(0.5)
)

// HubParams describes the drone body shape.
type HubParams struct {
	BaseShape      BaseShape `json:"baseShape" yaml:"baseShape"`
	Scale          geom.Vec3 `json:"scale" yaml:"scale"` // full extent per axis, each component > 0
	Taper          float32   `json:"taper" yaml:"taper"` // [0,1]
	TaperDirection TaperDirection `json:"taperDirection" yaml:"taperDirection"`
}

// Validate checks the numeric ranges.
func (p HubParams) Validate() error {
	if p.Scale.X <= 0 || p.Scale.Y <= 0 || p.Scale.Z <= 0 {
		return fmt.Errorf("%w: hub scale must be positive on every axis, got %+v", geom.ErrInvalidParameter, p.Scale)
	}
	if p.Taper < 0 || p.Taper > 1 {
		return fmt.Errorf("%w: hub taper %v outside [0,1]", geom.ErrInvalidParameter, p.Taper)
	}
	return nil
}

// BuildHub generates the body mesh: a UV sphere or a subdivided cube,
// scaled per axis and narrowed by the shared taper deformation.
func BuildHub(p HubParams) (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var m *mesh.Mesh
	switch p.BaseShape {
	case Cube:
		m = buildUnitCube()
	default:
		m = buildUnitSphere()
	}
	deformHub(m, p)
	return m, nil
}

// deformHub scales each unit vertex per axis, then applies the taper.
// The taper is a shared deformation step identical for both base
// shapes: t is the normalized position along the taper axis, and the
// two non-axis components shrink by lerp(1, 1-taper, t).
func deformHub(m *mesh.Mesh, p HubParams) {
	for i := 0; i < m.VertexCount(); i++ {
		u := m.Vertex(i) // unit-shape vertex in [-0.5, 0.5]
		v := u.Mul(p.Scale)
		switch p.TaperDirection {
		case BackToFront:
			f := geom.TaperFactor(u.X+unitHalfExtent, p.Taper)
			v.Y *= f
			v.Z *= f
		default: // BottomToTop
			f := geom.TaperFactor(u.Y+unitHalfExtent, p.Taper)
			v.X *= f
			v.Z *= f
		}
		m.Vertices[i*3] = v.X
		m.Vertices[i*3+1] = v.Y
		m.Vertices[i*3+2] = v.Z
	}
}

// buildUnitSphere generates a UV sphere of diameter 1 with a
// duplicated seam column. Pole rows collapse to a single point, so the
// degenerate triangle of each pole quad is skipped.
func buildUnitSphere() *mesh.Mesh {
	m := &mesh.Mesh{}
	for lat := 0; lat <= sphereLatSegs; lat++ {
		theta := float32(lat) / sphereLatSegs * math32.Pi
		st, ct := math32.Sincos(theta)
		for lon := 0; lon <= sphereLonSegs; lon++ {
			phi := float32(lon) / sphereLonSegs * 2 * math32.Pi
			sp, cp := math32.Sincos(phi)
			m.AddVertex(geom.V3(st*cp, ct, st*sp).Scale(unitHalfExtent))
		}
	}
	row := uint32(sphereLonSegs + 1)
	for lat := 0; lat < sphereLatSegs; lat++ {
		for lon := 0; lon < sphereLonSegs; lon++ {
			v00 := uint32(lat)*row + uint32(lon)
			v01 := v00 + 1
			v10 := v00 + row
			v11 := v10 + 1
			if lat > 0 {
				m.AddTriangle(v00, v01, v11)
			}
			if lat < sphereLatSegs-1 {
				m.AddTriangle(v00, v11, v10)
			}
		}
	}
	return m
}

// cubeFace describes one subdivided face of the unit cube. The u and v
// axes are chosen so u × v points along the outward normal, keeping
// the winding outward after deformation.
type cubeFace struct {
	normal, u, v geom.Vec3
}

var cubeFaces = []cubeFace{
	{geom.V3(1, 0, 0), geom.V3(0, 1, 0), geom.V3(0, 0, 1)},
	{geom.V3(-1, 0, 0), geom.V3(0, 0, 1), geom.V3(0, 1, 0)},
	{geom.V3(0, 1, 0), geom.V3(0, 0, 1), geom.V3(1, 0, 0)},
	{geom.V3(0, -1, 0), geom.V3(1, 0, 0), geom.V3(0, 0, 1)},
	{geom.V3(0, 0, 1), geom.V3(1, 0, 0), geom.V3(0, 1, 0)},
	{geom.V3(0, 0, -1), geom.V3(0, 1, 0), geom.V3(1, 0, 0)},
}

// buildUnitCube generates 6 subdivided faces of a unit cube. Face
// borders duplicate their shared vertices; normals are derived later,
// so the seams stay crisp.
func buildUnitCube() *mesh.Mesh {
	m := &mesh.Mesh{}
	for _, f := range cubeFaces {
		base := uint32(m.VertexCount())
		for r := 0; r <= cubeFaceSegs; r++ {
			fv := float32(r)/cubeFaceSegs - unitHalfExtent
			for c := 0; c <= cubeFaceSegs; c++ {
				fu := float32(c)/cubeFaceSegs - unitHalfExtent
				pt := f.normal.Scale(unitHalfExtent).
					Add(f.u.Scale(fu)).
					Add(f.v.Scale(fv))
				m.AddVertex(pt)
			}
		}
		row := uint32(cubeFaceSegs + 1)
		for r := uint32(0); r < cubeFaceSegs; r++ {
			for c := uint32(0); c < cubeFaceSegs; c++ {
				v00 := base + r*row + c
				m.AddQuad(v00, v00+1, v00+row+1, v00+row)
			}
		}
	}
	return m
}

// SurfacePoint returns the point on the hub surface in the given
// direction from its center: the unit direction scaled per axis and by
// the taper factor at that direction, then halved. Arm routing anchors
// arms here.
func SurfacePoint(p HubParams, dir geom.Vec3) geom.Vec3 {
	d := dir.Normalized()
	v := d.Mul(p.Scale)
	switch p.TaperDirection {
	case BackToFront:
		f := geom.TaperFactor(d.X*unitHalfExtent+unitHalfExtent, p.Taper)
		v.Y *= f
		v.Z *= f
	default:
		f := geom.TaperFactor(d.Y*unitHalfExtent+unitHalfExtent, p.Taper)
		v.X *= f
		v.Z *= f
	}
	return v.Scale(unitHalfExtent)
}
