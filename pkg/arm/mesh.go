package arm

import (
	"fmt"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/mesh"
)

// Shape selects the arm tube cross-section.
type Shape int

const (
	Cylindrical Shape = iota
	Rectangular
)

func (s Shape) String() string {
	switch s {
	case Cylindrical:
		return "cylindrical"
	case Rectangular:
		return "rectangular"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

const defaultArmSegments = 8

// Options controls the arm tube mesh.
type Options struct {
	// Thickness is the tube diameter (cylindrical) or square side
	// (rectangular).
	Thickness float32 `json:"thickness" yaml:"thickness"`
	Shape     Shape   `json:"shape" yaml:"shape"`
	// Segments is the radial resolution of cylindrical tubes.
	// Zero means the default of 8.
	Segments int `json:"segments" yaml:"segments"`
	// AutoScale thickens arms in proportion to their span: a segment
	// at MaxDistance gets 1.5x Thickness, a zero-length one 0.5x.
	AutoScale   bool    `json:"autoScale" yaml:"autoScale"`
	MaxDistance float32 `json:"maxDistance" yaml:"maxDistance"`
}

func (o Options) validate() error {
	if o.Thickness <= 0 {
		return fmt.Errorf("%w: arm thickness must be positive, got %v", geom.ErrInvalidParameter, o.Thickness)
	}
	if o.AutoScale && o.MaxDistance <= 0 {
		return fmt.Errorf("%w: auto-scale requires a positive max distance, got %v", geom.ErrInvalidParameter, o.MaxDistance)
	}
	if o.Segments < 0 {
		return fmt.Errorf("%w: arm segments must not be negative, got %d", geom.ErrInvalidParameter, o.Segments)
	}
	return nil
}

// BuildArmMesh extrudes a tube along each segment of the path. Segments
// are independent solids with no mitering at the joints; the bow angles
// are shallow enough that the overlap at each joint reads as a single
// continuous strut.
func BuildArmMesh(path Path, opts Options) (*mesh.Mesh, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(path.Waypoints) < 2 {
		return nil, fmt.Errorf("%w: arm path needs at least 2 waypoints, got %d", geom.ErrInvalidParameter, len(path.Waypoints))
	}
	segs := opts.Segments
	if segs == 0 {
		segs = defaultArmSegments
	}

	out := &mesh.Mesh{PartName: "arm"}
	for i := 1; i < len(path.Waypoints); i++ {
		a, b := path.Waypoints[i-1], path.Waypoints[i]
		span := b.Sub(a)
		length := span.Length()
		if length == 0 {
			continue
		}

		th := opts.Thickness
		if opts.AutoScale {
			th *= geom.Lerp(0.5, 1.5, geom.Clamp01(length/opts.MaxDistance))
		}

		var tube *mesh.Mesh
		if opts.Shape == Rectangular {
			tube = mesh.Box(th, length, th)
		} else {
			tube = mesh.Cylinder(th/2, length, segs)
		}

		mid := a.Add(span.Scale(0.5))
		xf := geom.Translate(mid).Mul(geom.RotationFromYTo(span))
		out.Append(tube, xf)
	}
	if out.IsEmpty() {
		return nil, fmt.Errorf("%w: arm path is degenerate, all waypoints coincide", geom.ErrInvalidParameter)
	}
	return out, nil
}
