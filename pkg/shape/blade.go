package shape

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/mesh"
)

// BladeShape selects the rotor blade outline.
type BladeShape int

const (
	Triangular BladeShape = iota
	Rectangular
	Curved
)

func (s BladeShape) String() string {
	switch s {
	case Triangular:
		return "triangular"
	case Rectangular:
		return "rectangular"
	case Curved:
		return "curved"
	default:
		return "unknown"
	}
}

const (
	// bladeSegments is the profile resolution of segmented blades.
	bladeSegments = 9
	// tipWidthRatio is the tip half-width as a fraction of the root.
	tipWidthRatio = 0.1
	// pinchWidthRatio is the near-zero hourglass midpoint width.
	pinchWidthRatio = 0.05
	// twistEpsilon below which the twist pass is skipped. A zero
	// rotation is a mathematical no-op; the skip is for efficiency.
	twistEpsilon = 0.01
	// petalNeutralEpsilon treats PetalShape as exactly 1 for the
	// un-segmented fast paths.
	petalNeutralEpsilon = 1e-3
)

// BladeParams describes one rotor blade. The blade root sits at the
// local origin and extends along +X, width across Z, thickness
// across Y.
type BladeParams struct {
	Shape       BladeShape `json:"shape" yaml:"shape"`
	Length      float32    `json:"length" yaml:"length"`
	Width       float32    `json:"width" yaml:"width"`
	Thickness   float32    `json:"thickness" yaml:"thickness"`
	CurveAmount float32    `json:"curveAmount" yaml:"curveAmount"` // [-1,1]
	PetalShape  float32    `json:"petalShape" yaml:"petalShape"`   // [0,3]
	Twist       float32    `json:"twist" yaml:"twist"`             // [-1,1]
}

// Validate checks the numeric ranges.
func (p BladeParams) Validate() error {
	if p.Length <= 0 || p.Width <= 0 || p.Thickness <= 0 {
		return fmt.Errorf("%w: blade length/width/thickness must be positive, got %v/%v/%v",
			geom.ErrInvalidParameter, p.Length, p.Width, p.Thickness)
	}
	if p.CurveAmount < -1 || p.CurveAmount > 1 {
		return fmt.Errorf("%w: blade curve %v outside [-1,1]", geom.ErrInvalidParameter, p.CurveAmount)
	}
	if p.PetalShape < 0 || p.PetalShape > 3 {
		return fmt.Errorf("%w: blade petal shape %v outside [0,3]", geom.ErrInvalidParameter, p.PetalShape)
	}
	if p.Twist < -1 || p.Twist > 1 {
		return fmt.Errorf("%w: blade twist %v outside [-1,1]", geom.ErrInvalidParameter, p.Twist)
	}
	return nil
}

// WidthAtPoint returns the blade half-width at normalized position t
// along the length. This profile is the shared deformation primitive
// across all blade outlines:
//
//   - PetalShape == 1: linear taper from the root half-width down to
//     10% of it at the tip.
//   - PetalShape < 1: hourglass; the linear profile is blended toward
//     a near-zero pinch at the midpoint by the parabolic bulge curve.
//   - PetalShape > 1: petal; the root width bulges toward the middle
//     by the PetalShape multiplier and tapers quadratically to the tip.
func WidthAtPoint(p BladeParams, t float32) float32 {
	half := p.Width / 2
	tip := half * tipWidthRatio
	switch {
	case p.PetalShape < 1:
		base := geom.Lerp(half, tip, t)
		pinch := (1 - p.PetalShape) * geom.Bulge(t)
		return geom.Lerp(base, half*pinchWidthRatio, pinch)
	case p.PetalShape > 1:
		bulged := half * (1 + (p.PetalShape-1)*geom.Bulge(t))
		return bulged * (1 - (1-tipWidthRatio)*t*t)
	default:
		return geom.Lerp(half, tip, t)
	}
}

// BuildBlade generates one rotor blade mesh.
func BuildBlade(p BladeParams) (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	neutral := math32.Abs(p.PetalShape-1) < petalNeutralEpsilon
	switch {
	case p.Shape == Triangular && neutral:
		// Simple wedge: straight edges reproduce the linear profile
		// exactly, so no segmentation is needed.
		return buildBladeBox(p, p.Width/2, p.Width/2*tipWidthRatio), nil
	case p.Shape == Rectangular && neutral:
		// Full width root to tip.
		return buildBladeBox(p, p.Width/2, p.Width/2), nil
	default:
		return buildBladeSegmented(p), nil
	}
}

// twistAngle returns the twist rotation in radians at position t: a
// linear ramp from 0 at the root to Twist*180 degrees at the tip.
func twistAngle(p BladeParams, t float32) float32 {
	if math32.Abs(p.Twist) < twistEpsilon {
		return 0
	}
	return p.Twist * math32.Pi * t
}

// section is one deformed blade cross-section: 4 corners in (y,z)
// around a center, at distance x from the root.
type section struct {
	x float32
	// corner order: (+y,-z), (+y,+z), (-y,-z), (-y,+z) before twist.
	y [4]float32
	z [4]float32
}

// sectionAt computes the fully deformed cross-section at t: width
// profile, curved sweep with radial compensation, and twist about the
// section center.
func sectionAt(p BladeParams, t float32) section {
	w := WidthAtPoint(p, t)
	ht := p.Thickness / 2

	x := t * p.Length
	var sweep float32
	if p.Shape == Curved {
		sweep = t * t * p.Length * p.CurveAmount
		radicand := x*x - sweep*sweep
		if radicand > 0 {
			// Compensate the radial coordinate to keep the swept
			// section at constant radius t*Length.
			x = math32.Sqrt(radicand)
		}
		// Otherwise keep the uncompensated radius. This is a clamp,
		// not a true geometric fix: extreme curve amounts shorten the
		// blade's reach instead of producing NaN positions.
	}

	s := section{x: x}
	ys := [4]float32{ht, ht, -ht, -ht}
	zs := [4]float32{-w, w, -w, w}
	a := twistAngle(p, t)
	for k := 0; k < 4; k++ {
		y, z := ys[k], zs[k]
		if a != 0 {
			y, z = geom.TwistYZ(y, z, a)
		}
		s.y[k] = y
		s.z[k] = z + sweep
	}
	return s
}

// buildBladeBox generates the un-segmented 8-vertex blade with the
// fixed 12-triangle box wind order.
func buildBladeBox(p BladeParams, rootHalf, tipHalf float32) *mesh.Mesh {
	m := &mesh.Mesh{}
	ht := p.Thickness / 2
	root := [4][2]float32{{ht, -rootHalf}, {ht, rootHalf}, {-ht, -rootHalf}, {-ht, rootHalf}}
	tip := [4][2]float32{{ht, -tipHalf}, {ht, tipHalf}, {-ht, -tipHalf}, {-ht, tipHalf}}
	a := twistAngle(p, 1)
	for _, c := range root {
		m.AddVertex(geom.V3(0, c[0], c[1]))
	}
	for _, c := range tip {
		y, z := c[0], c[1]
		if a != 0 {
			y, z = geom.TwistYZ(y, z, a)
		}
		m.AddVertex(geom.V3(p.Length, y, z))
	}
	m.Indices = mesh.BoxIndices()
	return m
}

// buildBladeSegmented generates the profile-sampled blade: top and
// bottom quad strips, left and right edge strips, and root/tip caps.
func buildBladeSegmented(p BladeParams) *mesh.Mesh {
	m := &mesh.Mesh{}
	sections := make([]section, bladeSegments+1)
	for i := range sections {
		sections[i] = sectionAt(p, float32(i)/bladeSegments)
	}

	// Each surface gets its own pairwise vertex run so the documented
	// quad-strip indexing applies directly. Corner pairs are ordered
	// per surface to keep the winding outward.
	runs := [4][2]int{
		{1, 0}, // top: (+y,+z) then (+y,-z)
		{2, 3}, // bottom: (-y,-z) then (-y,+z)
		{3, 1}, // right edge (+z): (-y,+z) then (+y,+z)
		{0, 2}, // left edge (-z): (+y,-z) then (-y,-z)
	}
	for _, run := range runs {
		base := uint32(m.VertexCount())
		for _, s := range sections {
			for _, k := range run {
				m.AddVertex(geom.V3(s.x, s.y[k], s.z[k]))
			}
		}
		m.AppendQuadStrip(base, bladeSegments)
	}

	// Dedicated cap vertices at root and tip.
	capBase := uint32(m.VertexCount())
	for _, s := range []section{sections[0], sections[bladeSegments]} {
		for k := 0; k < 4; k++ {
			m.AddVertex(geom.V3(s.x, s.y[k], s.z[k]))
		}
	}
	r, t := capBase, capBase+4
	m.AddTriangle(r, r+2, r+3) // root, outward -X
	m.AddTriangle(r, r+3, r+1)
	m.AddTriangle(t, t+3, t+2) // tip, outward +X
	m.AddTriangle(t, t+1, t+3)
	return m
}
