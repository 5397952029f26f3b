package shape

import (
	"fmt"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/mesh"
)

const (
	// hubRadialSegs is the rotor hub cylinder resolution.
	hubRadialSegs = 16
	// ringSegs is the protective ring resolution.
	ringSegs = 32
	// ringInnerScale places the ring inner edge just past the blade tips.
	ringInnerScale = 1.1
)

// RotorParams describes one complete rotor: hub cylinder, blades, and
// an optional protective ring.
type RotorParams struct {
	BladeCount    int         `json:"bladeCount" yaml:"bladeCount"` // [2,8]
	Blade         BladeParams `json:"blade" yaml:"blade"`
	HubRadius     float32     `json:"hubRadius" yaml:"hubRadius"`
	HubHeight     float32     `json:"hubHeight" yaml:"hubHeight"`
	IncludeRing   bool        `json:"includeRing" yaml:"includeRing"`
	RingThickness float32     `json:"ringThickness" yaml:"ringThickness"`
}

// Validate checks the numeric ranges.
func (p RotorParams) Validate() error {
	if p.BladeCount < 2 || p.BladeCount > 8 {
		return fmt.Errorf("%w: blade count %d outside [2,8]", geom.ErrInvalidParameter, p.BladeCount)
	}
	if p.HubRadius <= 0 || p.HubHeight <= 0 {
		return fmt.Errorf("%w: rotor hub radius/height must be positive, got %v/%v",
			geom.ErrInvalidParameter, p.HubRadius, p.HubHeight)
	}
	if p.IncludeRing && p.RingThickness <= 0 {
		return fmt.Errorf("%w: ring thickness must be positive, got %v",
			geom.ErrInvalidParameter, p.RingThickness)
	}
	return p.Blade.Validate()
}

// RingInnerRadius returns the inner radius of the protective ring for
// these parameters, whether or not the ring is included.
func (p RotorParams) RingInnerRadius() float32 {
	return ringInnerScale * (p.HubRadius + p.Blade.Length)
}

// RingOuterRadius returns the outer radius of the protective ring.
func (p RotorParams) RingOuterRadius() float32 {
	return p.RingInnerRadius() + p.RingThickness
}

// Reach returns how far the rotor extends horizontally from its
// center: blade tips, or the ring outer edge when ringed, plus half a
// blade width of buffer. Layout solving keys off this.
func (p RotorParams) Reach() float32 {
	reach := p.HubRadius + p.Blade.Length
	if p.IncludeRing {
		reach = p.RingOuterRadius()
	}
	return reach + p.Blade.Width/2
}

// BuildRotor generates the combined rotor mesh: a capped hub cylinder
// at the origin, BladeCount blades instanced evenly around the rim,
// and the optional flat ring. The sub-meshes are merged into one flat
// buffer pair; there is no hierarchy in the output.
func BuildRotor(p RotorParams) (*mesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := mesh.Cylinder(p.HubRadius, p.HubHeight, hubRadialSegs)

	// One blade is built and instanced; all blades share geometry.
	blade, err := BuildBlade(p.Blade)
	if err != nil {
		return nil, err
	}
	step := 360 / float32(p.BladeCount)
	for i := 0; i < p.BladeCount; i++ {
		xf := geom.RotateY(float32(i) * step).Mul(geom.Translate(geom.V3(p.HubRadius, 0, 0)))
		m.Append(blade, xf)
	}

	if p.IncludeRing {
		ring := mesh.Ring(p.RingInnerRadius(), p.RingOuterRadius(), ringSegs)
		m.Append(ring, geom.Identity())
	}
	return m, nil
}
