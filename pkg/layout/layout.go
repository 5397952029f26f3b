// Package layout computes a collision-free radial placement of rotors
// around the drone body. Placement is symmetric: one shared radius,
// vertical offset and tilt for every rotor in a layout, drawn once
// from the random stream in a fixed order.
package layout

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/rng"
)

const (
	// pairSafetyBuffer is the extra center-to-center distance added on
	// top of twice the rotor reach.
	pairSafetyBuffer = 0.4
	// hubClearanceBuffer keeps rotors clear of the body surface.
	hubClearanceBuffer = 0.3
)

// Params configures a layout solve.
type Params struct {
	RotorCount          int        `json:"rotorCount" yaml:"rotorCount"` // {4, 6, 8}
	BodyDim             float32    `json:"bodyDim" yaml:"bodyDim"`       // body bounding dimension
	RotorReach          float32    `json:"rotorReach" yaml:"rotorReach"`
	DistanceRange       geom.Range `json:"distanceRange" yaml:"distanceRange"`
	VerticalOffsetRange geom.Range `json:"verticalOffsetRange" yaml:"verticalOffsetRange"`
	TiltRange           geom.Range `json:"tiltRange" yaml:"tiltRange"` // degrees
}

// Placement is one rotor's resolved position and orientation.
type Placement struct {
	Position geom.Vec3 `json:"position"`
	YawDeg   float32   `json:"yawDeg"`  // radial angle around the body
	TiltDeg  float32   `json:"tiltDeg"` // pitch about the local lateral axis
}

// Transform returns the placement as a rigid transform: tilt about the
// local lateral axis, yawed into position, translated to Position.
func (p Placement) Transform() geom.Transform {
	return geom.Translate(p.Position).Mul(geom.RotateY(-p.YawDeg)).Mul(geom.RotateX(p.TiltDeg))
}

// Solution is the result of a layout solve, including the shared
// resolved values so callers (and tests) can see how the safety floor
// interacted with the configured range.
type Solution struct {
	Placements     []Placement `json:"placements"`
	Radius         float32     `json:"radius"`
	VerticalOffset float32     `json:"verticalOffset"`
	TiltDeg        float32     `json:"tiltDeg"`
	MinSafeRadius  float32     `json:"minSafeRadius"`
}

// Solver computes rotor layouts. The zero value is usable; Logger
// defaults to a no-op.
type Solver struct {
	Logger *zap.Logger
}

// MinSafeRadius returns the smallest placement radius that keeps every
// rotor pair at least 2·reach+buffer apart (regular-polygon chord) and
// every rotor clear of the body hull.
func MinSafeRadius(rotorCount int, bodyDim, reach float32) float32 {
	minPairDist := 2*reach + pairSafetyBuffer
	rSpacing := minPairDist / (2 * math32.Sin(math32.Pi/float32(rotorCount)))
	rHub := bodyDim/2 + reach + hubClearanceBuffer
	return math32.Max(rSpacing, rHub)
}

// Solve draws radius, vertical offset and tilt (in that order) from
// the stream and places RotorCount rotors evenly around the vertical
// axis. When the safety floor exceeds the configured distance maximum,
// the maximum is widened to the floor: the configured range is
// overridden rather than the safety constraint violated, and the
// override is logged.
func (s *Solver) Solve(p Params, rs *rng.Stream) (*Solution, error) {
	if p.RotorCount == 0 {
		return nil, fmt.Errorf("%w: no rotors to lay out", geom.ErrMissingCollaborator)
	}
	if p.RotorCount != 4 && p.RotorCount != 6 && p.RotorCount != 8 {
		return nil, fmt.Errorf("%w: rotor count %d not in {4,6,8}", geom.ErrInvalidParameter, p.RotorCount)
	}
	if p.BodyDim <= 0 || p.RotorReach <= 0 {
		return nil, fmt.Errorf("%w: body dimension and rotor reach must be positive, got %v/%v",
			geom.ErrInvalidParameter, p.BodyDim, p.RotorReach)
	}

	minSafe := MinSafeRadius(p.RotorCount, p.BodyDim, p.RotorReach)
	effMax := p.DistanceRange.Max
	if minSafe > effMax {
		s.logger().Warn("rotor spacing floor exceeds configured distance max; widening",
			zap.Float32("minSafeRadius", minSafe),
			zap.Float32("configuredMax", p.DistanceRange.Max),
		)
		effMax = minSafe
	}

	sol := &Solution{MinSafeRadius: minSafe}
	sol.Radius = geom.Lerp(minSafe, effMax, rs.Float())
	sol.VerticalOffset = rs.InRange(p.VerticalOffsetRange)
	sol.TiltDeg = rs.InRange(p.TiltRange)

	for i := 0; i < p.RotorCount; i++ {
		yaw := float32(i) * 360 / float32(p.RotorCount)
		theta := geom.DegToRad(yaw)
		sol.Placements = append(sol.Placements, Placement{
			Position: geom.V3(
				sol.Radius*math32.Cos(theta),
				sol.VerticalOffset,
				sol.Radius*math32.Sin(theta),
			),
			YawDeg:  yaw,
			TiltDeg: sol.TiltDeg,
		})
	}
	return sol, nil
}

func (s *Solver) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
