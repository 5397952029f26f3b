package drone

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Boomstam/dronegen/pkg/arm"
	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/layout"
	"github.com/Boomstam/dronegen/pkg/mesh"
	"github.com/Boomstam/dronegen/pkg/rng"
	"github.com/Boomstam/dronegen/pkg/shape"
)

// armRingClearance is the extra gap routed arms keep from ring edges.
const armRingClearance = 0.05

// Spec is a fully resolved drone: every parameter the builders need,
// with no randomness left. Sampling produces a Spec; building a Spec
// is deterministic, so specs can be stored and rebuilt exactly.
type Spec struct {
	Hub        shape.HubParams   `json:"hub"`
	Rotor      shape.RotorParams `json:"rotor"`
	RotorCount int               `json:"rotorCount"`
	Layout     layout.Params     `json:"layout"`
	Arm        arm.Options       `json:"arm"`
}

// Part is one named assembly component with world-space geometry.
type Part struct {
	ID   string     `json:"id"` // stable within an assembly, fresh per build
	Name string     `json:"name"`
	Mesh *mesh.Mesh `json:"mesh"`
}

// Assembly is a built drone: the body, each placed rotor, and each
// arm, all in world space, plus the solved layout for inspection.
type Assembly struct {
	Seed   int64            `json:"seed"`
	Spec   Spec             `json:"spec"`
	Layout *layout.Solution `json:"layout"`
	Parts  []Part           `json:"parts"`
}

// Combined merges every part into a single mesh.
func (a *Assembly) Combined() *mesh.Mesh {
	parts := make([]*mesh.Mesh, 0, len(a.Parts))
	for _, p := range a.Parts {
		parts = append(parts, p.Mesh)
	}
	m := mesh.Merge(parts...)
	m.PartName = "drone"
	return m
}

// Generator samples and builds drones. The zero value uses
// DefaultRanges, default arm options and a no-op logger.
type Generator struct {
	Ranges Ranges
	Arm    arm.Options
	Logger *zap.Logger
}

// DefaultArmOptions returns the arm tube settings used when the
// generator's Arm field is left zero.
func DefaultArmOptions() arm.Options {
	return arm.Options{
		Thickness:   0.08,
		Shape:       arm.Cylindrical,
		AutoScale:   true,
		MaxDistance: 3.0,
	}
}

// Generate samples a Spec from the seed and builds it. Equal seeds
// with equal ranges yield equal assemblies, part for part.
func (g *Generator) Generate(seed int64) (*Assembly, error) {
	spec, rs, err := g.Sample(seed)
	if err != nil {
		return nil, err
	}
	asm, err := g.Build(spec, rs)
	if err != nil {
		return nil, err
	}
	asm.Seed = seed
	g.logger().Info("drone generated",
		zap.Int64("seed", seed),
		zap.Int("rotorCount", spec.RotorCount),
		zap.Stringer("bodyShape", spec.Hub.BaseShape),
		zap.Stringer("bladeShape", spec.Rotor.Blade.Shape),
		zap.Bool("ring", spec.Rotor.IncludeRing),
	)
	return asm, nil
}

// Sample draws every parameter of a Spec from a stream seeded with
// seed. The draw order is fixed: body shape, scale X/Y/Z, taper, taper
// direction; then blade count, length, width, thickness, shape, curve,
// petal, twist, rotor hub radius, hub height, ring flag, ring
// thickness; then rotor count. The returned stream is positioned after
// those draws so the layout solve can continue it; layout distance,
// vertical offset and tilt come next on the same stream.
func (g *Generator) Sample(seed int64) (Spec, *rng.Stream, error) {
	r := g.ranges()
	if err := r.Validate(); err != nil {
		return Spec{}, nil, err
	}
	rs := rng.New(seed)

	var spec Spec
	spec.Hub.BaseShape = shape.Sphere
	if rs.Chance(r.CubeChance) {
		spec.Hub.BaseShape = shape.Cube
	}
	spec.Hub.Scale = geom.V3(rs.InRange(r.HubScale), rs.InRange(r.HubScale), rs.InRange(r.HubScale))
	spec.Hub.Taper = rs.InRange(r.HubTaper)
	spec.Hub.TaperDirection = shape.BottomToTop
	if rs.Chance(r.BackToFrontChance) {
		spec.Hub.TaperDirection = shape.BackToFront
	}

	spec.Rotor.BladeCount = rs.IntInRange(r.BladeCount)
	spec.Rotor.Blade.Length = rs.InRange(r.BladeLength)
	spec.Rotor.Blade.Width = rs.InRange(r.BladeWidth)
	spec.Rotor.Blade.Thickness = rs.InRange(r.BladeThickness)
	spec.Rotor.Blade.Shape = shape.BladeShape(rs.IntInRange(geom.IntRange{Min: 0, Max: 2}))
	spec.Rotor.Blade.CurveAmount = rs.InRange(r.BladeCurve)
	spec.Rotor.Blade.PetalShape = rs.InRange(r.PetalShape)
	spec.Rotor.Blade.Twist = rs.InRange(r.Twist)
	spec.Rotor.HubRadius = rs.InRange(r.RotorHubRadius)
	spec.Rotor.HubHeight = rs.InRange(r.RotorHubHeight)
	spec.Rotor.IncludeRing = rs.Chance(r.RingChance)
	spec.Rotor.RingThickness = rs.InRange(r.RingThickness)

	spec.RotorCount = rs.Pick(r.RotorCounts)
	spec.Layout = layout.Params{
		RotorCount:          spec.RotorCount,
		BodyDim:             spec.Hub.Scale.MaxComponent(),
		RotorReach:          spec.Rotor.Reach(),
		DistanceRange:       r.Distance,
		VerticalOffsetRange: r.VerticalOffset,
		TiltRange:           r.Tilt,
	}
	spec.Arm = g.armOptions()
	return spec, rs, nil
}

// Relayout recomputes the derived layout parameters from the current
// hub and rotor parameters. Call it after overriding fields of a
// sampled spec, before building.
func (s *Spec) Relayout() {
	s.Layout.RotorCount = s.RotorCount
	s.Layout.BodyDim = s.Hub.Scale.MaxComponent()
	s.Layout.RotorReach = s.Rotor.Reach()
}

// Build constructs the world-space assembly for a resolved spec,
// drawing the three layout values from rs. Pass a stream that has
// already produced the spec's draws to reproduce a Generate call, or a
// fresh one to rebuild a stored spec.
func (g *Generator) Build(spec Spec, rs *rng.Stream) (*Assembly, error) {
	body, err := shape.BuildHub(spec.Hub)
	if err != nil {
		return nil, fmt.Errorf("build body: %w", err)
	}
	body.PartName = "body"

	rotor, err := shape.BuildRotor(spec.Rotor)
	if err != nil {
		return nil, fmt.Errorf("build rotor: %w", err)
	}

	solver := layout.Solver{Logger: g.logger()}
	sol, err := solver.Solve(spec.Layout, rs)
	if err != nil {
		return nil, fmt.Errorf("solve layout: %w", err)
	}

	asm := &Assembly{Spec: spec, Layout: sol}
	asm.Parts = append(asm.Parts, Part{ID: uuid.NewString(), Name: "body", Mesh: body})

	for i, pl := range sol.Placements {
		placed := &mesh.Mesh{PartName: fmt.Sprintf("rotor-%d", i)}
		placed.Append(rotor, pl.Transform())
		asm.Parts = append(asm.Parts, Part{ID: uuid.NewString(), Name: placed.PartName, Mesh: placed})

		armMesh, err := g.buildArm(spec, pl, i)
		if err != nil {
			return nil, fmt.Errorf("build arm %d: %w", i, err)
		}
		asm.Parts = append(asm.Parts, Part{ID: uuid.NewString(), Name: armMesh.PartName, Mesh: armMesh})
	}
	return asm, nil
}

// buildArm routes and extrudes the arm from the body surface to one
// rotor's hub underside.
func (g *Generator) buildArm(spec Spec, pl layout.Placement, i int) (*mesh.Mesh, error) {
	bodyAnchor := shape.SurfacePoint(spec.Hub, pl.Position)
	rotorAnchor := pl.Position.Sub(geom.V3(0, spec.Rotor.HubHeight/2, 0))

	var ring *arm.RingGeometry
	if spec.Rotor.IncludeRing {
		ring = &arm.RingGeometry{
			Center:      pl.Position,
			InnerRadius: spec.Rotor.RingInnerRadius(),
			OuterRadius: spec.Rotor.RingOuterRadius(),
			Clearance:   armRingClearance,
		}
	}
	path := arm.RouteArm(bodyAnchor, rotorAnchor, ring)

	m, err := arm.BuildArmMesh(path, spec.Arm)
	if err != nil {
		return nil, err
	}
	m.PartName = fmt.Sprintf("arm-%d", i)
	return m, nil
}

func (g *Generator) ranges() Ranges {
	if len(g.Ranges.RotorCounts) == 0 {
		return DefaultRanges()
	}
	return g.Ranges
}

func (g *Generator) armOptions() arm.Options {
	if g.Arm == (arm.Options{}) {
		return DefaultArmOptions()
	}
	return g.Arm
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
