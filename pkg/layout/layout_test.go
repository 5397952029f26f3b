package layout

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Boomstam/dronegen/pkg/geom"
	"github.com/Boomstam/dronegen/pkg/rng"
)

func validParams() Params {
	return Params{
		RotorCount:          4,
		BodyDim:             1.2,
		RotorReach:          1.15,
		DistanceRange:       geom.Range{Min: 1.0, Max: 3.0},
		VerticalOffsetRange: geom.Range{Min: -0.3, Max: 0.5},
		TiltRange:           geom.Range{Min: -10, Max: 10},
	}
}

func TestMinSafeRadiusQuad(t *testing.T) {
	// For 4 rotors of reach 1.15 around a 1.0 body, the hub clearance
	// floor (0.5+1.15+0.3) dominates the pair spacing floor (~1.909).
	got := MinSafeRadius(4, 1.0, 1.15)
	if math32.Abs(got-1.95) > 1e-4 {
		t.Errorf("MinSafeRadius = %v, want 1.95", got)
	}
	// Widening the body raises the floor by half the difference.
	if got := MinSafeRadius(4, 1.2, 1.15); math32.Abs(got-2.05) > 1e-4 {
		t.Errorf("MinSafeRadius = %v, want 2.05", got)
	}
}

func TestMinSafeRadiusSpacingDominates(t *testing.T) {
	// With 8 rotors the chord constraint takes over: the same pair
	// distance must fit a much smaller polygon angle.
	reach, body := float32(1.0), float32(0.5)
	pair := 2*reach + 0.4
	wantSpacing := pair / (2 * math32.Sin(math32.Pi/8))
	got := MinSafeRadius(8, body, reach)
	if math32.Abs(got-wantSpacing) > 1e-4 {
		t.Errorf("MinSafeRadius = %v, want %v", got, wantSpacing)
	}
}

func TestSolvePlacesRotorsEvenly(t *testing.T) {
	var s Solver
	sol, err := s.Solve(validParams(), rng.New(1))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sol.Placements) != 4 {
		t.Fatalf("placements = %d, want 4", len(sol.Placements))
	}
	for i, pl := range sol.Placements {
		wantYaw := float32(i) * 90
		if math32.Abs(pl.YawDeg-wantYaw) > 1e-4 {
			t.Errorf("rotor %d yaw = %v, want %v", i, pl.YawDeg, wantYaw)
		}
		// All rotors share the solved radius and height.
		r := math32.Sqrt(pl.Position.X*pl.Position.X + pl.Position.Z*pl.Position.Z)
		if math32.Abs(r-sol.Radius) > 1e-4 {
			t.Errorf("rotor %d radius = %v, want %v", i, r, sol.Radius)
		}
		if pl.Position.Y != sol.VerticalOffset {
			t.Errorf("rotor %d height = %v, want %v", i, pl.Position.Y, sol.VerticalOffset)
		}
	}
}

func TestSolvePairwiseSeparation(t *testing.T) {
	// Property: over many draws, every rotor pair keeps at least
	// 2*reach+0.4 center distance, whatever the configured range says.
	var s Solver
	p := validParams()
	minPair := 2*p.RotorReach + 0.4

	for seed := int64(0); seed < 1000; seed++ {
		sol, err := s.Solve(p, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i := 0; i < len(sol.Placements); i++ {
			for j := i + 1; j < len(sol.Placements); j++ {
				d := sol.Placements[i].Position.DistanceTo(sol.Placements[j].Position)
				if d < minPair-1e-4 {
					t.Fatalf("seed %d: rotors %d,%d only %v apart, need %v", seed, i, j, d, minPair)
				}
			}
		}
	}
}

func TestSolveWidensNarrowRange(t *testing.T) {
	var s Solver
	p := validParams()
	// Configured max below the safety floor: the floor wins.
	p.DistanceRange = geom.Range{Min: 0.5, Max: 1.0}

	sol, err := s.Solve(p, rng.New(3))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Radius < sol.MinSafeRadius-1e-4 {
		t.Errorf("radius %v below safety floor %v", sol.Radius, sol.MinSafeRadius)
	}
}

func TestSolveDrawsWithinRanges(t *testing.T) {
	var s Solver
	p := validParams()
	for seed := int64(0); seed < 100; seed++ {
		sol, err := s.Solve(p, rng.New(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !p.VerticalOffsetRange.Contains(sol.VerticalOffset) {
			t.Fatalf("seed %d: offset %v outside range", seed, sol.VerticalOffset)
		}
		if !p.TiltRange.Contains(sol.TiltDeg) {
			t.Fatalf("seed %d: tilt %v outside range", seed, sol.TiltDeg)
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	var s Solver
	a, err := s.Solve(validParams(), rng.New(99))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	b, err := s.Solve(validParams(), rng.New(99))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if a.Radius != b.Radius || a.VerticalOffset != b.VerticalOffset || a.TiltDeg != b.TiltDeg {
		t.Error("equal seeds should produce equal solutions")
	}
}

func TestSolveErrors(t *testing.T) {
	var s Solver

	p := validParams()
	p.RotorCount = 0
	if _, err := s.Solve(p, rng.New(1)); !errors.Is(err, geom.ErrMissingCollaborator) {
		t.Errorf("zero rotors: got %v, want ErrMissingCollaborator", err)
	}

	p = validParams()
	p.RotorCount = 5
	if _, err := s.Solve(p, rng.New(1)); !errors.Is(err, geom.ErrInvalidParameter) {
		t.Errorf("odd count: got %v, want ErrInvalidParameter", err)
	}

	p = validParams()
	p.RotorReach = 0
	if _, err := s.Solve(p, rng.New(1)); !errors.Is(err, geom.ErrInvalidParameter) {
		t.Errorf("zero reach: got %v, want ErrInvalidParameter", err)
	}
}

func TestPlacementTransform(t *testing.T) {
	pl := Placement{Position: geom.V3(2, 0.3, 0), YawDeg: 0, TiltDeg: 0}
	got := pl.Transform().Apply(geom.V3(0, 0, 0))
	if got.DistanceTo(pl.Position) > 1e-5 {
		t.Errorf("origin maps to %+v, want %+v", got, pl.Position)
	}
}
