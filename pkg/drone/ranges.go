// Package drone ties the part builders together: it samples a complete
// drone specification from a seeded random stream, solves the rotor
// layout, routes the arms, and assembles the named part meshes.
package drone

import (
	"fmt"

	"github.com/Boomstam/dronegen/pkg/geom"
)

// Ranges bounds every randomly sampled parameter. Each field is drawn
// exactly once per generation in a fixed order, so a given seed always
// produces the same drone for the same ranges.
type Ranges struct {
	// Body.
	CubeChance        float32    `json:"cubeChance" yaml:"cubeChance"`
	HubScale          geom.Range `json:"hubScale" yaml:"hubScale"` // drawn per axis: X, Y, Z
	HubTaper          geom.Range `json:"hubTaper" yaml:"hubTaper"`
	BackToFrontChance float32    `json:"backToFrontChance" yaml:"backToFrontChance"`

	// Rotor.
	BladeCount     geom.IntRange `json:"bladeCount" yaml:"bladeCount"`
	BladeLength    geom.Range    `json:"bladeLength" yaml:"bladeLength"`
	BladeWidth     geom.Range    `json:"bladeWidth" yaml:"bladeWidth"`
	BladeThickness geom.Range    `json:"bladeThickness" yaml:"bladeThickness"`
	BladeCurve     geom.Range    `json:"bladeCurve" yaml:"bladeCurve"`
	PetalShape     geom.Range    `json:"petalShape" yaml:"petalShape"`
	Twist          geom.Range    `json:"twist" yaml:"twist"`
	RotorHubRadius geom.Range    `json:"rotorHubRadius" yaml:"rotorHubRadius"`
	RotorHubHeight geom.Range    `json:"rotorHubHeight" yaml:"rotorHubHeight"`
	RingChance     float32       `json:"ringChance" yaml:"ringChance"`
	RingThickness  geom.Range    `json:"ringThickness" yaml:"ringThickness"`

	// Layout.
	RotorCounts    []int      `json:"rotorCounts" yaml:"rotorCounts"` // subset of {4, 6, 8}
	Distance       geom.Range `json:"distance" yaml:"distance"`
	VerticalOffset geom.Range `json:"verticalOffset" yaml:"verticalOffset"`
	Tilt           geom.Range `json:"tilt" yaml:"tilt"` // degrees
}

// DefaultRanges returns sampling ranges tuned to produce plausible
// quadcopter-scale drones around a meter across.
func DefaultRanges() Ranges {
	return Ranges{
		CubeChance:        0.5,
		HubScale:          geom.Range{Min: 0.8, Max: 2.0},
		HubTaper:          geom.Range{Min: 0, Max: 0.6},
		BackToFrontChance: 0.5,

		BladeCount:     geom.IntRange{Min: 2, Max: 5},
		BladeLength:    geom.Range{Min: 0.4, Max: 1.2},
		BladeWidth:     geom.Range{Min: 0.1, Max: 0.3},
		BladeThickness: geom.Range{Min: 0.02, Max: 0.06},
		BladeCurve:     geom.Range{Min: -1, Max: 1},
		PetalShape:     geom.Range{Min: 0, Max: 3},
		Twist:          geom.Range{Min: -1, Max: 1},
		RotorHubRadius: geom.Range{Min: 0.08, Max: 0.2},
		RotorHubHeight: geom.Range{Min: 0.1, Max: 0.25},
		RingChance:     0.5,
		RingThickness:  geom.Range{Min: 0.05, Max: 0.15},

		RotorCounts:    []int{4, 6, 8},
		Distance:       geom.Range{Min: 1.0, Max: 3.0},
		VerticalOffset: geom.Range{Min: -0.3, Max: 0.5},
		Tilt:           geom.Range{Min: -10, Max: 10},
	}
}

// Validate checks the ranges that the part builders cannot catch
// themselves: the rotor-count choice set and the chance parameters.
func (r Ranges) Validate() error {
	if len(r.RotorCounts) == 0 {
		return fmt.Errorf("%w: no rotor counts to choose from", geom.ErrInvalidParameter)
	}
	for _, n := range r.RotorCounts {
		if n != 4 && n != 6 && n != 8 {
			return fmt.Errorf("%w: rotor count %d not in {4,6,8}", geom.ErrInvalidParameter, n)
		}
	}
	chances := []struct {
		name string
		p    float32
	}{
		{"cubeChance", r.CubeChance},
		{"backToFrontChance", r.BackToFrontChance},
		{"ringChance", r.RingChance},
	}
	for _, c := range chances {
		if c.p < 0 || c.p > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", geom.ErrInvalidParameter, c.name, c.p)
		}
	}
	return nil
}
