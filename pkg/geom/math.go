package geom

import "github.com/chewxy/math32"

// Lerp linearly interpolates from a to b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the range [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Range is an inclusive [Min, Max] interval used for parameter sampling.
type Range struct {
	Min float32 `json:"min" yaml:"min"`
	Max float32 `json:"max" yaml:"max"`
}

// At interpolates the range at t in [0,1].
func (r Range) At(t float32) float32 {
	return Lerp(r.Min, r.Max, t)
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}
