package geom

import "github.com/chewxy/math32"

// TaperFactor returns the cross-section narrowing factor at normalized
// position t along a taper axis: 1 at the wide end (t=0), 1-taper at
// the narrow end (t=1).
func TaperFactor(t, taper float32) float32 {
	return Lerp(1, 1-taper, Clamp01(t))
}

// Bulge is the parabolic bump profile 4t(1-t): zero at both ends,
// one at the midpoint. Shared by the blade width profiles and the
// arm-routing vertical bow.
func Bulge(t float32) float32 {
	return 4 * t * (1 - t)
}

// TwistYZ rotates the (y, z) cross-section coordinates in place around
// the local X axis by angleRad radians.
func TwistYZ(y, z, angleRad float32) (float32, float32) {
	s, c := math32.Sincos(angleRad)
	return y*c - z*s, y*s + z*c
}
