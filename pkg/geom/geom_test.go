package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func vecNear(a, b Vec3) bool {
	return math32.Abs(a.X-b.X) < eps && math32.Abs(a.Y-b.Y) < eps && math32.Abs(a.Z-b.Z) < eps
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0,10,0.5) = %v, want 5", got)
	}
	if got := Lerp(2, 2, 0.7); got != 2 {
		t.Errorf("Lerp(2,2,0.7) = %v, want 2", got)
	}
	if got := Clamp01(-0.5); got != 0 {
		t.Errorf("Clamp01(-0.5) = %v, want 0", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Errorf("Clamp01(1.5) = %v, want 1", got)
	}
}

func TestRangeAt(t *testing.T) {
	r := Range{Min: -1, Max: 3}
	if got := r.At(0); got != -1 {
		t.Errorf("At(0) = %v, want -1", got)
	}
	if got := r.At(1); got != 3 {
		t.Errorf("At(1) = %v, want 3", got)
	}
	if got := r.At(0.5); got != 1 {
		t.Errorf("At(0.5) = %v, want 1", got)
	}
	if !r.Contains(0) || r.Contains(4) {
		t.Error("Contains misbehaves at interior/exterior points")
	}
}

func TestTaperFactor(t *testing.T) {
	tests := []struct {
		name     string
		t, taper float32
		want     float32
	}{
		{"wide end untouched", 0, 0.8, 1},
		{"narrow end fully tapered", 1, 0.8, 0.2},
		{"midpoint", 0.5, 0.5, 0.75},
		{"zero taper is identity", 1, 0, 1},
		{"t clamped above 1", 2, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaperFactor(tt.t, tt.taper)
			if math32.Abs(got-tt.want) > eps {
				t.Errorf("TaperFactor(%v, %v) = %v, want %v", tt.t, tt.taper, got, tt.want)
			}
		})
	}
}

func TestBulge(t *testing.T) {
	if got := Bulge(0); got != 0 {
		t.Errorf("Bulge(0) = %v, want 0", got)
	}
	if got := Bulge(1); got != 0 {
		t.Errorf("Bulge(1) = %v, want 0", got)
	}
	if got := Bulge(0.5); got != 1 {
		t.Errorf("Bulge(0.5) = %v, want 1", got)
	}
}

func TestVec3Basics(t *testing.T) {
	v := V3(3, 4, 0)
	if v.Length() != 5 {
		t.Errorf("Length = %v, want 5", v.Length())
	}
	n := v.Normalized()
	if math32.Abs(n.Length()-1) > eps {
		t.Errorf("Normalized length = %v, want 1", n.Length())
	}
	if got := V3(1, 2, 3).Dot(V3(4, 5, 6)); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); !vecNear(got, V3(0, 0, 1)) {
		t.Errorf("Cross = %+v, want (0,0,1)", got)
	}
	if got := V3(2, 5, 3).MaxComponent(); got != 5 {
		t.Errorf("MaxComponent = %v, want 5", got)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		xf   Transform
		in   Vec3
		want Vec3
	}{
		{"rotateY 90 sends +X to -Z", RotateY(90), V3(1, 0, 0), V3(0, 0, -1)},
		{"rotateY -90 sends +X to +Z", RotateY(-90), V3(1, 0, 0), V3(0, 0, 1)},
		{"rotateX 90 sends +Y to +Z", RotateX(90), V3(0, 1, 0), V3(0, 0, 1)},
		{"rotateZ 90 sends +X to +Y", RotateZ(90), V3(1, 0, 0), V3(0, 1, 0)},
		{"rotation preserves axis", RotateY(37), V3(0, 2, 0), V3(0, 2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.xf.Apply(tt.in)
			if !vecNear(got, tt.want) {
				t.Errorf("Apply(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMulComposition(t *testing.T) {
	a := Translate(V3(1, 2, 3))
	b := RotateY(90)
	v := V3(1, 0, 0)

	got := a.Mul(b).Apply(v)
	want := a.Apply(b.Apply(v))
	if !vecNear(got, want) {
		t.Errorf("composed apply = %+v, want %+v", got, want)
	}
	if !vecNear(got, V3(1, 2, 2)) {
		t.Errorf("composed apply = %+v, want (1,2,2)", got)
	}
}

func TestRotationFromYTo(t *testing.T) {
	tests := []struct {
		name string
		dir  Vec3
	}{
		{"along +X", V3(1, 0, 0)},
		{"along -Z", V3(0, 0, -1)},
		{"diagonal", V3(1, 1, 1)},
		{"mostly up", V3(0.1, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xf := RotationFromYTo(tt.dir)
			got := xf.Apply(V3(0, 1, 0))
			want := tt.dir.Normalized()
			if !vecNear(got, want) {
				t.Errorf("rotated +Y = %+v, want %+v", got, want)
			}
			// Rigid: lengths are preserved.
			if l := xf.Apply(V3(0, 3, 0)).Length(); math32.Abs(l-3) > 1e-4 {
				t.Errorf("length after rotation = %v, want 3", l)
			}
		})
	}
}

func TestRotationFromYToParallel(t *testing.T) {
	up := RotationFromYTo(V3(0, 5, 0))
	if !vecNear(up.Apply(V3(0, 1, 0)), V3(0, 1, 0)) {
		t.Error("same-direction case should be identity")
	}
	down := RotationFromYTo(V3(0, -2, 0))
	if !vecNear(down.Apply(V3(0, 1, 0)), V3(0, -1, 0)) {
		t.Error("opposite-direction case should flip Y")
	}
}

func TestTwistYZ(t *testing.T) {
	y, z := TwistYZ(1, 0, math32.Pi/2)
	if math32.Abs(y) > eps || math32.Abs(z-1) > eps {
		t.Errorf("quarter twist of (1,0) = (%v,%v), want (0,1)", y, z)
	}
	y, z = TwistYZ(0.5, -0.25, 0)
	if y != 0.5 || z != -0.25 {
		t.Errorf("zero twist should be identity, got (%v,%v)", y, z)
	}
}
