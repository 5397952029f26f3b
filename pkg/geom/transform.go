package geom

import "github.com/chewxy/math32"

// Transform is a rigid affine transform: a 3×3 rotation matrix in
// row-major order plus a translation. It is applied to mesh vertices
// when instancing blades around a hub or sweeping arm segments, so no
// scene graph or shared-mesh ownership is needed.
type Transform struct {
	M [9]float32 // row-major rotation
	T Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{M: [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Translate returns a pure translation.
func Translate(v Vec3) Transform {
	t := Identity()
	t.T = v
	return t
}

// RotateX returns a rotation about the X axis by deg degrees.
func RotateX(deg float32) Transform {
	s, c := math32.Sincos(DegToRad(deg))
	return Transform{M: [9]float32{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}}
}

// RotateY returns a rotation about the Y axis by deg degrees.
func RotateY(deg float32) Transform {
	s, c := math32.Sincos(DegToRad(deg))
	return Transform{M: [9]float32{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}}
}

// RotateZ returns a rotation about the Z axis by deg degrees.
func RotateZ(deg float32) Transform {
	s, c := math32.Sincos(DegToRad(deg))
	return Transform{M: [9]float32{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}}
}

// Mul composes transforms: (a.Mul(b)).Apply(v) == a.Apply(b.Apply(v)),
// matching the rightmost-applied-first convention of matrix products.
func (a Transform) Mul(b Transform) Transform {
	var out Transform
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.M[r*3+c] = a.M[r*3]*b.M[c] + a.M[r*3+1]*b.M[3+c] + a.M[r*3+2]*b.M[6+c]
		}
	}
	out.T = a.rotate(b.T).Add(a.T)
	return out
}

func (a Transform) rotate(v Vec3) Vec3 {
	return Vec3{
		a.M[0]*v.X + a.M[1]*v.Y + a.M[2]*v.Z,
		a.M[3]*v.X + a.M[4]*v.Y + a.M[5]*v.Z,
		a.M[6]*v.X + a.M[7]*v.Y + a.M[8]*v.Z,
	}
}

// Apply transforms the point v.
func (a Transform) Apply(v Vec3) Vec3 {
	return a.rotate(v).Add(a.T)
}

// RotationFromYTo returns the rotation that maps the +Y axis onto the
// given direction (which need not be normalized). Arm segments are
// generated along +Y and then rotated onto their path direction.
func RotationFromYTo(dir Vec3) Transform {
	d := dir.Normalized()
	up := Vec3{0, 1, 0}
	c := up.Dot(d)
	if c > 1-1e-6 {
		return Identity()
	}
	if c < -1+1e-6 {
		// Opposite direction: rotate half a turn about X.
		return RotateX(180)
	}
	axis := up.Cross(d)
	s := axis.Length()
	axis = axis.Scale(1 / s)
	// Rodrigues rotation matrix from axis, sin and cos.
	x, y, z := axis.X, axis.Y, axis.Z
	ic := 1 - c
	return Transform{M: [9]float32{
		c + x*x*ic, x*y*ic - z*s, x*z*ic + y*s,
		y*x*ic + z*s, c + y*y*ic, y*z*ic - x*s,
		z*x*ic - y*s, z*y*ic + x*s, c + z*z*ic,
	}}
}
