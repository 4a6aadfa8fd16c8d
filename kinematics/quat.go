package kinematics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Quat is a rotation quaternion. Real holds the scalar part; Imag, Jmag and
// Kmag hold the x, y and z parts.
type Quat quat.Number

// Identity returns the no-rotation quaternion.
func Identity() Quat {
	return Quat{Real: 1}
}

// FromAxisAngle returns a rotation of angle radians about axis.
// A zero axis or zero angle yields the identity.
func FromAxisAngle(axis Vec, angle float64) Quat {
	if angle == 0 || r3.Norm(axis) == 0 {
		return Identity()
	}
	return Quat(r3.NewRotation(angle, axis))
}

// FromEuler builds a quaternion from XYZ-ordered Euler angles.
func FromEuler(e Vec) Quat {
	s1, c1 := math.Sincos(e.X / 2)
	s2, c2 := math.Sincos(e.Y / 2)
	s3, c3 := math.Sincos(e.Z / 2)
	return Quat{
		Real: c1*c2*c3 - s1*s2*s3,
		Imag: s1*c2*c3 + c1*s2*s3,
		Jmag: c1*s2*c3 - s1*c2*s3,
		Kmag: c1*c2*s3 + s1*s2*c3,
	}
}

// Mul returns q*p, the rotation p followed by q.
func (q Quat) Mul(p Quat) Quat {
	return Quat(quat.Mul(quat.Number(q), quat.Number(p)))
}

// Normalize rescales q to unit length. A zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	n := quat.Abs(quat.Number(q))
	if n == 0 || math.IsNaN(n) {
		return Identity()
	}
	return Quat(quat.Scale(1/n, quat.Number(q)))
}

// Conj returns the conjugate, which is the inverse rotation for unit quaternions.
func (q Quat) Conj() Quat {
	return Quat(quat.Conj(quat.Number(q)))
}

// Len returns the quaternion norm.
func (q Quat) Len() float64 {
	return quat.Abs(quat.Number(q))
}

// Dot returns the 4D dot product of q and p.
func (q Quat) Dot(p Quat) float64 {
	return q.Real*p.Real + q.Imag*p.Imag + q.Jmag*p.Jmag + q.Kmag*p.Kmag
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec) Vec {
	return r3.Rotation(q).Rotate(v)
}

// Forward returns the local +Z axis in world space.
func (q Quat) Forward() Vec { return q.Rotate(AxisZ) }

// Right returns the local +X axis in world space.
func (q Quat) Right() Vec { return q.Rotate(AxisX) }

// Up returns the local +Y axis in world space.
func (q Quat) Up() Vec { return q.Rotate(AxisY) }

// AxisAngle decomposes q into a unit axis and an angle in radians. The
// identity yields AxisY and zero.
func (q Quat) AxisAngle() (Vec, float64) {
	q = q.Normalize()
	if q.Real < 0 {
		q = Quat{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
	}
	s := math.Sqrt(1 - q.Real*q.Real)
	if s < 1e-9 {
		return AxisY, 0
	}
	return V(q.Imag/s, q.Jmag/s, q.Kmag/s), 2 * math.Acos(Clamp(q.Real, -1, 1))
}

// AngleTo returns the angle in radians between two orientations.
func (q Quat) AngleTo(p Quat) float64 {
	d := math.Abs(q.Normalize().Dot(p.Normalize()))
	return 2 * math.Acos(Clamp(d, -1, 1))
}

// Slerp spherically interpolates from a toward b by fraction t in [0,1],
// always taking the shorter arc.
func Slerp(a, b Quat, t float64) Quat {
	t = Clamp(t, 0, 1)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}

	cosHalf := a.Dot(b)
	if cosHalf < 0 {
		b = Quat(quat.Scale(-1, quat.Number(b)))
		cosHalf = -cosHalf
	}
	if cosHalf >= 1 {
		return a
	}

	sqrSin := 1 - cosHalf*cosHalf
	if sqrSin <= 1e-12 {
		s := 1 - t
		return Quat{
			Real: s*a.Real + t*b.Real,
			Imag: s*a.Imag + t*b.Imag,
			Jmag: s*a.Jmag + t*b.Jmag,
			Kmag: s*a.Kmag + t*b.Kmag,
		}.Normalize()
	}

	sinHalf := math.Sqrt(sqrSin)
	half := math.Atan2(sinHalf, cosHalf)
	ra := math.Sin((1-t)*half) / sinHalf
	rb := math.Sin(t*half) / sinHalf
	return Quat{
		Real: a.Real*ra + b.Real*rb,
		Imag: a.Imag*ra + b.Imag*rb,
		Jmag: a.Jmag*ra + b.Jmag*rb,
		Kmag: a.Kmag*ra + b.Kmag*rb,
	}
}

// LookRotation returns the orientation whose +Z axis points along forward
// with +Y as close to up as possible. When forward is parallel to up, world X
// is used to build the basis instead.
func LookRotation(forward, up Vec) Quat {
	z := Normalize(forward)
	if Length(z) == 0 {
		return Identity()
	}
	x := Cross(up, z)
	if Length(x) < 1e-9 {
		x = Cross(AxisX, z)
		if Length(x) < 1e-9 {
			x = Cross(AxisZ, z)
		}
	}
	x = Normalize(x)
	y := Cross(z, x)
	return fromBasis(x, y, z)
}

// fromBasis converts an orthonormal basis (the columns of a rotation matrix)
// into a quaternion.
func fromBasis(x, y, z Vec) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{Real: 0.25 / s, Imag: (m21 - m12) * s, Jmag: (m02 - m20) * s, Kmag: (m10 - m01) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{Real: (m21 - m12) / s, Imag: 0.25 * s, Jmag: (m01 + m10) / s, Kmag: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{Real: (m02 - m20) / s, Imag: (m01 + m10) / s, Jmag: 0.25 * s, Kmag: (m12 + m21) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{Real: (m10 - m01) / s, Imag: (m02 + m20) / s, Jmag: (m12 + m21) / s, Kmag: 0.25 * s}
	}
	return q.Normalize()
}

// YawDegrees returns the heading of the forward axis around world Y in [0, 360).
func (q Quat) YawDegrees() float64 {
	f := q.Forward()
	deg := math.Atan2(f.X, f.Z) * 180 / math.Pi
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
