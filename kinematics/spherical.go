package kinematics

import "math"

// Spherical holds a point in spherical coordinates around the world Y axis.
// Phi is the polar angle from +Y, Theta the azimuth measured from +Z toward +X.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SphericalFromVec converts a Cartesian offset into spherical coordinates.
func SphericalFromVec(v Vec) Spherical {
	r := Length(v)
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X, v.Z),
		Phi:    math.Acos(Clamp(v.Y/r, -1, 1)),
	}
}

// Vec converts back to a Cartesian offset.
func (s Spherical) Vec() Vec {
	sinPhi := math.Sin(s.Phi) * s.Radius
	return Vec{
		X: sinPhi * math.Sin(s.Theta),
		Y: math.Cos(s.Phi) * s.Radius,
		Z: sinPhi * math.Cos(s.Theta),
	}
}

// ClampPolar keeps Phi inside [eps, π-eps] so the offset never lines up with
// the world up axis.
func (s Spherical) ClampPolar(eps float64) Spherical {
	s.Phi = Clamp(s.Phi, eps, math.Pi-eps)
	return s
}

// Ray is a half-line used for picking.
type Ray struct {
	Origin Vec
	Dir    Vec
}

// IntersectSphere returns the distance along the ray to the first hit on the
// sphere, or false when the ray misses or the sphere lies behind the origin.
func (r Ray) IntersectSphere(center Vec, radius float64) (float64, bool) {
	dir := Normalize(r.Dir)
	oc := Sub(r.Origin, center)
	b := Dot(oc, dir)
	c := Dot(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
