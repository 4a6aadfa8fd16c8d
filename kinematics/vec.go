// Package kinematics provides the vector, quaternion and spherical-coordinate
// helpers shared by the flight, fleet and explosion simulations.
//
// Vectors are gonum r3 vectors; quaternions wrap gonum's quat.Number so the
// r3 rotation machinery can be used directly.
package kinematics

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3D world-space vector.
type Vec = r3.Vec

// Vec2 is a 2D screen-space or radar-space vector.
type Vec2 = r2.Vec

// Axis unit vectors.
var (
	AxisX = Vec{X: 1}
	AxisY = Vec{Y: 1}
	AxisZ = Vec{Z: 1}
)

// V is shorthand for constructing a Vec.
func V(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Add returns a+b.
func Add(a, b Vec) Vec { return r3.Add(a, b) }

// Sub returns a-b.
func Sub(a, b Vec) Vec { return r3.Sub(a, b) }

// Scale returns v*f.
func Scale(v Vec, f float64) Vec { return r3.Scale(f, v) }

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 { return r3.Dot(a, b) }

// Cross returns the cross product a×b.
func Cross(a, b Vec) Vec { return r3.Cross(a, b) }

// Length returns |v|.
func Length(v Vec) float64 { return r3.Norm(v) }

// Distance returns |a-b|.
func Distance(a, b Vec) float64 { return r3.Norm(r3.Sub(a, b)) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func Normalize(v Vec) Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	return r3.Scale(1/n, v)
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b Vec, t float64) Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// LerpScalar moves a toward b by fraction t.
func LerpScalar(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ApproxEqual reports whether a and b are within eps on every axis.
func ApproxEqual(a, b Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// RandomUnit returns a direction uniformly distributed over the sphere.
// The polar angle is sampled through acos so directions do not cluster at the poles.
func RandomUnit(rng *rand.Rand) Vec {
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(rng.Float64()*2 - 1)
	sinPhi := math.Sin(phi)
	return Vec{
		X: sinPhi * math.Cos(theta),
		Y: sinPhi * math.Sin(theta),
		Z: math.Cos(phi),
	}
}

// RandomCube returns a vector with each component uniform in [-half, half].
func RandomCube(rng *rand.Rand, half float64) Vec {
	return Vec{
		X: (rng.Float64()*2 - 1) * half,
		Y: (rng.Float64()*2 - 1) * half,
		Z: (rng.Float64()*2 - 1) * half,
	}
}
