// Package scene defines the contract between the simulation and whatever
// draws it. The simulation creates, moves, hides and removes objects through
// Host; a renderer reads them back each frame.
package scene

import (
	"math"

	"github.com/pthm-cable/droplet/kinematics"
)

// ObjectID identifies a scene object. Zero means "no object".
type ObjectID uint32

// None is the zero ObjectID.
const None ObjectID = 0

// Kind classifies scene objects for the renderer.
type Kind uint8

const (
	KindShipBody Kind = iota
	KindCraft
	KindGhost
	KindLine
	KindPoints
	KindDebris
)

func (k Kind) String() string {
	switch k {
	case KindShipBody:
		return "ship_body"
	case KindCraft:
		return "craft"
	case KindGhost:
		return "ghost"
	case KindLine:
		return "line"
	case KindPoints:
		return "points"
	case KindDebris:
		return "debris"
	}
	return "unknown"
}

// Color is a linear RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Hex converts a 0xRRGGBB value to a Color.
func Hex(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// Common colors.
var (
	White = Color{1, 1, 1}
	Gray  = Hex(0x666666)
)

// Lerp moves c toward o by fraction t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Scale multiplies every component by f.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// HSL builds a color from hue, saturation and lightness, each in [0,1].
func HSL(h, s, l float64) Color {
	if s == 0 {
		return Color{l, l, l}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return Color{
		R: hueToRGB(p, q, h+1.0/3),
		G: hueToRGB(p, q, h),
		B: hueToRGB(p, q, h-1.0/3),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*6*(2.0/3-t)
	}
	return p
}

// Point is one particle in a point cloud.
type Point struct {
	Pos   kinematics.Vec
	Color Color
	Size  float64
}

// Transform is the placement and visibility of an object.
type Transform struct {
	Position kinematics.Vec
	Rotation kinematics.Quat
	Scale    float64
	Visible  bool
}

// Pickable is a candidate for ray picking, approximated by a bounding sphere.
type Pickable struct {
	ID     ObjectID
	Radius float64
}

// Host is the renderer/scene graph the simulation drives.
//
// Implementations must tolerate calls on ids that were never spawned or have
// been removed; those calls are no-ops.
type Host interface {
	Spawn(kind Kind) ObjectID
	Remove(id ObjectID)
	Exists(id ObjectID) bool

	SetTransform(id ObjectID, pos kinematics.Vec, rot kinematics.Quat)
	Transform(id ObjectID) (Transform, bool)
	SetVisible(id ObjectID, visible bool)
	SetScale(id ObjectID, s float64)

	SetLine(id ObjectID, pts []kinematics.Vec, color Color, opacity float64)
	SetPoints(id ObjectID, pts []Point, opacity float64)

	// Project maps a world point to screen pixels. ok is false when the point
	// is behind the camera or outside the view.
	Project(world kinematics.Vec, cam Camera) (screen kinematics.Vec2, ok bool)

	// Pick casts a ray through a screen point and returns the nearest hit.
	Pick(screen kinematics.Vec2, cam Camera, targets []Pickable) (ObjectID, bool)
}

// Camera is a perspective camera pose plus viewport.
type Camera struct {
	Position kinematics.Vec
	Target   kinematics.Vec
	Up       kinematics.Vec
	FovY     float64 // degrees
	Width    float64
	Height   float64
}

// Orientation returns the camera rotation. The camera looks down its local -Z.
func (c Camera) Orientation() kinematics.Quat {
	up := c.Up
	if up == (kinematics.Vec{}) {
		up = kinematics.AxisY
	}
	return kinematics.LookRotation(kinematics.Sub(c.Position, c.Target), up)
}

// Right returns the camera's world-space right axis.
func (c Camera) Right() kinematics.Vec { return c.Orientation().Right() }

// UpAxis returns the camera's world-space up axis.
func (c Camera) UpAxis() kinematics.Vec { return c.Orientation().Up() }

func (c Camera) aspect() float64 {
	if c.Height <= 0 {
		return 1
	}
	return c.Width / c.Height
}

func (c Camera) tanHalfFov() float64 {
	fov := c.FovY
	if fov <= 0 {
		fov = 75
	}
	return math.Tan(fov * math.Pi / 360)
}

// Project maps a world point to screen pixels. ok is false when the point is
// behind the camera or outside the view frustum's side planes.
func (c Camera) Project(world kinematics.Vec) (kinematics.Vec2, bool) {
	local := c.Orientation().Conj().Rotate(kinematics.Sub(world, c.Position))
	if local.Z >= 0 {
		return kinematics.Vec2{}, false
	}
	depth := -local.Z
	th := c.tanHalfFov()
	ndcX := local.X / (depth * th * c.aspect())
	ndcY := local.Y / (depth * th)
	screen := kinematics.Vec2{
		X: (ndcX*0.5 + 0.5) * c.Width,
		Y: (-ndcY*0.5 + 0.5) * c.Height,
	}
	return screen, math.Abs(ndcX) <= 1 && math.Abs(ndcY) <= 1
}

// Ray returns the world-space ray through a screen pixel.
func (c Camera) Ray(screen kinematics.Vec2) kinematics.Ray {
	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	ndcX := screen.X/w*2 - 1
	ndcY := -(screen.Y/h*2 - 1)
	th := c.tanHalfFov()
	local := kinematics.V(ndcX*th*c.aspect(), ndcY*th, -1)
	return kinematics.Ray{
		Origin: c.Position,
		Dir:    kinematics.Normalize(c.Orientation().Rotate(local)),
	}
}
