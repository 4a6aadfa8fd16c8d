// Package renderer draws the scene held by an in-memory host with raylib.
package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

// Style carries per-frame appearance driven by simulation state.
type Style struct {
	Exposure  float64 // craft glow, 0..1
	Ring      float64 // engine ring intensity
	Highlight scene.ObjectID
}

// Palette holds the fixed object colors.
type Palette struct {
	Ship      rl.Color
	Highlight rl.Color
	Craft     rl.Color
	Ghost     rl.Color
	Ring      rl.Color
	Debris    rl.Color
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Ship:      rl.Color{R: 150, G: 160, B: 175, A: 255},
		Highlight: rl.White,
		Craft:     rl.Color{R: 220, G: 235, B: 255, A: 255},
		Ghost:     rl.Color{R: 0, G: 243, B: 255, A: 90},
		Ring:      rl.Color{R: 0, G: 243, B: 255, A: 255},
		Debris:    rl.Color{R: 110, G: 100, B: 95, A: 255},
	}
}

// Host is a scene host that can draw itself. The simulation talks to the
// embedded MemoryHost; Draw reads the same objects back each frame.
type Host struct {
	*scene.MemoryHost
	Palette Palette
	stars   *Starfield
}

// New creates a drawable host with a seeded starfield.
func New(seed int64, stars int) *Host {
	return &Host{
		MemoryHost: scene.NewMemoryHost(),
		Palette:    DefaultPalette(),
		stars:      NewStarfield(rand.New(rand.NewSource(seed)), stars),
	}
}

// Draw renders every visible object from cam. Call between BeginDrawing and
// EndDrawing.
func (h *Host) Draw(cam scene.Camera, style Style) {
	rl.BeginMode3D(Camera3D(cam))
	defer rl.EndMode3D()

	h.stars.Draw(cam.Position)

	for _, o := range h.Objects(scene.KindLine) {
		if o.Transform.Visible {
			h.drawLine(o)
		}
	}
	for _, o := range h.Objects(scene.KindShipBody) {
		if o.Transform.Visible {
			h.drawShip(o, o.ID == style.Highlight)
		}
	}
	for _, o := range h.Objects(scene.KindGhost) {
		if o.Transform.Visible {
			h.drawGhost(o)
		}
	}
	for _, o := range h.Objects(scene.KindCraft) {
		if o.Transform.Visible {
			h.drawCraft(o, style)
		}
	}
	for _, o := range h.Objects(scene.KindDebris) {
		if o.Transform.Visible {
			h.drawDebris(o)
		}
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, o := range h.Objects(scene.KindPoints) {
		if o.Transform.Visible {
			h.drawPoints(o)
		}
	}
	rl.EndBlendMode()
}

func (h *Host) drawLine(o *scene.Object) {
	if len(o.Line) < 2 || o.Opacity <= 0 {
		return
	}
	c := color(o.LineColor, o.Opacity)
	prev := vec3(o.Line[0])
	for _, p := range o.Line[1:] {
		next := vec3(p)
		rl.DrawLine3D(prev, next, c)
		prev = next
	}
}

// drawShip draws a hull as a cone pointing along the body's forward axis.
func (h *Host) drawShip(o *scene.Object, highlight bool) {
	t := o.Transform
	fwd := kinematics.Scale(t.Rotation.Forward(), 20*t.Scale)
	nose := vec3(kinematics.Add(t.Position, fwd))
	tail := vec3(kinematics.Sub(t.Position, fwd))

	c := h.Palette.Ship
	if highlight {
		c = h.Palette.Highlight
	}
	rl.DrawCylinderEx(tail, nose, length(8*t.Scale), 0, 8, c)
	rl.DrawCylinderWiresEx(tail, nose, length(8*t.Scale), 0, 8, rl.Fade(rl.Black, 0.4))
}

func (h *Host) drawGhost(o *scene.Object) {
	t := o.Transform
	tip := kinematics.Add(t.Position, kinematics.Scale(t.Rotation.Forward(), 12))
	rl.DrawSphereWires(vec3(t.Position), length(4), 6, 6, h.Palette.Ghost)
	rl.DrawLine3D(vec3(t.Position), vec3(tip), h.Palette.Ghost)
}

func (h *Host) drawCraft(o *scene.Object, style Style) {
	t := o.Transform
	glow := kinematics.Clamp(0.35+0.65*style.Exposure, 0, 1)
	rl.DrawSphere(vec3(t.Position), length(4), rl.ColorBrightness(h.Palette.Craft, float32(glow-1)))

	if style.Ring > 0 {
		// The ring lies in the craft's local XY plane, facing forward.
		axis, angle := ringAxis(t.Rotation)
		ring := rl.Fade(h.Palette.Ring, float32(kinematics.Clamp(style.Ring, 0, 1)))
		rl.DrawCircle3D(vec3(t.Position), length(6+2*style.Ring), axis, angle, ring)
	}
}

// ringAxis converts a rotation to the axis/degrees pair DrawCircle3D wants.
func ringAxis(q kinematics.Quat) (rl.Vector3, float32) {
	axis, rad := q.AxisAngle()
	return rl.NewVector3(float32(axis.X), float32(axis.Y), float32(axis.Z)), float32(rad * 180 / math.Pi)
}

func (h *Host) drawDebris(o *scene.Object) {
	t := o.Transform
	s := length(3 * t.Scale)
	rl.DrawCube(vec3(t.Position), s, s, s, h.Palette.Debris)
}

func (h *Host) drawPoints(o *scene.Object) {
	for _, p := range o.Points {
		s := length(p.Size)
		rl.DrawCube(vec3(p.Pos), s, s, s, color(p.Color, o.Opacity))
	}
}
