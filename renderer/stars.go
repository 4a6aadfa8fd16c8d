package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/kinematics"
)

// starDistance keeps stars inside the far clip plane, in GPU units.
const starDistance = 900

type star struct {
	dir   kinematics.Vec
	color rl.Color
}

// Starfield is a fixed backdrop of points that travels with the camera, so
// it never shows parallax.
type Starfield struct {
	stars []star
}

// NewStarfield scatters n stars over the sky.
func NewStarfield(rng *rand.Rand, n int) *Starfield {
	s := &Starfield{stars: make([]star, n)}
	for i := range s.stars {
		b := uint8(90 + rng.Intn(166))
		s.stars[i] = star{
			dir:   kinematics.RandomUnit(rng),
			color: rl.Color{R: b, G: b, B: uint8(min(255, int(b)+20)), A: 255},
		}
	}
	return s
}

// Draw renders the stars around eye, in world units.
func (s *Starfield) Draw(eye kinematics.Vec) {
	center := vec3(eye)
	for _, st := range s.stars {
		p := rl.NewVector3(
			center.X+float32(st.dir.X*starDistance),
			center.Y+float32(st.dir.Y*starDistance),
			center.Z+float32(st.dir.Z*starDistance),
		)
		rl.DrawPoint3D(p, st.color)
	}
}

// Len returns the number of stars.
func (s *Starfield) Len() int { return len(s.stars) }
