package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

// WorldScale shrinks world units before they reach the GPU. The fleet sits
// well past raylib's fixed far clip plane, and a uniform scale leaves the
// perspective image unchanged.
const WorldScale = 0.1

func vec3(v kinematics.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X*WorldScale), float32(v.Y*WorldScale), float32(v.Z*WorldScale))
}

func length(x float64) float32 {
	return float32(x * WorldScale)
}

func channel(x float64) uint8 {
	return uint8(kinematics.Clamp(x, 0, 1)*255 + 0.5)
}

// color converts a scene color and opacity to an 8-bit raylib color.
func color(c scene.Color, opacity float64) rl.Color {
	return rl.Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(opacity)}
}

// Camera3D converts a scene camera into a raylib perspective camera.
func Camera3D(cam scene.Camera) rl.Camera3D {
	up := cam.Up
	if up == (kinematics.Vec{}) {
		up = kinematics.AxisY
	}
	fov := cam.FovY
	if fov <= 0 {
		fov = 75
	}
	return rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         rl.NewVector3(float32(up.X), float32(up.Y), float32(up.Z)),
		Fovy:       float32(fov),
		Projection: rl.CameraPerspective,
	}
}
