// Package camera provides the follow camera rig for the player craft.
package camera

import (
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

// Settings holds the tuning for every camera regime.
type Settings struct {
	FovY float64 // degrees

	// Tactical-turn overhead view
	TacticalOffset kinematics.Vec // in craft space
	TacticalLerp   float64        // per tick

	// Chase cam
	ChaseBaseDistance  float64
	ChaseExtraDistance float64 // added at full boost
	ChaseHeight        float64
	ChaseDistanceLerp  float64 // per tick
	ChaseLerp          float64 // per tick

	// Free orbit
	OrbitTargetLerp  float64 // per tick
	OrbitPanSpeed    float64 // radians per second at full deflection
	OrbitMinDistance float64
	OrbitMaxDistance float64
	OrbitPolarMargin float64 // elevation is kept this far from the poles

	ObserverPosition kinematics.Vec
}

// DefaultSettings returns the stock camera tuning.
func DefaultSettings() Settings {
	return Settings{
		FovY:               75,
		TacticalOffset:     kinematics.V(0, 20, -30),
		TacticalLerp:       0.05,
		ChaseBaseDistance:  8,
		ChaseExtraDistance: 2,
		ChaseHeight:        3,
		ChaseDistanceLerp:  0.1,
		ChaseLerp:          0.1,
		OrbitTargetLerp:    0.1,
		OrbitPanSpeed:      2,
		OrbitMinDistance:   3,
		OrbitMaxDistance:   100,
		OrbitPolarMargin:   0.1,
		ObserverPosition:   kinematics.V(0, 0, 3000),
	}
}

// Regime identifies which follow behavior drove the rig last tick.
type Regime uint8

const (
	RegimeOrbit Regime = iota
	RegimeChase
	RegimeTactical
)

func (r Regime) String() string {
	switch r {
	case RegimeChase:
		return "chase"
	case RegimeTactical:
		return "tactical"
	}
	return "orbit"
}

// Rig is the player's camera. Exactly one regime method is called per tick.
type Rig struct {
	Position kinematics.Vec
	Target   kinematics.Vec
	Up       kinematics.Vec

	// OrbitEnabled is false while the tactical view has taken over.
	OrbitEnabled bool

	// Viewport dimensions (screen size)
	Width, Height float64

	settings        Settings
	currentDistance float64
	regime          Regime
}

// New creates a rig behind the origin looking forward.
func New(s Settings, width, height float64) *Rig {
	return &Rig{
		Position:        kinematics.V(0, 5, -10),
		Up:              kinematics.AxisY,
		OrbitEnabled:    true,
		Width:           width,
		Height:          height,
		settings:        s,
		currentDistance: s.ChaseBaseDistance,
	}
}

// Settings returns the rig's tuning.
func (r *Rig) Settings() Settings {
	return r.settings
}

// Regime returns the regime applied on the last update.
func (r *Rig) Regime() Regime {
	return r.regime
}

// CurrentDistance returns the smoothed chase distance.
func (r *Rig) CurrentDistance() float64 {
	return r.currentDistance
}

// Resize updates viewport dimensions.
func (r *Rig) Resize(width, height float64) {
	r.Width = width
	r.Height = height
}

// Tactical moves toward an overhead point behind the craft and looks at it.
// Orbit control is disabled for the duration.
func (r *Rig) Tactical(craftPos kinematics.Vec, craftRot kinematics.Quat) {
	r.regime = RegimeTactical
	r.OrbitEnabled = false

	offset := craftRot.Rotate(r.settings.TacticalOffset)
	ideal := kinematics.Add(craftPos, offset)
	r.Position = kinematics.Lerp(r.Position, ideal, r.settings.TacticalLerp)
	r.Target = craftPos
}

// Chase trails the craft. The follow distance lags the boost factor, and the
// position lags the ideal point, giving a two-stage pull-back under boost.
func (r *Rig) Chase(craftPos kinematics.Vec, craftRot kinematics.Quat, boostFactor float64) {
	r.regime = RegimeChase
	r.OrbitEnabled = true
	r.Target = craftPos

	want := r.settings.ChaseBaseDistance + r.settings.ChaseExtraDistance*boostFactor
	r.currentDistance += (want - r.currentDistance) * r.settings.ChaseDistanceLerp

	offset := craftRot.Rotate(kinematics.V(0, r.settings.ChaseHeight, -r.currentDistance))
	ideal := kinematics.Add(craftPos, offset)
	r.Position = kinematics.Lerp(r.Position, ideal, r.settings.ChaseLerp)
	r.clampOrbit()
}

// Orbit lets the target drift toward the craft while pan input swings the
// camera around it. pan.X changes azimuth, pan.Y elevation.
func (r *Rig) Orbit(craftPos kinematics.Vec, pan kinematics.Vec2, dt float64) {
	r.regime = RegimeOrbit
	r.OrbitEnabled = true
	r.Target = kinematics.Lerp(r.Target, craftPos, r.settings.OrbitTargetLerp)

	if pan.X != 0 || pan.Y != 0 {
		sph := kinematics.SphericalFromVec(kinematics.Sub(r.Position, r.Target))
		sph.Theta -= pan.X * r.settings.OrbitPanSpeed * dt
		sph.Phi -= pan.Y * r.settings.OrbitPanSpeed * dt
		r.Position = kinematics.Add(r.Target, sph.ClampPolar(r.settings.OrbitPolarMargin).Vec())
	}
	r.clampOrbit()
}

// clampOrbit applies the orbit distance and polar limits around Target.
func (r *Rig) clampOrbit() {
	offset := kinematics.Sub(r.Position, r.Target)
	if kinematics.Length(offset) == 0 {
		offset = kinematics.V(0, 0, -r.settings.OrbitMinDistance)
	}
	sph := kinematics.SphericalFromVec(offset).ClampPolar(r.settings.OrbitPolarMargin)
	sph.Radius = kinematics.Clamp(sph.Radius, r.settings.OrbitMinDistance, r.settings.OrbitMaxDistance)
	r.Position = kinematics.Add(r.Target, sph.Vec())
}

// Pose returns the camera for projection and picking.
func (r *Rig) Pose() scene.Camera {
	return scene.Camera{
		Position: r.Position,
		Target:   r.Target,
		Up:       r.Up,
		FovY:     r.settings.FovY,
		Width:    r.Width,
		Height:   r.Height,
	}
}

// Observer returns the fixed overview camera looking at the origin.
func Observer(s Settings, width, height float64) scene.Camera {
	return scene.Camera{
		Position: s.ObserverPosition,
		Up:       kinematics.AxisY,
		FovY:     s.FovY,
		Width:    width,
		Height:   height,
	}
}
