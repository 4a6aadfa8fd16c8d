// Package components defines ECS components for fleet ships.
package components

import (
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
	"github.com/pthm-cable/droplet/trajectory"
)

// ShipState is a ship's flight phase.
type ShipState uint8

const (
	StateIdle        ShipState = iota // parked at its start position
	StateManeuvering                  // following its trajectory
)

func (s ShipState) String() string {
	if s == StateManeuvering {
		return "maneuvering"
	}
	return "idle"
}

// Identity holds a ship's name and scene handles.
type Identity struct {
	Name   string
	Index  int            // spawn order
	Body   scene.ObjectID // visual body, owned by the scene host
	Line   scene.ObjectID // trajectory line
	Radius float64        // collision radius
}

// Motion holds the immutable trajectory parameters.
type Motion struct {
	Params trajectory.Params
}

// Kinetics is the derived pose, recomputed every tick.
type Kinetics struct {
	Position kinematics.Vec
	Velocity kinematics.Vec
	Rotation kinematics.Quat
	Speed    float64
}

// Status holds lifecycle and UI state.
type Status struct {
	State    ShipState
	Hovered  bool
	Selected bool

	// Trajectory line appearance, eased toward targets each tick.
	LineOpacity    float64
	LineColor      scene.Color
	HighlightColor scene.Color
}

// Highlighted reports whether the ship's line should be emphasized.
func (s *Status) Highlighted() bool {
	return s.Hovered || s.Selected
}
