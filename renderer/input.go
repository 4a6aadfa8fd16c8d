package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/game"
	"github.com/pthm-cable/droplet/kinematics"
)

// StickDeadzone is the gamepad axis magnitude treated as centered.
const StickDeadzone = 0.15

// Controls is the raw device state sampled once per frame.
type Controls struct {
	PitchUp, PitchDown bool // w, s
	YawLeft, YawRight  bool // a, d
	PanLeft, PanRight  bool // arrow keys
	PanUp, PanDown     bool

	Boost, Brake, Tactical bool // held

	// Pressed this frame.
	Attack, Flicker, AutoAttack, Observer bool

	StickX, StickY float64 // left gamepad stick, +Y down

	Pointer       kinematics.Vec2
	PointerActive bool
	Clicked       bool
}

// PollControls samples the keyboard, mouse and first gamepad. overUI
// suppresses pointer clicks that landed on a panel.
func PollControls(overUI bool) Controls {
	c := Controls{
		PitchUp:   rl.IsKeyDown(rl.KeyW),
		PitchDown: rl.IsKeyDown(rl.KeyS),
		YawLeft:   rl.IsKeyDown(rl.KeyA),
		YawRight:  rl.IsKeyDown(rl.KeyD),
		PanLeft:   rl.IsKeyDown(rl.KeyLeft),
		PanRight:  rl.IsKeyDown(rl.KeyRight),
		PanUp:     rl.IsKeyDown(rl.KeyUp),
		PanDown:   rl.IsKeyDown(rl.KeyDown),

		Boost:    rl.IsKeyDown(rl.KeySpace),
		Brake:    rl.IsKeyDown(rl.KeyP),
		Tactical: rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt),

		Attack:     rl.IsKeyPressed(rl.KeyH),
		Flicker:    rl.IsKeyPressed(rl.KeyU),
		AutoAttack: rl.IsKeyPressed(rl.KeyK),
		Observer:   rl.IsKeyPressed(rl.KeyO),
	}

	if rl.IsGamepadAvailable(0) {
		c.StickX = float64(rl.GetGamepadAxisMovement(0, rl.GamepadAxisLeftX))
		c.StickY = float64(rl.GetGamepadAxisMovement(0, rl.GamepadAxisLeftY))
		c.Boost = c.Boost || rl.IsGamepadButtonDown(0, rl.GamepadButtonRightTrigger2)
		c.Brake = c.Brake || rl.IsGamepadButtonDown(0, rl.GamepadButtonLeftTrigger2)
		c.Attack = c.Attack || rl.IsGamepadButtonPressed(0, rl.GamepadButtonRightFaceDown)
	}

	m := rl.GetMousePosition()
	c.Pointer = kinematics.Vec2{X: float64(m.X), Y: float64(m.Y)}
	c.PointerActive = rl.IsCursorOnScreen() && !overUI
	c.Clicked = c.PointerActive && rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	return c
}

func axis(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}

func deadzone(v float64) float64 {
	if math.Abs(v) < StickDeadzone {
		return 0
	}
	return v
}

// Input converts device state to one tick of game input. Keys and the stick
// add, then clamp to full deflection.
func (c Controls) Input() game.Input {
	pitch := axis(c.PitchDown, c.PitchUp) - deadzone(c.StickY)
	yaw := axis(c.YawRight, c.YawLeft) - deadzone(c.StickX)

	var in game.Input
	in.Flight.Pitch = kinematics.Clamp(pitch, -1, 1)
	in.Flight.Yaw = kinematics.Clamp(yaw, -1, 1)
	in.Flight.Boost = c.Boost
	in.Flight.Brake = c.Brake
	in.Flight.TacticalTurn = c.Tactical
	in.Flight.ToggleAttack = c.Attack
	in.Flight.ToggleFlicker = c.Flicker
	in.Flight.Pan = kinematics.Vec2{
		X: axis(c.PanLeft, c.PanRight),
		Y: axis(c.PanDown, c.PanUp),
	}

	in.ToggleAutoAttack = c.AutoAttack
	in.ToggleObserver = c.Observer
	in.Pointer = fleet.Pointer{Pos: c.Pointer, Active: c.PointerActive, Clicked: c.Clicked}
	return in
}
