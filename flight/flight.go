// Package flight implements the player craft: thrust and brake physics,
// camera-relative rotation, the tactical-turn ghost and target lock steering.
package flight

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/droplet/camera"
	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

// Settings holds flight tuning.
type Settings struct {
	MaxSpeed  float64
	SpeedKnee float64 // boost and brake rates change above this speed

	BoostLow, BoostHigh float64 // acceleration below/above the knee
	BrakeLow, BrakeHigh float64 // deceleration below/above the knee

	BoostRise  float64 // boost factor gain per second while boosting
	BoostDecay float64 // boost factor loss per second otherwise

	RotateRate float64 // radians per second at full deflection
	BankRatio  float64 // roll applied with yaw, as a fraction of RotateRate
	LockRate   float64 // slerp rate toward a locked target, per second

	TrailSteps    int
	TrailInterval float64 // seconds between trail points

	FlickerRate float64

	RingBase      float64
	RingPulse     float64
	RingJitter    float64
	RingSpeedGain float64

	SpeedOfLight float64 // in speed units, for the HUD
}

// DefaultSettings returns the stock flight tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxSpeed:      3000,
		SpeedKnee:     300,
		BoostLow:      100,
		BoostHigh:     50,
		BrakeLow:      300,
		BrakeHigh:     100,
		BoostRise:     1,
		BoostDecay:    3,
		RotateRate:    2,
		BankRatio:     0.5,
		LockRate:      5,
		TrailSteps:    10,
		TrailInterval: 0.1,
		FlickerRate:   3,
		RingBase:      2,
		RingPulse:     0.5,
		RingJitter:    0.5,
		RingSpeedGain: 2,
		SpeedOfLight:  300000,
	}
}

// Input is one tick of normalized controls.
type Input struct {
	Pitch float64 // +1 noses up
	Yaw   float64 // +1 turns left

	Boost        bool
	Brake        bool
	TacticalTurn bool // held

	// Edge-triggered toggles.
	ToggleAttack  bool
	ToggleFlicker bool

	Pan kinematics.Vec2 // free-orbit camera swing
}

// Targets resolves lock references to positions.
type Targets interface {
	Locate(ref fleet.ShipRef) (kinematics.Vec, bool)
}

// Driver identifies what is steering the craft this tick.
type Driver uint8

const (
	DriveLive  Driver = iota // manual input rotates the live body
	DriveGhost               // manual input rotates the ghost
	DriveLock                // the live body tracks the locked target
)

func (d Driver) String() string {
	switch d {
	case DriveGhost:
		return "ghost"
	case DriveLock:
		return "lock"
	}
	return "live"
}

// Mode labels shown on the HUD.
const (
	ModeTactical = "TACTICAL TURN PREP"
	ModeAttack   = "ATTACK ENGAGED"
	ModeCruise   = "CRUISE"
)

// Telemetry is the per-tick snapshot consumed by the HUD.
type Telemetry struct {
	Speed       float64
	Position    kinematics.Vec
	BoostFactor float64

	Attack       bool
	Flicker      bool
	TacticalTurn bool
	Driver       Driver
	Mode         string

	Locked       bool
	LockTarget   fleet.ShipRef
	LockDistance float64
	LockETA      float64 // seconds at current speed; +Inf when stationary

	YawDegrees    float64
	PercentC      float64
	SpeedFraction float64 // speed / max speed

	Exposure      float64
	RingIntensity float64
}

// Controller is the player craft. Live and Predictive are its two
// orientation slots; Predictive only receives input during a tactical turn.
type Controller struct {
	Position    kinematics.Vec
	Live        kinematics.Quat
	Predictive  kinematics.Quat
	Speed       float64
	BoostFactor float64

	Attack       bool
	Flicker      bool
	TacticalTurn bool

	Exposure      float64
	RingIntensity float64

	settings Settings
	rng      *rand.Rand
	elapsed  float64

	lock     fleet.ShipRef
	locked   bool
	lockDist float64

	trail []kinematics.Vec

	// Scene bodies arrive once assets load; unset ids are skipped.
	host      scene.Host
	craft     scene.ObjectID
	ghost     scene.ObjectID
	trailLine scene.ObjectID
}

// New creates a stationary craft at the origin facing +Z.
func New(s Settings, rng *rand.Rand) *Controller {
	return &Controller{
		Live:       kinematics.Identity(),
		Predictive: kinematics.Identity(),
		Exposure:   1,
		settings:   s,
		rng:        rng,
	}
}

// Settings returns the controller's tuning.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Attach binds scene bodies. Any id may be scene.None and filled in by a later
// call.
func (c *Controller) Attach(host scene.Host, craft, ghost, trail scene.ObjectID) {
	c.host = host
	c.craft = craft
	c.ghost = ghost
	c.trailLine = trail
	c.syncBodies()
}

// Trail returns the tactical-turn prediction points.
func (c *Controller) Trail() []kinematics.Vec {
	return c.trail
}

// Driver returns what steers the craft given the current modes.
func (c *Controller) Driver() Driver {
	switch {
	case c.TacticalTurn:
		return DriveGhost
	case c.locked:
		return DriveLock
	}
	return DriveLive
}

// ToggleAttack flips attack mode.
func (c *Controller) ToggleAttack() {
	c.Attack = !c.Attack
	slog.Debug("attack_mode", "active", c.Attack)
}

// ToggleFlicker flips the exposure flicker. Exposure resets when it stops.
func (c *Controller) ToggleFlicker() {
	c.Flicker = !c.Flicker
	if !c.Flicker {
		c.Exposure = 1
	}
}

// SetTacticalTurn enters or leaves tactical-turn mode. Entering syncs the ghost
// to the live orientation; leaving snaps the live orientation to the ghost.
func (c *Controller) SetTacticalTurn(active bool) {
	if active == c.TacticalTurn {
		return
	}
	c.TacticalTurn = active
	if active {
		c.Predictive = c.Live
	} else {
		c.Live = c.Predictive
	}
	c.trail = c.trail[:0]
	c.syncBodies()
}

// SetLock locks onto ref.
func (c *Controller) SetLock(ref fleet.ShipRef) {
	if c.locked && c.lock == ref {
		return
	}
	c.lock = ref
	c.locked = true
	slog.Debug("target_locked", "entity", ref.ID())
}

// ClearLock drops the lock, if any.
func (c *Controller) ClearLock() {
	c.locked = false
	c.lock = fleet.ShipRef{}
	c.lockDist = 0
}

// Lock returns the locked target.
func (c *Controller) Lock() (fleet.ShipRef, bool) {
	return c.lock, c.locked
}

// ValidateLock clears a lock whose target can no longer be located. It
// returns the target position when the lock holds.
func (c *Controller) ValidateLock(targets Targets) (kinematics.Vec, bool) {
	if !c.locked {
		return kinematics.Vec{}, false
	}
	pos, ok := targets.Locate(c.lock)
	if !ok {
		slog.Debug("target_lost", "entity", c.lock.ID())
		c.ClearLock()
		return kinematics.Vec{}, false
	}
	return pos, true
}

// Update advances the craft by dt. cam supplies the rotation axes for manual
// input.
func (c *Controller) Update(dt float64, in Input, cam scene.Camera, targets Targets) Telemetry {
	c.elapsed += dt

	if in.ToggleAttack {
		c.ToggleAttack()
	}
	if in.ToggleFlicker {
		c.ToggleFlicker()
	}
	c.SetTacticalTurn(in.TacticalTurn)

	targetPos, haveTarget := c.ValidateLock(targets)

	c.updateSpeed(dt, in)

	switch c.Driver() {
	case DriveGhost:
		c.Predictive = c.rotate(c.Predictive, dt, in, cam)
	case DriveLock:
		want := kinematics.LookRotation(kinematics.Sub(targetPos, c.Position), kinematics.AxisY)
		c.Live = kinematics.Slerp(c.Live, want, math.Min(1, c.settings.LockRate*dt)).Normalize()
	default:
		c.Live = c.rotate(c.Live, dt, in, cam)
	}

	if c.TacticalTurn {
		c.updateTrail()
	}

	c.Position = kinematics.Add(c.Position, kinematics.Scale(c.Live.Forward(), c.Speed*dt))

	if c.Flicker {
		c.Exposure = (math.Sin(c.elapsed*c.settings.FlickerRate)+1)/2*0.5 + 0.5
	}
	c.RingIntensity = math.Max(0, c.settings.RingBase+
		math.Sin(c.elapsed*3)*c.settings.RingPulse+
		(c.rng.Float64()-0.5)*c.settings.RingJitter+
		c.Speed/c.settings.MaxSpeed*c.settings.RingSpeedGain)

	if haveTarget {
		c.lockDist = kinematics.Distance(c.Position, targetPos)
	}

	c.syncBodies()
	return c.Telemetry()
}

func (c *Controller) updateSpeed(dt float64, in Input) {
	s := c.settings
	if in.Boost {
		acc := s.BoostHigh
		if c.Speed < s.SpeedKnee {
			acc = s.BoostLow
		}
		c.Speed += acc * dt
		c.BoostFactor += dt * s.BoostRise
	} else {
		c.BoostFactor -= dt * s.BoostDecay
	}
	c.BoostFactor = kinematics.Clamp(c.BoostFactor, 0, 1)

	if in.Brake {
		dec := s.BrakeHigh
		if c.Speed < s.SpeedKnee {
			dec = s.BrakeLow
		}
		c.Speed = math.Max(0, c.Speed-dec*dt)
	}
	c.Speed = math.Min(c.Speed, s.MaxSpeed)
}

// rotate applies pitch about the camera's right axis and yaw about its up
// axis, banking about the body's own forward axis while yawing.
func (c *Controller) rotate(q kinematics.Quat, dt float64, in Input, cam scene.Camera) kinematics.Quat {
	if in.Pitch == 0 && in.Yaw == 0 {
		return q
	}
	step := c.settings.RotateRate * dt
	camRot := cam.Orientation()

	delta := kinematics.Identity()
	if in.Pitch != 0 {
		delta = delta.Mul(kinematics.FromAxisAngle(camRot.Right(), step*in.Pitch))
	}
	if in.Yaw != 0 {
		delta = delta.Mul(kinematics.FromAxisAngle(camRot.Up(), step*in.Yaw))
		bank := step * in.Yaw * c.settings.BankRatio
		delta = delta.Mul(kinematics.FromAxisAngle(q.Forward(), bank))
	}
	return delta.Mul(q).Normalize()
}

func (c *Controller) updateTrail() {
	c.trail = c.trail[:0]
	pos := c.Position
	dir := c.Predictive.Forward()
	step := kinematics.Scale(dir, c.Speed*c.settings.TrailInterval)
	for i := 0; i < c.settings.TrailSteps; i++ {
		c.trail = append(c.trail, pos)
		pos = kinematics.Add(pos, step)
	}
}

// syncBodies pushes poses and visibility to the scene. The ghost is shown
// only during a tactical turn, the live body only outside one.
func (c *Controller) syncBodies() {
	if c.host == nil {
		return
	}
	if c.craft != scene.None {
		c.host.SetTransform(c.craft, c.Position, c.Live)
		c.host.SetVisible(c.craft, !c.TacticalTurn)
	}
	if c.ghost != scene.None {
		c.host.SetTransform(c.ghost, c.Position, c.Predictive)
		c.host.SetVisible(c.ghost, c.TacticalTurn)
	}
	if c.trailLine != scene.None {
		c.host.SetLine(c.trailLine, c.trail, scene.Hex(0x00f3ff), 0.5)
	}
}

// UpdateCamera drives the rig with the regime for the current mode.
func (c *Controller) UpdateCamera(rig *camera.Rig, pan kinematics.Vec2, dt float64) {
	switch {
	case c.TacticalTurn:
		rig.Tactical(c.Position, c.Live)
	case c.Attack:
		rig.Chase(c.Position, c.Live, c.BoostFactor)
	default:
		rig.Orbit(c.Position, pan, dt)
	}
}

// Mode returns the HUD mode label.
func (c *Controller) Mode() string {
	switch {
	case c.TacticalTurn:
		return ModeTactical
	case c.Attack:
		return ModeAttack
	}
	return ModeCruise
}

// Telemetry returns the current HUD snapshot.
func (c *Controller) Telemetry() Telemetry {
	t := Telemetry{
		Speed:         c.Speed,
		Position:      c.Position,
		BoostFactor:   c.BoostFactor,
		Attack:        c.Attack,
		Flicker:       c.Flicker,
		TacticalTurn:  c.TacticalTurn,
		Driver:        c.Driver(),
		Mode:          c.Mode(),
		Locked:        c.locked,
		YawDegrees:    c.Live.YawDegrees(),
		PercentC:      c.Speed / c.settings.SpeedOfLight * 100,
		SpeedFraction: math.Min(c.Speed/c.settings.MaxSpeed, 1),
		Exposure:      c.Exposure,
		RingIntensity: c.RingIntensity,
	}
	if c.locked {
		t.LockTarget = c.lock
		t.LockDistance = c.lockDist
		t.LockETA = math.Inf(1)
		if c.Speed > 0 {
			t.LockETA = c.lockDist / c.Speed
		}
	}
	return t
}
