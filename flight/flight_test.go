package flight

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/droplet/camera"
	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

const dt = 1.0 / 60

// fakeTargets maps refs to positions; missing refs fail to locate.
type fakeTargets map[fleet.ShipRef]kinematics.Vec

func (f fakeTargets) Locate(ref fleet.ShipRef) (kinematics.Vec, bool) {
	p, ok := f[ref]
	return p, ok
}

func behindCamera() scene.Camera {
	return scene.Camera{
		Position: kinematics.V(0, 0, -10),
		Up:       kinematics.AxisY,
		FovY:     75,
		Width:    800,
		Height:   600,
	}
}

func newController() *Controller {
	return New(DefaultSettings(), rand.New(rand.NewSource(1)))
}

func step(c *Controller, n int, in Input) Telemetry {
	var t Telemetry
	for i := 0; i < n; i++ {
		t = c.Update(dt, in, behindCamera(), fakeTargets{})
	}
	return t
}

func TestSpeedRamp(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		in    Input
		ticks int
		want  float64
	}{
		{"boost below knee", 0, Input{Boost: true}, 60, 100},
		{"boost above knee", 300, Input{Boost: true}, 60, 350},
		{"brake below knee", 200, Input{Brake: true}, 30, 50},
		{"brake above knee", 1000, Input{Brake: true}, 60, 900},
		{"brake floors at zero", 100, Input{Brake: true}, 60, 0},
		{"boost caps at max", 2999, Input{Boost: true}, 60, 3000},
		{"coast keeps momentum", 500, Input{}, 120, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			c.Speed = tt.start
			step(c, tt.ticks, tt.in)
			if math.Abs(c.Speed-tt.want) > 1e-6 {
				t.Errorf("speed = %f, want %f", c.Speed, tt.want)
			}
		})
	}
}

func TestBoostFactor(t *testing.T) {
	c := newController()

	step(c, 30, Input{Boost: true})
	if math.Abs(c.BoostFactor-0.5) > 1e-9 {
		t.Errorf("boost factor after 0.5s = %f, want 0.5", c.BoostFactor)
	}
	step(c, 120, Input{Boost: true})
	if c.BoostFactor != 1 {
		t.Errorf("boost factor should saturate at 1, got %f", c.BoostFactor)
	}
	step(c, 10, Input{})
	if math.Abs(c.BoostFactor-0.5) > 1e-9 {
		t.Errorf("boost factor should decay at 3/s, got %f", c.BoostFactor)
	}
	step(c, 60, Input{})
	if c.BoostFactor != 0 {
		t.Errorf("boost factor should floor at 0, got %f", c.BoostFactor)
	}
}

func TestSpeedInvariants(t *testing.T) {
	c := newController()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20000; i++ {
		in := Input{
			Boost: rng.Float64() < 0.7,
			Brake: rng.Float64() < 0.1,
		}
		c.Update(dt, in, behindCamera(), fakeTargets{})
		if c.Speed < 0 || c.Speed > c.settings.MaxSpeed {
			t.Fatalf("tick %d: speed %f out of range", i, c.Speed)
		}
		if c.BoostFactor < 0 || c.BoostFactor > 1 {
			t.Fatalf("tick %d: boost factor %f out of range", i, c.BoostFactor)
		}
	}
}

func TestTranslation(t *testing.T) {
	c := newController()
	c.Speed = 100
	step(c, 60, Input{})

	if !kinematics.ApproxEqual(c.Position, kinematics.V(0, 0, 100), 1e-6) {
		t.Errorf("expected craft at (0,0,100), got %v", c.Position)
	}
}

func TestManualRotationIsCameraRelative(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		check func(fwd kinematics.Vec) bool
	}{
		{"pitch up", Input{Pitch: 1}, func(f kinematics.Vec) bool { return f.Y > 0.1 }},
		{"pitch down", Input{Pitch: -1}, func(f kinematics.Vec) bool { return f.Y < -0.1 }},
		{"yaw left", Input{Yaw: 1}, func(f kinematics.Vec) bool { return f.X > 0.1 }},
		{"yaw right", Input{Yaw: -1}, func(f kinematics.Vec) bool { return f.X < -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			step(c, 15, tt.in)
			fwd := c.Live.Forward()
			if !tt.check(fwd) {
				t.Errorf("unexpected forward %v", fwd)
			}
			if math.Abs(c.Live.Len()-1) > 1e-9 {
				t.Errorf("orientation not normalized: %f", c.Live.Len())
			}
		})
	}
}

func TestYawBanks(t *testing.T) {
	c := newController()
	step(c, 15, Input{Yaw: 1})

	up := c.Live.Up()
	if math.Abs(up.X) < 1e-3 {
		t.Errorf("yaw should roll the craft, up = %v", up)
	}
}

func TestTacticalTurn(t *testing.T) {
	c := newController()
	c.Speed = 50
	step(c, 10, Input{Yaw: 1})
	before := c.Live

	tel := step(c, 1, Input{TacticalTurn: true})
	if tel.Driver != DriveGhost || tel.Mode != ModeTactical {
		t.Fatalf("driver=%v mode=%q on entry", tel.Driver, tel.Mode)
	}

	step(c, 30, Input{TacticalTurn: true, Pitch: 1})
	if c.Live != before {
		t.Error("live orientation changed during tactical turn")
	}
	if c.Predictive.AngleTo(before) < 0.5 {
		t.Errorf("ghost should have turned, angle = %f", c.Predictive.AngleTo(before))
	}

	trail := c.Trail()
	if len(trail) != 10 {
		t.Fatalf("trail has %d points, want 10", len(trail))
	}
	for i := 1; i < len(trail); i++ {
		if d := kinematics.Distance(trail[i], trail[i-1]); math.Abs(d-5) > 1e-9 {
			t.Errorf("trail spacing %d = %f, want 5", i, d)
		}
	}

	ghost := c.Predictive
	step(c, 1, Input{})
	if c.Live != ghost {
		t.Error("live orientation should snap to the ghost on exit")
	}
	if len(c.Trail()) != 0 {
		t.Error("trail should clear on exit")
	}
}

func TestDriverExclusive(t *testing.T) {
	c := newController()
	ref := ecs.Entity{}
	targets := fakeTargets{ref: kinematics.V(0, 0, 100)}

	tests := []struct {
		name     string
		tactical bool
		locked   bool
		want     Driver
	}{
		{"free", false, false, DriveLive},
		{"locked", false, true, DriveLock},
		{"tactical", true, false, DriveGhost},
		{"tactical overrides lock", true, true, DriveGhost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.ClearLock()
			if tt.locked {
				c.SetLock(ref)
			}
			tel := c.Update(dt, Input{TacticalTurn: tt.tactical}, behindCamera(), targets)
			if tel.Driver != tt.want {
				t.Errorf("driver = %v, want %v", tel.Driver, tt.want)
			}
		})
	}
}

func TestLockSteersTowardTarget(t *testing.T) {
	c := newController()
	ref := ecs.Entity{}
	targets := fakeTargets{ref: kinematics.V(1000, 0, 0)}
	c.SetLock(ref)

	var tel Telemetry
	for i := 0; i < 300; i++ {
		tel = c.Update(dt, Input{Yaw: -1}, behindCamera(), targets)
	}

	fwd := c.Live.Forward()
	if fwd.X < 0.99 {
		t.Errorf("craft should face the target, forward = %v", fwd)
	}
	if !tel.Locked || tel.LockDistance <= 0 {
		t.Errorf("expected lock telemetry, got %+v", tel)
	}
	if !math.IsInf(tel.LockETA, 1) {
		t.Errorf("stationary craft should have infinite ETA, got %f", tel.LockETA)
	}
}

func TestLockSlerpIsGradual(t *testing.T) {
	c := newController()
	ref := ecs.Entity{}
	targets := fakeTargets{ref: kinematics.V(1000, 0, 0)}
	c.SetLock(ref)

	c.Update(dt, Input{}, behindCamera(), targets)
	angle := c.Live.AngleTo(kinematics.Identity())
	want := math.Pi / 2 * 5 * dt
	if math.Abs(angle-want) > 1e-6 {
		t.Errorf("first lock tick turned %f rad, want %f", angle, want)
	}
}

func TestLockClearsWhenTargetGone(t *testing.T) {
	c := newController()
	ref := ecs.Entity{}
	c.SetLock(ref)

	tel := c.Update(dt, Input{}, behindCamera(), fakeTargets{})
	if tel.Locked {
		t.Error("lock should clear when the target cannot be located")
	}
	if _, ok := c.Lock(); ok {
		t.Error("Lock() should report no target")
	}
	if tel.Driver != DriveLive {
		t.Errorf("driver = %v, want live", tel.Driver)
	}
}

func TestLockETA(t *testing.T) {
	c := newController()
	c.Speed = 100
	ref := ecs.Entity{}
	c.SetLock(ref)

	tel := c.Update(dt, Input{}, behindCamera(), fakeTargets{ref: kinematics.V(0, 0, 1000)})
	wantDist := 1000 - 100*dt
	if math.Abs(tel.LockDistance-wantDist) > 1e-6 {
		t.Errorf("lock distance = %f, want %f", tel.LockDistance, wantDist)
	}
	if math.Abs(tel.LockETA-wantDist/100) > 1e-6 {
		t.Errorf("lock ETA = %f, want %f", tel.LockETA, wantDist/100)
	}
}

func TestFlicker(t *testing.T) {
	c := newController()
	c.Update(dt, Input{ToggleFlicker: true}, behindCamera(), fakeTargets{})
	if !c.Flicker {
		t.Fatal("flicker should be on")
	}
	for i := 0; i < 300; i++ {
		c.Update(dt, Input{}, behindCamera(), fakeTargets{})
		if c.Exposure < 0.5-1e-9 || c.Exposure > 1+1e-9 {
			t.Fatalf("exposure %f out of [0.5, 1]", c.Exposure)
		}
	}
	c.Update(dt, Input{ToggleFlicker: true}, behindCamera(), fakeTargets{})
	if c.Exposure != 1 {
		t.Errorf("exposure should reset to 1, got %f", c.Exposure)
	}
}

func TestRingIntensity(t *testing.T) {
	c := newController()
	for i := 0; i < 600; i++ {
		c.Update(dt, Input{Boost: true}, behindCamera(), fakeTargets{})
		lo := 2 - 0.5 - 0.25
		hi := 2 + 0.5 + 0.25 + 2*c.Speed/c.settings.MaxSpeed
		if c.RingIntensity < lo-1e-9 || c.RingIntensity > hi+1e-9 {
			t.Fatalf("ring intensity %f outside [%f, %f]", c.RingIntensity, lo, hi)
		}
	}
}

func TestModeLabel(t *testing.T) {
	tests := []struct {
		attack, tactical bool
		want             string
	}{
		{false, false, ModeCruise},
		{true, false, ModeAttack},
		{false, true, ModeTactical},
		{true, true, ModeTactical},
	}
	for _, tt := range tests {
		c := newController()
		c.Attack = tt.attack
		c.TacticalTurn = tt.tactical
		if got := c.Mode(); got != tt.want {
			t.Errorf("attack=%v tactical=%v: mode = %q, want %q", tt.attack, tt.tactical, got, tt.want)
		}
	}
}

func TestBodiesOptional(t *testing.T) {
	c := newController()
	// No host attached: every update must still work.
	step(c, 5, Input{TacticalTurn: true, Yaw: 1})
	step(c, 5, Input{})

	host := scene.NewMemoryHost()
	craft := host.Spawn(scene.KindCraft)
	c.Attach(host, craft, scene.None, scene.None)
	step(c, 1, Input{TacticalTurn: true})

	tr, _ := host.Transform(craft)
	if tr.Visible {
		t.Error("live body should hide during a tactical turn")
	}

	ghost := host.Spawn(scene.KindGhost)
	trail := host.Spawn(scene.KindLine)
	c.Attach(host, craft, ghost, trail)
	c.Speed = 10
	step(c, 1, Input{TacticalTurn: true})

	if tr, _ := host.Transform(ghost); !tr.Visible {
		t.Error("ghost should be visible during a tactical turn")
	}
	if o, _ := host.Object(trail); len(o.Line) != 10 {
		t.Errorf("trail line has %d points, want 10", len(o.Line))
	}

	step(c, 1, Input{})
	if tr, _ := host.Transform(craft); !tr.Visible {
		t.Error("live body should reappear after the turn")
	}
	if tr, _ := host.Transform(ghost); tr.Visible {
		t.Error("ghost should hide after the turn")
	}
	if o, _ := host.Object(trail); len(o.Line) != 0 {
		t.Error("trail line should clear after the turn")
	}
}

func TestUpdateCameraRegime(t *testing.T) {
	tests := []struct {
		name             string
		attack, tactical bool
		want             camera.Regime
	}{
		{"default orbits", false, false, camera.RegimeOrbit},
		{"attack chases", true, false, camera.RegimeChase},
		{"tactical overhead", true, true, camera.RegimeTactical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			c.Attack = tt.attack
			c.TacticalTurn = tt.tactical
			rig := camera.New(camera.DefaultSettings(), 800, 600)
			c.UpdateCamera(rig, kinematics.Vec2{}, dt)
			if rig.Regime() != tt.want {
				t.Errorf("regime = %v, want %v", rig.Regime(), tt.want)
			}
		})
	}
}
