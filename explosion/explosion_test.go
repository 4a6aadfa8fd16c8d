package explosion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

// dt is exactly representable so 80 ticks land on the 10s duration.
const dt = 0.125

func newSystem(seed int64) (*System, *scene.MemoryHost) {
	host := scene.NewMemoryHost()
	return New(host, rand.New(rand.NewSource(seed)), DefaultSettings()), host
}

func TestFireColor(t *testing.T) {
	tests := []struct {
		r    float64
		want scene.Color
	}{
		{0, ColorWhite},
		{0.099, ColorWhite},
		{0.1, ColorYellow},
		{0.299, ColorYellow},
		{0.3, ColorOrange},
		{0.599, ColorOrange},
		{0.6, ColorRedOrange},
		{0.999, ColorRedOrange},
	}
	for _, tt := range tests {
		if got := FireColor(tt.r); got != tt.want {
			t.Errorf("FireColor(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestOpacityCurve(t *testing.T) {
	tests := []struct {
		age, want float64
	}{
		{0, 1},
		{1, 0.75},
		{2, 0},
		{3, 0},
	}
	for _, tt := range tests {
		if got := Opacity(tt.age, 2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Opacity(%v, 2) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestParticleDecay(t *testing.T) {
	s, host := newSystem(1)
	s.burst(kinematics.Vec{}, 1, kinematics.Vec{}, false)

	e := s.Effects()[0]
	if e.MaxAge != 2 {
		t.Fatalf("scale-1 burst should live 2s, got %f", e.MaxAge)
	}
	if len(e.Particles) != 50 {
		t.Errorf("scale-1 burst has %d particles, want 50", len(e.Particles))
	}
	if math.Abs(e.Opacity()-1) > 1e-9 {
		t.Errorf("opacity at age 0 = %f", e.Opacity())
	}

	for i := 0; i < 8; i++ {
		s.Tick(dt)
	}
	if math.Abs(e.Opacity()-0.75) > 1e-9 {
		t.Errorf("opacity at age 1 = %f, want 0.75", e.Opacity())
	}
	if o, _ := host.Object(e.ID); math.Abs(o.Opacity-0.75) > 1e-9 {
		t.Errorf("host opacity at age 1 = %f", o.Opacity)
	}

	for i := 0; i < 8; i++ {
		s.Tick(dt)
	}
	if len(s.Effects()) != 0 {
		t.Error("effect should be removed at max age")
	}
	if host.Exists(e.ID) {
		t.Error("effect points should be removed from the scene")
	}
}

func TestParticleDragAndDarken(t *testing.T) {
	s, _ := newSystem(2)
	s.burst(kinematics.Vec{}, 1, kinematics.Vec{}, false)
	e := s.Effects()[0]

	v0 := kinematics.Length(e.Particles[0].Velocity)
	c0 := e.Particles[0].Color
	s.Tick(dt)
	if v1 := kinematics.Length(e.Particles[0].Velocity); math.Abs(v1-v0*0.95) > 1e-9 {
		t.Errorf("drag: speed %f -> %f, want x0.95", v0, v1)
	}
	if e.Particles[0].Color != c0 {
		t.Error("colors should not darken in the first half of life")
	}

	for i := 0; i < 10; i++ {
		s.Tick(dt)
	}
	c := e.Particles[0].Color
	if c.R >= c0.R && c.G >= c0.G && c.B >= c0.B {
		t.Errorf("color should darken late in life: %v -> %v", c0, c)
	}
}

func TestParticleSpeedRange(t *testing.T) {
	s, _ := newSystem(3)
	base := kinematics.V(100, 0, 0)
	s.burst(kinematics.Vec{}, 2, base, false)

	for _, p := range s.Effects()[0].Particles {
		speed := kinematics.Distance(p.Velocity, base)
		if speed < 10-1e-9 || speed > 50+1e-9 {
			t.Errorf("particle speed %f outside [10, 50] for scale 2", speed)
		}
		if p.Size < 10-1e-9 || p.Size > 40+1e-9 {
			t.Errorf("particle size %f outside [10, 40]", p.Size)
		}
	}
}

func TestExplosionLifecycle(t *testing.T) {
	s, host := newSystem(4)
	body := host.Spawn(scene.KindShipBody)
	velocity := kinematics.V(0, 0, 30)

	if !s.Trigger(Target{Body: body, Position: kinematics.V(0, 0, 100), Velocity: velocity}, kinematics.V(0, 0, 80)) {
		t.Fatal("trigger should start a dying craft")
	}
	if s.Trigger(Target{Body: body}, kinematics.Vec{}) {
		t.Error("second trigger on the same body should be ignored")
	}
	if s.Dying()[0].Radius != 20 {
		t.Errorf("default radius = %f, want 20", s.Dying()[0].Radius)
	}

	mid := 0
	for i := 0; i < 79; i++ {
		res := s.Tick(dt)
		if res.TerminalBursts != 0 || res.Debris != 0 {
			t.Fatalf("terminal burst fired early on tick %d", i)
		}
		mid += res.MidBursts
	}
	if !s.IsDying(body) || !host.Exists(body) {
		t.Fatal("body should still be dying before the duration elapses")
	}
	if mid == 0 {
		t.Error("expected some mid bursts over ten seconds")
	}

	res := s.Tick(dt)
	if res.TerminalBursts != 1 || res.Debris != 20 || res.MidBursts != 0 {
		t.Fatalf("final tick = %+v, want one terminal burst and 20 debris", res)
	}
	if len(res.Finished) != 1 || res.Finished[0] != body {
		t.Errorf("finished = %v", res.Finished)
	}
	if len(s.Dying()) != 0 || host.Exists(body) {
		t.Error("dying craft should be gone after the terminal burst")
	}
	if host.Count(scene.KindDebris) != 20 || len(s.Debris()) != 20 {
		t.Errorf("debris in scene = %d", host.Count(scene.KindDebris))
	}

	var terminal *Effect
	for _, e := range s.Effects() {
		if e.Terminal {
			if terminal != nil {
				t.Fatal("more than one terminal burst")
			}
			terminal = e
		}
	}
	if terminal == nil || len(terminal.Particles) != 150 || terminal.MaxAge != 6 {
		t.Fatalf("terminal burst = %+v", terminal)
	}

	stats := s.Stats()
	if stats.Triggered != 1 || stats.TerminalBursts != 1 || stats.Debris != 20 || stats.MidBursts != mid {
		t.Errorf("stats = %+v, mid = %d", stats, mid)
	}

	// Everything eventually expires.
	for i := 0; i < 80; i++ {
		s.Tick(dt)
	}
	if s.Active() {
		t.Errorf("still active: %d effects, %d debris", len(s.Effects()), len(s.Debris()))
	}
	if host.Len() != 0 {
		t.Errorf("scene should be empty, has %d objects", host.Len())
	}
}

func TestDebrisInheritsVelocity(t *testing.T) {
	s, _ := newSystem(5)
	base := kinematics.V(1000, 0, 0)
	s.spawnDebris(kinematics.Vec{}, 20, base)

	for _, d := range s.Debris() {
		rel := kinematics.Length(kinematics.Sub(d.Velocity, base))
		if rel < 20-1e-9 || rel > 70+1e-9 {
			t.Errorf("debris relative speed %f outside [20, 70]", rel)
		}
		if d.Scale < 0 || d.Scale > 6 {
			t.Errorf("debris scale %f outside [0, 6]", d.Scale)
		}
	}

	d := s.Debris()[0]
	scale := d.Scale
	s.Tick(dt)
	if math.Abs(d.Scale-scale*0.99) > 1e-12 {
		t.Errorf("debris should shrink by 0.99 per tick: %f -> %f", scale, d.Scale)
	}
}

func TestBurstProbabilityRises(t *testing.T) {
	// Bursts should be rarer in the first half of the dying phase than in
	// the second.
	early, late := 0, 0
	for seed := int64(0); seed < 20; seed++ {
		s, host := newSystem(seed)
		body := host.Spawn(scene.KindShipBody)
		s.Trigger(Target{Body: body}, kinematics.Vec{})
		for i := 0; i < 79; i++ {
			res := s.Tick(dt)
			if i < 40 {
				early += res.MidBursts
			} else {
				late += res.MidBursts
			}
		}
	}
	if early >= late {
		t.Errorf("early bursts %d should be fewer than late bursts %d", early, late)
	}
}
