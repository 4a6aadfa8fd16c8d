package fleet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/droplet/components"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
	"github.com/pthm-cable/droplet/trajectory"
)

const dt = 1.0 / 60

func testCamera() scene.Camera {
	return scene.Camera{
		Position: kinematics.V(0, 0, 500),
		Up:       kinematics.AxisY,
		FovY:     75,
		Width:    800,
		Height:   600,
	}
}

// newTestFleet creates n ships in a row along X.
func newTestFleet(t *testing.T, n int, seed int64) (*Fleet, *scene.MemoryHost) {
	t.Helper()
	host := scene.NewMemoryHost()
	f := New(host, rand.New(rand.NewSource(seed)), DefaultSettings())

	specs := make([]ShipSpec, n)
	for i := range specs {
		body := host.Spawn(scene.KindShipBody)
		pos := kinematics.V(float64(i)*150, 0, 0)
		host.SetTransform(body, pos, kinematics.Identity())
		specs[i] = ShipSpec{Body: body, Position: pos}
	}
	f.Initialize(specs)
	return f, host
}

func runFor(f *Fleet, seconds float64) []TickResult {
	var out []TickResult
	steps := int(math.Round(seconds / dt))
	for i := 0; i < steps; i++ {
		out = append(out, f.Tick(dt, testCamera(), Pointer{}))
	}
	return out
}

func TestInitialize(t *testing.T) {
	f, _ := newTestFleet(t, 100, 1)

	if f.AliveCount() != 100 || f.Total() != 100 {
		t.Fatalf("alive=%d total=%d, want 100/100", f.AliveCount(), f.Total())
	}

	names := make(map[string]bool)
	for _, s := range f.Ships() {
		if names[s.Name] {
			t.Errorf("duplicate name %q", s.Name)
		}
		names[s.Name] = true

		if s.State != components.StateIdle {
			t.Errorf("%s: expected idle, got %v", s.Name, s.State)
		}
		if s.Radius != 20 {
			t.Errorf("%s: expected default radius 20, got %f", s.Name, s.Radius)
		}
		a := s.Params.Acceleration
		if a < 0.05 || a >= 0.3 {
			t.Errorf("%s: acceleration %f out of range", s.Name, a)
		}
		if math.Abs(kinematics.Length(s.Params.Direction)-1) > 1e-9 {
			t.Errorf("%s: direction not unit length", s.Name)
		}
	}
}

func TestUniqueNamesBeyondPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := len(uniqueNames())*2 + 5
	names := drawNames(rng, n)
	seen := make(map[string]bool, n)
	for _, name := range names {
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

func TestAlertIdempotent(t *testing.T) {
	f, _ := newTestFleet(t, 3, 2)

	if !f.Alert() {
		t.Fatal("first alert should raise")
	}
	first := f.AlertState()
	if first.Duration < 30 || first.Duration >= 60 {
		t.Errorf("countdown %f out of [30,60)", first.Duration)
	}

	runFor(f, 1)
	if f.Alert() {
		t.Error("second alert should be a no-op")
	}
	if f.AlertState().Duration != first.Duration || f.AlertState().AlertTime != first.AlertTime {
		t.Error("second alert changed the countdown")
	}
}

func TestCountdownScenario(t *testing.T) {
	f, _ := newTestFleet(t, 10, 3)
	f.Alert()
	duration := f.AlertState().Duration

	started := -1
	results := runFor(f, 61)
	for i, r := range results {
		if r.ManeuverStarted {
			if started >= 0 {
				t.Fatalf("maneuver started twice (ticks %d and %d)", started, i)
			}
			started = i
		}
	}
	if started < 0 {
		t.Fatal("maneuver never started")
	}
	if at := float64(started+1) * dt; at < duration-1e-9 || at > duration+dt+1e-9 {
		t.Errorf("maneuver started at %f, countdown was %f", at, duration)
	}

	for _, s := range f.Ships() {
		if s.State != components.StateManeuvering {
			t.Errorf("%s still %v after countdown", s.Name, s.State)
		}
	}
	if remaining, active := f.Countdown(); active || remaining != 0 {
		t.Errorf("countdown should be finished, got %f active=%v", remaining, active)
	}
}

func TestIdleShipsStayPut(t *testing.T) {
	f, host := newTestFleet(t, 5, 4)
	runFor(f, 2)

	for _, s := range f.Ships() {
		if s.Position != s.Params.Start {
			t.Errorf("%s moved while idle: %v", s.Name, s.Position)
		}
		if s.Velocity != (kinematics.Vec{}) {
			t.Errorf("%s has velocity while idle: %v", s.Name, s.Velocity)
		}
		tr, _ := host.Transform(s.Body)
		if tr.Position != s.Params.Start {
			t.Errorf("%s body moved while idle", s.Name)
		}
	}
}

func TestRealizedPathMatchesPrediction(t *testing.T) {
	f, host := newTestFleet(t, 4, 5)
	f.Alert()
	runFor(f, 61)
	runFor(f, 10)

	tm := f.ManeuverTime()
	if tm <= 0 {
		t.Fatal("expected maneuver to be running")
	}
	for _, s := range f.Ships() {
		want := trajectory.PositionAt(s.Params, tm)
		if !kinematics.ApproxEqual(s.Position, want, 1e-9) {
			t.Errorf("%s at %v, trajectory says %v", s.Name, s.Position, want)
		}
		if math.Abs(s.Speed-s.Params.Acceleration*tm) > 1e-9 {
			t.Errorf("%s speed %f, want %f", s.Name, s.Speed, s.Params.Acceleration*tm)
		}

		line, ok := host.Object(f.identMap.Get(s.Ref).Line)
		if !ok {
			t.Fatalf("%s has no trajectory line", s.Name)
		}
		predicted := trajectory.Sample(s.Params, tm, trajectory.DefaultWindow())
		if len(line.Line) != len(predicted) {
			t.Fatalf("line has %d points, want %d", len(line.Line), len(predicted))
		}
		for i := range predicted {
			if line.Line[i] != predicted[i] {
				t.Fatalf("%s line point %d = %v, want %v", s.Name, i, line.Line[i], predicted[i])
			}
		}
	}
}

func TestMarkDestroyedIdempotent(t *testing.T) {
	f, host := newTestFleet(t, 3, 6)
	ship := f.Ships()[1]

	d, ok := f.MarkDestroyed(ship.Ref)
	if !ok {
		t.Fatal("first MarkDestroyed should succeed")
	}
	if d.Name != ship.Name || d.Position != ship.Position {
		t.Errorf("destroyed record = %+v, want name %q at %v", d, ship.Name, ship.Position)
	}

	if _, ok := f.MarkDestroyed(ship.Ref); ok {
		t.Error("second MarkDestroyed should be a no-op")
	}
	if f.AliveCount() != 2 || f.DestroyedCount() != 1 || f.Total() != 3 {
		t.Errorf("counts alive=%d destroyed=%d total=%d", f.AliveCount(), f.DestroyedCount(), f.Total())
	}
	if f.Valid(ship.Ref) {
		t.Error("destroyed ref should be invalid")
	}
	if _, ok := f.Locate(ship.Ref); ok {
		t.Error("Locate should fail for destroyed ship")
	}
	if f.StatusText() != "Fleet Status: 2/3 Operational" {
		t.Errorf("status text = %q", f.StatusText())
	}
	if host.Count(scene.KindLine) != 2 {
		t.Errorf("expected destroyed ship's line removed, have %d lines", host.Count(scene.KindLine))
	}
}

func TestExternallyRemovedBody(t *testing.T) {
	f, host := newTestFleet(t, 3, 7)
	ship := f.Ships()[0]

	host.Remove(ship.Body)
	res := f.Tick(dt, testCamera(), Pointer{})

	if len(res.Destroyed) != 1 || res.Destroyed[0].Name != ship.Name {
		t.Fatalf("expected %s destroyed this tick, got %+v", ship.Name, res.Destroyed)
	}
	if f.Valid(ship.Ref) {
		t.Error("ref should be invalid after external removal")
	}

	res = f.Tick(dt, testCamera(), Pointer{})
	if len(res.Destroyed) != 0 {
		t.Error("ship destroyed twice")
	}
}

func TestAllDestroyed(t *testing.T) {
	f, _ := newTestFleet(t, 3, 8)
	f.Alert()
	for _, s := range f.Ships() {
		f.MarkDestroyed(s.Ref)
	}
	runFor(f, 61)

	if f.AliveCount() != 0 {
		t.Fatalf("expected no ships, have %d", f.AliveCount())
	}
	if _, _, ok := f.Nearest(kinematics.Vec{}); ok {
		t.Error("Nearest should report nothing on an empty roster")
	}
	if !f.AlertState().Maneuvering {
		t.Error("countdown should still complete with no ships")
	}
}

func TestNearest(t *testing.T) {
	f, _ := newTestFleet(t, 4, 9)
	ref, d, ok := f.Nearest(kinematics.V(440, 0, 0))
	if !ok {
		t.Fatal("expected a nearest ship")
	}
	s, _ := f.Ship(ref)
	if s.Position != kinematics.V(450, 0, 0) || math.Abs(d-10) > 1e-9 {
		t.Errorf("nearest = %v at %f", s.Position, d)
	}
}

func TestClickSelection(t *testing.T) {
	host := scene.NewMemoryHost()
	f := New(host, rand.New(rand.NewSource(10)), DefaultSettings())
	body := host.Spawn(scene.KindShipBody)
	f.Initialize([]ShipSpec{{Body: body, Position: kinematics.Vec{}}})
	ref := f.Ships()[0].Ref

	center := Pointer{Pos: kinematics.Vec2{X: 400, Y: 300}, Active: true, Clicked: true}
	corner := Pointer{Pos: kinematics.Vec2{X: 2, Y: 2}, Active: true, Clicked: true}

	res := f.Tick(dt, testCamera(), center)
	if !res.SelectionChanged {
		t.Error("click should report a selection change")
	}
	if got, ok := f.Selected(); !ok || got != ref {
		t.Fatal("clicking a ship should select it")
	}

	f.Tick(dt, testCamera(), center)
	if _, ok := f.Selected(); ok {
		t.Fatal("clicking the selected ship again should deselect")
	}

	f.Tick(dt, testCamera(), center)
	f.Tick(dt, testCamera(), corner)
	if _, ok := f.Selected(); ok {
		t.Fatal("clicking empty space should deselect")
	}
}

func TestHoverHighlightsLine(t *testing.T) {
	host := scene.NewMemoryHost()
	f := New(host, rand.New(rand.NewSource(11)), DefaultSettings())
	body := host.Spawn(scene.KindShipBody)
	f.Initialize([]ShipSpec{{Body: body, Position: kinematics.Vec{}}})

	hover := Pointer{Pos: kinematics.Vec2{X: 400, Y: 300}, Active: true}
	for i := 0; i < 600; i++ {
		f.Tick(dt, testCamera(), hover)
	}
	line := host.Objects(scene.KindLine)[0]
	if math.Abs(line.Opacity-1) > 1e-3 {
		t.Errorf("hovered idle line opacity = %f, want ~1", line.Opacity)
	}

	for i := 0; i < 600; i++ {
		f.Tick(dt, testCamera(), Pointer{})
	}
	if line.Opacity > 1e-3 {
		t.Errorf("idle line should fade out, opacity = %f", line.Opacity)
	}
}

func TestLabels(t *testing.T) {
	f, _ := newTestFleet(t, 2, 12)
	f.Tick(dt, testCamera(), Pointer{})

	labels := f.Labels()
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	for _, l := range labels {
		if l.Screen.Y >= 300 {
			t.Errorf("label %q should sit above the horizon, y=%f", l.Name, l.Screen.Y)
		}
	}
}

func TestDestroyedRefIsReleased(t *testing.T) {
	f, _ := newTestFleet(t, 3, 6)
	ship := f.Ships()[0]
	f.Select(ship.Ref, true)

	if _, ok := f.MarkDestroyed(ship.Ref); !ok {
		t.Fatal("MarkDestroyed should succeed")
	}

	if f.Valid(ship.Ref) {
		t.Error("destroyed ref should not be valid")
	}
	if _, ok := f.Ship(ship.Ref); ok {
		t.Error("Ship should fail for destroyed ref")
	}
	if _, ok := f.Locate(ship.Ref); ok {
		t.Error("Locate should fail for destroyed ref")
	}
	if _, ok := f.Selected(); ok {
		t.Error("selection should clear with the destroyed ship")
	}

	f.Select(ship.Ref, true)
	if _, ok := f.Selected(); ok {
		t.Error("selecting a destroyed ref should leave nothing selected")
	}

	f.Tick(dt, testCamera(), Pointer{})
	if f.AliveCount() != 2 || len(f.Ships()) != 2 {
		t.Errorf("alive=%d ships=%d, want 2", f.AliveCount(), len(f.Ships()))
	}
}
