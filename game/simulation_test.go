package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/radar"
	"github.com/pthm-cable/droplet/scene"
)

const dt = 1.0 / 60

func testConfig(t *testing.T, cols, rows int) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Fleet.Columns = cols
	cfg.Fleet.Rows = rows
	cfg.Physics.DT = dt
	return cfg
}

func newTestSim(t *testing.T, cols, rows int) (*Simulation, *scene.MemoryHost) {
	t.Helper()
	host := scene.NewMemoryHost()
	return NewSimulation(testConfig(t, cols, rows), host, rand.New(rand.NewSource(7))), host
}

func TestGridLayout(t *testing.T) {
	cfg := testConfig(t, 10, 10)
	pos := gridLayout(cfg.Fleet)
	if len(pos) != 100 {
		t.Fatalf("len = %d, want 100", len(pos))
	}

	var sum kinematics.Vec
	for _, p := range pos {
		sum = kinematics.Add(sum, p)
		if p.Z != 1500 {
			t.Errorf("z = %v, want 1500", p.Z)
		}
	}
	mean := kinematics.Scale(sum, 1.0/100)
	if !kinematics.ApproxEqual(mean, kinematics.V(0, 20, 1500), 1e-9) {
		t.Errorf("grid center = %v", mean)
	}
	if pos[0].X != -675 || pos[99].X != 675 {
		t.Errorf("x extent = %v..%v, want -675..675", pos[0].X, pos[99].X)
	}
}

func TestNewSimulationSpawnsFleet(t *testing.T) {
	sim, host := newTestSim(t, 10, 10)
	if sim.Fleet().Total() != 100 || sim.Fleet().AliveCount() != 100 {
		t.Fatalf("total=%d alive=%d", sim.Fleet().Total(), sim.Fleet().AliveCount())
	}
	if n := host.Count(scene.KindShipBody); n != 100 {
		t.Errorf("ship bodies = %d, want 100", n)
	}
	if host.Count(scene.KindCraft) != 1 || host.Count(scene.KindGhost) != 1 {
		t.Error("craft and ghost bodies should be spawned")
	}

	snap := sim.Step(dt, Input{})
	if snap.FleetStatus != "Fleet Status: 100/100 Operational" {
		t.Errorf("status = %q", snap.FleetStatus)
	}
	if snap.Tick != 1 || math.Abs(snap.SimTime-dt) > 1e-12 {
		t.Errorf("tick=%d time=%v", snap.Tick, snap.SimTime)
	}
}

func TestCollisionScenario(t *testing.T) {
	sim, host := newTestSim(t, 2, 1)
	ships := sim.Fleet().Ships()
	target, bystander := ships[0], ships[1]

	sim.Flight().SetLock(target.Ref)
	sim.Flight().Position = kinematics.Add(target.Position, kinematics.V(0, 0, -5))

	snap := sim.Step(dt, Input{})

	if len(snap.Collisions) != 1 || snap.Collisions[0].Ship != target.Name {
		t.Fatalf("collisions = %+v", snap.Collisions)
	}
	if len(snap.Casualties) != 1 || snap.Casualties[0].Name != target.Name {
		t.Fatalf("casualties = %+v", snap.Casualties)
	}
	if sim.Fleet().Valid(target.Ref) {
		t.Error("target still on the active roster")
	}
	if !sim.Fleet().Valid(bystander.Ref) {
		t.Error("bystander destroyed")
	}
	if !sim.Explosions().IsDying(target.Body) {
		t.Error("no explosion triggered for the target body")
	}
	if _, ok := sim.Flight().Lock(); ok {
		t.Error("lock should clear on collision")
	}
	if !snap.Alerted || !snap.CountingDown {
		t.Error("collision should alert the fleet")
	}
	if snap.Countdown < 30 || snap.Countdown >= 60 {
		t.Errorf("countdown = %v, want [30,60)", snap.Countdown)
	}
	if snap.Alive != 1 || snap.Destroyed != 1 {
		t.Errorf("alive=%d destroyed=%d", snap.Alive, snap.Destroyed)
	}

	// The impact point sits on the collision sphere, toward the player.
	impact := snap.Collisions[0].Impact
	want := kinematics.Add(sim.Flight().Position, kinematics.V(0, 0, target.Radius))
	if !kinematics.ApproxEqual(impact, want, 1e-9) {
		t.Errorf("impact = %v, want %v", impact, want)
	}

	// The body lives through the dying phase, then goes with no second casualty.
	if !host.Exists(target.Body) {
		t.Fatal("body removed before the terminal burst")
	}
	terminal := 0
	for i := 0; i < 700; i++ {
		s := sim.Step(dt, Input{})
		if len(s.Casualties) != 0 {
			t.Fatalf("tick %d: unexpected casualties %+v", s.Tick, s.Casualties)
		}
		terminal += s.Explosions.TerminalBursts
	}
	if terminal != 1 {
		t.Errorf("terminal bursts = %d, want 1", terminal)
	}
	if host.Exists(target.Body) {
		t.Error("body should be removed after the explosion")
	}
	if sim.Fleet().DestroyedCount() != 1 {
		t.Errorf("destroyed = %d, want 1", sim.Fleet().DestroyedCount())
	}
}

func TestLockClearsSameTickAsExternalRemoval(t *testing.T) {
	sim, host := newTestSim(t, 2, 1)
	target := sim.Fleet().Ships()[1]
	sim.Flight().SetLock(target.Ref)
	sim.Step(dt, Input{})

	host.Remove(target.Body)
	snap := sim.Step(dt, Input{})

	if len(snap.Casualties) != 1 || snap.Casualties[0].Name != target.Name {
		t.Fatalf("casualties = %+v", snap.Casualties)
	}
	if _, ok := sim.Flight().Lock(); ok {
		t.Error("lock should read empty in the tick the target is destroyed")
	}
	if snap.Flight.Locked || !snap.LockChanged {
		t.Errorf("snapshot locked=%v changed=%v", snap.Flight.Locked, snap.LockChanged)
	}
}

func TestAutoAttackLocksNearest(t *testing.T) {
	sim, _ := newTestSim(t, 3, 1)
	ships := sim.Fleet().Ships()

	snap := sim.Step(dt, Input{ToggleAutoAttack: true})
	if !snap.AutoAttack {
		t.Fatal("auto-attack should be on")
	}
	ref, ok := sim.Flight().Lock()
	if !ok || ref != ships[1].Ref {
		t.Fatalf("locked %v (%v), want middle ship", ref, ok)
	}
	if snap.LockName != ships[1].Name || !snap.LockChanged {
		t.Errorf("lock name=%q changed=%v", snap.LockName, snap.LockChanged)
	}

	// Losing the target retargets on the next tick.
	sim.Fleet().MarkDestroyed(ships[1].Ref)
	sim.Step(dt, Input{})
	ref, ok = sim.Flight().Lock()
	if !ok || (ref != ships[0].Ref && ref != ships[2].Ref) {
		t.Errorf("expected a retarget, got %v (%v)", ref, ok)
	}

	snap = sim.Step(dt, Input{ToggleAutoAttack: true})
	if snap.AutoAttack || snap.Flight.Locked {
		t.Error("turning auto-attack off should drop the lock")
	}
}

func TestAutoAttackTurnsOffWhenFleetGone(t *testing.T) {
	sim, _ := newTestSim(t, 2, 1)
	sim.SetAutoAttack(true)
	for _, s := range sim.Fleet().Ships() {
		sim.Fleet().MarkDestroyed(s.Ref)
	}

	snap := sim.Step(dt, Input{})
	if snap.AutoAttack {
		t.Error("auto-attack should switch off with no targets")
	}
	if snap.Flight.Locked {
		t.Error("lock should be empty")
	}
}

func TestObserverMode(t *testing.T) {
	sim, _ := newTestSim(t, 3, 1)

	snap := sim.Step(dt, Input{ToggleObserver: true})
	if !snap.Observer || !snap.AutoAttack {
		t.Fatalf("observer=%v auto=%v, want both on", snap.Observer, snap.AutoAttack)
	}
	if snap.Camera.Position != kinematics.V(0, 0, 3000) {
		t.Errorf("view camera = %v, want the observer position", snap.Camera.Position)
	}
	if !snap.Flight.Locked {
		t.Error("observer mode should acquire a target")
	}

	snap = sim.Step(dt, Input{ToggleObserver: true})
	if snap.Observer || snap.AutoAttack || snap.Flight.Locked {
		t.Errorf("leaving observer: observer=%v auto=%v locked=%v", snap.Observer, snap.AutoAttack, snap.Flight.Locked)
	}
	if snap.Camera.Position == kinematics.V(0, 0, 3000) {
		t.Error("view should return to the follow rig")
	}
}

func TestSelectionDrivesLock(t *testing.T) {
	sim, _ := newTestSim(t, 3, 1)
	ships := sim.Fleet().Ships()

	sim.Step(dt, Input{Select: SelectShip(ships[2].Ref)})
	ref, ok := sim.Flight().Lock()
	if !ok || ref != ships[2].Ref {
		t.Fatalf("lock = %v (%v), want selected ship", ref, ok)
	}
	if sel, ok := sim.Fleet().Selected(); !ok || sel != ships[2].Ref {
		t.Error("fleet selection not applied")
	}

	sim.Step(dt, Input{Select: ClearSelection()})
	if _, ok := sim.Flight().Lock(); ok {
		t.Error("clearing the selection should drop the lock")
	}
}

func TestAutopilotRamsTarget(t *testing.T) {
	sim, _ := newTestSim(t, 1, 1)
	sim.SetAutoAttack(true)
	sim.SetAutopilot(true)

	var maxSpeed float64
	for i := 0; i < 30*60 && sim.Fleet().DestroyedCount() == 0; i++ {
		snap := sim.Step(dt, Input{})
		maxSpeed = math.Max(maxSpeed, snap.Flight.Speed)
	}
	if sim.Fleet().DestroyedCount() != 1 {
		t.Fatalf("autopilot failed to reach the target, max speed %v", maxSpeed)
	}
	if maxSpeed > autopilotMaxSpeed*autopilotSlack+10 {
		t.Errorf("max speed = %v, autopilot should cap near %v", maxSpeed, autopilotMaxSpeed)
	}
}

func TestRadarFrame(t *testing.T) {
	sim, _ := newTestSim(t, 2, 1)
	sim.Flight().Position = kinematics.V(0, 0, 1400)

	frame := sim.RadarFrame()
	if n := frame.Count(radar.BlipLandmark); n == 0 {
		t.Error("expected landmarks near the fleet")
	}
	for _, s := range sim.Fleet().Ships() {
		if _, ok := frame.Ship(s.Name); !ok {
			t.Errorf("ship %s missing from radar", s.Name)
		}
	}
}
