package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/droplet/camera"
	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/explosion"
	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/flight"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/radar"
	"github.com/pthm-cable/droplet/scene"
	"github.com/pthm-cable/droplet/telemetry"
)

// Collision is a player/ship impact detected this tick.
type Collision struct {
	Ship   string
	Impact kinematics.Vec
	Speed  float64
}

// Snapshot is the read-only state consumers see after a step.
type Snapshot struct {
	Tick    int32
	SimTime float64

	Flight   flight.Telemetry
	LockName string
	Camera   scene.Camera // the view the fleet used for labels and picking

	AutoAttack bool
	Observer   bool
	Autopilot  bool

	Countdown    float64
	CountingDown bool
	Maneuvering  bool
	Alive        int
	Destroyed    int
	Total        int
	FleetStatus  string
	Labels       []fleet.Label

	Dying   int
	Effects int
	Debris  int

	// What happened during this step.
	Collisions      []Collision
	Casualties      []fleet.DestroyedShip
	Alerted         bool
	ManeuverStarted bool
	Explosions      explosion.TickResult
	LockChanged     bool
}

// Simulation advances the player craft, the fleet and the explosions in a
// fixed order each step.
type Simulation struct {
	cfg  *config.Config
	host scene.Host
	rng  *rand.Rand

	flight     *flight.Controller
	fleet      *fleet.Fleet
	explosions *explosion.System
	rig        *camera.Rig
	radar      *radar.Radar
	observer   scene.Camera

	autoAttack    bool
	observerMode  bool
	autopilotMode bool

	prevLock   fleet.ShipRef
	prevLocked bool

	tick    int32
	simTime float64
	last    Snapshot

	perf *telemetry.PerfCollector
}

// NewSimulation builds the craft and the fleet grid on host.
func NewSimulation(cfg *config.Config, host scene.Host, rng *rand.Rand) *Simulation {
	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	camSettings := cameraSettings(cfg.Camera)

	s := &Simulation{
		cfg:        cfg,
		host:       host,
		rng:        rng,
		flight:     flight.New(flightSettings(cfg.Flight), rng),
		fleet:      fleet.New(host, rng, fleetSettings(cfg.Fleet)),
		explosions: explosion.New(host, rng, explosionSettings(cfg.Explosion)),
		rig:        camera.New(camSettings, w, h),
		radar:      radar.New(radarSettings(cfg.Radar, cfg.Fleet), radar.DefaultLandmarks()),
		observer:   camera.Observer(camSettings, w, h),
	}

	s.flight.Attach(host,
		host.Spawn(scene.KindCraft),
		host.Spawn(scene.KindGhost),
		host.Spawn(scene.KindLine),
	)
	s.spawnFleet()
	return s
}

func (s *Simulation) spawnFleet() {
	roll := kinematics.FromAxisAngle(kinematics.AxisZ, s.cfg.Fleet.Roll)
	positions := gridLayout(s.cfg.Fleet)
	specs := make([]fleet.ShipSpec, 0, len(positions))
	for _, pos := range positions {
		body := s.host.Spawn(scene.KindShipBody)
		s.host.SetTransform(body, pos, roll)
		specs = append(specs, fleet.ShipSpec{
			Body:     body,
			Position: pos,
			Rotation: roll,
			Radius:   s.cfg.Fleet.ShipRadius,
		})
	}
	s.fleet.Initialize(specs)
	slog.Info("fleet_spawned", "ships", len(specs))
}

// SetPerf attaches a phase timer. nil disables timing.
func (s *Simulation) SetPerf(p *telemetry.PerfCollector) {
	s.perf = p
}

func (s *Simulation) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

// Step advances everything by dt. Order: targeting, flight, fleet,
// explosions, collision, camera, snapshot.
func (s *Simulation) Step(dt float64, in Input) Snapshot {
	s.tick++
	s.simTime += dt
	snap := Snapshot{Tick: s.tick, SimTime: s.simTime}

	s.phase(telemetry.PhaseTargeting)
	if in.ToggleObserver {
		s.SetObserver(!s.observerMode)
	}
	if in.ToggleAutoAttack {
		s.SetAutoAttack(!s.autoAttack)
	}
	if in.Select.Set {
		s.fleet.Select(in.Select.Ship, in.Select.OK)
		s.followSelection()
	}
	s.acquireTarget()

	s.phase(telemetry.PhaseFlight)
	fin := in.Flight
	if s.autopilotMode {
		fin = autopilot(fin, s.flight.Telemetry())
	}
	s.flight.Update(dt, fin, s.rig.Pose(), s.fleet)

	s.phase(telemetry.PhaseFleet)
	view := s.View()
	fr := s.fleet.Tick(dt, view, in.Pointer)
	snap.ManeuverStarted = fr.ManeuverStarted
	snap.Casualties = append(snap.Casualties, fr.Destroyed...)
	if fr.SelectionChanged {
		s.followSelection()
	}
	if len(fr.Destroyed) > 0 {
		s.flight.ValidateLock(s.fleet)
	}

	s.phase(telemetry.PhaseExplosions)
	snap.Explosions = s.explosions.Tick(dt)

	s.phase(telemetry.PhaseCollision)
	s.detectCollisions(&snap)

	s.phase(telemetry.PhaseCamera)
	s.flight.UpdateCamera(s.rig, in.Flight.Pan, dt)

	s.phase(telemetry.PhaseTelemetry)
	s.fillSnapshot(&snap, view)
	s.last = snap
	return snap
}

// detectCollisions checks the player against every active ship. A hit
// triggers the explosion, alerts the fleet, retires the ship and drops the
// lock, in that order.
func (s *Simulation) detectCollisions(snap *Snapshot) {
	if !s.cfg.Collision.Enabled {
		return
	}
	player := s.flight.Position
	for _, ship := range s.fleet.Ships() {
		if kinematics.Distance(player, ship.Position) >= ship.Radius {
			continue
		}
		dir := kinematics.Normalize(kinematics.Sub(ship.Position, player))
		impact := kinematics.Add(player, kinematics.Scale(dir, ship.Radius))

		s.explosions.Trigger(explosion.Target{
			Body:     ship.Body,
			Position: ship.Position,
			Velocity: ship.Velocity,
			Radius:   ship.Radius,
		}, impact)
		if s.fleet.Alert() {
			snap.Alerted = true
		}
		if d, ok := s.fleet.MarkDestroyed(ship.Ref); ok {
			snap.Casualties = append(snap.Casualties, d)
		}
		s.flight.ClearLock()

		snap.Collisions = append(snap.Collisions, Collision{
			Ship:   ship.Name,
			Impact: impact,
			Speed:  s.flight.Speed,
		})
		slog.Info("collision", "ship", ship.Name, "speed", s.flight.Speed, "tick", s.tick)
	}
}

func (s *Simulation) fillSnapshot(snap *Snapshot, view scene.Camera) {
	snap.Flight = s.flight.Telemetry()
	if ref, ok := s.flight.Lock(); ok {
		if ship, ok := s.fleet.Ship(ref); ok {
			snap.LockName = ship.Name
		}
	}
	snap.Camera = view
	snap.AutoAttack = s.autoAttack
	snap.Observer = s.observerMode
	snap.Autopilot = s.autopilotMode

	snap.Countdown, snap.CountingDown = s.fleet.Countdown()
	snap.Maneuvering = s.fleet.AlertState().Maneuvering
	snap.Alive = s.fleet.AliveCount()
	snap.Destroyed = s.fleet.DestroyedCount()
	snap.Total = s.fleet.Total()
	snap.FleetStatus = s.fleet.StatusText()
	snap.Labels = s.fleet.Labels()

	snap.Dying = len(s.explosions.Dying())
	snap.Effects = len(s.explosions.Effects())
	snap.Debris = len(s.explosions.Debris())

	ref, locked := s.flight.Lock()
	snap.LockChanged = locked != s.prevLocked || (locked && ref != s.prevLock)
	s.prevLock, s.prevLocked = ref, locked
}

// View returns the camera used for labels and picking: the fixed observer
// camera in observer mode, otherwise the follow rig.
func (s *Simulation) View() scene.Camera {
	if s.observerMode {
		return s.observer
	}
	return s.rig.Pose()
}

// RadarFrame builds the tactical radar around the player.
func (s *Simulation) RadarFrame() radar.Frame {
	ref, locked := s.flight.Lock()
	heading := s.flight.Live.YawDegrees() * math.Pi / 180
	return s.radar.Build(s.flight.Position, heading, s.fleet, ref, locked)
}

// Resize updates every camera for a new viewport.
func (s *Simulation) Resize(width, height float64) {
	s.rig.Resize(width, height)
	s.observer = camera.Observer(s.rig.Settings(), width, height)
}

// Flight returns the player craft.
func (s *Simulation) Flight() *flight.Controller { return s.flight }

// Fleet returns the fleet.
func (s *Simulation) Fleet() *fleet.Fleet { return s.fleet }

// Explosions returns the explosion system.
func (s *Simulation) Explosions() *explosion.System { return s.explosions }

// Rig returns the follow camera.
func (s *Simulation) Rig() *camera.Rig { return s.rig }

// Host returns the scene host.
func (s *Simulation) Host() scene.Host { return s.host }

// Last returns the most recent snapshot.
func (s *Simulation) Last() Snapshot { return s.last }

// Tick returns the number of steps taken.
func (s *Simulation) Tick() int32 { return s.tick }

// SimTime returns the simulated seconds elapsed.
func (s *Simulation) SimTime() float64 { return s.simTime }
