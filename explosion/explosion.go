// Package explosion runs the destruction sequence for rammed ships: a dying
// phase of progressive bursts, then a terminal burst with debris.
package explosion

import (
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
)

// Settings holds explosion tuning.
type Settings struct {
	Duration      float64 // dying phase length in seconds
	DefaultRadius float64 // when the target has none
	Shake         float64 // per-axis jitter amplitude per tick

	BurstChance   float64 // per-tick mid-burst probability at full progress
	MidScaleBase  float64 // mid-burst scale at progress 0
	TerminalScale float64

	ParticlesPerScale float64
	ParticleSpeedMin  float64
	ParticleSpeedSpan float64
	ParticleSizeMin   float64
	ParticleSizeSpan  float64
	AgePerScale       float64 // particle effect lifetime per unit scale
	Drag              float64 // velocity multiplier per tick
	DarkenRate        float64

	DebrisCount     int
	DebrisMaxAge    float64
	DebrisShrink    float64 // scale multiplier per tick
	DebrisSpeedMin  float64
	DebrisSpeedSpan float64
	DebrisSizeRatio float64 // max fragment scale as a fraction of radius
}

// DefaultSettings returns the stock explosion tuning.
func DefaultSettings() Settings {
	return Settings{
		Duration:          10,
		DefaultRadius:     20,
		Shake:             0.2,
		BurstChance:       0.8,
		MidScaleBase:      0.5,
		TerminalScale:     3,
		ParticlesPerScale: 50,
		ParticleSpeedMin:  5,
		ParticleSpeedSpan: 20,
		ParticleSizeMin:   5,
		ParticleSizeSpan:  15,
		AgePerScale:       2,
		Drag:              0.95,
		DarkenRate:        2,
		DebrisCount:       20,
		DebrisMaxAge:      5,
		DebrisShrink:      0.99,
		DebrisSpeedMin:    20,
		DebrisSpeedSpan:   50,
		DebrisSizeRatio:   0.3,
	}
}

// Fire palette, from hottest to coolest.
var (
	ColorWhite     = scene.Hex(0xffffff)
	ColorYellow    = scene.Hex(0xffff00)
	ColorOrange    = scene.Hex(0xffaa00)
	ColorRedOrange = scene.Hex(0xff4400)
	ColorDebris    = scene.Hex(0x888888)
)

// FireColor maps a uniform sample in [0,1) to a fire particle color:
// 10% white, 20% yellow, 30% orange, 40% red-orange.
func FireColor(r float64) scene.Color {
	switch {
	case r < 0.1:
		return ColorWhite
	case r < 0.3:
		return ColorYellow
	case r < 0.6:
		return ColorOrange
	}
	return ColorRedOrange
}

// Opacity is the effect fade curve, 1 - (age/maxAge)^2.
func Opacity(age, maxAge float64) float64 {
	if maxAge <= 0 {
		return 0
	}
	lr := age / maxAge
	return math.Max(0, 1-lr*lr)
}

// Target is the ship being destroyed.
type Target struct {
	Body     scene.ObjectID
	Position kinematics.Vec
	Velocity kinematics.Vec // inherited by every burst and fragment
	Radius   float64
}

// DyingCraft is a body counting down to its terminal burst.
type DyingCraft struct {
	Body     scene.ObjectID
	Position kinematics.Vec
	Rotation kinematics.Quat
	Impact   kinematics.Vec
	Velocity kinematics.Vec
	Radius   float64
	Timer    float64
	Duration float64
}

// Progress returns the elapsed fraction of the dying phase.
func (d *DyingCraft) Progress() float64 {
	return d.Timer / d.Duration
}

// Particle is one spark in an effect.
type Particle struct {
	Position kinematics.Vec
	Velocity kinematics.Vec
	Color    scene.Color
	Size     float64
}

// Effect is a particle burst.
type Effect struct {
	ID        scene.ObjectID
	Particles []Particle
	Scale     float64
	Age       float64
	MaxAge    float64
	Terminal  bool
}

// Opacity returns the effect's current fade.
func (e *Effect) Opacity() float64 {
	return Opacity(e.Age, e.MaxAge)
}

// Debris is a tumbling hull fragment.
type Debris struct {
	ID       scene.ObjectID
	Position kinematics.Vec
	Velocity kinematics.Vec
	Euler    kinematics.Vec // rotation angles, XYZ order
	Spin     kinematics.Vec // radians per second per axis
	Scale    float64
	Age      float64
	MaxAge   float64
}

// Stats are lifetime counters.
type Stats struct {
	Triggered      int
	MidBursts      int
	TerminalBursts int
	Debris         int
}

// TickResult reports what a tick produced.
type TickResult struct {
	MidBursts      int
	TerminalBursts int
	Debris         int
	Finished       []scene.ObjectID // bodies removed this tick
}

// System owns every dying craft, effect and fragment.
type System struct {
	host     scene.Host
	rng      *rand.Rand
	settings Settings

	dying   []*DyingCraft
	effects []*Effect
	debris  []*Debris

	points []scene.Point
	stats  Stats
}

// New creates an empty explosion system.
func New(host scene.Host, rng *rand.Rand, s Settings) *System {
	return &System{
		host:     host,
		rng:      rng,
		settings: s,
	}
}

// Trigger starts the dying sequence for target. A body that is already dying
// is ignored and false is returned.
func (s *System) Trigger(target Target, impact kinematics.Vec) bool {
	for _, d := range s.dying {
		if d.Body == target.Body {
			return false
		}
	}
	radius := target.Radius
	if radius <= 0 {
		radius = s.settings.DefaultRadius
	}
	rot := kinematics.Identity()
	if tr, ok := s.host.Transform(target.Body); ok {
		rot = tr.Rotation
	}

	s.dying = append(s.dying, &DyingCraft{
		Body:     target.Body,
		Position: target.Position,
		Rotation: rot,
		Impact:   impact,
		Velocity: target.Velocity,
		Radius:   radius,
		Duration: s.settings.Duration,
	})
	s.stats.Triggered++
	slog.Debug("explosion_triggered", "body", target.Body, "radius", radius)
	return true
}

// Tick advances all dying craft, effects and debris by dt.
func (s *System) Tick(dt float64) TickResult {
	var res TickResult

	s.dying = slices.DeleteFunc(s.dying, func(d *DyingCraft) bool {
		d.Timer += dt
		if d.Timer >= d.Duration {
			s.burst(d.Position, s.settings.TerminalScale, d.Velocity, true)
			s.spawnDebris(d.Position, d.Radius, d.Velocity)
			s.host.Remove(d.Body)

			res.TerminalBursts++
			res.Debris += s.settings.DebrisCount
			res.Finished = append(res.Finished, d.Body)
			return true
		}

		d.Position = kinematics.Add(d.Position, s.shake())
		s.host.SetTransform(d.Body, d.Position, d.Rotation)

		progress := math.Min(1, d.Progress())
		if s.rng.Float64() < progress*s.settings.BurstChance {
			offset := kinematics.Normalize(kinematics.RandomCube(s.rng, 1))
			offset = kinematics.Scale(offset, d.Radius*s.rng.Float64())
			surface := kinematics.Add(d.Position, offset)
			at := kinematics.Lerp(d.Impact, surface, progress)
			s.burst(at, s.settings.MidScaleBase+progress, d.Velocity, false)
			res.MidBursts++
		}
		return false
	})

	s.effects = slices.DeleteFunc(s.effects, func(e *Effect) bool {
		return !s.updateEffect(e, dt)
	})
	s.debris = slices.DeleteFunc(s.debris, func(d *Debris) bool {
		return !s.updateDebris(d, dt)
	})

	s.stats.MidBursts += res.MidBursts
	s.stats.TerminalBursts += res.TerminalBursts
	s.stats.Debris += res.Debris
	return res
}

func (s *System) shake() kinematics.Vec {
	a := s.settings.Shake
	return kinematics.V(
		(s.rng.Float64()-0.5)*a,
		(s.rng.Float64()-0.5)*a,
		(s.rng.Float64()-0.5)*a,
	)
}

// burst spawns a fire particle effect at pos.
func (s *System) burst(pos kinematics.Vec, scale float64, base kinematics.Vec, terminal bool) {
	st := s.settings
	n := int(math.Floor(st.ParticlesPerScale * scale))
	e := &Effect{
		ID:        s.host.Spawn(scene.KindPoints),
		Particles: make([]Particle, n),
		Scale:     scale,
		MaxAge:    st.AgePerScale * scale,
		Terminal:  terminal,
	}
	for i := range e.Particles {
		speed := (s.rng.Float64()*st.ParticleSpeedSpan + st.ParticleSpeedMin) * scale
		dir := kinematics.RandomUnit(s.rng)
		e.Particles[i] = Particle{
			Position: pos,
			Velocity: kinematics.Add(base, kinematics.Scale(dir, speed)),
			Color:    FireColor(s.rng.Float64()),
			Size:     (s.rng.Float64()*st.ParticleSizeSpan + st.ParticleSizeMin) * scale,
		}
	}
	s.effects = append(s.effects, e)
	s.pushPoints(e)
}

func (s *System) spawnDebris(pos kinematics.Vec, radius float64, base kinematics.Vec) {
	st := s.settings
	for i := 0; i < st.DebrisCount; i++ {
		jitter := kinematics.Scale(kinematics.RandomCube(s.rng, 0.5), radius)
		scale := s.rng.Float64() * radius * st.DebrisSizeRatio
		euler := kinematics.V(
			s.rng.Float64()*math.Pi,
			s.rng.Float64()*math.Pi,
			s.rng.Float64()*math.Pi,
		)
		speed := s.rng.Float64()*st.DebrisSpeedSpan + st.DebrisSpeedMin
		dir := kinematics.Normalize(kinematics.RandomCube(s.rng, 0.5))
		d := &Debris{
			ID:       s.host.Spawn(scene.KindDebris),
			Position: kinematics.Add(pos, jitter),
			Velocity: kinematics.Add(kinematics.Scale(dir, speed), base),
			Euler:    euler,
			Spin:     kinematics.RandomCube(s.rng, 0.5),
			Scale:    scale,
			MaxAge:   st.DebrisMaxAge,
		}
		s.host.SetTransform(d.ID, d.Position, kinematics.FromEuler(d.Euler))
		s.host.SetScale(d.ID, d.Scale)
		s.debris = append(s.debris, d)
	}
}

// updateEffect ages and integrates e. It returns false once e has expired and
// been removed from the scene.
func (s *System) updateEffect(e *Effect, dt float64) bool {
	e.Age += dt
	if e.Age >= e.MaxAge {
		s.host.Remove(e.ID)
		return false
	}

	lr := e.Age / e.MaxAge
	darken := 1.0
	if lr > 0.5 {
		darken = 1 - (lr-0.5)*2*dt*s.settings.DarkenRate
	}
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Position = kinematics.Add(p.Position, kinematics.Scale(p.Velocity, dt))
		p.Velocity = kinematics.Scale(p.Velocity, s.settings.Drag)
		if darken != 1 {
			p.Color = p.Color.Scale(darken)
		}
	}
	s.pushPoints(e)
	return true
}

func (s *System) pushPoints(e *Effect) {
	s.points = s.points[:0]
	for _, p := range e.Particles {
		s.points = append(s.points, scene.Point{Pos: p.Position, Color: p.Color, Size: p.Size})
	}
	s.host.SetPoints(e.ID, s.points, e.Opacity())
}

func (s *System) updateDebris(d *Debris, dt float64) bool {
	d.Age += dt
	if d.Age >= d.MaxAge {
		s.host.Remove(d.ID)
		return false
	}
	d.Position = kinematics.Add(d.Position, kinematics.Scale(d.Velocity, dt))
	d.Euler = kinematics.Add(d.Euler, kinematics.Scale(d.Spin, dt))
	d.Scale *= s.settings.DebrisShrink

	s.host.SetTransform(d.ID, d.Position, kinematics.FromEuler(d.Euler))
	s.host.SetScale(d.ID, d.Scale)
	return true
}

// Dying returns the craft still in their dying phase.
func (s *System) Dying() []*DyingCraft { return s.dying }

// Effects returns the live particle effects.
func (s *System) Effects() []*Effect { return s.effects }

// Debris returns the live fragments.
func (s *System) Debris() []*Debris { return s.debris }

// IsDying reports whether body is in its dying phase.
func (s *System) IsDying(body scene.ObjectID) bool {
	for _, d := range s.dying {
		if d.Body == body {
			return true
		}
	}
	return false
}

// Stats returns lifetime counters.
func (s *System) Stats() Stats { return s.stats }

// Active reports whether anything is still animating.
func (s *System) Active() bool {
	return len(s.dying) > 0 || len(s.effects) > 0 || len(s.debris) > 0
}
