// Package radar builds the 2D tactical radar view around the player.
//
// The radar is a top-down projection: world X maps to radar X and world Z
// maps to radar Y, both relative to the player and multiplied by Scale.
// Anything whose offset reaches half the radar width or height is culled.
package radar

import (
	"math"

	"github.com/pthm-cable/droplet/components"
	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/scene"
	"github.com/pthm-cable/droplet/trajectory"
)

// Settings holds the radar layout.
type Settings struct {
	Width, Height float64 // pixels
	Scale         float64 // pixels per world unit
	ShowPaths     bool
	PathStride    int // keep every Nth trajectory sample
	Window        trajectory.Window
}

// DefaultSettings returns a 300x300 radar at 1px per 10 units.
func DefaultSettings() Settings {
	return Settings{
		Width:      300,
		Height:     300,
		Scale:      0.1,
		ShowPaths:  true,
		PathStride: 4,
		Window:     trajectory.DefaultWindow(),
	}
}

// Landmark is a fixed reference point drawn on the radar.
type Landmark struct {
	Name  string
	X, Z  float64
	Size  float64
	Color scene.Color
}

// DefaultLandmarks returns the stock reference points.
func DefaultLandmarks() []Landmark {
	return []Landmark{
		{Name: "Sun", X: 0, Z: 0, Size: 4, Color: scene.Hex(0xffaa00)},
		{Name: "Earth", X: 200, Z: 100, Size: 2, Color: scene.Hex(0x00aaff)},
		{Name: "Jupiter", X: -300, Z: 400, Size: 3, Color: scene.Hex(0xffcc99)},
		{Name: "Fleet", X: 500, Z: -500, Size: 2, Color: scene.Hex(0xff0000)},
	}
}

// BlipKind distinguishes radar markers.
type BlipKind uint8

const (
	BlipLandmark BlipKind = iota
	BlipShip
	BlipCasualty
)

func (k BlipKind) String() string {
	switch k {
	case BlipLandmark:
		return "landmark"
	case BlipShip:
		return "ship"
	case BlipCasualty:
		return "casualty"
	}
	return "unknown"
}

// Marker colors.
var (
	ShipColor     = scene.Hex(0xff5555)
	LockColor     = scene.Hex(0xff3366)
	SelectColor   = scene.White
	CasualtyColor = scene.Hex(0x555555)
	PathColor     = scene.Hex(0x00f3ff)
)

// Blip is one marker, positioned relative to the radar center.
type Blip struct {
	Kind     BlipKind
	Name     string
	Offset   kinematics.Vec2
	Size     float64
	Color    scene.Color
	Locked   bool
	Selected bool
	Moving   bool
}

// Path is one predicted trajectory, split into runs of visible points.
type Path struct {
	Name     string
	Runs     [][]kinematics.Vec2
	Locked   bool
	Selected bool
}

// Frame is everything the radar draws for one tick.
type Frame struct {
	Width, Height float64
	Heading       float64 // player yaw in radians, 0 = +Z
	Blips         []Blip
	Paths         []Path
}

// Ship returns the first ship blip with the given name.
func (f *Frame) Ship(name string) (Blip, bool) {
	for _, b := range f.Blips {
		if b.Kind == BlipShip && b.Name == name {
			return b, true
		}
	}
	return Blip{}, false
}

// Count returns the number of blips of kind k.
func (f *Frame) Count(k BlipKind) int {
	n := 0
	for _, b := range f.Blips {
		if b.Kind == k {
			n++
		}
	}
	return n
}

// Fleet is the read side of the fleet the radar needs.
type Fleet interface {
	Ships() []fleet.Ship
	Destroyed() []fleet.DestroyedShip
	ManeuverTime() float64
}

// Radar projects fleet and landmark positions into radar space.
type Radar struct {
	settings  Settings
	landmarks []Landmark
	samples   []kinematics.Vec
}

// New creates a radar with the given layout and landmarks.
func New(s Settings, landmarks []Landmark) *Radar {
	if s.PathStride < 1 {
		s.PathStride = 1
	}
	return &Radar{settings: s, landmarks: landmarks}
}

// Settings returns the radar layout.
func (r *Radar) Settings() Settings {
	return r.settings
}

// Project maps a world position to a radar offset from center. ok is false
// when the point falls outside the radar.
func (r *Radar) Project(world, player kinematics.Vec) (kinematics.Vec2, bool) {
	return r.project(world.X, world.Z, player)
}

func (r *Radar) project(x, z float64, player kinematics.Vec) (kinematics.Vec2, bool) {
	off := kinematics.Vec2{
		X: (x - player.X) * r.settings.Scale,
		Y: (z - player.Z) * r.settings.Scale,
	}
	ok := math.Abs(off.X) < r.settings.Width/2 && math.Abs(off.Y) < r.settings.Height/2
	return off, ok
}

// Build assembles the radar frame around the player. lock is the player's
// current lock target, if any.
func (r *Radar) Build(player kinematics.Vec, heading float64, fl Fleet, lock fleet.ShipRef, locked bool) Frame {
	frame := Frame{
		Width:   r.settings.Width,
		Height:  r.settings.Height,
		Heading: heading,
	}

	for _, lm := range r.landmarks {
		if off, ok := r.project(lm.X, lm.Z, player); ok {
			frame.Blips = append(frame.Blips, Blip{
				Kind:   BlipLandmark,
				Name:   lm.Name,
				Offset: off,
				Size:   lm.Size,
				Color:  lm.Color,
			})
		}
	}

	for _, d := range fl.Destroyed() {
		if off, ok := r.Project(d.Position, player); ok {
			frame.Blips = append(frame.Blips, Blip{
				Kind:   BlipCasualty,
				Name:   d.Name,
				Offset: off,
				Size:   2,
				Color:  CasualtyColor,
			})
		}
	}

	t := fl.ManeuverTime()
	for _, s := range fl.Ships() {
		isLocked := locked && s.Ref == lock
		moving := s.State == components.StateManeuvering

		if r.settings.ShowPaths && moving {
			if p := r.path(s, t, player); len(p.Runs) > 0 {
				p.Locked = isLocked
				frame.Paths = append(frame.Paths, p)
			}
		}

		off, ok := r.Project(s.Position, player)
		if !ok {
			continue
		}
		color := ShipColor
		switch {
		case isLocked:
			color = LockColor
		case s.Selected:
			color = SelectColor
		}
		frame.Blips = append(frame.Blips, Blip{
			Kind:     BlipShip,
			Name:     s.Name,
			Offset:   off,
			Size:     2,
			Color:    color,
			Locked:   isLocked,
			Selected: s.Selected,
			Moving:   moving,
		})
	}

	return frame
}

// path samples the ship's trajectory the same way the fleet draws it and
// splits it wherever it leaves the radar.
func (r *Radar) path(s fleet.Ship, t float64, player kinematics.Vec) Path {
	r.samples = trajectory.SampleInto(r.samples, s.Params, t, r.settings.Window)
	p := Path{Name: s.Name, Selected: s.Selected}

	var run []kinematics.Vec2
	last := len(r.samples) - 1
	for i, pt := range r.samples {
		if i%r.settings.PathStride != 0 && i != last {
			continue
		}
		off, ok := r.Project(pt, player)
		if !ok {
			if len(run) > 1 {
				p.Runs = append(p.Runs, run)
			}
			run = nil
			continue
		}
		run = append(run, off)
	}
	if len(run) > 1 {
		p.Runs = append(p.Runs, run)
	}
	return p
}
