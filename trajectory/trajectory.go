// Package trajectory implements the closed-form ship path model.
//
// A ship travels along a straight direction with constant acceleration while
// three sine waves push it around on two axes perpendicular to that direction.
// Position is a pure function of path distance, so the fleet simulation and
// every predictive consumer (trajectory lines, radar) evaluate the same curve.
package trajectory

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/droplet/kinematics"
)

// Wave is one sinusoidal perturbation term over path distance.
type Wave struct {
	Freq  float64
	Amp   float64
	Phase float64
}

// At evaluates sin(s*freq + phase) * amp.
func (w Wave) At(s float64) float64 {
	return math.Sin(s*w.Freq+w.Phase) * w.Amp
}

// Params are the immutable motion parameters of one ship.
type Params struct {
	Start        kinematics.Vec
	Direction    kinematics.Vec // unit length
	Acceleration float64

	Primary   Wave // large sweeping motion, drives both axes
	Secondary Wave // fast detail on the first axis
	Tertiary  Wave // slow drift on the second axis

	// Offsets evaluated at s=0, subtracted so the curve starts at Start.
	Offset1 float64
	Offset2 float64

	// Perpendicular basis, derived from Direction.
	right   kinematics.Vec
	localUp kinematics.Vec
}

// Ranges holds the sampling bounds for randomized parameters.
// Each pair is [min, min+span).
type Ranges struct {
	AccelMin, AccelSpan float64

	Freq1Min, Freq1Span float64
	Amp1Min, Amp1Span   float64
	Freq2Min, Freq2Span float64
	Amp2Min, Amp2Span   float64
	Freq3Min, Freq3Span float64
	Amp3Min, Amp3Span   float64
}

// DefaultRanges returns the stock sampling bounds.
func DefaultRanges() Ranges {
	return Ranges{
		AccelMin: 0.05, AccelSpan: 0.25,
		Freq1Min: 0.002, Freq1Span: 0.004,
		Amp1Min: 50, Amp1Span: 50,
		Freq2Min: 0.01, Freq2Span: 0.02,
		Amp2Min: 10, Amp2Span: 20,
		Freq3Min: 0.0005, Freq3Span: 0.001,
		Amp3Min: 20, Amp3Span: 40,
	}
}

// NewParams draws random motion parameters for a ship parked at start.
func NewParams(rng *rand.Rand, start kinematics.Vec, r Ranges) Params {
	dir := kinematics.Normalize(kinematics.V(
		rng.Float64()-0.5,
		rng.Float64()-0.5,
		rng.Float64()-0.5,
	))
	if kinematics.Length(dir) == 0 {
		dir = kinematics.AxisZ
	}

	accel := r.AccelMin + rng.Float64()*r.AccelSpan

	wave := func(fMin, fSpan, aMin, aSpan float64) Wave {
		return Wave{
			Freq:  fMin + rng.Float64()*fSpan,
			Amp:   aMin + rng.Float64()*aSpan,
			Phase: rng.Float64() * 2 * math.Pi,
		}
	}
	w1 := wave(r.Freq1Min, r.Freq1Span, r.Amp1Min, r.Amp1Span)
	w2 := wave(r.Freq2Min, r.Freq2Span, r.Amp2Min, r.Amp2Span)
	w3 := wave(r.Freq3Min, r.Freq3Span, r.Amp3Min, r.Amp3Span)

	return New(start, dir, accel, w1, w2, w3)
}

// New builds Params from explicit values and precomputes the continuity
// offsets and the perpendicular basis.
func New(start, direction kinematics.Vec, accel float64, primary, secondary, tertiary Wave) Params {
	p := Params{
		Start:        start,
		Direction:    kinematics.Normalize(direction),
		Acceleration: accel,
		Primary:      primary,
		Secondary:    secondary,
		Tertiary:     tertiary,
	}
	p.Offset1 = math.Sin(primary.Phase)*primary.Amp + math.Sin(secondary.Phase)*secondary.Amp
	p.Offset2 = math.Cos(primary.Phase)*primary.Amp + math.Sin(tertiary.Phase)*tertiary.Amp
	p.right, p.localUp = Basis(p.Direction)
	return p
}

// Basis returns the two axes perpendicular to dir used for the organic offset.
// A vertical direction falls back to world X for the first axis.
func Basis(dir kinematics.Vec) (right, localUp kinematics.Vec) {
	right = kinematics.Normalize(kinematics.Cross(dir, kinematics.AxisY))
	if kinematics.Dot(right, right) < 0.01 {
		right = kinematics.AxisX
	}
	localUp = kinematics.Normalize(kinematics.Cross(right, dir))
	return right, localUp
}

// PositionAtDistance returns the world position after travelling s units
// along the path. PositionAtDistance(p, 0) == p.Start.
func PositionAtDistance(p Params, s float64) kinematics.Vec {
	right, localUp := p.right, p.localUp
	if right == (kinematics.Vec{}) {
		right, localUp = Basis(p.Direction)
	}

	off1 := p.Primary.At(s) + p.Secondary.At(s) - p.Offset1
	off2 := math.Cos(s*p.Primary.Freq+p.Primary.Phase)*p.Primary.Amp + p.Tertiary.At(s) - p.Offset2

	pos := kinematics.Add(p.Start, kinematics.Scale(p.Direction, s))
	pos = kinematics.Add(pos, kinematics.Scale(right, off1))
	pos = kinematics.Add(pos, kinematics.Scale(localUp, off2))
	return pos
}

// DistanceAt returns the path distance covered after t seconds of constant
// acceleration from rest.
func DistanceAt(accel, t float64) float64 {
	if t <= 0 {
		return 0
	}
	return 0.5 * accel * t * t
}

// SpeedAt returns the speed after t seconds of constant acceleration.
func SpeedAt(accel, t float64) float64 {
	if t <= 0 {
		return 0
	}
	return accel * t
}

// PositionAt returns the position t seconds after the maneuver started.
func PositionAt(p Params, t float64) kinematics.Vec {
	return PositionAtDistance(p, DistanceAt(p.Acceleration, t))
}

// Pose is the evaluated state of a ship at some instant.
type Pose struct {
	Position kinematics.Vec
	Velocity kinematics.Vec
	Heading  kinematics.Vec // unit vector toward the look-ahead point
	Speed    float64
}

// Evaluate computes position, heading and velocity t seconds into the
// maneuver. Heading points at the position lookAhead units further along.
func Evaluate(p Params, t, lookAhead float64) Pose {
	s := DistanceAt(p.Acceleration, t)
	speed := SpeedAt(p.Acceleration, t)
	cur := PositionAtDistance(p, s)
	ahead := PositionAtDistance(p, s+lookAhead)
	heading := kinematics.Normalize(kinematics.Sub(ahead, cur))
	return Pose{
		Position: cur,
		Velocity: kinematics.Scale(heading, speed),
		Heading:  heading,
		Speed:    speed,
	}
}

// Window describes how much of the path to sample around the current time.
type Window struct {
	History float64 // seconds of past path
	Future  float64 // seconds of predicted path
	Steps   int     // samples = Steps+1
}

// DefaultWindow returns the stock window: two minutes behind, three ahead,
// 200 segments.
func DefaultWindow() Window {
	return Window{History: 120, Future: 180, Steps: 200}
}

// Sample returns Steps+1 positions spanning [max(0, t-History), t+Future].
// It is the only function used to draw predicted paths, and it evaluates the
// same curve PositionAt uses to place the ship.
func Sample(p Params, t float64, w Window) []kinematics.Vec {
	return SampleInto(nil, p, t, w)
}

// SampleInto is Sample writing into dst, reusing its capacity.
func SampleInto(dst []kinematics.Vec, p Params, t float64, w Window) []kinematics.Vec {
	dst = dst[:0]
	start := math.Max(0, t-w.History)
	end := t + w.Future
	duration := end - start
	if duration <= 0 || w.Steps <= 0 {
		return dst
	}
	for i := 0; i <= w.Steps; i++ {
		ti := start + duration*float64(i)/float64(w.Steps)
		dst = append(dst, PositionAt(p, ti))
	}
	return dst
}
