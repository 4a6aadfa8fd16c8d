package game

import (
	"github.com/pthm-cable/droplet/camera"
	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/explosion"
	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/flight"
	"github.com/pthm-cable/droplet/kinematics"
	"github.com/pthm-cable/droplet/radar"
	"github.com/pthm-cable/droplet/trajectory"
)

func vec(a [3]float64) kinematics.Vec {
	return kinematics.V(a[0], a[1], a[2])
}

func flightSettings(c config.FlightConfig) flight.Settings {
	return flight.Settings{
		MaxSpeed:      c.MaxSpeed,
		SpeedKnee:     c.SpeedKnee,
		BoostLow:      c.BoostLow,
		BoostHigh:     c.BoostHigh,
		BrakeLow:      c.BrakeLow,
		BrakeHigh:     c.BrakeHigh,
		BoostRise:     c.BoostRise,
		BoostDecay:    c.BoostDecay,
		RotateRate:    c.RotateRate,
		BankRatio:     c.BankRatio,
		LockRate:      c.LockRate,
		TrailSteps:    c.TrailSteps,
		TrailInterval: c.TrailInterval,
		FlickerRate:   c.FlickerRate,
		RingBase:      c.RingBase,
		RingPulse:     c.RingPulse,
		RingJitter:    c.RingJitter,
		RingSpeedGain: c.RingSpeedGain,
		SpeedOfLight:  c.SpeedOfLight,
	}
}

func cameraSettings(c config.CameraConfig) camera.Settings {
	return camera.Settings{
		FovY:               c.FovY,
		TacticalOffset:     vec(c.TacticalOffset),
		TacticalLerp:       c.TacticalLerp,
		ChaseBaseDistance:  c.ChaseBaseDistance,
		ChaseExtraDistance: c.ChaseExtraDistance,
		ChaseHeight:        c.ChaseHeight,
		ChaseDistanceLerp:  c.ChaseDistanceLerp,
		ChaseLerp:          c.ChaseLerp,
		OrbitTargetLerp:    c.OrbitTargetLerp,
		OrbitPanSpeed:      c.OrbitPanSpeed,
		OrbitMinDistance:   c.OrbitMinDistance,
		OrbitMaxDistance:   c.OrbitMaxDistance,
		OrbitPolarMargin:   c.OrbitPolarMargin,
		ObserverPosition:   vec(c.ObserverPosition),
	}
}

func trajectoryWindow(c config.FleetConfig) trajectory.Window {
	return trajectory.Window{History: c.PathHistory, Future: c.PathFuture, Steps: c.PathSteps}
}

func fleetSettings(c config.FleetConfig) fleet.Settings {
	s := fleet.DefaultSettings()
	s.CountdownMin = c.CountdownMin
	s.CountdownSpan = c.CountdownSpan
	s.LookAhead = c.LookAhead
	s.DefaultRadius = c.ShipRadius
	s.Ranges = trajectory.Ranges{
		AccelMin: c.AccelMin, AccelSpan: c.AccelSpan,
		Freq1Min: c.Freq1Min, Freq1Span: c.Freq1Span,
		Amp1Min: c.Amp1Min, Amp1Span: c.Amp1Span,
		Freq2Min: c.Freq2Min, Freq2Span: c.Freq2Span,
		Amp2Min: c.Amp2Min, Amp2Span: c.Amp2Span,
		Freq3Min: c.Freq3Min, Freq3Span: c.Freq3Span,
		Amp3Min: c.Amp3Min, Amp3Span: c.Amp3Span,
	}
	s.Window = trajectoryWindow(c)
	s.LineBaseOpacity = c.LineBaseOpacity
	s.LineHighlightOpacity = c.LineHighlightOpacity
	s.LineFadeRate = c.LineFadeRate
	s.LineColorRate = c.LineColorRate
	s.LabelLift = c.LabelLift
	return s
}

func explosionSettings(c config.ExplosionConfig) explosion.Settings {
	return explosion.Settings{
		Duration:          c.Duration,
		DefaultRadius:     c.DefaultRadius,
		Shake:             c.Shake,
		BurstChance:       c.BurstChance,
		MidScaleBase:      c.MidScaleBase,
		TerminalScale:     c.TerminalScale,
		ParticlesPerScale: c.ParticlesPerScale,
		ParticleSpeedMin:  c.ParticleSpeedMin,
		ParticleSpeedSpan: c.ParticleSpeedSpan,
		ParticleSizeMin:   c.ParticleSizeMin,
		ParticleSizeSpan:  c.ParticleSizeSpan,
		AgePerScale:       c.AgePerScale,
		Drag:              c.Drag,
		DarkenRate:        c.DarkenRate,
		DebrisCount:       c.DebrisCount,
		DebrisMaxAge:      c.DebrisMaxAge,
		DebrisShrink:      c.DebrisShrink,
		DebrisSpeedMin:    c.DebrisSpeedMin,
		DebrisSpeedSpan:   c.DebrisSpeedSpan,
		DebrisSizeRatio:   c.DebrisSizeRatio,
	}
}

func radarSettings(c config.RadarConfig, f config.FleetConfig) radar.Settings {
	return radar.Settings{
		Width:      c.Width,
		Height:     c.Height,
		Scale:      c.Scale,
		ShowPaths:  c.ShowPaths,
		PathStride: c.PathStride,
		Window:     trajectoryWindow(f),
	}
}

// gridLayout returns the parked positions of a Columns x Rows fleet,
// centered on Center in the XY plane.
func gridLayout(c config.FleetConfig) []kinematics.Vec {
	center := vec(c.Center)
	out := make([]kinematics.Vec, 0, c.Columns*c.Rows)
	for i := 0; i < c.Columns; i++ {
		for j := 0; j < c.Rows; j++ {
			out = append(out, kinematics.V(
				center.X+(float64(i)-float64(c.Columns-1)/2)*c.Spacing,
				center.Y+(float64(j)-float64(c.Rows-1)/2)*c.Spacing,
				center.Z,
			))
		}
	}
	return out
}
