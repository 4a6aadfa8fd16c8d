package game

import (
	"github.com/pthm-cable/droplet/flight"
	"github.com/pthm-cable/droplet/kinematics"
)

// Autopilot approach tuning. The craft aims to close half the remaining
// distance each second, between these speeds.
const (
	autopilotMinSpeed = 30.0
	autopilotMaxSpeed = 300.0
	autopilotSlack    = 1.2
)

// autopilot sets throttle for an unattended craft. Steering comes from the
// lock; without one the craft coasts to a stop.
func autopilot(in flight.Input, tel flight.Telemetry) flight.Input {
	in.Boost, in.Brake = false, false
	if !tel.Locked {
		in.Brake = tel.Speed > 0
		return in
	}
	want := kinematics.Clamp(tel.LockDistance*0.5, autopilotMinSpeed, autopilotMaxSpeed)
	switch {
	case tel.Speed < want:
		in.Boost = true
	case tel.Speed > want*autopilotSlack:
		in.Brake = true
	}
	return in
}
