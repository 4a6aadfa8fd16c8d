// Package telemetry provides combat tracking, bookmarking and CSV output.
package telemetry

import "github.com/pthm-cable/droplet/kinematics"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventCollision EventType = iota
	EventShipDestroyed
	EventFleetAlerted
	EventManeuverStarted
	EventTerminalBurst
	EventTargetLocked
	EventTargetLost
)

func (t EventType) String() string {
	switch t {
	case EventCollision:
		return "collision"
	case EventShipDestroyed:
		return "ship_destroyed"
	case EventFleetAlerted:
		return "fleet_alerted"
	case EventManeuverStarted:
		return "maneuver_started"
	case EventTerminalBurst:
		return "terminal_burst"
	case EventTargetLocked:
		return "target_locked"
	case EventTargetLost:
		return "target_lost"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType `csv:"-"`
	Name    string    `csv:"event"`
	Tick    int32     `csv:"tick"`
	SimTime float64   `csv:"sim_time"`
	Ship    string    `csv:"ship"`
	X       float64   `csv:"x"`
	Y       float64   `csv:"y"`
	Z       float64   `csv:"z"`

	// Optional: countdown length, distance or speed depending on type
	Value float64 `csv:"value"`
}

func newEvent(t EventType, tick int32, simTime float64) Event {
	return Event{Type: t, Name: t.String(), Tick: tick, SimTime: simTime}
}

func (e Event) at(p kinematics.Vec) Event {
	e.X, e.Y, e.Z = p.X, p.Y, p.Z
	return e
}

// NewCollisionEvent records the player ramming a ship at impact.
func NewCollisionEvent(tick int32, simTime float64, ship string, impact kinematics.Vec, speed float64) Event {
	e := newEvent(EventCollision, tick, simTime).at(impact)
	e.Ship = ship
	e.Value = speed
	return e
}

// NewShipDestroyedEvent records a ship leaving the active roster.
func NewShipDestroyedEvent(tick int32, simTime float64, ship string, pos kinematics.Vec) Event {
	e := newEvent(EventShipDestroyed, tick, simTime).at(pos)
	e.Ship = ship
	return e
}

// NewFleetAlertedEvent records the alert and its countdown length.
func NewFleetAlertedEvent(tick int32, simTime, countdown float64) Event {
	e := newEvent(EventFleetAlerted, tick, simTime)
	e.Value = countdown
	return e
}

// NewManeuverStartedEvent records the fleet-wide maneuver start.
func NewManeuverStartedEvent(tick int32, simTime float64, ships int) Event {
	e := newEvent(EventManeuverStarted, tick, simTime)
	e.Value = float64(ships)
	return e
}

// NewTerminalBurstEvent records a dying craft's final explosion.
func NewTerminalBurstEvent(tick int32, simTime float64) Event {
	return newEvent(EventTerminalBurst, tick, simTime)
}

// NewTargetLockedEvent records a new lock.
func NewTargetLockedEvent(tick int32, simTime float64, ship string, distance float64) Event {
	e := newEvent(EventTargetLocked, tick, simTime)
	e.Ship = ship
	e.Value = distance
	return e
}

// NewTargetLostEvent records a lock being dropped.
func NewTargetLostEvent(tick int32, simTime float64) Event {
	return newEvent(EventTargetLost, tick, simTime)
}
