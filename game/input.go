package game

import (
	"github.com/pthm-cable/droplet/fleet"
	"github.com/pthm-cable/droplet/flight"
)

// Input is one tick of player and UI input. The zero value is an idle tick.
type Input struct {
	Flight  flight.Input
	Pointer fleet.Pointer

	ToggleAutoAttack bool
	ToggleObserver   bool

	// Select applies an explicit selection from the UI, e.g. a roster list.
	Select Selection
}

// Selection is an explicit ship selection request. Ship with OK false clears
// the selection.
type Selection struct {
	Set  bool
	Ship fleet.ShipRef
	OK   bool
}

// SelectShip returns a request selecting ref.
func SelectShip(ref fleet.ShipRef) Selection {
	return Selection{Set: true, Ship: ref, OK: true}
}

// ClearSelection returns a request clearing the selection.
func ClearSelection() Selection {
	return Selection{Set: true}
}
