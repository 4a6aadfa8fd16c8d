package game

import "log/slog"

// SetAutoAttack turns automatic targeting on or off. Turning it off drops
// the lock.
func (s *Simulation) SetAutoAttack(on bool) {
	if on == s.autoAttack {
		return
	}
	s.autoAttack = on
	if !on {
		s.flight.ClearLock()
	}
	slog.Info("auto_attack", "active", on)
}

// AutoAttack reports whether automatic targeting is on.
func (s *Simulation) AutoAttack() bool { return s.autoAttack }

// SetObserver enters or leaves observer mode. Entering forces auto-attack on;
// leaving turns it off again.
func (s *Simulation) SetObserver(on bool) {
	if on == s.observerMode {
		return
	}
	s.observerMode = on
	s.SetAutoAttack(on)
	slog.Info("observer_mode", "active", on)
}

// Observer reports whether observer mode is on.
func (s *Simulation) Observer() bool { return s.observerMode }

// SetAutopilot lets the simulation drive the throttle toward the lock.
func (s *Simulation) SetAutopilot(on bool) { s.autopilotMode = on }

// acquireTarget keeps auto-attack locked on the nearest active ship. With
// nothing left to target, auto-attack switches itself off.
func (s *Simulation) acquireTarget() {
	if !s.autoAttack {
		return
	}
	if _, ok := s.flight.ValidateLock(s.fleet); ok {
		return
	}
	ref, _, ok := s.fleet.Nearest(s.flight.Position)
	if !ok {
		s.SetAutoAttack(false)
		return
	}
	s.flight.SetLock(ref)
}

// followSelection points the lock at the selected ship, or drops it when
// nothing is selected.
func (s *Simulation) followSelection() {
	if ref, ok := s.fleet.Selected(); ok {
		s.flight.SetLock(ref)
		return
	}
	s.flight.ClearLock()
}
