package game

import (
	"log/slog"

	"github.com/pthm-cable/droplet/telemetry"
)

// recordSnapshot feeds one step into the collector and the event log.
func (g *Game) recordSnapshot(snap Snapshot) {
	tel := snap.Flight
	g.collector.RecordPlayer(tel.Speed, tel.BoostFactor, tel.Locked)
	g.collector.RecordExplosions(snap.Explosions.MidBursts, snap.Explosions.TerminalBursts, snap.Explosions.Debris)

	for _, c := range snap.Collisions {
		g.collector.RecordCollision()
		g.events = append(g.events, telemetry.NewCollisionEvent(snap.Tick, snap.SimTime, c.Ship, c.Impact, c.Speed))
	}
	for _, d := range snap.Casualties {
		g.collector.RecordKill()
		g.events = append(g.events, telemetry.NewShipDestroyedEvent(snap.Tick, snap.SimTime, d.Name, d.Position))
	}
	if snap.Alerted {
		g.events = append(g.events, telemetry.NewFleetAlertedEvent(snap.Tick, snap.SimTime, snap.Countdown))
	}
	if snap.ManeuverStarted {
		g.events = append(g.events, telemetry.NewManeuverStartedEvent(snap.Tick, snap.SimTime, snap.Alive))
	}
	for range snap.Explosions.TerminalBursts {
		g.events = append(g.events, telemetry.NewTerminalBurstEvent(snap.Tick, snap.SimTime))
	}
	if snap.LockChanged {
		if tel.Locked {
			g.events = append(g.events, telemetry.NewTargetLockedEvent(snap.Tick, snap.SimTime, snap.LockName, tel.LockDistance))
		} else {
			g.events = append(g.events, telemetry.NewTargetLostEvent(snap.Tick, snap.SimTime))
		}
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	snap := g.sim.Last()
	stats := g.collector.Flush(tick, telemetry.FleetSample{
		Alive:       snap.Alive,
		Destroyed:   snap.Destroyed,
		Total:       snap.Total,
		Maneuvering: snap.Maneuvering,
		Countdown:   snap.Countdown,
		Dying:       snap.Dying,
		Effects:     snap.Effects,
	})
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	g.writeEvents()

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// writeEvents drains the buffered events to events.csv.
func (g *Game) writeEvents() {
	if err := g.outputManager.WriteEvents(g.events); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	g.events = g.events[:0]
}
