package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	collisions     int
	kills          int
	midBursts      int
	terminalBursts int
	debris         int

	// Per-tick samples
	speeds       []float64
	boostSum     float64
	lockedTicks  int
	sampledTicks int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// RecordCollision records the player ramming a ship.
func (c *Collector) RecordCollision() {
	c.collisions++
}

// RecordKill records a ship leaving the active roster.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordExplosions adds one tick's explosion output.
func (c *Collector) RecordExplosions(mid, terminal, debris int) {
	c.midBursts += mid
	c.terminalBursts += terminal
	c.debris += debris
}

// RecordPlayer samples the player's flight state for this tick.
func (c *Collector) RecordPlayer(speed, boost float64, locked bool) {
	c.speeds = append(c.speeds, speed)
	c.boostSum += boost
	c.sampledTicks++
	if locked {
		c.lockedTicks++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// FleetSample is the fleet and explosion state at window end.
type FleetSample struct {
	Alive       int
	Destroyed   int
	Total       int
	Maneuvering bool
	Countdown   float64
	Dying       int
	Effects     int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, fleet FleetSample) WindowStats {
	mean, p50, p90, max := ComputeSpeedStats(c.speeds)

	var boostMean, lockedFrac float64
	if c.sampledTicks > 0 {
		boostMean = c.boostSum / float64(c.sampledTicks)
		lockedFrac = float64(c.lockedTicks) / float64(c.sampledTicks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Alive:       fleet.Alive,
		Destroyed:   fleet.Destroyed,
		Total:       fleet.Total,
		Maneuvering: fleet.Maneuvering,
		Countdown:   fleet.Countdown,

		Collisions:     c.collisions,
		Kills:          c.kills,
		MidBursts:      c.midBursts,
		TerminalBursts: c.terminalBursts,
		Debris:         c.debris,

		Dying:   fleet.Dying,
		Effects: fleet.Effects,

		SpeedMean: mean,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  max,
		BoostMean: boostMean,

		LockedFrac: lockedFrac,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.collisions = 0
	c.kills = 0
	c.midBursts = 0
	c.terminalBursts = 0
	c.debris = 0
	c.speeds = c.speeds[:0]
	c.boostSum = 0
	c.lockedTicks = 0
	c.sampledTicks = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
